package debuglog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readJSONLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]interface{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec), sc.Text())
		out = append(out, rec)
	}
	require.NoError(t, sc.Err())
	return out
}

func setupJSON(t *testing.T, level LogLevel) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roost.log")
	require.NoError(t, SetupWithOptions(level, Options{JSON: true}, path))
	t.Cleanup(func() { _ = Close() })
	return path
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"Warning": LevelWarn,
		"error":   LevelError,
		"off":     LevelOff,
		"verbose": LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), "ParseLogLevel(%q)", in)
	}
}

func TestLevelStringRoundTrip(t *testing.T) {
	for _, l := range []LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelOff} {
		assert.Equal(t, l, ParseLogLevel(l.String()))
	}
}

func TestJSONOutputRespectsLevel(t *testing.T) {
	path := setupJSON(t, LevelWarn)

	Infof("catalog loaded")
	Warnf("favourites: discarding corrupt snapshot")
	WithFields(map[string]interface{}{"listing": "prop1"}).Errorf("favourite toggle failed: %s", "disk full")
	require.NoError(t, Close())

	recs := readJSONLines(t, path)
	require.Len(t, recs, 2)

	assert.Equal(t, "warn", recs[0]["level"])
	assert.Equal(t, "favourites: discarding corrupt snapshot", recs[0]["message"])
	assert.Equal(t, "roost", recs[0]["app"])
	assert.Contains(t, recs[0], "time")

	assert.Equal(t, "error", recs[1]["level"])
	assert.Equal(t, "favourite toggle failed: disk full", recs[1]["message"])
	assert.Equal(t, "prop1", recs[1]["listing"])
}

func TestSetLevelAtRuntime(t *testing.T) {
	path := setupJSON(t, LevelInfo)

	Debugf("hidden")
	SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, GetLevel())
	WithFields(map[string]interface{}{"results": 2}).Debugf("search done")
	require.NoError(t, Close())

	recs := readJSONLines(t, path)
	require.Len(t, recs, 1)
	assert.Equal(t, "search done", recs[0]["message"])
	assert.EqualValues(t, 2, recs[0]["results"])
}

func TestConsoleOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	require.NoError(t, Setup(LevelDebug, path))
	t.Cleanup(func() { _ = Close() })

	Debugf("restored %d favourites", 3)
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "restored 3 favourites")
	assert.Contains(t, string(data), "DBG")
}

func TestOffOpensNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never.log")
	require.NoError(t, Setup(LevelOff, path))

	Errorf("dropped")
	assert.NoFileExists(t, path)
	assert.Equal(t, LevelOff, GetLevel())
}

func TestDefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Setup(LevelInfo))
	Infof("environment ready")
	require.NoError(t, Close())

	assert.FileExists(t, filepath.Join(home, ".roost", "roost.log"))
}

func TestWithKeepsParentFields(t *testing.T) {
	base := WithFields(map[string]interface{}{"listing": "prop2"})
	child := base.With("op", "add")

	assert.Len(t, base.fields, 1)
	assert.Equal(t, map[string]interface{}{"listing": "prop2", "op": "add"}, child.fields)
}

func TestLoggingWithoutSetupIsSafe(t *testing.T) {
	require.NoError(t, Close())
	assert.NotPanics(t, func() {
		Infof("nothing configured")
		WithFields(map[string]interface{}{"k": "v"}).Warnf("still nothing")
	})
}
