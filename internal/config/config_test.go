package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetDefaultOpener(t *testing.T) {
	expected := map[string]string{
		"darwin":  "open",
		"linux":   "xdg-open",
		"windows": "start",
	}

	opener := getDefaultOpener()

	if expectedOpener, ok := expected[runtime.GOOS]; ok {
		if opener != expectedOpener {
			t.Errorf("getDefaultOpener() = %s, want %s for %s", opener, expectedOpener, runtime.GOOS)
		}
	} else {
		// For unknown OS, should default to "open"
		if opener != "open" {
			t.Errorf("getDefaultOpener() = %s, want 'open' for unknown OS", opener)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Database.Timeout != 1*time.Second {
		t.Errorf("Database.Timeout = %v, want 1s", cfg.Database.Timeout)
	}
	if !strings.HasSuffix(cfg.Database.Path, filepath.Join(".roost", "roost.db")) {
		t.Errorf("Database.Path = %s, want it under .roost", cfg.Database.Path)
	}

	// Search form defaults
	if cfg.Search.PriceMin != 50000 || cfg.Search.PriceMax != 2000000 {
		t.Errorf("Search price bounds = %d-%d, want 50000-2000000", cfg.Search.PriceMin, cfg.Search.PriceMax)
	}
	if cfg.Search.BedroomsMin != 1 || cfg.Search.BedroomsMax != 6 {
		t.Errorf("Search bedroom bounds = %d-%d, want 1-6", cfg.Search.BedroomsMin, cfg.Search.BedroomsMax)
	}
	if cfg.Search.DefaultSort != "featured" {
		t.Errorf("Search.DefaultSort = %s, want featured", cfg.Search.DefaultSort)
	}

	if cfg.UI.Listing.PreviewLength != 150 {
		t.Errorf("UI.Listing.PreviewLength = %d, want 150", cfg.UI.Listing.PreviewLength)
	}

	if cfg.Media.DefaultOpener == "" {
		t.Error("Media.DefaultOpener should not be empty")
	}

	if cfg.Keys.Modifier != "ctrl" {
		t.Errorf("Keys.Modifier = %s, want 'ctrl'", cfg.Keys.Modifier)
	}
	if cfg.Keys.Bindings.Quit != "q" {
		t.Errorf("Keys.Bindings.Quit = %s, want 'q'", cfg.Keys.Bindings.Quit)
	}
	if cfg.Keys.Bindings.Favourite != "f" {
		t.Errorf("Keys.Bindings.Favourite = %s, want 'f'", cfg.Keys.Bindings.Favourite)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	// Run from an empty directory so a stray ./config.toml cannot interfere.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.Search.PriceMax != 2000000 {
		t.Errorf("Search.PriceMax = %d, want 2000000", cfg.Search.PriceMax)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("Catalog.Path = %q, want empty (embedded catalog)", cfg.Catalog.Path)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "test-config.toml")
	configContent := `
[database]
path = "/tmp/test.db"
timeout = "10s"

[catalog]
path = "/tmp/listings.toml"

[search]
default_sort = "price-asc"
price_max = 750000
keyword_index = false

[ui.colors]
primary = "#FF0000"
`

	if writeErr := os.WriteFile(configPath, []byte(configContent), 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %s, want '/tmp/test.db'", cfg.Database.Path)
	}
	if cfg.Database.Timeout != 10*time.Second {
		t.Errorf("Database.Timeout = %v, want 10s", cfg.Database.Timeout)
	}
	if cfg.Catalog.Path != "/tmp/listings.toml" {
		t.Errorf("Catalog.Path = %s, want '/tmp/listings.toml'", cfg.Catalog.Path)
	}
	if cfg.Search.DefaultSort != "price-asc" {
		t.Errorf("Search.DefaultSort = %s, want 'price-asc'", cfg.Search.DefaultSort)
	}
	if cfg.Search.PriceMax != 750000 {
		t.Errorf("Search.PriceMax = %d, want 750000", cfg.Search.PriceMax)
	}
	// Unset keys in a partially specified section keep their defaults.
	if cfg.Search.PriceMin != 50000 {
		t.Errorf("Search.PriceMin = %d, want default 50000", cfg.Search.PriceMin)
	}
	if cfg.Search.KeywordIndex {
		t.Error("Search.KeywordIndex = true, want false")
	}
	if cfg.UI.Colors.Primary != "#FF0000" {
		t.Errorf("UI.Colors.Primary = %s, want '#FF0000'", cfg.UI.Colors.Primary)
	}
	if cfg.UI.Colors.Secondary != "#4ECDC4" {
		t.Errorf("UI.Colors.Secondary = %s, want default '#4ECDC4'", cfg.UI.Colors.Secondary)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[log]\nlevel = \"info\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ROOST_LOG_LEVEL", "debug")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug from environment", cfg.Log.Level)
	}
}

func TestLoad_InvalidBounds(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	content := "[search]\nprice_min = 900000\nprice_max = 100000\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() accepted price_min > price_max")
	}
}

func TestLoad_ExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[catalog]\npath = \"~/listings.json\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := filepath.Join(home, "listings.json"); cfg.Catalog.Path != want {
		t.Errorf("Catalog.Path = %s, want %s", cfg.Catalog.Path, want)
	}
}

func TestSave(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-save-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := defaultConfig()
	cfg.Database = DatabaseConfig{
		Path:    "/test/path.db",
		Timeout: 10 * time.Second,
	}
	cfg.Search.DefaultSort = "newest"
	cfg.Search.BedroomsMax = 8
	cfg.UI.Colors.Primary = "#00FF00"
	cfg.Media.DefaultOpener = "test-opener"
	cfg.Keys.Modifier = "alt"
	cfg.Keys.Bindings.Quit = "x"

	savePath := filepath.Join(tmpDir, "saved-config.toml")
	if saveErr := Save(cfg, savePath); saveErr != nil {
		t.Fatalf("Save() error = %v", saveErr)
	}

	if _, statErr := os.Stat(savePath); os.IsNotExist(statErr) {
		t.Fatal("Save() did not create config file")
	}

	loaded, err := Load(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.Database.Path != cfg.Database.Path {
		t.Errorf("Loaded Database.Path = %s, want %s", loaded.Database.Path, cfg.Database.Path)
	}
	if loaded.Database.Timeout != cfg.Database.Timeout {
		t.Errorf("Loaded Database.Timeout = %v, want %v", loaded.Database.Timeout, cfg.Database.Timeout)
	}
	if loaded.Search.DefaultSort != "newest" {
		t.Errorf("Loaded Search.DefaultSort = %s, want newest", loaded.Search.DefaultSort)
	}
	if loaded.Search.BedroomsMax != 8 {
		t.Errorf("Loaded Search.BedroomsMax = %d, want 8", loaded.Search.BedroomsMax)
	}
	if loaded.Keys.Modifier != cfg.Keys.Modifier {
		t.Errorf("Loaded Keys.Modifier = %s, want %s", loaded.Keys.Modifier, cfg.Keys.Modifier)
	}
	if loaded.Media.DefaultOpener != "test-opener" {
		t.Errorf("Loaded Media.DefaultOpener = %s, want test-opener", loaded.Media.DefaultOpener)
	}
	if len(loaded.Media.Linux.PDF) != len(cfg.Media.Linux.PDF) {
		t.Errorf("Loaded Media.Linux.PDF = %v, want %v", loaded.Media.Linux.PDF, cfg.Media.Linux.PDF)
	}
}

func TestGenerateDefaultConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-gen-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "generated.toml")
	if genErr := GenerateDefaultConfig(configPath); genErr != nil {
		t.Fatalf("GenerateDefaultConfig() error = %v", genErr)
	}

	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		t.Fatal("GenerateDefaultConfig() did not create file")
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}

	if cfg.Keys.Modifier != "ctrl" {
		t.Errorf("Generated config has Keys.Modifier = %s, want 'ctrl'", cfg.Keys.Modifier)
	}
	if !cfg.Search.KeywordIndex {
		t.Error("Generated config has Search.KeywordIndex = false, want true")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := defaultConfig()
	cfg.Search.DefaultSort = "price-desc"
	cfg.Keys.Bindings.OpenMedia = "g"

	var sb strings.Builder
	if err := Encode(cfg, &sb); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out := sb.String()
	for _, want := range []string{"[search]", "default_sort = 'price-desc'", "[keys.bindings]"} {
		if !strings.Contains(out, want) {
			t.Errorf("Encode() output missing %q:\n%s", want, out)
		}
	}

	path := filepath.Join(t.TempDir(), "encoded.toml")
	if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(encoded) error = %v", err)
	}
	if loaded.Search.DefaultSort != "price-desc" {
		t.Errorf("DefaultSort = %s, want price-desc", loaded.Search.DefaultSort)
	}
	if loaded.Keys.Bindings.OpenMedia != "g" {
		t.Errorf("OpenMedia = %s, want g", loaded.Keys.Bindings.OpenMedia)
	}
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	if cfg == nil {
		t.Fatal("TestConfig() returned nil")
	}

	if cfg.Database.Path != ":memory:" {
		t.Errorf("TestConfig Database.Path = %s, want ':memory:'", cfg.Database.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("TestConfig does not validate: %v", err)
	}
}
