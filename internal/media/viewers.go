package media

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/pders01/roost/internal/debuglog"
)

//go:embed viewers.toml
var viewersTOML []byte

// ViewerDefinition describes how a viewer is invoked.
type ViewerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	// Command overrides the executable; the viewer name is used otherwise.
	Command string    `toml:"command,omitempty"`
	Image   *KindArgs `toml:"image,omitempty"`
	PDF     *KindArgs `toml:"pdf,omitempty"`
	Web     *KindArgs `toml:"web,omitempty"`
}

// KindArgs are the arguments placed before the target.
type KindArgs struct {
	Args []string `toml:"args"`
}

type viewersFile struct {
	Viewers map[string]ViewerDefinition `toml:"viewers"`
}

// ViewerRegistry holds the known viewer definitions.
type ViewerRegistry struct {
	viewers map[string]ViewerDefinition
	goos    string
}

// NewViewerRegistry loads the embedded table, then merges
// ~/.config/roost/viewers.toml over it when present.
func NewViewerRegistry() (*ViewerRegistry, error) {
	var file viewersFile
	if err := toml.Unmarshal(viewersTOML, &file); err != nil {
		return nil, fmt.Errorf("parsing viewers.toml: %w", err)
	}
	r := &ViewerRegistry{viewers: file.Viewers, goos: runtime.GOOS}
	if r.viewers == nil {
		r.viewers = make(map[string]ViewerDefinition)
	}

	if home, err := os.UserHomeDir(); err == nil {
		r.mergeFile(filepath.Join(home, ".config", "roost", "viewers.toml"))
	}
	return r, nil
}

func (r *ViewerRegistry) mergeFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var user viewersFile
	if err := toml.Unmarshal(data, &user); err != nil {
		debuglog.Warnf("ignoring %s: %v", path, err)
		return
	}
	for name, def := range user.Viewers {
		r.viewers[name] = def
	}
}

// Command builds the invocation of viewer for target.
func (r *ViewerRegistry) Command(viewer string, kind Kind, target string) (*exec.Cmd, error) {
	def, ok := r.viewers[viewer]
	if !ok {
		return exec.Command(viewer, target), nil
	}
	if !contains(def.Platforms, r.goos) {
		return nil, fmt.Errorf("%s not supported on %s", viewer, r.goos)
	}

	var ka *KindArgs
	switch kind {
	case KindImage:
		ka = def.Image
	case KindPDF:
		ka = def.PDF
	case KindWeb:
		ka = def.Web
	}
	if ka == nil {
		return nil, fmt.Errorf("%s cannot open %s media", viewer, kind)
	}

	name := viewer
	if def.Command != "" {
		name = def.Command
	}
	args := append(append([]string(nil), ka.Args...), target)
	return exec.Command(name, args...), nil
}

// Supports reports whether viewer can open kind on this platform. Viewers
// missing from the table are assumed to handle anything.
func (r *ViewerRegistry) Supports(viewer string, kind Kind) bool {
	_, err := r.Command(viewer, kind, "")
	return err == nil
}
