package media

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pders01/roost/internal/catalog"
	"github.com/pders01/roost/internal/config"
	"github.com/pders01/roost/internal/debuglog"
	"github.com/pders01/roost/internal/validation"
)

// ErrNoMedia is returned when a listing carries nothing to open.
var ErrNoMedia = errors.New("listing has no media")

// Target is one openable reference of a listing.
type Target struct {
	Kind  Kind
	Label string
	// Ref is the reference as written in the catalog.
	Ref string
	// Location is Ref resolved to a file path or absolute URL.
	Location string
}

type Launcher struct {
	viewers       map[Kind]string
	defaultOpener string
	baseDir       string
	baseURL       string
	registry      *ViewerRegistry
	detector      *TypeDetector
	start         func(*exec.Cmd) error
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewViewerRegistry()
	if err != nil {
		debuglog.Warnf("viewer definitions unavailable: %v", err)
		registry = &ViewerRegistry{viewers: make(map[string]ViewerDefinition), goos: runtime.GOOS}
	}

	detector, err := NewTypeDetector()
	if err != nil {
		debuglog.Warnf("media type table unavailable: %v", err)
		detector = &TypeDetector{config: &TypesConfig{}}
	}

	defaultOpener := cfg.Media.DefaultOpener
	if defaultOpener == "" {
		defaultOpener = detector.GetDefaultOpener()
	}

	var openers config.MediaOpeners
	switch runtime.GOOS {
	case "darwin":
		openers = cfg.Media.Darwin
	case "linux":
		openers = cfg.Media.Linux
	case "windows":
		openers = cfg.Media.Windows
	default:
		openers = cfg.Media.Darwin
	}

	l := &Launcher{
		viewers:       make(map[Kind]string),
		defaultOpener: defaultOpener,
		baseDir:       cfg.Media.BaseDir,
		baseURL:       cfg.Media.BaseURL,
		registry:      registry,
		detector:      detector,
		start:         startDetached,
	}
	for kind, candidates := range map[Kind][]string{
		KindImage: openers.Image,
		KindPDF:   openers.PDF,
		KindWeb:   openers.Web,
	} {
		viewer := findCommand(candidates...)
		if viewer == "" {
			viewer = defaultOpener
		}
		l.viewers[kind] = viewer
	}
	return l
}

// Targets lists a listing's pictures, floor plan and detail page in that
// order. References that cannot be resolved are skipped and logged.
func (l *Launcher) Targets(listing catalog.Listing) []Target {
	var targets []Target
	add := func(label, ref string) {
		t, err := l.Resolve(ref)
		if err != nil {
			debuglog.WithFields(map[string]interface{}{"listing": listing.ID, "ref": ref}).Warnf("skipping media: %v", err)
			return
		}
		t.Label = label
		targets = append(targets, t)
	}

	images := 0
	for _, ref := range listing.Media() {
		if ref == listing.FloorPlan {
			add("Floor plan", ref)
			continue
		}
		images++
		if images == 1 {
			add("Picture", ref)
		} else {
			add(fmt.Sprintf("Image %d", images), ref)
		}
	}
	if listing.URL != "" {
		add("Details", listing.URL)
	}
	return targets
}

// Resolve classifies ref and turns it into something a viewer can open.
func (l *Launcher) Resolve(ref string) (Target, error) {
	ref = strings.TrimSpace(ref)
	kind := l.detector.DetectType(ref)
	t := Target{Kind: kind, Ref: ref}

	if isURL(ref) {
		t.Location = ref
		return t, nil
	}
	if kind == KindWeb && l.baseURL != "" {
		base, err := url.Parse(l.baseURL)
		if err != nil {
			return Target{}, fmt.Errorf("media base url: %w", err)
		}
		rel, err := url.Parse(ref)
		if err != nil {
			return Target{}, err
		}
		t.Location = base.ResolveReference(rel).String()
		return t, nil
	}
	loc, err := validation.ResolveMediaRef(l.baseDir, ref)
	if err != nil {
		return Target{}, err
	}
	t.Location = loc
	return t, nil
}

// Viewer is the program used for kind.
func (l *Launcher) Viewer(kind Kind) string {
	if v, ok := l.viewers[kind]; ok && v != "" {
		return v
	}
	if l.defaultOpener != "" {
		return l.defaultOpener
	}
	return l.detector.GetDefaultOpener()
}

// Open starts a viewer for t without waiting for it to exit.
func (l *Launcher) Open(t Target) error {
	if t.Location == "" {
		return ErrNoMedia
	}
	viewer := l.Viewer(t.Kind)
	if viewer == "" {
		return fmt.Errorf("no application found to open %s", t.Location)
	}

	cmd, err := l.registry.Command(viewer, t.Kind, t.Location)
	if err != nil {
		cmd = exec.Command(viewer, t.Location)
	}

	debuglog.WithFields(map[string]interface{}{
		"kind":   t.Kind.String(),
		"viewer": viewer,
		"target": t.Location,
	}).Infof("opening media")

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", viewer, err)
	}
	return nil
}

// OpenListing opens the target at index in Targets(listing).
func (l *Launcher) OpenListing(listing catalog.Listing, index int) (Target, error) {
	targets := l.Targets(listing)
	if len(targets) == 0 {
		return Target{}, ErrNoMedia
	}
	if index < 0 || index >= len(targets) {
		return Target{}, fmt.Errorf("media index %d out of range (listing has %d)", index+1, len(targets))
	}
	return targets[index], l.Open(targets[index])
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
