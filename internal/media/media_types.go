package media

import (
	_ "embed"
	"fmt"
	"net/url"
	"path"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed media_types.toml
var mediaTypesTOML []byte

// Kind is the class of a listing media reference.
type Kind int

const (
	KindImage Kind = iota
	KindPDF
	KindWeb
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindPDF:
		return "pdf"
	case KindWeb:
		return "web"
	default:
		return "unknown"
	}
}

type TypeConfig struct {
	Extensions  []string `toml:"extensions"`
	URLPatterns []string `toml:"url_patterns"`
}

type TypesConfig struct {
	Image     TypeConfig                `toml:"image"`
	PDF       TypeConfig                `toml:"pdf"`
	Web       TypeConfig                `toml:"web"`
	Platforms map[string]PlatformConfig `toml:"platforms"`
}

type PlatformConfig struct {
	DefaultOpener string `toml:"default_opener"`
}

type TypeDetector struct {
	config *TypesConfig
}

func NewTypeDetector() (*TypeDetector, error) {
	var config TypesConfig
	if err := toml.Unmarshal(mediaTypesTOML, &config); err != nil {
		return nil, fmt.Errorf("parsing media_types.toml: %w", err)
	}
	return &TypeDetector{config: &config}, nil
}

// DetectType classifies ref by extension first, then by URL pattern. Any
// other http(s) URL is a web page.
func (d *TypeDetector) DetectType(ref string) Kind {
	lower := strings.ToLower(strings.TrimSpace(ref))
	isURL := strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")

	p := lower
	if isURL {
		if u, err := url.Parse(lower); err == nil {
			p = u.Path
		}
	}
	ext := strings.TrimPrefix(path.Ext(p), ".")

	if ext != "" {
		switch {
		case contains(d.config.Image.Extensions, ext):
			return KindImage
		case contains(d.config.PDF.Extensions, ext):
			return KindPDF
		case contains(d.config.Web.Extensions, ext):
			return KindWeb
		}
	}

	if isURL {
		switch {
		case matchesAny(lower, d.config.Image.URLPatterns):
			return KindImage
		case matchesAny(lower, d.config.PDF.URLPatterns):
			return KindPDF
		default:
			return KindWeb
		}
	}
	return KindUnknown
}

func (d *TypeDetector) GetDefaultOpener() string {
	if platformConfig, ok := d.config.Platforms[runtime.GOOS]; ok {
		return platformConfig.DefaultOpener
	}
	if fallback, ok := d.config.Platforms["fallback"]; ok {
		return fallback.DefaultOpener
	}
	return "open"
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}

func matchesAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
