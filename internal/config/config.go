package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Search   SearchConfig   `mapstructure:"search"`
	UI       UIConfig       `mapstructure:"ui"`
	Media    MediaConfig    `mapstructure:"media"`
	Keys     KeyConfig      `mapstructure:"keys"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogConfig points at the listing data. An empty path selects the
// catalog compiled into the binary.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type SearchConfig struct {
	DefaultSort  string `mapstructure:"default_sort"`
	PriceMin     int    `mapstructure:"price_min"`
	PriceMax     int    `mapstructure:"price_max"`
	BedroomsMin  int    `mapstructure:"bedrooms_min"`
	BedroomsMax  int    `mapstructure:"bedrooms_max"`
	KeywordIndex bool   `mapstructure:"keyword_index"`
}

type UIConfig struct {
	Colors  UIColors      `mapstructure:"colors"`
	Listing ListingConfig `mapstructure:"listing"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Surface    string `mapstructure:"surface"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
	Success    string `mapstructure:"success"`
}

type ListingConfig struct {
	PreviewLength    int `mapstructure:"preview_length"`
	WordWrapMaxWidth int `mapstructure:"word_wrap_max_width"`
	WordWrapMinWidth int `mapstructure:"word_wrap_min_width"`
}

type MediaConfig struct {
	Darwin        MediaOpeners `mapstructure:"darwin"`
	Linux         MediaOpeners `mapstructure:"linux"`
	Windows       MediaOpeners `mapstructure:"windows"`
	DefaultOpener string       `mapstructure:"default_opener"`
	// BaseDir resolves relative picture and floor plan paths.
	BaseDir string `mapstructure:"base_dir"`
	// BaseURL resolves relative detail page links.
	BaseURL string `mapstructure:"base_url"`
}

type MediaOpeners struct {
	Image []string `mapstructure:"image"`
	PDF   []string `mapstructure:"pdf"`
	Web   []string `mapstructure:"web"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit       string `mapstructure:"quit"`
	Search     string `mapstructure:"search"`
	Favourite  string `mapstructure:"favourite"`
	Favourites string `mapstructure:"favourites"`
	Sort       string `mapstructure:"sort"`
	Clear      string `mapstructure:"clear"`
	OpenMedia  string `mapstructure:"open_media"`
	Back       string `mapstructure:"back"`
	Help       string `mapstructure:"help"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	JSON  bool   `mapstructure:"json"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".roost", "roost.db")

	return &Config{
		Database: DatabaseConfig{
			Path:    dbPath,
			Timeout: 1 * time.Second,
		},
		Search: SearchConfig{
			DefaultSort:  "featured",
			PriceMin:     50000,
			PriceMax:     2000000,
			BedroomsMin:  1,
			BedroomsMax:  6,
			KeywordIndex: true,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#FF6B6B",
				Secondary:  "#4ECDC4",
				Accent:     "#95E1D3",
				Background: "#1A1A2E",
				Surface:    "#16213E",
				Text:       "#EAEAEA",
				Muted:      "#94A3B8",
				Error:      "#F87171",
				Success:    "#4ADE80",
			},
			Listing: ListingConfig{
				PreviewLength:    150,
				WordWrapMaxWidth: 100,
				WordWrapMinWidth: 40,
			},
		},
		Media: MediaConfig{
			Darwin: MediaOpeners{
				Image: []string{"preview", "open"},
				PDF:   []string{"preview", "open"},
				Web:   []string{"open"},
			},
			Linux: MediaOpeners{
				Image: []string{"sxiv", "feh", "eog", "xdg-open"},
				PDF:   []string{"zathura", "evince", "xdg-open"},
				Web:   []string{"xdg-open", "firefox"},
			},
			Windows: MediaOpeners{
				Image: []string{"start"},
				PDF:   []string{"start"},
				Web:   []string{"start"},
			},
			DefaultOpener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:       "q",
				Search:     "s",
				Favourite:  "f",
				Favourites: "v",
				Sort:       "o",
				Clear:      "x",
				OpenMedia:  "p",
				Back:       "esc",
				Help:       "?",
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

// settings flattens cfg into dotted viper keys. It drives both the defaults
// in Load and the file written by Save.
func settings(cfg *Config) map[string]interface{} {
	return map[string]interface{}{
		"database.path":    cfg.Database.Path,
		"database.timeout": cfg.Database.Timeout.String(),

		"catalog.path": cfg.Catalog.Path,

		"search.default_sort":  cfg.Search.DefaultSort,
		"search.price_min":     cfg.Search.PriceMin,
		"search.price_max":     cfg.Search.PriceMax,
		"search.bedrooms_min":  cfg.Search.BedroomsMin,
		"search.bedrooms_max":  cfg.Search.BedroomsMax,
		"search.keyword_index": cfg.Search.KeywordIndex,

		"ui.colors.primary":    cfg.UI.Colors.Primary,
		"ui.colors.secondary":  cfg.UI.Colors.Secondary,
		"ui.colors.accent":     cfg.UI.Colors.Accent,
		"ui.colors.background": cfg.UI.Colors.Background,
		"ui.colors.surface":    cfg.UI.Colors.Surface,
		"ui.colors.text":       cfg.UI.Colors.Text,
		"ui.colors.muted":      cfg.UI.Colors.Muted,
		"ui.colors.error":      cfg.UI.Colors.Error,
		"ui.colors.success":    cfg.UI.Colors.Success,

		"ui.listing.preview_length":      cfg.UI.Listing.PreviewLength,
		"ui.listing.word_wrap_max_width": cfg.UI.Listing.WordWrapMaxWidth,
		"ui.listing.word_wrap_min_width": cfg.UI.Listing.WordWrapMinWidth,

		"media.darwin.image":   cfg.Media.Darwin.Image,
		"media.darwin.pdf":     cfg.Media.Darwin.PDF,
		"media.darwin.web":     cfg.Media.Darwin.Web,
		"media.linux.image":    cfg.Media.Linux.Image,
		"media.linux.pdf":      cfg.Media.Linux.PDF,
		"media.linux.web":      cfg.Media.Linux.Web,
		"media.windows.image":  cfg.Media.Windows.Image,
		"media.windows.pdf":    cfg.Media.Windows.PDF,
		"media.windows.web":    cfg.Media.Windows.Web,
		"media.default_opener": cfg.Media.DefaultOpener,
		"media.base_dir":       cfg.Media.BaseDir,
		"media.base_url":       cfg.Media.BaseURL,

		"keys.modifier":            cfg.Keys.Modifier,
		"keys.bindings.quit":       cfg.Keys.Bindings.Quit,
		"keys.bindings.search":     cfg.Keys.Bindings.Search,
		"keys.bindings.favourite":  cfg.Keys.Bindings.Favourite,
		"keys.bindings.favourites": cfg.Keys.Bindings.Favourites,
		"keys.bindings.sort":       cfg.Keys.Bindings.Sort,
		"keys.bindings.clear":      cfg.Keys.Bindings.Clear,
		"keys.bindings.open_media": cfg.Keys.Bindings.OpenMedia,
		"keys.bindings.back":       cfg.Keys.Bindings.Back,
		"keys.bindings.help":       cfg.Keys.Bindings.Help,

		"log.level": cfg.Log.Level,
		"log.file":  cfg.Log.File,
		"log.json":  cfg.Log.JSON,
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	for key, value := range settings(defaultConfig()) {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "roost")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	// ROOST_LOG_LEVEL overrides log.level, and so on.
	v.SetEnvPrefix("ROOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand paths after loading
	expandPaths(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the search form bounds.
func (c *Config) Validate() error {
	var errs []error
	if c.Search.PriceMin < 0 || c.Search.PriceMin > c.Search.PriceMax {
		errs = append(errs, fmt.Errorf("search.price_min (%d) must be between 0 and search.price_max (%d)", c.Search.PriceMin, c.Search.PriceMax))
	}
	if c.Search.BedroomsMin < 0 || c.Search.BedroomsMin > c.Search.BedroomsMax {
		errs = append(errs, fmt.Errorf("search.bedrooms_min (%d) must be between 0 and search.bedrooms_max (%d)", c.Search.BedroomsMin, c.Search.BedroomsMax))
	}
	if c.Database.Timeout < 0 {
		errs = append(errs, fmt.Errorf("database.timeout must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand tilde
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	// Convert to absolute path if not already absolute
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

// expandPaths expands all paths in the config
func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Catalog.Path = expandPath(cfg.Catalog.Path)
	cfg.Media.BaseDir = expandPath(cfg.Media.BaseDir)
	cfg.Log.File = expandPath(cfg.Log.File)
}

func Save(config *Config, path string) error {
	v := viper.New()

	for key, value := range settings(config) {
		v.Set(key, value)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

// Encode writes cfg as TOML, in the same layout Save produces.
func Encode(cfg *Config, w io.Writer) error {
	v := viper.New()
	for key, value := range settings(cfg) {
		v.Set(key, value)
	}
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(v.AllSettings())
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
