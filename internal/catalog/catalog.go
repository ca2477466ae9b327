// Package catalog loads and validates the read-only collection of property
// listings that searches run against.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/pders01/roost/internal/debuglog"
)

var (
	// ErrInvalidDate marks a listing whose added date is not a calendar date.
	// It is a data-integrity error: the whole catalog is rejected.
	ErrInvalidDate = errors.New("invalid added date")
	// ErrInvalidListing marks a listing that fails record validation.
	ErrInvalidListing = errors.New("invalid listing")
)

// Format selects the catalog file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

//go:embed data/properties.json
var defaultCatalogJSON []byte

// file is the on-disk shape: {"properties": [...]}.
type file struct {
	Properties []Listing `json:"properties" toml:"properties"`
}

// Catalog is an immutable snapshot of listings, indexed by id.
type Catalog struct {
	listings []Listing
	byID     map[string]int
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogJSON, FormatJSON)
}

// Load reads a catalog file. The format is chosen by extension (.toml, else JSON).
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	format := FormatJSON
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = FormatTOML
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	debuglog.WithFields(map[string]interface{}{"path": path, "listings": c.Len()}).Infof("catalog loaded")
	return c, nil
}

// Parse decodes and validates a catalog. Every listing must pass record
// validation and carry a parseable added date; the first failure rejects the
// whole catalog.
func Parse(data []byte, format Format) (*Catalog, error) {
	var f file
	switch format {
	case FormatTOML:
		if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &f); err != nil {
			if errors.Is(err, ErrInvalidDate) {
				return nil, err
			}
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	return New(f.Properties)
}

// New validates listings and builds a catalog preserving their order.
func New(listings []Listing) (*Catalog, error) {
	c := &Catalog{
		listings: make([]Listing, 0, len(listings)),
		byID:     make(map[string]int, len(listings)),
	}
	for i, l := range listings {
		if err := validateListing(l); err != nil {
			return nil, fmt.Errorf("listing %d (%q): %w", i, l.ID, err)
		}
		if _, dup := c.byID[l.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidListing, l.ID)
		}
		c.byID[l.ID] = len(c.listings)
		c.listings = append(c.listings, l)
	}
	return c, nil
}

func validateListing(l Listing) error {
	if err := recordValidator().Struct(l); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field %s failed %q", ErrInvalidListing, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidListing, err)
	}
	if _, err := l.Added.Date(); err != nil {
		return err
	}
	return nil
}

// Listings returns the catalog in its original order. The slice is a copy.
func (c *Catalog) Listings() []Listing {
	out := make([]Listing, len(c.listings))
	copy(out, c.listings)
	return out
}

// Get looks up a listing by id.
func (c *Catalog) Get(id string) (Listing, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Listing{}, false
	}
	return c.listings[i], true
}

// Len reports the number of listings.
func (c *Catalog) Len() int { return len(c.listings) }
