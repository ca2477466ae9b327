package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathHandler resolves the locations roost reads and writes.
type PathHandler struct {
	validator *FilePathValidator
}

// NewSecurePathHandler creates a path handler with secure validation
func NewSecurePathHandler() *PathHandler {
	return &PathHandler{
		validator: NewFilePathValidator(),
	}
}

// NewPermissivePathHandler creates a path handler for development/testing
func NewPermissivePathHandler() *PathHandler {
	return &PathHandler{
		validator: NewPermissiveFilePathValidator(),
	}
}

// GetSecureDBPath returns the database path, defaulting to ~/.roost/roost.db,
// and makes sure its parent directory exists.
func (ph *PathHandler) GetSecureDBPath(userPath string) (string, error) {
	if userPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		userPath = filepath.Join(homeDir, ".roost", "roost.db")
	}

	path, err := ph.validator.ValidateFile(userPath)
	if err != nil {
		return "", err
	}
	if _, err := ph.validator.ValidateDirectory(filepath.Dir(path), true); err != nil {
		return "", err
	}
	return path, nil
}

// GetSecureConfigPath returns a validated configuration path
func (ph *PathHandler) GetSecureConfigPath(userPath string) (string, error) {
	if userPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		userPath = filepath.Join(homeDir, ".config", "roost", "config.toml")
	}

	return ph.validator.ValidateFile(userPath)
}

// GetCatalogPath validates a catalog file: it must exist and be .json or
// .toml. An empty path means the embedded catalog and is returned as is.
func (ph *PathHandler) GetCatalogPath(userPath string) (string, error) {
	if userPath == "" {
		return "", nil
	}
	path, err := ph.validator.ValidateFile(userPath)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".toml":
	default:
		return "", fmt.Errorf("catalog %s: unsupported extension (want .json or .toml)", path)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("catalog %s: %w", path, err)
	}
	return path, nil
}

// EnsureSecureDirectory creates a directory safely after validation
func (ph *PathHandler) EnsureSecureDirectory(path string) (string, error) {
	return ph.validator.ValidateDirectory(path, true)
}

// ResolveMediaRef joins a catalog-relative media reference onto baseDir and
// refuses references that would escape it.
func ResolveMediaRef(baseDir, ref string) (string, error) {
	if ref == "" {
		return "", ErrEmptyPath
	}
	if !IsPathSafe(ref) {
		return "", fmt.Errorf("%w: %s", ErrTraversal, ref)
	}
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref), nil
	}
	if baseDir == "" {
		baseDir = "."
	}
	joined := filepath.Join(baseDir, filepath.FromSlash(ref))
	if !IsWithin(baseDir, joined) {
		return "", fmt.Errorf("%w: %s", ErrOutsideBase, ref)
	}
	return joined, nil
}
