package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyPath     = errors.New("path cannot be empty")
	ErrPathTooLong   = errors.New("path too long")
	ErrUnsafePath    = errors.New("path contains unsafe characters")
	ErrTraversal     = errors.New("directory traversal not allowed")
	ErrOutsideBase   = errors.New("path not within allowed directories")
	ErrNotADirectory = errors.New("path exists but is not a directory")
	ErrIsADirectory  = errors.New("path is a directory, not a file")
)

const maxPathLength = 4096

// FilePathValidator checks user-supplied paths for the database, config,
// catalog and log files.
type FilePathValidator struct {
	// AllowedBaseDirs restricts paths to these trees. Empty allows any.
	AllowedBaseDirs []string
	// AllowHomeExpansion enables a leading "~/".
	AllowHomeExpansion bool
	// AllowRelativePaths keeps relative paths relative instead of resolving
	// them against the working directory.
	AllowRelativePaths bool
	MaxPathLength      int
}

// NewFilePathValidator restricts paths to roost's own directories and the
// temp dir.
func NewFilePathValidator() *FilePathValidator {
	homeDir, _ := os.UserHomeDir()
	return &FilePathValidator{
		AllowedBaseDirs: []string{
			filepath.Join(homeDir, ".roost"),
			filepath.Join(homeDir, ".config", "roost"),
			os.TempDir(),
		},
		AllowHomeExpansion: true,
		MaxPathLength:      maxPathLength,
	}
}

// NewPermissiveFilePathValidator allows any location.
func NewPermissiveFilePathValidator() *FilePathValidator {
	return &FilePathValidator{
		AllowHomeExpansion: true,
		AllowRelativePaths: true,
		MaxPathLength:      maxPathLength,
	}
}

// ValidateAndSanitize returns the cleaned, expanded form of path.
func (v *FilePathValidator) ValidateAndSanitize(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	limit := v.MaxPathLength
	if limit <= 0 {
		limit = maxPathLength
	}
	if len(path) > limit {
		return "", fmt.Errorf("%w (max %d characters)", ErrPathTooLong, limit)
	}
	if hasControlChars(path) {
		return "", ErrUnsafePath
	}
	if hasParentRef(path) {
		return "", ErrTraversal
	}

	expanded, err := v.expand(path)
	if err != nil {
		return "", err
	}
	if err := v.withinBase(expanded); err != nil {
		return "", err
	}
	return expanded, nil
}

func (v *FilePathValidator) expand(path string) (string, error) {
	switch {
	case strings.HasPrefix(path, "~/") && v.AllowHomeExpansion:
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	case strings.HasPrefix(path, "~"):
		return "", fmt.Errorf("%w: tilde expansion not allowed here", ErrUnsafePath)
	}

	if !v.AllowRelativePaths && !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("cannot make path absolute: %w", err)
		}
		path = abs
	}
	return filepath.Clean(path), nil
}

func (v *FilePathValidator) withinBase(path string) error {
	if len(v.AllowedBaseDirs) == 0 {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve absolute path: %w", err)
	}
	for _, base := range v.AllowedBaseDirs {
		if IsWithin(base, abs) {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrOutsideBase, v.AllowedBaseDirs)
}

// ValidateDirectory validates path as a directory, creating it when asked.
// A missing directory is accepted when create is false.
func (v *FilePathValidator) ValidateDirectory(path string, create bool) (string, error) {
	clean, err := v.ValidateAndSanitize(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(clean)
	switch {
	case err == nil && !info.IsDir():
		return "", fmt.Errorf("%w: %s", ErrNotADirectory, clean)
	case err == nil:
		return clean, nil
	case !os.IsNotExist(err):
		return "", fmt.Errorf("checking directory: %w", err)
	case create:
		if mkErr := os.MkdirAll(clean, 0o755); mkErr != nil {
			return "", fmt.Errorf("failed to create directory: %w", mkErr)
		}
	}
	return clean, nil
}

// ValidateFile validates path as a file location. The file need not exist
// but must not be a directory.
func (v *FilePathValidator) ValidateFile(path string) (string, error) {
	clean, err := v.ValidateAndSanitize(path)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(clean); err == nil && info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsADirectory, clean)
	}
	return clean, nil
}

// IsWithin reports whether target lies inside base (or is base itself).
func IsWithin(base, target string) bool {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsPathSafe is a quick check for null bytes, parent references and length.
func IsPathSafe(path string) bool {
	return len(path) <= maxPathLength && !strings.Contains(path, "\x00") && !hasParentRef(path)
}

func hasControlChars(path string) bool {
	for _, r := range path {
		if r < 32 && r != '\t' {
			return true
		}
	}
	return false
}

// hasParentRef reports a ".." path element under either separator.
func hasParentRef(path string) bool {
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return true
		}
	}
	return false
}
