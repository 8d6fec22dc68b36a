// Package security confines file access to the inspector's configured
// PDF directory.
package security

import (
	"os"
	"path/filepath"
	"strings"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
)

// PathValidator rejects paths that escape the configured base directory.
// Validation is skipped while the base directory does not exist yet, so a
// placeholder directory can be configured before it is created.
type PathValidator struct {
	baseDir string
}

// NewPathValidator creates a validator rooted at baseDir. The directory is
// not required to exist.
func NewPathValidator(baseDir string) (*PathValidator, error) {
	if baseDir == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "configured directory cannot be empty")
	}
	return &PathValidator{baseDir: baseDir}, nil
}

// GetConfiguredDirectory returns the base directory the validator was
// created with.
func (v *PathValidator) GetConfiguredDirectory() string {
	return v.baseDir
}

// ValidatePath checks that a path stays inside the base directory
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}
	if !v.baseDirExists() {
		return nil
	}

	inside, err := v.IsPathWithinDirectory(path)
	if err != nil {
		return err
	}
	if !inside {
		return inspecterrors.Newf(inspecterrors.CodeAccessDenied,
			"path is outside the configured PDF directory: %s", path).
			WithSuggestion("move the file into the configured directory or restart with a different --dir")
	}
	return nil
}

// IsPathWithinDirectory reports whether path, after cleaning and symlink
// resolution on both sides, stays under the base directory. Both the literal
// path and its symlink target must land inside.
func (v *PathValidator) IsPathWithinDirectory(path string) (bool, error) {
	if !v.baseDirExists() {
		return true, nil
	}

	cleanPath, err := absClean(path)
	if err != nil {
		return false, inspecterrors.Wrap(inspecterrors.CodeAccessDenied, "failed to resolve path", err)
	}
	cleanBase, err := absClean(v.baseDir)
	if err != nil {
		return false, inspecterrors.Wrap(inspecterrors.CodeAccessDenied, "failed to resolve configured directory", err)
	}

	realPath := resolveIfSymlink(cleanPath)
	realBase := cleanBase
	if resolved, err := filepath.EvalSymlinks(cleanBase); err == nil {
		realBase = resolved
	}

	pathOk := underDir(cleanPath, cleanBase) || underDir(cleanPath, realBase)
	realOk := underDir(realPath, cleanBase) || underDir(realPath, realBase)
	return pathOk && realOk, nil
}

// NormalizePath resolves a path to an absolute path inside the base
// directory and validates it. Relative paths are taken relative to the base
// directory, and NUL bytes are stripped before resolution.
func (v *PathValidator) NormalizePath(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if path == "" {
		return "", inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.baseDir, path)
	}
	absPath, err := absClean(path)
	if err != nil {
		return "", inspecterrors.Wrap(inspecterrors.CodeAccessDenied, "failed to resolve path", err)
	}

	if err := v.ValidatePath(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ValidateDirectory checks that a directory path stays inside the base
// directory and, when it exists, actually is a directory.
func (v *PathValidator) ValidateDirectory(dirPath string) error {
	if err := v.ValidatePath(dirPath); err != nil {
		return err
	}
	if !v.baseDirExists() {
		return nil
	}

	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		// A directory that is yet to be created still validates
		return nil
	}
	if err != nil {
		return inspecterrors.Wrap(inspecterrors.CodeAccessDenied, "cannot access directory", err)
	}
	if !info.IsDir() {
		return inspecterrors.Newf(inspecterrors.CodeInvalidRequest, "path is not a directory: %s", dirPath)
	}
	return nil
}

func (v *PathValidator) baseDirExists() bool {
	_, err := os.Stat(v.baseDir)
	return !os.IsNotExist(err)
}

// absClean resolves a path to its cleaned absolute form
func absClean(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// resolveIfSymlink follows a symlink to its target. Non-symlinks and
// unresolvable links pass through unchanged.
func resolveIfSymlink(path string) string {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// underDir reports whether path equals dir or sits beneath it
func underDir(path, dir string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
