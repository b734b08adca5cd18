// Package scan lists session directories and frame files.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// DirectoryNotFound indicates the directory does not exist.
	DirectoryNotFound ScanErrorType = "DIRECTORY_NOT_FOUND"
	// NotADirectory indicates the path exists but is a file.
	NotADirectory ScanErrorType = "NOT_A_DIRECTORY"
	// PermissionDenied indicates insufficient permissions to read the directory.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
)

// DefaultPattern selects FITS frames.
const DefaultPattern = "*.fits"

// ScanError represents an error that occurred during directory scanning.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// FS lists directories on the local file system.
type FS struct{}

// ListSubdirectories returns the immediate subdirectories of root, sorted by name.
func (FS) ListSubdirectories(root string) ([]string, error) {
	if err := checkDir(root); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, wrapErr(root, err)
	}
	dirs := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil || !info.IsDir() {
				continue
			}
			dirs = append(dirs, path)
			continue
		}
		if entry.IsDir() {
			dirs = append(dirs, path)
		}
	}
	return dirs, nil
}

// ListFilesRecursive returns every file under dir whose base name matches
// pattern. Matching ignores case.
func (FS) ListFilesRecursive(dir, pattern string) ([]string, error) {
	matcher, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	if err := checkDir(dir); err != nil {
		return nil, err
	}
	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return wrapErr(path, walkErr)
		}
		if d.IsDir() {
			return nil
		}
		if matcher.Match(strings.ToLower(d.Name())) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CompilePattern compiles a case-insensitive glob for base names.
func CompilePattern(pattern string) (glob.Glob, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, fmt.Errorf("file pattern is empty")
	}
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}
	return g, nil
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return wrapErr(path, err)
	}
	if !info.IsDir() {
		return &ScanError{
			Type: NotADirectory,
			Path: path,
			Err:  errors.New("path is not a directory"),
		}
	}
	return nil
}

func wrapErr(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return &ScanError{Type: DirectoryNotFound, Path: path, Err: err}
	case os.IsPermission(err):
		return &ScanError{Type: PermissionDenied, Path: path, Err: err}
	default:
		return err
	}
}
