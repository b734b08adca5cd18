// Package export writes report rows to disk.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// ExportError reports a failed CSV write.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export CSV to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// WriteLines writes each row followed by a newline. The file is replaced
// atomically, so a failed export leaves any previous file untouched.
func WriteLines(path string, rows []string) error {
	if err := writeLines(path, rows); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

func writeLines(path string, rows []string) error {
	if path == "" {
		return fmt.Errorf("export path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "astrotally-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, row := range rows {
		if _, err := fmt.Fprintln(writer, row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush rows: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
