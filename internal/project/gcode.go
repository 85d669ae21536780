package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ExportGCode writes rendered G-code to path, creating parent directories.
func ExportGCode(path, code string) error {
	if code == "" {
		return fmt.Errorf("no G-code to write")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteGCode(f, code); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteGCode writes rendered G-code to w.
func WriteGCode(w io.Writer, code string) error {
	if code == "" {
		return fmt.Errorf("no G-code to write")
	}
	if _, err := io.WriteString(w, code); err != nil {
		return fmt.Errorf("failed to write G-code: %w", err)
	}
	return nil
}
