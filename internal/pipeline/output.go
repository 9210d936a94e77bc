// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manual-extractor/pkg/types"
)

// JSONWriter writes records as a pretty-printed JSON array.
type JSONWriter struct {
	Path string
}

// Write implements Writer. It replaces any previous file at Path.
func (w *JSONWriter) Write(records []types.DocumentRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return replaceFile(w.Path, buf.Bytes())
}

// YAMLWriter writes records as a YAML sequence.
type YAMLWriter struct {
	Path string
}

// Write implements Writer. It replaces any previous file at Path.
func (w *YAMLWriter) Write(records []types.DocumentRecord) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return replaceFile(w.Path, data)
}

// NewWriter returns the writer for format.
func NewWriter(format types.OutputFormat, path string) (Writer, error) {
	switch format {
	case types.FormatJSON, "":
		return &JSONWriter{Path: path}, nil
	case types.FormatYAML:
		return &YAMLWriter{Path: path}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// replaceFile writes data to a temporary file next to path and renames it
// over path, so readers never see a half-written file.
func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating directory %s: %w", types.ErrIO, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".output-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", types.ErrIO, err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: writing %s: %w", types.ErrIO, path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing temp file: %w", types.ErrIO, closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replacing %s: %w", types.ErrIO, path, err)
	}
	return nil
}
