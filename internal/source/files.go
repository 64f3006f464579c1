package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFile reads and parses one JSON input document. A missing file or
// malformed JSON is fatal to the run: no partial processing is attempted.
// The description names the document in error messages.
func LoadFile[T any](path, description string) (*T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", description, err)
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s (%s): %w", description, path, err)
	}
	return &doc, nil
}

// WriteFile marshals v with two-space indentation and writes it to path,
// creating parent directories as needed.
func WriteFile(path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
