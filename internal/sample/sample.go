// Package sample ships a small Swagger 2.0 user-management document that
// exercises every derivation rule of the generator: a collection path, an
// id-templated item path and all four CRUD verbs.
package sample

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed sample_swagger.json
var document []byte

// FileName is the default name used when writing the document.
const FileName = "sample_swagger.json"

// Bytes returns a copy of the embedded document.
func Bytes() []byte {
	out := make([]byte, len(document))
	copy(out, document)
	return out
}

// Write stores the document at path, creating parent directories. An
// existing file is only replaced when force is set.
func Write(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("sample: %q already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("sample: create parent directory: %w", err)
	}
	if err := os.WriteFile(path, document, 0o644); err != nil {
		return fmt.Errorf("sample: write %s: %w", path, err)
	}
	return nil
}
