package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile serializes records as a single indented JSON array at
// <dir>/<name>.json, creating dir when missing. The array is materialized
// in full before anything touches disk, so a failed fetch never leaves a
// truncated file behind.
func WriteFile(dir, name string, records interface{}) (string, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s records: %w", name, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
