// Package manifest writes and reads the JSON side-car file that records a
// book build's provenance without touching the Polyglot binary's own
// headerless format.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manifest describes one build of a .bin opening book.
type Manifest struct {
	BuildID        string    `json:"build_id"`
	SourcePath     string    `json:"source_path"`
	Mode           string    `json:"mode"` // "full" or "compact"
	Games          int64     `json:"games"`
	Moves          int64     `json:"moves"`
	Repaired       int64     `json:"repaired"`
	Abandoned      int64     `json:"abandoned"`
	UniquePosition int64     `json:"unique_positions"`
	Entries        int64     `json:"entries"`
	BuiltAt        time.Time `json:"built_at"`
	Duration       string    `json:"duration"`
	ToolVersion    string    `json:"tool_version"`
}

// New returns a Manifest stamped with a fresh build ID.
func New() *Manifest {
	return &Manifest{BuildID: uuid.NewString()}
}

// pathFor returns the side-car path for a book at binPath (e.g.
// "openings.bin" -> "openings.bin.manifest.json").
func pathFor(binPath string) string {
	return binPath + ".manifest.json"
}

// Write serialises m to binPath's side-car manifest file.
func Write(binPath string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: marshaling: %w", err)
	}
	path := pathFor(binPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && filepath.Dir(path) != "." {
		return fmt.Errorf("manifest: creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("manifest: writing %s: %w", path, err)
	}
	return nil
}

// Read loads the side-car manifest for binPath.
func Read(binPath string) (*Manifest, error) {
	path := pathFor(binPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parsing %s: %w", path, err)
	}
	return &m, nil
}
