// Package config provides configuration structures for the column index
// engine: per-index settings and the application configuration loaded from
// YAML.
package config

import (
	"fmt"
	"strings"
)

// IndexSettings configures one equality index over a single column.
type IndexSettings struct {
	Name   string `json:"name" yaml:"name"`     // Unique name for the index
	Column string `json:"column" yaml:"column"` // Column whose values are indexed

	// Diagnostics. All of these are observational toggles wired into tracers
	// at construction time; they never change index contents.
	TraceMerges        bool `json:"trace_merges" yaml:"traceMerges"`                  // Log code-tree merge steps
	VerboseFixup       bool `json:"verbose_fixup" yaml:"verboseFixup"`                // Log tree fix-up cases and rotations
	SnapshotAfterFixup bool `json:"snapshot_after_fixup" yaml:"snapshotAfterFixup"` // Render the tree after each structural insert
}

// ApplyDefaults fills derivable fields: an unnamed index takes its column's
// name.
func (s *IndexSettings) ApplyDefaults() {
	if s.Name == "" {
		s.Column = strings.TrimSpace(s.Column)
		s.Name = s.Column
	}
}

// Validate checks the settings for basic requirements.
func (s *IndexSettings) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("index name cannot be empty")
	}
	if strings.TrimSpace(s.Column) == "" {
		return fmt.Errorf("index '%s': column cannot be empty", s.Name)
	}
	return nil
}
