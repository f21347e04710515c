// internal/config/config.go

// Package config reads optional YAML run files. Keys mirror the long
// flag names; the CLI layer copies values only onto flags the user left
// unset, so the command line always wins.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File holds one parsed run file. Pointer fields distinguish "absent"
// from a zero value.
type File struct {
	Ref           *string  `yaml:"ref"`
	Samples       []string `yaml:"samples"`
	Ploidy        *int     `yaml:"ploidy"`
	MinGF         *float64 `yaml:"min-gf"`
	MinCF         *float64 `yaml:"min-cf"`
	MinPF         *float64 `yaml:"min-pf"`
	MinPN         *int     `yaml:"min-pn"`
	Progressive   *bool    `yaml:"progressive"`
	Order         *string  `yaml:"order"`
	IncludeRef    *bool    `yaml:"include-ref"`
	DistSites     *string  `yaml:"dist-sites"`
	DistAgg       *string  `yaml:"dist-agg"`
	NoDist        *bool    `yaml:"no-dist"`
	ChunkWidth    *int     `yaml:"chunk-width"`
	MemMB         *int     `yaml:"mem-mb"`
	Threads       *int     `yaml:"threads"`
	OutDir        *string  `yaml:"out-dir"`
	SummaryFormat *string  `yaml:"summary-format"`
}

// Load parses path strictly: unknown keys are errors, so a typo cannot
// silently fall back to a default.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &f, nil
}
