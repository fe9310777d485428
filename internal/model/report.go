package model

import "github.com/domtools/dommerge/internal/catalog"

// Collision records one (kind, id) that two mods both defined in the
// modding range, and how it was resolved.
type Collision struct {
	Kind      catalog.EntityKind `json:"kind" yaml:"kind"`
	ID        int                `json:"id" yaml:"id"`
	WinnerMod string             `json:"winner_mod" yaml:"winner_mod"`
	LoserMod  string             `json:"loser_mod" yaml:"loser_mod"`
	NewID     int                `json:"new_id" yaml:"new_id"`
}

// PerModMapping is the flattened view of one mod's IdMapping, suitable
// for the JSON/YAML report renderer.
type PerModMapping struct {
	Mod     string          `json:"mod" yaml:"mod"`
	Remaps  []MappingEntry  `json:"remaps" yaml:"remaps"`
}

// MergeReport is the structured result of one merge run, returned
// whether or not the run actually wrote output (DryRun).
type MergeReport struct {
	OutputPath     string          `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Mods           []string        `json:"mods" yaml:"mods"`
	Collisions     []Collision     `json:"collisions" yaml:"collisions"`
	Warnings       []Warning       `json:"warnings" yaml:"warnings"`
	PerModMappings []PerModMapping `json:"per_mod_mappings" yaml:"per_mod_mappings"`
}

// AddWarning appends w to the report. Not safe for concurrent use: the
// writer only calls this after the parse fan-out has joined, from the
// single allocation/write goroutine.
func (r *MergeReport) AddWarning(w Warning) {
	r.Warnings = append(r.Warnings, w)
}
