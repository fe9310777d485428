// Package model holds the data types shared across the merge pipeline:
// mod handles, per-mod entity definitions, ID mapping tables, and the
// frozen mapped-mod view the writer consumes.
package model

import (
	"io"

	"github.com/domtools/dommerge/internal/catalog"
)

// ModFile is a source handle: a name, an optional on-disk path, and a
// content provider that yields the full text on demand. The full
// content is re-read on demand and never cached beyond one traversal;
// only header metadata (derived from the first 4 KiB) may be cached by
// callers, and must be invalidated if the content changes underneath
// them.
type ModFile struct {
	Name string
	Path string

	// Open returns a fresh reader over the mod's full content. Called
	// once per traversal (parse, then again during the write pass).
	Open func() (io.ReadCloser, error)
}

// HeaderMeta is metadata parsed from at most the first 4 KiB of a mod's
// content: mod name, description, version, and icon-relative path.
type HeaderMeta struct {
	ModName     string
	Description string
	Version     string
	DomVersion  string
	IconPath    string
}

// EntityDefinition tracks, for one EntityKind within one mod, every ID
// and name that mod declares or edits.
type EntityDefinition struct {
	// DefinedIDs are modding-range IDs this mod newly defines or
	// re-edits within its own range.
	DefinedIDs map[int]struct{}
	// VanillaEditedIDs are vanilla-range IDs this mod edits. Never
	// remapped; collisions across mods are warned on only.
	VanillaEditedIDs map[int]struct{}
	// ImplicitDefinitions counts unnumbered "#newX" declarations, in
	// source order. The allocator assigns one fresh ID per count; the
	// writer consumes them positionally as it re-encounters the
	// unnumbered directives.
	ImplicitDefinitions int
	// DefinedNames holds string names declared for this kind. The
	// scanner does not fill it, so it stays empty.
	DefinedNames map[string]struct{}
	// Referenced are IDs this mod points at via a reference-bearing
	// directive (#req_monster, #killmonster, …) without itself
	// defining them. Tracked separately from DefinedIDs so a
	// reference never contributes a false collision, and so orphan
	// references (pointing at an id no mod defines) can be detected.
	Referenced map[int]struct{}
}

// NewEntityDefinition returns an EntityDefinition with its sets
// initialized and ready to record.
func NewEntityDefinition() *EntityDefinition {
	return &EntityDefinition{
		DefinedIDs:       map[int]struct{}{},
		VanillaEditedIDs: map[int]struct{}{},
		DefinedNames:     map[string]struct{}{},
		Referenced:       map[int]struct{}{},
	}
}

// ModDefinition is the parse result for one mod: its declared name and,
// per EntityKind, what it defines or edits.
type ModDefinition struct {
	ModName  string
	Entities map[catalog.EntityKind]*EntityDefinition
}

// NewModDefinition returns a ModDefinition with an EntityDefinition
// pre-populated for every known EntityKind.
func NewModDefinition(modName string) *ModDefinition {
	md := &ModDefinition{
		ModName:  modName,
		Entities: make(map[catalog.EntityKind]*EntityDefinition, len(catalog.Kinds)),
	}
	for _, k := range catalog.Kinds {
		md.Entities[k] = NewEntityDefinition()
	}
	return md
}

// Entity returns the EntityDefinition for kind, creating it if this is
// somehow the first reference to a kind absent from the pre-populated
// table (never happens for a catalog.Kinds-complete map, kept as a
// defensive accessor).
func (m *ModDefinition) Entity(kind catalog.EntityKind) *EntityDefinition {
	e, ok := m.Entities[kind]
	if !ok {
		e = NewEntityDefinition()
		m.Entities[kind] = e
	}
	return e
}

// idKey identifies one (kind, old id) mapping entry.
type idKey struct {
	Kind catalog.EntityKind
	Old  int
}

// IdMapping is a per-mod, per-kind remapping table. Identity mappings
// (old == new) are never stored; Lookup falls back to returning the
// original id unchanged, which is indistinguishable from an elided
// identity mapping — exactly invariant 3 (identity minimization) wants.
type IdMapping struct {
	entries map[idKey]int
}

// NewIdMapping returns an empty, mutable IdMapping.
func NewIdMapping() *IdMapping {
	return &IdMapping{entries: map[idKey]int{}}
}

// Set records old -> new for kind. A no-op if new == old (keeps the
// table minimal per invariant 3).
func (m *IdMapping) Set(kind catalog.EntityKind, old, new int) {
	if old == new {
		return
	}
	m.entries[idKey{kind, old}] = new
}

// Lookup returns the mapped id for (kind, old), or old unchanged if no
// mapping is recorded.
func (m *IdMapping) Lookup(kind catalog.EntityKind, old int) int {
	if m == nil {
		return old
	}
	if n, ok := m.entries[idKey{kind, old}]; ok {
		return n
	}
	return old
}

// Entries returns a copy of the mapping as a flat slice, used by
// reporting and by tests that need to enumerate remaps.
type MappingEntry struct {
	Kind catalog.EntityKind
	Old  int
	New  int
}

func (m *IdMapping) Entries() []MappingEntry {
	out := make([]MappingEntry, 0, len(m.entries))
	for k, v := range m.entries {
		out = append(out, MappingEntry{Kind: k.Kind, Old: k.Old, New: v})
	}
	return out
}

// MappedModDefinition pairs a ModFile with its frozen IdMapping. Once
// constructed it is never mutated; Lookup on an unknown (kind, id)
// returns the original id.
type MappedModDefinition struct {
	File    ModFile
	Mapping *IdMapping

	// ImplicitAllocations holds, per kind, the ordered list of fresh
	// IDs allocated for that kind's unnumbered "#newX" declarations in
	// this mod — the i-th entry is the ID for the i-th such directive
	// encountered in source order.
	ImplicitAllocations map[catalog.EntityKind][]int
}

// NewMappedModDefinition freezes mapping and the implicit-allocation
// table into a MappedModDefinition for file.
func NewMappedModDefinition(file ModFile, mapping *IdMapping, implicit map[catalog.EntityKind][]int) *MappedModDefinition {
	return &MappedModDefinition{File: file, Mapping: mapping, ImplicitAllocations: implicit}
}

// NextImplicit returns the next pre-allocated ID for kind, given how
// many of that kind's unnumbered directives the caller has already
// consumed (seen); the table itself is not modified. Returns false if
// exhausted (a bug elsewhere
// in the pipeline, since the allocator sizes this table from the exact
// count the scanner recorded).
func (m *MappedModDefinition) NextImplicit(kind catalog.EntityKind, seen int) (int, bool) {
	ids := m.ImplicitAllocations[kind]
	if seen < 0 || seen >= len(ids) {
		return 0, false
	}
	return ids[seen], true
}

// ModGroup is a named set of input mods declared as co-dependent; the
// scanner treats them as one concatenated virtual mod while the writer
// still tracks original files for resource copying.
type ModGroup struct {
	Name  string
	Files []ModFile
}
