// Package conflict compares parsed mods pairwise to enumerate ID
// collisions in the modding range, and vanilla-edit overlaps that are
// warned on but never remapped.
package conflict

import (
	"sort"

	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
)

// Collision is one (kind, id) that two named mods both define in the
// modding range.
type Collision struct {
	Kind catalog.EntityKind
	ID   int
	ModA string
	ModB string
}

// VanillaOverlap is one (kind, id) that two named mods both edit in
// the vanilla range. Never remapped — vanilla IDs are immutable
// addresses in the game.
type VanillaOverlap struct {
	Kind catalog.EntityKind
	ID   int
	ModA string
	ModB string
}

// Detect enumerates every pairwise collision and vanilla-edit overlap
// across the given mods, in a deterministic order: by kind (catalog
// order), then by id, then by mod-pair input order.
func Detect(order []string, defs map[string]*model.ModDefinition) ([]Collision, []VanillaOverlap) {
	var collisions []Collision
	var overlaps []VanillaOverlap

	for _, kind := range catalog.Kinds {
		for i := 0; i < len(order); i++ {
			for j := i + 1; j < len(order); j++ {
				a, b := order[i], order[j]
				defA, defB := defs[a], defs[b]
				if defA == nil || defB == nil {
					continue
				}
				entA, entB := defA.Entity(kind), defB.Entity(kind)

				for id := range intersect(entA.DefinedIDs, entB.DefinedIDs) {
					collisions = append(collisions, Collision{Kind: kind, ID: id, ModA: a, ModB: b})
				}
				for id := range intersect(entA.VanillaEditedIDs, entB.VanillaEditedIDs) {
					overlaps = append(overlaps, VanillaOverlap{Kind: kind, ID: id, ModA: a, ModB: b})
				}
			}
		}
	}

	rank := make(map[catalog.EntityKind]int, len(catalog.Kinds))
	for i, k := range catalog.Kinds {
		rank[k] = i
	}
	sort.SliceStable(collisions, func(i, j int) bool {
		if collisions[i].Kind != collisions[j].Kind {
			return rank[collisions[i].Kind] < rank[collisions[j].Kind]
		}
		return collisions[i].ID < collisions[j].ID
	})
	sort.SliceStable(overlaps, func(i, j int) bool {
		if overlaps[i].Kind != overlaps[j].Kind {
			return rank[overlaps[i].Kind] < rank[overlaps[j].Kind]
		}
		return overlaps[i].ID < overlaps[j].ID
	})

	return collisions, overlaps
}

func intersect(a, b map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{})
	for id := range a {
		if _, ok := b[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}
