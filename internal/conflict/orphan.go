package conflict

import (
	"sort"

	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
)

// OrphanReference is a modding-range id some mod points at via a
// reference-bearing directive (#req_monster, #killmonster, …) that no
// mod in the set actually defines. Spec calls this rare and
// informational: it never blocks a merge.
type OrphanReference struct {
	Kind catalog.EntityKind
	ID   int
	Mod  string
}

// DetectOrphans finds every Referenced id that no mod's DefinedIDs
// covers, for the reference-bearing kinds. Vanilla-range references
// are never orphans — vanilla content always exists.
func DetectOrphans(order []string, defs map[string]*model.ModDefinition) []OrphanReference {
	definedByKind := make(map[catalog.EntityKind]map[int]struct{}, len(catalog.Kinds))
	for _, k := range catalog.Kinds {
		definedByKind[k] = map[int]struct{}{}
	}
	for _, modName := range order {
		def := defs[modName]
		if def == nil {
			continue
		}
		for _, k := range catalog.Kinds {
			for id := range def.Entity(k).DefinedIDs {
				definedByKind[k][id] = struct{}{}
			}
		}
	}

	var out []OrphanReference
	for _, modName := range order {
		def := defs[modName]
		if def == nil {
			continue
		}
		for _, k := range catalog.Kinds {
			for id := range def.Entity(k).Referenced {
				if !catalog.InModding(k, id) {
					continue
				}
				if _, ok := definedByKind[k][id]; ok {
					continue
				}
				out = append(out, OrphanReference{Kind: k, ID: id, Mod: modName})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Mod < out[j].Mod
	})
	return out
}
