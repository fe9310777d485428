// Package alloc implements the merge pipeline's ID-allocation stage
// (spec §4.4): given every mod's parsed ModDefinition, compute a
// per-mod IdMapping that eliminates modding-range collisions while
// keeping non-colliding IDs untouched.
package alloc

import (
	"context"
	"sort"

	"github.com/domtools/dommerge/ids"
	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
)

// Result is the allocator's output: the frozen per-mod mappings plus
// the collisions it resolved, in deterministic order.
type Result struct {
	Mappings   map[string]*model.IdMapping
	Implicit   map[string]map[catalog.EntityKind][]int
	Collisions []model.Collision
}

// rangeFor adapts a catalog.IdRange into the generic ids.Range the
// allocator submodule understands.
func rangeFor(kind catalog.EntityKind) ids.Range {
	r := catalog.RangeFor(kind)
	return ids.Range{Start: r.ModdingStart, End: r.ModdingEnd}
}

// Allocate runs the deterministic, order-dependent algorithm from spec
// §4.4: first claim every modding-range id for the first mod (in input
// order) that defines it; then, in input-mod order and ascending-id
// order within each mod, reassign the smallest free id to each id an
// earlier mod already holds; allocate fresh ids for unnumbered
// declarations last, per mod per kind. ctx is checked between mods (spec §5's "cooperative
// cancellation flag checked between mods during parsing, between kinds
// during allocation"); a cancelled context aborts with ctx.Err().
func Allocate(ctx context.Context, order []string, defs map[string]*model.ModDefinition) (*Result, error) {
	a := ids.NewAllocator()
	// claimedBy tracks, per (kind,id), which mod first claimed the
	// identity mapping — needed so a later collision's report names
	// the winner.
	claimedBy := map[catalog.EntityKind]map[int]string{}
	for _, k := range catalog.Kinds {
		claimedBy[k] = map[int]string{}
	}

	res := &Result{
		Mappings: make(map[string]*model.IdMapping, len(order)),
		Implicit: make(map[string]map[catalog.EntityKind][]int, len(order)),
	}

	// Claim each id for the first mod that defines it before any
	// reassignment, so a fresh id never takes one a later mod owns.
	for _, modName := range order {
		for _, kind := range catalog.Kinds {
			for id := range defs[modName].Entity(kind).DefinedIDs {
				if _, ok := claimedBy[kind][id]; !ok {
					a.Claim(string(kind), id)
					claimedBy[kind][id] = modName
				}
			}
		}
	}

	for _, modName := range order {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		def := defs[modName]
		mapping := model.NewIdMapping()
		implicit := make(map[catalog.EntityKind][]int, len(catalog.Kinds))

		for _, kind := range catalog.Kinds {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			ent := def.Entity(kind)
			space := string(kind)
			r := rangeFor(kind)

			ascending := make([]int, 0, len(ent.DefinedIDs))
			for id := range ent.DefinedIDs {
				ascending = append(ascending, id)
			}
			sort.Ints(ascending)

			for _, id := range ascending {
				if claimedBy[kind][id] == modName {
					continue
				}
				newID, err := a.Allocate(space, r)
				if err != nil {
					return nil, &model.IdSpaceExhausted{Kind: kind}
				}
				mapping.Set(kind, id, newID)
				res.Collisions = append(res.Collisions, model.Collision{
					Kind:      kind,
					ID:        id,
					WinnerMod: claimedBy[kind][id],
					LoserMod:  modName,
					NewID:     newID,
				})
			}

			if ent.ImplicitDefinitions > 0 {
				ids_, err := a.AllocateN(space, r, ent.ImplicitDefinitions)
				if err != nil {
					return nil, &model.IdSpaceExhausted{Kind: kind}
				}
				implicit[kind] = ids_
			}
		}

		res.Mappings[modName] = mapping
		res.Implicit[modName] = implicit
	}

	return res, nil
}
