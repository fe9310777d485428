package alloc

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
)

func defWithMonsters(name string, ids ...int) *model.ModDefinition {
	def := model.NewModDefinition(name)
	for _, id := range ids {
		def.Entity(catalog.Monster).DefinedIDs[id] = struct{}{}
	}
	return def
}

func TestAllocateSimpleMonsterCollision(t *testing.T) {
	order := []string{"A", "B"}
	defs := map[string]*model.ModDefinition{
		"A": defWithMonsters("A", 5000, 5001),
		"B": defWithMonsters("B", 5000, 5001),
	}

	res, err := Allocate(context.Background(), order, defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := res.Mappings["A"].Lookup(catalog.Monster, 5000); got != 5000 {
		t.Fatalf("mod A's 5000 should stay 5000, got %d", got)
	}
	if got := res.Mappings["A"].Lookup(catalog.Monster, 5001); got != 5001 {
		t.Fatalf("mod A's 5001 should stay 5001, got %d", got)
	}
	if got := res.Mappings["B"].Lookup(catalog.Monster, 5000); got != 5002 {
		t.Fatalf("mod B's 5000 should remap to 5002, got %d", got)
	}
	if got := res.Mappings["B"].Lookup(catalog.Monster, 5001); got != 5003 {
		t.Fatalf("mod B's 5001 should remap to 5003, got %d", got)
	}
	if len(res.Collisions) != 2 {
		t.Fatalf("expected 2 collisions, got %d: %+v", len(res.Collisions), res.Collisions)
	}
}

func TestAllocateIdentityMinimization(t *testing.T) {
	order := []string{"A", "B"}
	defs := map[string]*model.ModDefinition{
		"A": defWithMonsters("A", 5000),
		"B": defWithMonsters("B", 5001),
	}
	res, err := Allocate(context.Background(), order, defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := res.Mappings["A"].Lookup(catalog.Monster, 5000); got != 5000 {
		t.Fatalf("unique id should stay identity, got %d", got)
	}
	if got := res.Mappings["B"].Lookup(catalog.Monster, 5001); got != 5001 {
		t.Fatalf("unique id should stay identity, got %d", got)
	}
	if len(res.Collisions) != 0 {
		t.Fatalf("expected no collisions, got %+v", res.Collisions)
	}
}

func TestAllocateImplicitDefinitions(t *testing.T) {
	def := model.NewModDefinition("A")
	def.Entity(catalog.Spell).ImplicitDefinitions = 2
	order := []string{"A"}
	defs := map[string]*model.ModDefinition{"A": def}

	res, err := Allocate(context.Background(), order, defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := res.Implicit["A"][catalog.Spell]
	if len(got) != 2 {
		t.Fatalf("expected 2 allocated ids, got %v", got)
	}
	if got[0] != 2000 || got[1] != 2001 {
		t.Fatalf("expected [2000 2001], got %v", got)
	}
}

func TestAllocateDeterministicAcrossRuns(t *testing.T) {
	order := []string{"A", "B"}
	mk := func() map[string]*model.ModDefinition {
		return map[string]*model.ModDefinition{
			"A": defWithMonsters("A", 5000, 5001),
			"B": defWithMonsters("B", 5000, 5001),
		}
	}
	r1, err := Allocate(context.Background(), order, mk())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := Allocate(context.Background(), order, mk())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r1.Mappings["B"].Lookup(catalog.Monster, 5000) != r2.Mappings["B"].Lookup(catalog.Monster, 5000) {
		t.Fatalf("expected deterministic allocation across runs")
	}

	sortEntries := func(m *model.IdMapping) []model.MappingEntry {
		e := m.Entries()
		sort.Slice(e, func(i, j int) bool {
			if e[i].Kind != e[j].Kind {
				return e[i].Kind < e[j].Kind
			}
			return e[i].Old < e[j].Old
		})
		return e
	}
	for _, mod := range order {
		if diff := cmp.Diff(sortEntries(r1.Mappings[mod]), sortEntries(r2.Mappings[mod])); diff != "" {
			t.Fatalf("mod %s mapping differs across identical runs (-first +second):\n%s", mod, diff)
		}
	}
}
