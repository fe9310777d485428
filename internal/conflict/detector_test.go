package conflict

import (
	"testing"

	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
)

func withIDs(kind catalog.EntityKind, ids ...int) *model.ModDefinition {
	def := model.NewModDefinition("")
	for _, id := range ids {
		def.Entity(kind).DefinedIDs[id] = struct{}{}
	}
	return def
}

func TestDetectFindsModdingCollision(t *testing.T) {
	defs := map[string]*model.ModDefinition{
		"a": withIDs(catalog.Monster, 5000, 5001),
		"b": withIDs(catalog.Monster, 5000),
	}
	collisions, overlaps := Detect([]string{"a", "b"}, defs)
	if len(overlaps) != 0 {
		t.Fatalf("expected no vanilla overlaps, got %v", overlaps)
	}
	if len(collisions) != 1 || collisions[0].ID != 5000 {
		t.Fatalf("expected a single collision on 5000, got %v", collisions)
	}
}

func TestDetectFindsVanillaOverlap(t *testing.T) {
	a := model.NewModDefinition("")
	a.Entity(catalog.Monster).VanillaEditedIDs[10] = struct{}{}
	b := model.NewModDefinition("")
	b.Entity(catalog.Monster).VanillaEditedIDs[10] = struct{}{}

	_, overlaps := Detect([]string{"a", "b"}, map[string]*model.ModDefinition{"a": a, "b": b})
	if len(overlaps) != 1 || overlaps[0].ID != 10 {
		t.Fatalf("expected one vanilla overlap on id 10, got %v", overlaps)
	}
}

func TestDetectOrphansFindsUndefinedReference(t *testing.T) {
	a := model.NewModDefinition("")
	a.Entity(catalog.Monster).Referenced[5050] = struct{}{}

	orphans := DetectOrphans([]string{"a"}, map[string]*model.ModDefinition{"a": a})
	if len(orphans) != 1 || orphans[0].ID != 5050 {
		t.Fatalf("expected one orphan reference on 5050, got %v", orphans)
	}
}

func TestDetectOrphansIgnoresDefinedReference(t *testing.T) {
	a := model.NewModDefinition("")
	a.Entity(catalog.Monster).Referenced[5050] = struct{}{}
	b := withIDs(catalog.Monster, 5050)

	orphans := DetectOrphans([]string{"a", "b"}, map[string]*model.ModDefinition{"a": a, "b": b})
	if len(orphans) != 0 {
		t.Fatalf("expected no orphans once some mod defines 5050, got %v", orphans)
	}
}

func TestDetectOrphansIgnoresVanillaReferences(t *testing.T) {
	a := model.NewModDefinition("")
	a.Entity(catalog.Monster).Referenced[10] = struct{}{} // vanilla range

	orphans := DetectOrphans([]string{"a"}, map[string]*model.ModDefinition{"a": a})
	if len(orphans) != 0 {
		t.Fatalf("expected vanilla-range references to never be orphans, got %v", orphans)
	}
}
