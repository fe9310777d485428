package rewrite

import (
	"testing"

	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
)

func TestProcessLineRemapsMonster(t *testing.T) {
	mapping := model.NewIdMapping()
	mapping.Set(catalog.Monster, 5000, 5002)

	rewritten, audit, changed := ProcessLine("#newmonster 5000", mapping)
	if !changed {
		t.Fatalf("expected a change")
	}
	if rewritten != "#newmonster 5002" {
		t.Fatalf("unexpected rewrite: %q", rewritten)
	}
	if audit != "-- MOD MERGER: Remapped Monster 5000 -> 5002" {
		t.Fatalf("unexpected audit: %q", audit)
	}
}

func TestProcessLineNoChangeWhenUnmapped(t *testing.T) {
	mapping := model.NewIdMapping()
	rewritten, audit, changed := ProcessLine("#newmonster 5000", mapping)
	if changed || audit != "" || rewritten != "#newmonster 5000" {
		t.Fatalf("expected no change, got %q %q %v", rewritten, audit, changed)
	}
}

func TestProcessLineWholeWordBoundary(t *testing.T) {
	mapping := model.NewIdMapping()
	mapping.Set(catalog.Monster, 500, 999)
	// 5001 must not be mistaken for a substring match of "500".
	rewritten, _, changed := ProcessLine("#selectmonster 5001", mapping)
	if changed {
		t.Fatalf("expected no change for 5001 given a mapping only for 500, got %q", rewritten)
	}
}

func TestProcessLinePreservesTrailingComment(t *testing.T) {
	mapping := model.NewIdMapping()
	mapping.Set(catalog.Weapon, 1000, 1005)
	rewritten, _, changed := ProcessLine("#selectweapon 1000 -- inline note", mapping)
	if !changed {
		t.Fatalf("expected a change")
	}
	if rewritten != "#selectweapon 1005 -- inline note" {
		t.Fatalf("unexpected rewrite: %q", rewritten)
	}
}
