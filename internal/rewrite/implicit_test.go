package rewrite

import (
	"testing"

	"github.com/domtools/dommerge/internal/catalog"
)

func TestConvertImplicitNewRewritesUnnumbered(t *testing.T) {
	audit, rewritten, ok := ConvertImplicitNew("#newmonster", catalog.Monster, 5003)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if rewritten != "#selectmonster 5003" {
		t.Fatalf("unexpected rewrite: %q", rewritten)
	}
	if audit == "" {
		t.Fatalf("expected a non-empty audit comment")
	}
}

func TestConvertImplicitNewPreservesTrailingTokens(t *testing.T) {
	_, rewritten, ok := ConvertImplicitNew("#newitem -- a comment", catalog.Item, 700)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if rewritten != "#selectitem 700 -- a comment" {
		t.Fatalf("unexpected rewrite: %q", rewritten)
	}
}

func TestConvertImplicitNewRejectsAlreadyNumbered(t *testing.T) {
	_, _, ok := ConvertImplicitNew("#newmonster 5000", catalog.Monster, 5003)
	if ok {
		t.Fatalf("expected ok=false for an already-numbered #newmonster line")
	}
}

func TestConvertImplicitNewRejectsNonMatchingLine(t *testing.T) {
	_, _, ok := ConvertImplicitNew("#newweapon", catalog.Monster, 5003)
	if ok {
		t.Fatalf("expected ok=false when line doesn't match kind's pattern")
	}
}
