package ids

import "testing"

func TestAllocateSmallestFree(t *testing.T) {
	a := NewAllocator()
	r := Range{Start: 5000, End: 5010}

	a.Claim("monster", 5000)
	a.Claim("monster", 5001)

	got, err := a.Allocate("monster", r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5002 {
		t.Fatalf("want 5002, got %d", got)
	}
}

func TestAllocateDistinctSpacesIndependent(t *testing.T) {
	a := NewAllocator()
	a.Claim("monster", 5000)

	got, err := a.Allocate("weapon", Range{Start: 1000, End: 1010})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1000 {
		t.Fatalf("want 1000 (monster claim must not affect weapon space), got %d", got)
	}
}

func TestAllocateNSequential(t *testing.T) {
	a := NewAllocator()
	a.Claim("spell", 2000)

	got, err := a.AllocateN("spell", Range{Start: 2000, End: 2010}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{2001, 2002, 2003}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("index %d: want %d, got %d", i, w, got[i])
		}
	}
}

func TestAllocateExhausted(t *testing.T) {
	a := NewAllocator()
	r := Range{Start: 1, End: 2}
	if _, err := a.Allocate("x", r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := a.Allocate("x", r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := a.Allocate("x", r)
	if err == nil {
		t.Fatalf("expected exhaustion error")
	}
	if _, ok := err.(*ErrExhausted); !ok {
		t.Fatalf("expected *ErrExhausted, got %T", err)
	}
}

func TestIsUsedAndIdempotentClaim(t *testing.T) {
	a := NewAllocator()
	if a.IsUsed("monster", 5000) {
		t.Fatalf("expected 5000 to be free initially")
	}
	a.Claim("monster", 5000)
	a.Claim("monster", 5000)
	if !a.IsUsed("monster", 5000) {
		t.Fatalf("expected 5000 to be used after claim")
	}
}
