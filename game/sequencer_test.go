package game

import (
	"math/rand"
	"testing"
)

func TestDrawNext_CoversRangeWithoutRepeats(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	min, max := 1, 10

	var served []int
	seen := make(map[int]bool)
	for i := 0; i < max-min+1; i++ {
		next, updated, ok := DrawNext(min, max, served, rng)
		if !ok {
			t.Fatalf("draw %d: range exhausted too early", i+1)
		}
		if next < min || next > max {
			t.Errorf("draw %d: %d outside [%d, %d]", i+1, next, min, max)
		}
		if seen[next] {
			t.Errorf("draw %d: %d already served", i+1, next)
		}
		seen[next] = true
		served = updated
	}

	if _, _, ok := DrawNext(min, max, served, rng); ok {
		t.Error("expected exhaustion after all numbers served")
	}
	if len(served) != max-min+1 {
		t.Errorf("served %d numbers, want %d", len(served), max-min+1)
	}
}

func TestDrawNext_SingleNumberRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	next, served, ok := DrawNext(5, 5, nil, rng)
	if !ok || next != 5 {
		t.Fatalf("DrawNext(5, 5) = %d, %v; want 5, true", next, ok)
	}
	if _, _, ok := DrawNext(5, 5, served, rng); ok {
		t.Error("single-number range should exhaust after one draw")
	}
}

func TestDrawNext_EmptyRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, _, ok := DrawNext(3, 2, nil, rng); ok {
		t.Error("inverted range should report exhaustion immediately")
	}
}

func TestDrawNext_EveryCandidateReachable(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		next, _, ok := DrawNext(1, 3, nil, rng)
		if !ok {
			t.Fatal("fresh range reported exhausted")
		}
		seen[next] = true
	}
	for n := 1; n <= 3; n++ {
		if !seen[n] {
			t.Errorf("%d never drawn in 200 attempts", n)
		}
	}
}

func TestDrawNext_SkipsServedNumbers(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	served := []int{1, 3}
	next, updated, ok := DrawNext(1, 3, served, rng)
	if !ok {
		t.Fatal("one candidate left, draw should succeed")
	}
	if next != 2 {
		t.Errorf("only 2 remains, got %d", next)
	}
	if len(updated) != 3 {
		t.Errorf("updated slice has %d entries, want 3", len(updated))
	}
}
