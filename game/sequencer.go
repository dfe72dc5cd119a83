package game

import "math/rand"

// DrawNext picks uniformly at random among the numbers in [min, max]
// that are not yet present in served, and returns the pick together
// with the served slice extended by it. ok is false when the range is
// exhausted; served is returned unchanged in that case.
//
// The caller owns the randomness source, so sequences are reproducible
// under a seeded rng.
func DrawNext(min, max int, served []int, rng *rand.Rand) (next int, updated []int, ok bool) {
	taken := make(map[int]bool, len(served))
	for _, n := range served {
		taken[n] = true
	}

	var remaining []int
	for n := min; n <= max; n++ {
		if !taken[n] {
			remaining = append(remaining, n)
		}
	}
	if len(remaining) == 0 {
		return 0, served, false
	}

	next = remaining[rng.Intn(len(remaining))]
	return next, append(served, next), true
}
