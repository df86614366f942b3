package wisp

import "math/rand/v2"

// StaggerOffsets returns per-unit start offsets, in seconds, for n units
// sharing a total stagger amount. Sequential offsets are non-decreasing in
// index order and span exactly [0, amount]. Random offsets are a shuffled
// permutation of the sequential ones, so units do not visibly animate
// left-to-right.
func StaggerOffsets(n int, amount float64, order StaggerOrder, rng *rand.Rand) []float64 {
	offsets := make([]float64, n)
	if n <= 1 || amount <= 0 {
		return offsets
	}
	last := float64(n - 1)
	for i := range offsets {
		offsets[i] = amount * float64(i) / last
	}
	offsets[n-1] = amount

	if order == StaggerRandom {
		rng.Shuffle(n, func(i, j int) {
			offsets[i], offsets[j] = offsets[j], offsets[i]
		})
	}
	return offsets
}
