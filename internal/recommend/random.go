// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package recommend

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource supplies randomness for score jitter and cold-start sampling.
// Implementations must be safe for concurrent use.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// lockedRand serializes access to a *rand.Rand, which is not goroutine safe.
type lockedRand struct {
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewRandomSource returns a mutex-guarded source. A zero seed seeds from the clock.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for feed jitter
	}
}

func (r *lockedRand) Float64() float64 {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.Intn(n)
}

// sampleVideos draws up to n videos uniformly without replacement using a
// partial Fisher-Yates shuffle over a copy of pool.
func sampleVideos(rng RandomSource, pool []Video, n int) []Video {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return []Video{}
	}

	shuffled := make([]Video, len(pool))
	copy(shuffled, pool)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:n]
}
