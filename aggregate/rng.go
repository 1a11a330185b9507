// SPDX-License-Identifier: MIT
// Package: pemesh/aggregate
//
// rng.go — deterministic random streams for the Random policy.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Every Run owns its stream.

package aggregate

import "math/rand"

// defaultRNGSeed is used when callers pass seed == 0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed == 0 selects
// defaultRNGSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream id with the SplitMix64
// finalizer, so that per-mesh streams of one run stay uncorrelated.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// StreamSeed returns the seed of stream i derived from a run seed. The
// orchestrator uses it to give every mesh of a run its own Random stream.
func StreamSeed(seed int64, i int) int64 {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	s := deriveSeed(seed, uint64(i))
	if s == 0 {
		s = defaultRNGSeed
	}
	return s
}
