// Package random provides the seeded randomness source shared by variant
// assignment, message rotation and send pacing.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Source is a goroutine-safe pseudo-random source. Two sources built from
// the same seed produce the same sequence.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// FromConfig uses seed when non-zero and a fresh crypto seed otherwise.
func FromConfig(seed int64) (*Source, error) {
	if seed != 0 {
		return New(seed), nil
	}
	s, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Intn returns a value in [0, n). n must be positive.
func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Between returns a value in [lo, hi] inclusive.
func (s *Source) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo+1)
}

// Duration returns a duration uniformly drawn from [lo, hi].
func (s *Source) Duration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + time.Duration(s.rng.Int63n(int64(hi-lo)+1))
}
