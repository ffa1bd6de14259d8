package service

import (
	"math/rand"
	"sync"
)

// RandomSource feeds the code generator. Injected so tests can script the
// sequence instead of relying on ambient randomness.
type RandomSource interface {
	Intn(n int) int
}

// lockedRand guards a math/rand.Rand for use from concurrent requests.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRand(seed int64) *lockedRand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}
