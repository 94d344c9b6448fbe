package recommend

import (
	"math/rand/v2"
	"sync"
)

// Rand is the randomness the sampling strategies draw from.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// lockedRand shares one generator between request goroutines.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a goroutine-safe generator seeded with the given values.
func NewRand(seed1, seed2 uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed1, seed2))}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}
