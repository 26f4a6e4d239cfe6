package plinko

import "math/rand"

// Coin decides the free bounces of a drop. Flip returns true for a step to
// the right.
type Coin interface {
	Flip() bool
}

// CoinFunc adapts a plain function to Coin.
type CoinFunc func() bool

// Flip calls f.
func (f CoinFunc) Flip() bool {
	return f()
}

type randCoin struct {
	rng *rand.Rand
}

// NewCoin returns a fair coin seeded for reproducible drops.
func NewCoin(seed int64) Coin {
	return &randCoin{rng: rand.New(rand.NewSource(seed))}
}

func (c *randCoin) Flip() bool {
	return c.rng.Intn(2) == 1
}
