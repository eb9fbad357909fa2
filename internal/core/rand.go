package core

import (
	"math/rand"
	"time"
)

// Rand is the single source of randomness for movement decisions.
// *rand.Rand satisfies it; tests inject a ScriptedRand to replay exact
// trajectories.
type Rand interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
	// Intn returns a number in [0, n). n must be positive.
	Intn(n int) int
}

// NewRand returns a seeded math/rand source.
// A zero seed means "use the current time".
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// ScriptedRand replays fixed sequences of random values.
// Once a sequence is exhausted Float64 returns Fallback and Intn returns 0.
type ScriptedRand struct {
	Floats   []float64
	Ints     []int
	Fallback float64

	floatPos int
	intPos   int
}

// Float64 returns the next scripted float.
func (r *ScriptedRand) Float64() float64 {
	if r.floatPos >= len(r.Floats) {
		return r.Fallback
	}
	v := r.Floats[r.floatPos]
	r.floatPos++
	return v
}

// Intn returns the next scripted int, reduced modulo n.
func (r *ScriptedRand) Intn(n int) int {
	if n <= 0 {
		panic("core: invalid argument to Intn")
	}
	if r.intPos >= len(r.Ints) {
		return 0
	}
	v := r.Ints[r.intPos]
	r.intPos++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Consumed returns how many floats and ints have been drawn so far.
func (r *ScriptedRand) Consumed() (floats, ints int) {
	return r.floatPos, r.intPos
}
