package seed

import "math"

// Rand is a Mulberry32 generator. The sequence for a given seed is
// fixed forever; every derived dataset and replay depends on it.
type Rand struct {
	state uint32
}

// New returns a generator positioned at the start of the sequence for
// the given seed.
func New(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Next returns the next value in [0, 1).
func (r *Rand) Next() float64 {
	r.state += 0x6d2b79f5
	t := r.state
	t = mul32(t^(t>>15), t|1)
	t ^= t + mul32(t^(t>>7), t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// mul32 is 32-bit integer multiplication with wraparound.
func mul32(a, b uint32) uint32 {
	return a * b
}

// Int returns an integer in [min, max], both inclusive.
func (r *Rand) Int(min, max int64) int64 {
	return min + int64(math.Floor(r.Next()*float64(max-min+1)))
}

// Float returns a value in [min, max) rounded to the given number of
// decimal places. decimals of 0 rounds to the nearest integer.
func (r *Rand) Float(min, max float64, decimals int) float64 {
	v := min + r.Next()*(max-min)
	if decimals == 0 {
		return math.Round(v)
	}
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// Pick returns a uniformly chosen element of vals.
func Pick[T any](r *Rand, vals []T) T {
	return vals[r.Int(0, int64(len(vals)-1))]
}

// HashString folds a string into a 32-bit value. Used to derive
// per-entity seeds so each entity gets an independent stream.
func HashString(s string) uint32 {
	var h uint32
	for _, c := range s {
		h = h*31 + uint32(c)
	}
	return h
}
