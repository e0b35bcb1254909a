package core

import (
	"math"
	"strconv"
	"strings"
)

// Round rounds v to d decimal places with half-up semantics, like
// JavaScript's Math.round (-2.5 rounds to -2).
func Round(v float64, d int) float64 {
	if d == 0 {
		return math.Floor(v + 0.5)
	}
	m := math.Pow(10, float64(d))
	return math.Floor(v*m+0.5) / m
}

// MinMax clamps v into [lo, hi].
func MinMax(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Lim clamps a height into the 0-100 range.
func Lim(v float64) float64 {
	return MinMax(v, 0, 100)
}

// LimUint8 clamps v into 0-100 and truncates it the way a byte store does.
func LimUint8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(Lim(v))
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// parseNumber converts s the way unary plus does: blank strings are zero and
// anything unparsable is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseNumber exposes the permissive number conversion used by recipe
// arguments. ok is false when s is not a number.
func ParseNumber(s string) (v float64, ok bool) {
	v = parseNumber(s)
	return v, !math.IsNaN(v)
}
