package core

import (
	"math"
	"strings"
)

// Rand returns an integer in [min, max], both inclusive.
func Rand(src Source, min, max int) int {
	return int(math.Floor(src.Float64()*float64(max-min+1))) + min
}

// RandFloat applies the inclusive range formula to fractional bounds. The
// result keeps the fractional part of min.
func RandFloat(src Source, min, max float64) float64 {
	return math.Floor(src.Float64()*(max-min+1)) + min
}

// P reports true with probability p. Certain outcomes do not consume a draw.
func P(src Source, p float64) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return src.Float64() < p
}

// Pint rounds v probabilistically: the integer part plus one with
// probability equal to the fractional part.
func Pint(src Source, v float64) int {
	n := int(v)
	if P(src, math.Mod(v, 1)) {
		n++
	}
	return n
}

// Biased returns an integer in [min, max] skewed towards min for ex > 1.
func Biased(src Source, min, max int, ex float64) int {
	v := float64(min) + float64(max-min)*math.Pow(src.Float64(), ex)
	return int(Round(v, 0))
}

// Gauss samples a normal distribution with the polar method, clamps the
// sample into [min, max] and rounds it to round decimal places.
func Gauss(src Source, expected, deviation, min, max float64, round int) float64 {
	var x, y, r float64
	for {
		x = src.Float64()*2 - 1
		y = src.Float64()*2 - 1
		r = x*x + y*y
		if r != 0 && r <= 1 {
			break
		}
	}
	z := y * math.Sqrt(-2*math.Log(r)/r)
	return Round(MinMax(expected+deviation*z, min, max), round)
}

// Ra picks a random element of items.
func Ra[T any](src Source, items []T) T {
	return items[int(math.Floor(src.Float64()*float64(len(items))))]
}

// Weighted pairs a value with its relative selection weight.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// Rw picks a value with probability proportional to its weight. Items are
// expanded in slice order, so the order is part of the contract.
func Rw[T any](src Source, items []Weighted[T]) T {
	var pool []T
	for _, it := range items {
		for i := 0; i < it.Weight; i++ {
			pool = append(pool, it.Value)
		}
	}
	return Ra(src, pool)
}

// NumberInRange resolves a recipe count or height argument. Plain numbers
// round probabilistically on their fraction; "a-b" samples uniformly from
// the inclusive range; anything else resolves to 0.
func NumberInRange(src Source, s string) int {
	if v := parseNumber(s); !math.IsNaN(v) {
		whole := math.Trunc(v)
		n := int(whole)
		if P(src, v-whole) {
			n++
		}
		return n
	}

	sign := 1.0
	if s[0] == '-' {
		sign = -1
	}
	if c := s[0]; (c < '0' || c > '9') && c != ' ' {
		s = s[1:]
	}
	if !strings.Contains(s, "-") {
		return 0
	}
	parts := strings.Split(s, "-")
	count := RandFloat(src, parseNumber(parts[0])*sign, parseNumber(parts[1]))
	if math.IsNaN(count) || count < 0 {
		return 0
	}
	return int(count)
}

// PointInRange maps a percentage range such as "40-60" onto [0, length] and
// samples a coordinate from it.
func PointInRange(src Source, s string, length float64) float64 {
	parts := strings.Split(s, "-")
	min := parseNumber(parts[0]) / 100
	if math.IsNaN(min) || min == 0 {
		min = 0
	}
	max := math.NaN()
	if len(parts) > 1 {
		max = parseNumber(parts[1]) / 100
	}
	if math.IsNaN(max) || max == 0 {
		max = min
	}
	return RandFloat(src, min*length, max*length)
}
