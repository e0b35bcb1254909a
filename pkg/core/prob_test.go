package core

import "testing"

// fixed always returns the same draw and counts how often it was asked.
type fixed struct {
	v     float64
	calls int
}

func (f *fixed) Float64() float64 {
	f.calls++
	return f.v
}

func TestRandInclusive(t *testing.T) {
	if got := Rand(&fixed{v: 0.999}, 0, 10); got != 10 {
		t.Fatalf("Rand upper = %d, expected 10", got)
	}
	if got := Rand(&fixed{v: 0}, 3, 7); got != 3 {
		t.Fatalf("Rand lower = %d, expected 3", got)
	}
}

func TestPThreshold(t *testing.T) {
	if !P(&fixed{v: 0.5}, 0.6) {
		t.Fatal("0.5 < 0.6 should pass")
	}
	if P(&fixed{v: 0.7}, 0.6) {
		t.Fatal("0.7 < 0.6 should fail")
	}

	src := &fixed{v: 0.5}
	if !P(src, 1) || P(src, 0) || P(src, -3) {
		t.Fatal("certain outcomes resolved wrongly")
	}
	if src.calls != 0 {
		t.Fatalf("certain outcomes consumed %d draws", src.calls)
	}
}

func TestPintFraction(t *testing.T) {
	if got := Pint(&fixed{v: 0.4}, 1.5); got != 2 {
		t.Fatalf("Pint(1.5) with 0.4 = %d, expected 2", got)
	}
	if got := Pint(&fixed{v: 0.6}, 1.5); got != 1 {
		t.Fatalf("Pint(1.5) with 0.6 = %d, expected 1", got)
	}
}

func TestBiasedRoundsHalfUp(t *testing.T) {
	if got := Biased(&fixed{v: 0.5}, 0, 10, 2); got != 3 {
		t.Fatalf("Biased = %d, expected 3", got)
	}
}

func TestGaussClamps(t *testing.T) {
	rng := NewAlea("gauss")
	for i := 0; i < 1000; i++ {
		v := Gauss(rng, 100, 1000, 0, 300, 0)
		if v < 0 || v > 300 {
			t.Fatalf("Gauss sample %v outside [0,300]", v)
		}
		if v != Round(v, 0) {
			t.Fatalf("Gauss sample %v not rounded", v)
		}
	}
}

func TestNumberInRange(t *testing.T) {
	src := &fixed{v: 0.5}
	if got := NumberInRange(src, "10"); got != 10 {
		t.Fatalf("static = %d, expected 10", got)
	}
	if src.calls != 0 {
		t.Fatal("integer argument should not consume a draw")
	}

	// floor(0.5*6)+5
	if got := NumberInRange(&fixed{v: 0.5}, "5-10"); got != 8 {
		t.Fatalf("range = %d, expected 8", got)
	}
	if got := NumberInRange(&fixed{v: 0.99}, "-5-2"); got != 2 {
		t.Fatalf("negative lower bound = %d, expected 2", got)
	}
	if got := NumberInRange(&fixed{v: 0}, "-5-2"); got != 0 {
		t.Fatalf("negative result = %d, expected 0", got)
	}
	if got := NumberInRange(&fixed{v: 0.5}, "abc"); got != 0 {
		t.Fatalf("garbage = %d, expected 0", got)
	}
	if got := NumberInRange(&fixed{v: 0.2}, "0.5"); got != 1 {
		t.Fatalf("fractional = %d, expected 1", got)
	}
}

func TestPointInRange(t *testing.T) {
	// min 0.4*100, max 0.6*100: floor(0*(21))+40
	if got := PointInRange(&fixed{v: 0}, "40-60", 100); got != 40 {
		t.Fatalf("PointInRange = %v, expected 40", got)
	}
	// single value collapses to min
	if got := PointInRange(&fixed{v: 0.9}, "50", 100); got != 50 {
		t.Fatalf("PointInRange single = %v, expected 50", got)
	}
}

func TestRwRespectsWeights(t *testing.T) {
	items := []Weighted[string]{{"a", 1}, {"b", 3}}
	if got := Rw(&fixed{v: 0.1}, items); got != "a" {
		t.Fatalf("Rw low = %q, expected a", got)
	}
	if got := Rw(&fixed{v: 0.3}, items); got != "b" {
		t.Fatalf("Rw high = %q, expected b", got)
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		v    float64
		d    int
		want float64
	}{
		{2.5, 0, 3},
		{-2.5, 0, -2},
		{1.005, 1, 1},
		{12.346, 2, 12.35},
	}
	for _, c := range cases {
		if got := Round(c.v, c.d); got != c.want {
			t.Fatalf("Round(%v,%d) = %v, expected %v", c.v, c.d, got, c.want)
		}
	}
}
