package fst

import "math"

// Weight is a value in the tropical semiring: combining weights along a
// path adds them, combining weights across alternative paths takes the
// minimum. Smaller is better.
type Weight float64

// WeightZero returns the "no path" weight, the identity for Plus.
func WeightZero() Weight {
	return Weight(math.Inf(1))
}

// WeightOne returns the "free transition" weight, the identity for Times.
func WeightOne() Weight {
	return 0
}

// IsZero reports whether w is the no-path sentinel.
func (w Weight) IsZero() bool {
	return math.IsInf(float64(w), 1)
}

// Times combines w with o along a path.
func (w Weight) Times(o Weight) Weight {
	if w.IsZero() || o.IsZero() {
		return WeightZero()
	}
	return w + o
}

// Plus combines w with o across alternative paths.
func (w Weight) Plus(o Weight) Weight {
	if o < w {
		return o
	}
	return w
}

// Less reports whether w is strictly better than o.
func (w Weight) Less(o Weight) bool {
	return w < o
}
