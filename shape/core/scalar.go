package core

import "math"

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func Sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func Pow(v, p float32) float32 {
	return float32(math.Pow(float64(v), float64(p)))
}

func Exp(v float32) float32 {
	return float32(math.Exp(float64(v)))
}

func Max3(a, b, c float32) float32 {
	return max(a, max(b, c))
}

// ToleranceEpsilon keeps "within tolerance" checks inclusive at the boundary
// despite float32 rounding of the inputs.
const ToleranceEpsilon = 1e-6

// WithinRelative reports |value-target|/target <= pct, inclusive.
// The ratio is computed in float64.
func WithinRelative(value, target, pct float32) bool {
	return RelativeError(value, target) <= float64(pct)+ToleranceEpsilon
}

// RelativeError is |value-target| / max(1e-4, target).
func RelativeError(value, target float32) float64 {
	den := math.Max(1e-4, float64(target))
	return math.Abs(float64(value)-float64(target)) / den
}
