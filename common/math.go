package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Approach moves val toward target by at most step.
func Approach(val, target, step float64) float64 {
	if val > target {
		return math.Max(val-step, target)
	}
	return math.Min(val+step, target)
}

// ClampedMap maps v from [min, max] onto [newMin, newMax], clamping the result
// to the destination range.
func ClampedMap(v, min, max, newMin, newMax float64) float64 {
	if max == min {
		return newMax
	}
	t := (v - min) / (max - min)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Lerp(newMin, newMax, t)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
