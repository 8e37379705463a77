// Package geometry holds the metric primitives shared by classification and generation:
// magnitudes, dot products and clamped inter-vector angles over four 4-dimensional vectors.
package geometry

import "math"

// #region vector

// Vector4 is an ordered tuple of four components. Value type; copies are independent.
type Vector4 [4]float64

// Set is the four vectors a, b, c, d that one classification call operates on.
type Set [4]Vector4

// Magnitude returns the Euclidean length of v.
func Magnitude(v Vector4) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of v and w.
func Dot(v, w Vector4) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * w[i]
	}
	return sum
}

// AngleBetween returns the angle between v and w in degrees.
// The cosine is clamped to [-1, 1] before inversion. A zero vector has no direction;
// the angle is reported as 90.
func AngleBetween(v, w Vector4) float64 {
	magV := Magnitude(v)
	magW := Magnitude(w)
	if magV == 0 || magW == 0 {
		return 90
	}
	cosTheta := Clamp(Dot(v, w)/(magV*magW), -1, 1)
	return Degrees(math.Acos(cosTheta))
}

// #endregion vector

// #region conversions

// Clamp restricts x to [lo, hi]. NaN collapses to lo.
func Clamp(x, lo, hi float64) float64 {
	if x > hi {
		return hi
	}
	if x >= lo {
		return x
	}
	return lo
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// CosDeg is cos of an angle given in degrees.
func CosDeg(deg float64) float64 { return math.Cos(Radians(deg)) }

// #endregion conversions
