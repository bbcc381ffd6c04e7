package core

// Number covers the numeric types the helpers below operate on.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Clamp limits v to [lo, hi].
func Clamp[T Number](v, lo, hi T) T {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Abs returns the absolute value of v.
func Abs[T Number](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
