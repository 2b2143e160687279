package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Lerp does not clamp t.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
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
