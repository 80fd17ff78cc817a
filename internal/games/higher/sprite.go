package higher

import "math"

// Arrow proportions in the unit square.
const (
	arrowHeadDepth  = 0.55 // Fraction of the height taken by the head
	arrowShaftWidth = 0.32 // Fraction of the width taken by the shaft
)

// arrowUp reports whether the point (u, v) of the unit square lies on an
// arrow pointing up. u grows to the right, v grows downward.
func arrowUp(u, v float64) bool {
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return false
	}
	dx := math.Abs(u - 0.5)
	if v < arrowHeadDepth {
		return dx <= 0.5*v/arrowHeadDepth
	}
	return dx <= arrowShaftWidth/2
}

// arrowDown is arrowUp rotated half a turn.
func arrowDown(u, v float64) bool {
	return arrowUp(1-u, 1-v)
}

// shakeKeyframes is the horizontal camera offset in pixels over the
// game over transition, as (progress, offset) pairs.
var shakeKeyframes = [][2]float64{
	{0, 0}, {0.1, -2}, {0.2, 4}, {0.3, -6}, {0.4, 6}, {0.5, -6},
	{0.6, 6}, {0.7, -6}, {0.8, 4}, {0.9, -2}, {1, 0},
}

// shakeOffset interpolates the shake keyframes at progress p (0..1).
func shakeOffset(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	for i := 1; i < len(shakeKeyframes); i++ {
		a, b := shakeKeyframes[i-1], shakeKeyframes[i]
		if p <= b[0] {
			t := (p - a[0]) / (b[0] - a[0])
			return a[1] + (b[1]-a[1])*t
		}
	}
	return 0
}

// zoomFrame returns the scale and opacity of the start animation arrow at
// progress p (0..1): it grows from a speck to three times its size while
// fading in, then shrinks back while fading out.
func zoomFrame(p float64) (scale, alpha float64) {
	const small, large = 0.1, 3.0
	switch {
	case p <= 0 || p >= 1:
		return small, 0
	case p < 0.5:
		t := p / 0.5
		return small + (large-small)*t, t
	default:
		t := (1 - p) / 0.5
		return small + (large-small)*t, t
	}
}
