// Package motion holds the numeric building blocks every component animates
// with: range interpolation, spring progress and the shared entrance/exit curves.
package motion

import (
	"fmt"
)

// ExtrapolateMode controls what Interpolate does outside the input range.
type ExtrapolateMode int

const (
	// ExtendMode continues the slope of the outermost segment.
	ExtendMode ExtrapolateMode = iota
	// ClampMode holds the outermost output value.
	ClampMode
	// IdentityMode returns the input unchanged.
	IdentityMode
)

// Extrapolate selects the behaviour on each side of the input range.
type Extrapolate struct {
	Left, Right ExtrapolateMode
}

var (
	Extend     = Extrapolate{}
	Clamp      = Extrapolate{Left: ClampMode, Right: ClampMode}
	ClampLeft  = Extrapolate{Left: ClampMode}
	ClampRight = Extrapolate{Right: ClampMode}
)

// Easing maps linear progress in [0, 1] to eased progress.
// The functions of github.com/fogleman/ease satisfy it.
type Easing func(t float64) float64

// Interpolate maps x from the in range onto the out range piecewise linearly.
// in must be strictly increasing and have the same length as out, with at
// least two stops; violating that is a programming error and panics.
func Interpolate(x float64, in, out []float64, ext Extrapolate) float64 {
	return InterpolateEased(x, in, out, ext, nil)
}

// InterpolateEased is Interpolate with fn applied to the progress inside the
// selected segment. A nil fn is linear.
func InterpolateEased(x float64, in, out []float64, ext Extrapolate, fn Easing) float64 {
	checkRanges(in, out)

	i := findSegment(x, in)
	inMin, inMax := in[i], in[i+1]
	outMin, outMax := out[i], out[i+1]

	if x < inMin {
		switch ext.Left {
		case IdentityMode:
			return x
		case ClampMode:
			x = inMin
		}
	}
	if x > inMax {
		switch ext.Right {
		case IdentityMode:
			return x
		case ClampMode:
			x = inMax
		}
	}
	if outMin == outMax {
		return outMin
	}

	t := (x - inMin) / (inMax - inMin)
	if fn != nil {
		t = fn(t)
	}
	return lerp(outMin, outMax, t)
}

// findSegment returns the index of the segment whose upper stop is the first
// one at or beyond x, so that values past either end use the outer segments.
func findSegment(x float64, in []float64) int {
	i := 1
	for ; i < len(in)-1; i++ {
		if in[i] >= x {
			break
		}
	}
	return i - 1
}

func checkRanges(in, out []float64) {
	if len(in) != len(out) {
		panic(fmt.Sprintf("motion: input range has %d stops but output range has %d", len(in), len(out)))
	}
	if len(in) < 2 {
		panic(fmt.Sprintf("motion: ranges need at least 2 stops, got %d", len(in)))
	}
	for i := 1; i < len(in); i++ {
		if in[i] <= in[i-1] {
			panic(fmt.Sprintf("motion: input range must be strictly increasing, got %v", in))
		}
	}
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
