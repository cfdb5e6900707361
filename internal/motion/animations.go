package motion

import (
	"math"

	"github.com/fogleman/ease"
)

// State is the animated transform of a component on one frame.
type State struct {
	Scale   float64
	Opacity float64
	X, Y    float64
	Blur    float64 // blur radius in pixels
	Shake   float64 // shake intensity in [0, 1]
	Visible bool
}

// SnapZoom is spring progress that starts at start and never runs backwards.
func SnapZoom(frame, fps, start int, cfg SpringConfig) float64 {
	return Spring(max(0, frame-start), fps, cfg)
}

// OvershootScale goes 0 -> overshoot -> 1 on a snappy spring.
func OvershootScale(frame, fps, start int, overshoot float64) float64 {
	p := SnapZoom(frame, fps, start, Snappy)
	if p < 0.5 {
		return Interpolate(p, []float64{0, 0.5}, []float64{0, overshoot}, Extend)
	}
	return Interpolate(p, []float64{0.5, 1}, []float64{overshoot, 1}, Extend)
}

// WhipPan returns an offset that snaps from distance to 0.
func WhipPan(frame, fps, start int, distance float64) float64 {
	p := SnapZoom(frame, fps, start, Whip)
	return Interpolate(p, []float64{0, 1}, []float64{distance, 0}, Extend)
}

// Shake returns a decorative wobble offset.
func Shake(frame int, intensity, speed float64) (x, y float64) {
	f := float64(frame)
	x = math.Sin(f*speed) * intensity
	y = math.Cos(f*speed*1.3) * intensity * 0.5
	return x, y
}

// GlowPulse oscillates between lo and hi with a sine of the given speed
// in radians per frame.
func GlowPulse(frame int, speed, lo, hi float64) float64 {
	return lo + (hi-lo)*((math.Sin(float64(frame)*speed)+1)/2)
}

// Parallax returns the scroll offset of a layer at the given depth.
func Parallax(frame int, scrollSpeed, depth float64) float64 {
	return float64(frame) * scrollSpeed * depth
}

// VelocityBlur converts a velocity in [0, 1] to a blur radius of 0..15 px.
func VelocityBlur(velocity float64) float64 {
	return math.Round(velocity * 15)
}

// FlyThrough animates a card that enters from depth, holds, then flies past
// the camera. A brake card snaps in and stays.
func FlyThrough(frame, start, duration int, velocity float64, brake bool) State {
	rel := frame - start
	if rel < 0 {
		return State{Scale: 0.2, Y: 100}
	}
	if rel > duration && !brake {
		return State{Scale: 2.5, Y: -200, Blur: VelocityBlur(velocity)}
	}

	progress := 1.0
	if duration > 0 {
		progress = Clamp01(float64(rel) / float64(duration))
	}

	if brake {
		entry := math.Min(1, progress*2)
		eased := ease.OutCubic(entry)
		return State{
			Scale:   Interpolate(eased, []float64{0, 0.7, 1}, []float64{0.3, 1.05, 1}, Extend),
			Opacity: Interpolate(entry, []float64{0, 0.3}, []float64{0, 1}, ClampRight),
			Y:       Interpolate(eased, []float64{0, 1}, []float64{80, 0}, Extend),
			Visible: true,
		}
	}

	const entryEnd, exitStart = 0.35, 0.65
	switch {
	case progress < entryEnd:
		p := progress / entryEnd
		return State{
			Scale:   Interpolate(p, []float64{0, 0.8, 1}, []float64{0.2, 1.08, 1}, Extend),
			Opacity: Interpolate(p, []float64{0, 0.5}, []float64{0, 1}, ClampRight),
			Y:       Interpolate(p, []float64{0, 1}, []float64{100, 0}, Extend),
			Blur:    VelocityBlur(velocity * (1 - p)),
			Visible: true,
		}
	case progress < exitStart:
		return State{Scale: 1, Opacity: 1, Visible: true}
	default:
		p := (progress - exitStart) / (1 - exitStart)
		return State{
			Scale:   Interpolate(p, []float64{0, 1}, []float64{1, 2.5}, Extend),
			Opacity: Interpolate(p, []float64{0, 0.5, 1}, []float64{1, 0.6, 0}, Extend),
			Y:       Interpolate(p, []float64{0, 1}, []float64{0, -200}, Extend),
			Blur:    VelocityBlur(velocity * p),
			Visible: true,
		}
	}
}

// DropIn lands an item from above with a clean spring.
func DropIn(frame, fps, start, delay int) State {
	rel := frame - start - delay
	if rel < 0 {
		return State{Scale: 0.8, Y: -60}
	}
	p := Spring(rel, fps, CleanSpring)
	return State{
		Scale:   Interpolate(p, []float64{0, 0.6, 1}, []float64{0.8, 1.03, 1}, Extend),
		Opacity: Interpolate(float64(rel), []float64{0, 8}, []float64{0, 1}, ClampRight),
		Y:       Interpolate(p, []float64{0, 1}, []float64{-60, 0}, Extend),
		Visible: true,
	}
}

// SlamDrop is a heavy drop from depth with a 10% overshoot and an impact
// shake that peaks around frame 10.
func SlamDrop(frame, fps, start, delay int) State {
	rel := frame - start - delay
	if rel < 0 {
		return State{Scale: 0.3, Y: -120}
	}
	p := Spring(rel, fps, SlamSpring)
	return State{
		Scale:   Interpolate(p, []float64{0, 0.5, 0.85, 1}, []float64{0.3, 1.10, 0.98, 1}, Extend),
		Opacity: Interpolate(float64(rel), []float64{0, 6}, []float64{0, 1}, ClampRight),
		Y:       Interpolate(p, []float64{0, 1}, []float64{-150, 0}, Extend),
		Shake:   Interpolate(float64(rel), []float64{0, 6, 10, 18}, []float64{0, 0, 0.8, 0}, ClampRight),
		Visible: true,
	}
}

// ScreenShake turns a shake intensity into a frame offset.
func ScreenShake(intensity float64, frame int) (x, y float64) {
	if intensity <= 0 {
		return 0, 0
	}
	f := float64(frame)
	return math.Sin(f*1.5) * intensity * 8, math.Cos(f*2) * intensity * 6
}

// ZoomOutTransition scales a layer up to 4x while fading it out.
func ZoomOutTransition(frame, start, duration int) State {
	rel := frame - start
	if rel < 0 {
		return State{Scale: 1, Opacity: 1, Visible: true}
	}
	if rel > duration || duration <= 0 {
		return State{Scale: 4}
	}
	eased := ease.OutQuad(float64(rel) / float64(duration))
	s := State{
		Scale:   Interpolate(eased, []float64{0, 1}, []float64{1, 4}, Extend),
		Opacity: Interpolate(eased, []float64{0, 0.6, 1}, []float64{1, 0.5, 0}, Extend),
	}
	s.Visible = s.Opacity > 0
	return s
}

// VignetteIntensity ramps a vignette in and out around a phase.
func VignetteIntensity(frame, phaseStart, phaseEnd int) float64 {
	if frame < phaseStart || frame > phaseEnd {
		return 0
	}
	f := float64(frame)
	in := Interpolate(f, []float64{float64(phaseStart), float64(phaseStart + 20)}, []float64{0, 0.7}, ClampRight)
	out := Interpolate(f, []float64{float64(phaseEnd - 20), float64(phaseEnd)}, []float64{0.7, 0}, ClampLeft)
	return math.Min(in, out)
}

// CountUp races a number to target over the first 70% of duration and then
// settles it with a small bouncing overshoot.
func CountUp(frame, fps, start int, target float64, duration int) float64 {
	rel := frame - start
	if rel < 0 {
		return 0
	}
	race := float64(duration) * 0.7
	if race <= 0 || float64(rel) > race {
		p := Spring(rel-int(race), fps, BounceSpring)
		return target * Interpolate(p, []float64{0, 0.5, 1}, []float64{1, 1.05, 1}, Extend)
	}
	p := Interpolate(float64(rel), []float64{0, race}, []float64{0, 1}, ClampRight)
	return target * ease.OutCubic(p)
}

// EaseOutCount counts from 0 to target between start and start+length with a
// cubic ease-out and holds the target afterwards.
func EaseOutCount(frame, start, length int, target float64) float64 {
	if length <= 0 {
		if frame >= start {
			return target
		}
		return 0
	}
	p := Interpolate(float64(frame), []float64{float64(start), float64(start + length)}, []float64{0, 1}, Clamp)
	return target * ease.OutCubic(p)
}

// Entrance is the pop-in most slides share: a spring-driven scale through a
// small overshoot and a linear fade over fadeFrames.
func Entrance(frame, fps int, cfg SpringConfig, from, peak float64, fadeFrames int) State {
	if frame < 0 {
		return State{Scale: from}
	}
	p := Spring(frame, fps, cfg)
	return State{
		Scale:   Interpolate(p, []float64{0, 0.5, 1}, []float64{from, peak, 1}, Extend),
		Opacity: Interpolate(float64(frame), []float64{0, float64(max(1, fadeFrames))}, []float64{0, 1}, ClampRight),
		Visible: true,
	}
}

// FadeIn ramps opacity from 0 to 1 over frames, starting at start.
func FadeIn(frame, start, frames int) float64 {
	return Interpolate(float64(frame), []float64{float64(start), float64(start + max(1, frames))}, []float64{0, 1}, Clamp)
}

// FadeOut ramps opacity from 1 to 0 over frames, starting at start.
func FadeOut(frame, start, frames int) float64 {
	return Interpolate(float64(frame), []float64{float64(start), float64(start + max(1, frames))}, []float64{1, 0}, Clamp)
}

// Flash is a white-out that peaks two frames after trigger and is gone after eight.
func Flash(frame, trigger int) float64 {
	rel := frame - trigger
	if rel < 0 || rel > 8 {
		return 0
	}
	return Interpolate(float64(rel), []float64{0, 2, 8}, []float64{0, 0.9, 0}, Extend)
}
