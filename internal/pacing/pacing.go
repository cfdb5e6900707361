// Package pacing assigns a start frame and a duration to every item of a
// rapid-fire list.
//
// The main schedule is an S-curve: a few slow, readable items, a run of items
// whose durations shrink exponentially, and one final item that brakes and
// holds.
package pacing

import (
	"errors"
	"fmt"
	"math"
)

// Phase is the part of the S-curve an item belongs to.
type Phase int

const (
	Intro Phase = iota
	Accel
	Brake
)

func (p Phase) String() string {
	switch p {
	case Intro:
		return "intro"
	case Accel:
		return "accel"
	case Brake:
		return "brake"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Timing places one list item on the timeline.
type Timing struct {
	Text     string
	Index    int
	Start    int // absolute frame
	Duration int // frames
	Velocity float64
	Phase    Phase
}

// End is the first frame after the item.
func (t Timing) End() int {
	return t.Start + t.Duration
}

// Schedule holds the constants of the S-curve.
type Schedule struct {
	IntroCount    int     `yaml:"intro_count"`
	IntroDuration int     `yaml:"intro_duration"`
	AccelCount    int     `yaml:"accel_count"`
	AccelMax      int     `yaml:"accel_max"`
	AccelMin      int     `yaml:"accel_min"`
	Exponent      float64 `yaml:"exponent"`
	BrakeDuration int     `yaml:"brake_duration"`
	MaxItems      int     `yaml:"max_items"`
}

// DefaultSchedule: three items at 0.9s, ten accelerating from 16 to 3 frames,
// a 1.2s brake.
var DefaultSchedule = Schedule{
	IntroCount:    3,
	IntroDuration: 27,
	AccelCount:    10,
	AccelMax:      16,
	AccelMin:      3,
	Exponent:      1.8,
	BrakeDuration: 36,
	MaxItems:      14,
}

const (
	introVelocity     = 0.1
	accelVelocityMin  = 0.3
	accelVelocitySpan = 0.7
)

// Validate reports every inconsistent field of the schedule.
func (s Schedule) Validate() error {
	var errs []error
	if s.IntroCount < 0 || s.AccelCount < 0 {
		errs = append(errs, fmt.Errorf("item counts must not be negative (intro %d, accel %d)", s.IntroCount, s.AccelCount))
	}
	if s.IntroCount > 0 && s.IntroDuration <= 0 {
		errs = append(errs, fmt.Errorf("intro duration must be positive, got %d", s.IntroDuration))
	}
	if s.AccelMin <= 0 {
		errs = append(errs, fmt.Errorf("accel min must be positive, got %d", s.AccelMin))
	}
	if s.AccelMax < s.AccelMin {
		errs = append(errs, fmt.Errorf("accel max %d is below accel min %d", s.AccelMax, s.AccelMin))
	}
	if s.Exponent <= 0 {
		errs = append(errs, fmt.Errorf("exponent must be positive, got %g", s.Exponent))
	}
	if s.BrakeDuration <= 0 {
		errs = append(errs, fmt.Errorf("brake duration must be positive, got %d", s.BrakeDuration))
	}
	if limit := s.IntroCount + s.AccelCount + 1; s.MaxItems <= 0 || s.MaxItems > limit {
		errs = append(errs, fmt.Errorf("max items must be in [1, %d], got %d", limit, s.MaxItems))
	}
	return errors.Join(errs...)
}

// accelProgress is the position of an accelerating item within its phase, 0..1.
func (s Schedule) accelProgress(index int) float64 {
	if s.AccelCount <= 1 {
		return 0
	}
	return float64(index-s.IntroCount) / float64(s.AccelCount-1)
}

// SCurve lays items out back to back from base. The list is truncated to
// MaxItems. The item at IntroCount+AccelCount brakes; so does the last item
// of a shorter list once it is past the intro.
func SCurve(items []string, base int, s Schedule) []Timing {
	n := min(len(items), s.MaxItems)
	if n <= 0 {
		return nil
	}

	timings := make([]Timing, 0, n)
	frame := base
	for i, text := range items[:n] {
		t := Timing{Text: text, Index: i, Start: frame}

		switch {
		case i < s.IntroCount:
			t.Phase = Intro
			t.Duration = s.IntroDuration
			t.Velocity = introVelocity
		case i >= s.IntroCount+s.AccelCount || i == n-1:
			t.Phase = Brake
			t.Duration = s.BrakeDuration
		default:
			e := math.Pow(s.accelProgress(i), s.Exponent)
			d := int(math.Round(float64(s.AccelMax) - e*float64(s.AccelMax-s.AccelMin)))
			t.Phase = Accel
			t.Duration = max(s.AccelMin, d)
			t.Velocity = accelVelocityMin + e*accelVelocitySpan
		}

		timings = append(timings, t)
		frame += t.Duration
	}
	return timings
}

// Linear is the fixed-cadence variant: a new item every interval frames,
// each on screen for hold frames. Items overlap when hold > interval.
func Linear(items []string, base, interval, hold int) []Timing {
	timings := make([]Timing, 0, len(items))
	for i, text := range items {
		timings = append(timings, Timing{
			Text:     text,
			Index:    i,
			Start:    base + i*interval,
			Duration: hold,
			Velocity: 1,
			Phase:    Accel,
		})
	}
	return timings
}

// Staggered returns n entrance frames spaced step apart from base.
func Staggered(n, base, step int) []int {
	frames := make([]int, n)
	for i := range frames {
		frames[i] = base + i*step
	}
	return frames
}

// Total is the summed duration of the timings.
func Total(timings []Timing) int {
	total := 0
	for _, t := range timings {
		total += t.Duration
	}
	return total
}

// End returns the first frame after every item has finished, or 0 for an
// empty list.
func End(timings []Timing) int {
	end := 0
	for _, t := range timings {
		end = max(end, t.End())
	}
	return end
}

// ActiveIndex returns the index of the item on screen at frame. Between and
// after items it returns the last item that has started; before the first
// item it returns -1. With overlapping items the latest one wins.
func ActiveIndex(timings []Timing, frame int) int {
	active := -1
	for i, t := range timings {
		if t.Start > frame {
			break
		}
		active = i
	}
	return active
}
