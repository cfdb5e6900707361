package storyboard

import (
	"errors"
	"fmt"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/scene"
	"github.com/ivlev/hypereel/internal/theme"
)

// Validate reports every problem of the storyboard at once.
func (sb *Storyboard) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	c := sb.Composition
	if c.Width <= 0 || c.Height <= 0 || c.Width%2 != 0 || c.Height%2 != 0 {
		add("composition size must be positive and even, got %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 || c.FPS > 120 {
		add("composition fps must be in [1, 120], got %d", c.FPS)
	}
	if _, err := theme.Lookup(sb.Theme); err != nil {
		errs = append(errs, err)
	}

	poses := make(map[assets.Mascot]bool)
	for k := range assets.DefaultFiles {
		poses[assets.Mascot(k)] = true
	}
	for k := range sb.Assets.Files {
		poses[assets.Mascot(k)] = true
	}
	checkPose := func(where string, m assets.Mascot) {
		if m != "" && !poses[m] {
			add("%s: unknown mascot pose %q", where, m)
		}
	}

	checkPose("intro", sb.Intro.Pose)
	if sb.Intro.Duration < 0 {
		add("intro duration must not be negative, got %d", sb.Intro.Duration)
	}

	t := sb.Ticker
	switch t.Pacing {
	case PacingSCurve, "":
		if err := t.Schedule.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("ticker schedule: %w", err))
		}
	case PacingLinear:
		if t.Interval <= 0 {
			add("ticker interval must be positive for linear pacing, got %d", t.Interval)
		}
		if t.Hold <= 0 {
			add("ticker hold must be positive for linear pacing, got %d", t.Hold)
		}
	default:
		add("unknown ticker pacing %q (available: %s, %s)", t.Pacing, PacingSCurve, PacingLinear)
	}
	for i, e := range t.Excuses {
		if e.Text == "" {
			add("ticker excuse %d is empty", i+1)
		}
	}
	if t.Gap < 0 || t.Zoom < 0 {
		add("ticker gap and zoom must not be negative, got %d and %d", t.Gap, t.Zoom)
	}
	for i, r := range t.Reactions {
		checkPose(fmt.Sprintf("ticker reaction %d", i+1), r.Pose)
	}

	for i, st := range sb.Stats.Items {
		if st.Label == "" {
			add("stat %d has no label", i+1)
		}
		if st.Decimals < 0 || st.Decimals > 6 {
			add("stat %d: decimals must be in [0, 6], got %d", i+1, st.Decimals)
		}
	}
	if sb.Stats.Duration < 0 {
		add("stats duration must not be negative, got %d", sb.Stats.Duration)
	}
	checkPose("stats", sb.Stats.Pose)

	for i, s := range sb.Slides {
		if s.Duration <= 0 {
			add("slide %d (%s): duration must be positive, got %d", i+1, s.Kind, s.Duration)
		}
		if _, err := s.Scene(); err != nil {
			errs = append(errs, fmt.Errorf("slide %d: %w", i+1, err))
		}
	}
	for i, f := range sb.Features {
		if _, err := scene.ParseIcon(string(f.Icon)); err != nil {
			errs = append(errs, fmt.Errorf("feature %d: %w", i+1, err))
		}
	}

	if sb.Reviews.Duration < 0 || sb.Download.Duration < 0 {
		add("reviews and download durations must not be negative")
	}
	if sb.Reviews.Stars < 0 || sb.Reviews.Stars > 5 {
		add("reviews stars must be in [0, 5], got %d", sb.Reviews.Stars)
	}

	if sb.Effects.FadeIn < 0 || sb.Effects.FadeOut < 0 {
		add("effect fades must not be negative")
	}
	if sb.Music.Volume < 0 || sb.Music.Volume > 1 {
		add("music volume must be in [0, 1], got %g", sb.Music.Volume)
	}
	if sb.Music.FadeOut < 0 {
		add("music fade out must not be negative, got %g", sb.Music.FadeOut)
	}
	if sb.Sounds.Volume < 0 {
		add("sounds volume must not be negative, got %g", sb.Sounds.Volume)
	}
	return errors.Join(errs...)
}
