// Package composition evaluates a planned reel frame by frame.
package composition

import (
	"fmt"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/effects"
	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/scene"
	"github.com/ivlev/hypereel/internal/theme"
)

// Composition is the output format of a reel.
type Composition struct {
	ID               string
	Width, Height    int
	FPS              int
	DurationInFrames int
}

// Seconds is the running time of the composition.
func (c Composition) Seconds() float64 {
	if c.FPS <= 0 {
		return 0
	}
	return float64(c.DurationInFrames) / float64(c.FPS)
}

func (c Composition) String() string {
	return fmt.Sprintf("%s %dx%d @ %d fps, %d frames (%.1fs)", c.ID, c.Width, c.Height, c.FPS, c.DurationInFrames, c.Seconds())
}

// Sequence shows a scene during [From, From+Duration). The scene sees
// frames relative to From.
type Sequence struct {
	Name     string
	From     int
	Duration int
	FadeIn   int
	FadeOut  int
	Scene    scene.Scene
}

// End is the first frame after the sequence.
func (s Sequence) End() int { return s.From + s.Duration }

// Active reports whether the sequence is on screen at frame.
func (s Sequence) Active(frame int) bool {
	return s.Duration > 0 && frame >= s.From && frame < s.End()
}

// Opacity is the fade multiplier of the sequence at frame.
func (s Sequence) Opacity(frame int) float64 {
	if !s.Active(frame) {
		return 0
	}
	o := 1.0
	if s.FadeIn > 0 {
		o = min(o, motion.FadeIn(frame, s.From, s.FadeIn))
	}
	if s.FadeOut > 0 {
		o = min(o, motion.FadeOut(frame, s.End()-s.FadeOut, s.FadeOut))
	}
	return o
}

// Timeline is a planned reel: the background on the composition frame,
// sequences layered in order, then full-frame effects.
type Timeline struct {
	Composition Composition
	Palette     theme.Palette
	Assets      *assets.Library
	Background  scene.Scene
	Sequences   []Sequence
	Effects     []effects.Effect
	Shake       effects.Shaker // moves the sequences, not the background
}

// Context returns the scene context of a composition frame.
func (t *Timeline) Context(frame int) scene.Context {
	_, lw, lh := scene.LayoutScale(t.Composition.Width, t.Composition.Height)
	return scene.Context{
		Frame:   frame,
		Global:  frame,
		FPS:     t.Composition.FPS,
		Width:   lw,
		Height:  lh,
		Palette: t.Palette,
		Assets:  t.Assets,
	}
}

// Active returns the names of the sequences on screen at frame.
func (t *Timeline) Active(frame int) []string {
	var names []string
	for _, s := range t.Sequences {
		if s.Active(frame) {
			names = append(names, s.Name)
		}
	}
	return names
}

// Sequence returns the first sequence with the given name.
func (t *Timeline) Sequence(name string) (Sequence, bool) {
	for _, s := range t.Sequences {
		if s.Name == name {
			return s, true
		}
	}
	return Sequence{}, false
}

// RenderFrame draws frame into the painter's target, which must be
// Composition.Width x Composition.Height pixels.
func (t *Timeline) RenderFrame(p *paint.Painter, frame int) {
	k, _, _ := scene.LayoutScale(t.Composition.Width, t.Composition.Height)
	c := t.Context(frame)

	p.Save()
	defer p.Restore()
	p.Scale(k, k)

	if t.Background != nil {
		t.Background.Render(p, c)
	} else {
		p.Clear(theme.Opaque(t.Palette.Background))
	}

	p.Save()
	if t.Shake != nil {
		dx, dy := t.Shake.Offset(frame)
		p.Translate(dx, dy)
	}
	for _, s := range t.Sequences {
		op := s.Opacity(frame)
		if op <= 0 || s.Scene == nil {
			continue
		}
		p.Save()
		p.MulAlpha(op)
		s.Scene.Render(p, c.Shift(s.From))
		p.Restore()
	}
	p.Restore()

	for _, e := range t.Effects {
		e.Apply(p, frame, c.Width, c.Height)
	}
}
