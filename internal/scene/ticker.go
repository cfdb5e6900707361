package scene

import (
	"math"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/pacing"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// Card geometry in layout units.
const (
	cardWidth      = 620
	cardRadius     = 32
	cardSizeFactor = 1.40
)

// ExcuseCard is one quote of the ticker flying through the frame.
type ExcuseCard struct {
	Text     string
	Username string
	Timing   pacing.Timing
}

func (e ExcuseCard) brake() bool { return e.Timing.Phase == pacing.Brake }

// State returns the fly-through state of the card on frame f.
func (e ExcuseCard) State(f int) motion.State {
	t := e.Timing
	return motion.FlyThrough(f, t.Start, t.Duration, t.Velocity, e.brake())
}

func (e ExcuseCard) Render(p *paint.Painter, c Context) {
	st := e.State(c.Frame)
	if !st.Visible || st.Opacity <= 0 {
		return
	}
	pal := c.Palette
	glow := motion.GlowPulse(c.Frame, 0.08, 0.5, 0.9)

	padY, padX := 40.0, 44.0
	text := paint.TextStyle{Size: 34, Weight: theme.Medium, Color: rgba(pal.Text, 1), LineHeight: 1.4}
	if e.brake() {
		padY, padX = 48, 50
		text.Size, text.Weight = 38, theme.Bold
	}
	w := math.Min(cardWidth, 0.95*c.Width)
	text.MaxWidth = w - 2*padX
	quote := Quote(e.Text)
	h := 2*padY + p.TextHeight(quote, text)
	if e.Username != "" {
		h += 22*1.25 + 18
	}

	cx, cy := c.CX(), c.CY()
	p.Save()
	defer p.Restore()
	transformAbout(p, cx, cy, st.Scale*cardSizeFactor, 0, st.Y)

	x, y := cx-w/2, cy-h/2
	group(p, x-40, y-40, w+80, h+80, st.Opacity, st.Blur, func() {
		p.SoftShadow(x, y, w, h, cardRadius, 30*glow, 6, rgba(pal.Glow, 1), 0.18+0.12*glow)
		p.FillRoundRect(x, y, w, h, cardRadius, rgba(pal.Surface, pal.SurfaceAlpha))
		p.StrokeRoundRect(x, y, w, h, cardRadius, 2, rgba(pal.Border, 1))

		top := y + padY
		if e.Username != "" {
			p.FillCircle(x+padX+6, top+22*1.25/2, 6, rgba(pal.Accent, 1))
			p.Text(e.Username, x+padX+22, top, paint.TextStyle{Size: 22, Weight: theme.Bold, Color: rgba(pal.Accent, 1)})
			top += 22*1.25 + 18
		}
		p.Text(quote, x+padX, top, text)
	})
}

// Reaction is the mascot pose shown from the ticker item From on.
type Reaction struct {
	From int           `yaml:"from"`
	Pose assets.Mascot `yaml:"pose"`
}

// DefaultReactions smirk through the intro, look shocked while the ticker
// accelerates and smirk again at full speed.
var DefaultReactions = []Reaction{
	{From: 0, Pose: assets.Smirk},
	{From: 3, Pose: assets.Shock},
	{From: 8, Pose: assets.Smirk},
}

// PoseFor returns the pose for the ticker item at index.
func PoseFor(reactions []Reaction, index int) assets.Mascot {
	pose := assets.Smirk
	for _, r := range reactions {
		if index >= r.From {
			pose = r.Pose
		}
	}
	return pose
}

// Ticker is the rapid-fire excuse sequence with the intro title under its
// first cards, a mascot reacting behind the cards and a vignette while the
// cards are a blur.
type Ticker struct {
	Intro     *Intro
	IntroOut  int // the intro fades over the 15 frames before IntroOut
	Cards     []ExcuseCard
	Reactions []Reaction

	MascotFrom, MascotTo int // mascot window
	BlurFrom, BlurTo     int // vignette window
}

func (t Ticker) Render(p *paint.Painter, c Context) {
	f := c.Frame
	if t.Intro != nil && f < t.IntroOut+20 {
		p.Save()
		p.MulAlpha(motion.FadeOut(f, t.IntroOut-15, 15))
		t.Intro.Render(p, c)
		p.Restore()
	}

	if f >= t.MascotFrom && f < t.MascotTo {
		t.renderMascot(p, c)
	}
	for _, card := range t.Cards {
		card.Render(p, c)
	}
	if v := motion.VignetteIntensity(f, t.BlurFrom, t.BlurTo); v > 0 {
		p.Vignette(v*0.15, rgba(c.Palette.Accent, 1))
	}
}

// Timings returns the schedule of the cards.
func (t Ticker) Timings() []pacing.Timing {
	ts := make([]pacing.Timing, len(t.Cards))
	for i, card := range t.Cards {
		ts[i] = card.Timing
	}
	return ts
}

func (t Ticker) renderMascot(p *paint.Painter, c Context) {
	f := c.Frame
	from, to := float64(t.MascotFrom), float64(t.MascotTo)
	opacity := motion.Interpolate(float64(f),
		[]float64{from, from + 30, math.Max(from+31, to-20), math.Max(from+32, to)},
		[]float64{0, 1, 1, 0}, motion.Clamp)
	if opacity <= 0 {
		return
	}
	idx := max(0, pacing.ActiveIndex(t.Timings(), f))
	pose := PoseFor(t.Reactions, idx)

	floatY := math.Sin(float64(f)*0.05) * 8
	scale := 1 + math.Sin(float64(f)*0.03)*0.02
	glow := motion.GlowPulse(f, 0.04, 0.4, 0.8)

	cx, cy := c.CX(), c.CY()
	p.Save()
	transformAbout(p, cx, cy, scale, 0, floatY)
	p.MulAlpha(opacity * 0.6)
	drawMascot(p, c, pose, cx, cy, 320, rgba(c.Palette.Accent, 1), 0.3*glow)
	p.Restore()
}

// FinalZoom is the last excuse scaling up past the camera while the
// finale takes over.
type FinalZoom struct {
	Text     string
	Duration int
}

func (z FinalZoom) Render(p *paint.Painter, c Context) {
	st := motion.ZoomOutTransition(c.Frame, 0, z.Duration)
	if !st.Visible || st.Opacity <= 0 {
		return
	}
	pal := c.Palette
	glow := motion.GlowPulse(c.Frame, 0.08, 0.5, 0.9)

	const padY, padX, radius = 42.0, 44.0, 28.0
	w := math.Min(520, 0.92*c.Width)
	text := paint.TextStyle{Size: 34, Weight: theme.Bold, Color: rgba(pal.Text, 1), LineHeight: 1.4, MaxWidth: w - 2*padX}
	quote := Quote(z.Text)
	h := 2*padY + 4 + 18 + p.TextHeight(quote, text)

	cx, cy := c.CX(), c.CY()
	p.Save()
	defer p.Restore()
	transformAbout(p, cx, cy, st.Scale*1.28, 0, 0)
	x, y := cx-w/2, cy-h/2
	group(p, x-70, y-70, w+140, h+140, st.Opacity, 0, func() {
		p.SoftShadow(x, y, w, h, radius, 35*glow, 0, rgba(pal.Accent, 1), 0.2*glow)
		p.FillRoundRect(x, y, w, h, radius, rgba(pal.Surface, math.Max(pal.SurfaceAlpha, 0.9)))
		p.StrokeRoundRect(x, y, w, h, radius, 2, rgba(pal.Border, 1))
		p.FillRoundRect(x+padX, y+padY, 50, 4, 2, rgba(pal.Accent, 1))
		p.Text(quote, x+padX, y+padY+4+18, text)
	})
}
