package scene

import (
	"math"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

var (
	introSpoolSpring = motion.SpringConfig{Stiffness: 150, Damping: 18}
	introTextSpring  = motion.SpringConfig{Stiffness: 140, Damping: 16}
	waveSpring       = motion.SpringConfig{Stiffness: 180, Damping: 14, Mass: 1}
)

// Intro is the opening title: a spool (or a waving mascot) pops in, then
// the title and the subtitle follow.
type Intro struct {
	Title    string
	Subtitle string
	Pose     assets.Mascot // optional; replaces the spool
}

func (in Intro) Render(p *paint.Painter, c Context) {
	f := c.Frame
	if f < 0 {
		return
	}
	pal := c.Palette
	cx := c.CX()

	sp := motion.Spring(f, c.FPS, introSpoolSpring)
	spoolScale := motion.Interpolate(sp, []float64{0, 0.7, 1}, []float64{0, 1.1, 1}, motion.Extend)
	spoolOpacity := motion.FadeIn(f, 0, 12)
	glow := motion.GlowPulse(f, 0.06, 0.6, 1)

	titleSt := paint.TextStyle{Size: 36, Weight: theme.Bold, Color: rgba(pal.Text, 1), MaxWidth: c.Width - 80}
	subSt := paint.TextStyle{Size: 28, Weight: theme.Medium, Color: rgba(pal.Accent, 1), MaxWidth: c.Width - 80}

	iconSize := 110.0
	rotation := 0.0
	if in.Pose != "" {
		iconSize = 380
		wp := motion.Spring(f, c.FPS, waveSpring)
		spoolScale = motion.Interpolate(wp, []float64{0, 0.6, 1}, []float64{0, 1.1, 1}, motion.Extend)
		rotation = math.Sin(float64(f)*0.15) * 3
	}
	iconH := iconSize
	if in.Pose != "" {
		_, iconH = mascotSize(c, in.Pose, iconSize)
	}

	column(c.CY(),
		block{h: iconH, gap: 24, draw: func(top float64) {
			cy := top + iconH/2
			p.Save()
			transformAbout(p, cx, cy, spoolScale, 0, 0)
			p.MulAlpha(spoolOpacity)
			p.RadialGlow(cx, cy, iconSize*0.8, 1, 0.33*glow, rgba(pal.Accent, 1))
			if in.Pose != "" {
				rotated(p, cx-iconSize/2, cy-iconH/2, iconSize, iconH, rotation, func() {
					drawMascot(p, c, in.Pose, cx, cy, iconSize, nil, 0)
				})
			} else {
				DrawIcon(p, IconSpool, cx, cy, iconSize, rgba(pal.Accent, 1), pal)
			}
			p.Restore()
		}},
		in.line(p, c, in.Title, titleSt, 18, 25, 10),
		in.line(p, c, in.Subtitle, subSt, 32, 20, 0),
	)
}

// line is a title row that springs in delay frames after the intro starts.
func (in Intro) line(p *paint.Painter, c Context, s string, st paint.TextStyle, delay int, rise, gap float64) block {
	b := textBlock(p, s, c.CX(), st, gap)
	draw := b.draw
	b.draw = func(top float64) {
		pr := motion.SnapZoom(c.Frame, c.FPS, delay, introTextSpring)
		if pr <= 0 {
			return
		}
		scale := motion.Interpolate(pr, []float64{0, 0.7, 1}, []float64{0.7, 1.05, 1}, motion.Extend)
		dy := motion.Interpolate(pr, []float64{0, 1}, []float64{rise, 0}, motion.Extend)
		p.Save()
		transformAbout(p, c.CX(), top+b.h/2, scale, 0, dy)
		p.MulAlpha(motion.Clamp01(pr))
		draw(top)
		p.Restore()
	}
	return b
}
