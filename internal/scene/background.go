package scene

import (
	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/paint"
)

// Background is the backdrop behind the whole reel: the palette color, a
// faint center glow, a slowly drifting grid and a huge ghosted spool.
//
// It runs on the composition frame. From FocusAt on, the spool is pushed
// out of focus and brightened for the finale.
type Background struct {
	Spool   bool
	FocusAt int // composition frame; negative disables the focus pull
}

func (b Background) Render(p *paint.Painter, c Context) {
	pal := c.Palette
	p.Clear(rgba(pal.Background, 1))

	f := c.Global
	p.RadialGlow(c.CX(), c.Height*0.4, 400, 0.6, 0.03, rgba(pal.Accent, 1))
	p.Grid(70*p.DeviceScale(), motion.Parallax(f, 0.15, p.DeviceScale()), rgba(pal.Grid, pal.GridAlpha))

	if !b.Spool {
		return
	}
	opacity, blur := 0.035, 2.0
	if b.FocusAt >= 0 {
		opacity = motion.Interpolate(float64(f),
			[]float64{float64(b.FocusAt), float64(b.FocusAt + 30)},
			[]float64{0.035, 0.08}, motion.Clamp)
		if f >= b.FocusAt {
			blur = 6
		}
	}
	pulse := motion.GlowPulse(f, 0.02, 0.8, 1.2)
	rotation := float64(f) * 0.02
	driftX, driftY := motion.Shake(f, 15, 0.008)

	const size = 450
	cx, cy := c.CX(), c.CY()
	group(p, cx-size, cy-size, 2*size, 2*size, opacity*pulse, blur, func() {
		p.Save()
		p.Translate(cx, cy)
		p.Rotate(rotation)
		p.Translate(driftX, driftY)
		DrawIcon(p, IconSpool, 0, 0, size, rgba(pal.Accent, 1), pal)
		p.Restore()
	})
}
