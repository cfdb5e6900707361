package scene

import (
	"image/color"
	"math"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/paint"
)

// block is one row of a vertically stacked layout.
type block struct {
	h    float64
	gap  float64 // space below the block
	draw func(top float64)
}

// column stacks blocks top to bottom, centered on cy.
func column(cy float64, blocks ...block) {
	total := 0.0
	for i, b := range blocks {
		total += b.h
		if i < len(blocks)-1 {
			total += b.gap
		}
	}
	top := cy - total/2
	for _, b := range blocks {
		if b.draw != nil {
			b.draw(top)
		}
		top += b.h + b.gap
	}
}

// textBlock is a block holding one wrapped paragraph centered on cx.
func textBlock(p *paint.Painter, s string, cx float64, st paint.TextStyle, gap float64) block {
	st.Align = paint.AlignCenter
	return block{
		h:    p.TextHeight(s, st),
		gap:  gap,
		draw: func(top float64) { p.Text(s, cx, top, st) },
	}
}

// richBlock is textBlock for highlighted copy.
func richBlock(p *paint.Painter, spans []paint.Span, cx float64, st paint.TextStyle, gap float64) block {
	st.Align = paint.AlignCenter
	return block{
		h:    p.RichTextHeight(spans, st),
		gap:  gap,
		draw: func(top float64) { p.RichText(spans, cx, top, st) },
	}
}

// group draws fn as one unit: the result is blurred by blur layout units
// and composited at opacity. The user rectangle bounds what fn draws.
func group(p *paint.Painter, x, y, w, h, opacity, blur float64, fn func()) {
	if opacity <= 0 {
		return
	}
	if opacity >= 1 && blur <= 0 {
		fn()
		return
	}
	sigma := blur * p.DeviceScale()
	r := p.DeviceRect(x, y, w, h, math.Ceil(sigma*3)+2)
	if r.Empty() {
		return
	}
	p.BeginLayer(r)
	fn()
	p.EndLayer(paint.LayerFX{Opacity: opacity, Blur: sigma})
}

// rotated draws fn rotated clockwise by deg around the center of the user
// rectangle.
func rotated(p *paint.Painter, x, y, w, h, deg float64, fn func()) {
	if math.Abs(deg) < 0.01 {
		fn()
		return
	}
	r := p.DeviceRect(x, y, w, h, 2)
	if r.Empty() {
		return
	}
	p.BeginLayer(r)
	fn()
	p.EndLayer(paint.LayerFX{Opacity: 1, Rotate: deg})
}

// glowText draws text over a blurred copy of itself in glow.
func glowText(p *paint.Painter, s string, cx, top float64, st paint.TextStyle, glow color.Color, radius, strength float64) float64 {
	st.Align = paint.AlignCenter
	if strength > 0 && radius > 0 {
		w, _ := p.MeasureText(s, st.Size, st.Weight)
		h := p.TextHeight(s, st)
		halo := st
		halo.Color = glow
		halo.Shadow = nil
		group(p, cx-w/2, top, w, h, motion.Clamp01(strength), radius/2, func() {
			p.Text(s, cx, top, halo)
		})
	}
	return p.Text(s, cx, top, st)
}

// transformAbout scales about (cx, cy) and then moves by (dx, dy) scaled
// along, like a CSS transform on a centered element.
func transformAbout(p *paint.Painter, cx, cy, scale, dx, dy float64) {
	p.Translate(cx, cy)
	p.Scale(scale, scale)
	p.Translate(dx, dy)
	p.Translate(-cx, -cy)
}

// mascotSize returns the drawn size of a pose width units wide.
func mascotSize(c Context, m assets.Mascot, width float64) (w, h float64) {
	img := c.Assets.Mascot(m)
	b := img.Bounds()
	if b.Dx() == 0 {
		return width, width
	}
	return width, width * float64(b.Dy()) / float64(b.Dx())
}

// drawMascot draws pose m width units wide centered on (cx, cy) with a
// soft halo of glow behind it.
func drawMascot(p *paint.Painter, c Context, m assets.Mascot, cx, cy, width float64, glow color.Color, halo float64) {
	w, h := mascotSize(c, m, width)
	if halo > 0 {
		p.RadialGlow(cx, cy, math.Max(w, h)*0.7, 1, halo, glow)
	}
	p.DrawImage(c.Assets.Mascot(m), cx-w/2, cy-h/2, w, h, 0)
}

// background fills the whole canvas, as slides do to hide what is behind
// them.
func background(p *paint.Painter, c Context) {
	p.FillRect(0, 0, c.Width, c.Height, rgba(c.Palette.Background, 1))
}
