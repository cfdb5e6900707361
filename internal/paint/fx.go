package paint

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// blend composites a straight-alpha color with opacity a over one pixel.
func blend(dst *image.RGBA, x, y int, c color.NRGBA, a float64) {
	if a <= 0 {
		return
	}
	a *= float64(c.A) / 255
	if a > 1 {
		a = 1
	}
	i := dst.PixOffset(x, y)
	px := dst.Pix[i : i+4 : i+4]
	k := 1 - a
	px[0] = uint8(float64(c.R)*a + float64(px[0])*k + 0.5)
	px[1] = uint8(float64(c.G)*a + float64(px[1])*k + 0.5)
	px[2] = uint8(float64(c.B)*a + float64(px[2])*k + 0.5)
	px[3] = uint8(255*a + float64(px[3])*k + 0.5)
}

// RadialGlow paints a soft disc of color c that fades from strength at the
// center to nothing at stop*r. It is the equivalent of a CSS radial gradient
// ending in transparent.
func (p *Painter) RadialGlow(cx, cy, r, stop, strength float64, c color.Color) {
	if r <= 0 || stop <= 0 {
		return
	}
	col := p.withAlpha(c, 1)
	strength *= float64(col.A) / 255
	col.A = 255
	if strength <= 0 {
		return
	}
	dcx, dcy := p.Transform(cx, cy)
	reach := r * stop * p.scale()
	if reach < 1 {
		return
	}
	bounds := image.Rect(
		int(math.Floor(dcx-reach)), int(math.Floor(dcy-reach)),
		int(math.Ceil(dcx+reach)), int(math.Ceil(dcy+reach)),
	).Intersect(p.dst.Rect)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		dy := float64(y) + 0.5 - dcy
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx := float64(x) + 0.5 - dcx
			t := math.Sqrt(dx*dx+dy*dy) / reach
			if t >= 1 {
				continue
			}
			f := 1 - t
			blend(p.dst, x, y, col, strength*f*f)
		}
	}
}

type vignetteMask struct {
	size image.Point
	a    []float32
}

// Vignette darkens the frame edges towards c. intensity 0 is a no-op.
func (p *Painter) Vignette(intensity float64, c color.Color) {
	if intensity <= 0 {
		return
	}
	r := p.frame.Rect
	if p.vmask == nil || p.vmask.size != r.Size() {
		p.vmask = newVignetteMask(r.Size())
	}
	col := color.NRGBAModel.Convert(c).(color.NRGBA)
	col.A = 255
	w := r.Dx()
	for y := 0; y < r.Dy(); y++ {
		row := p.vmask.a[y*w : (y+1)*w]
		for x, m := range row {
			if m > 0 {
				blend(p.dst, r.Min.X+x, r.Min.Y+y, col, intensity*float64(m))
			}
		}
	}
}

// newVignetteMask precomputes an elliptical falloff: clear inside 40% of the
// half-diagonal, full at the corners.
func newVignetteMask(size image.Point) *vignetteMask {
	m := &vignetteMask{size: size, a: make([]float32, size.X*size.Y)}
	hx, hy := float64(size.X)/2, float64(size.Y)/2
	for y := 0; y < size.Y; y++ {
		ny := (float64(y) + 0.5 - hy) / hy
		for x := 0; x < size.X; x++ {
			nx := (float64(x) + 0.5 - hx) / hx
			d := math.Sqrt(nx*nx+ny*ny) / math.Sqrt2
			m.a[y*size.X+x] = float32(smoothstep(0.4, 1, d))
		}
	}
	return m
}

func smoothstep(e0, e1, x float64) float64 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// Grid draws one-pixel grid lines every spacing pixels across the frame,
// shifted down by offset. It ignores the transform.
func (p *Painter) Grid(spacing, offset float64, c color.Color) {
	if spacing < 2 {
		return
	}
	col := image.NewUniform(p.withAlpha(c, 1))
	r := p.dst.Rect
	off := math.Mod(offset, spacing)
	for x := float64(r.Min.X); x < float64(r.Max.X); x += spacing {
		xi := int(x)
		draw.Draw(p.dst, image.Rect(xi, r.Min.Y, xi+1, r.Max.Y), col, image.Point{}, draw.Over)
	}
	for y := float64(r.Min.Y) + off - spacing; y < float64(r.Max.Y); y += spacing {
		yi := int(math.Round(y))
		draw.Draw(p.dst, image.Rect(r.Min.X, yi, r.Max.X, yi+1).Intersect(r), col, image.Point{}, draw.Over)
	}
}

// SoftShadow approximates a blurred box shadow under a rounded rectangle with
// steps of growing, fading outlines.
func (p *Painter) SoftShadow(x, y, w, h, radius, spread, offsetY float64, c color.Color, strength float64) {
	const steps = 6
	if strength <= 0 {
		return
	}
	a := 1 - math.Pow(1-clamp01(strength), 1.0/steps)
	for i := steps; i >= 1; i-- {
		g := spread * float64(i) / steps
		pb := p.newPath()
		pb.roundRect(x-g, y-g+offsetY, w+2*g, h+2*g, radius+g)
		pb.close(false)
		p.fillColor(pb, c, a)
	}
}

// linearGradient is an unbounded image shading from one color to another
// along a device-space direction.
type linearGradient struct {
	x0, y0, dx, dy float64
	from, to       color.NRGBA
}

func (g *linearGradient) ColorModel() color.Model { return color.NRGBAModel }

func (g *linearGradient) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *linearGradient) At(x, y int) color.Color {
	t := clamp01(((float64(x)-g.x0)*g.dx + (float64(y)-g.y0)*g.dy))
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.NRGBA{
		R: lerp(g.from.R, g.to.R),
		G: lerp(g.from.G, g.to.G),
		B: lerp(g.from.B, g.to.B),
		A: lerp(g.from.A, g.to.A),
	}
}

// GradientRoundRect fills a rounded rectangle with a 135 degree linear
// gradient from the top-left corner to the bottom-right one.
func (p *Painter) GradientRoundRect(x, y, w, h, r float64, from, to color.Color) {
	x0, y0 := p.Transform(x, y)
	x1, y1 := p.Transform(x+w, y+h)
	dx, dy := x1-x0, y1-y0
	n := dx*dx + dy*dy
	if n == 0 {
		return
	}
	g := &linearGradient{
		x0: x0, y0: y0, dx: dx / n, dy: dy / n,
		from: p.withAlpha(from, 1), to: p.withAlpha(to, 1),
	}
	pb := p.newPath()
	pb.roundRect(x, y, w, h, r)
	pb.close(false)
	p.fill(pb, g)
}
