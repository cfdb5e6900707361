// Package paint rasterizes reel frames.
//
// A Painter draws into an *image.RGBA through a save/restore stack holding
// an affine transform and an opacity, in the spirit of a 2D canvas. Shapes are
// flattened to polygons and filled with golang.org/x/image/vector; text goes
// through golang.org/x/image/font; images and blurred sub-layers go through
// github.com/disintegration/imaging.
//
// A Painter caches font faces and scaled images and is not safe for
// concurrent use. Give every render goroutine its own Painter.
package paint

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/ivlev/hypereel/internal/theme"
)

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

type state struct {
	m     f64.Aff3
	alpha float64
}

type layer struct {
	parent *image.RGBA
	buf    *image.RGBA
	saved  int // stack depth at BeginLayer
}

// Painter draws shapes, text and images into a frame.
type Painter struct {
	frame  *image.RGBA
	dst    *image.RGBA
	st     state
	stack  []state
	layers []layer

	fonts  *theme.Fonts
	faces  map[faceKey]font.Face
	scaled map[scaledKey]*image.NRGBA
	vmask  *vignetteMask

	r *vector.Rasterizer
}

// New returns a Painter that draws into dst with the given fonts.
func New(dst *image.RGBA, fonts *theme.Fonts) *Painter {
	p := &Painter{
		fonts:  fonts,
		faces:  make(map[faceKey]font.Face),
		scaled: make(map[scaledKey]*image.NRGBA),
		r:      vector.NewRasterizer(1, 1),
	}
	p.Reset(dst)
	return p
}

// Reset retargets the painter at dst and clears the state stack. Caches are
// kept, so a Painter can be reused frame after frame.
func (p *Painter) Reset(dst *image.RGBA) {
	p.frame = dst
	p.dst = dst
	p.st = state{m: identity, alpha: 1}
	p.stack = p.stack[:0]
	p.layers = p.layers[:0]
}

// Image returns the frame being painted.
func (p *Painter) Image() *image.RGBA { return p.frame }

// Width is the frame width in pixels.
func (p *Painter) Width() float64 { return float64(p.frame.Rect.Dx()) }

// Height is the frame height in pixels.
func (p *Painter) Height() float64 { return float64(p.frame.Rect.Dy()) }

// Fonts returns the typefaces the painter draws text with.
func (p *Painter) Fonts() *theme.Fonts { return p.fonts }

// Clear fills the current target with c, ignoring transform and opacity.
func (p *Painter) Clear(c color.Color) {
	draw.Draw(p.dst, p.dst.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Save pushes the current transform and opacity.
func (p *Painter) Save() {
	p.stack = append(p.stack, p.st)
}

// Restore pops the state pushed by the matching Save.
func (p *Painter) Restore() {
	if n := len(p.stack); n > 0 {
		p.st = p.stack[n-1]
		p.stack = p.stack[:n-1]
	}
}

// Translate moves the origin by (x, y).
func (p *Painter) Translate(x, y float64) {
	p.st.m = mul(p.st.m, f64.Aff3{1, 0, x, 0, 1, y})
}

// Scale scales the axes.
func (p *Painter) Scale(sx, sy float64) {
	p.st.m = mul(p.st.m, f64.Aff3{sx, 0, 0, 0, sy, 0})
}

// ScaleAbout scales uniformly around (cx, cy).
func (p *Painter) ScaleAbout(s, cx, cy float64) {
	p.Translate(cx, cy)
	p.Scale(s, s)
	p.Translate(-cx, -cy)
}

// Rotate rotates the axes clockwise by deg degrees. Rotation applies to
// shapes; text and images stay axis aligned unless drawn inside a layer.
func (p *Painter) Rotate(deg float64) {
	s, c := math.Sincos(deg * math.Pi / 180)
	p.st.m = mul(p.st.m, f64.Aff3{c, -s, 0, s, c, 0})
}

// MulAlpha multiplies the current opacity by a.
func (p *Painter) MulAlpha(a float64) {
	p.st.alpha *= clamp01(a)
}

// Alpha is the current opacity.
func (p *Painter) Alpha() float64 { return p.st.alpha }

// Transform maps a point from user to device space.
func (p *Painter) Transform(x, y float64) (float64, float64) {
	m := p.st.m
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// DeviceScale is the uniform scale factor from user to device space.
func (p *Painter) DeviceScale() float64 { return p.scale() }

// scale is the uniform scale factor of the current transform.
func (p *Painter) scale() float64 {
	m := p.st.m
	return math.Sqrt(math.Abs(m[0]*m[4] - m[1]*m[3]))
}

// DeviceRect returns the device-space bounding box of a user rectangle
// grown by pad device pixels and clipped to the frame.
func (p *Painter) DeviceRect(x, y, w, h, pad float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}} {
		dx, dy := p.Transform(c[0], c[1])
		minX, maxX = math.Min(minX, dx), math.Max(maxX, dx)
		minY, maxY = math.Min(minY, dy), math.Max(maxY, dy)
	}
	r := image.Rect(
		int(math.Floor(minX-pad)), int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)), int(math.Ceil(maxY+pad)),
	)
	return r.Intersect(p.frame.Rect)
}

// LayerFX is applied when a layer is composited back.
type LayerFX struct {
	Opacity float64
	Blur    float64 // gaussian sigma in pixels
	Rotate  float64 // clockwise degrees around the layer center
}

// BeginLayer redirects drawing into an offscreen buffer covering r in device
// space. Everything drawn until EndLayer is composited as one unit.
func (p *Painter) BeginLayer(r image.Rectangle) {
	buf := image.NewRGBA(r)
	p.layers = append(p.layers, layer{parent: p.dst, buf: buf, saved: len(p.stack)})
	p.Save()
	p.dst = buf
}

// EndLayer composites the innermost layer onto its parent.
func (p *Painter) EndLayer(fx LayerFX) {
	n := len(p.layers)
	if n == 0 {
		return
	}
	l := p.layers[n-1]
	p.layers = p.layers[:n-1]
	p.stack = p.stack[:l.saved+1]
	p.Restore()
	p.dst = l.parent

	if fx.Opacity <= 0 || l.buf.Rect.Empty() {
		return
	}

	var src image.Image = l.buf
	dr := l.buf.Rect
	if fx.Blur > 0 {
		src = imaging.Blur(src, fx.Blur)
	}
	if fx.Rotate != 0 {
		rot := imaging.Rotate(src, -fx.Rotate, color.Transparent)
		c := dr.Min.Add(dr.Size().Div(2))
		sz := rot.Bounds().Size()
		dr = image.Rectangle{Min: c.Sub(sz.Div(2))}
		dr.Max = dr.Min.Add(sz)
		src = rot
	}
	composite(p.dst, dr, src, fx.Opacity)
}

// composite draws src over dst at dr with a uniform opacity.
func composite(dst *image.RGBA, dr image.Rectangle, src image.Image, opacity float64) {
	sp := src.Bounds().Min
	if opacity >= 1 {
		draw.Draw(dst, dr, src, sp, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha16{A: uint16(clamp01(opacity) * 0xffff)})
	draw.DrawMask(dst, dr, src, sp, mask, image.Point{}, draw.Over)
}

// mul returns the transform that applies n, then m.
func mul(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// withAlpha converts c to NRGBA and scales its alpha by the current opacity
// times a.
func (p *Painter) withAlpha(c color.Color, a float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*clamp01(p.st.alpha*a) + 0.5)
	return n
}
