package paint

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/math/f64"
)

// path collects closed contours in device space. Arcs are flattened with a
// segment count that depends on their device radius.
type path struct {
	m        f64.Aff3
	s        float64
	contours [][]f64.Vec2
	cur      []f64.Vec2
}

func (p *Painter) newPath() *path {
	return &path{m: p.st.m, s: p.scale()}
}

func (pb *path) lineTo(x, y float64) {
	m := pb.m
	pb.cur = append(pb.cur, f64.Vec2{m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]})
}

// arc appends points on a circle from angle a0 to a1, in radians, measured
// clockwise from the positive x axis.
func (pb *path) arc(cx, cy, r, a0, a1 float64) {
	n := segments(r*pb.s, math.Abs(a1-a0))
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		pb.lineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
}

// close ends the current contour. Holes are wound against the outlines so
// that the rasterizer's coverage cancels out inside them.
func (pb *path) close(hole bool) {
	if len(pb.cur) < 3 {
		pb.cur = nil
		return
	}
	if (signedArea(pb.cur) < 0) != hole {
		reverse(pb.cur)
	}
	pb.contours = append(pb.contours, pb.cur)
	pb.cur = nil
}

func segments(deviceRadius, sweep float64) int {
	full := math.Ceil(2 * math.Pi * math.Sqrt(math.Max(deviceRadius, 1)))
	n := int(math.Ceil(full * sweep / (2 * math.Pi)))
	return min(max(n, 4), 512)
}

func signedArea(c []f64.Vec2) float64 {
	a := 0.0
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i][0]*c[j][1] - c[j][0]*c[i][1]
	}
	return a / 2
}

func reverse(c []f64.Vec2) {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

// fill rasterizes the contours with src.
func (p *Painter) fill(pb *path, src image.Image) {
	if len(pb.contours) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range pb.contours {
		for _, pt := range c {
			minX, maxX = math.Min(minX, pt[0]), math.Max(maxX, pt[0])
			minY, maxY = math.Min(minY, pt[1]), math.Max(maxY, pt[1])
		}
	}
	bbox := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	clip := bbox.Intersect(p.dst.Rect)
	if clip.Empty() {
		return
	}

	contours := pb.contours
	if clip != bbox {
		b := [4]float64{float64(clip.Min.X), float64(clip.Max.X), float64(clip.Min.Y), float64(clip.Max.Y)}
		contours = make([][]f64.Vec2, 0, len(pb.contours))
		for _, c := range pb.contours {
			if c = clipContour(c, b); len(c) >= 3 {
				contours = append(contours, c)
			}
		}
	}

	ox, oy := float64(clip.Min.X), float64(clip.Min.Y)
	p.r.Reset(clip.Dx(), clip.Dy())
	for _, c := range contours {
		p.r.MoveTo(float32(c[0][0]-ox), float32(c[0][1]-oy))
		for _, pt := range c[1:] {
			p.r.LineTo(float32(pt[0]-ox), float32(pt[1]-oy))
		}
		p.r.ClosePath()
	}
	p.r.Draw(p.dst, clip, src, clip.Min)
}

// clipContour clips a contour to the box {minX, maxX, minY, maxY} with
// Sutherland-Hodgman. Coverage inside the box is unchanged.
func clipContour(c []f64.Vec2, box [4]float64) []f64.Vec2 {
	for edge := 0; edge < 4 && len(c) > 0; edge++ {
		axis, bound := edge/2, box[edge]
		keep := func(v f64.Vec2) bool {
			if edge%2 == 0 {
				return v[axis] >= bound
			}
			return v[axis] <= bound
		}
		cross := func(a, b f64.Vec2) f64.Vec2 {
			t := (bound - a[axis]) / (b[axis] - a[axis])
			var v f64.Vec2
			v[axis] = bound
			v[1-axis] = a[1-axis] + t*(b[1-axis]-a[1-axis])
			return v
		}

		out := make([]f64.Vec2, 0, len(c)+4)
		prev := c[len(c)-1]
		for _, cur := range c {
			switch in, prevIn := keep(cur), keep(prev); {
			case in && prevIn:
				out = append(out, cur)
			case in:
				out = append(out, cross(prev, cur), cur)
			case prevIn:
				out = append(out, cross(prev, cur))
			}
			prev = cur
		}
		c = out
	}
	return c
}

func (p *Painter) fillColor(pb *path, c color.Color, a float64) {
	col := p.withAlpha(c, a)
	if col.A == 0 {
		return
	}
	p.fill(pb, image.NewUniform(col))
}

func (pb *path) rect(x, y, w, h float64) {
	pb.lineTo(x, y)
	pb.lineTo(x+w, y)
	pb.lineTo(x+w, y+h)
	pb.lineTo(x, y+h)
}

func (pb *path) roundRect(x, y, w, h, r float64) {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	if r == 0 {
		pb.rect(x, y, w, h)
		return
	}
	const q = math.Pi / 2
	pb.arc(x+w-r, y+r, r, -q, 0)
	pb.arc(x+w-r, y+h-r, r, 0, q)
	pb.arc(x+r, y+h-r, r, q, 2*q)
	pb.arc(x+r, y+r, r, 2*q, 3*q)
}

func (pb *path) circle(cx, cy, r float64) {
	pb.arc(cx, cy, r, 0, 2*math.Pi)
	pb.cur = pb.cur[:len(pb.cur)-1]
}

// FillRect fills an axis-aligned rectangle.
func (p *Painter) FillRect(x, y, w, h float64, c color.Color) {
	pb := p.newPath()
	pb.rect(x, y, w, h)
	pb.close(false)
	p.fillColor(pb, c, 1)
}

// FillRoundRect fills a rectangle with corners of radius r.
func (p *Painter) FillRoundRect(x, y, w, h, r float64, c color.Color) {
	pb := p.newPath()
	pb.roundRect(x, y, w, h, r)
	pb.close(false)
	p.fillColor(pb, c, 1)
}

// StrokeRoundRect outlines a rounded rectangle with a border of width lw
// drawn inside its edge.
func (p *Painter) StrokeRoundRect(x, y, w, h, r, lw float64, c color.Color) {
	pb := p.newPath()
	pb.roundRect(x, y, w, h, r)
	pb.close(false)
	pb.roundRect(x+lw, y+lw, w-2*lw, h-2*lw, r-lw)
	pb.close(true)
	p.fillColor(pb, c, 1)
}

// FillCircle fills a disc.
func (p *Painter) FillCircle(cx, cy, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	pb := p.newPath()
	pb.circle(cx, cy, r)
	pb.close(false)
	p.fillColor(pb, c, 1)
}

// Ring strokes a circle of radius r with width lw centered on it.
func (p *Painter) Ring(cx, cy, r, lw float64, c color.Color) {
	pb := p.newPath()
	pb.circle(cx, cy, r+lw/2)
	pb.close(false)
	if inner := r - lw/2; inner > 0 {
		pb.circle(cx, cy, inner)
		pb.close(true)
	}
	p.fillColor(pb, c, 1)
}

func (pb *path) arcBand(cx, cy, r, lw, a0, a1 float64) {
	outer, inner := r+lw/2, math.Max(0, r-lw/2)
	pb.arc(cx, cy, outer, a0, a1)
	pb.arc(cx, cy, inner, a1, a0)
	pb.close(false)
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

// Arc strokes sweep degrees of a circle starting at start degrees. Angles run
// clockwise with 0 at three o'clock; -90 is twelve o'clock.
func (p *Painter) Arc(cx, cy, r, lw, start, sweep float64, c color.Color) {
	if sweep == 0 {
		return
	}
	pb := p.newPath()
	pb.arcBand(cx, cy, r, lw, rad(start), rad(start+sweep))
	p.fillColor(pb, c, 1)
}

// DashedRing strokes a circle as dashes of dash degrees separated by gap
// degrees, rotated by phase degrees.
func (p *Painter) DashedRing(cx, cy, r, lw, dash, gap, phase float64, c color.Color) {
	if dash <= 0 {
		return
	}
	pb := p.newPath()
	for a := 0.0; a < 360; a += dash + gap {
		d := math.Min(dash, 360-a)
		pb.arcBand(cx, cy, r, lw, rad(phase+a), rad(phase+a+d))
	}
	p.fillColor(pb, c, 1)
}

// Pie fills a circular sector.
func (p *Painter) Pie(cx, cy, r, start, sweep float64, c color.Color) {
	if sweep == 0 || r <= 0 {
		return
	}
	pb := p.newPath()
	pb.lineTo(cx, cy)
	pb.arc(cx, cy, r, rad(start), rad(start+sweep))
	pb.close(false)
	p.fillColor(pb, c, 1)
}

// FillPolygon fills the polygon through pts, given as x, y pairs.
func (p *Painter) FillPolygon(pts []float64, c color.Color) {
	pb := p.newPath()
	for i := 0; i+1 < len(pts); i += 2 {
		pb.lineTo(pts[i], pts[i+1])
	}
	pb.close(false)
	p.fillColor(pb, c, 1)
}

// Line strokes a segment of width lw with round caps.
func (p *Painter) Line(x0, y0, x1, y1, lw float64, c color.Color) {
	p.Polyline([]float64{x0, y0, x1, y1}, lw, c)
}

// Polyline strokes connected segments with round joins and caps, as one
// coverage pass so overlapping joints are not painted twice.
func (p *Painter) Polyline(pts []float64, lw float64, c color.Color) {
	if len(pts) < 4 || lw <= 0 {
		return
	}
	h := lw / 2
	pb := p.newPath()
	for i := 0; i+3 < len(pts); i += 2 {
		x0, y0, x1, y1 := pts[i], pts[i+1], pts[i+2], pts[i+3]
		dx, dy := x1-x0, y1-y0
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*h, dx/l*h
		pb.lineTo(x0+nx, y0+ny)
		pb.lineTo(x1+nx, y1+ny)
		pb.lineTo(x1-nx, y1-ny)
		pb.lineTo(x0-nx, y0-ny)
		pb.close(false)
	}
	for i := 0; i+1 < len(pts); i += 2 {
		pb.circle(pts[i], pts[i+1], h)
		pb.close(false)
	}
	p.fillColor(pb, c, 1)
}

// Star fills a star with n points.
func (p *Painter) Star(cx, cy, outer, inner float64, n int, c color.Color) {
	if n < 2 {
		return
	}
	pb := p.newPath()
	for i := 0; i < 2*n; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/float64(n)
		pb.lineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	pb.close(false)
	p.fillColor(pb, c, 1)
}

// Heart fills a heart about size pixels wide centered on (cx, cy).
func (p *Painter) Heart(cx, cy, size float64, c color.Color) {
	k := size / 34
	pb := p.newPath()
	n := segments(size*pb.s/2, 2*math.Pi)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		s := math.Sin(t)
		x := 16 * s * s * s
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		pb.lineTo(cx+x*k, cy-(y+2.5)*k)
	}
	pb.close(false)
	p.fillColor(pb, c, 1)
}
