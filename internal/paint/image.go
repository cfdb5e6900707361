package paint

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

type scaledKey struct {
	img  image.Image
	w, h int
}

const maxScaled = 48

// scaledImage returns img resized to w x h, reusing earlier results.
func (p *Painter) scaledImage(img image.Image, w, h int) *image.NRGBA {
	k := scaledKey{img: img, w: w, h: h}
	if s, ok := p.scaled[k]; ok {
		return s
	}
	if len(p.scaled) >= maxScaled {
		clear(p.scaled)
	}
	s := imaging.Resize(img, w, h, imaging.Linear)
	p.scaled[k] = s
	return s
}

// DrawImage draws img stretched over the user rectangle (x, y, w, h) at the
// current opacity. A positive blur applies a gaussian blur of that sigma in
// device pixels.
func (p *Painter) DrawImage(img image.Image, x, y, w, h, blur float64) {
	if img == nil || w <= 0 || h <= 0 || p.st.alpha <= 0 {
		return
	}
	x0, y0 := p.Transform(x, y)
	x1, y1 := p.Transform(x+w, y+h)
	dr := image.Rect(
		int(math.Round(math.Min(x0, x1))), int(math.Round(math.Min(y0, y1))),
		int(math.Round(math.Max(x0, x1))), int(math.Round(math.Max(y0, y1))),
	)
	if dr.Dx() < 1 || dr.Dy() < 1 || !dr.Overlaps(p.dst.Rect) {
		return
	}

	var src image.Image = p.scaledImage(img, dr.Dx(), dr.Dy())
	if blur > 0 {
		pad := int(math.Ceil(blur * 3))
		padded := imaging.New(dr.Dx()+2*pad, dr.Dy()+2*pad, image.Transparent)
		padded = imaging.Paste(padded, src, image.Pt(pad, pad))
		src = imaging.Blur(padded, blur)
		dr = dr.Inset(-pad)
	}
	composite(p.dst, dr, src, p.st.alpha)
}

// FitImage draws img as large as possible inside the user rectangle while
// keeping its aspect ratio, centered.
func (p *Painter) FitImage(img image.Image, x, y, w, h, blur float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	k := math.Min(w/float64(b.Dx()), h/float64(b.Dy()))
	iw, ih := float64(b.Dx())*k, float64(b.Dy())*k
	p.DrawImage(img, x+(w-iw)/2, y+(h-ih)/2, iw, ih, blur)
}
