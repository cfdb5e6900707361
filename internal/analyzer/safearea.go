package analyzer

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Margins are the parts of a vertical video covered by platform UI, as
// fractions of the frame size.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// ReelsMargins cover the caption, action buttons and header of the common
// short-video players.
var ReelsMargins = Margins{Top: 0.12, Bottom: 0.20, Left: 0.05, Right: 0.14}

// Safe returns the part of bounds no overlay covers.
func (m Margins) Safe(bounds image.Rectangle) image.Rectangle {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	return image.Rect(
		bounds.Min.X+int(w*m.Left),
		bounds.Min.Y+int(h*m.Top),
		bounds.Max.X-int(w*m.Right),
		bounds.Max.Y-int(h*m.Bottom),
	)
}

// Violation is a block of content that reaches under an overlay.
type Violation struct {
	Frame int
	Block Block
	Edges []string // top, bottom, left, right
}

func (v Violation) String() string {
	return fmt.Sprintf("кадр %d: %s %v заходит за %s", v.Frame, v.Block.Type, v.Block.Rect, strings.Join(v.Edges, ", "))
}

// SafeAreaCheck finds content outside the safe area of a frame.
type SafeAreaCheck struct {
	Detector Detector
	Margins  Margins
	// Tolerance in pixels a block may cross a margin by.
	Tolerance int
}

// NewSafeAreaCheck checks the reels margins with the detector variant
// (see NewDetector).
func NewSafeAreaCheck(variant string) (*SafeAreaCheck, error) {
	detector, err := NewDetector(variant)
	if err != nil {
		return nil, err
	}
	return &SafeAreaCheck{Detector: detector, Margins: ReelsMargins, Tolerance: 4}, nil
}

// Check compares a frame with the same frame rendered without content, so
// the backdrop never counts as content, and reports every block that
// crosses a margin.
func (c *SafeAreaCheck) Check(frame int, img, backdrop image.Image) ([]Violation, error) {
	var src image.Image = img
	if backdrop != nil {
		src = Difference(img, backdrop)
	}
	blocks, err := c.Detector.Detect(src)
	if err != nil {
		return nil, err
	}

	safe := c.Margins.Safe(img.Bounds()).Inset(-c.Tolerance)
	var out []Violation
	for _, b := range blocks {
		var edges []string
		if b.Rect.Min.Y < safe.Min.Y {
			edges = append(edges, "top")
		}
		if b.Rect.Max.Y > safe.Max.Y {
			edges = append(edges, "bottom")
		}
		if b.Rect.Min.X < safe.Min.X {
			edges = append(edges, "left")
		}
		if b.Rect.Max.X > safe.Max.X {
			edges = append(edges, "right")
		}
		if len(edges) > 0 {
			out = append(out, Violation{Frame: frame, Block: b, Edges: edges})
		}
	}
	return out, nil
}

// Difference returns the per-pixel largest channel difference of a and b.
func Difference(a, b image.Image) *image.Gray {
	r := a.Bounds().Intersect(b.Bounds())
	out := image.NewGray(r)
	ra, aok := a.(*image.RGBA)
	rb, bok := b.(*image.RGBA)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			var ca, cb color.RGBA
			if aok && bok {
				ca, cb = ra.RGBAAt(x, y), rb.RGBAAt(x, y)
			} else {
				ca = color.RGBAModel.Convert(a.At(x, y)).(color.RGBA)
				cb = color.RGBAModel.Convert(b.At(x, y)).(color.RGBA)
			}
			out.SetGray(x, y, color.Gray{Y: max(absDiff(ca.R, cb.R), absDiff(ca.G, cb.G), absDiff(ca.B, cb.B))})
		}
	}
	return out
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
