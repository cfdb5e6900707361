package paint

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/image/math/f64"

	"github.com/ivlev/hypereel/internal/theme"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
)

func newTestPainter(w, h int) *Painter {
	p := New(image.NewRGBA(image.Rect(0, 0, w, h)), theme.DefaultFonts())
	p.Clear(white)
	return p
}

func at(p *Painter, x, y int) color.RGBA {
	return p.Image().RGBAAt(x, y)
}

func TestFillRect(t *testing.T) {
	p := newTestPainter(100, 100)
	p.FillRect(10, 10, 30, 30, red)

	if got := at(p, 25, 25); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside = %v, want red", got)
	}
	if got := at(p, 50, 50); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("outside = %v, want white", got)
	}
}

func TestTransformStack(t *testing.T) {
	p := newTestPainter(100, 100)
	p.Save()
	p.Translate(50, 50)
	p.Scale(2, 2)
	if x, y := p.Transform(5, 5); x != 60 || y != 60 {
		t.Errorf("Transform(5,5) = %v,%v, want 60,60", x, y)
	}
	p.FillRect(0, 0, 10, 10, red)
	p.Restore()

	if x, y := p.Transform(5, 5); x != 5 || y != 5 {
		t.Errorf("after Restore Transform(5,5) = %v,%v", x, y)
	}
	if got := at(p, 65, 65); got.G != 0 {
		t.Errorf("scaled rect missing at 65,65: %v", got)
	}
	if got := at(p, 45, 45); got.G != 255 {
		t.Errorf("scaled rect leaked to 45,45: %v", got)
	}
}

func TestScaleAbout(t *testing.T) {
	p := newTestPainter(10, 10)
	p.ScaleAbout(2, 50, 50)
	if x, y := p.Transform(50, 50); x != 50 || y != 50 {
		t.Errorf("fixed point moved to %v,%v", x, y)
	}
	if x, _ := p.Transform(60, 50); x != 70 {
		t.Errorf("Transform(60,50).x = %v, want 70", x)
	}
}

func TestAlpha(t *testing.T) {
	p := newTestPainter(20, 20)
	p.MulAlpha(0.5)
	p.FillRect(0, 0, 20, 20, black)
	got := at(p, 10, 10)
	if got.R < 120 || got.R > 135 {
		t.Errorf("half black over white = %v, want ~128 grey", got)
	}
}

func TestRingHasHole(t *testing.T) {
	p := newTestPainter(100, 100)
	p.Ring(50, 50, 30, 6, red)

	if got := at(p, 50, 50); got.G != 255 {
		t.Errorf("ring center painted: %v", got)
	}
	if got := at(p, 80, 50); got.G != 0 {
		t.Errorf("ring band not painted: %v", got)
	}
}

func TestStrokeRoundRectHasHole(t *testing.T) {
	p := newTestPainter(100, 100)
	p.StrokeRoundRect(10, 10, 80, 80, 12, 4, red)
	if got := at(p, 50, 50); got.G != 255 {
		t.Errorf("border center painted: %v", got)
	}
	if got := at(p, 50, 11); got.G != 0 {
		t.Errorf("top border missing: %v", got)
	}
}

func TestFillClipsOffscreenShapes(t *testing.T) {
	p := newTestPainter(50, 50)
	p.FillCircle(0, 0, 200, red)
	p.FillRect(-100, 40, 400, 100, black)

	if got := at(p, 25, 25); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("huge circle not covering the frame: %v", got)
	}
	if got := at(p, 25, 45); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("wide rect not covering the bottom: %v", got)
	}
}

func TestClipContour(t *testing.T) {
	square := []f64.Vec2{{-10, -10}, {20, -10}, {20, 20}, {-10, 20}}
	got := clipContour(square, [4]float64{0, 10, 0, 10})
	if a := signedArea(got); a < 99.99 || a > 100.01 {
		t.Errorf("clipped area = %v, want 100 (%v)", a, got)
	}
	if got := clipContour(square, [4]float64{30, 40, 30, 40}); len(got) != 0 {
		t.Errorf("disjoint clip kept %v", got)
	}
}

func TestLayerOpacity(t *testing.T) {
	p := newTestPainter(40, 40)
	p.BeginLayer(image.Rect(0, 0, 40, 40))
	p.FillRect(0, 0, 40, 40, black)
	p.FillRect(0, 0, 40, 40, black)
	p.EndLayer(LayerFX{Opacity: 0.5})

	got := at(p, 20, 20)
	if got.R < 120 || got.R > 135 {
		t.Errorf("layer at half opacity = %v, want ~128 grey", got)
	}
}

func TestLayerRestoresState(t *testing.T) {
	p := newTestPainter(40, 40)
	p.Translate(5, 5)
	p.BeginLayer(image.Rect(0, 0, 40, 40))
	p.Translate(100, 100)
	p.Save()
	p.EndLayer(LayerFX{Opacity: 1})

	if x, y := p.Transform(0, 0); x != 5 || y != 5 {
		t.Errorf("transform after EndLayer = %v,%v, want 5,5", x, y)
	}
	if p.dst != p.frame {
		t.Error("painter still targets the layer")
	}
}

func TestLayerBlurSpreads(t *testing.T) {
	p := newTestPainter(60, 60)
	p.BeginLayer(image.Rect(0, 0, 60, 60))
	p.FillRect(25, 25, 10, 10, black)
	p.EndLayer(LayerFX{Opacity: 1, Blur: 4})

	if got := at(p, 22, 30); got.R == 255 {
		t.Errorf("blur did not spread outside the square: %v", got)
	}
}

func TestLayoutWraps(t *testing.T) {
	p := newTestPainter(10, 10)
	st := TextStyle{Size: 32, Weight: theme.Bold, Color: black, MaxWidth: 300}
	text := "I am so bored during this work call I need to scroll"

	lines := p.Layout(text, st)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", lines)
	}
	for _, l := range lines {
		if w, _ := p.MeasureText(l, st.Size, st.Weight); w > st.MaxWidth {
			t.Errorf("line %q is %v wide, limit %v", l, w, st.MaxWidth)
		}
	}
	if joined := strings.Join(lines, " "); joined != text {
		t.Errorf("wrapping changed the words: %q", joined)
	}
	t.Logf("lines: %q", lines)
}

func TestTextDraws(t *testing.T) {
	p := newTestPainter(400, 100)
	h := p.Text("Spool", 200, 20, TextStyle{Size: 48, Weight: theme.Bold, Color: black, Align: AlignCenter})
	if h != 60 {
		t.Errorf("block height = %v, want 60", h)
	}

	dark := 0
	for y := 20; y < 80; y++ {
		for x := 100; x < 300; x++ {
			if at(p, x, y).R < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("no glyph pixels drawn")
	}
	if got := at(p, 20, 50); got.R != 255 {
		t.Errorf("centered text reached the left edge: %v", got)
	}
}

func TestVignetteDarkensCorners(t *testing.T) {
	p := newTestPainter(100, 160)
	p.Vignette(0.7, black)

	if got := at(p, 50, 80); got.R != 255 {
		t.Errorf("center darkened: %v", got)
	}
	if got := at(p, 0, 0); got.R > 120 {
		t.Errorf("corner not darkened: %v", got)
	}
}

func TestRadialGlowFades(t *testing.T) {
	p := newTestPainter(100, 100)
	p.RadialGlow(50, 50, 40, 1, 1, black)
	center, edge, outside := at(p, 50, 50).R, at(p, 80, 50).R, at(p, 95, 50).R
	if !(center < edge && edge < outside) {
		t.Errorf("glow not fading: center %d, edge %d, outside %d", center, edge, outside)
	}
	if outside != 255 {
		t.Errorf("glow painted beyond its radius: %d", outside)
	}
}

func TestDrawImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:], []uint8{255, 0, 0, 255})
	}
	p := newTestPainter(50, 50)
	p.DrawImage(src, 10, 10, 20, 20, 0)
	if got := at(p, 20, 20); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("image pixel = %v, want red", got)
	}
	if got := at(p, 5, 5); got.G != 255 {
		t.Errorf("image drawn outside its rect: %v", got)
	}
}

func TestShapesStayInsideBounds(t *testing.T) {
	p := newTestPainter(100, 100)
	p.Star(50, 50, 20, 8, 5, red)
	p.Heart(50, 50, 30, red)
	p.DashedRing(50, 50, 40, 3, 10, 5, 0, red)
	p.Arc(50, 50, 30, 4, -90, 270, red)
	p.Pie(50, 50, 10, 0, 90, red)
	p.Polyline([]float64{10, 90, 50, 60, 90, 90}, 4, red)
	if got := at(p, 50, 50); got.G != 0 {
		t.Errorf("center not painted: %v", got)
	}
	if got := at(p, 2, 2); got.G != 255 {
		t.Errorf("corner painted: %v", got)
	}
}

func TestWordsGlueAcrossSpans(t *testing.T) {
	ws := words([]Span{{Text: "What "}, {Text: "Spool", Color: red}, {Text: " gives you"}, {Text: "!"}})
	var got []string
	for _, w := range ws {
		s := w.text
		if w.glue {
			s = "+" + s
		}
		got = append(got, s)
	}
	want := []string{"What", "Spool", "gives", "you", "+!"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("words = %q, want %q", got, want)
	}
	if ws[1].color != red {
		t.Errorf("span color lost: %v", ws[1].color)
	}
}

func TestRichTextWrapsAndBreaks(t *testing.T) {
	p := newTestPainter(600, 300)
	st := TextStyle{Size: 40, Weight: theme.Bold, Color: black, MaxWidth: 260, Align: AlignCenter}
	spans := []Span{{Text: "Your brain runs this loop "}, {Text: "150x", Color: red}, {Text: " a day."}}

	lines := p.layoutRich(spans, st)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %d line(s)", len(lines))
	}
	for i, l := range lines {
		if l.width > st.MaxWidth {
			t.Errorf("line %d is %v wide, limit %v", i, l.width, st.MaxWidth)
		}
	}

	broken := p.layoutRich([]Span{{Text: "one\ntwo"}}, TextStyle{Size: 20, Weight: theme.Regular})
	if len(broken) != 2 {
		t.Errorf("hard break gave %d lines, want 2", len(broken))
	}

	h := p.RichText(spans, 300, 10, st)
	if want := float64(len(lines)) * 40 * 1.25; h != want {
		t.Errorf("height = %v, want %v", h, want)
	}
	reds := 0
	for y := 0; y < 300; y++ {
		for x := 0; x < 600; x++ {
			if c := at(p, x, y); c.R > 200 && c.G < 80 {
				reds++
			}
		}
	}
	if reds == 0 {
		t.Error("highlighted span not drawn in its color")
	}
}
