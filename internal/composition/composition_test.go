package composition

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/hypereel/internal/effects"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/scene"
	"github.com/ivlev/hypereel/internal/theme"
)

func TestSequenceOpacity(t *testing.T) {
	s := Sequence{From: 100, Duration: 50, FadeIn: 10, FadeOut: 10}
	tests := []struct {
		frame int
		want  float64
	}{
		{99, 0},
		{100, 0},
		{105, 0.5},
		{120, 1},
		{145, 0.5},
		{150, 0},
	}
	for _, tt := range tests {
		if got := s.Opacity(tt.frame); got != tt.want {
			t.Errorf("Opacity(%d) = %v, want %v", tt.frame, got, tt.want)
		}
	}
	if (Sequence{From: 0, Duration: 10}).Opacity(0) != 1 {
		t.Error("a sequence without fades should start opaque")
	}
}

// recorder remembers the frames a scene was asked to draw.
type recorder struct{ frames *[]int }

func (r recorder) Render(p *paint.Painter, c scene.Context) {
	*r.frames = append(*r.frames, c.Frame)
}

func TestRenderFrameShiftsSequences(t *testing.T) {
	var a, b []int
	tl := &Timeline{
		Composition: Composition{Width: 108, Height: 192, FPS: 30, DurationInFrames: 100},
		Palette:     theme.Clean,
		Sequences: []Sequence{
			{Name: "a", From: 0, Duration: 50, Scene: recorder{&a}},
			{Name: "b", From: 40, Duration: 60, Scene: recorder{&b}},
		},
	}
	p := paint.New(image.NewRGBA(image.Rect(0, 0, 108, 192)), theme.DefaultFonts())
	for _, f := range []int{10, 45, 60} {
		tl.RenderFrame(p, f)
	}
	if diff := cmp.Diff([]int{10, 45}, a); diff != "" {
		t.Errorf("sequence a frames (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5, 20}, b); diff != "" {
		t.Errorf("sequence b frames (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, tl.Active(45)); diff != "" {
		t.Errorf("active (-want +got):\n%s", diff)
	}
}

func TestRenderFrameAppliesEffects(t *testing.T) {
	tl := &Timeline{
		Composition: Composition{Width: 54, Height: 96, FPS: 30, DurationInFrames: 40},
		Palette:     theme.Dark,
		Effects:     []effects.Effect{effects.Fade{Out: 10, Total: 40}},
	}
	p := paint.New(image.NewRGBA(image.Rect(0, 0, 54, 96)), theme.DefaultFonts())

	tl.RenderFrame(p, 0)
	bg := p.Image().RGBAAt(27, 48)
	if bg != color.RGBAModel.Convert(theme.Opaque(theme.Dark.Background)).(color.RGBA) {
		t.Errorf("frame 0 = %v, want the palette background", bg)
	}

	tl.RenderFrame(p, 40)
	if c := p.Image().RGBAAt(27, 48); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("last frame = %v, want black", c)
	}
}

func TestContextUsesLayoutUnits(t *testing.T) {
	tl := &Timeline{Composition: Composition{Width: 1080, Height: 1350, FPS: 30}}
	c := tl.Context(7)
	if c.Frame != 7 || c.Global != 7 {
		t.Errorf("frame = %d/%d", c.Frame, c.Global)
	}
	// 4:5 keeps the design height: the canvas grows wider.
	if c.Height != scene.DesignHeight || c.Width <= scene.DesignWidth {
		t.Errorf("canvas = %vx%v", c.Width, c.Height)
	}
	t.Logf("4:5 canvas: %.0fx%.0f layout units", c.Width, c.Height)
}
