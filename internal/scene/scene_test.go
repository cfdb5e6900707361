package scene

import (
	"image"
	"strings"
	"testing"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/pacing"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// newContext returns a context for a 270x480 frame: the design canvas at a
// quarter scale, with a library whose artwork falls back to the spool.
func newContext(t *testing.T) (*paint.Painter, Context) {
	t.Helper()
	const w, h = 270, 480
	p := paint.New(image.NewRGBA(image.Rect(0, 0, w, h)), theme.DefaultFonts())
	k, lw, lh := LayoutScale(w, h)
	p.Scale(k, k)
	return p, Context{
		FPS:     30,
		Width:   lw,
		Height:  lh,
		Palette: theme.Clean,
		Assets:  assets.NewLibrary(t.TempDir(), assets.DefaultFiles, 72),
	}
}

// painted counts the pixels that are no longer transparent.
func painted(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func renderAt(t *testing.T, s Scene, frame int) *image.RGBA {
	t.Helper()
	p, c := newContext(t)
	c.Frame, c.Global = frame, frame
	s.Render(p, c)
	return p.Image()
}

func TestMarkup(t *testing.T) {
	pal := theme.Clean
	spans := Markup("What *Spool* gives _you_", pal)
	if len(spans) != 4 {
		t.Fatalf("got %d spans, want 4: %+v", len(spans), spans)
	}
	want := []string{"What ", "Spool", " gives ", "you"}
	for i, sp := range spans {
		if sp.Text != want[i] {
			t.Errorf("span %d = %q, want %q", i, sp.Text, want[i])
		}
	}
	if spans[0].Color != nil || spans[2].Color != nil {
		t.Error("plain spans should inherit the style color")
	}
	if spans[1].Color != theme.Opaque(pal.Accent) {
		t.Errorf("starred span color = %v, want accent", spans[1].Color)
	}
	if spans[3].Color != theme.Opaque(pal.Danger) {
		t.Errorf("underscored span color = %v, want danger", spans[3].Color)
	}
	if got := Plain("*35%* of _it_"); got != "35% of it" {
		t.Errorf("Plain = %q", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{3313, 0, "3,313"},
		{3312.6, 0, "3,313"},
		{2.94, 1, "2.9"},
		{9.1, 1, "9.1"},
		{179, 0, "179"},
		{0, 1, "0.0"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.decimals); got != tt.want {
			t.Errorf("FormatValue(%v, %d) = %q, want %q", tt.v, tt.decimals, got, tt.want)
		}
	}
	s := Stat{Value: 3500, Suffix: "+"}
	if got := s.Display(3500); got != "3,500+" {
		t.Errorf("Display = %q", got)
	}
}

func TestLayoutScale(t *testing.T) {
	tests := []struct {
		w, h      int
		k, lw, lh float64
	}{
		{1080, 1920, 1, 1080, 1920},
		{720, 1280, 2.0 / 3, 1080, 1920},
		{1080, 1080, 0.5625, 1920, 1920},
		{2160, 3840, 2, 1080, 1920},
	}
	for _, tt := range tests {
		k, lw, lh := LayoutScale(tt.w, tt.h)
		if !near(k, tt.k) || !near(lw, tt.lw) || !near(lh, tt.lh) {
			t.Errorf("LayoutScale(%d, %d) = %v, %v, %v; want %v, %v, %v", tt.w, tt.h, k, lw, lh, tt.k, tt.lw, tt.lh)
		}
		if lw < DesignWidth-1e-6 || lh < DesignHeight-1e-6 {
			t.Errorf("LayoutScale(%d, %d): canvas %vx%v is smaller than the design", tt.w, tt.h, lw, lh)
		}
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

func TestPoseFor(t *testing.T) {
	tests := []struct {
		index int
		want  assets.Mascot
	}{
		{-1, assets.Smirk},
		{0, assets.Smirk},
		{2, assets.Smirk},
		{3, assets.Shock},
		{7, assets.Shock},
		{8, assets.Smirk},
		{13, assets.Smirk},
	}
	for _, tt := range tests {
		if got := PoseFor(DefaultReactions, tt.index); got != tt.want {
			t.Errorf("PoseFor(%d) = %s, want %s", tt.index, got, tt.want)
		}
	}
}

func TestNewSlide(t *testing.T) {
	kinds := SlideKinds()
	if len(kinds) != 8 {
		t.Fatalf("got %d kinds, want 8: %v", len(kinds), kinds)
	}
	for _, k := range kinds {
		s, err := NewSlide(k)
		if err != nil || s == nil {
			t.Errorf("NewSlide(%q) = %v, %v", k, s, err)
		}
	}
	if _, err := NewSlide("carousel"); err == nil || !strings.Contains(err.Error(), "carousel") {
		t.Errorf("unknown kind error = %v", err)
	}

	s, _ := NewSlide(KindWhatYouGet)
	s.(*WhatYouGetSlide).Features[0].Title = "changed"
	if DefaultWhatYouGet.Features[0].Title == "changed" {
		t.Error("a slide shares its features with the defaults")
	}
}

func TestParseIcon(t *testing.T) {
	for _, name := range Icons() {
		if _, err := ParseIcon(name); err != nil {
			t.Errorf("ParseIcon(%q): %v", name, err)
		}
	}
	if _, err := ParseIcon("rocket"); err == nil {
		t.Error("ParseIcon accepted an unknown icon")
	}
}

func TestFinalZoomEnds(t *testing.T) {
	z := FinalZoom{Text: "I need to check one thing", Duration: 25}
	if n := painted(renderAt(t, z, 0)); n == 0 {
		t.Error("zoom card not drawn on its first frame")
	}
	if n := painted(renderAt(t, z, 30)); n != 0 {
		t.Errorf("zoom card still draws %d pixels after it ended", n)
	}
}

func TestSlidesHideBeforeTheyStart(t *testing.T) {
	for _, k := range SlideKinds() {
		s, _ := NewSlide(k)
		if n := painted(renderAt(t, s, -1)); n != 0 {
			t.Errorf("%s draws %d pixels before its sequence", k, n)
		}
	}
}

func TestScenesDraw(t *testing.T) {
	timings := pacing.SCurve([]string{"one more", "just checking", "bored"}, 0, pacing.DefaultSchedule)
	cards := make([]ExcuseCard, len(timings))
	for i, tm := range timings {
		cards[i] = ExcuseCard{Text: tm.Text, Timing: tm}
	}
	stats := []Stat{{Value: 3313, Label: "excuses made"}, {Value: 9.1, Decimals: 1, Label: "days"}}

	scenes := map[string]Scene{
		"background": Background{Spool: true, FocusAt: 10},
		"intro":      Intro{Title: "Every excuse", Subtitle: "we have heard"},
		"wave intro": Intro{Title: "Hi", Pose: assets.Wave},
		"ticker":     Ticker{Intro: &Intro{Title: "Excuses"}, IntroOut: 20, Cards: cards, Reactions: DefaultReactions, MascotFrom: 0, MascotTo: 200, BlurFrom: 0, BlurTo: 100},
		"finale":     StatsFinale{Header: "We've heard it all...", Stats: stats},
		"count up":   StatCountUp{Stat: stats[0]},
		"reviews":    &DefaultReviews,
		"download":   &Download{AppName: "Spool", Tagline: "Unwind wisely", URL: "https://example.com/app"},
	}
	for _, k := range SlideKinds() {
		s, _ := NewSlide(k)
		scenes[k] = s
	}
	for name, s := range scenes {
		t.Run(name, func(t *testing.T) {
			img := renderAt(t, s, 40)
			if n := painted(img); n == 0 {
				t.Error("nothing was drawn on frame 40")
			}
		})
	}
}

func TestStatCountUpSettles(t *testing.T) {
	s := StatCountUp{Stat: Stat{Value: 179}, Delay: 15}
	if got := s.Current(0, 30); got != 0 {
		t.Errorf("value before the slam = %v, want 0", got)
	}
	if got := s.Current(15+90, 30); got != 179 {
		t.Errorf("settled value = %v, want 179", got)
	}
	f := StatsFinale{Stats: []Stat{{Value: 1}, {Value: 2}, {Value: 3}}}
	if got := f.Settled(30); got != 15+2*20+60 {
		t.Errorf("Settled = %d, want %d", got, 15+2*20+60)
	}
}
