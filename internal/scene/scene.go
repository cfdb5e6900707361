// Package scene holds the visual components of a reel.
//
// A component is a value describing its content. Render derives every
// position, scale, opacity and color from the frame in the Context and
// nothing else, so any frame can be drawn in any order by any goroutine
// that owns its Painter.
//
// Components lay themselves out in layout units on a canvas at least
// DesignWidth x DesignHeight large; the composition maps layout units to
// pixels with LayoutScale.
package scene

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// Size of the design canvas in layout units.
const (
	DesignWidth  = 1080
	DesignHeight = 1920
)

// Context is everything a component may depend on.
type Context struct {
	Frame   int // frame relative to the start of the component's sequence
	Global  int // frame of the composition
	FPS     int
	Width   float64 // canvas size in layout units
	Height  float64
	Palette theme.Palette
	Assets  *assets.Library
}

// Shift returns c as seen by a child that starts n frames later.
func (c Context) Shift(n int) Context {
	c.Frame -= n
	return c
}

// CX is the horizontal center of the canvas.
func (c Context) CX() float64 { return c.Width / 2 }

// CY is the vertical center of the canvas.
func (c Context) CY() float64 { return c.Height / 2 }

// Scene is a component that can draw itself on any frame.
type Scene interface {
	Render(p *paint.Painter, c Context)
}

// Func adapts a function to the Scene interface.
type Func func(p *paint.Painter, c Context)

func (f Func) Render(p *paint.Painter, c Context) { f(p, c) }

// LayoutScale returns the factor that maps layout units to pixels for a
// w x h frame and the canvas size in layout units. The design canvas always
// fits, and the extra room goes to the longer axis.
func LayoutScale(w, h int) (k, lw, lh float64) {
	k = math.Min(float64(w)/DesignWidth, float64(h)/DesignHeight)
	if k <= 0 {
		return 1, float64(w), float64(h)
	}
	return k, float64(w) / k, float64(h) / k
}

func rgba(c colorful.Color, a float64) color.NRGBA { return theme.Alpha(c, a) }

// Markup turns copy with highlights into spans: *words* take the accent
// color and _words_ the danger color.
func Markup(s string, pal theme.Palette) []paint.Span {
	var (
		spans []paint.Span
		cur   strings.Builder
		mode  rune
	)
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		sp := paint.Span{Text: cur.String()}
		switch mode {
		case '*':
			sp.Color = theme.Opaque(pal.Accent)
		case '_':
			sp.Color = theme.Opaque(pal.Danger)
		}
		spans = append(spans, sp)
		cur.Reset()
	}
	for _, r := range s {
		if r == '*' || r == '_' {
			flush()
			if mode == r {
				mode = 0
			} else if mode == 0 {
				mode = r
			} else {
				cur.WriteRune(r)
			}
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return spans
}

// Plain strips highlight markers from copy.
func Plain(s string) string {
	return strings.NewReplacer("*", "", "_", "").Replace(s)
}

var numbers = message.NewPrinter(language.English)

// FormatValue prints v with thousands separators and a fixed number of
// decimals.
func FormatValue(v float64, decimals int) string {
	decimals = max(0, decimals)
	if decimals == 0 {
		v = math.Round(v)
	}
	return numbers.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// Quote wraps excuse text in typographic quotes.
func Quote(s string) string {
	return "“" + s + "”"
}
