package paint

import (
	"image"
	"image/color"
	"math"
	"strings"
	"unicode"

	"github.com/bbrks/wrap/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/hypereel/internal/theme"
)

// Align is the horizontal anchor of a text block.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes how a string is set.
type TextStyle struct {
	Size       float64 // pixels, in user space
	Weight     theme.Weight
	Color      color.Color
	Align      Align
	MaxWidth   float64 // wrap width in user space; 0 disables wrapping
	LineHeight float64 // multiple of Size; 0 means 1.25

	// Shadow, when set, is drawn under the text shifted down by
	// ShadowOffset.
	Shadow       color.Color
	ShadowOffset float64
}

func (s TextStyle) lineHeight() float64 {
	if s.LineHeight <= 0 {
		return 1.25
	}
	return s.LineHeight
}

type faceKey struct {
	w    theme.Weight
	size int // half pixels
}

// face returns a cached face of roughly size pixels.
func (p *Painter) face(w theme.Weight, size float64) font.Face {
	k := faceKey{w: w, size: max(2, int(math.Round(size*2)))}
	if f, ok := p.faces[k]; ok {
		return f
	}
	f, err := opentype.NewFace(p.fonts.Font(w), &opentype.FaceOptions{
		Size:    float64(k.size) / 2,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		// Only reachable with a corrupt font; the font was parsed at load.
		panic(err)
	}
	p.faces[k] = f
	return f
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// MeasureText returns the advance width of a single line of s and the line
// height of its face, both in user space.
func (p *Painter) MeasureText(s string, size float64, w theme.Weight) (width, height float64) {
	f := p.face(w, size)
	return toFloat(font.MeasureString(f, s)), toFloat(f.Metrics().Height)
}

// Layout splits s into the lines Text would draw.
func (p *Painter) Layout(s string, st TextStyle) []string {
	if st.MaxWidth <= 0 {
		return strings.Split(s, "\n")
	}
	f := p.face(st.Weight, st.Size)
	fits := func(lines []string) bool {
		for _, l := range lines {
			if toFloat(font.MeasureString(f, l)) > st.MaxWidth {
				return false
			}
		}
		return true
	}

	avg := toFloat(font.MeasureString(f, "abcdefghijklmnopqrstuvwxyz")) / 26
	cols := int(st.MaxWidth/math.Max(avg, 1)) + 4

	w := wrap.NewWrapper()
	w.StripTrailingNewline = true
	w.CutLongWords = true

	var lines []string
	for ; cols >= 1; cols-- {
		lines = strings.Split(w.Wrap(s, cols), "\n")
		for i, l := range lines {
			lines[i] = strings.TrimSpace(l)
		}
		if fits(lines) {
			break
		}
	}
	return lines
}

// TextHeight returns the height Text would use for s.
func (p *Painter) TextHeight(s string, st TextStyle) float64 {
	return float64(len(p.Layout(s, st))) * st.Size * st.lineHeight()
}

// Text draws s with its first line's top at y, anchored at x according to
// st.Align, and returns the block height in user space.
//
// Glyphs are set upright at the transformed anchor with the transform's
// scale; rotation does not apply to text outside of a rotated layer.
func (p *Painter) Text(s string, x, y float64, st TextStyle) float64 {
	lines := p.Layout(s, st)
	lh := st.Size * st.lineHeight()
	if st.Shadow != nil {
		shadow := st
		shadow.Shadow = nil
		shadow.Color = st.Shadow
		p.drawLines(lines, x, y+st.ShadowOffset, lh, shadow)
	}
	p.drawLines(lines, x, y, lh, st)
	return float64(len(lines)) * lh
}

func (p *Painter) drawLines(lines []string, x, y, lh float64, st TextStyle) {
	col := p.withAlpha(st.Color, 1)
	if col.A == 0 {
		return
	}
	src := image.NewUniform(col)
	scale := p.scale()
	f := p.face(st.Weight, st.Size*scale)
	m := f.Metrics()
	// Center the glyph box inside the line box.
	pad := (lh*scale - toFloat(m.Ascent+m.Descent)) / 2

	d := font.Drawer{Dst: p.dst, Src: src, Face: f}
	for i, l := range lines {
		ax, ay := p.Transform(x, y+float64(i)*lh)
		w := toFloat(d.MeasureString(l))
		switch st.Align {
		case AlignCenter:
			ax -= w / 2
		case AlignRight:
			ax -= w
		}
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(math.Round(ax * 64)),
			Y: fixed.Int26_6(math.Round((ay+pad)*64)) + m.Ascent,
		}
		d.DrawString(l)
	}
}

// Span is a run of text with its own color. A nil Color uses the style's.
type Span struct {
	Text  string
	Color color.Color
}

type word struct {
	text  string
	color color.Color
	glue  bool // no space before it
	brk   bool // hard line break before it
}

// words splits spans at whitespace. Words of adjacent spans with no space
// between them are glued and never wrapped apart.
func words(spans []Span) []word {
	var out []word
	sep, brk := true, false
	for _, sp := range spans {
		start, glue := -1, false
		for i, r := range sp.Text {
			if unicode.IsSpace(r) {
				if start >= 0 {
					out = append(out, word{text: sp.Text[start:i], color: sp.Color, glue: glue, brk: brk})
					start, brk = -1, false
				}
				if r == '\n' {
					brk = true
				}
				sep = true
				continue
			}
			if start < 0 {
				start = i
				glue = !sep && len(out) > 0 && !brk
				sep = false
			}
		}
		if start >= 0 {
			out = append(out, word{text: sp.Text[start:], color: sp.Color, glue: glue, brk: brk})
			brk = false
		}
	}
	return out
}

type richLine struct {
	words []word
	x     []float64 // offset of every word from the line start
	width float64
}

// layoutRich wraps spans greedily at st.MaxWidth.
func (p *Painter) layoutRich(spans []Span, st TextStyle) []richLine {
	f := p.face(st.Weight, st.Size)
	space := toFloat(font.MeasureString(f, " "))

	var lines []richLine
	cur := richLine{}
	ws := words(spans)
	for i := 0; i < len(ws); {
		// A group is a word plus everything glued to it.
		j := i + 1
		for j < len(ws) && ws[j].glue {
			j++
		}
		gw := 0.0
		offs := make([]float64, 0, j-i)
		for _, w := range ws[i:j] {
			offs = append(offs, gw)
			gw += toFloat(font.MeasureString(f, w.text))
		}

		lead := 0.0
		if len(cur.words) > 0 {
			lead = space
		}
		wrapHere := ws[i].brk || (st.MaxWidth > 0 && len(cur.words) > 0 && cur.width+lead+gw > st.MaxWidth)
		if wrapHere && len(cur.words) > 0 {
			lines = append(lines, cur)
			cur, lead = richLine{}, 0
		}
		for k, w := range ws[i:j] {
			cur.words = append(cur.words, w)
			cur.x = append(cur.x, cur.width+lead+offs[k])
		}
		cur.width += lead + gw
		i = j
	}
	if len(cur.words) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// RichTextHeight returns the height RichText would use for spans.
func (p *Painter) RichTextHeight(spans []Span, st TextStyle) float64 {
	return float64(len(p.layoutRich(spans, st))) * st.Size * st.lineHeight()
}

// RichTextWidth returns the width of the widest line of spans.
func (p *Painter) RichTextWidth(spans []Span, st TextStyle) float64 {
	w := 0.0
	for _, l := range p.layoutRich(spans, st) {
		w = math.Max(w, l.width)
	}
	return w
}

// RichText draws spans as one paragraph, wrapped on word boundaries, with
// the first line's top at y. It returns the block height.
func (p *Painter) RichText(spans []Span, x, y float64, st TextStyle) float64 {
	lines := p.layoutRich(spans, st)
	lh := st.Size * st.lineHeight()
	scale := p.scale()
	f := p.face(st.Weight, st.Size*scale)
	m := f.Metrics()
	pad := (lh*scale - toFloat(m.Ascent+m.Descent)) / 2

	for i, l := range lines {
		x0 := x
		switch st.Align {
		case AlignCenter:
			x0 -= l.width / 2
		case AlignRight:
			x0 -= l.width
		}
		for k, w := range l.words {
			c := w.color
			if c == nil {
				c = st.Color
			}
			col := p.withAlpha(c, 1)
			if col.A == 0 {
				continue
			}
			ax, ay := p.Transform(x0+l.x[k], y+float64(i)*lh)
			d := font.Drawer{Dst: p.dst, Src: image.NewUniform(col), Face: f}
			d.Dot = fixed.Point26_6{
				X: fixed.Int26_6(math.Round(ax * 64)),
				Y: fixed.Int26_6(math.Round((ay+pad)*64)) + m.Ascent,
			}
			d.DrawString(w.text)
		}
	}
	return float64(len(lines)) * lh
}
