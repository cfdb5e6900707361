package scene

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// Slide kinds.
const (
	KindLoop         = "loop"
	KindBreak        = "break"
	KindMechanism    = "mechanism"
	KindWallOfImpact = "wall_of_impact"
	KindSuccessRate  = "success_rate"
	KindRadialClock  = "radial_clock"
	KindWhatYouGet   = "what_you_get"
	KindTypeOrSpeak  = "type_or_speak"
)

var slideKinds = map[string]func() Scene{
	KindLoop:         func() Scene { s := DefaultLoop; return &s },
	KindBreak:        func() Scene { s := DefaultBreak; return &s },
	KindMechanism:    func() Scene { s := DefaultMechanism; return &s },
	KindWallOfImpact: func() Scene { s := DefaultWallOfImpact; return &s },
	KindSuccessRate:  func() Scene { s := DefaultSuccessRate; return &s },
	KindRadialClock:  func() Scene { s := DefaultRadialClock; return &s },
	KindWhatYouGet:   func() Scene { s := DefaultWhatYouGet; s.Features = append([]Feature(nil), s.Features...); return &s },
	KindTypeOrSpeak:  func() Scene { s := DefaultTypeOrSpeak; return &s },
}

// NewSlide returns a pointer to a slide of the given kind holding its
// default copy, ready to be overridden field by field.
func NewSlide(kind string) (Scene, error) {
	mk, ok := slideKinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown slide kind %q (available: %v)", kind, SlideKinds())
	}
	return mk(), nil
}

// SlideKinds lists the slide kinds in alphabetical order.
func SlideKinds() []string {
	kinds := make([]string, 0, len(slideKinds))
	for k := range slideKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// entrance draws a full-screen slide: an opaque backdrop fading in and the
// content scaled about the canvas center.
func entrance(p *paint.Painter, c Context, st motion.State, fn func()) {
	if c.Frame < 0 || st.Opacity <= 0 {
		return
	}
	p.Save()
	defer p.Restore()
	p.MulAlpha(st.Opacity)
	background(p, c)
	p.ScaleAbout(st.Scale, c.CX(), c.CY())
	fn()
}

func headline(pal theme.Palette, size, width float64) paint.TextStyle {
	return paint.TextStyle{Size: size, Weight: theme.Bold, Color: rgba(pal.Text, 1), LineHeight: 1.2, MaxWidth: width}
}

// LoopSlide shows the urge, thumb, scroll, regret cycle with a pulse
// running around it.
type LoopSlide struct {
	Headline string   `yaml:"headline"`
	Subtext  string   `yaml:"subtext"`
	Nodes    []string `yaml:"nodes"`
}

var DefaultLoop = LoopSlide{
	Headline: "Your brain runs this loop *150x* a day.",
	Subtext:  "On complete autopilot.",
	Nodes:    []string{"URGE", "THUMB", "SCROLL", "REGRET"},
}

var loopIcons = []Icon{IconBolt, IconTap, IconPhone, IconFrown}

func (s *LoopSlide) Render(p *paint.Painter, c Context) {
	f := c.Frame
	entry := motion.Entrance(f, c.FPS, motion.SpringConfig{Stiffness: 180, Damping: 20}, 0, 1.05, 15)
	pal := c.Palette
	cx := c.CX()
	entrance(p, c, entry, func() {
		const box, radius = 400.0, 140.0
		pulse := motion.Interpolate(float64(f), []float64{10, 100}, []float64{0, 900}, motion.Clamp)
		column(c.CY(),
			block{h: box + 100, gap: 40, draw: func(top float64) {
				s.drawLoop(p, c, cx, top+box/2+50, radius, pulse)
			}},
			richBlock(p, Markup(s.Headline, pal), cx, headline(pal, 48, c.Width-100), 20),
			textBlock(p, s.Subtext, cx, paint.TextStyle{Size: 26, Weight: theme.Medium, Color: rgba(pal.Text, 0.6), MaxWidth: c.Width - 100}, 0),
		)
	})
}

func (s *LoopSlide) drawLoop(p *paint.Painter, c Context, cx, cy, radius, angle float64) {
	pal := c.Palette
	accent := rgba(pal.Accent, 1)
	glow := motion.GlowPulse(c.Global, 0.05, 0.6, 1)
	circ := 2 * math.Pi * radius
	p.RadialGlow(cx, cy, radius+10*glow, 1, 0.08*glow, accent)
	// A "15 8" dash pattern expressed in degrees of the circle.
	p.DashedRing(cx, cy, radius, 4, 15/circ*360, 8/circ*360, 0, rgba(pal.Accent, 0.6))

	for _, a := range []float64{0, 90, 180, 270} {
		t := a * math.Pi / 180
		p.Save()
		p.Translate(cx+radius*math.Cos(t), cy+radius*math.Sin(t))
		p.Rotate(a + 90)
		p.FillPolygon([]float64{0, -8, 6, 4, -6, 4}, rgba(pal.Accent, 0.8))
		p.Restore()
	}

	t := angle * math.Pi / 180
	px, py := cx+radius*math.Cos(t), cy+radius*math.Sin(t)
	p.RadialGlow(px, py, 30, 1, 0.8, accent)
	p.FillCircle(px, py, 12, accent)

	for i, label := range s.Nodes {
		if i >= 4 {
			break
		}
		a := (-90 + float64(i)*90) * math.Pi / 180
		nx, ny := cx+(radius+50)*math.Cos(a), cy+(radius+50)*math.Sin(a)
		DrawIcon(p, loopIcons[i], nx, ny-12, 40, accent, pal)
		p.Text(label, nx, ny+12, paint.TextStyle{Size: 14, Weight: theme.Medium, Color: rgba(pal.Text, 0.8), Align: paint.AlignCenter})
	}
}

// BreakSlide slashes a voice waveform through the loop and breaks it apart.
type BreakSlide struct {
	Headline string `yaml:"headline"`
	Subtext  string `yaml:"subtext"`
}

var DefaultBreak = BreakSlide{
	Headline: "One sentence *breaks it.*",
	Subtext:  "Your voice activates your prefrontal cortex.",
}

var waveSlash = motion.SpringConfig{Stiffness: 300, Damping: 18, Mass: 0.8}

func (s *BreakSlide) Render(p *paint.Painter, c Context) {
	f := c.Frame
	pal := c.Palette
	cx := c.CX()
	st := motion.State{Scale: 1, Opacity: motion.FadeIn(f, 0, 10), Visible: true}
	entrance(p, c, st, func() {
		wave := motion.Spring(f, c.FPS, waveSlash)
		waveX := motion.Interpolate(wave, []float64{0, 1}, []float64{-400, 0}, motion.Extend)
		breakP := motion.Interpolate(float64(f), []float64{8, 23}, []float64{0, 1}, motion.Clamp)
		mainOp := motion.Interpolate(float64(f), []float64{15, 25}, []float64{0, 1}, motion.Clamp)
		subOp := motion.Interpolate(float64(f), []float64{30, 40}, []float64{0, 1}, motion.Clamp)
		glow := motion.GlowPulse(c.Global, 0.05, 0.6, 1)

		main := richBlock(p, Markup(s.Headline, pal), cx, headline(pal, 56, c.Width-100), 20)
		sub := textBlock(p, s.Subtext, cx, paint.TextStyle{Size: 26, Weight: theme.Medium, Color: rgba(pal.Accent, 1), MaxWidth: c.Width - 100}, 0)
		column(c.CY(),
			block{h: 400, gap: 30, draw: func(top float64) {
				cy := top + 200
				spread := breakP * 80
				for _, seg := range [][3]float64{{-90, 0, -1}, {0, 1, 0}, {90, 0, 1}, {180, -1, 0}} {
					p.Arc(cx+seg[1]*spread, cy+seg[2]*spread, 120, 4, seg[0]-45, 90, rgba(pal.Accent, (1-breakP)*0.6))
				}
				s.drawWaveform(p, c, cx+waveX, cy, glow)
			}},
			fadeRise(p, main, mainOp, 20),
			fadeRise(p, sub, subOp, 15),
		)
	})
}

func (s *BreakSlide) drawWaveform(p *paint.Painter, c Context, cx, cy, glow float64) {
	const bars, bw, gap = 20, 6.0, 3.0
	total := bars*bw + (bars-1)*gap
	x := cx - total/2
	accent := rgba(c.Palette.Accent, 1)
	p.RadialGlow(cx, cy, total*0.7, 1, 0.2*glow, accent)
	for i := 0; i < bars; i++ {
		base := 20 + math.Sin(float64(i)*0.8)*15
		h := math.Max(8, base+math.Sin(float64(c.Global)*0.3+float64(i)*0.5)*12)
		p.FillRoundRect(x, cy-h/2, bw, h, 3, accent)
		x += bw + gap
	}
}

// fadeRise wraps a block so it fades in with op while rising by rise units.
func fadeRise(p *paint.Painter, b block, op, rise float64) block {
	draw := b.draw
	b.draw = func(top float64) {
		if op <= 0 {
			return
		}
		p.Save()
		p.MulAlpha(op)
		p.Translate(0, (1-op)*rise)
		draw(top)
		p.Restore()
	}
	return b
}

// MechanismSlide contrasts reacting on impulse with responding by choice.
type MechanismSlide struct {
	Headline    string     `yaml:"headline"`
	Before      string     `yaml:"before"`
	BeforeNote  string     `yaml:"before_note"`
	After       string     `yaml:"after"`
	AfterNote   string     `yaml:"after_note"`
	Arrow       string     `yaml:"arrow"`
	Explanation string     `yaml:"explanation"`
	Study       StudyBadge `yaml:"study"`
}

var DefaultMechanism = MechanismSlide{
	Headline:    "Speak the urge. *Kill the impulse.*",
	Before:      "REACT",
	BeforeNote:  "(Impulse)",
	After:       "RESPOND",
	AfterNote:   "(Choice)",
	Arrow:       "Your voice",
	Explanation: "Your voice shifts control from _impulse_ to *choice*",
	Study:       StudyBadge{Title: "UCLA Affect Labeling Research", Citation: "Lieberman et al., 2007"},
}

func (s *MechanismSlide) Render(p *paint.Painter, c Context) {
	f := c.Frame
	pal := c.Palette
	cx := c.CX()
	entry := motion.Entrance(f, c.FPS, motion.SpringConfig{Stiffness: 180, Damping: 18}, 0.8, 1.05, 12)
	entrance(p, c, entry, func() {
		tr := motion.Interpolate(float64(f), []float64{25, 70}, []float64{0, 1}, motion.Clamp)
		glow := motion.GlowPulse(c.Global, 0.04, 0.6, 1)
		_, bh := s.Study.Size(p)

		column(c.CY(),
			richBlock(p, Markup(s.Headline, pal), cx, headline(pal, 56, c.Width-80), 50),
			block{h: 160 + 16 + 40 + 4 + 25, gap: 50, draw: func(top float64) {
				s.drawContrast(p, c, cx, top, tr, glow)
			}},
			richBlock(p, Markup(s.Explanation, pal), cx, paint.TextStyle{Size: 28, Weight: theme.Medium, Color: rgba(pal.Text, 0.85), MaxWidth: 700, LineHeight: 1.5}, 40),
			block{h: bh * 1.3, draw: func(top float64) {
				s.Study.Draw(p, pal, cx, top+bh*1.3/2, 1.3)
			}},
		)
	})
}

func (s *MechanismSlide) drawContrast(p *paint.Painter, c Context, cx, top, tr, glow float64) {
	pal := c.Palette
	const d = 160.0
	cy := top + d/2
	left, right := cx-d/2-40-50-d/2, cx+d/2+40+50+d/2

	// Impulse side dims while the choice side lights up.
	reactOp := motion.Interpolate(tr, []float64{0, 0.5, 1}, []float64{1, 0.9, 0.4}, motion.Extend)
	reactScale := motion.Interpolate(tr, []float64{0, 1}, []float64{1, 0.9}, motion.Extend)
	respondOp := motion.Interpolate(tr, []float64{0, 0.5, 1}, []float64{0.4, 0.8, 1}, motion.Extend)
	respondScale := motion.Interpolate(tr, []float64{0.3, 1}, []float64{0.9, 1}, motion.ClampLeft)
	arrow := motion.Interpolate(tr, []float64{0.2, 0.8}, []float64{0, 1}, motion.Clamp)

	side := func(x, op, scale float64, fill, ring, label, halo color.Color, haloOn bool, icon Icon, title, note string) {
		p.Save()
		defer p.Restore()
		transformAbout(p, x, cy, scale, 0, 0)
		p.MulAlpha(op)
		if haloOn {
			p.RadialGlow(x, cy, d/2+30*glow, 1, 0.4, halo)
		}
		p.FillCircle(x, cy, d/2, fill)
		p.Ring(x, cy, d/2-2, 4, ring)
		DrawIcon(p, icon, x, cy, 80, label, pal)
		p.Text(title, x, top+d+16, paint.TextStyle{Size: 32, Weight: theme.Bold, Color: label, Align: paint.AlignCenter})
		p.Text(note, x, top+d+16+40+4, paint.TextStyle{Size: 20, Weight: theme.Medium, Color: rgba(pal.Text, 0.6), Align: paint.AlignCenter})
	}
	side(left, reactOp, reactScale, rgba(pal.Danger, 0.15), rgba(pal.Danger, 0.5), rgba(pal.Danger, 0.9), rgba(pal.Danger, 1),
		tr < 0.5, IconAngry, s.Before, s.BeforeNote)
	side(right, respondOp, respondScale, rgba(pal.Glow, 0.1+tr*0.15), rgba(pal.Accent, 1), rgba(pal.Accent, 1), rgba(pal.Glow, 0.3+tr*0.3),
		tr > 0.5, IconBrain, s.After, s.AfterNote)

	// Arrow from impulse to choice.
	p.Save()
	p.MulAlpha(motion.Interpolate(arrow, []float64{0, 0.3, 1}, []float64{0.3, 0.7, 1}, motion.Extend))
	ax := cx - 50
	if l := arrow * 70; l > 0 {
		p.Line(ax, cy, ax+l, cy, 6, rgba(theme.Mix(pal.Danger, pal.Accent, arrow), 1))
	}
	p.Save()
	p.MulAlpha(arrow)
	p.FillPolygon([]float64{ax + 70, cy - 10, ax + 90, cy, ax + 70, cy + 10}, rgba(pal.Accent, 1))
	p.Text(s.Arrow, cx, cy+30+8, paint.TextStyle{Size: 16, Weight: theme.Bold, Color: rgba(pal.Accent, 1), Align: paint.AlignCenter})
	p.Restore()
	p.Restore()
}
