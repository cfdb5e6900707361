package scene

import (
	"math"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/pacing"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

var outroSpring = motion.SpringConfig{Stiffness: 200, Damping: 12, Mass: 1}

// Stat is a number that counts up to Value under a label.
type Stat struct {
	Value    float64 `yaml:"value"`
	Decimals int     `yaml:"decimals,omitempty"`
	Prefix   string  `yaml:"prefix,omitempty"`
	Suffix   string  `yaml:"suffix,omitempty"`
	Label    string  `yaml:"label"`
}

// Display formats v the way the stat prints it.
func (s Stat) Display(v float64) string {
	return s.Prefix + FormatValue(v, s.Decimals) + s.Suffix
}

// StatCountUp slams one stat in and races its number to the target.
type StatCountUp struct {
	Stat
	Delay int // frames before the slam
	Count int // frames of the count; 0 means 30
	Size  float64
}

// Height is the space the stat takes in a column.
func (s StatCountUp) Height() float64 {
	return s.size()*1.1 + 8 + 30*1.25
}

func (s StatCountUp) size() float64 {
	if s.Size <= 0 {
		return 100
	}
	return s.Size
}

// Current returns the number shown on frame f.
func (s StatCountUp) Current(f, fps int) float64 {
	n := s.Count
	if n <= 0 {
		n = 30
	}
	v := motion.CountUp(f, fps, s.Delay, s.Stat.Value, n)
	if s.Decimals == 0 {
		return math.Round(v)
	}
	return v
}

// Draw renders the stat with its top at top.
func (s StatCountUp) Draw(p *paint.Painter, c Context, top float64) {
	st := motion.SlamDrop(c.Frame, c.FPS, 0, s.Delay)
	if !st.Visible || st.Opacity <= 0 {
		return
	}
	pal := c.Palette
	sx, sy := motion.ScreenShake(st.Shake, c.Frame)
	glow := motion.GlowPulse(c.Frame, 0.06, 0.7, 1)
	cx := c.CX()
	h := s.Height()

	p.Save()
	defer p.Restore()
	transformAbout(p, cx, top+h/2, st.Scale, sx, st.Y+sy)
	p.MulAlpha(st.Opacity)

	valueSt := paint.TextStyle{Size: s.size(), Weight: theme.Bold, Color: rgba(pal.Accent, 1), LineHeight: 1.1}
	glowText(p, s.Display(s.Current(c.Frame, c.FPS)), cx, top, valueSt, rgba(pal.Accent, 1), 30*glow, 0.6*glow)
	p.Text(s.Label, cx, top+s.size()*1.1+8, paint.TextStyle{
		Size: 30, Weight: theme.Medium, Color: rgba(pal.TextMuted, 1), Align: paint.AlignCenter,
		MaxWidth: c.Width - 120,
	})
}

func (s StatCountUp) Render(p *paint.Painter, c Context) {
	s.Draw(p, c, c.CY()-s.Height()/2)
}

// StatsFinale closes the ticker: the jumping mascot bounces in on top and
// the stats slam down one after another under a growing halo.
type StatsFinale struct {
	Header  string
	Stats   []Stat
	Stagger int // frames between two stats; 0 means 20
	Pose    assets.Mascot
}

func (s StatsFinale) counters() []StatCountUp {
	stagger := s.Stagger
	if stagger <= 0 {
		stagger = 20
	}
	delays := pacing.Staggered(len(s.Stats), 15, stagger)
	out := make([]StatCountUp, len(s.Stats))
	for i, st := range s.Stats {
		out[i] = StatCountUp{Stat: st, Delay: delays[i]}
	}
	return out
}

// Settled returns the first frame on which every stat shows its final
// value.
func (s StatsFinale) Settled(fps int) int {
	cs := s.counters()
	if len(cs) == 0 {
		return 30
	}
	return cs[len(cs)-1].Delay + 2*fps
}

func (s StatsFinale) Render(p *paint.Painter, c Context) {
	f := c.Frame
	if f < 0 {
		return
	}
	pal := c.Palette
	p.Save()
	defer p.Restore()
	p.MulAlpha(motion.FadeIn(f, 0, 15))

	halo := motion.Interpolate(float64(f), []float64{0, 30, 60}, []float64{0.3, 0.8, 1}, motion.ClampRight)
	p.RadialGlow(c.CX(), c.Height*0.45, 450, 0.5, halo*0.1, rgba(pal.Accent, 1))

	pose := s.Pose
	if pose == "" {
		pose = assets.Jumping
	}
	_, mh := mascotSize(c, pose, 220)
	mascotTop := 180.0
	s.renderMascot(p, c, pose, mascotTop, mh)

	var blocks []block
	if s.Header != "" {
		hb := textBlock(p, s.Header, c.CX(), paint.TextStyle{Size: 40, Weight: theme.Bold, Color: rgba(pal.Text, 1), MaxWidth: c.Width - 120}, 50)
		draw := hb.draw
		hb.draw = func(top float64) {
			p.Save()
			p.MulAlpha(motion.FadeIn(f, 10, 15))
			draw(top)
			p.Restore()
		}
		blocks = append(blocks, hb)
	}
	for _, sc := range s.counters() {
		blocks = append(blocks, block{h: sc.Height(), gap: 56, draw: func(top float64) { sc.Draw(p, c, top) }})
	}
	// The stack is centered in the room left under the mascot.
	area := mascotTop + mh + 60
	column((area+c.Height-80)/2, blocks...)
}

func (s StatsFinale) renderMascot(p *paint.Painter, c Context, pose assets.Mascot, top, h float64) {
	f := c.Frame
	pr := motion.Spring(f, c.FPS, outroSpring)
	scale := motion.Interpolate(pr, []float64{0, 0.5, 0.8, 1}, []float64{0.3, 1.15, 0.95, 1}, motion.Extend)
	y := motion.Interpolate(pr, []float64{0, 1}, []float64{-100, 0}, motion.Extend)
	glow := motion.GlowPulse(f, 0.05, 0.6, 1)

	cx, cy := c.CX(), top+h/2
	p.Save()
	transformAbout(p, cx, cy, scale, 0, y)
	p.MulAlpha(motion.FadeIn(f, 0, 10))
	drawMascot(p, c, pose, cx, cy, 220, rgba(c.Palette.Glow, 1), 0.3*glow)
	p.Restore()
}

// StudyBadge cites the research behind a claim.
type StudyBadge struct {
	Title    string `yaml:"title"`
	Citation string `yaml:"citation"`
}

// Size returns the badge size at scale 1.
func (b StudyBadge) Size(p *paint.Painter) (w, h float64) {
	tw, _ := p.MeasureText(b.Title, 17, theme.Bold)
	cw, _ := p.MeasureText(b.Citation, 13, theme.Medium)
	w = 24 + 24 + 12 + math.Max(tw, cw) + 24
	w = math.Max(280, math.Min(400, w))
	return w, 14 + 17*1.3 + 2 + 13*1.25 + 14
}

// Draw renders the badge scaled by scale and centered on (cx, cy).
func (b StudyBadge) Draw(p *paint.Painter, pal theme.Palette, cx, cy, scale float64) {
	if b.Title == "" {
		return
	}
	w, h := b.Size(p)
	p.Save()
	defer p.Restore()
	transformAbout(p, cx, cy, scale, 0, 0)
	x, y := cx-w/2, cy-h/2

	p.SoftShadow(x, y, w, h, 16, 25, 0, rgba(pal.StudyBorder, 1), 0.2)
	p.GradientRoundRect(x, y, w, h, 16, rgba(pal.StudyFrom, 1), rgba(pal.StudyTo, 1))
	p.StrokeRoundRect(x, y, w, h, 16, 2, rgba(pal.StudyBorder, 0.4))
	DrawIcon(p, IconMicroscope, x+24+12, cy, 24, rgba(pal.StudyTitle, 1), pal)

	tx := x + 24 + 24 + 12
	maxW := x + w - 24 - tx
	p.Text(b.Title, tx, y+14, paint.TextStyle{Size: 17, Weight: theme.Bold, Color: rgba(pal.StudyTitle, 1), LineHeight: 1.3, MaxWidth: maxW})
	p.Text(b.Citation, tx, y+14+17*1.3+2, paint.TextStyle{Size: 13, Weight: theme.Medium, Color: rgba(pal.StudyCitation, 0.85), MaxWidth: maxW})
}
