package scene

import (
	"math"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// WallOfImpactSlide stacks two big results under the jumping mascot.
type WallOfImpactSlide struct {
	Primary   Stat   `yaml:"primary"`
	Caption   string `yaml:"caption"`
	Secondary Stat   `yaml:"secondary"`
}

var DefaultWallOfImpact = WallOfImpactSlide{
	Primary:   Stat{Value: 3500, Suffix: "+", Label: "SCROLLING SESSIONS INTERRUPTED"},
	Caption:   "with Spool",
	Secondary: Stat{Value: 110, Suffix: "+", Label: "DAYS SAVED"},
}

func (s *WallOfImpactSlide) Render(p *paint.Painter, c Context) {
	f := c.Frame
	pal := c.Palette
	cx := c.CX()
	entry := motion.Entrance(f, c.FPS, motion.SpringConfig{Stiffness: 250, Damping: 18}, 0.7, 1.05, 10)
	entrance(p, c, entry, func() {
		const countDelay = 9
		glow := motion.GlowPulse(c.Global, 0.05, 0.6, 1)
		primary := motion.EaseOutCount(f, countDelay+5, 25, s.Primary.Value)
		secondary := motion.EaseOutCount(f, countDelay+15, 25, s.Secondary.Value)
		_, mh := mascotSize(c, assets.Jumping, 140)

		label := func(size float64) paint.TextStyle {
			return paint.TextStyle{Size: size, Weight: theme.Bold, Color: rgba(pal.Text, 1), MaxWidth: c.Width - 100}
		}
		number := func(size float64) paint.TextStyle {
			return paint.TextStyle{Size: size, Weight: theme.Bold, Color: rgba(pal.Accent, 1), LineHeight: 1}
		}
		column(c.CY(),
			block{h: mh, gap: 30, draw: func(top float64) {
				drawMascot(p, c, assets.Jumping, cx, top+mh/2, 140, rgba(pal.Accent, 1), 0.3*glow)
			}},
			block{h: 140, gap: 10, draw: func(top float64) {
				glowText(p, s.Primary.Display(primary), cx, top, number(140), rgba(pal.Accent, 1), 30*glow, 0.5*glow)
			}},
			textBlock(p, s.Primary.Label, cx, label(36), 8),
			textBlock(p, s.Caption, cx, paint.TextStyle{Size: 28, Weight: theme.Medium, Color: rgba(pal.Info, 1)}, 35),
			block{h: 4, gap: 35, draw: func(top float64) {
				p.FillRoundRect(cx-60, top, 120, 4, 2, rgba(pal.Accent, 0.6))
			}},
			block{h: 120, gap: 10, draw: func(top float64) {
				glowText(p, s.Secondary.Display(secondary), cx, top, number(120), rgba(pal.Accent, 1), 25*glow, 0.4*glow)
			}},
			textBlock(p, s.Secondary.Label, cx, label(32), 0),
		)
	})
}

// SuccessRateSlide counts a huge multiplier up under a pulsing microphone.
type SuccessRateSlide struct {
	Label       string     `yaml:"label"`
	Stat        Stat       `yaml:"stat"`
	Headline    string     `yaml:"headline"`
	Explanation string     `yaml:"explanation"`
	Study       StudyBadge `yaml:"study"`
}

var DefaultSuccessRate = SuccessRateSlide{
	Label:       "SPEAK IT OUT",
	Stat:        Stat{Value: 2.9, Decimals: 1, Suffix: "x"},
	Headline:    "MORE LIKELY TO NOT SCROLL",
	Explanation: "Speaking your reason creates a mental *\"speed bump\"* that interrupts the autopilot loop.",
	Study:       StudyBadge{Title: "NYU Implementation Intentions", Citation: "Gollwitzer & Sheeran, 2006"},
}

func (s *SuccessRateSlide) Render(p *paint.Painter, c Context) {
	f := c.Frame
	pal := c.Palette
	cx := c.CX()
	entry := motion.Entrance(f, c.FPS, motion.SpringConfig{Stiffness: 200, Damping: 18}, 0.7, 1.05, 12)
	entrance(p, c, entry, func() {
		glow := motion.GlowPulse(c.Global, 0.05, 0.6, 1)
		value := motion.EaseOutCount(f, 10, 35, s.Stat.Value)
		_, bh := s.Study.Size(p)
		column(c.CY(),
			block{h: 130, gap: 25, draw: func(top float64) {
				drawPulsingMic(p, c, cx, top+65, 130)
			}},
			textBlock(p, s.Label, cx, paint.TextStyle{Size: 28, Weight: theme.Bold, Color: rgba(pal.Accent, 1)}, 30),
			block{h: 180, gap: 15, draw: func(top float64) {
				st := paint.TextStyle{Size: 200, Weight: theme.Bold, Color: rgba(pal.Accent, 1), LineHeight: 0.9}
				glowText(p, s.Stat.Display(value), cx, top, st, rgba(pal.Glow, 1), 30, 0.3+glow*0.2)
			}},
			textBlock(p, s.Headline, cx, headline(pal, 48, c.Width-80), 35),
			richBlock(p, Markup(s.Explanation, pal), cx, paint.TextStyle{Size: 32, Weight: theme.Medium, Color: rgba(pal.Text, 0.85), MaxWidth: math.Min(850, c.Width-80), LineHeight: 1.4}, 45),
			block{h: bh * 1.3, draw: func(top float64) {
				s.Study.Draw(p, pal, cx, top+bh*1.3/2, 1.3)
			}},
		)
	})
}

// drawPulsingMic draws a microphone with three rings breathing behind it,
// size units square, centered on (cx, cy).
func drawPulsingMic(p *paint.Painter, c Context, cx, cy, size float64) {
	f := float64(c.Frame)
	accent := c.Palette.Accent
	p.Save()
	defer p.Restore()
	p.Translate(cx-size/2, cy-size/2)
	p.Scale(size/100, size/100)
	for i, grow := range []float64{15, 20, 25} {
		pulse := math.Sin(f*0.15+float64(i))*0.5 + 0.5
		p.Ring(50, 40, 25+pulse*grow, 2, rgba(accent, (0.3-0.05*float64(i))*(1-pulse)))
	}
	bounce := 1 + math.Sin(f*0.1)*0.02
	p.ScaleAbout(bounce, 50, 40)
	DrawIcon(p, IconMic, 50, 50, 90, rgba(accent, 1), c.Palette)
}

// ClockSegment is one quarter of the radial clock.
type ClockSegment struct {
	Label     string `yaml:"label"`
	Hours     string `yaml:"hours"`
	Percent   int    `yaml:"percent"`
	Highlight bool   `yaml:"highlight,omitempty"`
}

// RadialClockSlide shows when scrolling happens as a 24 hour dial.
type RadialClockSlide struct {
	Headline    string         `yaml:"headline"`
	Segments    []ClockSegment `yaml:"segments"`
	Center      string         `yaml:"center"`
	CenterLabel string         `yaml:"center_label"`
	Ticks       []string       `yaml:"ticks"`
	Tagline     string         `yaml:"tagline"`
	Stat        string         `yaml:"stat"`
}

var DefaultRadialClock = RadialClockSlide{
	Headline: "*35%* of mindless scrolling\nhappens *late at night*",
	Segments: []ClockSegment{
		{Label: "Late Night", Hours: "12am-6am", Percent: 35, Highlight: true},
		{Label: "Morning", Hours: "6am-12pm", Percent: 12},
		{Label: "Afternoon", Hours: "12pm-6pm", Percent: 22},
		{Label: "Evening", Hours: "6pm-12am", Percent: 31},
	},
	Center:      "35%",
	CenterLabel: "LATE NIGHT",
	Ticks:       []string{"12am", "6am", "12pm", "6pm"},
	Tagline:     "Take back your late nights",
	Stat:        "Spool users save an average of *2.3 hours* per week",
}

func (s *RadialClockSlide) Render(p *paint.Painter, c Context) {
	f := c.Frame
	pal := c.Palette
	cx := c.CX()
	entry := motion.Entrance(f, c.FPS, motion.SpringConfig{Stiffness: 180, Damping: 18}, 0.8, 1.05, 15)
	entrance(p, c, entry, func() {
		glow := motion.GlowPulse(c.Global, 0.04, 0.6, 1)
		fill := motion.Interpolate(float64(f), []float64{10, 50}, []float64{0, 1}, motion.Clamp)

		tagSt := paint.TextStyle{Size: 52, Weight: theme.Bold, Color: rgba(pal.Accent, 1), MaxWidth: c.Width - 160}
		pill := paint.TextStyle{Size: 28, Weight: theme.Medium, Color: rgba(pal.Text, 1), MaxWidth: math.Min(850, c.Width-120), LineHeight: 1.3}
		spans := Markup(s.Stat, pal)
		pillH := p.RichTextHeight(spans, pill) + 28

		column(c.CY(),
			richBlock(p, Markup(s.Headline, pal), cx, paint.TextStyle{Size: 48, Weight: theme.Bold, Color: rgba(pal.Text, 1), MaxWidth: math.Min(850, c.Width-80), LineHeight: 1.25}, 45+30),
			block{h: 380, gap: 45 + 30, draw: func(top float64) {
				s.drawClock(p, c, cx, top+190, fill, glow)
			}},
			block{h: tagSt.Size * 1.25, gap: 25, draw: func(top float64) {
				w, _ := p.MeasureText(s.Tagline, tagSt.Size, tagSt.Weight)
				glowText(p, s.Tagline, cx-30, top, tagSt, rgba(pal.Glow, 1), 18*glow, 0.35*glow)
				DrawIcon(p, IconMoon, cx-30+w/2+40, top+tagSt.Size*0.62, 52, rgba(pal.Star, 1), pal)
			}},
			block{h: pillH, draw: func(top float64) {
				w := math.Min(pill.MaxWidth, p.RichTextWidth(spans, pill)) + 64
				p.FillRoundRect(cx-w/2, top, w, pillH, math.Min(35, pillH/2), rgba(pal.Glow, 0.08))
				p.StrokeRoundRect(cx-w/2, top, w, pillH, math.Min(35, pillH/2), 2, rgba(pal.Accent, 1))
				p.RichText(spans, cx, top+14, withAlign(pill, paint.AlignCenter))
			}},
		)
	})
}

func (s *RadialClockSlide) drawClock(p *paint.Painter, c Context, cx, cy, fill, glow float64) {
	pal := c.Palette
	const radius = 150.0
	p.FillCircle(cx, cy, radius+20, rgba(pal.Glow, 0.08))

	for i, seg := range s.Segments {
		if i >= 4 {
			break
		}
		start := -90 + float64(i)*90
		col := rgba(pal.Text, 0.15+0.05*float64(i))
		if seg.Highlight {
			col = rgba(pal.Accent, 1)
			p.RadialGlow(cx, cy, radius+20*glow, 1, 0.25*glow*fill, rgba(pal.Glow, 1))
		}
		p.Pie(cx, cy, radius, start, 90*fill, col)
	}
	p.FillCircle(cx, cy, 55, rgba(pal.Background, 1))

	tick := rgba(pal.Text, 0.25)
	p.Line(cx, cy-50, cx, cy-radius-12, 2, tick)
	p.Line(cx+50, cy, cx+radius+12, cy, 2, tick)
	p.Line(cx, cy+50, cx, cy+radius+12, 2, tick)
	p.Line(cx-50, cy, cx-radius-12, cy, 2, tick)

	st := paint.TextStyle{Size: 44, Weight: theme.Bold, Color: rgba(pal.Accent, 1)}
	glowText(p, s.Center, cx, cy-34, st, rgba(pal.Glow, 1), 15*glow, 0.4*glow)
	p.Text(s.CenterLabel, cx, cy+20, paint.TextStyle{Size: 12, Weight: theme.Medium, Color: rgba(pal.Text, 0.7), Align: paint.AlignCenter})

	label := paint.TextStyle{Size: 16, Weight: theme.Medium, Color: rgba(pal.Text, 0.7), Align: paint.AlignCenter}
	pos := [][2]float64{{cx, cy - 190 - 30}, {cx + 190 + 30, cy - 10}, {cx, cy + 190 + 10}, {cx - 190 - 30, cy - 10}}
	for i, t := range s.Ticks {
		if i >= len(pos) {
			break
		}
		p.Text(t, pos[i][0], pos[i][1], label)
	}
}

func withAlign(st paint.TextStyle, a paint.Align) paint.TextStyle {
	st.Align = a
	return st
}
