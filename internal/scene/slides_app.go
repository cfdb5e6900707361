package scene

import (
	"math"

	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// Feature is one card of the WhatYouGet grid.
type Feature struct {
	Icon     Icon   `yaml:"icon"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

// WhatYouGetSlide pops the app's features in as a two-column card grid.
type WhatYouGetSlide struct {
	Title    string    `yaml:"title"`
	Features []Feature `yaml:"features"`
}

var DefaultWhatYouGet = WhatYouGetSlide{
	Title: "What *Spool* gives you:",
	Features: []Feature{
		{Icon: IconChart, Title: "Weekly Insights", Subtitle: "& Nudges"},
		{Icon: IconBrain, Title: "Daily Trigger", Subtitle: "Reports"},
		{Icon: IconDumbbell, Title: "Elite Discipline", Subtitle: "Builder"},
		{Icon: IconTarget, Title: "Emotional Trigger", Subtitle: "Breakdowns"},
	},
}

var featureSpring = motion.SpringConfig{Stiffness: 180, Damping: 14}

const (
	featureWidth = 420.0
	featureGap   = 25.0
)

func (s *WhatYouGetSlide) Render(p *paint.Painter, c Context) {
	f := c.Frame
	pal := c.Palette
	cx := c.CX()
	entry := motion.Entrance(f, c.FPS, motion.SpringConfig{Stiffness: 180, Damping: 18}, 0.85, 1.03, 12)
	entrance(p, c, entry, func() {
		cols := 2
		w := featureWidth
		if 2*w+featureGap > c.Width-40 {
			w = (c.Width - 40 - featureGap) / 2
		}
		rows := (len(s.Features) + cols - 1) / cols
		h := s.cardHeight(p, w)
		gridH := float64(rows)*h + float64(max(0, rows-1))*featureGap

		column(c.CY(),
			richBlock(p, Markup(s.Title, pal), cx, paint.TextStyle{Size: 52, Weight: theme.Bold, Color: rgba(pal.Text, 1), MaxWidth: c.Width - 80}, 50),
			block{h: gridH, draw: func(top float64) {
				left := cx - (float64(cols)*w+float64(cols-1)*featureGap)/2
				for i, ft := range s.Features {
					row, col := i/cols, i%cols
					n := cols
					if row == rows-1 && len(s.Features)%cols != 0 {
						n = len(s.Features) % cols
					}
					x := left + float64(col)*(w+featureGap)
					if n < cols {
						x = cx - (float64(n)*w+float64(n-1)*featureGap)/2 + float64(col)*(w+featureGap)
					}
					y := top + float64(row)*(h+featureGap)
					s.drawCard(p, c, ft, x, y, w, h, 15+i*6)
				}
			}},
		)
	})
}

func (s *WhatYouGetSlide) cardHeight(p *paint.Painter, w float64) float64 {
	h := 0.0
	for _, ft := range s.Features {
		title := paint.TextStyle{Size: 26, Weight: theme.Bold, LineHeight: 1.2, MaxWidth: w - 48}
		sub := paint.TextStyle{Size: 22, Weight: theme.Medium, MaxWidth: w - 48}
		h = math.Max(h, 28+48+12+p.TextHeight(ft.Title, title)+p.TextHeight(ft.Subtitle, sub)+28)
	}
	return h
}

func (s *WhatYouGetSlide) drawCard(p *paint.Painter, c Context, ft Feature, x, y, w, h float64, delay int) {
	pal := c.Palette
	pr := motion.SnapZoom(c.Frame, c.FPS, delay, featureSpring)
	if pr <= 0 {
		return
	}
	scale := motion.Interpolate(pr, []float64{0, 0.5, 1}, []float64{0.5, 1.08, 1}, motion.Extend)
	opacity := motion.Interpolate(pr, []float64{0, 0.3, 1}, []float64{0, 0.8, 1}, motion.Clamp)
	dy := motion.Interpolate(pr, []float64{0, 1}, []float64{40, 0}, motion.Extend)

	cx := x + w/2
	p.Save()
	defer p.Restore()
	transformAbout(p, cx, y+h/2, scale, 0, dy)
	p.MulAlpha(opacity)

	p.SoftShadow(x, y, w, h, 24, 20, 6, rgba(pal.Accent, 1), 0.15)
	p.FillRoundRect(x, y, w, h, 24, rgba(pal.Surface, 1))
	p.StrokeRoundRect(x, y, w, h, 24, 3, rgba(pal.Accent, 1))

	top := y + 28
	DrawIcon(p, ft.Icon, cx, top+24, 48, rgba(pal.Accent, 1), pal)
	top += 48 + 12
	top += p.Text(ft.Title, cx, top, paint.TextStyle{Size: 26, Weight: theme.Bold, Color: rgba(pal.Text, 1), LineHeight: 1.2, MaxWidth: w - 48, Align: paint.AlignCenter})
	p.Text(ft.Subtitle, cx, top, paint.TextStyle{Size: 22, Weight: theme.Medium, Color: rgba(pal.Accent, 1), MaxWidth: w - 48, Align: paint.AlignCenter})
}

// TypeOrSpeakSlide explains the two ways to answer the app's prompt.
type TypeOrSpeakSlide struct {
	Header string `yaml:"header"`
	Type   string `yaml:"type"`
	Or     string `yaml:"or"`
	Speak  string `yaml:"speak"`
	Prompt string `yaml:"prompt"`
	Detail string `yaml:"detail"`
	Footer string `yaml:"footer"`
}

var DefaultTypeOrSpeak = TypeOrSpeakSlide{
	Header: "How it works",
	Type:   "Type",
	Or:     "or",
	Speak:  "Speak",
	Prompt: "Tell us *why* you want access",
	Detail: "to your blocked app",
	Footer: "This creates a moment of reflection",
}

var optionSpring = motion.SpringConfig{Stiffness: 200, Damping: 16}

func (s *TypeOrSpeakSlide) Render(p *paint.Painter, c Context) {
	f := c.Frame
	pal := c.Palette
	cx := c.CX()
	entry := motion.Entrance(f, c.FPS, motion.SpringConfig{Stiffness: 180, Damping: 18}, 0.8, 1.05, 15)
	entrance(p, c, entry, func() {
		labelSt := paint.TextStyle{Size: 28, Weight: theme.Bold, Color: rgba(pal.Text, 1), Align: paint.AlignCenter}
		// Each option whips in from its own side and pops past full size.
		option := func(icon Icon, label string, ox, top float64, delay int, side, size, pulse float64) {
			pr := motion.SnapZoom(f, c.FPS, delay, optionSpring)
			if pr <= 0 {
				return
			}
			p.Save()
			defer p.Restore()
			p.Translate(motion.WhipPan(f, c.FPS, delay, side*60), motion.Interpolate(pr, []float64{0, 1}, []float64{30, 0}, motion.Extend))
			p.MulAlpha(motion.Clamp01(pr))
			p.ScaleAbout(pulse*motion.OvershootScale(f, c.FPS, delay, 1.12), ox, top+60)
			DrawIcon(p, icon, ox, top+60, size, rgba(pal.Accent, 1), pal)
			p.Text(label, ox, top+130, labelSt)
		}

		text := motion.SnapZoom(f, c.FPS, 35, motion.SpringConfig{Stiffness: 180, Damping: 18})
		promptSt := paint.TextStyle{Size: 42, Weight: theme.Bold, Color: rgba(pal.Text, 1), LineHeight: 1.4, MaxWidth: c.Width - 100}
		detailSt := paint.TextStyle{Size: 32, Weight: theme.Regular, Color: rgba(pal.Text, 0.75), MaxWidth: c.Width - 100}

		column(c.CY(),
			textBlock(p, s.Header, cx, paint.TextStyle{Size: 64, Weight: theme.Bold, Color: rgba(pal.Text, 1), MaxWidth: c.Width - 80}, 50),
			block{h: 130 + 28*1.25, gap: 50, draw: func(top float64) {
				orW, _ := p.MeasureText(s.Or, 32, theme.Medium)
				half := orW/2 + 40 + 60
				option(IconKeyboard, s.Type, cx-half, top, 15, -1, 120, 1)
				p.Text(s.Or, cx, top+60-20, paint.TextStyle{Size: 32, Weight: theme.Medium, Color: rgba(pal.Text, 0.5), Align: paint.AlignCenter})
				option(IconMic, s.Speak, cx+half, top, 25, 1, 100, 1+math.Sin(float64(f)*0.15)*0.05)
			}},
			fadeRise(p, richBlock(p, Markup(s.Prompt, pal), cx, promptSt, 20), motion.Clamp01(text), 20),
			fadeRise(p, textBlock(p, s.Detail, cx, detailSt, 0), motion.Clamp01(text), 20),
		)

		footer := motion.FadeIn(f, 50, 15) * 0.8
		if footer > 0 && s.Footer != "" {
			p.Save()
			p.MulAlpha(footer)
			p.Text(s.Footer, cx, c.Height-80-24*1.25, paint.TextStyle{Size: 24, Weight: theme.Medium, Color: rgba(pal.Accent, 1), Align: paint.AlignCenter, MaxWidth: c.Width - 80})
			p.Restore()
		}
	})
}
