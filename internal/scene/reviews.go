package scene

import (
	"math"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/pacing"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// Review is one App Store quote.
type Review struct {
	Username string `yaml:"username"`
	Text     string `yaml:"text"`
}

// Reviews shows the store rating with a staggered stack of review cards.
type Reviews struct {
	Rating string   `yaml:"rating"`
	Stars  int      `yaml:"stars"`
	Items  []Review `yaml:"items"`
	Footer string   `yaml:"footer"`
}

var DefaultReviews = Reviews{
	Rating: "4.8 on the App Store",
	Stars:  5,
	Items: []Review{
		{Username: "KathyNat14", Text: "This app has changed my screen time pattern and broken my habit of scrolling just to scroll."},
		{Username: "JodyFlaco", Text: "Spool makes me type up my thought process which breaks the negative emotional cycle."},
		{Username: "GoldenSword03", Text: "Really great user interface and great tutorial!"},
		{Username: "Hireaysstdd", Text: "i haven't used instagram in 3 days. enough said."},
	},
	Footer: "Users save *110+* wakeful days with Spool",
}

var (
	headerSpring = motion.SpringConfig{Stiffness: 180, Damping: 18}
	footerSpring = motion.SpringConfig{Stiffness: 200, Damping: 16}
)

const (
	reviewDelay    = 8 // first card, in scene frames
	reviewStagger  = 9
	reviewMaxWidth = 680.0
	reviewGap      = 36.0
	reviewPadY     = 36.0
	reviewPadX     = 44.0
)

func (r *Reviews) Render(p *paint.Painter, c Context) {
	f := c.Frame
	if f < 0 {
		return
	}
	pal := c.Palette
	cx := c.CX()
	p.Save()
	defer p.Restore()
	p.MulAlpha(motion.FadeIn(f, 0, 15))
	background(p, c)

	header := motion.Entrance(f, c.FPS, headerSpring, 0.8, 1.05, 12)
	glow := motion.GlowPulse(c.Global, 0.05, 0.6, 1)
	_, mh := mascotSize(c, assets.Jumping, 160)
	ratingSt := paint.TextStyle{Size: 56, Weight: theme.Bold, Color: rgba(pal.Accent, 1), MaxWidth: c.Width - 80}

	blocks := []block{
		{h: mh, gap: 16, draw: func(top float64) {
			drawMascot(p, c, assets.Jumping, cx, top+mh/2, 160, rgba(pal.Glow, 1), 0.25*glow)
		}},
		{h: 48, gap: 16, draw: func(top float64) {
			drawStars(p, c, cx, top+24, 48, 8, r.Stars)
		}},
		{h: p.TextHeight(r.Rating, ratingSt), gap: 40, draw: func(top float64) {
			glowText(p, r.Rating, cx, top, ratingSt, rgba(pal.Glow, 1), 20*glow, 0.35*glow)
		}},
	}
	for i := range blocks {
		blocks[i] = scaled(p, blocks[i], cx, header)
	}

	w := math.Min(reviewMaxWidth, c.Width-100)
	delays := pacing.Staggered(len(r.Items), reviewDelay, reviewStagger)
	for i, item := range r.Items {
		h := r.cardHeight(p, item, w)
		blocks = append(blocks, block{h: h, gap: reviewGap, draw: func(top float64) {
			r.drawCard(p, c, item, i, delays[i], cx, top, w, h)
		}})
	}
	if r.Footer != "" {
		fst := paint.TextStyle{Size: 32, Weight: theme.Medium, Color: rgba(pal.Info, 1), MaxWidth: c.Width - 100}
		fb := richBlock(p, Markup(r.Footer, pal), cx, fst, 0)
		draw := fb.draw
		fb.draw = func(top float64) {
			pr := motion.SnapZoom(f, c.FPS, 45, footerSpring)
			op := motion.Interpolate(pr, []float64{0, 0.5, 1}, []float64{0, 0.8, 1}, motion.Clamp)
			if op <= 0 {
				return
			}
			p.Save()
			p.MulAlpha(op)
			draw(top)
			p.Restore()
		}
		blocks[len(blocks)-1].gap = 50
		blocks = append(blocks, fb)
	}
	column(c.CY()+10, blocks...)
}

// scaled wraps b so it draws under the entrance state st.
func scaled(p *paint.Painter, b block, cx float64, st motion.State) block {
	draw := b.draw
	b.draw = func(top float64) {
		if st.Opacity <= 0 {
			return
		}
		p.Save()
		p.MulAlpha(st.Opacity)
		p.ScaleAbout(st.Scale, cx, top+b.h/2)
		draw(top)
		p.Restore()
	}
	return b
}

func drawStars(p *paint.Painter, c Context, cx, cy, size, gap float64, n int) {
	if n <= 0 {
		return
	}
	total := float64(n)*size + float64(n-1)*gap
	x := cx - total/2 + size/2
	for range n {
		DrawIcon(p, IconStar, x, cy, size, rgba(c.Palette.Star, 1), c.Palette)
		x += size + gap
	}
}

func (r *Reviews) textStyle(i int, w float64) paint.TextStyle {
	weight := theme.Regular
	if i%2 == 1 {
		weight = theme.Medium
	}
	return paint.TextStyle{Size: 28, Weight: weight, LineHeight: 1.45, MaxWidth: w - 2*reviewPadX}
}

func (r *Reviews) cardHeight(p *paint.Painter, item Review, w float64) float64 {
	text := p.TextHeight(Quote(item.Text), r.textStyle(0, w))
	return math.Max(130, 2*reviewPadY+32+16+text)
}

func (r *Reviews) drawCard(p *paint.Painter, c Context, item Review, i, delay int, cx, top, w, h float64) {
	pal := c.Palette
	st := motion.DropIn(c.Frame, c.FPS, 0, delay)
	if !st.Visible || st.Opacity <= 0 {
		return
	}
	dir := 1.0
	if i%2 == 0 {
		dir = -1
	}
	x0 := cx - w/2 + dir*50

	p.Save()
	defer p.Restore()
	p.MulAlpha(st.Opacity)
	transformAbout(p, x0+w/2, top+h/2, st.Scale, 0, st.Y)
	rotated(p, x0-30, top-30, w+60, h+60, -dir*1.5, func() {
		p.SoftShadow(x0, top, w, h, 28, 24, 8, rgba(pal.Accent, 1), 0.15)
		p.FillRoundRect(x0, top, w, h, 28, rgba(pal.Surface, 1))
		p.StrokeRoundRect(x0, top, w, h, 28, 3, rgba(pal.Accent, 1))

		y := top + reviewPadY
		DrawIcon(p, IconPerson, x0+reviewPadX+16, y+16, 32, rgba(pal.Accent, 1), pal)
		p.Text(item.Username, x0+reviewPadX+44, y, paint.TextStyle{Size: 26, Weight: theme.Medium, Color: rgba(pal.Accent, 1)})
		drawStars(p, c, x0+w-reviewPadX-(5*24+4*4)/2, y+16, 24, 4, 5)

		ts := r.textStyle(i, w)
		ts.Color = rgba(pal.Text, 1)
		p.Text(Quote(item.Text), x0+reviewPadX, y+32+16, ts)
	})
}
