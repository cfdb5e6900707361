package scene

import (
	"image/color"
	"math"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// Download is the closing call to action with the store badge.
type Download struct {
	AppName     string `yaml:"app_name"`
	Tagline     string `yaml:"tagline"`
	SocialProof string `yaml:"social_proof"`
	BadgeTop    string `yaml:"badge_top"`
	BadgeBottom string `yaml:"badge_bottom"`

	// URL, when set, is printed as a QR code under the badge.
	URL string `yaml:"url,omitempty"`
}

var DefaultDownload = Download{
	AppName:     "Spool",
	Tagline:     "Unwind wisely",
	SocialProof: "Join over 600+ users.",
	BadgeTop:    "Download on the",
	BadgeBottom: "App Store",
}

var downloadSpring = motion.SpringConfig{Stiffness: 180, Damping: 18, Mass: 1}

const (
	badgeWidth = 380.0
	qrSize     = 220
)

func (d *Download) Render(p *paint.Painter, c Context) {
	f := c.Frame
	if f < 0 {
		return
	}
	pal := c.Palette
	cx := c.CX()
	pr := motion.Spring(f, c.FPS, downloadSpring)
	scale := motion.Interpolate(pr, []float64{0, 0.6, 1}, []float64{0.85, 1.02, 1}, motion.Extend)
	dy := motion.Interpolate(pr, []float64{0, 1}, []float64{60, 0}, motion.Extend)
	opacity := motion.FadeIn(f, 0, 15)
	glow := motion.GlowPulse(c.Global, 0.05, 0.6, 1)

	p.Save()
	defer p.Restore()
	p.MulAlpha(opacity)
	background(p, c)
	transformAbout(p, cx, c.CY(), scale, 0, dy)

	_, mh := mascotSize(c, assets.Jumping, 260)
	tag := paint.TextStyle{Size: 32, Weight: theme.Medium, Color: rgba(pal.Accent, 1)}
	badgeH := badgeWidth / 3

	blocks := []block{
		{h: mh, gap: 35, draw: func(top float64) {
			drawMascot(p, c, assets.Jumping, cx, top+mh/2, 260, rgba(pal.Glow, 1), 0.4*glow)
		}},
		textBlock(p, d.AppName, cx, paint.TextStyle{Size: 72, Weight: theme.Bold, Color: rgba(pal.Text, 1)}, 16),
		{h: 32 * 1.25, gap: 12, draw: func(top float64) {
			w, _ := p.MeasureText(d.Tagline, tag.Size, tag.Weight)
			left := cx - (w+12+32)/2
			p.Text(d.Tagline, left, top, tag)
			DrawIcon(p, IconSpool, left+w+12+16, top+20, 32, rgba(pal.Accent, 1), pal)
		}},
		textBlock(p, d.SocialProof, cx, paint.TextStyle{Size: 42, Weight: theme.Bold, Color: rgba(pal.Accent, 1), MaxWidth: c.Width - 80}, 45),
		{h: badgeH, gap: 35, draw: func(top float64) {
			d.drawBadge(p, c, cx, top+badgeH/2)
		}},
	}
	if d.URL != "" {
		if qr, err := c.Assets.QRCode(d.URL, qrSize); err == nil {
			blocks = append(blocks, block{h: qrSize, gap: 35, draw: func(top float64) {
				p.FillRoundRect(cx-qrSize/2-12, top-12, qrSize+24, qrSize+24, 16, rgba(pal.Surface, 1))
				p.DrawImage(qr, cx-qrSize/2, top, qrSize, qrSize, 0)
			}})
		}
	}
	blocks = append(blocks, block{h: 50, draw: func(top float64) {
		pulse := 1 + math.Sin(float64(f)*0.12)*0.08
		p.Save()
		p.ScaleAbout(pulse, cx, top+25)
		p.Heart(cx, top+25, 50, rgba(pal.Heart, 1))
		p.Restore()
	}})
	column(c.CY(), blocks...)
}

// drawBadge draws the black store badge, laid out on a 150 x 50 box.
func (d *Download) drawBadge(p *paint.Painter, c Context, cx, cy float64) {
	pulse := 1 + math.Sin(float64(c.Frame)*0.08)*0.015
	k := badgeWidth / 150 * pulse
	p.Save()
	defer p.Restore()
	p.Translate(cx-75*k, cy-25*k)
	p.Scale(k, k)

	p.SoftShadow(0, 0, 150, 50, 8, 8, 2, rgba(c.Palette.Text, 1), 0.2)
	p.FillRoundRect(0, 0, 150, 50, 8, color.NRGBA{A: 255})
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	DrawIcon(p, IconApple, 12+13, 8+17, 26, white, c.Palette)
	p.Text(d.BadgeTop, 52, 18-8, paint.TextStyle{Size: 8, Weight: theme.Medium, Color: white})
	p.Text(d.BadgeBottom, 52, 36-16, paint.TextStyle{Size: 16, Weight: theme.Bold, Color: white})
}
