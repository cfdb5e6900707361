package scene

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// Icon names a small vector pictogram.
type Icon string

const (
	IconBolt       Icon = "bolt"
	IconTap        Icon = "tap"
	IconPhone      Icon = "phone"
	IconFrown      Icon = "frown"
	IconAngry      Icon = "angry"
	IconBrain      Icon = "brain"
	IconMicroscope Icon = "microscope"
	IconChart      Icon = "chart"
	IconDumbbell   Icon = "dumbbell"
	IconTarget     Icon = "target"
	IconPerson     Icon = "person"
	IconMoon       Icon = "moon"
	IconMic        Icon = "mic"
	IconKeyboard   Icon = "keyboard"
	IconStar       Icon = "star"
	IconHeart      Icon = "heart"
	IconSpool      Icon = "spool"
	IconApple      Icon = "apple"
)

// Every icon is drawn in a 100x100 box.
var icons = map[Icon]func(p *paint.Painter, fg color.NRGBA, pal theme.Palette){
	IconBolt: func(p *paint.Painter, fg color.NRGBA, _ theme.Palette) {
		p.FillPolygon([]float64{58, 4, 20, 56, 46, 56, 38, 96, 80, 40, 54, 40}, fg)
	},
	IconTap: func(p *paint.Painter, fg color.NRGBA, _ theme.Palette) {
		p.Ring(50, 30, 22, 5, withA(fg, 0.5))
		p.FillRoundRect(40, 22, 20, 50, 10, fg)
		p.FillRoundRect(30, 56, 44, 40, 16, fg)
	},
	IconPhone: func(p *paint.Painter, fg color.NRGBA, pal theme.Palette) {
		p.FillRoundRect(26, 4, 48, 92, 10, fg)
		p.FillRoundRect(31, 14, 38, 70, 4, rgba(pal.BackgroundAlt, 1))
		p.FillRoundRect(42, 7, 16, 4, 2, rgba(pal.BackgroundAlt, 1))
		for i := 0; i < 3; i++ {
			y := 22 + float64(i)*20
			p.FillRoundRect(35, y, 30, 12, 3, withA(fg, 0.35))
		}
	},
	IconFrown: func(p *paint.Painter, fg color.NRGBA, pal theme.Palette) {
		face(p, fg, pal)
		p.Polyline(arcPoints(50, 80, 20, 200, 340), 5, rgba(pal.Text, 1))
	},
	IconAngry: func(p *paint.Painter, fg color.NRGBA, pal theme.Palette) {
		face(p, fg, pal)
		ink := rgba(pal.Text, 1)
		p.Line(24, 30, 42, 38, 5, ink)
		p.Line(76, 30, 58, 38, 5, ink)
		p.Polyline(arcPoints(50, 84, 22, 215, 325), 5, ink)
	},
	IconBrain: func(p *paint.Painter, fg color.NRGBA, pal theme.Palette) {
		for _, c := range [][3]float64{{34, 36, 22}, {64, 34, 24}, {28, 60, 20}, {70, 60, 20}, {48, 68, 20}} {
			p.FillCircle(c[0], c[1], c[2], fg)
		}
		fold := rgba(pal.BackgroundAlt, 0.8)
		p.Line(50, 16, 50, 82, 3, fold)
		p.Polyline([]float64{26, 44, 36, 50, 30, 62}, 3, fold)
		p.Polyline([]float64{74, 44, 64, 50, 70, 62}, 3, fold)
	},
	IconMicroscope: func(p *paint.Painter, fg color.NRGBA, _ theme.Palette) {
		p.Line(40, 14, 60, 54, 12, fg)
		p.Line(36, 8, 46, 4, 8, fg)
		p.FillRect(18, 86, 64, 8, fg)
		p.Polyline(arcPoints(44, 66, 24, 270, 450), 6, fg)
		p.Line(44, 90, 44, 76, 6, fg)
		p.FillRoundRect(56, 52, 18, 8, 3, fg)
	},
	IconChart: func(p *paint.Painter, fg color.NRGBA, pal theme.Palette) {
		p.FillRoundRect(6, 6, 88, 88, 14, rgba(pal.BackgroundAlt, 1))
		p.StrokeRoundRect(6, 6, 88, 88, 14, 4, fg)
		for i, h := range []float64{28, 48, 38, 62} {
			x := 20 + float64(i)*17
			p.FillRoundRect(x, 82-h, 11, h, 2, fg)
		}
	},
	IconDumbbell: func(p *paint.Painter, fg color.NRGBA, _ theme.Palette) {
		p.FillRoundRect(14, 28, 14, 44, 5, fg)
		p.FillRoundRect(72, 28, 14, 44, 5, fg)
		p.FillRoundRect(4, 38, 12, 24, 4, fg)
		p.FillRoundRect(84, 38, 12, 24, 4, fg)
		p.FillRect(26, 45, 48, 10, fg)
	},
	IconTarget: func(p *paint.Painter, fg color.NRGBA, pal theme.Palette) {
		p.FillCircle(50, 50, 44, fg)
		p.FillCircle(50, 50, 32, rgba(pal.BackgroundAlt, 1))
		p.FillCircle(50, 50, 21, fg)
		p.FillCircle(50, 50, 10, rgba(pal.BackgroundAlt, 1))
		p.Line(50, 50, 86, 14, 5, rgba(pal.Text, 1))
		p.FillPolygon([]float64{86, 14, 96, 12, 88, 22}, rgba(pal.Text, 1))
	},
	IconPerson: func(p *paint.Painter, fg color.NRGBA, _ theme.Palette) {
		p.FillCircle(50, 32, 20, fg)
		pts := arcPoints(50, 96, 38, 180, 360)
		p.FillPolygon(pts, fg)
	},
	IconMoon: func(p *paint.Painter, fg color.NRGBA, _ theme.Palette) {
		// A crescent opening to the right: an outer half circle and the
		// half ellipse of the terminator.
		var pts []float64
		const n = 24
		for i := 0; i <= n; i++ {
			t := -math.Pi/2 + math.Pi*float64(i)/n
			pts = append(pts, 50-40*math.Cos(t), 50+40*math.Sin(t))
		}
		for i := n; i >= 0; i-- {
			t := -math.Pi/2 + math.Pi*float64(i)/n
			pts = append(pts, 50-14*math.Cos(t), 50+40*math.Sin(t))
		}
		p.FillPolygon(pts, fg)
	},
	IconMic: func(p *paint.Painter, fg color.NRGBA, _ theme.Palette) {
		// Body, stand arc, stem and foot.
		p.FillRoundRect(35, 12, 30, 50, 15, fg)
		p.Polyline(quadPoints(22, 50, 22, 80, 50, 80, 78, 80, 78, 50), 6, fg)
		p.Line(50, 80, 50, 92, 6, fg)
		p.Line(34, 92, 66, 92, 6, fg)
	},
	IconKeyboard: func(p *paint.Painter, fg color.NRGBA, _ theme.Palette) {
		p.FillRoundRect(5, 20, 90, 60, 8, withA(fg, 0.15))
		p.StrokeRoundRect(5, 20, 90, 60, 8, 3, fg)
		for i := 0; i < 5; i++ {
			p.FillRoundRect(12+float64(i)*16, 30, 12, 10, 2, withA(fg, 0.6))
		}
		for i := 0; i < 4; i++ {
			p.FillRoundRect(15+float64(i)*16, 44, 12, 10, 2, withA(fg, 0.6))
		}
		p.FillRoundRect(25, 58, 50, 10, 2, withA(fg, 0.8))
	},
	IconStar: func(p *paint.Painter, fg color.NRGBA, _ theme.Palette) {
		p.Star(50, 54, 48, 20, 5, fg)
	},
	IconHeart: func(p *paint.Painter, fg color.NRGBA, _ theme.Palette) {
		p.Heart(50, 52, 92, fg)
	},
	IconSpool: func(p *paint.Painter, fg color.NRGBA, pal theme.Palette) {
		assets.DrawSpool(p, pal.Accent, pal.Text)
	},
	IconApple: func(p *paint.Painter, fg color.NRGBA, _ theme.Palette) {
		p.FillCircle(38, 60, 26, fg)
		p.FillCircle(62, 60, 26, fg)
		p.FillCircle(50, 72, 24, fg)
		p.FillPolygon([]float64{50, 30, 56, 12, 70, 6, 64, 24}, fg)
	},
}

// Icons lists the known icon names.
func Icons() []string {
	names := make([]string, 0, len(icons))
	for k := range icons {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// ParseIcon validates an icon name.
func ParseIcon(s string) (Icon, error) {
	if _, ok := icons[Icon(s)]; !ok {
		return "", fmt.Errorf("unknown icon %q (available: %v)", s, Icons())
	}
	return Icon(s), nil
}

// DrawIcon draws icon in a size x size square centered on (cx, cy).
// Unknown icons draw nothing.
func DrawIcon(p *paint.Painter, icon Icon, cx, cy, size float64, fg color.Color, pal theme.Palette) {
	fn, ok := icons[icon]
	if !ok || size <= 0 {
		return
	}
	p.Save()
	p.Translate(cx-size/2, cy-size/2)
	p.Scale(size/100, size/100)
	fn(p, color.NRGBAModel.Convert(fg).(color.NRGBA), pal)
	p.Restore()
}

func face(p *paint.Painter, fg color.NRGBA, pal theme.Palette) {
	p.FillCircle(50, 50, 46, fg)
	ink := rgba(pal.Text, 1)
	p.FillCircle(36, 44, 5, ink)
	p.FillCircle(64, 44, 5, ink)
}

func withA(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}

// arcPoints samples a circular arc, angles in degrees clockwise from three
// o'clock, as x, y pairs.
func arcPoints(cx, cy, r, from, to float64) []float64 {
	const n = 20
	pts := make([]float64, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		a := (from + (to-from)*float64(i)/n) * math.Pi / 180
		pts = append(pts, cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	return pts
}

// quadPoints samples two quadratic curves sharing their middle point:
// (x0,y0) to (x2,y2) over (x1,y1), then on to (x4,y4) over (x3,y3).
func quadPoints(x0, y0, x1, y1, x2, y2, x3, y3, x4, y4 float64) []float64 {
	const n = 12
	var pts []float64
	q := func(ax, ay, bx, by, cx, cy float64, first bool) {
		for i := 0; i <= n; i++ {
			if i == 0 && !first {
				continue
			}
			t := float64(i) / n
			u := 1 - t
			pts = append(pts, u*u*ax+2*u*t*bx+t*t*cx, u*u*ay+2*u*t*by+t*t*cy)
		}
	}
	q(x0, y0, x1, y1, x2, y2, true)
	q(x2, y2, x3, y3, x4, y4, false)
	return pts
}
