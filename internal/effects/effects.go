package effects

import (
	"image/color"
	"math"

	"github.com/ivlev/hypereel/internal/motion"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// Effect рисуется поверх готового кадра, в координатах макета
// (w x h единиц).
type Effect interface {
	Apply(p *paint.Painter, frame int, w, h float64)
}

// Shaker сдвигает сцены целиком (камера), фон остаётся на месте.
type Shaker interface {
	Offset(frame int) (x, y float64)
}

// Flash: белая вспышка на каждом кадре-триггере.
type Flash struct {
	Triggers []int
	Color    color.Color // nil означает белый
}

func (f Flash) Apply(p *paint.Painter, frame int, w, h float64) {
	a := 0.0
	for _, t := range f.Triggers {
		a = math.Max(a, motion.Flash(frame, t))
	}
	if a <= 0 {
		return
	}
	c := f.Color
	if c == nil {
		c = color.White
	}
	p.Save()
	p.MulAlpha(a)
	p.FillRect(0, 0, w, h, c)
	p.Restore()
}

// Vignette затемняет края кадра цветом палитры. При To <= 0 действует
// постоянно, иначе нарастает и спадает в окне [From, To].
type Vignette struct {
	From, To  int
	Intensity float64
	Tint      theme.Palette
}

func (v Vignette) Apply(p *paint.Painter, frame int, w, h float64) {
	k := 1.0
	if v.To > 0 {
		k = motion.VignetteIntensity(frame, v.From, v.To) / 0.7
	}
	if k <= 0 || v.Intensity <= 0 {
		return
	}
	p.Vignette(v.Intensity*k, theme.Opaque(v.Tint.Accent))
}

// Fade затемняет начало и конец ролика.
type Fade struct {
	In, Out int
	Total   int
}

func (f Fade) Opacity(frame int) float64 {
	o := 1.0
	if f.In > 0 {
		o = math.Min(o, motion.FadeIn(frame, 0, f.In))
	}
	if f.Out > 0 && f.Total > 0 {
		o = math.Min(o, motion.FadeOut(frame, f.Total-f.Out, f.Out))
	}
	return o
}

func (f Fade) Apply(p *paint.Painter, frame int, w, h float64) {
	a := 1 - f.Opacity(frame)
	if a <= 0 {
		return
	}
	p.Save()
	p.MulAlpha(a)
	p.FillRect(0, 0, w, h, color.Black)
	p.Restore()
}

// Shake: удар камеры на триггерах: пик через 2 кадра, затухание к 12-му.
type Shake struct {
	Triggers  []int
	Intensity float64 // 1 как у слэма статистики
}

func (s Shake) Offset(frame int) (x, y float64) {
	k := 0.0
	for _, t := range s.Triggers {
		rel := float64(frame - t)
		if rel < 0 || rel > 12 {
			continue
		}
		k = math.Max(k, motion.Interpolate(rel, []float64{0, 2, 12}, []float64{0, 1, 0}, motion.Clamp))
	}
	return motion.ScreenShake(k*s.Intensity, frame)
}
