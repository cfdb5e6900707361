// Package theme defines the color palettes and typefaces of a reel.
package theme

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette assigns a color to every role a component can paint.
type Palette struct {
	Name string
	Dark bool

	Background    colorful.Color
	BackgroundAlt colorful.Color
	Grid          colorful.Color
	GridAlpha     float64

	Surface      colorful.Color // card fill
	SurfaceAlpha float64
	Border       colorful.Color
	BorderAlpha  float64

	Text      colorful.Color
	TextMuted colorful.Color
	Accent    colorful.Color
	AccentAlt colorful.Color
	Glow      colorful.Color
	Danger    colorful.Color
	Info      colorful.Color // secondary links and captions
	Phone     colorful.Color
	Star      colorful.Color
	Heart     colorful.Color

	StudyFrom     colorful.Color
	StudyTo       colorful.Color
	StudyBorder   colorful.Color
	StudyTitle    colorful.Color
	StudyCitation colorful.Color
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("theme: bad color %q: %v", s, err))
	}
	return c
}

// Clean is cream with burnt orange accents and charcoal text.
var Clean = Palette{
	Name:          "clean",
	Background:    mustHex("#FDF6EE"),
	BackgroundAlt: mustHex("#FFFFFF"),
	Grid:          mustHex("#E85D04"),
	GridAlpha:     0.035,
	Surface:       mustHex("#FFFFFF"),
	SurfaceAlpha:  1,
	Border:        mustHex("#E85D04"),
	BorderAlpha:   0.35,
	Text:          mustHex("#2D2D2D"),
	TextMuted:     mustHex("#6C6C6C"),
	Accent:        mustHex("#E85D04"),
	AccentAlt:     mustHex("#E85D04"),
	Glow:          mustHex("#4AC8F5"),
	Danger:        mustHex("#DC5050"),
	Info:          mustHex("#3B82F6"),
	Phone:         mustHex("#1A1A1A"),
	Star:          mustHex("#FFB800"),
	Heart:         mustHex("#E85D04"),
	StudyFrom:     mustHex("#E8F5E9"),
	StudyTo:       mustHex("#C8E6C9"),
	StudyBorder:   mustHex("#4CAF50"),
	StudyTitle:    mustHex("#2E7D32"),
	StudyCitation: mustHex("#558B2F"),
}

// Dark is near-black glass with blue and orange neon.
var Dark = Palette{
	Name:          "dark",
	Dark:          true,
	Background:    mustHex("#000000"),
	BackgroundAlt: mustHex("#050505"),
	Grid:          mustHex("#8AC9E1"),
	GridAlpha:     0.025,
	Surface:       mustHex("#FFFFFF"),
	SurfaceAlpha:  0.05,
	Border:        mustHex("#8AC9E1"),
	BorderAlpha:   0.4,
	Text:          mustHex("#FFFFFF"),
	TextMuted:     mustHex("#9A9A9A"),
	Accent:        mustHex("#8AC9E1"),
	AccentAlt:     mustHex("#FE723F"),
	Glow:          mustHex("#8AC9E1"),
	Danger:        mustHex("#DC5050"),
	Info:          mustHex("#8AC9E1"),
	Phone:         mustHex("#1A1A1A"),
	Star:          mustHex("#FFB800"),
	Heart:         mustHex("#FE723F"),
	StudyFrom:     mustHex("#10301A"),
	StudyTo:       mustHex("#0B2412"),
	StudyBorder:   mustHex("#4CAF50"),
	StudyTitle:    mustHex("#A5D6A7"),
	StudyCitation: mustHex("#81C784"),
}

var palettes = map[string]Palette{
	Clean.Name: Clean,
	Dark.Name:  Dark,
}

// Lookup returns the palette registered under name.
func Lookup(name string) (Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown theme %q (available: %v)", name, Names())
	}
	return p, nil
}

// Names lists the registered palettes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Alpha converts c to a non-premultiplied color with the given opacity.
func Alpha(c colorful.Color, a float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	switch {
	case a < 0:
		a = 0
	case a > 1:
		a = 1
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

// Opaque is Alpha(c, 1).
func Opaque(c colorful.Color) color.NRGBA {
	return Alpha(c, 1)
}

// Mix blends a towards b in RGB space.
func Mix(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendRgb(b, t).Clamped()
}
