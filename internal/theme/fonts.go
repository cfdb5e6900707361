package theme

import (
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Weight selects one of the three typefaces of a reel.
type Weight int

const (
	Regular Weight = iota
	Medium
	Bold
)

func (w Weight) String() string {
	switch w {
	case Regular:
		return "regular"
	case Medium:
		return "medium"
	case Bold:
		return "bold"
	}
	return fmt.Sprintf("Weight(%d)", int(w))
}

// Fonts holds parsed typefaces. A Fonts is immutable after loading and may be
// shared between goroutines; faces built from it may not.
type Fonts struct {
	faces [3]*opentype.Font
}

// FontFiles overrides the built-in Go fonts with TTF or OTF files.
// Empty paths keep the built-in face.
type FontFiles struct {
	Regular string `yaml:"regular,omitempty"`
	Medium  string `yaml:"medium,omitempty"`
	Bold    string `yaml:"bold,omitempty"`
}

// LoadFonts parses the Go fonts and applies any overrides.
func LoadFonts(files FontFiles) (*Fonts, error) {
	builtin := [3][]byte{goregular.TTF, gomedium.TTF, gobold.TTF}
	paths := [3]string{files.Regular, files.Medium, files.Bold}

	var fs Fonts
	for i := range builtin {
		data := builtin[i]
		if paths[i] != "" {
			b, err := os.ReadFile(paths[i])
			if err != nil {
				return nil, fmt.Errorf("failed to read %s font: %w", Weight(i), err)
			}
			data = b
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s font: %w", Weight(i), err)
		}
		fs.faces[i] = f
	}
	return &fs, nil
}

// DefaultFonts returns the built-in Go fonts. It panics only if the embedded
// font data is corrupt.
func DefaultFonts() *Fonts {
	fs, err := LoadFonts(FontFiles{})
	if err != nil {
		panic(err)
	}
	return fs
}

// Font returns the typeface for w, falling back to regular.
func (f *Fonts) Font(w Weight) *opentype.Font {
	if w < Regular || w > Bold {
		w = Regular
	}
	return f.faces[w]
}
