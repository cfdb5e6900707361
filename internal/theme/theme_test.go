package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"clean", "dark"} {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if p.Name != name {
			t.Errorf("Lookup(%q) returned %q", name, p.Name)
		}
	}
	if _, err := Lookup("neon"); err == nil {
		t.Error("expected an error for an unknown theme")
	}
}

func TestPaletteColors(t *testing.T) {
	tests := []struct {
		name string
		got  color.NRGBA
		want color.NRGBA
	}{
		{"clean background", Opaque(Clean.Background), color.NRGBA{0xFD, 0xF6, 0xEE, 0xFF}},
		{"clean accent", Opaque(Clean.Accent), color.NRGBA{0xE8, 0x5D, 0x04, 0xFF}},
		{"dark accent", Opaque(Dark.Accent), color.NRGBA{0x8A, 0xC9, 0xE1, 0xFF}},
		{"dark orange", Opaque(Dark.AccentAlt), color.NRGBA{0xFE, 0x72, 0x3F, 0xFF}},
		{"half alpha", Alpha(Dark.Text, 0.5), color.NRGBA{0xFF, 0xFF, 0xFF, 0x80}},
		{"alpha clamps", Alpha(Dark.Text, 3), color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadFonts(t *testing.T) {
	fs := DefaultFonts()
	for _, w := range []Weight{Regular, Medium, Bold} {
		if fs.Font(w) == nil {
			t.Errorf("%v font is nil", w)
		}
	}
	if fs.Font(Weight(9)) != fs.Font(Regular) {
		t.Error("unknown weight should fall back to regular")
	}
}

func TestLoadFontsBadOverride(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(bad, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFonts(FontFiles{Bold: bad}); err == nil {
		t.Error("expected a parse error")
	}
	if _, err := LoadFonts(FontFiles{Medium: filepath.Join(dir, "missing.ttf")}); err == nil {
		t.Error("expected a read error")
	}
}
