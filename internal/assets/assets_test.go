package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLibraryLoadsAndCaches(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "smirk.png"), 32, 48)

	lib := NewLibrary(dir, nil, 0)
	img := lib.Mascot(Smirk)
	if got := img.Bounds().Size(); got != image.Pt(32, 48) {
		t.Fatalf("size = %v, want 32x48", got)
	}
	if again := lib.Mascot(Smirk); again != img {
		t.Error("second lookup did not hit the cache")
	}
}

func TestLibraryFallsBackToSpool(t *testing.T) {
	lib := NewLibrary(t.TempDir(), nil, 0)
	img := lib.Mascot(Shock)
	if img == nil {
		t.Fatal("nil image for missing art")
	}
	if got := img.Bounds().Dx(); got != 512 {
		t.Errorf("fallback width = %d, want 512", got)
	}
	if _, err := lib.Load(string(Shock)); err == nil {
		t.Error("Load should report the missing file")
	}
}

func TestLibraryOverrides(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "custom.png"), 10, 10)

	lib := NewLibrary(dir, map[string]string{"wave": "custom.png", "logo": "custom.png"}, 0)
	if p, _ := lib.Path("wave"); p != filepath.Join(dir, "custom.png") {
		t.Errorf("wave path = %s", p)
	}
	if _, err := lib.Load("logo"); err != nil {
		t.Errorf("extra key failed to load: %v", err)
	}
	if _, err := lib.Load("nope"); err == nil {
		t.Error("unknown key should fail")
	}
	if len(lib.Keys()) != 5 {
		t.Errorf("keys = %v", lib.Keys())
	}
}

func TestOpenRejectsUnknownFormats(t *testing.T) {
	if _, err := Open("mascot.gif"); err == nil {
		t.Error("expected an error for .gif")
	}
}

func TestQRCode(t *testing.T) {
	img, err := QRCode("https://apps.apple.com/app/spool", 256, color.Black)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dx(); got != 256 {
		t.Errorf("QR width = %d, want 256", got)
	}

	lib := NewLibrary("", nil, 0)
	a, err := lib.QRCode("https://example.com", 128)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := lib.QRCode("https://example.com", 128)
	if a != b {
		t.Error("QR code not cached")
	}
}

func TestSpoolIsDrawn(t *testing.T) {
	img := Spool(100).(*image.RGBA)
	if a := img.RGBAAt(50, 50).A; a == 0 {
		t.Error("spool body is transparent")
	}
	if a := img.RGBAAt(2, 2).A; a != 0 {
		t.Error("spool corner is not transparent")
	}
}
