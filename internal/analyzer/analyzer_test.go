package analyzer

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func TestContrastDetector(t *testing.T) {
	// A white rectangle on black stands in for a block of copy.
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	fill(img, image.Rect(50, 50, 150, 150), color.White)

	blocks, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) == 0 {
		t.Fatal("Expected at least one block, got none")
	}
	block := blocks[0]
	if block.Rect.Dx() < 80 || block.Rect.Dy() < 80 {
		t.Errorf("Block too small: %v", block.Rect)
	}
	for i, b := range blocks {
		t.Logf("Block %d: %v (type: %s, confidence: %.2f)", i, b.Rect, b.Type, b.Confidence)
	}
}

func TestDetectorScalesBack(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1080, 1920))
	fill(img, img.Rect, color.Black)
	fill(img, image.Rect(200, 800, 880, 900), color.White)

	blocks, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1: %v", len(blocks), blocks)
	}
	r := blocks[0].Rect
	if r.Min.X > 200 || r.Max.X < 880 || r.Min.Y > 800 || r.Max.Y < 900 || r.Min.X < 150 || r.Max.X > 930 {
		t.Errorf("block %v does not match the drawn bar", r)
	}
	if blocks[0].Type != "text" {
		t.Errorf("a wide bar should read as text, got %s", blocks[0].Type)
	}
}

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"contrast", false},
		{"", false}, // default
		{"ocr", true},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			detector, err := NewDetector(tt.variant)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil || detector == nil {
				t.Errorf("NewDetector(%q) = %v, %v", tt.variant, detector, err)
			}
		})
	}
}

func TestMarginsSafe(t *testing.T) {
	m := Margins{Top: 0.1, Bottom: 0.2, Left: 0.05, Right: 0.1}
	got := m.Safe(image.Rect(0, 0, 1000, 2000))
	if want := image.Rect(50, 200, 900, 1600); got != want {
		t.Errorf("Safe = %v, want %v", got, want)
	}
}

func TestSafeAreaCheck(t *testing.T) {
	bounds := image.Rect(0, 0, 270, 480)
	backdrop := image.NewRGBA(bounds)
	fill(backdrop, bounds, color.RGBA{20, 20, 40, 255})
	// The grid lines of the backdrop must not count as content.
	for x := 0; x < 270; x += 30 {
		fill(backdrop, image.Rect(x, 0, x+1, 480), color.RGBA{60, 60, 90, 255})
	}

	frame := image.NewRGBA(bounds)
	copy(frame.Pix, backdrop.Pix)
	fill(frame, image.Rect(60, 200, 200, 240), color.White) // centered copy
	fill(frame, image.Rect(60, 440, 200, 470), color.White) // caption zone

	check, err := NewSafeAreaCheck("contrast")
	if err != nil {
		t.Fatal(err)
	}
	got, err := check.Check(12, frame, backdrop)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(got), got)
	}
	if v := got[0]; v.Frame != 12 || len(v.Edges) != 1 || v.Edges[0] != "bottom" {
		t.Errorf("violation = %v", v)
	}
	t.Logf("Violation: %s", got[0])
}

func TestNewSafeAreaCheckUnknownDetector(t *testing.T) {
	if _, err := NewSafeAreaCheck("canny"); err == nil {
		t.Error("unknown detector variant accepted")
	}
	check, err := NewSafeAreaCheck("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := check.Detector.(*ContrastDetector); !ok {
		t.Errorf("default detector is %T, want *ContrastDetector", check.Detector)
	}
}
