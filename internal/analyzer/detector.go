package analyzer

import "image"

// Block is a region of visible content in a frame.
type Block struct {
	Rect       image.Rectangle
	Type       string  // "text" or "graphic"
	Confidence float64 // 0.0-1.0
}

// Detector finds content blocks in a frame.
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}
