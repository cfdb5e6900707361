package analyzer

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ContrastDetector finds content blocks with a Sobel edge pass, a dilation
// that merges glyphs into lines and a connected-component scan. Frames are
// analysed at AnalysisWidth and the blocks are mapped back to frame pixels.
type ContrastDetector struct {
	MinBlockArea  int     // in frame pixels²
	EdgeThreshold float64 // gradient magnitude threshold
	AnalysisWidth int     // 0 analyses at full size
}

func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea:  900,
		EdgeThreshold: 30.0,
		AnalysisWidth: 270,
	}
}

func (d *ContrastDetector) Detect(img image.Image) ([]Block, error) {
	b := img.Bounds()
	scale := 1.0
	if d.AnalysisWidth > 0 && b.Dx() > d.AnalysisWidth {
		scale = float64(b.Dx()) / float64(d.AnalysisWidth)
		img = imaging.Resize(img, d.AnalysisWidth, 0, imaging.Box)
	}

	gray := toGrayscale(img)
	edges := sobelEdgeDetection(gray, d.EdgeThreshold)
	dilated := dilate(edges, 5, 2)

	minArea := float64(d.MinBlockArea) / (scale * scale)
	blocks := []Block{}
	for _, r := range findContours(dilated) {
		if float64(r.Dx()*r.Dy()) < minArea {
			continue
		}
		r = r.Sub(dilated.Rect.Min)
		full := image.Rect(
			b.Min.X+int(math.Floor(float64(r.Min.X)*scale)),
			b.Min.Y+int(math.Floor(float64(r.Min.Y)*scale)),
			b.Min.X+int(math.Ceil(float64(r.Max.X)*scale)),
			b.Min.Y+int(math.Ceil(float64(r.Max.Y)*scale)),
		).Intersect(b)
		blocks = append(blocks, Block{Rect: full, Type: classify(full), Confidence: 0.7})
	}
	return blocks, nil
}

// classify guesses the block kind from its aspect ratio: copy lines are
// wide and short.
func classify(r image.Rectangle) string {
	if r.Dy() > 0 && float64(r.Dx())/float64(r.Dy()) >= 3 {
		return "text"
	}
	return "graphic"
}

func toGrayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

var (
	sobelX = [3][3]int{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]int{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

func sobelEdgeDetection(gray *image.Gray, threshold float64) *image.Gray {
	bounds := gray.Bounds()
	edges := image.NewGray(bounds)

	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			var sumX, sumY float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := float64(gray.GrayAt(x+kx, y+ky).Y)
					sumX += v * float64(sobelX[ky+1][kx+1])
					sumY += v * float64(sobelY[ky+1][kx+1])
				}
			}
			if math.Hypot(sumX, sumY) > threshold {
				edges.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return edges
}

// dilate grows white regions by kernelSize/2 pixels per iteration.
func dilate(img *image.Gray, kernelSize, iterations int) *image.Gray {
	bounds := img.Bounds()
	result := image.NewGray(bounds)
	copy(result.Pix, img.Pix)

	half := kernelSize / 2
	for iter := 0; iter < iterations; iter++ {
		temp := image.NewGray(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				var maxVal uint8
				for ky := max(bounds.Min.Y, y-half); ky <= min(bounds.Max.Y-1, y+half) && maxVal < 255; ky++ {
					for kx := max(bounds.Min.X, x-half); kx <= min(bounds.Max.X-1, x+half); kx++ {
						maxVal = max(maxVal, result.GrayAt(kx, ky).Y)
					}
				}
				temp.SetGray(x, y, color.Gray{Y: maxVal})
			}
		}
		result = temp
	}
	return result
}

// findContours returns the bounding rectangles of connected white regions.
func findContours(img *image.Gray) []image.Rectangle {
	bounds := img.Bounds()
	visited := make([]bool, bounds.Dx()*bounds.Dy())
	idx := func(x, y int) int { return (y-bounds.Min.Y)*bounds.Dx() + x - bounds.Min.X }

	var contours []image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.GrayAt(x, y).Y <= 128 || visited[idx(x, y)] {
				continue
			}
			r := image.Rect(x, y, x+1, y+1)
			stack := []image.Point{{X: x, Y: y}}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if !p.In(bounds) || visited[idx(p.X, p.Y)] || img.GrayAt(p.X, p.Y).Y <= 128 {
					continue
				}
				visited[idx(p.X, p.Y)] = true
				r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
				stack = append(stack,
					image.Point{X: p.X + 1, Y: p.Y},
					image.Point{X: p.X - 1, Y: p.Y},
					image.Point{X: p.X, Y: p.Y + 1},
					image.Point{X: p.X, Y: p.Y - 1},
				)
			}
			contours = append(contours, r)
		}
	}
	return contours
}
