// Package assets loads the artwork a reel shows: mascot poses, QR codes and a
// drawn spool icon used in place of missing art.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"
	"sort"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/skip2/go-qrcode"

	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// Mascot names a pose of the app's mascot.
type Mascot string

const (
	Shock   Mascot = "shock"
	Smirk   Mascot = "smirk"
	Jumping Mascot = "jumping"
	Wave    Mascot = "wave"
)

// DefaultFiles maps each pose to its file in the assets directory.
var DefaultFiles = map[string]string{
	string(Shock):   "spooli_shock.png",
	string(Smirk):   "smirk.png",
	string(Jumping): "spooli_jumping.png",
	string(Wave):    "spooli_wave.png",
}

// DefaultDPI is the resolution PDF artwork is rasterized at.
const DefaultDPI = 144

// Library resolves artwork by key and caches decoded images. It is safe for
// concurrent use; the images it returns must not be modified.
type Library struct {
	dir   string
	files map[string]string
	dpi   int

	mu    sync.Mutex
	cache map[string]image.Image
	qr    map[qrKey]image.Image
}

type qrKey struct {
	url  string
	size int
}

// NewLibrary returns a library reading from dir. files overrides or extends
// DefaultFiles; relative paths are resolved against dir.
func NewLibrary(dir string, files map[string]string, dpi int) *Library {
	merged := make(map[string]string, len(DefaultFiles)+len(files))
	for k, v := range DefaultFiles {
		merged[k] = v
	}
	for k, v := range files {
		merged[k] = v
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Library{
		dir:   dir,
		files: merged,
		dpi:   dpi,
		cache: make(map[string]image.Image),
		qr:    make(map[qrKey]image.Image),
	}
}

// Keys lists the known artwork keys.
func (l *Library) Keys() []string {
	keys := make([]string, 0, len(l.files))
	for k := range l.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path returns the file backing key.
func (l *Library) Path(key string) (string, bool) {
	f, ok := l.files[key]
	if !ok {
		return "", false
	}
	if filepath.IsAbs(f) || l.dir == "" {
		return f, true
	}
	return filepath.Join(l.dir, f), true
}

// Load decodes the artwork for key without consulting the cache.
func (l *Library) Load(key string) (image.Image, error) {
	path, ok := l.Path(key)
	if !ok {
		return nil, fmt.Errorf("unknown artwork %q", key)
	}
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.RenderPage(0, l.dpi)
}

// Image returns the artwork for key. Missing or broken files are reported
// once and replaced by the drawn spool.
func (l *Library) Image(key string) image.Image {
	l.mu.Lock()
	defer l.mu.Unlock()

	if img, ok := l.cache[key]; ok {
		return img
	}
	img, err := l.Load(key)
	if err != nil {
		log.Printf("[!] Artwork %q unavailable, drawing a spool instead: %v", key, err)
		img = Spool(512)
	}
	l.cache[key] = img
	return img
}

// Mascot returns the image of a mascot pose.
func (l *Library) Mascot(m Mascot) image.Image {
	return l.Image(string(m))
}

// Preload resolves every known key so that render workers only read the
// cache.
func (l *Library) Preload() {
	for _, k := range l.Keys() {
		l.Image(k)
	}
}

// QRCode returns a size x size QR code for url with a transparent
// background.
func (l *Library) QRCode(url string, size int) (image.Image, error) {
	k := qrKey{url: url, size: size}
	l.mu.Lock()
	defer l.mu.Unlock()
	if img, ok := l.qr[k]; ok {
		return img, nil
	}
	img, err := QRCode(url, size, theme.Opaque(theme.Clean.Text))
	if err != nil {
		return nil, err
	}
	l.qr[k] = img
	return img, nil
}

// QRCode encodes url as a size x size QR code drawn in fg.
func QRCode(url string, size int, fg color.Color) (image.Image, error) {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code for %q: %w", url, err)
	}
	q.DisableBorder = true
	q.ForegroundColor = fg
	q.BackgroundColor = color.Transparent
	return q.Image(size), nil
}

// Spool draws the app's spool of thread on a transparent size x size canvas.
func Spool(size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	p := paint.New(dst, nil)
	p.Scale(float64(size)/100, float64(size)/100)
	DrawSpool(p, theme.Clean.Accent, theme.Clean.Text)
	return dst
}

// DrawSpool draws a spool in a 100x100 box at the painter's origin.
func DrawSpool(p *paint.Painter, thread, wood colorful.Color) {
	w := theme.Opaque(wood)
	t := theme.Opaque(thread)
	light := theme.Opaque(theme.Mix(thread, theme.Clean.BackgroundAlt, 0.35))

	p.FillRoundRect(30, 24, 40, 52, 4, t)
	for y := 30.0; y < 72; y += 7 {
		p.Line(31, y, 69, y+4, 2.2, light)
	}
	p.FillRoundRect(20, 14, 60, 11, 5, w)
	p.FillRoundRect(20, 75, 60, 11, 5, w)
	p.Polyline([]float64{70, 60, 80, 66, 78, 78, 86, 88}, 2.5, t)
}
