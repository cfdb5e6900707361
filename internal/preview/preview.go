// Package preview re-renders a still whenever the storyboard changes.
package preview

import (
	"context"
	"crypto/sha1"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileDebounce is how long the file must stay quiet before it is read.
// Editors often truncate a file and write the buffer in a second step.
const FileDebounce = 150 * time.Millisecond

// Renderer rebuilds the preview from the storyboard at path.
type Renderer func(ctx context.Context, path string) error

// Watcher watches one storyboard file.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Render   Renderer

	sum [sha1.Size]byte
}

func NewWatcher(path string, render Renderer) *Watcher {
	return &Watcher{Path: path, Debounce: FileDebounce, Render: render}
}

// changed reports whether data differs from what was rendered last.
func (w *Watcher) changed(data []byte) bool {
	sum := sha1.Sum(data)
	if sum == w.sum {
		return false
	}
	w.sum = sum
	return true
}

// Run renders once and then after every change of the file until ctx is
// done. Render errors are logged and the watch goes on.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Следим за каталогом: редакторы часто заменяют файл переименованием.
	dir := filepath.Dir(w.Path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("не удалось следить за %s: %w", dir, err)
	}
	name := filepath.Clean(w.Path)

	w.refresh(ctx)
	fmt.Printf("[*] Слежу за %s (Ctrl+C для выхода)\n", w.Path)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			timer.Reset(w.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[!] Ошибка наблюдения: %v", err)
		case <-timer.C:
			w.refresh(ctx)
		}
	}
}

func (w *Watcher) refresh(ctx context.Context) {
	data, err := os.ReadFile(w.Path)
	if err != nil {
		log.Printf("[!] Не удалось прочитать %s: %v", w.Path, err)
		return
	}
	if !w.changed(data) {
		return
	}
	start := time.Now()
	if err := w.Render(ctx, w.Path); err != nil {
		log.Printf("[!] Превью не обновлено: %v", err)
		return
	}
	fmt.Printf("[>] Превью обновлено за %.2fs\n", time.Since(start).Seconds())
}
