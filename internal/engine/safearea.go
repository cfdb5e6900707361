package engine

import (
	"context"
	"fmt"
	"image"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/hypereel/internal/analyzer"
	"github.com/ivlev/hypereel/internal/composition"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/theme"
)

// CheckSafeArea рендерит каждый step-й кадр и ищет контент под
// интерфейсом платформы. Фон считается отдельно, чтобы сетка и свечение
// не попадали в отчёт.
func CheckSafeArea(ctx context.Context, tl *composition.Timeline, fonts *theme.Fonts, check *analyzer.SafeAreaCheck, step, workers int) ([]analyzer.Violation, error) {
	if step <= 0 {
		step = tl.Composition.FPS
	}
	backdrop := *tl
	backdrop.Sequences = nil

	var frames []int
	for f := 0; f < tl.Composition.DurationInFrames; f += step {
		frames = append(frames, f)
	}

	var mu sync.Mutex
	var found []analyzer.Violation
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for _, f := range frames {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rect := image.Rect(0, 0, tl.Composition.Width, tl.Composition.Height)
			img, bg := image.NewRGBA(rect), image.NewRGBA(rect)
			tl.RenderFrame(paint.New(img, fonts), f)
			backdrop.RenderFrame(paint.New(bg, fonts), f)

			vs, err := check.Check(f, img, bg)
			if err != nil {
				return fmt.Errorf("кадр %d: %w", f, err)
			}
			mu.Lock()
			found = append(found, vs...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].Frame < found[j].Frame })
	return found, nil
}
