package engine

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/hypereel/internal/composition"
	"github.com/ivlev/hypereel/internal/config"
	"github.com/ivlev/hypereel/internal/effects"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/system"
	"github.com/ivlev/hypereel/internal/theme"
	"github.com/ivlev/hypereel/internal/video"
)

// DefaultSegmentFrames: длина сегмента, если -segment-frames не задан.
const DefaultSegmentFrames = 90

type VideoProject struct {
	Config   *config.Config
	Timeline *composition.Timeline
	Fonts    *theme.Fonts
	Encoder  video.VideoEncoder
	Filter   effects.Filter
	Mix      video.Mix
	tempDir  string
}

func NewVideoProject(cfg *config.Config, tl *composition.Timeline, fonts *theme.Fonts, ve video.VideoEncoder, f effects.Filter) *VideoProject {
	return &VideoProject{
		Config:   cfg,
		Timeline: tl,
		Fonts:    fonts,
		Encoder:  ve,
		Filter:   f,
	}
}

// Segment: полуоткрытый диапазон кадров [From, To).
type Segment struct {
	From, To int
}

// SplitFrames режет [from, to) на сегменты по size кадров. Последний
// сегмент может быть короче.
func SplitFrames(from, to, size int) []Segment {
	if size <= 0 {
		size = DefaultSegmentFrames
	}
	var segs []Segment
	for f := from; f < to; f += size {
		segs = append(segs, Segment{From: f, To: min(f+size, to)})
	}
	return segs
}

// frameRange применяет -frames к длине ролика.
func (p *VideoProject) frameRange() (int, int, error) {
	total := p.Timeline.Composition.DurationInFrames
	from, to := p.Config.FrameFrom, p.Config.FrameTo
	if to <= 0 || to > total {
		to = total
	}
	if from < 0 || from >= to {
		return 0, 0, fmt.Errorf("пустой диапазон кадров %d:%d (в ролике %d кадров)", p.Config.FrameFrom, p.Config.FrameTo, total)
	}
	return from, to, nil
}

func (p *VideoProject) Run(ctx context.Context) error {
	startTime := time.Now()

	from, to, err := p.frameRange()
	if err != nil {
		return err
	}
	p.tempDir, err = os.MkdirTemp("", "hypereel_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(p.tempDir)

	comp := p.Timeline.Composition
	segments := SplitFrames(from, to, p.Config.SegmentFrames)
	workers := p.Config.Workers
	if workers <= 0 {
		workers = system.RecommendWorkers(comp.Width, comp.Height)
	}
	workers = min(workers, len(segments))

	fmt.Println("--- [PROJECT: HYPE REEL] ---")
	fmt.Printf("[*] Композиция: %s\n", comp)
	fmt.Printf("[*] Кадры %d:%d | Сегментов: %d | Воркеров: %d | Энкодер: %s\n", from, to, len(segments), workers, p.Config.VideoEncoder)
	fmt.Println("-----------------------------")

	results := make([]string, len(segments))
	var renderNanos atomic.Int64
	var ready atomic.Int32

	// Рендер и кодирование сегмента идут в одной горутине: кадры пишутся
	// прямо в stdin ffmpeg. Ошибка любого сегмента отменяет остальные.
	segStart := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seg := range segments {
		g.Go(func() error {
			params := config.SegmentParams{
				Index:       i,
				From:        seg.From,
				To:          seg.To,
				Width:       comp.Width,
				Height:      comp.Height,
				FPS:         comp.FPS,
				TotalFrames: comp.DurationInFrames,
				Debug:       p.Config.Debug,
			}
			if p.Filter != nil {
				params.Filter = p.Filter.GenerateFilter(params)
			}
			segPath := filepath.Join(p.tempDir, fmt.Sprintf("s%04d.mp4", i))
			err := p.Encoder.EncodeSegment(gctx, segPath, params, p.Config.VideoEncoder, p.Config.Quality, p.frameWriter(gctx, seg, &renderNanos))
			if err != nil {
				return fmt.Errorf("сегмент %d (кадры %d:%d): %w", i, seg.From, seg.To, err)
			}
			results[i] = segPath
			fmt.Printf("[>] Ready: %d/%d\n", ready.Add(1), len(segments))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	segTime := time.Since(segStart)

	fmt.Println("[*] Сборка финального видео...")
	concatStart := time.Now()
	mix := p.shiftedMix(from, to)
	concatOut := p.Config.OutputVideo
	if !mix.Empty() {
		concatOut = filepath.Join(p.tempDir, "video.mp4")
	}
	if err := p.Encoder.Concatenate(ctx, results, concatOut, p.tempDir); err != nil {
		return fmt.Errorf("ошибка сборки финального видео: %w", err)
	}
	concatTime := time.Since(concatStart)

	mixStart := time.Now()
	if !mix.Empty() {
		fmt.Printf("[*] Микширование звука: музыка %q, эффектов %d\n", mix.Music, len(mix.Cues))
		if err := p.Encoder.MixAudio(ctx, concatOut, mix, p.Config.OutputVideo); err != nil {
			return fmt.Errorf("ошибка сведения звука: %w", err)
		}
	}
	mixTime := time.Since(mixStart)

	if p.Config.ShowStats {
		p.report(to-from, time.Since(startTime), time.Duration(renderNanos.Load()), segTime, concatTime, mixTime)
	}
	return nil
}

// frameWriter рендерит кадры сегмента в переиспользуемый буфер и пишет их
// в w как raw RGBA.
func (p *VideoProject) frameWriter(ctx context.Context, seg Segment, renderNanos *atomic.Int64) video.FrameWriter {
	return func(w io.Writer) error {
		comp := p.Timeline.Composition
		img := system.GetImage(image.Rect(0, 0, comp.Width, comp.Height))
		defer system.PutImage(img)
		painter := paint.New(img, p.Fonts)

		for f := seg.From; f < seg.To; f++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			t := time.Now()
			painter.Reset(img)
			p.Timeline.RenderFrame(painter, f)
			renderNanos.Add(int64(time.Since(t)))
			if _, err := w.Write(img.Pix); err != nil {
				return err
			}
		}
		return nil
	}
}

// shiftedMix подгоняет звуковую дорожку под диапазон -frames: эффекты до
// начала диапазона отбрасываются, отсутствующие файлы пропускаются.
func (p *VideoProject) shiftedMix(from, to int) video.Mix {
	mix := p.Mix
	fps := p.Timeline.Composition.FPS
	mix.FPS = fps
	mix.Duration = float64(to-from) / float64(fps)
	if mix.Music != "" {
		if _, err := os.Stat(mix.Music); err != nil {
			log.Printf("[!] Музыка пропущена: %v", err)
			mix.Music = ""
		}
	}

	var cues []video.Cue
	missing := map[string]bool{}
	for _, c := range p.Mix.Cues {
		if c.Frame < from || c.Frame >= to {
			continue
		}
		if _, err := os.Stat(c.Path); err != nil {
			if !missing[c.Path] {
				log.Printf("[!] Звуковой эффект пропущен: %v", err)
				missing[c.Path] = true
			}
			continue
		}
		c.Frame -= from
		cues = append(cues, c)
	}
	mix.Cues = cues
	return mix
}

func (p *VideoProject) report(frames int, total, render, segments, concat, mix time.Duration) {
	fps := float64(frames) / total.Seconds()
	host := system.ReadHostReport()
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU, all workers): %.2fs\n"+
			"Render + Encode: %.2fs\n"+
			"Concatenation: %.2fs\n"+
			"Audio Mix: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"Host: %s\n"+
			"----------------------------\n",
		p.Config.BuildVersion, total.Seconds(), render.Seconds(), segments.Seconds(), concat.Seconds(), mix.Seconds(), fps, host,
	)
	fmt.Print(report)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Storyboard: %s | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.StoryboardPath),
		frames,
		total.Seconds(),
		render.Seconds(),
		segments.Seconds(),
		fps,
	)
	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		return
	}
	defer f.Close()
	f.WriteString(logEntry)
}

// RenderStill рисует один кадр ролика. Формат файла определяется по
// расширению path.
func RenderStill(tl *composition.Timeline, fonts *theme.Fonts, frame int, path string) error {
	total := tl.Composition.DurationInFrames
	if frame < 0 || (total > 0 && frame >= total) {
		return fmt.Errorf("кадр %d вне ролика (0..%d)", frame, total-1)
	}
	img := image.NewRGBA(image.Rect(0, 0, tl.Composition.Width, tl.Composition.Height))
	tl.RenderFrame(paint.New(img, fonts), frame)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("не удалось сохранить кадр %d: %w", frame, err)
	}
	return nil
}
