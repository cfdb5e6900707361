package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ivlev/hypereel/internal/analyzer"
	"github.com/ivlev/hypereel/internal/config"
	"github.com/ivlev/hypereel/internal/effects"
	"github.com/ivlev/hypereel/internal/engine"
	"github.com/ivlev/hypereel/internal/preview"
	"github.com/ivlev/hypereel/internal/storyboard"
	"github.com/ivlev/hypereel/internal/system"
	"github.com/ivlev/hypereel/internal/video"
)

// Задаётся при сборке: -ldflags "-X main.buildVersion=..."
var buildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input/audio", "input/assets", "input/sounds", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	storyboardPtr := flag.String("storyboard", "", "Путь к раскадровке YAML (по умолчанию: самая свежая в internal/storyboards/, иначе встроенная)")
	outputPtr := flag.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	presetPtr := flag.String("preset", "", "Пресет формата: 9:16 (Reels/TikTok), 4:5 (Instagram), 16:9")
	widthPtr := flag.Int("width", 0, "Ширина (0 - из раскадровки)")
	heightPtr := flag.Int("height", 0, "Высота (0 - из раскадровки)")
	fpsPtr := flag.Int("fps", 0, "FPS (0 - из раскадровки)")
	workersPtr := flag.Int("workers", 0, "Параллельных сегментов (0 - по ядрам и памяти)")
	segmentPtr := flag.Int("segment-frames", engine.DefaultSegmentFrames, "Кадров в сегменте")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	audioPtr := flag.String("audio", "", "Фоновая музыка (по умолчанию: из раскадровки или самый свежий файл в input/audio/)")
	musicVolumePtr := flag.Float64("music-volume", -1, "Громкость музыки 0..1 (-1 - из раскадровки)")
	sfxPtr := flag.Bool("sfx", true, "Звуковые эффекты")
	framesPtr := flag.String("frames", "", "Диапазон кадров from:to для частичного рендера")
	stillPtr := flag.Int("still", -1, "Сохранить один кадр в PNG вместо видео")
	watchPtr := flag.Bool("watch", false, "Перерисовывать кадр -still при каждом изменении раскадровки")
	safeAreaPtr := flag.Bool("check-safe-area", false, "Проверить, что контент не заходит под интерфейс платформы")
	detectorPtr := flag.String("detector", "contrast", "Детектор контента для -check-safe-area")
	generatePtr := flag.Bool("generate-storyboard", false, "Сохранить встроенную раскадровку в internal/storyboards/ и выйти")
	statsPtr := flag.Bool("stats", false, "Показать статистику производительности")
	debugPtr := flag.Bool("debug", false, "Подписывать номера кадров в видео")

	flag.Parse()

	if *generatePtr {
		path := storyboard.GeneratePath()
		if err := storyboard.Write(storyboard.Default(), path); err != nil {
			log.Fatalf("[-] Ошибка записи раскадровки: %v", err)
		}
		fmt.Printf("[+++] Успех! Раскадровка сохранена: %s\n", path)
		return
	}

	cfg := &config.Config{
		StoryboardPath: *storyboardPtr,
		OutputVideo:    *outputPtr,
		Width:          *widthPtr,
		Height:         *heightPtr,
		FPS:            *fpsPtr,
		Workers:        *workersPtr,
		SegmentFrames:  *segmentPtr,
		AudioPath:      *audioPtr,
		MusicVolume:    *musicVolumePtr,
		SFX:            *sfxPtr,
		Preset:         *presetPtr,
		Quality:        *qualityPtr,
		Detector:       *detectorPtr,
		Debug:          *debugPtr,
		ShowStats:      *statsPtr,
		BuildVersion:   buildVersion,
	}

	if cfg.Preset != "" {
		w, h, err := config.PresetSize(cfg.Preset)
		if err != nil {
			log.Fatalf("[-] Ошибка: %v", err)
		}
		cfg.Width, cfg.Height = w, h
	}
	if *framesPtr != "" {
		from, to, err := config.ParseFrameRange(*framesPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка: %v", err)
		}
		cfg.FrameFrom, cfg.FrameTo = from, to
	}

	if cfg.StoryboardPath == "" {
		if latest, err := storyboard.FindLatest(); err == nil {
			cfg.StoryboardPath = latest
			fmt.Printf("[*] Выбрана раскадровка: %s\n", latest)
		} else {
			fmt.Println("[*] Используется встроенная раскадровка")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *watchPtr:
		runWatch(ctx, cfg, max(0, *stillPtr))
	case *stillPtr >= 0:
		runStill(cfg, *stillPtr)
	case *safeAreaPtr:
		runSafeArea(ctx, cfg)
	default:
		runRender(ctx, cfg)
	}
}

func stillPath(cfg *config.Config, frame int) string {
	if cfg.OutputVideo != "" {
		return cfg.OutputVideo
	}
	return filepath.Join("output", fmt.Sprintf("still_%05d.png", frame))
}

func runStill(cfg *config.Config, frame int) {
	r, err := buildReel(cfg)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	path := stillPath(cfg, frame)
	if err := engine.RenderStill(r.Plan.Timeline, r.Fonts, frame, path); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
	fmt.Printf("[+++] Успех! Кадр %d: %s\n", frame, path)
}

func runWatch(ctx context.Context, cfg *config.Config, frame int) {
	if cfg.StoryboardPath == "" {
		log.Fatalf("[-] Для -watch нужна раскадровка: создайте её через -generate-storyboard")
	}
	path := stillPath(cfg, frame)
	w := preview.NewWatcher(cfg.StoryboardPath, func(ctx context.Context, _ string) error {
		r, err := buildReel(cfg)
		if err != nil {
			return err
		}
		last := r.Plan.Timeline.Composition.DurationInFrames - 1
		return engine.RenderStill(r.Plan.Timeline, r.Fonts, min(frame, last), path)
	})
	if err := w.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
}

func runSafeArea(ctx context.Context, cfg *config.Config) {
	r, err := buildReel(cfg)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	check, err := analyzer.NewSafeAreaCheck(cfg.Detector)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = system.RecommendWorkers(r.Storyboard.Composition.Width, r.Storyboard.Composition.Height)
	}
	fmt.Println("[*] Проверка безопасной зоны (кадр в секунду)...")
	found, err := engine.CheckSafeArea(ctx, r.Plan.Timeline, r.Fonts, check, 0, workers)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
	if len(found) == 0 {
		fmt.Println("[+++] Весь контент в безопасной зоне")
		return
	}
	for _, v := range found {
		fmt.Printf("[!] %s\n", v)
	}
	fmt.Printf("[!] Нарушений: %d\n", len(found))
	os.Exit(1)
}

func runRender(ctx context.Context, cfg *config.Config) {
	r, err := buildReel(cfg)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	sb := r.Storyboard

	// Обработка аудио
	music := cfg.AudioPath
	if music == "" {
		music = sb.Music.Path
	}
	if music == "" {
		if latest, err := system.FindLatestAudio("input/audio"); err == nil {
			music = latest
			fmt.Printf("[*] Выбрано аудио: %s\n", music)
		}
	}
	if music != "" {
		if d, err := system.GetAudioDuration(ctx, music); err == nil {
			length := r.Plan.Timeline.Composition.Seconds()
			if d < length {
				fmt.Printf("[*] Музыка (%.2fs) короче ролика (%.2fs) и будет зациклена\n", d, length)
			}
		} else {
			log.Printf("[!] Не удалось получить длительность аудио: %v", err)
		}
	}

	if cfg.OutputVideo == "" {
		name := strings.ReplaceAll(sb.Composition.ID, " ", "_")
		if name == "" {
			name = "reel"
		}
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", name, timestamp))
	}

	encoderName, _ := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
	}
	cfg.VideoEncoder = encoderName
	if cfg.Quality == 0 {
		cfg.Quality = config.DefaultQuality(encoderName)
	}

	project := engine.NewVideoProject(cfg, r.Plan.Timeline, r.Fonts, &video.FFmpegEncoder{}, effects.SegmentFilter{})
	project.Mix = r.Plan.Mix(music, sb.Music.Volume, sb.Music.FadeOut)
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
}
