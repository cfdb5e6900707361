package main

import (
	"fmt"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/config"
	"github.com/ivlev/hypereel/internal/director"
	"github.com/ivlev/hypereel/internal/pacing"
	"github.com/ivlev/hypereel/internal/storyboard"
	"github.com/ivlev/hypereel/internal/theme"
)

// reel: всё, что нужно для рендера: раскадровка, план и шрифты.
type reel struct {
	Storyboard *storyboard.Storyboard
	Plan       *director.Plan
	Fonts      *theme.Fonts
}

// loadStoryboard читает раскадровку или берёт встроенную.
func loadStoryboard(path string) (*storyboard.Storyboard, error) {
	if path == "" {
		return storyboard.Default(), nil
	}
	return storyboard.Read(path)
}

// applyOverrides переносит флаги командной строки в раскадровку.
func applyOverrides(sb *storyboard.Storyboard, cfg *config.Config) {
	if cfg.Width > 0 {
		sb.Composition.Width = cfg.Width
	}
	if cfg.Height > 0 {
		sb.Composition.Height = cfg.Height
	}
	if cfg.FPS > 0 {
		sb.Composition.FPS = cfg.FPS
	}
	if !cfg.SFX {
		sb.Sounds.Enabled = false
	}
	if cfg.MusicVolume >= 0 {
		sb.Music.Volume = cfg.MusicVolume
	}
}

func buildReel(cfg *config.Config) (*reel, error) {
	sb, err := loadStoryboard(cfg.StoryboardPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения раскадровки: %w", err)
	}
	applyOverrides(sb, cfg)
	if err := sb.Validate(); err != nil {
		return nil, fmt.Errorf("раскадровка некорректна:\n%w", err)
	}

	fonts, err := theme.LoadFonts(sb.Fonts)
	if err != nil {
		return nil, err
	}
	lib := assets.NewLibrary(sb.Assets.Dir, sb.Assets.Files, sb.Assets.DPI)
	lib.Preload()

	plan, err := director.NewDirector(sb, lib).Plan()
	if err != nil {
		return nil, err
	}
	fmt.Printf("[*] План: %s, тикер: %d карточек, %d кадров на экране\n",
		plan.Timeline.Composition, len(plan.Ticker), pacing.Total(plan.Ticker))
	return &reel{Storyboard: sb, Plan: plan, Fonts: fonts}, nil
}
