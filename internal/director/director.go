// Package director turns a storyboard into a timeline: which scene plays
// when, the effect triggers and the sound-effect cues.
package director

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/composition"
	"github.com/ivlev/hypereel/internal/effects"
	"github.com/ivlev/hypereel/internal/pacing"
	"github.com/ivlev/hypereel/internal/scene"
	"github.com/ivlev/hypereel/internal/storyboard"
	"github.com/ivlev/hypereel/internal/theme"
	"github.com/ivlev/hypereel/internal/video"
)

// Sequence names.
const (
	SeqIntro    = "intro"
	SeqTicker   = "ticker"
	SeqZoom     = "final-zoom"
	SeqStats    = "stats"
	SeqReviews  = "reviews"
	SeqDownload = "download"
	slidePrefix = "slide:"
)

const (
	zoomLead     = 5 // the zoom starts this many frames before the stats
	popJitter    = 0.05
	vignetteBase = 0.35
)

// SlideSequence is the sequence name of a slide kind.
func SlideSequence(kind string) string { return slidePrefix + kind }

// Director plans reels.
type Director struct {
	Storyboard *storyboard.Storyboard
	Assets     *assets.Library
	Overlap    int  // frames a finale scene stays under the next one
	SFX        bool // cue sound effects
}

// NewDirector creates a Director with default settings.
func NewDirector(sb *storyboard.Storyboard, lib *assets.Library) *Director {
	return &Director{
		Storyboard: sb,
		Assets:     lib,
		Overlap:    15,
		SFX:        sb.Sounds.Enabled,
	}
}

// Plan is a planned reel.
type Plan struct {
	Timeline      *composition.Timeline
	Cues          []video.Cue
	Ticker        []pacing.Timing
	StatsStart    int
	DownloadStart int
}

// Mix returns the soundtrack of the plan with the given music.
func (pl *Plan) Mix(music string, volume, fadeOut float64) video.Mix {
	c := pl.Timeline.Composition
	return video.Mix{
		Music:        music,
		MusicVolume:  volume,
		MusicFadeOut: fadeOut,
		Duration:     c.Seconds(),
		FPS:          c.FPS,
		Cues:         pl.Cues,
	}
}

// Timings schedules the ticker cards of a storyboard.
func Timings(sb *storyboard.Storyboard) []pacing.Timing {
	t := sb.Ticker
	base := sb.Intro.Duration
	if t.Pacing == storyboard.PacingLinear {
		return pacing.Linear(t.Texts(), base, t.Interval, t.Hold)
	}
	return pacing.SCurve(t.Texts(), base, t.Schedule)
}

// Plan lays the storyboard out on the timeline.
func (d *Director) Plan() (*Plan, error) {
	sb := d.Storyboard
	pal, err := theme.Lookup(sb.Theme)
	if err != nil {
		return nil, err
	}

	timings := Timings(sb)
	pl := &Plan{Ticker: timings}
	tl := &composition.Timeline{
		Composition: composition.Composition{
			ID:     sb.Composition.ID,
			Width:  sb.Composition.Width,
			Height: sb.Composition.Height,
			FPS:    sb.Composition.FPS,
		},
		Palette: pal,
		Assets:  d.Assets,
	}
	pl.Timeline = tl

	intro := &scene.Intro{Title: sb.Intro.Title, Subtitle: sb.Intro.Subtitle, Pose: sb.Intro.Pose}
	base := sb.Intro.Duration

	ss := base
	if len(timings) > 0 {
		ss = pacing.End(timings) + sb.Ticker.Gap
		tl.Sequences = append(tl.Sequences,
			composition.Sequence{
				Name:     SeqTicker,
				From:     0,
				Duration: max(1, ss-zoomLead),
				FadeOut:  15,
				Scene:    d.ticker(intro, timings, ss),
			},
			composition.Sequence{
				Name:     SeqZoom,
				From:     max(0, ss-zoomLead),
				Duration: sb.Ticker.Zoom + 1,
				Scene:    scene.FinalZoom{Text: timings[len(timings)-1].Text, Duration: sb.Ticker.Zoom},
			},
		)
	} else {
		tl.Sequences = append(tl.Sequences, composition.Sequence{
			Name:     SeqIntro,
			Duration: base + d.Overlap,
			FadeOut:  d.Overlap,
			Scene:    intro,
		})
	}
	pl.StatsStart = ss

	// Финал: статистика, слайды, отзывы и призыв идут встык с нахлёстом.
	finale := []composition.Sequence{{
		Name:     SeqStats,
		Duration: sb.Stats.Duration,
		Scene: scene.StatsFinale{
			Header:  sb.Stats.Header,
			Stats:   sb.Stats.Items,
			Stagger: sb.Stats.Stagger,
			Pose:    sb.Stats.Pose,
		},
	}}
	for i, s := range sb.Slides {
		sc, err := s.Scene()
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		if wyg, ok := sc.(*scene.WhatYouGetSlide); ok && len(sb.Features) > 0 {
			wyg.Features = append([]scene.Feature(nil), sb.Features...)
		}
		finale = append(finale, composition.Sequence{Name: SlideSequence(s.Kind), Duration: s.Duration, Scene: sc})
	}
	reviews := sb.Reviews.Reviews
	download := sb.Download.Download
	finale = append(finale,
		composition.Sequence{Name: SeqReviews, Duration: sb.Reviews.Duration, Scene: &reviews},
		composition.Sequence{Name: SeqDownload, Duration: sb.Download.Duration, Scene: &download},
	)

	from := ss
	for i := range finale {
		s := &finale[i]
		if s.Duration <= 0 {
			continue
		}
		s.From = from
		from += s.Duration
		if i < len(finale)-1 {
			s.Duration += d.Overlap
			s.FadeOut = d.Overlap
		}
		if s.Name == SeqDownload {
			pl.DownloadStart = s.From
		}
	}
	tl.Sequences = append(tl.Sequences, finale...)
	tl.Composition.DurationInFrames = from

	tl.Background = scene.Background{Spool: true, FocusAt: max(0, ss-zoomLead)}
	d.planEffects(pl)
	if d.SFX {
		pl.Cues = d.cues(pl, finale)
	}
	return pl, nil
}

func (d *Director) ticker(intro *scene.Intro, timings []pacing.Timing, ss int) scene.Ticker {
	sb := d.Storyboard
	cards := make([]scene.ExcuseCard, len(timings))
	blurFrom, blurTo := -1, 0
	for i, t := range timings {
		cards[i] = scene.ExcuseCard{Text: t.Text, Username: sb.Ticker.Excuses[i].Username, Timing: t}
		if t.Phase == pacing.Accel {
			if blurFrom < 0 {
				blurFrom = t.Start
			}
			blurTo = t.End()
		}
	}
	blurFrom = max(0, blurFrom)
	return scene.Ticker{
		Intro:      intro,
		IntroOut:   sb.Intro.Duration,
		Cards:      cards,
		Reactions:  sb.Ticker.Reactions,
		MascotFrom: sb.Intro.Duration,
		MascotTo:   ss,
		BlurFrom:   blurFrom,
		BlurTo:     blurTo,
	}
}

func (d *Director) planEffects(pl *Plan) {
	fx := d.Storyboard.Effects
	tl := pl.Timeline
	var triggers []int
	triggers = append(triggers, pl.StatsStart)
	if pl.DownloadStart > 0 {
		triggers = append(triggers, pl.DownloadStart)
	}
	if fx.Vignette {
		tl.Effects = append(tl.Effects, effects.Vignette{Intensity: vignetteBase, Tint: tl.Palette})
	}
	if fx.Flash {
		tl.Effects = append(tl.Effects, effects.Flash{Triggers: triggers})
	}
	if fx.Shake {
		tl.Shake = effects.Shake{Triggers: triggers, Intensity: 1}
	}
	if fx.FadeIn > 0 || fx.FadeOut > 0 {
		tl.Effects = append(tl.Effects, effects.Fade{In: fx.FadeIn, Out: fx.FadeOut, Total: tl.Composition.DurationInFrames})
	}
}

func (d *Director) cues(pl *Plan, finale []composition.Sequence) []video.Cue {
	snd := d.Storyboard.Sounds
	var cues []video.Cue
	add := func(s storyboard.Sound, frame int, volume float64) {
		if s.File == "" || volume <= 0 {
			return
		}
		cues = append(cues, video.Cue{
			Path:   filepath.Join(snd.Dir, s.File),
			Frame:  frame,
			Volume: volume * snd.Volume,
			Length: s.Length,
		})
	}

	for i, t := range pl.Ticker {
		if t.Phase != pacing.Intro && t.Phase != pacing.Brake {
			continue
		}
		// Разброс громкости детерминирован: зерном служит номер карточки.
		r := rand.New(rand.NewSource(int64(i)))
		add(snd.Pop, t.Start, max(0, snd.Pop.Volume+(r.Float64()*2-1)*popJitter))
	}
	for _, s := range finale {
		if s.Duration > 0 && strings.HasPrefix(s.Name, slidePrefix) {
			add(snd.Whoosh, s.From, snd.Whoosh.Volume)
		}
	}
	add(snd.Bling, pl.StatsStart, snd.Bling.Volume)
	if pl.DownloadStart > 0 {
		add(snd.Chime, pl.DownloadStart, snd.Chime.Volume)
	}
	return cues
}
