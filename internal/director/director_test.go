package director

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/composition"
	"github.com/ivlev/hypereel/internal/pacing"
	"github.com/ivlev/hypereel/internal/scene"
	"github.com/ivlev/hypereel/internal/storyboard"
)

func plan(t *testing.T, sb *storyboard.Storyboard) *Plan {
	t.Helper()
	d := NewDirector(sb, assets.NewLibrary(t.TempDir(), assets.DefaultFiles, 72))
	pl, err := d.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	return pl
}

func names(seqs []composition.Sequence) []string {
	out := make([]string, len(seqs))
	for i, s := range seqs {
		out[i] = s.Name
	}
	return out
}

func TestPlanDefault(t *testing.T) {
	sb := storyboard.Default()
	pl := plan(t, sb)
	tl := pl.Timeline

	want := []string{SeqTicker, SeqZoom, SeqStats}
	for _, s := range sb.Slides {
		want = append(want, SlideSequence(s.Kind))
	}
	want = append(want, SeqReviews, SeqDownload)
	if diff := cmp.Diff(want, names(tl.Sequences)); diff != "" {
		t.Fatalf("sequences (-want +got):\n%s", diff)
	}

	ss := pacing.End(pl.Ticker) + sb.Ticker.Gap
	if pl.StatsStart != ss {
		t.Errorf("stats start = %d, want %d", pl.StatsStart, ss)
	}
	ticker, _ := tl.Sequence(SeqTicker)
	zoom, _ := tl.Sequence(SeqZoom)
	if ticker.End() != ss-5 || zoom.From != ss-5 || zoom.Duration != sb.Ticker.Zoom+1 {
		t.Errorf("ticker ends %d, zoom %d+%d; stats start %d", ticker.End(), zoom.From, zoom.Duration, ss)
	}

	// The finale runs back to back, each scene overlapping the next.
	finale := tl.Sequences[2:]
	for i := 1; i < len(finale); i++ {
		prev, cur := finale[i-1], finale[i]
		if cur.From != prev.End()-15 {
			t.Errorf("%s starts at %d, want %d (end of %s minus overlap)", cur.Name, cur.From, prev.End()-15, prev.Name)
		}
	}
	last := finale[len(finale)-1]
	if last.FadeOut != 0 || tl.Composition.DurationInFrames != last.End() {
		t.Errorf("last sequence %+v, total %d", last, tl.Composition.DurationInFrames)
	}
	if pl.DownloadStart != last.From {
		t.Errorf("download start = %d, want %d", pl.DownloadStart, last.From)
	}
	t.Logf("Plan: %s; stats at %d, download at %d", tl.Composition, pl.StatsStart, pl.DownloadStart)
}

func TestPlanCues(t *testing.T) {
	sb := storyboard.Default()
	pl := plan(t, sb)

	count := map[string]int{}
	for _, c := range pl.Cues {
		count[filepath.Base(c.Path)]++
		if !strings.HasPrefix(c.Path, sb.Sounds.Dir) {
			t.Errorf("cue %s outside the sounds dir", c.Path)
		}
	}
	want := map[string]int{"pop.mp3": 4, "whoosh.mp3": len(sb.Slides), "bling.mp3": 1, "chime.mp3": 1}
	if diff := cmp.Diff(want, count); diff != "" {
		t.Errorf("cue counts (-want +got):\n%s", diff)
	}

	lengths := map[string]int{"pop.mp3": 15, "whoosh.mp3": 30, "bling.mp3": 90, "chime.mp3": 90}
	for _, c := range pl.Cues {
		if want := lengths[filepath.Base(c.Path)]; c.Length != want {
			t.Errorf("%s at %d is cut at %d frames, want %d", filepath.Base(c.Path), c.Frame, c.Length, want)
		}
	}

	for _, c := range pl.Cues {
		switch filepath.Base(c.Path) {
		case "pop.mp3":
			if math.Abs(c.Volume-sb.Sounds.Pop.Volume) > popJitter+1e-9 {
				t.Errorf("pop at %d has volume %v", c.Frame, c.Volume)
			}
		case "bling.mp3":
			if c.Frame != pl.StatsStart {
				t.Errorf("bling at %d, want %d", c.Frame, pl.StatsStart)
			}
		case "chime.mp3":
			if c.Frame != pl.DownloadStart {
				t.Errorf("chime at %d, want %d", c.Frame, pl.DownloadStart)
			}
		}
	}

	again := plan(t, storyboard.Default())
	if diff := cmp.Diff(pl.Cues, again.Cues); diff != "" {
		t.Errorf("cues are not deterministic (-first +second):\n%s", diff)
	}
}

func TestPlanWithoutExcuses(t *testing.T) {
	sb := storyboard.Default()
	sb.Ticker.Excuses = nil
	pl := plan(t, sb)

	if got := pl.Timeline.Sequences[0].Name; got != SeqIntro {
		t.Errorf("first sequence = %s, want %s", got, SeqIntro)
	}
	if _, ok := pl.Timeline.Sequence(SeqTicker); ok {
		t.Error("ticker planned without excuses")
	}
	if pl.StatsStart != sb.Intro.Duration {
		t.Errorf("stats start = %d, want the end of the intro (%d)", pl.StatsStart, sb.Intro.Duration)
	}
	for _, c := range pl.Cues {
		if filepath.Base(c.Path) == "pop.mp3" {
			t.Errorf("pop cued at %d without cards", c.Frame)
		}
	}
}

func TestPlanFeaturesOverride(t *testing.T) {
	sb := storyboard.Default()
	sb.Features = []scene.Feature{{Icon: scene.IconTarget, Title: "Focus", Subtitle: "Mode"}}
	pl := plan(t, sb)

	seq, ok := pl.Timeline.Sequence(SlideSequence(scene.KindWhatYouGet))
	if !ok {
		t.Fatal("what_you_get slide missing")
	}
	wyg, ok := seq.Scene.(*scene.WhatYouGetSlide)
	if !ok {
		t.Fatalf("scene is %T", seq.Scene)
	}
	if diff := cmp.Diff(sb.Features, wyg.Features); diff != "" {
		t.Errorf("features (-want +got):\n%s", diff)
	}
}

func TestPlanEffectsAndSFXToggles(t *testing.T) {
	sb := storyboard.Default()
	sb.Effects = storyboard.Effects{}
	d := NewDirector(sb, assets.NewLibrary(t.TempDir(), assets.DefaultFiles, 72))
	d.SFX = false
	pl, err := d.Plan()
	if err != nil {
		t.Fatal(err)
	}
	if len(pl.Timeline.Effects) != 0 || pl.Timeline.Shake != nil {
		t.Errorf("effects planned while disabled: %v, %v", pl.Timeline.Effects, pl.Timeline.Shake)
	}
	if len(pl.Cues) != 0 {
		t.Errorf("%d cues with sound effects off", len(pl.Cues))
	}
}

func TestPlanMix(t *testing.T) {
	pl := plan(t, storyboard.Default())
	mix := pl.Mix("music.mp3", 0.35, 2)
	if mix.Duration != pl.Timeline.Composition.Seconds() || mix.FPS != 30 || len(mix.Cues) != len(pl.Cues) {
		t.Errorf("mix = %+v", mix)
	}
}

func TestPlanUnknownTheme(t *testing.T) {
	sb := storyboard.Default()
	sb.Theme = "neon"
	d := NewDirector(sb, nil)
	if _, err := d.Plan(); err == nil {
		t.Error("unknown theme accepted")
	}
}

func TestLinearPacing(t *testing.T) {
	sb := storyboard.Default()
	sb.Ticker.Pacing = storyboard.PacingLinear
	sb.Ticker.Interval, sb.Ticker.Hold = 10, 20
	ts := Timings(sb)
	if len(ts) != len(sb.Ticker.Excuses) || ts[1].Start-ts[0].Start != 10 || ts[0].Start != sb.Intro.Duration {
		t.Errorf("linear timings = %+v", ts[:2])
	}
}
