package main

import (
	"testing"

	"github.com/ivlev/hypereel/internal/config"
	"github.com/ivlev/hypereel/internal/director"
	"github.com/ivlev/hypereel/internal/storyboard"
)

func TestApplyOverrides(t *testing.T) {
	sb := storyboard.Default()
	applyOverrides(sb, &config.Config{Width: 1080, Height: 1350, MusicVolume: -1, SFX: false})
	if sb.Composition.Width != 1080 || sb.Composition.Height != 1350 || sb.Composition.FPS != 30 {
		t.Errorf("composition = %+v", sb.Composition)
	}
	if sb.Sounds.Enabled {
		t.Error("-sfx=false did not disable the sounds")
	}
	if sb.Music.Volume != 0.35 {
		t.Errorf("music volume = %v, want the storyboard's", sb.Music.Volume)
	}
}

func TestBuildReelWithDefaultStoryboard(t *testing.T) {
	r, err := buildReel(&config.Config{Width: 540, Height: 960, MusicVolume: -1, SFX: true})
	if err != nil {
		t.Fatal(err)
	}
	c := r.Plan.Timeline.Composition
	if c.Width != 540 || c.Height != 960 || c.DurationInFrames == 0 {
		t.Errorf("composition = %s", c)
	}
	if _, ok := r.Plan.Timeline.Sequence(director.SeqDownload); !ok {
		t.Error("download sequence missing")
	}
	t.Logf("Reel: %s, %d cues", c, len(r.Plan.Cues))
}

func TestBuildReelRejectsOddSize(t *testing.T) {
	if _, err := buildReel(&config.Config{Width: 541, MusicVolume: -1}); err == nil {
		t.Error("odd width accepted")
	}
}
