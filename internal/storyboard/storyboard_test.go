package storyboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/hypereel/internal/scene"
)

func TestDefaultIsValid(t *testing.T) {
	sb := Default()
	if err := sb.Validate(); err != nil {
		t.Fatalf("default storyboard is invalid: %v", err)
	}
	if got := len(sb.Ticker.Excuses); got != 14 {
		t.Errorf("default has %d excuses, want 14", got)
	}
	if got := len(sb.Slides); got != len(scene.SlideKinds()) {
		t.Errorf("default has %d slides, want one per kind (%d)", got, len(scene.SlideKinds()))
	}
	t.Logf("Default: %dx%d @ %d fps, %d slides", sb.Composition.Width, sb.Composition.Height, sb.Composition.FPS, len(sb.Slides))
}

func TestDefaultReturnsCopies(t *testing.T) {
	a := Default()
	a.Ticker.Excuses[0].Text = "changed"
	if b := Default(); b.Ticker.Excuses[0].Text == "changed" {
		t.Error("Default shares state between calls")
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	sb, err := Parse([]byte(`
theme: dark
ticker:
  excuses:
    - just one
    - {text: two, username: sam}
`))
	if err != nil {
		t.Fatal(err)
	}
	if sb.Theme != "dark" {
		t.Errorf("theme = %q", sb.Theme)
	}
	want := []Excuse{{Text: "just one"}, {Text: "two", Username: "sam"}}
	if diff := cmp.Diff(want, sb.Ticker.Excuses); diff != "" {
		t.Errorf("excuses mismatch (-want +got):\n%s", diff)
	}
	if sb.Composition.Width != 1080 || sb.Ticker.Schedule.MaxItems != 14 {
		t.Errorf("defaults lost: %+v, %+v", sb.Composition, sb.Ticker.Schedule)
	}
}

func TestSlideCopyOverrides(t *testing.T) {
	sb, err := Parse([]byte(`
slides:
  - kind: loop
    duration: 90
    copy:
      headline: "Your thumb runs *this* loop."
`))
	if err != nil {
		t.Fatal(err)
	}
	sc, err := sb.Slides[0].Scene()
	if err != nil {
		t.Fatal(err)
	}
	loop, ok := sc.(*scene.LoopSlide)
	if !ok {
		t.Fatalf("scene is %T, want *scene.LoopSlide", sc)
	}
	if loop.Headline != "Your thumb runs *this* loop." {
		t.Errorf("headline = %q", loop.Headline)
	}
	if loop.Subtext != scene.DefaultLoop.Subtext {
		t.Errorf("subtext = %q, want the default", loop.Subtext)
	}
}

func TestValidateReportsEverything(t *testing.T) {
	sb := Default()
	sb.Composition.Width = 1081
	sb.Theme = "neon"
	sb.Ticker.Pacing = "random"
	sb.Slides = append(sb.Slides, Slide{Kind: "carousel", Duration: 0})
	sb.Stats.Items[0].Label = ""
	sb.Music.Volume = 2

	err := sb.Validate()
	if err == nil {
		t.Fatal("Validate accepted a broken storyboard")
	}
	for _, want := range []string{"1081x1920", "neon", "random", "carousel", "duration must be positive", "no label", "music volume"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %q:\n%v", want, err)
		}
	}
}

func TestValidateChecksPoses(t *testing.T) {
	sb := Default()
	sb.Intro.Pose = "dance"
	if err := sb.Validate(); err == nil || !strings.Contains(err.Error(), "dance") {
		t.Errorf("unknown pose not reported: %v", err)
	}
	sb.Assets.Files = map[string]string{"dance": "dance.png"}
	if err := sb.Validate(); err != nil {
		t.Errorf("pose from assets rejected: %v", err)
	}
}

func TestValidateLinearPacing(t *testing.T) {
	sb, err := Parse([]byte("ticker:\n  pacing: linear\n  interval: 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if sb.Ticker.Hold != 28 {
		t.Errorf("hold = %d, want the default 28", sb.Ticker.Hold)
	}
	if err := sb.Validate(); err != nil {
		t.Errorf("linear pacing with the default hold rejected: %v", err)
	}

	sb, err = Parse([]byte("ticker:\n  pacing: linear\n  interval: 4\n  hold: 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := sb.Validate(); err == nil || !strings.Contains(err.Error(), "hold must be positive") {
		t.Errorf("zero hold not reported: %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storyboard.yaml")
	sb := Default()
	sb.Ticker.Excuses[1].Username = "jo"
	if err := Write(sb, path); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sb.Ticker, got.Ticker); diff != "" {
		t.Errorf("ticker mismatch (-want +got):\n%s", diff)
	}
	if got.Reviews.Items[0].Username != "KathyNat14" || got.Download.AppName != "Spool" {
		t.Errorf("inline scene copy lost: %+v / %+v", got.Reviews.Reviews, got.Download.Download)
	}
}

func TestGeneratePath(t *testing.T) {
	path := GeneratePath()
	if !strings.HasPrefix(path, filepath.Join("internal", "storyboards")+string(filepath.Separator)) {
		t.Errorf("path should be in internal/storyboards: %s", path)
	}
	if !strings.Contains(filepath.Base(path), "storyboard_") || filepath.Ext(path) != ".yaml" {
		t.Errorf("unexpected file name: %s", path)
	}
	t.Logf("Generated path: %s", path)
}

func TestFindLatestIn(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "storyboard_2026-02-12_10-00-00.yaml"),
		filepath.Join(dir, "storyboard_2026-02-13_01-00-00.yaml"),
		filepath.Join(dir, "storyboard_2026-02-11_15-30-00.yaml"),
	}
	base := time.Now()
	for i, f := range files {
		if err := os.WriteFile(f, []byte("version: test\n"), 0644); err != nil {
			t.Fatal(err)
		}
		mod := base.Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(f, mod, mod); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	latest, err := FindLatestIn(dir)
	if err != nil {
		t.Fatalf("FindLatestIn failed: %v", err)
	}
	if latest != files[len(files)-1] {
		t.Errorf("latest = %s, want %s", latest, files[len(files)-1])
	}

	if _, err := FindLatestIn(t.TempDir()); err == nil {
		t.Error("empty directory should be an error")
	}
}
