package engine

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/hypereel/internal/analyzer"
	"github.com/ivlev/hypereel/internal/composition"
	"github.com/ivlev/hypereel/internal/config"
	"github.com/ivlev/hypereel/internal/effects"
	"github.com/ivlev/hypereel/internal/paint"
	"github.com/ivlev/hypereel/internal/scene"
	"github.com/ivlev/hypereel/internal/theme"
	"github.com/ivlev/hypereel/internal/video"
)

func TestSplitFrames(t *testing.T) {
	tests := []struct {
		from, to, size int
		want           []Segment
	}{
		{0, 200, 90, []Segment{{0, 90}, {90, 180}, {180, 200}}},
		{30, 60, 90, []Segment{{30, 60}}},
		{0, 180, 90, []Segment{{0, 90}, {90, 180}}},
		{0, 100, 0, []Segment{{0, 90}, {90, 100}}},
		{10, 10, 90, nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, SplitFrames(tt.from, tt.to, tt.size)); diff != "" {
			t.Errorf("SplitFrames(%d, %d, %d) (-want +got):\n%s", tt.from, tt.to, tt.size, diff)
		}
	}
}

// fakeEncoder records what the pipeline hands to ffmpeg.
type fakeEncoder struct {
	mu      sync.Mutex
	bytes   map[int]int
	filters map[int]string
	concat  []string
	mixed   *video.Mix
	failSeg int
}

func (e *fakeEncoder) EncodeSegment(ctx context.Context, path string, params config.SegmentParams, enc string, q int, frames video.FrameWriter) error {
	if params.Index == e.failSeg {
		return errors.New("boom")
	}
	n := &countWriter{}
	if err := frames(n); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bytes[params.Index] = n.n
	e.filters[params.Index] = params.Filter
	return nil
}

func (e *fakeEncoder) Concatenate(ctx context.Context, paths []string, final, tmp string) error {
	e.concat = paths
	return os.WriteFile(final, []byte("video"), 0644)
}

func (e *fakeEncoder) MixAudio(ctx context.Context, videoPath string, mix video.Mix, final string) error {
	e.mixed = &mix
	return os.WriteFile(final, []byte("video+audio"), 0644)
}

type countWriter struct{ n int }

func (w *countWriter) Write(b []byte) (int, error) { w.n += len(b); return len(b), nil }

func testTimeline(frames int) *composition.Timeline {
	return &composition.Timeline{
		Composition: composition.Composition{ID: "Test", Width: 36, Height: 64, FPS: 30, DurationInFrames: frames},
		Palette:     theme.Clean,
	}
}

func newProject(t *testing.T, cfg *config.Config, frames int) (*VideoProject, *fakeEncoder) {
	t.Helper()
	enc := &fakeEncoder{bytes: map[int]int{}, filters: map[int]string{}, failSeg: -1}
	cfg.OutputVideo = filepath.Join(t.TempDir(), "out.mp4")
	cfg.VideoEncoder = "libx264"
	return NewVideoProject(cfg, testTimeline(frames), theme.DefaultFonts(), enc, effects.SegmentFilter{}), enc
}

func TestRunStreamsEveryFrame(t *testing.T) {
	p, enc := newProject(t, &config.Config{Workers: 3, SegmentFrames: 10}, 25)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	frame := 36 * 64 * 4
	want := map[int]int{0: 10 * frame, 1: 10 * frame, 2: 5 * frame}
	if diff := cmp.Diff(want, enc.bytes); diff != "" {
		t.Errorf("bytes per segment (-want +got):\n%s", diff)
	}
	if len(enc.concat) != 3 || filepath.Base(enc.concat[2]) != "s0002.mp4" {
		t.Errorf("concat order = %v", enc.concat)
	}
	if enc.filters[0] != "scale=36:64,format=yuv420p" {
		t.Errorf("filter = %q", enc.filters[0])
	}
	if enc.mixed != nil {
		t.Error("audio mixed without a soundtrack")
	}
	if _, err := os.Stat(p.Config.OutputVideo); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunFrameRange(t *testing.T) {
	p, enc := newProject(t, &config.Config{Workers: 2, SegmentFrames: 10, FrameFrom: 5, FrameTo: 12}, 25)
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(enc.bytes) != 1 || enc.bytes[0] != 7*36*64*4 {
		t.Errorf("bytes = %v, want one segment of 7 frames", enc.bytes)
	}

	p, _ = newProject(t, &config.Config{FrameFrom: 30}, 25)
	if err := p.Run(context.Background()); err == nil {
		t.Error("range past the end accepted")
	}
}

func TestRunFailsOnSegmentError(t *testing.T) {
	p, enc := newProject(t, &config.Config{Workers: 2, SegmentFrames: 10}, 30)
	enc.failSeg = 1
	if err := p.Run(context.Background()); err == nil {
		t.Fatal("a failing segment did not fail the render")
	}
	if enc.concat != nil {
		t.Error("partial output was concatenated")
	}
}

// Only the cue inside the range survives, shifted to the range start.
func TestRunMixesAudio(t *testing.T) {
	dir := t.TempDir()
	pop := filepath.Join(dir, "pop.mp3")
	if err := os.WriteFile(pop, nil, 0644); err != nil {
		t.Fatal(err)
	}
	p, enc := newProject(t, &config.Config{Workers: 1, SegmentFrames: 30, FrameFrom: 10}, 40)
	p.Mix = video.Mix{Cues: []video.Cue{
		{Path: pop, Frame: 5, Volume: 1},
		{Path: pop, Frame: 20, Volume: 1},
		{Path: filepath.Join(dir, "missing.mp3"), Frame: 25, Volume: 1},
	}}
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if enc.mixed == nil {
		t.Fatal("soundtrack not mixed")
	}
	want := []video.Cue{{Path: pop, Frame: 10, Volume: 1}}
	if diff := cmp.Diff(want, enc.mixed.Cues); diff != "" {
		t.Errorf("cues (-want +got):\n%s", diff)
	}
	if enc.mixed.Duration != 1 || enc.mixed.FPS != 30 {
		t.Errorf("mix duration %v @ %d fps, want 1s @ 30", enc.mixed.Duration, enc.mixed.FPS)
	}
}

func TestRenderStill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stills", "frame.png")
	if err := RenderStill(testTimeline(10), theme.DefaultFonts(), 3, path); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("still not written: %v", err)
	}
	if err := RenderStill(testTimeline(10), theme.DefaultFonts(), 10, path); err == nil {
		t.Error("frame past the end accepted")
	}
}

func TestCheckSafeArea(t *testing.T) {
	tl := testTimeline(60)
	tl.Composition.Width, tl.Composition.Height = 108, 192
	tl.Sequences = []composition.Sequence{{
		Name:     "caption",
		From:     30,
		Duration: 30,
		Scene: scene.Func(func(p *paint.Painter, c scene.Context) {
			// A bar in the bottom 10% of the canvas, under the caption overlay.
			p.FillRect(c.Width*0.2, c.Height*0.88, c.Width*0.6, c.Height*0.06, color.White)
		}),
	}}

	check, err := analyzer.NewSafeAreaCheck("contrast")
	if err != nil {
		t.Fatal(err)
	}
	got, err := CheckSafeArea(context.Background(), tl, theme.DefaultFonts(), check, 15, 2)
	if err != nil {
		t.Fatal(err)
	}
	var frames []int
	for _, v := range got {
		frames = append(frames, v.Frame)
	}
	if diff := cmp.Diff([]int{30, 45}, frames); diff != "" {
		t.Errorf("frames with violations (-want +got):\n%s", diff)
	}
}
