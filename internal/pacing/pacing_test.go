package pacing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func excuses(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("excuse %d", i)
	}
	return items
}

func durations(timings []Timing) []int {
	d := make([]int, len(timings))
	for i, t := range timings {
		d[i] = t.Duration
	}
	return d
}

func TestSCurveDefaultSchedule(t *testing.T) {
	timings := SCurve(excuses(14), 70, DefaultSchedule)

	want := []int{27, 27, 27, 16, 16, 15, 14, 13, 11, 10, 8, 5, 3, 36}
	if diff := cmp.Diff(want, durations(timings)); diff != "" {
		t.Errorf("durations mismatch (-want +got):\n%s", diff)
	}

	if got := Total(timings); got != 228 {
		t.Errorf("total = %d, want 228", got)
	}
	if got := End(timings); got != 298 {
		t.Errorf("end = %d, want 298", got)
	}

	for i, tm := range timings {
		var wantPhase Phase
		switch {
		case i < 3:
			wantPhase = Intro
		case i < 13:
			wantPhase = Accel
		default:
			wantPhase = Brake
		}
		if tm.Phase != wantPhase {
			t.Errorf("item %d: phase %v, want %v", i, tm.Phase, wantPhase)
		}
	}
	t.Logf("ticker runs %d..%d", timings[0].Start, End(timings))
}

func TestSCurveIsContiguous(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 8, 13, 14, 20} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			timings := SCurve(excuses(n), 40, DefaultSchedule)
			if timings[0].Start != 40 {
				t.Errorf("first start = %d, want 40", timings[0].Start)
			}
			for i := 1; i < len(timings); i++ {
				if timings[i].Start != timings[i-1].End() {
					t.Errorf("item %d starts at %d, previous ends at %d", i, timings[i].Start, timings[i-1].End())
				}
			}
			for _, tm := range timings {
				if tm.Duration < DefaultSchedule.AccelMin {
					t.Errorf("item %d lasts %d frames, below the minimum", tm.Index, tm.Duration)
				}
			}
		})
	}
}

func TestSCurveVelocity(t *testing.T) {
	timings := SCurve(excuses(14), 0, DefaultSchedule)
	if timings[0].Velocity != 0.1 {
		t.Errorf("intro velocity = %v, want 0.1", timings[0].Velocity)
	}
	if timings[3].Velocity != 0.3 {
		t.Errorf("first accel velocity = %v, want 0.3", timings[3].Velocity)
	}
	if v := timings[12].Velocity; v < 1-1e-12 || v > 1+1e-12 {
		t.Errorf("last accel velocity = %v, want 1", timings[12].Velocity)
	}
	if timings[13].Velocity != 0 {
		t.Errorf("brake velocity = %v, want 0", timings[13].Velocity)
	}
	for i := 4; i < 13; i++ {
		if timings[i].Velocity < timings[i-1].Velocity {
			t.Errorf("velocity drops at item %d", i)
		}
	}
}

func TestSCurveBrake(t *testing.T) {
	tests := []struct {
		n         int
		wantBrake int // index of the brake item, -1 for none
	}{
		{0, -1},
		{2, -1},
		{3, -1},
		{4, 3},
		{9, 8},
		{14, 13},
		{30, 13},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			timings := SCurve(excuses(tt.n), 0, DefaultSchedule)
			if len(timings) != min(tt.n, 14) {
				t.Fatalf("got %d timings, want %d", len(timings), min(tt.n, 14))
			}
			brake := -1
			for i, tm := range timings {
				if tm.Phase == Brake {
					if brake != -1 {
						t.Fatalf("second brake at %d", i)
					}
					brake = i
				}
			}
			if brake != tt.wantBrake {
				t.Errorf("brake at %d, want %d", brake, tt.wantBrake)
			}
			if brake >= 0 && timings[brake].Duration != 36 {
				t.Errorf("brake lasts %d, want 36", timings[brake].Duration)
			}
		})
	}
}

func TestScheduleValidate(t *testing.T) {
	if err := DefaultSchedule.Validate(); err != nil {
		t.Fatalf("default schedule invalid: %v", err)
	}

	bad := DefaultSchedule
	bad.AccelMin = 0
	bad.BrakeDuration = 0
	bad.MaxItems = 40
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"accel min", "brake duration", "max items"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLinear(t *testing.T) {
	timings := Linear(excuses(4), 100, 6, 20)
	starts := []int{}
	for _, tm := range timings {
		starts = append(starts, tm.Start)
	}
	if diff := cmp.Diff([]int{100, 106, 112, 118}, starts); diff != "" {
		t.Errorf("starts mismatch (-want +got):\n%s", diff)
	}
	if got := End(timings); got != 138 {
		t.Errorf("end = %d, want 138", got)
	}
}

func TestStaggered(t *testing.T) {
	if diff := cmp.Diff([]int{15, 21, 27, 33}, Staggered(4, 15, 6)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestActiveIndex(t *testing.T) {
	timings := SCurve(excuses(14), 70, DefaultSchedule)
	tests := []struct {
		frame int
		want  int
	}{
		{0, -1},
		{69, -1},
		{70, 0},
		{96, 0},
		{97, 1},
		{151, 3},
		{297, 13},
		{400, 13},
	}
	for _, tt := range tests {
		if got := ActiveIndex(timings, tt.frame); got != tt.want {
			t.Errorf("ActiveIndex(%d) = %d, want %d", tt.frame, got, tt.want)
		}
	}
}

func TestEndEmpty(t *testing.T) {
	if got := End(nil); got != 0 {
		t.Errorf("End(nil) = %d", got)
	}
}
