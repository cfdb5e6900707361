package config

import (
	"fmt"
	"strconv"
	"strings"
)

type Config struct {
	StoryboardPath string
	OutputVideo    string
	Width          int
	Height         int
	FPS            int
	Workers        int
	SegmentFrames  int
	FrameFrom      int
	FrameTo        int // exclusive; 0 renders to the end
	AudioPath      string
	MusicVolume    float64 // negative keeps the storyboard volume
	SFX            bool
	Preset         string
	VideoEncoder   string
	Quality        int
	Detector       string
	Debug          bool
	ShowStats      bool
	BuildVersion   string
}

type SegmentParams struct {
	Index         int
	From, To      int // frame range, To exclusive
	Width, Height int
	FPS           int
	TotalFrames   int // length of the whole reel
	Filter        string
	Debug         bool
}

// Frames is the number of frames in the segment.
func (p SegmentParams) Frames() int { return p.To - p.From }

// Duration is the segment length in seconds.
func (p SegmentParams) Duration() float64 {
	if p.FPS <= 0 {
		return 0
	}
	return float64(p.Frames()) / float64(p.FPS)
}

// Presets maps the -preset names to frame sizes.
var Presets = map[string][2]int{
	"9:16": {1080, 1920},
	"4:5":  {1080, 1350},
	"16:9": {1920, 1080},
}

// PresetSize returns the frame size of a preset.
func PresetSize(name string) (width, height int, err error) {
	s, ok := Presets[name]
	if !ok {
		return 0, 0, fmt.Errorf("unknown preset %q (available: 9:16, 4:5, 16:9)", name)
	}
	return s[0], s[1], nil
}

// ParseFrameRange parses "a:b" into a half-open frame range. Either side may
// be empty: ":300" starts at 0 and "120:" runs to the end (to = 0).
func ParseFrameRange(s string) (from, to int, err error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("frame range %q must look like from:to", s)
	}
	if a != "" {
		if from, err = strconv.Atoi(a); err != nil {
			return 0, 0, fmt.Errorf("invalid start frame in %q: %w", s, err)
		}
	}
	if b != "" {
		if to, err = strconv.Atoi(b); err != nil {
			return 0, 0, fmt.Errorf("invalid end frame in %q: %w", s, err)
		}
	}
	if from < 0 || (to != 0 && to <= from) {
		return 0, 0, fmt.Errorf("frame range %q is empty or negative", s)
	}
	return from, to, nil
}

// DefaultQuality picks a quality value that suits the encoder.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // bitrate = Q*100 kbit/s
	case "h264_nvenc":
		return 28
	default:
		return 23 // x264 CRF
	}
}
