// Package storyboard is the YAML document that describes a reel: its
// format, copy, timing knobs and sound.
package storyboard

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/hypereel/internal/assets"
	"github.com/ivlev/hypereel/internal/pacing"
	"github.com/ivlev/hypereel/internal/scene"
	"github.com/ivlev/hypereel/internal/theme"
)

// Storyboard represents a complete reel.
type Storyboard struct {
	Version     string          `yaml:"version"`
	Composition Composition     `yaml:"composition"`
	Theme       string          `yaml:"theme"`
	Fonts       theme.FontFiles `yaml:"fonts,omitempty"`
	Assets      Assets          `yaml:"assets"`
	Intro       Intro           `yaml:"intro"`
	Ticker      Ticker          `yaml:"ticker"`
	Stats       Stats           `yaml:"stats"`
	Slides      []Slide         `yaml:"slides"`
	Features    []scene.Feature `yaml:"features,omitempty"` // replaces the what_you_get cards
	Reviews     Reviews         `yaml:"reviews"`
	Download    Download        `yaml:"download"`
	Effects     Effects         `yaml:"effects"`
	Music       Music           `yaml:"music"`
	Sounds      Sounds          `yaml:"sounds"`
}

// Composition is the output format.
type Composition struct {
	ID     string `yaml:"id"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
}

// Assets locates the mascot artwork.
type Assets struct {
	Dir   string            `yaml:"dir"`
	DPI   int               `yaml:"dpi,omitempty"`
	Files map[string]string `yaml:"files,omitempty"` // pose -> file, on top of the built-in names
}

// Intro is the opening title. Duration is the frame the ticker starts on.
type Intro struct {
	Title    string        `yaml:"title"`
	Subtitle string        `yaml:"subtitle"`
	Pose     assets.Mascot `yaml:"pose,omitempty"`
	Duration int           `yaml:"duration"`
}

// Pacing modes of the ticker.
const (
	PacingSCurve = "s-curve"
	PacingLinear = "linear"
)

// Ticker is the excuse sequence.
type Ticker struct {
	Excuses   []Excuse         `yaml:"excuses"`
	Pacing    string           `yaml:"pacing"`
	Schedule  pacing.Schedule  `yaml:"schedule"`
	Interval  int              `yaml:"interval,omitempty"` // linear pacing only
	Hold      int              `yaml:"hold,omitempty"`     // linear pacing only
	Gap       int              `yaml:"gap"`                // frames between the last card and the stats
	Zoom      int              `yaml:"zoom"`               // length of the final zoom-out
	Reactions []scene.Reaction `yaml:"reactions"`
}

// Excuse is one ticker quote. In YAML it is either a plain string or a
// mapping with a username.
type Excuse struct {
	Text     string `yaml:"text"`
	Username string `yaml:"username,omitempty"`
}

func (e *Excuse) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		return n.Decode(&e.Text)
	}
	type plain Excuse
	return n.Decode((*plain)(e))
}

func (e Excuse) MarshalYAML() (interface{}, error) {
	if e.Username == "" {
		return e.Text, nil
	}
	type plain Excuse
	return plain(e), nil
}

// Texts returns the quotes of the ticker.
func (t Ticker) Texts() []string {
	out := make([]string, len(t.Excuses))
	for i, e := range t.Excuses {
		out[i] = e.Text
	}
	return out
}

// Stats is the finale after the ticker.
type Stats struct {
	Header   string        `yaml:"header"`
	Items    []scene.Stat  `yaml:"items"`
	Stagger  int           `yaml:"stagger"`
	Duration int           `yaml:"duration"`
	Pose     assets.Mascot `yaml:"pose,omitempty"`
}

// Slide is one explainer slide. Copy overrides the fields of the slide's
// default copy; fields left out keep their default.
type Slide struct {
	Kind     string    `yaml:"kind"`
	Duration int       `yaml:"duration"`
	Copy     yaml.Node `yaml:"copy,omitempty"`
}

// Scene builds the slide's component.
func (s Slide) Scene() (scene.Scene, error) {
	sc, err := scene.NewSlide(s.Kind)
	if err != nil {
		return nil, err
	}
	if s.Copy.Kind == 0 {
		return sc, nil
	}
	if err := s.Copy.Decode(sc); err != nil {
		return nil, fmt.Errorf("invalid copy for %s slide: %w", s.Kind, err)
	}
	return sc, nil
}

// Reviews is the testimonial scene.
type Reviews struct {
	scene.Reviews `yaml:",inline"`
	Duration      int `yaml:"duration"`
}

// Download is the closing call to action.
type Download struct {
	scene.Download `yaml:",inline"`
	Duration       int `yaml:"duration"`
}

// Effects toggles the full-frame effects.
type Effects struct {
	Flash    bool `yaml:"flash"`    // white flash when the finale and the CTA land
	Shake    bool `yaml:"shake"`    // camera shake on the flashes
	Vignette bool `yaml:"vignette"` // accent vignette over the whole reel
	FadeOut  int  `yaml:"fade_out"` // frames of fade to black at the end
	FadeIn   int  `yaml:"fade_in"`  // frames of fade from black at the start
}

// Music is the background track.
type Music struct {
	Path    string  `yaml:"path,omitempty"`
	Volume  float64 `yaml:"volume"`
	FadeOut float64 `yaml:"fade_out"` // seconds
}

// Sounds are the effect samples cued by the timeline.
type Sounds struct {
	Enabled bool    `yaml:"enabled"`
	Dir     string  `yaml:"dir"`
	Volume  float64 `yaml:"volume"` // master gain on top of the per-sound volumes
	Pop     Sound   `yaml:"pop"`
	Whoosh  Sound   `yaml:"whoosh"`
	Bling   Sound   `yaml:"bling"`
	Chime   Sound   `yaml:"chime"`
}

// Sound is one sample.
type Sound struct {
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Length int     `yaml:"length,omitempty"` // frames; 0 plays the whole sample
}
