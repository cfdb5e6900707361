package video

import (
	"fmt"
	"strings"
)

// Cue: звуковой эффект, который начинается на кадре Frame.
type Cue struct {
	Path   string
	Frame  int
	Volume float64
	Length int // кадров звучания; 0: файл целиком
}

// Mix описывает звуковую дорожку ролика: фоновую музыку и эффекты.
type Mix struct {
	Music        string // пустая строка: без музыки
	MusicVolume  float64
	MusicFadeOut float64 // секунды
	Duration     float64 // длина ролика, секунды
	FPS          int
	Cues         []Cue
}

// Empty сообщает, что дорожка пустая и микшировать нечего.
func (m Mix) Empty() bool { return m.Music == "" && len(m.Cues) == 0 }

// cueTrim обрезает эффект до Length кадров.
func (m Mix) cueTrim(c Cue) string {
	if m.FPS <= 0 || c.Length <= 0 {
		return ""
	}
	return fmt.Sprintf("atrim=duration=%.3f,", float64(c.Length)/float64(m.FPS))
}

// CueDelay переводит кадр эффекта в задержку adelay (мс).
func (m Mix) CueDelay(c Cue) int {
	if m.FPS <= 0 || c.Frame <= 0 {
		return 0
	}
	return c.Frame * 1000 / m.FPS
}

// MixArgs строит команду, которая накладывает музыку и эффекты на готовое
// видео без перекодирования видеопотока. Для пустой дорожки возвращает nil.
func MixArgs(videoPath string, mix Mix, finalPath string) []string {
	if mix.Empty() {
		return nil
	}
	args := []string{"-y", "-i", videoPath}
	var graph []string
	var labels []string
	input := 1

	if mix.Music != "" {
		// Музыка зациклена, чтобы короткий трек не обрывал ролик.
		args = append(args, "-stream_loop", "-1", "-i", mix.Music)
		chain := fmt.Sprintf("[%d:a]volume=%.3f", input, mix.MusicVolume)
		if mix.MusicFadeOut > 0 && mix.Duration > mix.MusicFadeOut {
			chain += fmt.Sprintf(",afade=t=out:st=%.3f:d=%.3f", mix.Duration-mix.MusicFadeOut, mix.MusicFadeOut)
		}
		graph = append(graph, chain+"[music]")
		labels = append(labels, "[music]")
		input++
	}

	for i, c := range mix.Cues {
		args = append(args, "-i", c.Path)
		label := fmt.Sprintf("[sfx%d]", i)
		graph = append(graph, fmt.Sprintf("[%d:a]%sadelay=delays=%d:all=1,volume=%.3f%s", input, mix.cueTrim(c), mix.CueDelay(c), c.Volume, label))
		labels = append(labels, label)
		input++
	}

	out := labels[0]
	if len(labels) > 1 {
		graph = append(graph, fmt.Sprintf("%samix=inputs=%d:duration=longest:normalize=0[aout]", strings.Join(labels, ""), len(labels)))
		out = "[aout]"
	}

	args = append(args,
		"-filter_complex", strings.Join(graph, ";"),
		"-map", "0:v", "-map", out,
		"-c:v", "copy",
		"-c:a", "aac", "-b:a", "192k",
		"-t", fmt.Sprintf("%.3f", mix.Duration),
		finalPath,
	)
	return args
}
