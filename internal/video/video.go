package video

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ivlev/hypereel/internal/config"
)

// FrameWriter пишет в w ровно params.Frames() кадров raw RGBA.
type FrameWriter func(w io.Writer) error

type VideoEncoder interface {
	EncodeSegment(ctx context.Context, videoPath string, params config.SegmentParams, encoderName string, quality int, frames FrameWriter) error
	Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string) error
	MixAudio(ctx context.Context, videoPath string, mix Mix, finalPath string) error
}

type FFmpegEncoder struct{}

func (e *FFmpegEncoder) EncodeSegment(
	ctx context.Context,
	videoPath string,
	params config.SegmentParams,
	encoderName string,
	quality int,
	frames FrameWriter,
) error {
	args := SegmentArgs(videoPath, params, encoderName, quality)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	// Кадры идут прямо в stdin, без промежуточных файлов.
	werr := frames(stdin)
	stdin.Close()
	return segmentError(werr, cmd.Wait(), out.String())
}

// segmentError собирает ошибку сегмента. Если ffmpeg упал посреди записи,
// запись ломается с EPIPE, а причина остаётся в логе ffmpeg.
func segmentError(werr, waitErr error, output string) error {
	switch {
	case werr != nil && waitErr != nil:
		return fmt.Errorf("write raw error: %w (ffmpeg: %v)\nLog: %s", werr, waitErr, tail(output, 2000))
	case werr != nil:
		return fmt.Errorf("write raw error: %w", werr)
	case waitErr != nil:
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", waitErr, tail(output, 2000))
	}
	return nil
}

// SegmentArgs строит команду кодирования сегмента из потока rawvideo.
func SegmentArgs(videoPath string, params config.SegmentParams, encoderName string, quality int) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
	}
	if params.Filter != "" {
		args = append(args, "-vf", params.Filter)
	}
	args = append(args,
		"-frames:v", fmt.Sprintf("%d", params.Frames()),
		"-r", fmt.Sprintf("%d", params.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	)
	args = append(args, QualityArgs(encoderName, quality)...)
	return append(args, videoPath)
}

// QualityArgs переводит -quality в параметры конкретного энкодера.
func QualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую. Используем битрейт.
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// ConcatList: содержимое файла для concat demuxer.
func ConcatList(segmentPaths []string) string {
	var b strings.Builder
	for _, p := range segmentPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	return b.String()
}

func ConcatArgs(listPath, finalPath string) []string {
	return []string{"-y", "-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy", finalPath}
}

func (e *FFmpegEncoder) Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string) error {
	if len(segmentPaths) == 0 {
		return fmt.Errorf("нет сегментов для сборки")
	}
	listPath := filepath.Join(tmpDir, "inputs.txt")
	if err := os.WriteFile(listPath, []byte(ConcatList(segmentPaths)), 0644); err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", ConcatArgs(listPath, finalPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat error: %w, output: %s", err, tail(string(out), 2000))
	}
	return nil
}

func (e *FFmpegEncoder) MixAudio(ctx context.Context, videoPath string, mix Mix, finalPath string) error {
	args := MixArgs(videoPath, mix, finalPath)
	if args == nil {
		return fmt.Errorf("нечего микшировать")
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg amix error: %w, output: %s", err, tail(string(out), 2000))
	}
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
