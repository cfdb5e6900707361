package system

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
)

// AudioExtensions: форматы, которые принимает -audio и поиск музыки.
var AudioExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".aac", ".flac"}

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
	}
}

// FindLatest возвращает самый свежий файл в dir с одним из расширений.
// При равном времени изменения побеждает имя, которое больше по алфавиту.
func FindLatest(dir string, extensions ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile, latestName string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExtension(f.Name(), extensions) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime()
		if latestFile == "" || mod.After(latestTime) || (mod.Equal(latestTime) && f.Name() > latestName) {
			latestTime = mod
			latestName = f.Name()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено файлов %s", dir, strings.Join(extensions, ", "))
	}
	return latestFile, nil
}

func FindLatestAudio(dir string) (string, error) {
	return FindLatest(dir, AudioExtensions...)
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func GetAudioDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseDuration(string(out))
}

func parseDuration(out string) (float64, error) {
	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(out), "%f", &duration); err != nil {
		return 0, fmt.Errorf("неожиданный ответ ffprobe %q: %w", out, err)
	}
	return duration, nil
}

var (
	ffmpegListsMu sync.Mutex
	ffmpegLists   = map[string]string{}
)

// ffmpegList кэширует вывод `ffmpeg -encoders` / `ffmpeg -filters`.
func ffmpegList(kind string) string {
	ffmpegListsMu.Lock()
	defer ffmpegListsMu.Unlock()
	if out, ok := ffmpegLists[kind]; ok {
		return out
	}
	out, err := exec.Command("ffmpeg", "-hide_banner", "-"+kind).CombinedOutput()
	if err != nil {
		out = nil
	}
	ffmpegLists[kind] = string(out)
	return string(out)
}

func GetBestH264Encoder() (string, string) {
	// Приоритеты:
	// 1. MacOS (VideoToolbox)
	// 2. NVIDIA (NVENC)
	// 3. Software (libx264)
	return pickEncoder(ffmpegList("encoders"))
}

func pickEncoder(list string) (string, string) {
	encoders := []struct {
		name string
		args string
	}{
		{"h264_videotoolbox", ""},
		{"h264_nvenc", ""},
	}
	for _, enc := range encoders {
		if listed(list, enc.name) {
			return enc.name, enc.args
		}
	}
	return "libx264", ""
}

// CheckFilterSupport сообщает, собран ли ffmpeg с фильтром name
// (drawtext, например, требует libfreetype).
func CheckFilterSupport(name string) bool {
	return listed(ffmpegList("filters"), name)
}

// listed ищет имя во второй колонке вывода ffmpeg -encoders/-filters.
func listed(list, name string) bool {
	for _, line := range strings.Split(list, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}
