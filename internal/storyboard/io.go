package storyboard

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Dir is where generated storyboards are written and looked up.
var Dir = filepath.Join("internal", "storyboards")

//go:embed default.yaml
var defaultYAML []byte

// Default returns a fresh copy of the built-in storyboard. It panics only if
// the embedded document is broken.
func Default() *Storyboard {
	var sb Storyboard
	if err := yaml.Unmarshal(defaultYAML, &sb); err != nil {
		panic(fmt.Sprintf("embedded storyboard: %v", err))
	}
	return &sb
}

// Parse reads a storyboard from data. Keys the document leaves out keep the
// values of the built-in storyboard.
func Parse(data []byte) (*Storyboard, error) {
	sb := Default()
	if err := yaml.Unmarshal(data, sb); err != nil {
		return nil, err
	}
	return sb, nil
}

// Read reads a storyboard from a YAML file.
func Read(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return sb, nil
}

// Write writes a storyboard to a YAML file, creating its directory.
func Write(sb *Storyboard, path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(sb); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// GeneratePath creates a timestamped storyboard filename in Dir.
func GeneratePath() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(Dir, fmt.Sprintf("storyboard_%s.yaml", timestamp))
}

// FindLatest finds the most recent storyboard in Dir.
func FindLatest() (string, error) {
	return FindLatestIn(Dir)
}

// FindLatestIn finds the most recently modified YAML file in dir.
func FindLatestIn(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read storyboards directory: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var found []candidate
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{filepath.Join(dir, name), info.ModTime()})
	}
	if len(found) == 0 {
		return "", fmt.Errorf("no storyboard files found in %s", dir)
	}

	// Newest first; the name breaks ties so the result is stable.
	sort.Slice(found, func(i, j int) bool {
		if !found[i].mod.Equal(found[j].mod) {
			return found[i].mod.After(found[j].mod)
		}
		return found[i].path > found[j].path
	})
	return found[0].path, nil
}
