package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	// EnvConfig names the TOML file to load.
	EnvConfig = "GLSCOPE_CONFIG"
	// EnvLogLevel overrides the configured log level.
	EnvLogLevel = "GLSCOPE_LOG_LEVEL"
)

// WindowSettings holds the demo window and context configuration.
type WindowSettings struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Title      string     `toml:"title"`
	GLMajor    int        `toml:"gl_major"`
	GLMinor    int        `toml:"gl_minor"`
	VSync      bool       `toml:"vsync"`
	ClearColor [4]float32 `toml:"clear_color"`
	LogLevel   string     `toml:"log_level"`
	// SlowFrameMs is the frame time above which the demo logs its
	// profiling totals.
	SlowFrameMs float64 `toml:"slow_frame_ms"`
}

// Default returns the settings used when no file is given.
func Default() WindowSettings {
	return WindowSettings{
		Width:       800,
		Height:      600,
		Title:       "glscope",
		GLMajor:     4,
		GLMinor:     1,
		VSync:       true,
		ClearColor:  [4]float32{0.2, 0.3, 0.3, 1.0},
		LogLevel:    "info",
		SlowFrameMs: 50,
	}
}

var (
	mu      sync.RWMutex
	current = Default()
)

// Current returns the active settings.
func Current() WindowSettings {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set clamps s and makes it the active settings.
func Set(s WindowSettings) {
	clamp(&s)
	mu.Lock()
	current = s
	mu.Unlock()
}

func clamp(s *WindowSettings) {
	s.Width = clampInt(s.Width, 64, 7680)
	s.Height = clampInt(s.Height, 64, 4320)
	// The wrappers target the 3.3 core profile.
	if s.GLMajor < 3 || (s.GLMajor == 3 && s.GLMinor < 3) {
		s.GLMajor, s.GLMinor = 3, 3
	}
	if s.GLMajor > 4 {
		s.GLMajor = 4
	}
	s.GLMinor = clampInt(s.GLMinor, 0, 6)
	for i, c := range s.ClearColor {
		if c < 0 {
			s.ClearColor[i] = 0
		} else if c > 1 {
			s.ClearColor[i] = 1
		}
	}
	if s.Title == "" {
		s.Title = Default().Title
	}
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		s.LogLevel = Default().LogLevel
	}
	if s.SlowFrameMs <= 0 {
		s.SlowFrameMs = Default().SlowFrameMs
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Decode reads settings from a TOML file. Keys missing from the file
// keep their default values.
func Decode(path string) (WindowSettings, error) {
	s := Default()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return WindowSettings{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	clamp(&s)
	return s, nil
}

// Load reads the optional env files, then the TOML file named by
// GLSCOPE_CONFIG if set, applies GLSCOPE_LOG_LEVEL and makes the result
// current. Missing env files are ignored.
func Load(envFiles ...string) (WindowSettings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return WindowSettings{}, fmt.Errorf("load env %s: %w", f, err)
		}
	}

	s := Default()
	if path := os.Getenv(EnvConfig); path != "" {
		var err error
		if s, err = Decode(path); err != nil {
			return WindowSettings{}, err
		}
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		s.LogLevel = lvl
	}
	Set(s)
	return Current(), nil
}

// Save writes s to path as TOML.
func Save(path string, s WindowSettings) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("encode config %s: %w", path, err)
	}
	return nil
}
