package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetClamps(t *testing.T) {
	defer Set(Default())

	Set(WindowSettings{
		Width:      10,
		Height:     100000,
		GLMajor:    2,
		GLMinor:    1,
		ClearColor: [4]float32{-1, 0.5, 2, 1},
		LogLevel:   "loud",
	})
	s := Current()
	if s.Width != 64 || s.Height != 4320 {
		t.Errorf("Expected size clamped to 64x4320, got %dx%d", s.Width, s.Height)
	}
	if s.GLMajor != 3 || s.GLMinor != 3 {
		t.Errorf("Expected GL 3.3, got %d.%d", s.GLMajor, s.GLMinor)
	}
	if s.ClearColor != [4]float32{0, 0.5, 1, 1} {
		t.Errorf("Expected clear colour clamped, got %v", s.ClearColor)
	}
	if s.LogLevel != "info" || s.Title != "glscope" || s.SlowFrameMs != 50 {
		t.Errorf("Expected defaults for invalid fields, got %+v", s)
	}
}

func TestDecodeKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rect.toml")
	data := "width = 1024\ntitle = \"rect\"\nclear_color = [0.0, 0.0, 0.0, 1.0]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Width != 1024 || s.Title != "rect" {
		t.Errorf("Expected file values, got %+v", s)
	}
	if s.Height != 600 || !s.VSync || s.GLMajor != 4 {
		t.Errorf("Expected defaults for missing keys, got %+v", s)
	}
}

func TestSaveDecodeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.toml")
	want := Default()
	want.Title = "saved"
	want.VSync = false
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	defer Set(Default())
	dir := t.TempDir()
	cfg := filepath.Join(dir, "rect.toml")
	if err := os.WriteFile(cfg, []byte("height = 480\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	env := filepath.Join(dir, "test.env")
	if err := os.WriteFile(env, []byte(EnvConfig+"="+cfg+"\n"+EnvLogLevel+"=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, "")
	os.Unsetenv(EnvConfig)
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)

	s, err := Load(env, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Height != 480 || s.LogLevel != "debug" {
		t.Errorf("Expected env file values, got %+v", s)
	}
	if Current() != s {
		t.Errorf("Expected loaded settings to be current")
	}
}

func TestDecodeBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("width = \"wide\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(path); err == nil {
		t.Errorf("Expected error for mistyped width")
	}
}
