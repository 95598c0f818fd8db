package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"previewgen/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "previewgen", "data")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.Catalog != filepath.Join(wantData, "data.json") {
		t.Fatalf("unexpected catalog path: %q", cfg.Paths.Catalog)
	}
	if cfg.Paths.FramesDir != filepath.Join(wantData, "frames") {
		t.Fatalf("unexpected frames dir: %q", cfg.Paths.FramesDir)
	}
	if cfg.Video.PreferredFormat != "best[ext=mp4]/best" {
		t.Fatalf("unexpected preferred format: %q", cfg.Video.PreferredFormat)
	}
	if cfg.Tools.YtDlp != "yt-dlp" || cfg.Tools.FFmpeg != "ffmpeg" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
}

func TestLoadReadsTOMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "previewgen.toml")
	content := `
[paths]
data_dir = "` + dir + `/store"
catalog = "` + dir + `/store/catalog.json"

[video]
source_url = "https://www.youtube.com/watch?v=abc123DEF45"
resolution = "1280x720"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be used, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Video.SourceURL != "https://www.youtube.com/watch?v=abc123DEF45" {
		t.Fatalf("unexpected source url: %q", cfg.Video.SourceURL)
	}
	if cfg.Video.Resolution != "1280x720" {
		t.Fatalf("unexpected resolution: %q", cfg.Video.Resolution)
	}
	if cfg.Video.Container != "mp4" {
		t.Fatalf("expected container default to survive override, got %q", cfg.Video.Container)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestVideoCachePathFollowsCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "previewgen.toml")
	// The catalog lives outside the data directory; cached artifacts follow it.
	content := `
[paths]
data_dir = "` + dir + `/store"
catalog = "` + dir + `/library/catalog.json"

[video]
source_url = "https://youtu.be/abc123DEF45"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := filepath.Join(dir, "library", "abc123DEF45.mp4")
	if got := cfg.VideoCachePath("abc123DEF45"); got != want {
		t.Fatalf("cache path = %q, want %q", got, want)
	}
	if cfg.Paths.FramesDir != filepath.Join(dir, "library", "frames") {
		t.Fatalf("frames dir should sit beside the catalog, got %q", cfg.Paths.FramesDir)
	}
}

func TestValidateRejectsBadResolution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "previewgen.toml")
	content := `
[video]
source_url = "https://youtu.be/abc123DEF45"
resolution = "full-hd"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "video.resolution") {
		t.Fatalf("expected resolution error, got: %v", err)
	}
}

func TestValidateRequiresSourceURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "previewgen.toml")
	if err := os.WriteFile(path, []byte("[video]\nsource_url = \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "video.source_url") {
		t.Fatalf("expected source_url error, got: %v", err)
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[video]") {
		t.Fatal("expected sample to contain a [video] section")
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
