package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directories and files a run touches.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	Catalog   string `toml:"catalog"`
	FramesDir string `toml:"frames_dir"`
	LogDir    string `toml:"log_dir"`
}

// Video contains configuration for the reference video source.
type Video struct {
	SourceURL       string `toml:"source_url"`
	PreferredFormat string `toml:"preferred_format"`
	Resolution      string `toml:"resolution"`
	Container       string `toml:"container"`
}

// Tools contains the external binaries the pipeline shells out to.
type Tools struct {
	YtDlp  string `toml:"ytdlp"`
	FFmpeg string `toml:"ffmpeg"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for previewgen.
//
// Configuration sections by subsystem:
//   - Paths: data directory, catalog file, frames directory, logs
//   - Video: reference video source and format preferences
//   - Tools: yt-dlp and ffmpeg binary names
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Video   Video   `toml:"video"`
	Tools   Tools   `toml:"tools"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/previewgen/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("previewgen.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.FramesDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CatalogBackupPath returns the path the previous catalog is renamed to on save.
func (c *Config) CatalogBackupPath() string {
	return c.Paths.Catalog + ".bak"
}

// VideoCachePath returns where the reference video is cached: beside the
// catalog file, like the frames directory, so relocating the catalog moves
// every generated artifact with it.
func (c *Config) VideoCachePath(videoID string) string {
	return filepath.Join(filepath.Dir(c.Paths.Catalog), videoID+"."+c.Video.Container)
}

// RunLogPath returns the sqlite run-history database location.
func (c *Config) RunLogPath() string {
	return filepath.Join(c.Paths.DataDir, "runs.db")
}

// LockPath returns the instance lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "previewgen.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
