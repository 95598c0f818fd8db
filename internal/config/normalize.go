package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVideo()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}

	// Catalog and frames default to locations inside the data directory.
	if strings.TrimSpace(c.Paths.Catalog) == "" {
		c.Paths.Catalog = filepath.Join(c.Paths.DataDir, "data.json")
	}
	if c.Paths.Catalog, err = expandPath(c.Paths.Catalog); err != nil {
		return fmt.Errorf("paths.catalog: %w", err)
	}

	if strings.TrimSpace(c.Paths.FramesDir) == "" {
		c.Paths.FramesDir = filepath.Join(filepath.Dir(c.Paths.Catalog), "frames")
	}
	if c.Paths.FramesDir, err = expandPath(c.Paths.FramesDir); err != nil {
		return fmt.Errorf("paths.frames_dir: %w", err)
	}

	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVideo() {
	c.Video.SourceURL = strings.TrimSpace(c.Video.SourceURL)
	if strings.TrimSpace(c.Video.PreferredFormat) == "" {
		c.Video.PreferredFormat = defaultPreferredFormat
	}
	if strings.TrimSpace(c.Video.Resolution) == "" {
		c.Video.Resolution = defaultResolution
	}
	c.Video.Container = strings.ToLower(strings.TrimSpace(c.Video.Container))
	if c.Video.Container == "" {
		c.Video.Container = defaultContainer
	}
}

func (c *Config) normalizeTools() {
	if strings.TrimSpace(c.Tools.YtDlp) == "" {
		c.Tools.YtDlp = defaultYtDlpBinary
	}
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
