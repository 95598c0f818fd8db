package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var resolutionPattern = regexp.MustCompile(`^\d+x\d+$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVideo() error {
	if strings.TrimSpace(c.Video.SourceURL) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/previewgen/config.toml"
		}
		return fmt.Errorf("video.source_url is required. Edit %s (create with 'previewgen config init')", defaultPath)
	}
	if !resolutionPattern.MatchString(c.Video.Resolution) {
		return fmt.Errorf("video.resolution must look like 1920x1080, got %q", c.Video.Resolution)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
	return nil
}
