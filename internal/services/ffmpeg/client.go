package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"previewgen/internal/services"
)

// Extractor defines the behaviour the pipeline needs from ffmpeg.
type Extractor interface {
	ExtractFrame(ctx context.Context, videoPath string, seconds int, resolution, destPath string) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary string
	exec   services.Executor
}

// New constructs an ffmpeg client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{
		binary: binary,
		exec:   services.CommandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Version probes the binary, reporting whether it is runnable.
func (c *Client) Version(ctx context.Context) error {
	if err := c.exec.Run(ctx, c.binary, []string{"-version"}, func(string) {}); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "version", "", err)
	}
	return nil
}

// ExtractFrame writes a single still at the given offset, overwriting any
// prior image at destPath. ffmpeg chatter is suppressed; the call either
// leaves a valid image behind or returns an error.
func (c *Client) ExtractFrame(ctx context.Context, videoPath string, seconds int, resolution, destPath string) error {
	if strings.TrimSpace(videoPath) == "" {
		return errors.New("video path required")
	}
	if strings.TrimSpace(destPath) == "" {
		return errors.New("destination path required")
	}
	args := []string{
		"-ss", strconv.Itoa(seconds),
		"-i", videoPath,
		"-frames:v", "1",
		"-s", resolution,
		"-y", destPath,
	}
	if err := c.exec.Run(ctx, c.binary, args, func(string) {}); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "extract frame",
			fmt.Sprintf("offset %ds", seconds), err)
	}
	if _, err := os.Stat(destPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "extract frame",
			"no output image produced", err)
	}
	return nil
}
