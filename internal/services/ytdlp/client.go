package ytdlp

import (
	"context"
	"errors"
	"strings"

	"previewgen/internal/services"
)

// Downloader defines the behaviour the video acquirer needs.
type Downloader interface {
	Download(ctx context.Context, url, formatSelector, destPath string) error
	ListFormats(ctx context.Context, url string) ([]string, error)
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

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary string
	exec   services.Executor
}

// New constructs a yt-dlp client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
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
	if err := c.exec.Run(ctx, c.binary, []string{"--version"}, func(string) {}); err != nil {
		return services.Wrap(services.ErrExternalTool, "yt-dlp", "version", "", err)
	}
	return nil
}

// Download fetches url into destPath using the given format selector.
// Progress lines stay visible to the operator.
func (c *Client) Download(ctx context.Context, url, formatSelector, destPath string) error {
	if strings.TrimSpace(destPath) == "" {
		return errors.New("destination path required")
	}
	args := []string{"-f", formatSelector, "-o", destPath, url}
	if err := c.exec.Run(ctx, c.binary, args, nil); err != nil {
		return services.Wrap(services.ErrExternalTool, "yt-dlp", "download", "format "+formatSelector, err)
	}
	return nil
}

// ListFormats returns the format listing for url, one line per format.
func (c *Client) ListFormats(ctx context.Context, url string) ([]string, error) {
	var lines []string
	err := c.exec.Run(ctx, c.binary, []string{"--list-formats", url}, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "yt-dlp", "list-formats", "", err)
	}
	return lines, nil
}
