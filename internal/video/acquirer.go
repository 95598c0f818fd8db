package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"previewgen/internal/logging"
	"previewgen/internal/services/ytdlp"
)

// ErrAborted indicates the operator declined to continue. It aborts the run
// without being treated as a failure.
var ErrAborted = errors.New("video acquisition aborted")

// Prompter supplies the acquisition loop's user decisions. Injectable so the
// state machine is testable without a terminal.
type Prompter interface {
	// ConfirmDownload asks whether the missing video should be fetched now.
	ConfirmDownload(videoID string) (bool, error)
	// AskFormatCode requests an explicit format code; empty means abort.
	AskFormatCode() (string, error)
	// AskRetry reports whether the whole attempt sequence should run again.
	AskRetry(lastErr error) (bool, error)
}

// Params configures an Acquirer.
type Params struct {
	Downloader      ytdlp.Downloader
	Prompter        Prompter
	Out             io.Writer
	Logger          *slog.Logger
	SourceURL       string
	PreferredFormat string
	Resolution      string
	Container       string
	CachePath       string
	VideoID         string
	// ForcedFormat skips discovery and downloads with this code directly.
	ForcedFormat string
}

// Acquirer guarantees a usable local copy of the reference video exists,
// downloading it at most once per video identifier.
type Acquirer struct {
	downloader      ytdlp.Downloader
	prompter        Prompter
	out             io.Writer
	logger          *slog.Logger
	sourceURL       string
	preferredFormat string
	resolution      string
	container       string
	cachePath       string
	videoID         string
	forcedFormat    string
}

// NewAcquirer builds an Acquirer from params.
func NewAcquirer(p Params) (*Acquirer, error) {
	if p.Downloader == nil {
		return nil, errors.New("downloader required")
	}
	if p.Prompter == nil {
		return nil, errors.New("prompter required")
	}
	if strings.TrimSpace(p.CachePath) == "" {
		return nil, errors.New("cache path required")
	}
	out := p.Out
	if out == nil {
		out = io.Discard
	}
	return &Acquirer{
		downloader:      p.Downloader,
		prompter:        p.Prompter,
		out:             out,
		logger:          logging.NewComponentLogger(p.Logger, "video"),
		sourceURL:       p.SourceURL,
		preferredFormat: p.PreferredFormat,
		resolution:      p.Resolution,
		container:       p.Container,
		cachePath:       p.CachePath,
		videoID:         p.VideoID,
		forcedFormat:    strings.TrimSpace(p.ForcedFormat),
	}, nil
}

// Ensure returns the local video path, downloading first if needed. A cached
// file short-circuits with no downloader calls. Declines and exhausted
// retries return ErrAborted (possibly wrapping the last failure).
func (a *Acquirer) Ensure(ctx context.Context) (string, error) {
	if _, err := os.Stat(a.cachePath); err == nil {
		a.logger.Debug("video already cached",
			logging.String(logging.FieldVideoID, a.videoID),
			logging.String("path", a.cachePath))
		return a.cachePath, nil
	}

	ok, err := a.prompter.ConfirmDownload(a.videoID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: video not available and download declined", ErrAborted)
	}

	for {
		err := a.attempt(ctx)
		if err == nil {
			return a.cachePath, nil
		}
		if errors.Is(err, ErrAborted) {
			return "", err
		}
		a.logger.Warn("video download failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint,
				fmt.Sprintf("run: yt-dlp --list-formats %s to inspect available formats", a.url())))
		retry, promptErr := a.prompter.AskRetry(err)
		if promptErr != nil {
			return "", promptErr
		}
		if !retry {
			return "", fmt.Errorf("%w: download failed: %w", ErrAborted, err)
		}
	}
}

// attempt runs one full acquisition pass: primary format, then discovery with
// auto-selection, then manual format entry.
func (a *Acquirer) attempt(ctx context.Context) error {
	url := a.url()
	fmt.Fprintf(a.out, "Downloading video %s...\n", a.videoID)

	if a.forcedFormat != "" {
		return a.downloader.Download(ctx, url, a.forcedFormat, a.cachePath)
	}

	primaryErr := a.downloader.Download(ctx, url, a.preferredFormat, a.cachePath)
	if primaryErr == nil {
		return nil
	}
	fmt.Fprintln(a.out, "Primary download format failed, attempting to list available formats...")

	lines, err := a.downloader.ListFormats(ctx, url)
	if err != nil {
		return err
	}
	a.printListing(lines)

	if code := AutoSelectFormat(lines, a.resolution, a.container); code != "" {
		fmt.Fprintf(a.out, "Auto-selected format %s (%s %s)\n", code, a.resolution, a.container)
		autoErr := a.downloader.Download(ctx, url, code, a.cachePath)
		if autoErr == nil {
			return nil
		}
		a.logger.Warn("auto-selected format failed", logging.String("format", code), logging.Error(autoErr))
	}

	code, err := a.prompter.AskFormatCode()
	if err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: no format code entered", ErrAborted)
	}
	fmt.Fprintf(a.out, "Trying format %s...\n", code)
	return a.downloader.Download(ctx, url, code, a.cachePath)
}

func (a *Acquirer) printListing(lines []string) {
	fmt.Fprintf(a.out, "\nAvailable formats (first %d lines):\n\n", listingPreviewLines)
	for i, line := range lines {
		if i >= listingPreviewLines {
			fmt.Fprintln(a.out, "...")
			break
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *Acquirer) url() string {
	if a.videoID != "" {
		return WatchURL(a.videoID)
	}
	return a.sourceURL
}
