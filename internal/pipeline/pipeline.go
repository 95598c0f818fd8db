package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"previewgen/internal/catalog"
	"previewgen/internal/encode"
	"previewgen/internal/logging"
	"previewgen/internal/runlog"
	"previewgen/internal/selection"
	"previewgen/internal/services/ffmpeg"
)

// VideoEnsurer guarantees a local video asset and returns its path.
type VideoEnsurer interface {
	Ensure(ctx context.Context) (string, error)
}

// SelectFunc produces the run's selection. Interactive or flag-driven.
type SelectFunc func(cat *catalog.Catalog) (selection.Mode, []int, error)

// Failure records one entry the run could not process.
type Failure struct {
	ID     int
	Reason string
}

// Result summarizes a completed run.
type Result struct {
	RunID      string
	Mode       selection.Mode
	Selected   int
	Processed  int
	Skipped    int
	Failures   []Failure
	StartedAt  time.Time
	FinishedAt time.Time
}

// FailedIDs returns the identifiers of all recorded failures.
func (r *Result) FailedIDs() []int {
	ids := make([]int, 0, len(r.Failures))
	for _, failure := range r.Failures {
		ids = append(ids, failure.ID)
	}
	return ids
}

// Params configures a Runner.
type Params struct {
	Store     *catalog.Store
	Select    SelectFunc
	Video     VideoEnsurer
	Extractor ffmpeg.Extractor
	// Encode converts a frame file into the embeddable preview string.
	// Defaults to encode.DataURL.
	Encode func(path string) (string, error)
	// Preflight runs before anything else; nil skips the check.
	Preflight func() error
	// RunLog, when set, receives a best-effort record of the run.
	RunLog     *runlog.Store
	FramesDir  string
	Resolution string
	Logger     *slog.Logger
}

// Runner orchestrates one batch: selection, acquisition, per-entry frame
// extraction and encoding, and the final catalog write.
type Runner struct {
	store      *catalog.Store
	selectFn   SelectFunc
	video      VideoEnsurer
	extractor  ffmpeg.Extractor
	encodeFn   func(string) (string, error)
	preflight  func() error
	runLog     *runlog.Store
	framesDir  string
	resolution string
	logger     *slog.Logger
}

// NewRunner builds a Runner from params.
func NewRunner(p Params) (*Runner, error) {
	if p.Store == nil {
		return nil, errors.New("catalog store required")
	}
	if p.Select == nil {
		return nil, errors.New("selection source required")
	}
	if p.Video == nil {
		return nil, errors.New("video ensurer required")
	}
	if p.Extractor == nil {
		return nil, errors.New("frame extractor required")
	}
	if p.FramesDir == "" {
		return nil, errors.New("frames directory required")
	}
	encodeFn := p.Encode
	if encodeFn == nil {
		encodeFn = encode.DataURL
	}
	resolution := p.Resolution
	if resolution == "" {
		resolution = "1920x1080"
	}
	return &Runner{
		store:      p.Store,
		selectFn:   p.Select,
		video:      p.Video,
		extractor:  p.Extractor,
		encodeFn:   encodeFn,
		preflight:  p.Preflight,
		runLog:     p.RunLog,
		framesDir:  p.FramesDir,
		resolution: resolution,
		logger:     logging.NewComponentLogger(p.Logger, "pipeline"),
	}, nil
}

// Run executes the batch. Fatal conditions and graceful aborts surface as
// errors; per-entry problems land in Result.Failures and the run continues.
// The catalog is written once, after the loop, and only when at least one
// entry was selected and the video asset was available.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	logger := r.logger.With(logging.String(logging.FieldRunID, result.RunID))

	if r.preflight != nil {
		if err := r.preflight(); err != nil {
			return nil, err
		}
	}

	cat, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	index := cat.Index()

	mode, ids, err := r.selectFn(cat)
	if err != nil {
		return nil, err
	}
	result.Mode = mode
	result.Selected = len(ids)
	if len(ids) == 0 {
		result.FinishedAt = time.Now()
		return result, nil
	}

	videoPath, err := r.video.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.framesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create frames directory: %w", err)
	}

	for _, id := range ids {
		entry, ok := index[id]
		if !ok {
			result.Failures = append(result.Failures, Failure{ID: id, Reason: "unknown id"})
			logger.Warn("selected id not in catalog", logging.Int(logging.FieldEntryID, id))
			continue
		}
		seconds := entry.Timestamp.Seconds()
		if seconds == 0 {
			// Zero means "not yet authored"; skip without a message.
			result.Skipped++
			continue
		}

		framePath := filepath.Join(r.framesDir, fmt.Sprintf("frame_%d.png", id))
		if err := r.processEntry(ctx, entry, videoPath, seconds, framePath); err != nil {
			result.Failures = append(result.Failures, Failure{ID: id, Reason: err.Error()})
			logger.Warn("preview generation failed",
				logging.Int(logging.FieldEntryID, id),
				logging.Error(err))
			continue
		}
		result.Processed++
		logger.Info("preview generated",
			logging.Int(logging.FieldEntryID, id),
			logging.Int("offset_seconds", seconds))
	}

	if err := r.store.Save(cat); err != nil {
		return nil, err
	}

	result.FinishedAt = time.Now()
	logger.Info("run complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("processed", result.Processed),
		logging.Int("failed", len(result.Failures)),
		logging.Int("skipped", result.Skipped))
	r.record(ctx, logger, result)
	return result, nil
}

func (r *Runner) processEntry(ctx context.Context, entry *catalog.Entry, videoPath string, seconds int, framePath string) error {
	if err := r.extractor.ExtractFrame(ctx, videoPath, seconds, r.resolution, framePath); err != nil {
		return err
	}
	preview, err := r.encodeFn(framePath)
	if err != nil {
		return err
	}
	entry.Preview = preview
	return nil
}

func (r *Runner) record(ctx context.Context, logger *slog.Logger, result *Result) {
	if r.runLog == nil {
		return
	}
	run := runlog.Run{
		ID:         result.RunID,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		Mode:       string(result.Mode),
		Selected:   result.Selected,
		Processed:  result.Processed,
		Skipped:    result.Skipped,
		FailedIDs:  result.FailedIDs(),
	}
	if err := r.runLog.RecordRun(ctx, run); err != nil {
		logger.Warn("could not record run history", logging.Error(err))
	}
}
