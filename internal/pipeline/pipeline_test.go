package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"previewgen/internal/catalog"
	"previewgen/internal/pipeline"
	"previewgen/internal/selection"
	"previewgen/internal/video"
)

type stubVideo struct {
	path  string
	err   error
	calls int
}

func (s *stubVideo) Ensure(ctx context.Context) (string, error) {
	s.calls++
	return s.path, s.err
}

type stubExtractor struct {
	failIDs map[string]error // keyed by dest basename
	calls   []string
}

func (s *stubExtractor) ExtractFrame(ctx context.Context, videoPath string, seconds int, resolution, destPath string) error {
	s.calls = append(s.calls, filepath.Base(destPath))
	if err, ok := s.failIDs[filepath.Base(destPath)]; ok {
		return err
	}
	return os.WriteFile(destPath, []byte("png"), 0o644)
}

func selectStatic(mode selection.Mode, ids []int) pipeline.SelectFunc {
	return func(*catalog.Catalog) (selection.Mode, []int, error) {
		return mode, ids, nil
	}
}

type fixture struct {
	store     *catalog.Store
	path      string
	framesDir string
	videoStub *stubVideo
	extractor *stubExtractor
}

func newFixture(t *testing.T, catalogJSON string) *fixture {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(catalogJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return &fixture{
		store:     catalog.NewStore(path, "", nil),
		path:      path,
		framesDir: filepath.Join(dir, "frames"),
		videoStub: &stubVideo{path: filepath.Join(dir, "video.mp4")},
		extractor: &stubExtractor{},
	}
}

func (f *fixture) runner(t *testing.T, sel pipeline.SelectFunc) *pipeline.Runner {
	t.Helper()
	runner, err := pipeline.NewRunner(pipeline.Params{
		Store:      f.store,
		Select:     sel,
		Video:      f.videoStub,
		Extractor:  f.extractor,
		FramesDir:  f.framesDir,
		Resolution: "1920x1080",
	})
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}
	return runner
}

const twoEntryCatalog = `[
  {"id": 1, "timestamp": "0:10"},
  {"id": 2, "timestamp": "0:00"}
]`

func TestRunGeneratesPreviewAndSkipsZeroTimestamp(t *testing.T) {
	f := newFixture(t, twoEntryCatalog)
	runner := f.runner(t, selectStatic(selection.ModeAll, []int{1, 2}))

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("Processed = %d, want 1", result.Processed)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("Failures = %v, want none", result.Failures)
	}
	if result.Skipped != 1 {
		t.Fatalf("Skipped = %d, want 1", result.Skipped)
	}

	cat, err := f.store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !cat.Entries[0].HasPreview() {
		t.Fatal("entry 1 should have a preview")
	}
	if !strings.HasPrefix(cat.Entries[0].Preview, "data:image/png;base64,") {
		t.Fatalf("unexpected preview encoding: %.40q", cat.Entries[0].Preview)
	}
	if cat.Entries[1].HasPreview() {
		t.Fatal("entry 2 must stay untouched")
	}
	if !reflect.DeepEqual(f.extractor.calls, []string{"frame_1.png"}) {
		t.Fatalf("extractor calls = %v", f.extractor.calls)
	}
}

func TestRunRecordsUnknownIDAsFailure(t *testing.T) {
	f := newFixture(t, twoEntryCatalog)
	runner := f.runner(t, selectStatic(selection.ModeIDs, []int{1, 99}))

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("Processed = %d, want 1", result.Processed)
	}
	if !reflect.DeepEqual(result.FailedIDs(), []int{99}) {
		t.Fatalf("FailedIDs = %v, want [99]", result.FailedIDs())
	}
	if result.Failures[0].Reason != "unknown id" {
		t.Fatalf("Reason = %q", result.Failures[0].Reason)
	}
}

func TestRunContinuesPastExtractionFailure(t *testing.T) {
	f := newFixture(t, `[
  {"id": 1, "timestamp": "0:10"},
  {"id": 2, "timestamp": "0:20"},
  {"id": 3, "timestamp": "0:30"}
]`)
	f.extractor.failIDs = map[string]error{"frame_2.png": errors.New("seek past end")}
	runner := f.runner(t, selectStatic(selection.ModeAll, []int{1, 2, 3}))

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Processed != 2 {
		t.Fatalf("Processed = %d, want 2", result.Processed)
	}
	if !reflect.DeepEqual(result.FailedIDs(), []int{2}) {
		t.Fatalf("FailedIDs = %v", result.FailedIDs())
	}

	// Successful entries still land in the saved catalog.
	cat, err := f.store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !cat.Entries[0].HasPreview() || !cat.Entries[2].HasPreview() {
		t.Fatal("entries 1 and 3 should carry previews")
	}
	if cat.Entries[1].HasPreview() {
		t.Fatal("failed entry must not carry a preview")
	}
}

func TestRunEmptySelectionDoesNotTouchVideoOrCatalog(t *testing.T) {
	f := newFixture(t, twoEntryCatalog)
	before, err := os.ReadFile(f.path)
	if err != nil {
		t.Fatal(err)
	}
	runner := f.runner(t, selectStatic(selection.ModeIDs, nil))

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Selected != 0 || result.Processed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if f.videoStub.calls != 0 {
		t.Fatal("empty selection must not trigger acquisition")
	}
	after, err := os.ReadFile(f.path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatal("catalog must not be rewritten for an empty selection")
	}
}

func TestRunAcquisitionAbortLeavesCatalogUnwritten(t *testing.T) {
	f := newFixture(t, twoEntryCatalog)
	before, err := os.ReadFile(f.path)
	if err != nil {
		t.Fatal(err)
	}
	f.videoStub.err = fmt.Errorf("%w: download declined", video.ErrAborted)
	runner := f.runner(t, selectStatic(selection.ModeAll, []int{1, 2}))

	_, err = runner.Run(context.Background())
	if !errors.Is(err, video.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	after, err := os.ReadFile(f.path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatal("aborted run must not rewrite the catalog")
	}
}

func TestRunMissingCatalogIsFatal(t *testing.T) {
	dir := t.TempDir()
	store := catalog.NewStore(filepath.Join(dir, "absent.json"), "", nil)
	runner, err := pipeline.NewRunner(pipeline.Params{
		Store:     store,
		Select:    selectStatic(selection.ModeAll, nil),
		Video:     &stubVideo{},
		Extractor: &stubExtractor{},
		FramesDir: filepath.Join(dir, "frames"),
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = runner.Run(context.Background())
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRunPreflightFailureStopsEverything(t *testing.T) {
	f := newFixture(t, twoEntryCatalog)
	runner, err := pipeline.NewRunner(pipeline.Params{
		Store:     f.store,
		Select:    selectStatic(selection.ModeAll, []int{1}),
		Video:     f.videoStub,
		Extractor: f.extractor,
		FramesDir: f.framesDir,
		Preflight: func() error { return errors.New("yt-dlp not found") },
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatal("expected preflight error")
	}
	if f.videoStub.calls != 0 {
		t.Fatal("preflight failure must stop before acquisition")
	}
}

func TestRunRerunOverwritesOnlySelectedFrames(t *testing.T) {
	f := newFixture(t, `[
  {"id": 1, "timestamp": "0:10"},
  {"id": 2, "timestamp": "0:20"}
]`)
	runner := f.runner(t, selectStatic(selection.ModeAll, []int{1, 2}))
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	marker := filepath.Join(f.framesDir, "frame_2.png")
	if err := os.WriteFile(marker, []byte("sentinel"), 0o644); err != nil {
		t.Fatal(err)
	}

	rerun := f.runner(t, selectStatic(selection.ModeIDs, []int{1}))
	if _, err := rerun.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "sentinel" {
		t.Fatal("rerun of id 1 must not rewrite id 2's frame")
	}
}

func TestRunEmitsCompletionEvent(t *testing.T) {
	f := newFixture(t, twoEntryCatalog)

	var logs bytes.Buffer
	runner, err := pipeline.NewRunner(pipeline.Params{
		Store:      f.store,
		Select:     selectStatic(selection.ModeAll, []int{1, 2}),
		Video:      f.videoStub,
		Extractor:  f.extractor,
		FramesDir:  f.framesDir,
		Resolution: "1920x1080",
		Logger:     slog.New(slog.NewJSONHandler(&logs, nil)),
	})
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(logs.String(), `"event_type":"run_complete"`) {
		t.Fatalf("completion record missing event classification:\n%s", logs.String())
	}
}
