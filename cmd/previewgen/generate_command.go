package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"previewgen/internal/catalog"
	"previewgen/internal/deps"
	"previewgen/internal/logging"
	"previewgen/internal/pipeline"
	"previewgen/internal/runlog"
	"previewgen/internal/selection"
	"previewgen/internal/services/ffmpeg"
	"previewgen/internal/services/ytdlp"
	"previewgen/internal/video"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var selectFlag string
	var idsFlag string
	var formatFlag string
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate preview images for selected catalog entries",
		Long: "generate runs the preview pipeline: it ensures the reference video is\n" +
			"cached locally, then extracts and embeds one frame per selected entry.\n" +
			"Without --select, the selection is chosen interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			out := cmd.OutOrStdout()

			// A run rewrites the catalog wholesale; never allow two at once.
			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another previewgen run is active (lock %s)", cfg.LockPath())
			}
			defer func() { _ = lock.Unlock() }()

			interactive := stdinIsTerminal()
			stdin := bufio.NewReader(cmd.InOrStdin())

			selectFn, err := buildSelectFunc(selectFlag, idsFlag, interactive, stdin, out)
			if err != nil {
				return err
			}

			videoID, err := video.ParseVideoID(cfg.Video.SourceURL)
			if err != nil {
				return err
			}

			dlClient, err := ytdlp.New(cfg.Tools.YtDlp)
			if err != nil {
				return err
			}
			exClient, err := ffmpeg.New(cfg.Tools.FFmpeg)
			if err != nil {
				return err
			}

			prompter := video.NewConsolePrompter(stdin, out)
			prompter.AssumeYes = assumeYes

			acquirer, err := video.NewAcquirer(video.Params{
				Downloader:      dlClient,
				Prompter:        prompter,
				Out:             out,
				Logger:          logger,
				SourceURL:       cfg.Video.SourceURL,
				PreferredFormat: cfg.Video.PreferredFormat,
				Resolution:      cfg.Video.Resolution,
				Container:       cfg.Video.Container,
				CachePath:       cfg.VideoCachePath(videoID),
				VideoID:         videoID,
				ForcedFormat:    formatFlag,
			})
			if err != nil {
				return err
			}

			runLog, err := runlog.Open(cfg.RunLogPath())
			if err != nil {
				logger.Warn("run history unavailable", logging.Error(err))
				runLog = nil
			} else {
				defer runLog.Close()
			}

			runner, err := pipeline.NewRunner(pipeline.Params{
				Store:      catalog.NewStore(cfg.Paths.Catalog, cfg.CatalogBackupPath(), logger),
				Select:     selectFn,
				Video:      acquirer,
				Extractor:  exClient,
				Preflight:  func() error { return deps.EnsureAvailable(deps.Requirements(cfg)) },
				RunLog:     runLog,
				FramesDir:  cfg.Paths.FramesDir,
				Resolution: cfg.Video.Resolution,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			result, err := runner.Run(cmd.Context())
			if err != nil {
				if errors.Is(err, video.ErrAborted) || errors.Is(err, selection.ErrNoInput) {
					fmt.Fprintf(out, "Aborting: %v\n", err)
					return nil
				}
				return err
			}

			if result.Selected == 0 {
				fmt.Fprintln(out, "No items selected.")
				return nil
			}
			printSummary(out, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&selectFlag, "select", "s", "", "Selection mode: all, missing, or ids")
	cmd.Flags().StringVar(&idsFlag, "ids", "", "Comma-separated entry ids (with --select ids)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Download with this format code, skipping discovery")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Download the video without asking")
	return cmd
}

func buildSelectFunc(selectFlag, idsFlag string, interactive bool, stdin *bufio.Reader, out io.Writer) (pipeline.SelectFunc, error) {
	selectFlag = strings.TrimSpace(selectFlag)
	if selectFlag != "" {
		mode, ok := selection.ParseMode(selectFlag)
		if !ok {
			return nil, fmt.Errorf("unknown selection mode %q (want all, missing, or ids)", selectFlag)
		}
		if mode == selection.ModeIDs && strings.TrimSpace(idsFlag) == "" {
			return nil, errors.New("--select ids requires --ids")
		}
		return func(cat *catalog.Catalog) (selection.Mode, []int, error) {
			ids, err := selection.Resolve(cat, mode, idsFlag)
			return mode, ids, err
		}, nil
	}
	if !interactive {
		return nil, errors.New("stdin is not a terminal; pass --select (and --ids) to choose entries")
	}
	chooser := selection.NewChooser(stdin, out)
	return func(cat *catalog.Catalog) (selection.Mode, []int, error) {
		return chooser.Choose(cat)
	}, nil
}

func printSummary(out io.Writer, result *pipeline.Result) {
	fmt.Fprintf(out, "\nDone. Generated: %d. Failed: %d. Skipped: %d.\n",
		result.Processed, len(result.Failures), result.Skipped)
	if len(result.Failures) == 0 {
		return
	}
	rows := make([][]string, 0, len(result.Failures))
	for _, failure := range result.Failures {
		rows = append(rows, []string{strconv.Itoa(failure.ID), failure.Reason})
	}
	fmt.Fprintln(out, renderTable([]string{"ID", "Reason"}, rows, 1))
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
