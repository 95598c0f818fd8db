package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"previewgen/internal/catalog"
	"previewgen/internal/config"
	"previewgen/internal/deps"
	"previewgen/internal/logging"
	"previewgen/internal/services/ffmpeg"
	"previewgen/internal/services/ytdlp"
	"previewgen/internal/video"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tool availability, cache state, and catalog coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = status.Detail
				} else if probeErr := probeTool(cmd, status.Name, status.Command); probeErr != nil {
					state = "found but not runnable"
				}
				rows = append(rows, []string{status.Name, status.Command, state})
			}
			fmt.Fprintln(out, "Tools:")
			fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Status"}, rows))

			fmt.Fprintln(out, "Video cache:")
			fmt.Fprintln(out, renderTable([]string{"Key", "Value"}, cacheRows(cfg)))

			fmt.Fprintln(out, "Catalog:")
			fmt.Fprintln(out, renderTable([]string{"Key", "Value"}, catalogRows(cfg)))
			return nil
		},
	}
}

// probeTool runs the tool's version command so a broken install shows up
// before a pipeline run trips over it.
func probeTool(cmd *cobra.Command, name, binary string) error {
	switch name {
	case "yt-dlp":
		client, err := ytdlp.New(binary)
		if err != nil {
			return err
		}
		return client.Version(cmd.Context())
	case "ffmpeg":
		client, err := ffmpeg.New(binary)
		if err != nil {
			return err
		}
		return client.Version(cmd.Context())
	}
	return nil
}

func cacheRows(cfg *config.Config) [][]string {
	rows := [][]string{{"Source", cfg.Video.SourceURL}}
	videoID, err := video.ParseVideoID(cfg.Video.SourceURL)
	if err != nil {
		return append(rows, []string{"Cached", "unknown (" + err.Error() + ")"})
	}
	cachePath := cfg.VideoCachePath(videoID)
	rows = append(rows, []string{"Path", cachePath})
	info, err := os.Stat(cachePath)
	if err != nil {
		return append(rows, []string{"Cached", "no"})
	}
	return append(rows,
		[]string{"Cached", "yes"},
		[]string{"Size", fmt.Sprintf("%.1f MiB", float64(info.Size())/(1<<20))},
	)
}

func catalogRows(cfg *config.Config) [][]string {
	rows := [][]string{{"Path", cfg.Paths.Catalog}}
	store := catalog.NewStore(cfg.Paths.Catalog, cfg.CatalogBackupPath(), logging.NewNop())
	cat, err := store.Load()
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return append(rows, []string{"Entries", "catalog file missing"})
		}
		return append(rows, []string{"Entries", "unreadable (" + err.Error() + ")"})
	}
	missing := len(cat.MissingPreviewIDs())
	return append(rows,
		[]string{"Entries", strconv.Itoa(len(cat.Entries))},
		[]string{"With preview", strconv.Itoa(len(cat.Entries) - missing)},
		[]string{"Missing preview", strconv.Itoa(missing)},
	)
}
