package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"previewgen/internal/deps"
	"previewgen/internal/services/ytdlp"
)

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List download formats offered for the reference video",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := deps.EnsureAvailable([]deps.Requirement{deps.YtDlpRequirement(cfg)}); err != nil {
				return err
			}
			client, err := ytdlp.New(cfg.Tools.YtDlp)
			if err != nil {
				return err
			}
			lines, err := client.ListFormats(cmd.Context(), cfg.Video.SourceURL)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
