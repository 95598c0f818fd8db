package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"previewgen/internal/config"
)

// Requirement defines an external dependency previewgen relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	InstallHint string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	InstallHint string
	Available   bool
	Detail      string
}

// Requirements returns the tools a pipeline run needs, using the configured
// binary names.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		YtDlpRequirement(cfg),
		FFmpegRequirement(cfg),
	}
}

// YtDlpRequirement describes the downloader dependency on its own, for
// commands that only talk to yt-dlp.
func YtDlpRequirement(cfg *config.Config) Requirement {
	return Requirement{
		Name:        "yt-dlp",
		Command:     cfg.Tools.YtDlp,
		Description: "Downloads the reference video",
		InstallHint: "Install with: pip install yt-dlp",
	}
}

// FFmpegRequirement describes the frame extraction dependency.
func FFmpegRequirement(cfg *config.Config) Requirement {
	return Requirement{
		Name:        "ffmpeg",
		Command:     cfg.Tools.FFmpeg,
		Description: "Extracts preview frames",
		InstallHint: "Install ffmpeg and ensure it is on PATH",
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			InstallHint: req.InstallHint,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// EnsureAvailable fails on the first missing requirement, carrying its
// install hint in the error.
func EnsureAvailable(requirements []Requirement) error {
	for _, status := range CheckBinaries(requirements) {
		if !status.Available {
			return fmt.Errorf("%s not found. %s", status.Name, status.InstallHint)
		}
	}
	return nil
}
