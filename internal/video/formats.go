package video

import "strings"

// listingPreviewLines bounds how much of the format listing is shown to the
// operator; the full listing still feeds auto-selection.
const listingPreviewLines = 40

// AutoSelectFormat scans a yt-dlp format listing for a format that reports
// both the wanted resolution and container, and whose format code is purely
// numeric (combined codes like "137+140" are not valid single selections).
// Returns the empty string when nothing matches. Best-effort: the listing
// layout belongs to the tool, so manual entry stays available.
func AutoSelectFormat(lines []string, resolution, container string) string {
	resolution = strings.ToLower(resolution)
	container = strings.ToLower(container)
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, resolution) || !strings.Contains(lower, container) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if code := fields[0]; isNumeric(code) {
			return code
		}
	}
	return ""
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
