package video

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseVideoID extracts the video identifier from a configured source URL.
// Both short (youtu.be/<id>) and long (watch?v=<id>) forms are accepted.
func ParseVideoID(sourceURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(sourceURL))
	if err != nil {
		return "", fmt.Errorf("parse source url: %w", err)
	}

	var id string
	if strings.EqualFold(parsed.Hostname(), "youtu.be") {
		id = strings.Trim(parsed.Path, "/")
	} else {
		id = parsed.Query().Get("v")
	}
	if id == "" {
		return "", fmt.Errorf("could not determine a video id from %q; adjust video.source_url", sourceURL)
	}
	return id, nil
}

// WatchURL returns the canonical download URL for a video identifier.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
