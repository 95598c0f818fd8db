package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks failures reported by yt-dlp or ffmpeg.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks unusable configuration discovered at run time.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks missing inputs such as the catalog file.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes tool context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, tool, operation, message string, err error) error {
	detail := buildDetail(tool, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(tool, operation, message string) string {
	parts := make([]string, 0, 3)
	if tool = strings.TrimSpace(tool); tool != "" {
		parts = append(parts, tool)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
