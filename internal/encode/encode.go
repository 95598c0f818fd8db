// Package encode turns raster image files into inline data URLs suitable for
// embedding in the catalog.
package encode

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DataURL reads the image at path and returns a media-type-tagged base64 data
// URL of its raw bytes. Deterministic; the only failure mode is the read.
func DataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return fmt.Sprintf("data:%s;base64,%s", mediaType(path), base64.StdEncoding.EncodeToString(data)), nil
}

func mediaType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		// Frames are written as PNG; keep that as the fallback too.
		return "image/png"
	}
}
