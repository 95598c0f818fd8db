package services_test

import (
	"errors"
	"testing"

	"previewgen/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "yt-dlp", "download", "format best", cause)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped, got %v", err)
	}
	want := "external tool error: yt-dlp: download: format best: exit status 1"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if err.Error() != "external tool error: service failure" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
