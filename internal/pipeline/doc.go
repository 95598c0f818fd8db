// Package pipeline composes the preview-generation batch: it resolves the
// selection, ensures the reference video, and walks the selected entries in
// order, extracting and encoding one frame per entry before writing the
// catalog back out once at the end.
//
// Tool and catalog problems are fatal, a declined or failed acquisition
// aborts the run without a write, and per-entry failures are collected while
// the batch continues.
package pipeline
