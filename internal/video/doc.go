// Package video resolves the reference video identifier from the configured
// source URL and guarantees a local copy exists, with format-selection
// fallback and an operator-mediated retry loop around the downloader.
package video
