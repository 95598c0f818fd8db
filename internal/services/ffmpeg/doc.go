// Package ffmpeg wraps the ffmpeg CLI for single-frame extraction at a seek
// offset and target resolution.
package ffmpeg
