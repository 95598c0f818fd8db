// Package ytdlp wraps the yt-dlp CLI: version probing, format listing, and
// downloading the reference video with a caller-chosen format selector.
package ytdlp
