package config

const (
	defaultDataDir         = "~/.local/share/previewgen/data"
	defaultLogDir          = "~/.local/share/previewgen/logs"
	defaultSourceURL       = "https://youtu.be/70mRtATTHDw"
	defaultPreferredFormat = "best[ext=mp4]/best"
	defaultResolution      = "1920x1080"
	defaultContainer       = "mp4"
	defaultYtDlpBinary     = "yt-dlp"
	defaultFFmpegBinary    = "ffmpeg"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Video: Video{
			SourceURL:       defaultSourceURL,
			PreferredFormat: defaultPreferredFormat,
			Resolution:      defaultResolution,
			Container:       defaultContainer,
		},
		Tools: Tools{
			YtDlp:  defaultYtDlpBinary,
			FFmpeg: defaultFFmpegBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
