package storage

// Resolved external tool paths. Defaults assume the binaries are on PATH;
// the deps resolver overwrites them with absolute paths when it finds a
// managed install.
var (
	FfmpegPath  = "ffmpeg"
	FfprobePath = "ffprobe"
	YtdlpPath   = "yt-dlp"
)
