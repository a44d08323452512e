package storage

// Resolved external binary paths. Populated by deps.CheckDependency at
// startup; the bare command names fall back to PATH lookup by exec.
var (
	FfmpegPath        = "ffmpeg"
	YtdlpPath         = "yt-dlp"
	FasterwhisperPath = "faster-whisper-xxl"
)
