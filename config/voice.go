package config

import "os"

type VoiceConfig struct {
	YtdlpPath  string
	FfmpegPath string
	WorkDir    string
}

func GetVoiceConfig() *VoiceConfig {
	ytdlpPath := os.Getenv("YTDLP_PATH")
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}

	ffmpegPath := os.Getenv("FFMPEG_PATH")
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	workDir := os.Getenv("VOICE_WORK_DIR")
	if workDir == "" {
		workDir = os.TempDir()
	}

	return &VoiceConfig{
		YtdlpPath:  ytdlpPath,
		FfmpegPath: ffmpegPath,
		WorkDir:    workDir,
	}
}
