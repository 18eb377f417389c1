package adapters

import (
	"audiobook-generation-api/application/ports/outbound"
	"audiobook-generation-api/config"
	"audiobook-generation-api/domain"
	"context"
	"fmt"
	"github.com/google/uuid"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

type ytdlpVoiceResolver struct {
	logger      outbound.LoggerPort
	blobStore   outbound.BlobStorePort
	voiceConfig *config.VoiceConfig
}

// NewYtdlpVoiceResolver turns a voice reference into one fetchable sample
// URL. A direct sample location passes through untouched; a video id is
// downloaded with yt-dlp, clipped to the configured time range with ffmpeg
// and published to the blob store under a job-scoped path.
func NewYtdlpVoiceResolver(logger outbound.LoggerPort, blobStore outbound.BlobStorePort, voiceConfig *config.VoiceConfig) outbound.VoiceResolverPort {
	return &ytdlpVoiceResolver{
		logger:      logger,
		blobStore:   blobStore,
		voiceConfig: voiceConfig,
	}
}

func (y *ytdlpVoiceResolver) Resolve(ctx context.Context, jobID string, voice domain.VoiceReference) (string, error) {
	if voice.SampleURL != "" {
		return voice.SampleURL, nil
	}
	if voice.VideoID == "" {
		return "", fmt.Errorf("%w: neither a voice sample nor a video reference is present", domain.ErrInputUnavailable)
	}

	clipPath, err := y.downloadClip(ctx, voice)
	if err != nil {
		y.logger.ErrorWithFields(err, "Failed to acquire voice clip", map[string]interface{}{
			"job_id":   jobID,
			"video_id": voice.VideoID,
		})
		return "", fmt.Errorf("%w: could not acquire voice clip from video %s: %v", domain.ErrInputUnavailable, voice.VideoID, err)
	}
	defer func(name string) {
		err := os.Remove(name)
		if err != nil {
			y.logger.Warn(err, "Failed to remove voice clip file")
		}
	}(clipPath)

	clipBytes, err := os.ReadFile(clipPath)
	if err != nil {
		return "", fmt.Errorf("%w: could not read voice clip: %v", domain.ErrInputUnavailable, err)
	}

	sampleLocation, err := y.blobStore.Put(ctx, fmt.Sprintf("samples/%s/voice.mp3", jobID), clipBytes, "audio/mpeg")
	if err != nil {
		return "", fmt.Errorf("%w: could not store voice sample: %v", domain.ErrInputUnavailable, err)
	}

	return sampleLocation, nil
}

func (y *ytdlpVoiceResolver) downloadClip(ctx context.Context, voice domain.VoiceReference) (string, error) {
	fullPath := filepath.Join(y.voiceConfig.WorkDir, uuid.NewString()+"_full.mp3")
	clipPath := filepath.Join(y.voiceConfig.WorkDir, uuid.NewString()+"_clip.mp3")

	videoURL := "https://www.youtube.com/watch?v=" + voice.VideoID

	downloadCmd := exec.CommandContext(ctx, y.voiceConfig.YtdlpPath,
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", fullPath,
		videoURL,
	)
	if output, err := downloadCmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %v: %s", err, output)
	}

	defer func(name string) {
		err := os.Remove(name)
		if err != nil {
			y.logger.Warn(err, "Failed to remove downloaded audio file")
		}
	}(fullPath)

	clipCmd := exec.CommandContext(ctx, y.voiceConfig.FfmpegPath,
		"-i", fullPath,
		"-ss", strconv.FormatFloat(voice.ClipStart, 'f', -1, 64),
		"-t", strconv.FormatFloat(voice.ClipEnd-voice.ClipStart, 'f', -1, 64),
		"-acodec", "libmp3lame",
		"-y",
		clipPath,
	)
	if output, err := clipCmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg clip failed: %v: %s", err, output)
	}

	return clipPath, nil
}
