package service

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/hema/internal/domain"
)

// launcher abstracts opening a video URL (consumer-defined interface)
type launcher interface {
	Launch(url string) error
}

// PlaybackService opens technique videos
type PlaybackService struct {
	launcher launcher
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(launcher launcher, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		launcher: launcher,
		logger:   logger,
	}
}

// OpenVideo opens the technique's video URL exactly as received
func (s *PlaybackService) OpenVideo(technique domain.Technique) error {
	if !technique.HasVideo() {
		return domain.ErrNoVideo
	}

	url := technique.Video()
	s.logger.Info("opening technique video", "technique", technique.Name, "techniqueID", technique.ID, "url", url)

	if err := s.launcher.Launch(url); err != nil {
		s.logger.Error("failed to open video", "error", err, "techniqueID", technique.ID, "url", url)
		return fmt.Errorf("failed to open video: %w", err)
	}
	return nil
}
