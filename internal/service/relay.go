package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gitkachoda/tg-api-hitter/internal/domain"
	"github.com/gitkachoda/tg-api-hitter/internal/fetch"
	"github.com/gitkachoda/tg-api-hitter/internal/telemetry"
)

// Status message texts. One status message per request is edited in
// place through the whole pipeline, never duplicated.
const (
	msgProcessing       = "⏳ Processing your link..."
	msgResolveFailed    = "❌ Failed to fetch video from API."
	msgDirectFallback   = "ℹ️ Direct send unavailable, downloading instead..."
	msgDownloadingPct   = "⬇️ Downloading... %d%%"
	msgDownloadingBytes = "⬇️ Downloading... %.1f MB transferred"
	msgTooLarge         = "❌ Video is too large to send (limit is just under 2 GB)."
	msgDownloadFailed   = "❌ Download failed: %v"
	msgUploading        = "⬆️ Uploading video..."
	msgUploadFailed     = "❌ Upload failed: %v"
)

// Messenger is the chat-platform capability surface the pipeline needs.
type Messenger interface {
	SendText(chatID int64, text string) (int, error)
	EditText(chatID int64, messageID int, text string) error
	DeleteMessage(chatID int64, messageID int) error
	SendVideoURL(chatID int64, url, caption string) (int, error)
	SendVideoFile(chatID int64, path, caption string) (int, error)
}

// Resolver translates a shared link into a direct media URL.
type Resolver interface {
	Resolve(ctx context.Context, baseURL, link string) (*domain.ResolvedMedia, error)
}

// Fetcher streams a URL to a local file with progress reporting.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string, onProgress fetch.ProgressFunc) error
}

// DeleteScheduler schedules deferred deletion of a sent message.
type DeleteScheduler interface {
	ScheduleDelete(chatID int64, messageID int)
}

// RelayService runs the fetch-relay pipeline for one submitted link:
// resolve, fetch, re-upload, schedule deletion.
type RelayService struct {
	messenger Messenger
	resolver  Resolver
	fetcher   Fetcher
	scheduler DeleteScheduler
	logger    *zap.Logger
}

// NewRelayService creates a new relay service
func NewRelayService(
	messenger Messenger,
	resolver Resolver,
	fetcher Fetcher,
	scheduler DeleteScheduler,
	logger *zap.Logger,
) *RelayService {
	return &RelayService{
		messenger: messenger,
		resolver:  resolver,
		fetcher:   fetcher,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Process relays the link submitted in chatID through the user's
// resolver. Failures are surfaced by editing the status message; the
// returned error is for the caller's log only.
func (s *RelayService) Process(ctx context.Context, chatID int64, baseURL, link string) error {
	statusID, err := s.messenger.SendText(chatID, msgProcessing)
	if err != nil {
		s.logger.Error("Failed to send status message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return err
	}

	media, err := s.resolver.Resolve(ctx, baseURL, link)
	if err != nil {
		s.logger.Warn("Resolver call failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		s.editStatus(chatID, statusID, msgResolveFailed)
		return err
	}

	s.logger.Info("Link resolved",
		zap.Int64("chat_id", chatID),
		zap.String("name", media.DisplayName),
		zap.String("size", media.SizeLabel),
	)

	// Fast path: hand the remote URL straight to the platform. On any
	// failure fall through to download-then-upload without surfacing
	// the fast-path error beyond an informational notice.
	if videoID, directErr := s.messenger.SendVideoURL(chatID, media.DirectURL, media.Caption()); directErr == nil {
		telemetry.Inc(telemetry.UploadsSucceeded)
		s.finish(chatID, statusID, videoID)
		return nil
	} else {
		s.logger.Debug("Direct-URL send rejected, falling back to download",
			zap.Int64("chat_id", chatID),
			zap.Error(directErr),
		)
		s.editStatus(chatID, statusID, msgDirectFallback)
	}

	dest := filepath.Join(os.TempDir(), fmt.Sprintf("relay-%s.mp4", uuid.NewString()))
	defer s.removeTemp(dest)

	onProgress := func(p fetch.Progress) {
		if p.Percent >= 0 {
			s.editStatus(chatID, statusID, fmt.Sprintf(msgDownloadingPct, p.Percent))
			return
		}
		s.editStatus(chatID, statusID, fmt.Sprintf(msgDownloadingBytes, float64(p.Bytes)/1e6))
	}

	if err := s.fetcher.Fetch(ctx, media.DirectURL, dest, onProgress); err != nil {
		var tooLarge *domain.TooLargeError
		if errors.As(err, &tooLarge) {
			s.editStatus(chatID, statusID, msgTooLarge)
		} else {
			s.editStatus(chatID, statusID, fmt.Sprintf(msgDownloadFailed, err))
		}
		s.logger.Warn("Download failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return err
	}

	s.editStatus(chatID, statusID, msgUploading)

	videoID, err := s.messenger.SendVideoFile(chatID, dest, media.Caption())
	if err != nil {
		telemetry.Inc(telemetry.UploadsFailed)
		s.editStatus(chatID, statusID, fmt.Sprintf(msgUploadFailed, err))
		s.logger.Error("Upload failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return &domain.UploadError{Err: err}
	}

	telemetry.Inc(telemetry.UploadsSucceeded)
	s.finish(chatID, statusID, videoID)
	return nil
}

// finish deletes the status message and schedules the relayed video's
// deferred deletion.
func (s *RelayService) finish(chatID int64, statusID, videoID int) {
	if err := s.messenger.DeleteMessage(chatID, statusID); err != nil {
		s.logger.Warn("Failed to delete status message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
	s.scheduler.ScheduleDelete(chatID, videoID)
}

// editStatus edits the in-flight status message. Edit failures (rate
// limits, deleted message) never interrupt the pipeline.
func (s *RelayService) editStatus(chatID int64, messageID int, text string) {
	if err := s.messenger.EditText(chatID, messageID, text); err != nil {
		s.logger.Debug("Failed to edit status message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// removeTemp removes the request's temporary file. Cleanup failure is
// swallowed and logged so it never masks the error being reported.
func (s *RelayService) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove temp file",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
