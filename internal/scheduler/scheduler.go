// Package scheduler deletes relayed messages after a retention window.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gitkachoda/tg-api-hitter/internal/domain"
	"github.com/gitkachoda/tg-api-hitter/internal/telemetry"
)

const defaultHandoff = 10 * time.Second

// MessageDeleter deletes a previously sent message.
type MessageDeleter interface {
	DeleteMessage(chatID int64, messageID int) error
}

// Scheduler registers one-shot deletion timers. When a timer fires it
// enqueues the task onto a channel drained by Run, so the platform
// call always happens on the loop that owns the platform client rather
// than on an arbitrary timer goroutine. Pending deletions are lost on
// restart.
type Scheduler struct {
	deleter  MessageDeleter
	logger   *zap.Logger
	delay    time.Duration
	handoff  time.Duration
	requests chan domain.SentMessage
}

// New creates a scheduler deleting messages delay after scheduling.
func New(deleter MessageDeleter, logger *zap.Logger, delay time.Duration) *Scheduler {
	return &Scheduler{
		deleter:  deleter,
		logger:   logger,
		delay:    delay,
		handoff:  defaultHandoff,
		requests: make(chan domain.SentMessage, 64),
	}
}

// Run drains fired deletion tasks until ctx is cancelled. Failures are
// logged and discarded: the message may already be gone, which is fine.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Deletion scheduler started", zap.Duration("retention", s.delay))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Deletion scheduler stopped")
			return
		case msg := <-s.requests:
			if err := s.deleter.DeleteMessage(msg.ChatID, msg.MessageID); err != nil {
				telemetry.Inc(telemetry.DeletionsFailed)
				s.logger.Warn("Failed to delete relayed message",
					zap.Int64("chat_id", msg.ChatID),
					zap.Int("message_id", msg.MessageID),
					zap.Error(err),
				)
				continue
			}
			telemetry.Inc(telemetry.DeletionsExecuted)
			s.logger.Info("Deleted relayed message after retention window",
				zap.Int64("chat_id", msg.ChatID),
				zap.Int("message_id", msg.MessageID),
			)
		}
	}
}

// ScheduleDelete registers a fire-and-forget deletion of the message
// after the retention window. The firing timer waits at most the
// hand-off bound for the drain loop; past that the attempt is
// abandoned and logged, never retried.
func (s *Scheduler) ScheduleDelete(chatID int64, messageID int) {
	s.logger.Debug("Scheduled message deletion",
		zap.Int64("chat_id", chatID),
		zap.Int("message_id", messageID),
		zap.Duration("after", s.delay),
	)
	time.AfterFunc(s.delay, func() {
		select {
		case s.requests <- domain.SentMessage{ChatID: chatID, MessageID: messageID}:
		case <-time.After(s.handoff):
			s.logger.Warn("Deletion hand-off timed out, abandoning",
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", messageID),
			)
		}
	})
}
