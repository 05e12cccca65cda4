package handler

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText routes free text by the user's state: mid-configuration
// text becomes the base URL, anything else is a link submission.
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /); registered ones are routed
	// to their own handlers before reaching here.
	if strings.HasPrefix(text, "/") {
		return nil
	}

	awaiting, err := h.configService.Awaiting(userID)
	if err != nil {
		h.logger.Error("Failed to read user state", zap.Error(err))
		return c.Send("Something went wrong. Please try again.")
	}

	if awaiting {
		baseURL, err := h.configService.SetBaseURL(userID, text)
		if err != nil {
			h.logger.Error("Failed to store base URL", zap.Error(err))
			return c.Send("Something went wrong. Please try again.")
		}

		h.logger.Info("User configured base URL",
			zap.Int64("user_id", userID),
			zap.String("base_url", baseURL),
		)
		return c.Send(fmt.Sprintf("✅ Base URL saved: %s\n\nNow send me a link to relay.", baseURL))
	}

	baseURL, err := h.configService.BaseURL(userID)
	if err != nil {
		h.logger.Error("Failed to read base URL", zap.Error(err))
		return c.Send("Something went wrong. Please try again.")
	}
	if baseURL == "" {
		return c.Send("⚠️ No base URL configured. Send /baseurl first.")
	}

	h.logger.Info("Link submitted",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", c.Chat().ID),
	)

	// Failures are surfaced to the user through the status message;
	// the error here is for the log only.
	if err := h.relayService.Process(context.Background(), c.Chat().ID, baseURL, text); err != nil {
		h.logger.Warn("Relay pipeline failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
	return nil
}
