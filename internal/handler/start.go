package handler

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	first, err := h.configService.MarkSeen(userID)
	if err != nil {
		h.logger.Error("Failed to mark user as seen", zap.Error(err))
	}

	if first {
		return c.Send("👋 Welcome! Bot is Active ✅\n\nSend /baseurl to set your API base URL, then send me a link to relay.")
	}
	return c.Send("Bot is Active ✅")
}

// handleStatus handles /status command
func (h *Handler) handleStatus(c tele.Context) error {
	userID := c.Sender().ID

	baseURL, err := h.configService.BaseURL(userID)
	if err != nil {
		h.logger.Error("Failed to read base URL", zap.Error(err))
		return c.Send("Something went wrong. Please try again.")
	}

	if baseURL == "" {
		return c.Send("✅ Bot is running.\n⚠️ Base URL is not set. Send /baseurl to configure it.")
	}
	return c.Send(fmt.Sprintf("✅ Bot is running.\nBase URL: %s", baseURL))
}
