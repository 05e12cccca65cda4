package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleBaseURL handles /baseurl command: the next text message the
// user sends is stored as their base URL.
func (h *Handler) handleBaseURL(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.configService.BeginBaseURLInput(userID); err != nil {
		h.logger.Error("Failed to set awaiting state", zap.Error(err))
		return c.Send("Something went wrong. Please try again.")
	}

	return c.Send("Send me the API base URL (for example https://api.example.com):")
}

// handleStop handles /stop command
func (h *Handler) handleStop(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.configService.ClearBaseURL(userID); err != nil {
		h.logger.Error("Failed to clear base URL", zap.Error(err))
		return c.Send("Something went wrong. Please try again.")
	}

	h.logger.Info("User cleared base URL", zap.Int64("user_id", userID))
	return c.Send("🛑 Base URL cleared. Send /baseurl to configure a new one.")
}
