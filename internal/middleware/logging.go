package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging creates an observer middleware that logs every inbound
// update without altering dispatch.
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if sender := c.Sender(); sender != nil {
				logger.Debug("Update received",
					zap.Int64("user_id", sender.ID),
					zap.String("username", sender.Username),
					zap.String("text", c.Text()),
				)
			}
			return next(c)
		}
	}
}
