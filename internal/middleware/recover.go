package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// ApologyText is sent when a handler panics
const ApologyText = "❌ Произошла ошибка. Попробуйте ещё раз или вернитесь в меню: /start"

// Recover turns a handler panic into an apology message so the poller keeps running
func Recover(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				logger.Error("Handler panicked",
					zap.Any("panic", r),
					zap.Int64("chat_id", ChatID(c)),
					zap.Stack("stack"),
				)

				if c.Callback() != nil {
					if ackErr := c.Respond(); ackErr != nil {
						logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
					}
				}
				err = c.Send(ApologyText)
			}()

			return next(c)
		}
	}
}

// ChatID returns the chat an update belongs to, falling back to the sender
func ChatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if sender := c.Sender(); sender != nil {
		return sender.ID
	}
	return 0
}
