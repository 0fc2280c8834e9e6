package handler

import (
	"strings"

	"assistant/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start and /menu commands
func (h *Handler) handleStart(c tele.Context) error {
	chatID := middleware.ChatID(c)
	unlock := h.lockChat(chatID)
	defer unlock()

	h.logger.Info("User opened main menu",
		zap.Int64("chat_id", chatID),
		zap.String("username", c.Sender().Username),
		zap.String("command", c.Text()),
	)

	h.ResetMode(chatID)

	text := MainMenuText
	if strings.HasPrefix(c.Text(), "/start") {
		text = greetingText
	}
	return h.sendMarkdown(c, text, mainMenuMarkup())
}

// handleHelp handles /help command
func (h *Handler) handleHelp(c tele.Context) error {
	return h.sendMarkdown(c, helpText, nil)
}

// handleMedia answers anything that isn't text
func (h *Handler) handleMedia(c tele.Context) error {
	h.logger.Debug("Non-text message ignored", zap.Int64("chat_id", middleware.ChatID(c)))
	return c.Send(textOnlyHintText)
}
