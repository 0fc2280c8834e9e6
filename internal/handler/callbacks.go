package handler

import (
	"strings"
	"unicode"

	"assistant/internal/domain"
	"assistant/internal/format"
	"assistant/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback.
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, chatID int64) error {
	if err == nil {
		return nil
	}

	// Same text and markup as before: another press already rendered it
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("chat_id", chatID),
			zap.String("callback_id", c.Callback().ID),
		)
		if ackErr := c.Respond(); ackErr != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
		}
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("chat_id", chatID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// editOrSend edits the message a button belongs to, or sends a new one for commands
// and when the edit fails
func (h *Handler) editOrSend(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return h.sendMarkdown(c, text, markup, tele.NoPreview)
	}

	if err := c.Edit(text, markup, tele.ModeMarkdown, tele.NoPreview); err != nil {
		if handleErr := h.handleEditError(err, c, middleware.ChatID(c)); handleErr == nil {
			return nil
		}
		return h.sendMarkdown(c, text, markup, tele.NoPreview)
	}
	return c.Respond()
}

// sendMarkdown sends text in Markdown mode and resends it as plain text when
// Telegram can't parse the entities
func (h *Handler) sendMarkdown(c tele.Context, text string, markup *tele.ReplyMarkup, opts ...interface{}) error {
	base := make([]interface{}, 0, len(opts)+2)
	if markup != nil {
		base = append(base, markup)
	}
	base = append(base, opts...)

	err := c.Send(text, append(base, tele.ModeMarkdown)...)
	if err == nil || !strings.Contains(err.Error(), "can't parse entities") {
		return err
	}

	h.logger.Warn("Markdown rejected, sending plain text",
		zap.Error(err),
		zap.Int64("chat_id", middleware.ChatID(c)),
	)
	return c.Send(text, base...)
}

// handleCallback handles callbacks telebot could not route by unique
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("chat_id", middleware.ChatID(c)),
	)

	key := callback.Unique
	if key == "" {
		key = data
	}

	switch key {
	case btnWeather.Unique:
		return h.handleWeatherButton(c)
	case btnProducts.Unique, btnProductsMenu.Unique:
		return h.handleProductsButton(c)
	case btnRealEstate.Unique:
		return h.handleRealEstateButton(c)
	case btnBackToMenu.Unique:
		return h.handleBackToMenu(c)
	case btnCategories.Unique:
		return h.handleCategories(c)
	case btnDeals.Unique:
		return h.handleDeals(c)
	case btnProductsSearch.Unique:
		return h.handleProductsSearch(c)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// switchMode moves the chat to mode and renders the screen for it
func (h *Handler) switchMode(c tele.Context, mode domain.Mode, text string, markup *tele.ReplyMarkup) error {
	chatID := middleware.ChatID(c)
	unlock := h.lockChat(chatID)
	defer unlock()

	h.SetMode(chatID, mode)
	h.logger.Debug("Mode changed",
		zap.Int64("chat_id", chatID),
		zap.String("mode", string(mode)),
	)
	return h.editOrSend(c, text, markup)
}

func (h *Handler) handleWeatherButton(c tele.Context) error {
	return h.switchMode(c, domain.ModeAwaitingWeatherCity,
		weatherPromptText(h.weatherService.SupportedCities()), backMarkup())
}

func (h *Handler) handleProductsButton(c tele.Context) error {
	return h.switchMode(c, domain.ModeAwaitingProductQuery, productPromptText, productPromptMarkup(""))
}

func (h *Handler) handleRealEstateButton(c tele.Context) error {
	return h.switchMode(c, domain.ModeAwaitingRealEstateQuery, realEstatePromptText, backMarkup())
}

func (h *Handler) handleBackToMenu(c tele.Context) error {
	return h.switchMode(c, domain.ModeIdle, MainMenuText, mainMenuMarkup())
}

func (h *Handler) handleCategories(c tele.Context) error {
	return h.switchMode(c, domain.ModeAwaitingProductQuery, categoriesText, categoriesMarkup())
}

func (h *Handler) handleProductsSearch(c tele.Context) error {
	return h.switchMode(c, domain.ModeAwaitingProductQuery, productSearchAgainText, productPromptMarkup(""))
}

// handleDeals shows discounted products, biggest discount first
func (h *Handler) handleDeals(c tele.Context) error {
	deals := h.productService.Deals()
	markup := &tele.ReplyMarkup{}
	rows := append(productRows(markup, deals), markup.Row(btnProductsSearch, btnProductsMenu))
	markup.Inline(rows...)

	return h.switchMode(c, domain.ModeAwaitingProductQuery, format.Deals(deals), markup)
}
