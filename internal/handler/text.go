package handler

import (
	"context"
	"errors"
	"strings"

	"assistant/internal/domain"
	"assistant/internal/format"
	"assistant/internal/middleware"
	"assistant/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on chat's mode
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	chatID := middleware.ChatID(c)
	unlock := h.lockChat(chatID)
	defer unlock()

	mode := h.GetMode(chatID)
	if mode != domain.ModeIdle {
		// Activity keeps the session alive
		h.SetMode(chatID, mode)
	}

	switch mode {
	case domain.ModeAwaitingWeatherCity:
		return h.handleWeatherQuery(c, chatID, text)
	case domain.ModeAwaitingProductQuery:
		return h.handleProductQuery(c, chatID, text)
	case domain.ModeAwaitingRealEstateQuery:
		return h.handleRealEstateQuery(c, chatID, text)
	default:
		return c.Send(idleHintText, mainMenuMarkup())
	}
}

func (h *Handler) handleWeatherQuery(c tele.Context, chatID int64, text string) error {
	if text == "" {
		return h.sendMarkdown(c, weatherPromptText(h.weatherService.SupportedCities()), backMarkup())
	}

	city, snapshot, err := h.weatherService.Forecast(context.Background(), text)
	switch {
	case errors.Is(err, service.ErrCityNotFound):
		h.logger.Info("Unknown city requested",
			zap.Int64("chat_id", chatID),
			zap.String("city", text),
		)
		return h.sendMarkdown(c, cityNotFoundText(text, h.weatherService.SupportedCities()), backMarkup())
	case err != nil:
		h.logger.Error("Failed to get weather",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("city", city.Name),
		)
		return c.Send(weatherFailedText, backMarkup())
	}

	h.logger.Info("Weather sent",
		zap.Int64("chat_id", chatID),
		zap.String("city", city.Name),
	)
	return h.sendMarkdown(c, format.Weather(snapshot, city.Title), backMarkup())
}

func (h *Handler) handleProductQuery(c tele.Context, chatID int64, text string) error {
	if text == "" {
		return c.Send(emptyProductQueryText, productPromptMarkup(""))
	}

	products := h.productService.Search(text, domain.ProductFilter{})
	h.logger.Info("Products searched",
		zap.Int64("chat_id", chatID),
		zap.String("query", text),
		zap.Int("found", len(products)),
	)

	if len(products) == 0 {
		return h.sendMarkdown(c, format.Products(nil, text), productPromptMarkup(text))
	}
	return h.sendMarkdown(c, format.Products(products, text), resultsMarkup(products, text), tele.NoPreview)
}

func (h *Handler) handleRealEstateQuery(c tele.Context, chatID int64, text string) error {
	if text == "" {
		return c.Send(emptyRealEstateQueryText, backMarkup())
	}

	h.logger.Info("Real estate link sent",
		zap.Int64("chat_id", chatID),
		zap.String("query", text),
	)
	return h.sendMarkdown(c, realEstateResultText(text), realEstateMarkup(text))
}
