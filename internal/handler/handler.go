package handler

import (
	"sync"
	"time"

	"assistant/internal/domain"
	"assistant/internal/format"
	"assistant/internal/links"
	"assistant/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	chatLockStripes   = 64
	maxProductButtons = 5
)

// Handler manages all bot interactions
type Handler struct {
	bot            *tele.Bot
	weatherService *service.WeatherService
	productService *service.ProductService
	logger         *zap.Logger

	// Per-chat modes (in-memory state machine)
	sessions   map[int64]domain.Session
	sessionMux sync.RWMutex
	sessionTTL time.Duration
	lastPrune  time.Time

	// Serializes updates of one chat; chats share a stripe by id
	chatLocks [chatLockStripes]sync.Mutex

	now func() time.Time
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	weatherService *service.WeatherService,
	productService *service.ProductService,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:            bot,
		weatherService: weatherService,
		productService: productService,
		logger:         logger,
		sessions:       make(map[int64]domain.Session),
		sessionTTL:     sessionTTL,
		now:            time.Now,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/menu", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Everything that isn't text
	for _, endpoint := range mediaEndpoints {
		h.bot.Handle(endpoint, h.handleMedia)
	}

	// Callback queries (inline buttons)
	h.bot.Handle(&btnWeather, h.handleWeatherButton)
	h.bot.Handle(&btnProducts, h.handleProductsButton)
	h.bot.Handle(&btnRealEstate, h.handleRealEstateButton)
	h.bot.Handle(&btnBackToMenu, h.handleBackToMenu)
	h.bot.Handle(&btnCategories, h.handleCategories)
	h.bot.Handle(&btnDeals, h.handleDeals)
	h.bot.Handle(&btnProductsMenu, h.handleProductsButton)
	h.bot.Handle(&btnProductsSearch, h.handleProductsSearch)

	// Generic callback handler for buttons that lost their unique prefix
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// Commands returns the command list shown in the Telegram client
func Commands() []tele.Command {
	return []tele.Command{
		{Text: "start", Description: "Главное меню"},
		{Text: "menu", Description: "Вернуться в меню"},
		{Text: "help", Description: "Что умеет бот"},
	}
}

// GetMode returns chat's current mode
func (h *Handler) GetMode(chatID int64) domain.Mode {
	h.sessionMux.RLock()
	defer h.sessionMux.RUnlock()

	session, exists := h.sessions[chatID]
	if !exists || session.Expired(h.now(), h.sessionTTL) {
		return domain.ModeIdle
	}
	return session.Mode
}

// SetMode sets chat's mode and refreshes its expiry
func (h *Handler) SetMode(chatID int64, mode domain.Mode) {
	if mode == domain.ModeIdle {
		h.ResetMode(chatID)
		return
	}

	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()

	now := h.now()
	h.sessions[chatID] = domain.Session{Mode: mode, UpdatedAt: now}
	h.pruneLocked(now)
}

// ResetMode returns chat to idle
func (h *Handler) ResetMode(chatID int64) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	delete(h.sessions, chatID)
}

// sessionCount returns the number of chats holding a non-idle mode
func (h *Handler) sessionCount() int {
	h.sessionMux.RLock()
	defer h.sessionMux.RUnlock()
	return len(h.sessions)
}

// pruneLocked drops expired sessions at most once per TTL
func (h *Handler) pruneLocked(now time.Time) {
	if h.sessionTTL <= 0 || now.Sub(h.lastPrune) < h.sessionTTL {
		return
	}
	h.lastPrune = now

	pruned := 0
	for chatID, session := range h.sessions {
		if session.Expired(now, h.sessionTTL) {
			delete(h.sessions, chatID)
			pruned++
		}
	}

	if pruned > 0 {
		h.logger.Info("Expired sessions pruned",
			zap.Int("pruned", pruned),
			zap.Int("active", len(h.sessions)),
		)
	}
}

// lockChat locks the stripe owning chatID and returns its unlock
func (h *Handler) lockChat(chatID int64) func() {
	lock := &h.chatLocks[uint64(chatID)%chatLockStripes]
	lock.Lock()
	return lock.Unlock
}

var mediaEndpoints = []string{
	tele.OnPhoto,
	tele.OnDocument,
	tele.OnSticker,
	tele.OnAudio,
	tele.OnVideo,
	tele.OnVoice,
	tele.OnVideoNote,
	tele.OnAnimation,
	tele.OnLocation,
	tele.OnContact,
}

// Inline keyboard buttons
var (
	btnWeather = tele.Btn{
		Unique: "weather",
		Text:   "🌤️ Погода",
	}
	btnProducts = tele.Btn{
		Unique: "products",
		Text:   "🛒 Поиск товаров",
	}
	btnRealEstate = tele.Btn{
		Unique: "real_estate",
		Text:   "🏠 Недвижимость",
	}
	btnBackToMenu = tele.Btn{
		Unique: "back_to_menu",
		Text:   "🔙 Назад в меню",
	}
	btnCategories = tele.Btn{
		Unique: "products_categories",
		Text:   "🔍 Поиск по категориям",
	}
	btnDeals = tele.Btn{
		Unique: "products_deals",
		Text:   "💰 Лучшие предложения",
	}
	btnProductsMenu = tele.Btn{
		Unique: "products_menu",
		Text:   "🔙 Назад",
	}
	btnProductsSearch = tele.Btn{
		Unique: "products_search",
		Text:   "🔄 Попробовать другой запрос",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnWeather),
		menu.Row(btnProducts),
		menu.Row(btnRealEstate),
	)
	return menu
}

func backMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnBackToMenu))
	return markup
}

// productPromptMarkup offers a marketplace search for query when it is set
func productPromptMarkup(query string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{markup.Row(btnCategories, btnDeals)}
	if query != "" {
		rows = append(rows, markup.Row(markup.URL(marketButtonText, links.MarketSearch(query))))
	}
	rows = append(rows, markup.Row(btnBackToMenu))
	markup.Inline(rows...)
	return markup
}

func categoriesMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnDeals),
		markup.Row(btnProductsMenu),
	)
	return markup
}

// resultsMarkup links the first products directly and the full query to the marketplace
func resultsMarkup(products []domain.Product, query string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := productRows(markup, products)
	if query != "" {
		rows = append(rows, markup.Row(markup.URL(marketButtonText, links.MarketSearch(query))))
	}
	rows = append(rows, markup.Row(btnProductsSearch, btnProductsMenu))
	markup.Inline(rows...)
	return markup
}

func productRows(markup *tele.ReplyMarkup, products []domain.Product) []tele.Row {
	rows := []tele.Row{}
	for i, p := range products {
		if i == maxProductButtons {
			break
		}
		if p.LinkURL == "" {
			continue
		}
		rows = append(rows, markup.Row(markup.URL(format.ProductButton(p), p.LinkURL)))
	}
	return rows
}

func realEstateMarkup(query string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.URL(realEstateButtonText, links.RealEstateSearch(query))),
		markup.Row(btnBackToMenu),
	)
	return markup
}
