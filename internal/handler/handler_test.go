package handler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"assistant/internal/domain"
	"assistant/internal/links"
	"assistant/internal/repository/static"
	"assistant/internal/service"
	"assistant/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	tele "gopkg.in/telebot.v3"
)

const testChatID int64 = 1001

func newTestHandler(t *testing.T) (*Handler, *testutil.MockFetcher) {
	t.Helper()

	source := static.NewSource()
	cities, err := source.ListCities(context.Background())
	require.NoError(t, err)
	products, err := source.ListProducts(context.Background())
	require.NoError(t, err)

	logger := testutil.NewTestLogger()
	fetcher := &testutil.MockFetcher{}

	h := NewHandler(
		nil,
		service.NewWeatherService(cities, fetcher, logger),
		service.NewProductService(products),
		time.Hour,
		logger,
	)
	return h, fetcher
}

func buttons(markup *tele.ReplyMarkup) []tele.InlineButton {
	if markup == nil {
		return nil
	}
	var out []tele.InlineButton
	for _, row := range markup.InlineKeyboard {
		out = append(out, row...)
	}
	return out
}

func uniques(markup *tele.ReplyMarkup) []string {
	var out []string
	for _, btn := range buttons(markup) {
		if btn.Unique != "" {
			out = append(out, btn.Unique)
		}
	}
	return out
}

func urls(markup *tele.ReplyMarkup) []string {
	var out []string
	for _, btn := range buttons(markup) {
		if btn.URL != "" {
			out = append(out, btn.URL)
		}
	}
	return out
}

func TestWeatherThenBackToMenu(t *testing.T) {
	h, fetcher := newTestHandler(t)

	c := testutil.NewCallbackContext(testChatID, "weather")
	require.NoError(t, h.handleWeatherButton(c))

	assert.Equal(t, domain.ModeAwaitingWeatherCity, h.GetMode(testChatID))
	require.Len(t, c.Edited, 1)
	assert.Contains(t, c.Edited[0].Text, "Москва")
	assert.Equal(t, []string{"back_to_menu"}, uniques(c.Edited[0].Markup))
	assert.Len(t, c.Responses, 1)

	c = testutil.NewCallbackContext(testChatID, "back_to_menu")
	require.NoError(t, h.handleBackToMenu(c))

	assert.Equal(t, domain.ModeIdle, h.GetMode(testChatID))
	require.Len(t, c.Edited, 1)
	assert.Equal(t, MainMenuText, c.Edited[0].Text)
	assert.Equal(t, []string{"weather", "products", "real_estate"}, uniques(c.Edited[0].Markup))
	assert.Len(t, c.Responses, 1)

	fetcher.AssertNotCalled(t, "Forecast", mock.Anything, mock.Anything, mock.Anything)
}

func TestMenuButtons_SetMode(t *testing.T) {
	tests := []struct {
		unique   string
		expected domain.Mode
	}{
		{unique: "weather", expected: domain.ModeAwaitingWeatherCity},
		{unique: "products", expected: domain.ModeAwaitingProductQuery},
		{unique: "real_estate", expected: domain.ModeAwaitingRealEstateQuery},
		{unique: "products_categories", expected: domain.ModeAwaitingProductQuery},
		{unique: "products_deals", expected: domain.ModeAwaitingProductQuery},
		{unique: "products_menu", expected: domain.ModeAwaitingProductQuery},
		{unique: "products_search", expected: domain.ModeAwaitingProductQuery},
		{unique: "back_to_menu", expected: domain.ModeIdle},
	}

	for _, tt := range tests {
		t.Run(tt.unique, func(t *testing.T) {
			h, _ := newTestHandler(t)
			h.SetMode(testChatID, domain.ModeAwaitingRealEstateQuery)

			c := testutil.NewCallbackContext(testChatID, tt.unique)
			require.NoError(t, h.handleCallback(c))

			assert.Equal(t, tt.expected, h.GetMode(testChatID))
			assert.Len(t, c.Replies(), 1)
			assert.Len(t, c.Responses, 1)
		})
	}
}

func TestHandleCallback_RoutesByData(t *testing.T) {
	h, _ := newTestHandler(t)

	c := &testutil.FakeContext{
		ChatID:      testChatID,
		UserID:      testChatID,
		CallbackRaw: &tele.Callback{ID: "cb", Data: "\fproducts_deals "},
	}
	require.NoError(t, h.handleCallback(c))

	assert.Equal(t, domain.ModeAwaitingProductQuery, h.GetMode(testChatID))
	require.Len(t, c.Edited, 1)
	assert.Contains(t, c.Edited[0].Text, "Товаров со скидками: *6*")
	assert.Len(t, urls(c.Edited[0].Markup), 5)
}

func TestHandleCallback_Unhandled(t *testing.T) {
	h, _ := newTestHandler(t)

	c := testutil.NewCallbackContext(testChatID, "products_next")
	require.NoError(t, h.handleCallback(c))

	assert.Empty(t, c.Replies())
	assert.Len(t, c.Responses, 1)
	assert.Equal(t, domain.ModeIdle, h.GetMode(testChatID))
}

func TestEditOrSend_EditFailures(t *testing.T) {
	tests := []struct {
		name         string
		editErr      error
		expectedSent int
	}{
		{
			name:         "message deleted",
			editErr:      errors.New("telegram: message to edit not found (400)"),
			expectedSent: 1,
		},
		{
			name:         "message is not modified",
			editErr:      errors.New("telegram: Bad Request: message is not modified (400)"),
			expectedSent: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			c := testutil.NewCallbackContext(testChatID, "back_to_menu")
			c.EditErr = tt.editErr

			require.NoError(t, h.handleBackToMenu(c))

			assert.Len(t, c.Sent, tt.expectedSent)
			assert.Len(t, c.Responses, 1)
			if tt.expectedSent > 0 {
				assert.Equal(t, MainMenuText, c.Sent[0].Text)
			}
		})
	}
}

func TestWeatherQuery_CityVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		title string
		lat   float64
		lon   float64
	}{
		{name: "exact", input: "Москва", title: "Москва", lat: 55.7558, lon: 37.6176},
		{name: "upper case with spaces", input: "  МОСКВА  ", title: "Москва", lat: 55.7558, lon: 37.6176},
		{name: "alias", input: "СПб", title: "Санкт-Петербург", lat: 59.9343, lon: 30.3351},
		{name: "alias piter", input: "питер", title: "Санкт-Петербург", lat: 59.9343, lon: 30.3351},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fetcher := newTestHandler(t)
			h.SetMode(testChatID, domain.ModeAwaitingWeatherCity)

			fetcher.On("Forecast", mock.Anything, tt.lat, tt.lon).
				Return(testutil.NewTestSnapshot("clear", 3, 5), nil)

			c := testutil.NewTextContext(testChatID, tt.input)
			require.NoError(t, h.handleText(c))

			require.Len(t, c.Sent, 1)
			assert.Contains(t, c.Sent[0].Text, "*Погода:* "+tt.title)
			assert.Contains(t, c.Sent[0].Text, "+3°C")
			assert.Equal(t, []string{"back_to_menu"}, uniques(c.Sent[0].Markup))
			assert.Equal(t, domain.ModeAwaitingWeatherCity, h.GetMode(testChatID))
			fetcher.AssertExpectations(t)
		})
	}
}

func TestWeatherQuery_UnknownCity(t *testing.T) {
	h, fetcher := newTestHandler(t)
	h.SetMode(testChatID, domain.ModeAwaitingWeatherCity)

	c := testutil.NewTextContext(testChatID, "Лондон")
	require.NoError(t, h.handleText(c))

	require.Len(t, c.Sent, 1)
	assert.Contains(t, c.Sent[0].Text, "Лондон")
	assert.Contains(t, c.Sent[0].Text, "не найден")
	assert.Contains(t, c.Sent[0].Text, "Новокуйбышевск")
	assert.Equal(t, domain.ModeAwaitingWeatherCity, h.GetMode(testChatID))
	fetcher.AssertNotCalled(t, "Forecast", mock.Anything, mock.Anything, mock.Anything)
}

func TestWeatherQuery_FetchFailure(t *testing.T) {
	h, fetcher := newTestHandler(t)
	h.SetMode(testChatID, domain.ModeAwaitingWeatherCity)

	fetcher.On("Forecast", mock.Anything, 57.1522, 65.5272).
		Return(nil, errors.New("connection refused")).Once()

	c := testutil.NewTextContext(testChatID, "Тюмень")
	require.NoError(t, h.handleText(c))

	require.Len(t, c.Sent, 1)
	assert.Equal(t, weatherFailedText, c.Sent[0].Text)
	assert.Equal(t, domain.ModeAwaitingWeatherCity, h.GetMode(testChatID))
	fetcher.AssertNumberOfCalls(t, "Forecast", 1)
}

func TestProductQuery_Found(t *testing.T) {
	h, _ := newTestHandler(t)
	h.SetMode(testChatID, domain.ModeAwaitingProductQuery)

	c := testutil.NewTextContext(testChatID, "nike")
	require.NoError(t, h.handleText(c))

	require.Len(t, c.Sent, 1)
	reply := c.Sent[0]
	assert.Contains(t, reply.Text, "Найдено товаров: *1*")
	assert.Contains(t, reply.Text, "Кроссовки Nike Air Max 90")
	assert.Equal(t, []string{
		"https://www.wildberries.ru/catalog/3000567/detail.aspx",
		links.MarketSearch("nike"),
	}, urls(reply.Markup))
	assert.Equal(t, []string{"products_search", "products_menu"}, uniques(reply.Markup))
	assert.Equal(t, domain.ModeAwaitingProductQuery, h.GetMode(testChatID))
}

func TestProductQuery_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	h.SetMode(testChatID, domain.ModeAwaitingProductQuery)

	c := testutil.NewTextContext(testChatID, "ничего-такого")
	require.NoError(t, h.handleText(c))

	require.Len(t, c.Sent, 1)
	assert.Contains(t, c.Sent[0].Text, "Товары не найдены")
	assert.Equal(t, []string{links.MarketSearch("ничего-такого")}, urls(c.Sent[0].Markup))
	assert.Equal(t, []string{"products_categories", "products_deals", "back_to_menu"}, uniques(c.Sent[0].Markup))
}

func TestRealEstateQuery(t *testing.T) {
	h, _ := newTestHandler(t)
	h.SetMode(testChatID, domain.ModeAwaitingRealEstateQuery)

	c := testutil.NewTextContext(testChatID, "2-комнатная квартира аренда")
	require.NoError(t, h.handleText(c))

	require.Len(t, c.Sent, 1)
	assert.Contains(t, c.Sent[0].Text, "2-комнатная квартира аренда")
	assert.Equal(t, []string{links.RealEstateSearch("2-комнатная квартира аренда")}, urls(c.Sent[0].Markup))
	assert.Equal(t, []string{"back_to_menu"}, uniques(c.Sent[0].Markup))
}

func TestEmptyQueries(t *testing.T) {
	tests := []struct {
		mode     domain.Mode
		expected string
	}{
		{mode: domain.ModeAwaitingProductQuery, expected: emptyProductQueryText},
		{mode: domain.ModeAwaitingRealEstateQuery, expected: emptyRealEstateQueryText},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			h, _ := newTestHandler(t)
			h.SetMode(testChatID, tt.mode)

			c := testutil.NewTextContext(testChatID, "   ")
			require.NoError(t, h.handleText(c))

			require.Len(t, c.Sent, 1)
			assert.Equal(t, tt.expected, c.Sent[0].Text)
			assert.Equal(t, tt.mode, h.GetMode(testChatID))
		})
	}
}

func TestIdleText_ShowsHint(t *testing.T) {
	h, _ := newTestHandler(t)

	c := testutil.NewTextContext(testChatID, "привет")
	require.NoError(t, h.handleText(c))

	require.Len(t, c.Sent, 1)
	assert.Equal(t, idleHintText, c.Sent[0].Text)
	assert.Equal(t, []string{"weather", "products", "real_estate"}, uniques(c.Sent[0].Markup))
}

func TestCommandText_Ignored(t *testing.T) {
	h, fetcher := newTestHandler(t)
	h.SetMode(testChatID, domain.ModeAwaitingWeatherCity)

	c := testutil.NewTextContext(testChatID, "/weather москва")
	require.NoError(t, h.handleText(c))

	assert.Empty(t, c.Replies())
	fetcher.AssertNotCalled(t, "Forecast", mock.Anything, mock.Anything, mock.Anything)
}

func TestMedia_KeepsMode(t *testing.T) {
	h, _ := newTestHandler(t)
	h.SetMode(testChatID, domain.ModeAwaitingProductQuery)

	c := testutil.NewTextContext(testChatID, "")
	require.NoError(t, h.handleMedia(c))

	require.Len(t, c.Sent, 1)
	assert.Equal(t, textOnlyHintText, c.Sent[0].Text)
	assert.Equal(t, domain.ModeAwaitingProductQuery, h.GetMode(testChatID))
}

func TestStartAndMenu_ResetMode(t *testing.T) {
	tests := []struct {
		command  string
		expected string
	}{
		{command: "/start", expected: greetingText},
		{command: "/menu", expected: MainMenuText},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			h, _ := newTestHandler(t)
			h.SetMode(testChatID, domain.ModeAwaitingWeatherCity)

			c := testutil.NewTextContext(testChatID, tt.command)
			require.NoError(t, h.handleStart(c))

			assert.Equal(t, domain.ModeIdle, h.GetMode(testChatID))
			require.Len(t, c.Sent, 1)
			assert.Equal(t, tt.expected, c.Sent[0].Text)
			assert.Equal(t, []string{"weather", "products", "real_estate"}, uniques(c.Sent[0].Markup))
		})
	}
}

func TestHelp(t *testing.T) {
	h, _ := newTestHandler(t)

	c := testutil.NewTextContext(testChatID, "/help")
	require.NoError(t, h.handleHelp(c))

	require.Len(t, c.Sent, 1)
	assert.Equal(t, helpText, c.Sent[0].Text)
}

func TestModes_ArePerChat(t *testing.T) {
	h, _ := newTestHandler(t)

	require.NoError(t, h.handleWeatherButton(testutil.NewCallbackContext(1, "weather")))
	require.NoError(t, h.handleRealEstateButton(testutil.NewCallbackContext(2, "real_estate")))

	assert.Equal(t, domain.ModeAwaitingWeatherCity, h.GetMode(1))
	assert.Equal(t, domain.ModeAwaitingRealEstateQuery, h.GetMode(2))
	assert.Equal(t, domain.ModeIdle, h.GetMode(3))
}

func TestSessions_Expire(t *testing.T) {
	h, _ := newTestHandler(t)
	core, logs := observer.New(zap.InfoLevel)
	h.logger = zap.New(core)

	now := time.Date(2024, 12, 5, 10, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	h.SetMode(1, domain.ModeAwaitingWeatherCity)
	h.SetMode(2, domain.ModeAwaitingProductQuery)
	assert.Equal(t, 2, h.sessionCount())

	now = now.Add(2 * time.Hour)
	assert.Equal(t, domain.ModeIdle, h.GetMode(1))

	h.SetMode(3, domain.ModeAwaitingRealEstateQuery)
	assert.Equal(t, 1, h.sessionCount())
	assert.Equal(t, domain.ModeAwaitingRealEstateQuery, h.GetMode(3))

	entries := logs.FilterMessage("Expired sessions pruned").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["pruned"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["active"])
}

func TestSessions_ActivityRefreshes(t *testing.T) {
	h, fetcher := newTestHandler(t)

	now := time.Date(2024, 12, 5, 10, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }
	h.SetMode(testChatID, domain.ModeAwaitingWeatherCity)

	now = now.Add(50 * time.Minute)
	require.NoError(t, h.handleText(testutil.NewTextContext(testChatID, "Атлантида")))

	now = now.Add(50 * time.Minute)
	assert.Equal(t, domain.ModeAwaitingWeatherCity, h.GetMode(testChatID))
	fetcher.AssertNotCalled(t, "Forecast", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessions_ConcurrentChats(t *testing.T) {
	h, _ := newTestHandler(t)

	var wg sync.WaitGroup
	for i := int64(0); i < 100; i++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			c := testutil.NewCallbackContext(chatID, "products")
			assert.NoError(t, h.handleCallback(c))
			assert.NoError(t, h.handleText(testutil.NewTextContext(chatID, "nike")))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, h.sessionCount())
	assert.Equal(t, domain.ModeAwaitingProductQuery, h.GetMode(42))
}

func TestCommands(t *testing.T) {
	var names []string
	for _, cmd := range Commands() {
		names = append(names, cmd.Text)
		assert.NotEmpty(t, cmd.Description)
	}
	assert.Equal(t, []string{"start", "menu", "help"}, names)
}

func TestUserText_IsValidMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		mode  domain.Mode
		input string
	}{
		{name: "product star", mode: domain.ModeAwaitingProductQuery, input: "iphone*"},
		{name: "product underscore", mode: domain.ModeAwaitingProductQuery, input: "mi_band"},
		{name: "product backtick and bracket", mode: domain.ModeAwaitingProductQuery, input: "`чехол` [новый]"},
		{name: "city star", mode: domain.ModeAwaitingWeatherCity, input: "мос*ква"},
		{name: "city underscore", mode: domain.ModeAwaitingWeatherCity, input: "new_york"},
		{name: "real estate", mode: domain.ModeAwaitingRealEstateQuery, input: "студия_2* [центр]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fetcher := newTestHandler(t)
			h.SetMode(testChatID, tt.mode)

			c := testutil.NewTextContext(testChatID, tt.input)
			require.NoError(t, h.handleText(c))

			require.Len(t, c.Sent, 1)
			assert.True(t, testutil.HasMarkdown(c.Sent[0].Opts))
			testutil.AssertLegacyMarkdown(t, c.Sent[0].Text)
			fetcher.AssertNotCalled(t, "Forecast", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestFixedTexts_AreValidMarkdown(t *testing.T) {
	h, _ := newTestHandler(t)

	texts := []string{
		MainMenuText,
		greetingText,
		helpText,
		productPromptText,
		categoriesText,
		realEstatePromptText,
		weatherPromptText(h.weatherService.SupportedCities()),
	}
	for _, text := range texts {
		testutil.AssertLegacyMarkdown(t, text)
	}
}

func TestSendMarkdown_FallsBackToPlainText(t *testing.T) {
	parseErr := errors.New("telegram: Bad Request: can't parse entities: Can't find end of the entity (400)")

	t.Run("text reply", func(t *testing.T) {
		h, _ := newTestHandler(t)
		h.SetMode(testChatID, domain.ModeAwaitingRealEstateQuery)

		c := testutil.NewTextContext(testChatID, "дом у моря")
		c.MarkdownErr = parseErr
		require.NoError(t, h.handleText(c))

		require.Len(t, c.Sent, 1)
		assert.False(t, testutil.HasMarkdown(c.Sent[0].Opts))
		assert.Contains(t, c.Sent[0].Text, "дом у моря")
		assert.Equal(t, []string{links.RealEstateSearch("дом у моря")}, urls(c.Sent[0].Markup))
	})

	t.Run("button press", func(t *testing.T) {
		h, _ := newTestHandler(t)

		c := testutil.NewCallbackContext(testChatID, "products")
		c.MarkdownErr = parseErr
		require.NoError(t, h.handleProductsButton(c))

		assert.Empty(t, c.Edited)
		require.Len(t, c.Sent, 1)
		assert.Equal(t, productPromptText, c.Sent[0].Text)
		assert.False(t, testutil.HasMarkdown(c.Sent[0].Opts))
		assert.Len(t, c.Responses, 1)
		assert.Equal(t, domain.ModeAwaitingProductQuery, h.GetMode(testChatID))
	})

	t.Run("other send errors are returned", func(t *testing.T) {
		h, _ := newTestHandler(t)
		h.SetMode(testChatID, domain.ModeAwaitingRealEstateQuery)

		c := testutil.NewTextContext(testChatID, "дом")
		c.MarkdownErr = errors.New("telegram: Forbidden: bot was blocked by the user (403)")

		assert.Error(t, h.handleText(c))
		assert.Empty(t, c.Sent)
	})
}
