package middleware

import (
	"fmt"
	"testing"

	"assistant/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	tele "gopkg.in/telebot.v3"
)

func TestRecover_ConvertsPanicToApology(t *testing.T) {
	c := testutil.NewTextContext(42, "Москва")

	handler := Recover(testutil.NewTestLogger())(func(tele.Context) error {
		panic("boom")
	})

	err := handler(c)

	assert.NoError(t, err)
	require.Len(t, c.Sent, 1)
	assert.Equal(t, ApologyText, c.Sent[0].Text)
	assert.Empty(t, c.Responses)
}

func TestRecover_AcknowledgesCallback(t *testing.T) {
	c := testutil.NewCallbackContext(42, "weather")

	handler := Recover(testutil.NewTestLogger())(func(tele.Context) error {
		panic(fmt.Errorf("nil map"))
	})

	assert.NoError(t, handler(c))
	assert.Len(t, c.Responses, 1)
	assert.Len(t, c.Sent, 1)
}

func TestRecover_PassesThrough(t *testing.T) {
	c := testutil.NewTextContext(42, "hi")
	expected := fmt.Errorf("send failed")

	handler := Recover(testutil.NewTestLogger())(func(tele.Context) error {
		return expected
	})

	assert.Equal(t, expected, handler(c))
	assert.Empty(t, c.Sent)
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	ok := Logging(logger)(func(tele.Context) error { return nil })
	failing := Logging(logger)(func(tele.Context) error { return fmt.Errorf("telegram is down") })

	assert.NoError(t, ok(testutil.NewCallbackContext(7, "weather")))
	assert.Error(t, failing(testutil.NewTextContext(7, "hello")))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "Update handled", entries[0].Message)
	assert.Equal(t, "callback", entries[0].ContextMap()["kind"])
	assert.Equal(t, int64(7), entries[0].ContextMap()["chat_id"])

	assert.Equal(t, "Update handled with error", entries[1].Message)
	assert.Equal(t, "text", entries[1].ContextMap()["kind"])
}

func TestChatID(t *testing.T) {
	assert.Equal(t, int64(-100123), ChatID(testutil.NewCallbackContext(-100123, "weather")))
	assert.Equal(t, int64(42), ChatID(testutil.NewTextContext(42, "Москва")))
}
