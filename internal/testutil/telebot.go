package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// Reply records one outgoing Send or Edit call
type Reply struct {
	Text   string
	Markup *tele.ReplyMarkup
	Opts   []interface{}
}

// FakeContext implements the parts of tele.Context the handlers use.
// Calling anything else panics on the nil embedded interface.
type FakeContext struct {
	tele.Context

	ChatID      int64
	UserID      int64
	MessageText string
	CallbackRaw *tele.Callback
	EditErr     error
	// Returned by Send and Edit whenever Markdown parse mode is requested
	MarkdownErr error

	Sent      []Reply
	Edited    []Reply
	Responses []*tele.CallbackResponse
}

// NewTextContext creates a context carrying a text message
func NewTextContext(chatID int64, text string) *FakeContext {
	return &FakeContext{ChatID: chatID, UserID: chatID, MessageText: text}
}

// NewCallbackContext creates a context carrying a button press
func NewCallbackContext(chatID int64, unique string) *FakeContext {
	return &FakeContext{
		ChatID:      chatID,
		UserID:      chatID,
		CallbackRaw: &tele.Callback{ID: "cb", Unique: unique},
	}
}

func (c *FakeContext) Sender() *tele.User {
	return &tele.User{ID: c.UserID, Username: "tester"}
}

func (c *FakeContext) Chat() *tele.Chat {
	return &tele.Chat{ID: c.ChatID}
}

func (c *FakeContext) Text() string {
	return c.MessageText
}

func (c *FakeContext) Message() *tele.Message {
	return &tele.Message{Text: c.MessageText, Chat: c.Chat(), Sender: c.Sender()}
}

func (c *FakeContext) Callback() *tele.Callback {
	return c.CallbackRaw
}

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	if c.MarkdownErr != nil && HasMarkdown(opts) {
		return c.MarkdownErr
	}
	c.Sent = append(c.Sent, toReply(what, opts))
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	if c.MarkdownErr != nil && HasMarkdown(opts) {
		return c.MarkdownErr
	}
	c.Edited = append(c.Edited, toReply(what, opts))
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		c.Responses = append(c.Responses, nil)
		return nil
	}
	c.Responses = append(c.Responses, resp...)
	return nil
}

// Replies returns edits followed by sends
func (c *FakeContext) Replies() []Reply {
	out := make([]Reply, 0, len(c.Edited)+len(c.Sent))
	out = append(out, c.Edited...)
	return append(out, c.Sent...)
}

// LastReply returns the most recent edit or send
func (c *FakeContext) LastReply() Reply {
	if len(c.Sent) > 0 {
		return c.Sent[len(c.Sent)-1]
	}
	if len(c.Edited) > 0 {
		return c.Edited[len(c.Edited)-1]
	}
	return Reply{}
}

func toReply(what interface{}, opts []interface{}) Reply {
	r := Reply{Opts: opts}
	if s, ok := what.(string); ok {
		r.Text = s
	}
	for _, opt := range opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			r.Markup = m
		}
	}
	return r
}

// HasMarkdown reports whether opts request Markdown parse mode
func HasMarkdown(opts []interface{}) bool {
	for _, opt := range opts {
		if mode, ok := opt.(tele.ParseMode); ok && mode == tele.ModeMarkdown {
			return true
		}
	}
	return false
}
