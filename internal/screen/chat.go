package screen

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/bazaar/internal/api"
	"github.com/shashiranjanraj/bazaar/internal/session"
)

// ChatPanel keeps an in-memory transcript and proxies each message to the
// assistant endpoint. The standalone /chat widget and the panel embedded
// in the dashboard share this controller; only the embedded variant shows
// a typing indicator, and each carries its own connection-failure wording.
type ChatPanel struct {
	Transcript []api.ChatMessage
	Input      string
	Loading    bool

	client      *api.Client
	sess        *session.Session
	showLoading bool
	fallback    string
	life        lifecycle
}

// NewChatPanel returns the standalone widget: no typing indicator.
func NewChatPanel(client *api.Client, sess *session.Session) *ChatPanel {
	return &ChatPanel{
		client:   client,
		sess:     sess,
		fallback: "Error connecting to chatbot.",
	}
}

// NewEmbeddedChatPanel returns the dashboard variant, which toggles
// Loading while a reply is pending.
func NewEmbeddedChatPanel(client *api.Client, sess *session.Session) *ChatPanel {
	return &ChatPanel{
		client:      client,
		sess:        sess,
		showLoading: true,
		fallback:    "Failed to connect to chatbot",
	}
}

func (c *ChatPanel) SetInput(text string) {
	c.Input = text
}

// Send appends the pending input as a user message, clears it, and asks
// the assistant. Empty or whitespace-only input is a no-op: no transcript
// change, no network call. The user turn stays in the transcript even when
// the request fails; the failure becomes the bot's turn.
func (c *ChatPanel) Send(ctx context.Context) {
	message := c.Input
	if strings.TrimSpace(message) == "" {
		return
	}

	c.Transcript = append(c.Transcript, api.ChatMessage{Role: api.RoleUser, Content: message})
	c.Input = ""
	if c.showLoading {
		c.Loading = true
	}

	epoch := c.life.begin()
	reply, err := c.client.Chat(ctx, c.sess.Token(), message)
	if !c.life.current(epoch) {
		return
	}

	switch {
	case err != nil:
		c.Transcript = append(c.Transcript, api.ChatMessage{Role: api.RoleBot, Content: c.fallback})
	case reply == "":
		c.Transcript = append(c.Transcript, api.ChatMessage{Role: api.RoleBot, Content: "No reply"})
	default:
		c.Transcript = append(c.Transcript, api.ChatMessage{Role: api.RoleBot, Content: reply})
	}

	c.Loading = false
}

func (c *ChatPanel) Unmount() {
	c.life.retire()
}
