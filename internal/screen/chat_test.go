package screen_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/internal/api"
	"github.com/shashiranjanraj/bazaar/internal/screen"
	"github.com/shashiranjanraj/bazaar/internal/session"
)

func TestChatSendAppendsBothTurns(t *testing.T) {
	client, sess := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "hi", in["message"])
		json.NewEncoder(w).Encode(map[string]string{"bot": "hello"})
	})

	panel := screen.NewChatPanel(client, sess)
	panel.SetInput("hi")
	panel.Send(context.Background())

	assert.Equal(t, []api.ChatMessage{
		{Role: api.RoleUser, Content: "hi"},
		{Role: api.RoleBot, Content: "hello"},
	}, panel.Transcript)
	assert.Equal(t, "", panel.Input, "input clears on send")
}

func TestChatEmptyInputIsNoOp(t *testing.T) {
	var calls atomic.Int32
	client, sess := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	panel := screen.NewChatPanel(client, sess)
	for _, input := range []string{"", "   ", "\t\n"} {
		panel.SetInput(input)
		panel.Send(context.Background())
	}

	assert.Empty(t, panel.Transcript)
	assert.Equal(t, int32(0), calls.Load())
}

func TestChatMissingReplyFieldBecomesNoReply(t *testing.T) {
	client, sess := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	panel := screen.NewChatPanel(client, sess)
	panel.SetInput("hi")
	panel.Send(context.Background())

	require.Len(t, panel.Transcript, 2)
	assert.Equal(t, "No reply", panel.Transcript[1].Content)
}

func TestChatNetworkFailureFallbacks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := api.NewClient(srv.URL)
	sess := session.New(session.NewMemStore())

	t.Run("standalone widget", func(t *testing.T) {
		panel := screen.NewChatPanel(client, sess)
		panel.SetInput("hi")
		panel.Send(context.Background())

		require.Len(t, panel.Transcript, 2)
		assert.Equal(t, api.RoleUser, panel.Transcript[0].Role, "optimistic user turn survives the failure")
		assert.Equal(t, "Error connecting to chatbot.", panel.Transcript[1].Content)
	})

	t.Run("embedded panel", func(t *testing.T) {
		panel := screen.NewEmbeddedChatPanel(client, sess)
		panel.SetInput("hi")
		panel.Send(context.Background())

		require.Len(t, panel.Transcript, 2)
		assert.Equal(t, "Failed to connect to chatbot", panel.Transcript[1].Content)
		assert.False(t, panel.Loading, "typing indicator clears after the reply settles")
	})
}

func TestChatSendsBearerToken(t *testing.T) {
	client, sess := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"bot": "hello"})
	})
	require.NoError(t, sess.SetToken("tok"))

	panel := screen.NewEmbeddedChatPanel(client, sess)
	panel.SetInput("hi")
	panel.Send(context.Background())

	require.Len(t, panel.Transcript, 2)
}
