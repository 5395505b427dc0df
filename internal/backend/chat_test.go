package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "ragflow/cli/internal/errors"
)

func TestChatSendPresentsBearerToken(t *testing.T) {
	var auth string
	var body map[string]any
	h := newTestServer(t, func(r chi.Router) {
		r.Post("/api/chat/send", func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&body)
			writeJSON(w, http.StatusOK, map[string]any{
				"response":       "Paris [Citation: atlas]",
				"conversationId": 7,
				"citation":       `{"source": "Document A"}`,
			})
		})
	})

	reply, err := h.Send(context.Background(), "abc123", ChatMessage{Message: "capital of France?", ConversationID: 7})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", auth)
	assert.Equal(t, map[string]any{"message": "capital of France?", "conversationId": "7"}, body)
	assert.Equal(t, ChatReply{Response: "Paris [Citation: atlas]", ConversationID: 7, Citation: `{"source": "Document A"}`}, reply)
}

func TestChatSendNewConversationOmitsID(t *testing.T) {
	var body map[string]any
	h := newTestServer(t, func(r chi.Router) {
		r.Post("/api/chat/send", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&body)
			writeJSON(w, http.StatusOK, map[string]any{"response": "hi", "conversationId": 1})
		})
	})

	reply, err := h.Send(context.Background(), "abc123", ChatMessage{Message: "hello"})
	require.NoError(t, err)
	assert.NotContains(t, body, "conversationId")
	assert.Equal(t, int64(1), reply.ConversationID)
}

func TestChatErrors(t *testing.T) {
	h := newTestServer(t, func(r chi.Router) {
		r.Post("/api/chat/send", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "expired", http.StatusUnauthorized)
		})
		r.Get("/api/chat/history", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		})
	})
	ctx := context.Background()

	_, err := h.Send(ctx, "stale", ChatMessage{Message: "hello"})
	assert.True(t, apperr.Is(err, apperr.Unauthorized))

	_, err = h.Send(ctx, "", ChatMessage{Message: "hello"})
	assert.True(t, apperr.Is(err, apperr.Unauthorized))

	_, err = h.Send(ctx, "abc123", ChatMessage{Message: "  "})
	assert.True(t, apperr.Is(err, apperr.InvalidInput))

	_, err = h.History(ctx, "abc123")
	assert.True(t, apperr.Is(err, apperr.MalformedResponse))

	_, err = h.Messages(ctx, "abc123", 0)
	assert.True(t, apperr.Is(err, apperr.InvalidInput))
}

func TestChatHistoryAndMessages(t *testing.T) {
	h := newTestServer(t, func(r chi.Router) {
		r.Get("/api/chat/history", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 3, "title": "capital of France?"}})
		})
		r.Get("/api/chat/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "3", chi.URLParam(r, "id"))
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 1, "role": "user", "content": "capital of France?"},
				{"id": 2, "role": "assistant", "content": "Paris"},
			})
		})
	})
	ctx := context.Background()

	convs, err := h.History(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, []Conversation{{ID: 3, Title: "capital of France?"}}, convs)

	msgs, err := h.Messages(ctx, "abc123", 3)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "assistant", msgs[1].Role)
	assert.Equal(t, "Paris", msgs[1].Content)
}
