// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	apperr "ragflow/cli/internal/errors"
)

// Chat is the conversation API. Every call presents the session token as
// a Bearer credential; the server decides whether it is still valid.
type Chat interface {
	// Send posts a message and returns the assistant's reply.
	Send(ctx context.Context, token string, msg ChatMessage) (ChatReply, error)
	// History lists the caller's conversations.
	History(ctx context.Context, token string) ([]Conversation, error)
	// Messages lists the messages of one conversation, oldest first.
	Messages(ctx context.Context, token string, conversationID int64) ([]Message, error)
}

// ChatMessage is the body of POST /chat/send. A zero ConversationID starts
// a new conversation; the server expects the id as a string.
type ChatMessage struct {
	Message        string `json:"message"`
	ConversationID int64  `json:"conversationId,omitempty,string"`
}

// Validate rejects empty messages.
func (m ChatMessage) Validate() error {
	if strings.TrimSpace(m.Message) == "" {
		return apperr.New(apperr.InvalidInput, "message is required")
	}
	if m.ConversationID < 0 {
		return apperr.New(apperr.InvalidInput, "conversation id must be positive")
	}
	return nil
}

// ChatReply is the answer to a sent message.
type ChatReply struct {
	Response       string `json:"response"`
	ConversationID int64  `json:"conversationId"`
	Citation       string `json:"citation,omitempty"`
}

// Conversation is one entry of the chat history.
type Conversation struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Message is one turn of a conversation. Role is "user" or "assistant".
type Message struct {
	ID        int64  `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Citation  string `json:"citation,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func requireToken(token string) error {
	if token == "" {
		return apperr.New(apperr.Unauthorized, "no session token; log in first")
	}
	return nil
}

// Send posts msg to /chat/send.
func (h *HTTP) Send(ctx context.Context, token string, msg ChatMessage) (ChatReply, error) {
	if err := requireToken(token); err != nil {
		return ChatReply{}, err
	}
	if err := msg.Validate(); err != nil {
		return ChatReply{}, err
	}
	resp, err := h.do(ctx, "chat", http.MethodPost, h.endpoints.ChatSend, token, msg)
	if err != nil {
		return ChatReply{}, err
	}
	var reply ChatReply
	if err := decodeJSON("chat", resp, &reply); err != nil {
		return ChatReply{}, err
	}
	return reply, nil
}

// History fetches /chat/history.
func (h *HTTP) History(ctx context.Context, token string) ([]Conversation, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	resp, err := h.do(ctx, "history", http.MethodGet, h.endpoints.ChatHistory, token, nil)
	if err != nil {
		return nil, err
	}
	var out []Conversation
	if err := decodeJSON("history", resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Messages fetches /chat/{id}/messages.
func (h *HTTP) Messages(ctx context.Context, token string, conversationID int64) ([]Message, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}
	if conversationID <= 0 {
		return nil, apperr.New(apperr.InvalidInput, "conversation id must be positive")
	}
	path := strings.Replace(h.endpoints.ChatMessages, "{id}", strconv.FormatInt(conversationID, 10), 1)
	resp, err := h.do(ctx, "messages", http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	var out []Message
	if err := decodeJSON("messages", resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Chat = (*HTTP)(nil)
