package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/storechat/backend/internal/domain"
	"github.com/storechat/backend/internal/infrastructure/dialogflow"
)

// MockConversationClient is a mock implementation of domain.ConversationClient
type MockConversationClient struct {
	result       *domain.QueryResult
	err          error
	lastSession  string
	lastText     string
	sessionsSeen []string
}

func (m *MockConversationClient) DetectIntent(ctx context.Context, sessionID, text string) (*domain.QueryResult, error) {
	m.lastSession = sessionID
	m.lastText = text
	m.sessionsSeen = append(m.sessionsSeen, sessionID)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func queryResultFromJSON(t *testing.T, data string) *domain.QueryResult {
	t.Helper()
	var result domain.QueryResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		t.Fatalf("failed to unmarshal query result: %v", err)
	}
	return &result
}

func TestChat(t *testing.T) {
	ctx := context.Background()

	t.Run("returns error for nil request", func(t *testing.T) {
		svc := NewChatService(&MockConversationClient{})

		_, err := svc.Chat(ctx, nil)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("returns error for blank message", func(t *testing.T) {
		svc := NewChatService(&MockConversationClient{})

		_, err := svc.Chat(ctx, &domain.ChatRequest{Message: "   "})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("extracts text and products from agent reply", func(t *testing.T) {
		client := &MockConversationClient{
			result: queryResultFromJSON(t, `{
				"intent": {"displayName": "product.search"},
				"intentDetectionConfidence": 0.87,
				"responseMessages": [
					{"responseType": "HANDLER_PROMPT", "text": {"text": ["Here you go"]}},
					{"responseType": "HANDLER_PROMPT", "payload": {"fields": {"richContent": [[
						{"type": "info", "metadata": {"title": "Hammer", "availability": false}}
					]]}}}
				]
			}`),
		}
		svc := NewChatService(client)

		reply, err := svc.Chat(ctx, &domain.ChatRequest{Message: "show me hammers"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply.Message != "Here you go" {
			t.Errorf("Message = %q, want 'Here you go'", reply.Message)
		}
		if reply.Intent != "product.search" {
			t.Errorf("Intent = %q, want product.search", reply.Intent)
		}
		if reply.Confidence != 0.87 {
			t.Errorf("Confidence = %v, want 0.87", reply.Confidence)
		}
		if len(reply.Products) != 1 {
			t.Fatalf("len(Products) = %d, want 1", len(reply.Products))
		}
		if reply.Products[0].Title != "Hammer" {
			t.Errorf("Products[0].Title = %q, want Hammer", reply.Products[0].Title)
		}
		if reply.Products[0].Availability {
			t.Error("Products[0].Availability = true, want false")
		}
		if client.lastText != "show me hammers" {
			t.Errorf("client received text %q, want 'show me hammers'", client.lastText)
		}
	})

	t.Run("returns fallback text and empty products for bare reply", func(t *testing.T) {
		client := &MockConversationClient{
			result: queryResultFromJSON(t, `{"responseMessages": []}`),
		}
		svc := NewChatService(client)

		reply, err := svc.Chat(ctx, &domain.ChatRequest{Message: "hello"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reply.Message != dialogflow.FallbackText {
			t.Errorf("Message = %q, want fallback", reply.Message)
		}
		if len(reply.Products) != 0 {
			t.Errorf("len(Products) = %d, want 0", len(reply.Products))
		}
		if reply.Intent != "" {
			t.Errorf("Intent = %q, want empty", reply.Intent)
		}
	})

	t.Run("propagates client errors", func(t *testing.T) {
		client := &MockConversationClient{err: domain.ErrDialogflowFailure}
		svc := NewChatService(client)

		_, err := svc.Chat(ctx, &domain.ChatRequest{Message: "hello"})
		if !errors.Is(err, domain.ErrDialogflowFailure) {
			t.Errorf("error = %v, want ErrDialogflowFailure", err)
		}
	})

	t.Run("uses a fresh session per turn", func(t *testing.T) {
		client := &MockConversationClient{
			result: queryResultFromJSON(t, `{"responseMessages": []}`),
		}
		svc := NewChatService(client)

		for i := 0; i < 3; i++ {
			if _, err := svc.Chat(ctx, &domain.ChatRequest{Message: "hi"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		seen := map[string]bool{}
		for _, session := range client.sessionsSeen {
			if session == "" {
				t.Error("session id is empty")
			}
			if seen[session] {
				t.Errorf("session id %s reused across turns", session)
			}
			seen[session] = true
		}
	})
}
