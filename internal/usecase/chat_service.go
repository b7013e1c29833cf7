package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/storechat/backend/internal/domain"
	"github.com/storechat/backend/internal/infrastructure/dialogflow"
)

// ChatService forwards user messages to the conversational agent and
// normalizes its replies for the storefront UI
type ChatService struct {
	client domain.ConversationClient
}

// NewChatService creates a new chat service with dependencies
func NewChatService(client domain.ConversationClient) *ChatService {
	return &ChatService{client: client}
}

// Chat handles one chat turn.
// Flow: validate -> new session id -> detectIntent -> extract text + products
//
// Extraction never fails: a partially unparseable agent reply still yields
// whatever text and products could be understood. Only transport-level
// failures propagate to the caller.
func (s *ChatService) Chat(ctx context.Context, request *domain.ChatRequest) (*domain.ChatReply, error) {
	if request == nil || strings.TrimSpace(request.Message) == "" {
		return nil, domain.ErrInvalidRequest
	}

	// Each turn gets a fresh session: the agent owns all conversational
	// state, this service persists nothing across requests.
	sessionID := uuid.NewString()

	result, err := s.client.DetectIntent(ctx, sessionID, request.Message)
	if err != nil {
		return nil, fmt.Errorf("detect intent: %w", err)
	}

	reply := &domain.ChatReply{
		Message:    dialogflow.ExtractText(result.ResponseMessages),
		Confidence: result.IntentDetectionConfidence,
		Products:   dialogflow.ExtractProducts(result.ResponseMessages),
	}
	if result.Intent != nil {
		reply.Intent = result.Intent.DisplayName
	}

	log.Printf("[CHAT] session=%s intent=%q products=%d", sessionID, reply.Intent, len(reply.Products))

	return reply, nil
}
