package domain

import "context"

// ConversationClient defines the interface for one synchronous round trip to
// the conversational agent. Implementations own transport, auth, and timeout
// concerns; callers own the session id.
type ConversationClient interface {
	DetectIntent(ctx context.Context, sessionID, text string) (*QueryResult, error)
}
