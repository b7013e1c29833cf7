package domain

// ChatRequest is an inbound chat message from the storefront UI.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatReply is the normalized result of one agent round trip: the text to
// render, the detected intent, and any product cards carried in the reply.
type ChatReply struct {
	Message    string    `json:"message"`
	Intent     string    `json:"intent,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
	Products   []Product `json:"products"`
}
