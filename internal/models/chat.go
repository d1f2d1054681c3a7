package models

// ChatRequest is the payload for POST /chat.
type ChatRequest struct {
	Message   string       `json:"message"`             // user's natural-language question
	UserID    string       `json:"userId,omitempty"`    // optional; anonymous chats skip memory
	Profile   *UserProfile `json:"profile,omitempty"`   // per-turn override of the stored profile
	EmbedMode bool         `json:"embedMode,omitempty"` // true when rendered inside an embedded widget
}

// AssistantMessage is the chat-shaped reply body. Role is always "assistant".
type AssistantMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatMetadata carries per-request diagnostics alongside the reply.
type ChatMetadata struct {
	UserLevel      string `json:"userLevel"`
	DepthRange     string `json:"depthRange"`
	ContextChunks  int    `json:"contextChunks"`
	ProcessingTime int64  `json:"processingTime"` // milliseconds
	EmbedMode      bool   `json:"embedMode"`
}

// ChatResponse is returned for every well-formed chat request, including
// generation failures (those carry a fallback Content instead of an error).
type ChatResponse struct {
	AssistantMessage AssistantMessage `json:"assistantMessage"`
	Metadata         ChatMetadata     `json:"metadata"`
}

// Message is one entry in an assembled prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
