package service

import (
	"context"
	"strings"

	"github.com/kovaldeepai/server/internal/models"
)

// LLM defines the interface for chat completion.
type LLM interface {
	// Generate returns the model's reply for the assembled messages.
	Generate(ctx context.Context, messages []models.Message) (string, error)
}

// Fixed user-facing fallback strings. LLM-side failures are absorbed into the
// response body so the handler always returns a chat-shaped 200 payload;
// these are the only contents a failed generation may carry, and exchanges
// carrying them are never written to memory.
const (
	FallbackAuth = "I'm having trouble reaching my coaching knowledge right now. " +
		"Please check the API configuration and try again."
	FallbackRateLimited = "I'm receiving too many requests at the moment. " +
		"Please wait a few seconds and ask again."
	FallbackGeneric = "I'm experiencing technical difficulties generating a response. " +
		"Please try again shortly."
)

// FallbackFor maps a generation error to the user-facing string for it.
// Classification is by status substring since the SDK surfaces gRPC and HTTP
// failures as opaque errors.
func FallbackFor(err error) string {
	if err == nil {
		return FallbackGeneric
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "401") ||
		strings.Contains(msg, "403") ||
		strings.Contains(msg, "UNAUTHENTICATED") ||
		strings.Contains(msg, "PERMISSION_DENIED"):
		return FallbackAuth
	case strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return FallbackRateLimited
	default:
		return FallbackGeneric
	}
}

// IsFallback reports whether content is one of the fixed fallback strings.
func IsFallback(content string) bool {
	return content == FallbackAuth || content == FallbackRateLimited || content == FallbackGeneric
}
