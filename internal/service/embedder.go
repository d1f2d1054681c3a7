package service

import (
	"context"
	"errors"
)

// ErrEmptyInput is returned when an embedding is requested for empty or
// whitespace-only text. Callers treat it as "no embedding", not a failure
// worth reporting; the remote service is never contacted.
var ErrEmptyInput = errors.New("embedder: empty input")

// Embedder defines the interface for text embedding services.
type Embedder interface {
	// Embed converts a text string into a vector embedding.
	Embed(ctx context.Context, text string) ([]float32, error)
}
