package service

import (
	"context"
	"strings"

	"github.com/kovaldeepai/server/internal/models"
)

// Static in-process stand-ins for the Vertex clients. The server wires these
// when no GCP project is configured so the API stays exercisable end to end
// without credentials; tests use them for the same reason.

type staticEmbedder struct{ dim int }

func (e staticEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	return make([]float32, e.dim), nil
}

// NewStaticEmbedder returns an embedder producing zero vectors of the given
// dimension (768 when dim <= 0, matching text-embedding-005).
func NewStaticEmbedder(dim int) Embedder {
	if dim <= 0 {
		dim = 768
	}
	return staticEmbedder{dim: dim}
}

type staticLLM struct{ reply string }

func (l staticLLM) Generate(context.Context, []models.Message) (string, error) {
	return l.reply, nil
}

// NewStaticLLM returns an LLM that always answers with reply.
func NewStaticLLM(reply string) LLM {
	if reply == "" {
		reply = "Coaching is offline right now; this is a canned development reply."
	}
	return staticLLM{reply: reply}
}
