package service

import (
	"context"
	"log"
	"strings"

	"github.com/kovaldeepai/server/internal/models"
)

const (
	// DefaultTopK is how many passages a retrieval asks the index for.
	DefaultTopK = 5
	// minPassageLen discards near-empty chunks that slipped through ingestion.
	minPassageLen = 10
)

// KnowledgeSearcher exposes vector search over the knowledge collection.
type KnowledgeSearcher interface {
	VectorSearch(ctx context.Context, queryVec []float32, k int, approvedBy string) ([]models.KnowledgePassage, error)
}

// Retriever returns approved knowledge passages for a query vector. All
// failure modes collapse to the empty slice: callers must treat "no context"
// as a normal outcome, never an exceptional one.
type Retriever struct {
	repo       KnowledgeSearcher
	approvedBy string
	topK       int
}

// NewRetriever wires the searcher. topK <= 0 selects DefaultTopK.
func NewRetriever(repo KnowledgeSearcher, approvedBy string, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		repo:       repo,
		approvedBy: approvedBy,
		topK:       topK,
	}
}

// Retrieve returns up to topK passages for the query vector, ordered by
// descending similarity, with noise-length passages dropped. An empty vector
// short-circuits without touching the index.
func (r *Retriever) Retrieve(ctx context.Context, queryVec []float32) []models.KnowledgePassage {
	if len(queryVec) == 0 {
		return nil
	}

	passages, err := r.repo.VectorSearch(ctx, queryVec, r.topK, r.approvedBy)
	if err != nil {
		log.Printf("[Retriever] vector search failed: %v", err)
		return nil
	}

	kept := passages[:0]
	for _, p := range passages {
		if len(strings.TrimSpace(p.Text)) < minPassageLen {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) > r.topK {
		kept = kept[:r.topK]
	}
	return kept
}
