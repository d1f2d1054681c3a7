package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kovaldeepai/server/internal/models"
)

// fakeSearcher records calls and returns a canned result.
type fakeSearcher struct {
	calls    int
	gotK     int
	gotTag   string
	passages []models.KnowledgePassage
	err      error
}

func (f *fakeSearcher) VectorSearch(_ context.Context, _ []float32, k int, approvedBy string) ([]models.KnowledgePassage, error) {
	f.calls++
	f.gotK = k
	f.gotTag = approvedBy
	return f.passages, f.err
}

func TestRetriever_EmptyVectorShortCircuits(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{}
	r := NewRetriever(searcher, "koval", 5)

	assert.Nil(t, r.Retrieve(context.Background(), nil))
	assert.Zero(t, searcher.calls, "index must not be touched for an empty vector")
}

func TestRetriever_ErrorBecomesEmpty(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{err: errors.New("index unavailable")}
	r := NewRetriever(searcher, "koval", 5)

	assert.Empty(t, r.Retrieve(context.Background(), []float32{0.1}))
}

func TestRetriever_FiltersShortPassages(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{passages: []models.KnowledgePassage{
		{Text: "a perfectly useful passage about frenzel equalization"},
		{Text: "short"},
		{Text: "   \t  "},
		{Text: "another useful passage about mouthfill volume"},
	}}
	r := NewRetriever(searcher, "koval", 5)

	got := r.Retrieve(context.Background(), []float32{0.1, 0.2})
	assert.Len(t, got, 2)
	for _, p := range got {
		assert.GreaterOrEqual(t, len(p.Text), 10)
	}
}

func TestRetriever_NeverExceedsTopK(t *testing.T) {
	t.Parallel()

	many := make([]models.KnowledgePassage, 9)
	for i := range many {
		many[i] = models.KnowledgePassage{Text: "a passage long enough to survive the filter"}
	}
	searcher := &fakeSearcher{passages: many}
	r := NewRetriever(searcher, "koval", 3)

	got := r.Retrieve(context.Background(), []float32{0.5})
	assert.Len(t, got, 3)
	assert.Equal(t, 3, searcher.gotK)
	assert.Equal(t, "koval", searcher.gotTag)
}

func TestNewRetriever_DefaultTopK(t *testing.T) {
	t.Parallel()

	r := NewRetriever(&fakeSearcher{}, "koval", 0)
	assert.Equal(t, DefaultTopK, r.topK)
}
