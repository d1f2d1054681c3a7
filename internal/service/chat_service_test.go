package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovaldeepai/server/internal/models"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Generate(_ context.Context, _ []models.Message) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeMemory struct {
	mu      sync.Mutex
	stored  models.MemoryRecord
	appends []models.MemoryEntry
	profile models.UserProfile
	err     error
}

func (f *fakeMemory) Fetch(_ context.Context, userID string) models.MemoryRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.stored
	rec.UserID = userID
	return rec
}

func (f *fakeMemory) Append(_ context.Context, _ string, entry models.MemoryEntry, profile models.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.appends = append(f.appends, entry)
	f.profile = profile
	return nil
}

func (f *fakeMemory) appendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appends)
}

type fakeDives struct {
	dives []models.DiveLog
	err   error
}

func (f *fakeDives) Recent(context.Context, string, int) ([]models.DiveLog, error) {
	return f.dives, f.err
}

func (f *fakeDives) Insert(_ context.Context, d models.DiveLog) (models.DiveLog, error) {
	return d, nil
}

func newTestChat(llm LLM, mem MemoryStore, searcher KnowledgeSearcher, dives DiveStore) ChatService {
	return NewChatService(
		NewStaticEmbedder(8),
		NewRetriever(searcher, "koval", 5),
		llm,
		mem,
		dives,
		time.Second,
	)
}

func TestChat_HappyPath(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{reply: "Ascend slowly, about one meter per second."}
	mem := &fakeMemory{}
	searcher := &fakeSearcher{passages: []models.KnowledgePassage{
		{Text: "ascent rate guidance passage for freedivers"},
	}}
	svc := newTestChat(llm, mem, searcher, &fakeDives{})

	resp, saved := svc.Chat(context.Background(), models.ChatRequest{
		Message: "What is a safe ascent rate?",
		UserID:  "u1",
	})

	require.NoError(t, <-saved)
	assert.Equal(t, "assistant", resp.AssistantMessage.Role)
	assert.Equal(t, llm.reply, resp.AssistantMessage.Content)
	assert.Equal(t, LevelBeginner, resp.Metadata.UserLevel)
	assert.Equal(t, "10m", resp.Metadata.DepthRange)
	assert.Equal(t, 1, resp.Metadata.ContextChunks)
	assert.GreaterOrEqual(t, resp.Metadata.ProcessingTime, int64(0))

	require.Equal(t, 1, mem.appendCount())
	assert.Equal(t, "What is a safe ascent rate?", mem.appends[0].UserMessage)
	assert.Equal(t, llm.reply, mem.appends[0].AssistantReply)
}

func TestChat_LLMFailureFallsBackAndSkipsMemory(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{err: errors.New("googleapi: Error 429: quota exceeded")}
	mem := &fakeMemory{}
	svc := newTestChat(llm, mem, &fakeSearcher{}, &fakeDives{})

	resp, saved := svc.Chat(context.Background(), models.ChatRequest{
		Message: "help me plan a dive",
		UserID:  "u1",
	})

	require.NoError(t, <-saved)
	assert.Equal(t, FallbackRateLimited, resp.AssistantMessage.Content)
	assert.Zero(t, mem.appendCount(), "fallback exchanges must not pollute memory")
}

func TestChat_EmptyReplyFallsBack(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{reply: "   "}
	mem := &fakeMemory{}
	svc := newTestChat(llm, mem, &fakeSearcher{}, &fakeDives{})

	resp, saved := svc.Chat(context.Background(), models.ChatRequest{Message: "hi", UserID: "u1"})

	require.NoError(t, <-saved)
	assert.Equal(t, FallbackGeneric, resp.AssistantMessage.Content)
	assert.Zero(t, mem.appendCount())
}

func TestChat_AnonymousSkipsMemory(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{reply: "sure"}
	mem := &fakeMemory{}
	svc := newTestChat(llm, mem, &fakeSearcher{}, &fakeDives{})

	_, saved := svc.Chat(context.Background(), models.ChatRequest{Message: "hi"})

	require.NoError(t, <-saved)
	assert.Zero(t, mem.appendCount())
}

func TestChat_ProfileOverrideWinsForTheTurn(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{reply: "ok"}
	mem := &fakeMemory{stored: models.MemoryRecord{
		Profile: models.UserProfile{PersonalBest: 30},
	}}
	svc := newTestChat(llm, mem, &fakeSearcher{}, &fakeDives{})

	resp, saved := svc.Chat(context.Background(), models.ChatRequest{
		Message: "how do I train mouthfill?",
		UserID:  "u1",
		Profile: &models.UserProfile{PersonalBest: 85},
	})

	require.NoError(t, <-saved)
	assert.Equal(t, LevelExpert, resp.Metadata.UserLevel)
	assert.Equal(t, "80m", resp.Metadata.DepthRange)
	// The merged snapshot is what lands in storage.
	assert.Equal(t, float64(85), mem.profile.PersonalBest)
}

func TestChat_DiveHistoryFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{reply: "ok"}
	mem := &fakeMemory{}
	svc := newTestChat(llm, mem, &fakeSearcher{}, &fakeDives{err: errors.New("down")})

	resp, saved := svc.Chat(context.Background(), models.ChatRequest{Message: "hi", UserID: "u1"})

	require.NoError(t, <-saved)
	assert.Equal(t, "ok", resp.AssistantMessage.Content)
}

func TestChat_MemorySaveFailureReachesTheChannelOnly(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{reply: "ok"}
	mem := &fakeMemory{err: errors.New("write failed")}
	svc := newTestChat(llm, mem, &fakeSearcher{}, &fakeDives{})

	resp, saved := svc.Chat(context.Background(), models.ChatRequest{Message: "hi", UserID: "u1"})

	// The response is intact; only the detached save reports the failure.
	assert.Equal(t, "ok", resp.AssistantMessage.Content)
	assert.Error(t, <-saved)
}
