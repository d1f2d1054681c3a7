package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/kovaldeepai/server/internal/models"
)

// recentDiveLimit bounds the dive history slice injected as prompt context.
const recentDiveLimit = 5

// MemoryStore persists per-user chat memory. Fetch never fails the caller;
// Append is best-effort and reports its outcome for whoever chooses to await.
type MemoryStore interface {
	Fetch(ctx context.Context, userID string) models.MemoryRecord
	Append(ctx context.Context, userID string, entry models.MemoryEntry, profile models.UserProfile) error
}

// DiveStore serves the bounded recent dive slice and records new dives.
type DiveStore interface {
	Recent(ctx context.Context, userID string, limit int) ([]models.DiveLog, error)
	Insert(ctx context.Context, dive models.DiveLog) (models.DiveLog, error)
}

// ChatService runs the retrieval-augmented coaching pipeline:
// embed → retrieve → classify → assemble → generate → remember.
type ChatService interface {
	// Chat always produces a chat-shaped response; generation failures carry
	// a fallback content string instead of an error. The returned channel
	// reports the outcome of the memory save exactly once — callers may await
	// it or detach.
	Chat(ctx context.Context, req models.ChatRequest) (models.ChatResponse, <-chan error)
}

type chatService struct {
	embedder    Embedder
	retriever   *Retriever
	llm         LLM
	memory      MemoryStore
	dives       DiveStore
	saveTimeout time.Duration
}

// NewChatService wires the pipeline collaborators. dives may be nil when no
// dive storage is configured.
func NewChatService(embedder Embedder, retriever *Retriever, llm LLM, memory MemoryStore, dives DiveStore, saveTimeout time.Duration) ChatService {
	if saveTimeout <= 0 {
		saveTimeout = 10 * time.Second
	}
	return &chatService{
		embedder:    embedder,
		retriever:   retriever,
		llm:         llm,
		memory:      memory,
		dives:       dives,
		saveTimeout: saveTimeout,
	}
}

func (s *chatService) Chat(ctx context.Context, req models.ChatRequest) (models.ChatResponse, <-chan error) {
	start := time.Now()
	saved := make(chan error, 1)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		// The handler rejects this before the pipeline runs; kept as a guard
		// so the service stays total for other callers.
		saved <- nil
		return s.respond(FallbackGeneric, LevelBeginner, "10m", 0, req.EmbedMode, start), saved
	}

	// 1. Load stored memory and merge the per-turn profile overlay.
	var stored models.MemoryRecord
	if req.UserID != "" {
		stored = s.memory.Fetch(ctx, req.UserID)
	}
	profile := stored.Profile.Merge(req.Profile)

	// 2. Embed the message. Failure degrades to retrieval with no vector,
	//    which in turn degrades to an uncontextualized prompt.
	vec, err := s.embedder.Embed(ctx, message)
	if err != nil && !errors.Is(err, ErrEmptyInput) {
		log.Printf("[Chat Service] embedding failed: %v", err)
	}

	// 3. Retrieve approved knowledge passages.
	passages := s.retriever.Retrieve(ctx, vec)

	// 4. Classify the diver.
	level := ClassifyLevel(profile)
	depthRange := DepthBucket(profile.PersonalBest)

	// 5. Pull the recent dive slice for context. Non-fatal.
	var history []models.DiveLog
	if req.UserID != "" && s.dives != nil {
		history, err = s.dives.Recent(ctx, req.UserID, recentDiveLimit)
		if err != nil {
			log.Printf("[Chat Service] dive history lookup failed: %v", err)
			history = nil
		}
	}

	// 6. Assemble and generate.
	messages := BuildMessages(level, passages, history, message)
	reply, err := s.llm.Generate(ctx, messages)
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			log.Printf("[Chat Service] generation failed: %v", err)
		}
		reply = FallbackFor(err)
	}

	// 7. Persist the exchange, detached from the response path. Fallback
	//    replies never pollute memory; anonymous chats have nothing to key on.
	if req.UserID == "" || IsFallback(reply) {
		saved <- nil
	} else {
		entry := models.MemoryEntry{
			UserMessage:    message,
			AssistantReply: reply,
			Timestamp:      time.Now().UTC(),
		}
		userID := req.UserID
		go func() {
			// Background context: a client disconnect must not half-abort
			// the write.
			saveCtx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
			defer cancel()
			saved <- s.memory.Append(saveCtx, userID, entry, profile)
		}()
	}

	return s.respond(reply, level, depthRange, len(passages), req.EmbedMode, start), saved
}

func (s *chatService) respond(content, level, depthRange string, chunks int, embedMode bool, start time.Time) models.ChatResponse {
	return models.ChatResponse{
		AssistantMessage: models.AssistantMessage{
			Role:    "assistant",
			Content: content,
		},
		Metadata: models.ChatMetadata{
			UserLevel:      level,
			DepthRange:     depthRange,
			ContextChunks:  chunks,
			ProcessingTime: time.Since(start).Milliseconds(),
			EmbedMode:      embedMode,
		},
	}
}
