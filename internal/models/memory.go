package models

import "time"

// MemoryEntry is one completed exchange: the user's message and the reply it
// produced. Entries are only appended after a non-fallback generation.
type MemoryEntry struct {
	UserMessage    string    `bson:"user_message" json:"userMessage"`
	AssistantReply string    `bson:"assistant_reply" json:"assistantReply"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
}

// MemoryRecord is the per-user conversational memory: an append-only log of
// exchanges plus the last merged profile snapshot. Stored entries are in
// chronological order; callers reverse for most-recent-first display.
type MemoryRecord struct {
	UserID    string        `bson:"_id" json:"userId"`
	Entries   []MemoryEntry `bson:"entries" json:"entries"`
	Profile   UserProfile   `bson:"profile" json:"profile"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}

// DisplayEntries returns the entries most-recent-first without mutating the
// stored order.
func (r MemoryRecord) DisplayEntries() []MemoryEntry {
	out := make([]MemoryEntry, len(r.Entries))
	for i, e := range r.Entries {
		out[len(r.Entries)-1-i] = e
	}
	return out
}
