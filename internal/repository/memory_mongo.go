package repository

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kovaldeepai/server/internal/models"
)

// maxMemoryEntries bounds per-user memory growth: the oldest entries are
// trimmed on save once the log exceeds this many exchanges.
const maxMemoryEntries = 200

// MemoryMongo provides Mongo-backed persistence for per-user chat memory.
type MemoryMongo struct {
	col *mongo.Collection
}

// NewMemoryRepository returns a MemoryMongo that operates on the "memories"
// collection.
func NewMemoryRepository(db *mongo.Database) *MemoryMongo {
	return &MemoryMongo{col: db.Collection("memories")}
}

// Fetch returns the user's memory record, or a zero-value record when none
// exists or the lookup fails. Errors are logged, never surfaced: a chat turn
// must not fail because its context could not be loaded.
func (r *MemoryMongo) Fetch(ctx context.Context, userID string) models.MemoryRecord {
	var rec models.MemoryRecord
	err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return models.MemoryRecord{UserID: userID}
	}
	if err != nil {
		log.Printf("[Memory Repository] fetch failed for user %s: %v", userID, err)
		return models.MemoryRecord{UserID: userID}
	}
	return rec
}

// Append adds one exchange to the user's memory and replaces the profile
// snapshot. The write is a read-modify-write with last-writer-wins semantics;
// concurrent turns for the same user may interleave, which is acceptable for
// a per-user chat log.
func (r *MemoryMongo) Append(ctx context.Context, userID string, entry models.MemoryEntry, profile models.UserProfile) error {
	rec := r.Fetch(ctx, userID)
	rec.UserID = userID
	rec.Entries = append(rec.Entries, entry)
	if len(rec.Entries) > maxMemoryEntries {
		rec.Entries = rec.Entries[len(rec.Entries)-maxMemoryEntries:]
	}
	rec.Profile = profile
	rec.UpdatedAt = time.Now().UTC()

	_, err := r.col.ReplaceOne(
		ctx,
		bson.M{"_id": userID},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		log.Printf("[Memory Repository] save failed for user %s: %v", userID, err)
		return err
	}
	return nil
}
