package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kovaldeepai/server/internal/models"
)

// KnowledgeMongo exposes vector search over the coaching knowledge base.
//
// Expected schema (populated by cmd/ingest, read-only here):
//
//	knowledge
//	  { _id, text, category, approved_by, source, embedding: []float32 }
//
// with an Atlas Vector Search index named "knowledge_vector_index" on the
// embedding path, filterable by approved_by.
type KnowledgeMongo struct {
	col       *mongo.Collection
	vectorIdx string
}

// NewKnowledgeRepository wires the knowledge collection.
func NewKnowledgeRepository(db *mongo.Database) *KnowledgeMongo {
	return &KnowledgeMongo{
		col:       db.Collection("knowledge"),
		vectorIdx: "knowledge_vector_index",
	}
}

// VectorSearch performs a K-NN search over passage embeddings, restricted to
// passages carrying the given approver tag, ordered by descending score.
func (r *KnowledgeMongo) VectorSearch(ctx context.Context, queryVec []float32, k int, approvedBy string) ([]models.KnowledgePassage, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: r.vectorIdx},
			{Key: "queryVector", Value: queryVec},
			{Key: "path", Value: "embedding"},
			{Key: "numCandidates", Value: k * 10},
			{Key: "limit", Value: k},
			{Key: "filter", Value: bson.M{"approved_by": approvedBy}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "text", Value: 1},
			{Key: "category", Value: 1},
			{Key: "approved_by", Value: 1},
			{Key: "source", Value: 1},
			{Key: "score", Value: bson.M{"$meta": "vectorSearchScore"}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var passages []models.KnowledgePassage
	if err := cur.All(ctx, &passages); err != nil {
		return nil, err
	}
	return passages, nil
}

// InsertMany bulk-inserts embedded passages. Used by the ingestion tool only.
func (r *KnowledgeMongo) InsertMany(ctx context.Context, passages []models.KnowledgePassage) error {
	docs := make([]interface{}, len(passages))
	for i, p := range passages {
		docs[i] = p
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}
