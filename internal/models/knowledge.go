package models

// KnowledgePassage is a chunk of the coaching corpus with its embedding and
// provenance metadata. Read-only to the chat flow; written by cmd/ingest.
type KnowledgePassage struct {
	ID         string    `bson:"_id,omitempty" json:"id,omitempty"`
	Text       string    `bson:"text" json:"text"`
	Category   string    `bson:"category,omitempty" json:"category,omitempty"`
	ApprovedBy string    `bson:"approved_by" json:"approvedBy"`
	Source     string    `bson:"source,omitempty" json:"source,omitempty"`
	Embedding  []float32 `bson:"embedding,omitempty" json:"-"`
	Score      float64   `bson:"score,omitempty" json:"score,omitempty"` // vector search score
}
