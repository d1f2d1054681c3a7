package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiveLog is a single logged dive. The chat flow reads a bounded recent slice
// for context; writes come through the dive endpoints, never from chat.
type DiveLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       string             `bson:"user_id" json:"userId"`
	Date         time.Time          `bson:"date" json:"date"`
	Discipline   string             `bson:"discipline,omitempty" json:"discipline,omitempty"` // CWT, CNF, FIM, ...
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	TargetDepth  float64            `bson:"target_depth,omitempty" json:"targetDepth,omitempty"` // meters
	ReachedDepth float64            `bson:"reached_depth,omitempty" json:"reachedDepth,omitempty"`
	TotalSeconds int                `bson:"total_seconds,omitempty" json:"totalSeconds,omitempty"`
	Squeeze      bool               `bson:"squeeze,omitempty" json:"squeeze,omitempty"`
	Blackout     bool               `bson:"blackout,omitempty" json:"blackout,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// EarlyTurn reports whether the diver turned well short of the announced
// target (more than 5m shy), a coarse signal used by pattern analysis.
func (d DiveLog) EarlyTurn() bool {
	return d.TargetDepth > 0 && d.TargetDepth-d.ReachedDepth > 5
}
