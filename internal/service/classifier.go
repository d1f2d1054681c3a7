package service

import (
	"fmt"
	"math"

	"github.com/kovaldeepai/server/internal/models"
)

// User skill tiers derived from the stored profile. Coarse by design: the
// prompts only distinguish two registers of coaching language.
const (
	LevelExpert   = "expert"
	LevelBeginner = "beginner"
)

// expertDepthThreshold is the personal best, in meters, beyond which a diver
// is addressed as an expert even without an instructor rating.
const expertDepthThreshold = 80

// ClassifyLevel maps a profile to a skill tier. Total: malformed or empty
// profiles classify as beginner.
func ClassifyLevel(p models.UserProfile) string {
	if p.IsInstructor || p.PersonalBest > expertDepthThreshold {
		return LevelExpert
	}
	return LevelBeginner
}

// DepthBucket rounds a depth down to the nearest 10m bucket, clamped to
// [10, 100], rendered as e.g. "40m". Used only for prompt and metadata
// flavor, never for safety-critical logic. Total: non-finite or non-positive
// input yields "10m".
func DepthBucket(depth float64) string {
	if math.IsNaN(depth) || math.IsInf(depth, 0) || depth < 10 {
		return "10m"
	}
	bucket := int(depth/10) * 10
	if bucket > 100 {
		bucket = 100
	}
	return fmt.Sprintf("%dm", bucket)
}
