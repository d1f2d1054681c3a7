package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kovaldeepai/server/internal/models"
)

func TestClassifyLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile models.UserProfile
		want    string
	}{
		{"instructor with no pb", models.UserProfile{IsInstructor: true}, LevelExpert},
		{"pb exactly at threshold", models.UserProfile{PersonalBest: 80}, LevelBeginner},
		{"pb just past threshold", models.UserProfile{PersonalBest: 81}, LevelExpert},
		{"empty profile", models.UserProfile{}, LevelBeginner},
		{"negative pb", models.UserProfile{PersonalBest: -3}, LevelBeginner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyLevel(tt.profile))
		})
	}
}

func TestDepthBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth float64
		want  string
	}{
		{0, "10m"},
		{9.9, "10m"},
		{10, "10m"},
		{47, "40m"},
		{100, "100m"},
		{105, "100m"},
		{1000, "100m"},
		{-5, "10m"},
		{math.NaN(), "10m"},
		{math.Inf(1), "10m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DepthBucket(tt.depth), "bucket(%v)", tt.depth)
	}
}
