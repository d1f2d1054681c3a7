package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovaldeepai/server/internal/models"
)

func dive(daysAgo int, target, reached float64, squeeze, blackout bool, notes string) models.DiveLog {
	return models.DiveLog{
		UserID:       "u1",
		Date:         time.Now().AddDate(0, 0, -daysAgo),
		Discipline:   "CWT",
		TargetDepth:  target,
		ReachedDepth: reached,
		Squeeze:      squeeze,
		Blackout:     blackout,
		Notes:        notes,
	}
}

func TestAnalyzePatterns_NoHistory(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{reply: "should not be called"}
	svc := NewAnalysisService(&fakeDives{}, llm)

	got, err := svc.AnalyzePatterns(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, got.DivesAnalyzed)
	assert.Contains(t, got.Summary, "Not enough dive history")
	assert.Zero(t, llm.calls, "no LLM call without history")
}

func TestAnalyzePatterns_FlagsAndEnclose(t *testing.T) {
	t.Parallel()

	dives := []models.DiveLog{
		dive(1, 45, 45, false, false, "struggled with mouthfill past 35, strong contractions"),
		dive(3, 42, 30, true, false, "ears would not equalize, turned early"),
		dive(6, 40, 40, false, false, "clean dive, mask felt loose"),
	}
	llm := &fakeLLM{reply: "Work on equalization before adding depth."}
	svc := NewAnalysisService(&fakeDives{dives: dives}, llm)

	got, err := svc.AnalyzePatterns(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 3, got.DivesAnalyzed)
	assert.Contains(t, got.Flags, "squeeze reported on 1 of 3 dives")
	assert.Contains(t, got.Flags, "depth progression faster than 5m between dives")

	areas := make(map[string][]string)
	for _, f := range got.Enclose {
		areas[f.Area] = f.Indicators
	}
	assert.Contains(t, areas, "Equalization")
	assert.Contains(t, areas, "CO2/O2 tolerance")
	assert.Contains(t, areas, "Squeeze")
	assert.Contains(t, areas, "Equipment")
	assert.NotContains(t, areas, "Narcosis")

	assert.Equal(t, llm.reply, got.Summary)
	assert.Equal(t, 1, llm.calls)
}

func TestAnalyzePatterns_LLMFailureDegradesToFallback(t *testing.T) {
	t.Parallel()

	dives := []models.DiveLog{dive(1, 30, 30, false, false, "fine")}
	llm := &fakeLLM{err: errors.New("UNAUTHENTICATED")}
	svc := NewAnalysisService(&fakeDives{dives: dives}, llm)

	got, err := svc.AnalyzePatterns(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, FallbackAuth, got.Summary)
}

func TestAnalyzePatterns_StoreErrorPropagates(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(&fakeDives{err: errors.New("down")}, &fakeLLM{})

	_, err := svc.AnalyzePatterns(context.Background(), "u1")
	assert.Error(t, err)
}
