package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/kovaldeepai/server/internal/models"
)

// analysisDiveLimit is how much history a pattern analysis looks at.
const analysisDiveLimit = 20

// EncloseFinding maps detected indicators onto one E.N.C.L.O.S.E. category
// of the Koval diagnostic framework.
type EncloseFinding struct {
	Code       string   `json:"code"`
	Area       string   `json:"area"`
	Indicators []string `json:"indicators"`
}

// DiveAnalysis is the result of a pattern scan over recent dive history.
type DiveAnalysis struct {
	UserID        string           `json:"userId"`
	DivesAnalyzed int              `json:"divesAnalyzed"`
	Flags         []string         `json:"flags"`
	Enclose       []EncloseFinding `json:"enclose"`
	Summary       string           `json:"summary"`
}

// AnalysisService scans a user's recent dives for recurring physiological
// and technique patterns, maps them onto the ENCLOSE categories, and asks
// the LLM for a coaching summary.
type AnalysisService interface {
	AnalyzePatterns(ctx context.Context, userID string) (DiveAnalysis, error)
}

type analysisService struct {
	dives DiveStore
	llm   LLM
}

// NewAnalysisService wires dependencies.
func NewAnalysisService(dives DiveStore, llm LLM) AnalysisService {
	return &analysisService{dives: dives, llm: llm}
}

// encloseKeywords drives the diagnostic mapping: category → indicators
// matched case-insensitively against dive notes.
var encloseKeywords = []struct {
	code     string
	area     string
	keywords []string
}{
	{"E", "Equalization", []string{"equaliz", "ears", "eardrum", "frenzel", "mouthfill", "reverse block"}},
	{"N", "Narcosis", []string{"narcosis", "foggy", "confus", "dizzy at depth"}},
	{"C", "CO2/O2 tolerance", []string{"contraction", "urge to breathe", "co2", "hypoxic"}},
	{"L", "Leg fatigue", []string{"leg burn", "legs burn", "kick", "finning", "lactic"}},
	{"O", "Oxygen management", []string{"blackout", "samba", "lmc", "hypoxia"}},
	{"S", "Squeeze", []string{"squeeze", "blood", "throat", "trachea", "lung"}},
	{"E2", "Equipment", []string{"mask", "wetsuit", "fins", "lanyard", "noseclip"}},
}

// AnalyzePatterns fetches the recent slice, derives flags and ENCLOSE
// findings by keyword/field matching, then asks the LLM for a summary.
// LLM failures degrade to a fallback summary, never an error.
func (s *analysisService) AnalyzePatterns(ctx context.Context, userID string) (DiveAnalysis, error) {
	dives, err := s.dives.Recent(ctx, userID, analysisDiveLimit)
	if err != nil {
		return DiveAnalysis{}, fmt.Errorf("failed to load dive history: %w", err)
	}

	analysis := DiveAnalysis{
		UserID:        userID,
		DivesAnalyzed: len(dives),
	}
	if len(dives) == 0 {
		analysis.Summary = "Not enough dive history to analyze yet. Log a few dives and ask again."
		return analysis, nil
	}

	analysis.Flags = detectFlags(dives)
	analysis.Enclose = mapEnclose(dives)

	prompt := analysisPrompt(dives, analysis.Flags)
	summary, err := s.llm.Generate(ctx, []models.Message{
		{Role: "system", Content: "You are a freediving coach reviewing a student's recent dive log. Point out patterns and give specific, conservative advice."},
		{Role: "user", Content: prompt},
	})
	if err != nil || strings.TrimSpace(summary) == "" {
		if err != nil {
			log.Printf("[Analysis Service] summary generation failed: %v", err)
		}
		summary = FallbackFor(err)
	}
	analysis.Summary = summary

	return analysis, nil
}

// detectFlags derives coarse pattern flags from the structured fields.
func detectFlags(dives []models.DiveLog) []string {
	var squeezes, blackouts, earlyTurns int
	for _, d := range dives {
		if d.Squeeze {
			squeezes++
		}
		if d.Blackout {
			blackouts++
		}
		if d.EarlyTurn() {
			earlyTurns++
		}
	}

	var flags []string
	if squeezes > 0 {
		flags = append(flags, fmt.Sprintf("squeeze reported on %d of %d dives", squeezes, len(dives)))
	}
	if blackouts > 0 {
		flags = append(flags, fmt.Sprintf("blackout reported on %d of %d dives", blackouts, len(dives)))
	}
	if earlyTurns > 1 {
		flags = append(flags, fmt.Sprintf("turned early on %d of %d dives", earlyTurns, len(dives)))
	}
	// Dives arrive newest first: a jump of more than 5m between consecutive
	// dives signals aggressive progression.
	for i := 0; i+1 < len(dives); i++ {
		if dives[i].ReachedDepth-dives[i+1].ReachedDepth > 5 {
			flags = append(flags, "depth progression faster than 5m between dives")
			break
		}
	}
	return flags
}

// mapEnclose matches notes and flags against the ENCLOSE keyword lists.
func mapEnclose(dives []models.DiveLog) []EncloseFinding {
	var notes strings.Builder
	for _, d := range dives {
		notes.WriteString(strings.ToLower(d.Notes))
		notes.WriteString("\n")
		if d.Squeeze {
			notes.WriteString("squeeze\n")
		}
		if d.Blackout {
			notes.WriteString("blackout\n")
		}
	}
	text := notes.String()

	var findings []EncloseFinding
	for _, cat := range encloseKeywords {
		var hits []string
		for _, kw := range cat.keywords {
			if strings.Contains(text, kw) {
				hits = append(hits, kw)
			}
		}
		if len(hits) > 0 {
			findings = append(findings, EncloseFinding{
				Code:       cat.code,
				Area:       cat.area,
				Indicators: hits,
			})
		}
	}
	return findings
}

func analysisPrompt(dives []models.DiveLog, flags []string) string {
	var sb strings.Builder
	sb.WriteString("Recent dive log:\n")
	sb.WriteString(divePrompt(dives))
	if len(flags) > 0 {
		sb.WriteString("\nDetected patterns:\n")
		for _, f := range flags {
			sb.WriteString("- " + f + "\n")
		}
	}
	sb.WriteString("\nSummarize what this diver should work on next.")
	return sb.String()
}
