package service

import (
	"fmt"
	"strings"

	"github.com/kovaldeepai/server/internal/models"
)

// maxPromptPassages caps how many retrieved passages enter the prompt.
// Passages beyond the cap are dropped silently, no summarization.
const maxPromptPassages = 3

// noKnowledgeNotice stands in for the knowledge message when retrieval came
// back empty, so the model knows it is answering from general guidance.
const noKnowledgeNotice = "No specific knowledge passages were found for this question. " +
	"Answer from general freediving coaching principles and say so when unsure."

// BuildMessages assembles the chat completion request: a system message
// parameterized by the classified level, a knowledge message with at most
// three retrieved passages, an optional dive history message, and the user's
// message.
func BuildMessages(level string, passages []models.KnowledgePassage, dives []models.DiveLog, userMsg string) []models.Message {
	msgs := []models.Message{
		{Role: "system", Content: systemPrompt(level)},
		{Role: "system", Content: knowledgePrompt(passages)},
	}
	if len(dives) > 0 {
		msgs = append(msgs, models.Message{Role: "system", Content: divePrompt(dives)})
	}
	msgs = append(msgs, models.Message{Role: "user", Content: userMsg})
	return msgs
}

func systemPrompt(level string) string {
	var sb strings.Builder
	sb.WriteString("You are Koval Deep AI, a freediving coach trained on Daniel Koval's methodology.\n")
	sb.WriteString("Guidelines:\n")
	sb.WriteString("- Never encourage diving alone or skipping safety protocols.\n")
	sb.WriteString("- Recommend conservative depth progression (no more than a few meters at a time).\n")
	if level == LevelExpert {
		sb.WriteString("- The diver is experienced; use precise technical terminology ")
		sb.WriteString("(mouthfill, residual volume, FRC) and discuss advanced equalization freely.\n")
	} else {
		sb.WriteString("- The diver is a beginner; keep explanations simple, define terms, ")
		sb.WriteString("and emphasize fundamentals and safety over performance.\n")
	}
	return sb.String()
}

func knowledgePrompt(passages []models.KnowledgePassage) string {
	if len(passages) == 0 {
		return noKnowledgeNotice
	}
	if len(passages) > maxPromptPassages {
		passages = passages[:maxPromptPassages]
	}
	var sb strings.Builder
	sb.WriteString("Relevant coaching knowledge:\n")
	for i, p := range passages {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.TrimSpace(p.Text)))
	}
	return sb.String()
}

func divePrompt(dives []models.DiveLog) string {
	var sb strings.Builder
	sb.WriteString("Recent dives, newest first:\n")
	for _, d := range dives {
		sb.WriteString(fmt.Sprintf("- %s %s: %.0fm of %.0fm target",
			d.Date.Format("2006-01-02"), d.Discipline, d.ReachedDepth, d.TargetDepth))
		var flags []string
		if d.Squeeze {
			flags = append(flags, "squeeze")
		}
		if d.Blackout {
			flags = append(flags, "blackout")
		}
		if d.EarlyTurn() {
			flags = append(flags, "early turn")
		}
		if len(flags) > 0 {
			sb.WriteString(" (" + strings.Join(flags, ", ") + ")")
		}
		if d.Notes != "" {
			sb.WriteString(" — " + d.Notes)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
