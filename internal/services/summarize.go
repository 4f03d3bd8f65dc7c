package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/claimpilot/claimpilot/internal/llm"
	"github.com/claimpilot/claimpilot/internal/model"
)

// LLMSummarizer produces the narrative abstract and label match score
type LLMSummarizer struct {
	llmService
}

type summaryPayload struct {
	Summary         string `json:"summary"`
	LabelMatchScore int    `json:"label_match_score"`
	Insight         string `json:"insight"`
}

// Summarize asks the model for a strict-JSON summary of the claim. Malformed
// model output still yields a well-formed Summary with score 0; only
// transport failures return an error.
func (s *LLMSummarizer) Summarize(ctx context.Context, narrative string, labels []string) (model.Summary, error) {
	if err := s.wait(ctx); err != nil {
		return model.Summary{}, failure("summarize", err)
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		System: "You are an insurance-claim analyst. Return strict JSON only.",
		Prompt: buildSummaryPrompt(narrative, labels),
	})
	if err != nil {
		return model.Summary{}, failure("summarize", err)
	}

	return ParseSummaryResponse(resp.Text), nil
}

func buildSummaryPrompt(narrative string, labels []string) string {
	labelsStr := "N/A"
	if len(labels) > 0 {
		labelsStr = strings.Join(labels, ", ")
	}

	return fmt.Sprintf(`CLAIM_TEXT:
"""%s"""

IMAGE_LABELS:
%s

TASKS
1. Rewrite a clear, two-sentence abstract of what the claimant says happened.
2. Rate how strongly the image labels support the claim on a scale of 1-10
   (10 = labels unmistakably prove the claim; 1 = labels contradict it).
3. If you see any gap or missing evidence (max 25 words), output it as an insight.

Respond strictly as valid JSON in this exact schema:
{"summary": "<two sentence summary>", "label_match_score": <integer 1-10>, "insight": "<short observation or '-' if none>"}`,
		narrative, labelsStr)
}

// ParseSummaryResponse classifies the model output. A JSON parse failure is
// not an error: the raw text becomes the abstract, the score drops to 0, and
// the insight explains why.
func ParseSummaryResponse(raw string) model.Summary {
	cleaned := stripCodeFences(raw)

	var payload summaryPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return model.Summary{
			AbstractText:    strings.TrimSpace(raw),
			LabelMatchScore: 0,
			Insight:         "Format error in model response.",
		}
	}

	if payload.LabelMatchScore < 0 || payload.LabelMatchScore > 10 {
		payload.LabelMatchScore = 0
	}

	return model.Summary{
		AbstractText:    strings.TrimSpace(payload.Summary),
		LabelMatchScore: payload.LabelMatchScore,
		Insight:         strings.TrimSpace(payload.Insight),
	}
}

// stripCodeFences removes a markdown code fence wrapper if the model added one
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
