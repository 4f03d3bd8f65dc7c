package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/claimpilot/claimpilot/internal/llm"
)

const labelPrompt = "Look at the image and list all clearly visible objects, structures, " +
	"or notable elements. Respond only with short keywords separated by commas, " +
	"without any explanation or extra text."

// LLMLabelDetector detects image labels through a vision-capable provider
type LLMLabelDetector struct {
	llmService
}

// DetectLabels lists what the model sees in the evidence image
func (d *LLMLabelDetector) DetectLabels(ctx context.Context, evidenceRef string) ([]string, error) {
	data, err := os.ReadFile(evidenceRef)
	if err != nil {
		return nil, failure("label", fmt.Errorf("read evidence: %w", err))
	}

	if err := d.wait(ctx); err != nil {
		return nil, failure("label", err)
	}

	resp, err := d.provider.Complete(ctx, llm.CompletionRequest{
		Prompt: labelPrompt,
		Images: [][]byte{data},
	})
	if err != nil {
		return nil, failure("label", err)
	}

	return splitLabels(resp.Text), nil
}

// splitLabels turns the comma-separated model output into a clean label list.
// An empty list is a valid result.
func splitLabels(raw string) []string {
	labels := []string{}
	for _, part := range strings.Split(raw, ",") {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
