package services

import (
	"context"
	"fmt"

	"github.com/claimpilot/claimpilot/internal/llm"
)

// LLMKeyInfoExtractor pulls key claim facts out of the summary abstract
type LLMKeyInfoExtractor struct {
	llmService
}

// ExtractKeyInfo returns the key facts as free-form text
func (e *LLMKeyInfoExtractor) ExtractKeyInfo(ctx context.Context, abstract string) (string, error) {
	if err := e.wait(ctx); err != nil {
		return "", failure("keyinfo", err)
	}

	prompt := fmt.Sprintf(`Extract key claim information from the following text:

%s

Return:
- Incident Date
- Damaged Items/Property
- Claimed Amounts (if stated)
- Cause of Damage
- Supporting Documents (if mentioned)`, abstract)

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{Prompt: prompt})
	if err != nil {
		return "", failure("keyinfo", err)
	}

	return resp.Text, nil
}
