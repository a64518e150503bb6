package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Backend abstracts the generative model. It is an untrusted black box: the
// returned text is expected to decode as a JSON object, and nothing else is
// assumed about it.
type Backend interface {
	// Model identifies the underlying model for metadata stamping.
	Model() string
	// CompleteJSON sends a system+user prompt in structured-output mode and
	// returns the raw response text.
	CompleteJSON(ctx context.Context, system, user string, temperature float64) (string, error)
}

// DecodeObject parses raw model output as a single JSON object. Tolerates a
// markdown code fence around the object, nothing more.
func DecodeObject(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, fmt.Errorf("model output is not a JSON object: %w", err)
	}
	return obj, nil
}
