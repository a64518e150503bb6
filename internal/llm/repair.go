package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openmysteries/backend/internal/article"
	"github.com/openmysteries/backend/internal/pkg/logger"
)

// Keep the bad JSON in the repair prompt bounded.
const maxBadJSONBytes = 12000

const repairTemperature = 0.4

// RepairAgent re-invokes the backend once with the prior bad output and the
// specific quality issues, requesting a targeted fix. It does not validate or
// sanitize; the caller re-runs the full pipeline on the result.
type RepairAgent struct {
	log     *logger.Logger
	backend Backend
}

func NewRepairAgent(log *logger.Logger, backend Backend) *RepairAgent {
	return &RepairAgent{
		log:     log.With("service", "RepairAgent"),
		backend: backend,
	}
}

// Repair returns the decoded repaired JSON. Any failure (backend error,
// unparsable output) is a GenerationError and terminal for the request.
func (a *RepairAgent) Repair(ctx context.Context, badJSON any, issues []article.Issue, topicSummary, styleInstruction string) (map[string]any, error) {
	encoded, err := json.Marshal(badJSON)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", badJSON))
	}
	if len(encoded) > maxBadJSONBytes {
		encoded = encoded[:maxBadJSONBytes]
	}

	issueLines := make([]string, 0, len(issues))
	for _, i := range issues {
		issueLines = append(issueLines, fmt.Sprintf("[%s] %s: %s", i.Severity, i.Code, i.Message))
	}

	user := RepairUserPrompt(topicSummary, styleInstruction, string(encoded), issueLines)

	text, err := a.backend.CompleteJSON(ctx, RepairSystemPrompt(), user, repairTemperature)
	if err != nil {
		return nil, &article.GenerationError{
			Code:    article.CodeRepairFailed,
			Message: "repair call failed",
			Err:     err,
		}
	}
	obj, err := DecodeObject(text)
	if err != nil {
		return nil, &article.GenerationError{
			Code:    article.CodeRepairFailed,
			Message: "repair output did not decode as JSON",
			Err:     err,
		}
	}
	a.log.Debug("repair produced candidate", "issues", len(issues))
	return obj, nil
}
