package llm

import (
	"context"
	"errors"
)

// ScriptedBackend replays canned responses in order. Local debugging and test
// double; never calls out.
type ScriptedBackend struct {
	Responses []string
	Errs      []error
	Calls     int
}

func (m *ScriptedBackend) Model() string { return "scripted" }

func (m *ScriptedBackend) CompleteJSON(_ context.Context, _, _ string, _ float64) (string, error) {
	i := m.Calls
	m.Calls++
	if i < len(m.Errs) && m.Errs[i] != nil {
		return "", m.Errs[i]
	}
	if i < len(m.Responses) {
		return m.Responses[i], nil
	}
	return "", errors.New("scripted backend: no response left")
}
