package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/openmysteries/backend/internal/article"
	"github.com/openmysteries/backend/internal/catalog"
	"github.com/openmysteries/backend/internal/pkg/logger"
)

func TestNormalizeStyle(t *testing.T) {
	cases := map[string]string{
		"":           StyleDefault,
		"default":    StyleDefault,
		"SHORT":      StyleShort,
		" eli12 ":    StyleELI12,
		"technical":  StyleTechnical,
		"analogies":  StyleAnalogies,
		"freestyle":  StyleDefault,
		"ELI5":       StyleDefault,
	}
	for in, want := range cases {
		if got := NormalizeStyle(in); got != want {
			t.Fatalf("NormalizeStyle(%q): want %s got %s", in, want, got)
		}
	}
}

func TestStyleInstruction_AlwaysNonEmpty(t *testing.T) {
	for _, s := range []string{StyleDefault, StyleShort, StyleELI12, StyleTechnical, StyleAnalogies, "unknown"} {
		if StyleInstruction(s) == "" {
			t.Fatalf("empty instruction for style %q", s)
		}
	}
}

func TestDecodeObject(t *testing.T) {
	obj, err := DecodeObject(`{"title": "x"}`)
	if err != nil || obj["title"] != "x" {
		t.Fatalf("plain object: obj=%v err=%v", obj, err)
	}
	obj, err = DecodeObject("```json\n{\"title\": \"x\"}\n```")
	if err != nil || obj["title"] != "x" {
		t.Fatalf("fenced object: obj=%v err=%v", obj, err)
	}
	if _, err := DecodeObject("here is your article: ..."); err == nil {
		t.Fatalf("expected error for non-JSON text")
	}
	if _, err := DecodeObject(`["array","not","object"]`); err == nil {
		t.Fatalf("expected error for non-object JSON")
	}
}

func TestGenerationUserPrompt_EmbedsTopicAndStyle(t *testing.T) {
	topic := catalog.Topic{
		ID:       "hubble-tension",
		Title:    "The Hubble Tension",
		Category: "cosmology",
		Hook:     "Two rulers disagree.",
		Known:    []string{"CMB infers a lower H0."},
	}
	p := GenerationUserPrompt(topic, StyleELI12)
	for _, want := range []string{"hubble-tension", "CMB infers a lower H0.", StyleInstruction(StyleELI12), `"sections"`, "valid JSON"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestRepairAgent_BuildsPromptFromIssuesAndTruncatesBadJSON(t *testing.T) {
	backend := &ScriptedBackend{Responses: []string{`{"title":"fixed"}`}}
	agent := NewRepairAgent(logger.NewNop(), backend)

	big := map[string]any{"filler": strings.Repeat("x", 3*maxBadJSONBytes)}
	issues := []article.Issue{
		{Severity: article.SeverityWarn, Code: "SOURCES_FEW", Message: "Too few sources (<3)."},
	}
	obj, err := agent.Repair(context.Background(), big, issues, "topic summary", "style directive")
	if err != nil {
		t.Fatalf("repair failed: %v", err)
	}
	if obj["title"] != "fixed" {
		t.Fatalf("unexpected repair output: %v", obj)
	}
	if backend.Calls != 1 {
		t.Fatalf("expected exactly one backend call, got %d", backend.Calls)
	}
}

func TestRepairAgent_UnparsableOutputIsGenerationError(t *testing.T) {
	backend := &ScriptedBackend{Responses: []string{"sorry, I cannot"}}
	agent := NewRepairAgent(logger.NewNop(), backend)

	_, err := agent.Repair(context.Background(), map[string]any{}, nil, "s", "d")
	genErr, ok := err.(*article.GenerationError)
	if !ok {
		t.Fatalf("expected GenerationError, got %T: %v", err, err)
	}
	if genErr.Code != article.CodeRepairFailed {
		t.Fatalf("expected code %s, got %s", article.CodeRepairFailed, genErr.Code)
	}
}
