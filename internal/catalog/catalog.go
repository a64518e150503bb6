package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed topics.yaml
var topicsYAML []byte

// Topic is a static, pre-authored subject descriptor driving generation.
// Loaded once at process start and never mutated.
type Topic struct {
	ID         string   `yaml:"id" json:"id"`
	Title      string   `yaml:"title" json:"title"`
	Category   string   `yaml:"category" json:"category"`
	Hook       string   `yaml:"hook" json:"hook"`
	Difficulty int      `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	Known      []string `yaml:"known,omitempty" json:"known,omitempty"`
	Unknown    []string `yaml:"unknown,omitempty" json:"unknown,omitempty"`
	Hypotheses []string `yaml:"hypotheses,omitempty" json:"hypotheses,omitempty"`
	HowToTest  []string `yaml:"howToTest,omitempty" json:"howToTest,omitempty"`
}

// Summary renders the knowledge-state hints as prompt-ready text.
func (t Topic) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "id: %s\ntitle: %s\ncategory: %s\nhook: %s\n", t.ID, t.Title, t.Category, t.Hook)
	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString(label + ":\n")
		for _, it := range items {
			b.WriteString("- " + it + "\n")
		}
	}
	writeList("What we know", t.Known)
	writeList("What we don't know", t.Unknown)
	writeList("Leading hypotheses", t.Hypotheses)
	writeList("How to test / move forward", t.HowToTest)
	return strings.TrimSpace(b.String())
}

// CategoryLabels maps category keys to display labels.
var CategoryLabels = map[string]string{
	"cosmology":    "Cosmology",
	"physics":      "Physics",
	"biology":      "Biology",
	"neuroscience": "Mind & Brain",
	"earth":        "Earth & Climate",
	"math":         "Math & Computation",
	"chemistry":    "Chemistry",
	"ai":           "AI & Computing",
}

// Catalog is the immutable topic table. Safe for concurrent reads.
type Catalog struct {
	topics []Topic
	byID   map[string]Topic
}

// Load parses the embedded topic list.
func Load() (*Catalog, error) {
	return parse(topicsYAML)
}

func parse(data []byte) (*Catalog, error) {
	var raw struct {
		Topics []Topic `yaml:"topics"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse topic catalog: %w", err)
	}
	if len(raw.Topics) == 0 {
		return nil, fmt.Errorf("topic catalog is empty")
	}
	byID := make(map[string]Topic, len(raw.Topics))
	for _, t := range raw.Topics {
		if t.ID == "" || t.Title == "" {
			return nil, fmt.Errorf("topic catalog entry missing id or title: %+v", t)
		}
		if _, dup := byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate topic id %q", t.ID)
		}
		if _, ok := CategoryLabels[t.Category]; !ok {
			return nil, fmt.Errorf("topic %q has unknown category %q", t.ID, t.Category)
		}
		byID[t.ID] = t
	}
	return &Catalog{topics: raw.Topics, byID: byID}, nil
}

// Get looks up a topic by id after trimming and lowercasing.
func (c *Catalog) Get(id string) (Topic, bool) {
	t, ok := c.byID[NormalizeID(id)]
	return t, ok
}

// All returns the topics in catalog order. The slice is a copy.
func (c *Catalog) All() []Topic {
	out := make([]Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

func (c *Catalog) Len() int { return len(c.topics) }

// NormalizeID canonicalizes a requested topic id.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
