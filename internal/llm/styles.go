package llm

import "strings"

// Style variants alter tone and depth of the prompt, never the schema.
const (
	StyleDefault   = "default"
	StyleShort     = "short"
	StyleELI12     = "eli12"
	StyleTechnical = "technical"
	StyleAnalogies = "analogies"
)

var styleInstructions = map[string]string{
	StyleDefault:   "Write for curious adults. Vivid but careful; always separate evidence from hypothesis.",
	StyleShort:     "Be concise. Short paragraphs, compact sections; aim for a reading time under 6 minutes.",
	StyleELI12:     "Explain like the reader is 12 years old: simple words, everyday comparisons, and define any jargon the moment it appears.",
	StyleTechnical: "Write for readers with a science background. Use precise terminology and quantitative detail where it exists.",
	StyleAnalogies: "Anchor every major idea in a concrete everyday analogy before giving the precise explanation.",
}

// NormalizeStyle maps any string to a known style, falling back to default.
func NormalizeStyle(style string) string {
	s := strings.ToLower(strings.TrimSpace(style))
	if _, ok := styleInstructions[s]; !ok {
		return StyleDefault
	}
	return s
}

// StyleInstruction returns the prompt directive for a style.
func StyleInstruction(style string) string {
	return styleInstructions[NormalizeStyle(style)]
}
