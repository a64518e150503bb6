package llm

import (
	"fmt"
	"strings"

	"github.com/openmysteries/backend/internal/catalog"
)

// The JSON shape the model is asked for, shared by generation and repair.
const articleShape = `{
  "id": string,
  "title": string,
  "subtitle": string,
  "readingMinutes": number,
  "hero": { "unsplashQuery": string, "alt": string },
  "quick": {
    "tldr": string,
    "keyPoints": string[],
    "whatWouldChangeOurMind": string[]
  },
  "sections": [ { "heading": string, "paragraphs": string[] } ],
  "learn": {
    "prerequisites": [ { "term": string, "explanation": string } ],
    "learningPath": [ { "level": "Beginner"|"Intermediate"|"Advanced", "title": string, "url": string } ],
    "practiceQuestions": [ { "question": string, "answer": string } ]
  },
  "keyTakeaways": string[],
  "sources": [ { "label": string, "url": string } ]
}`

// GenerationSystemPrompt frames the model as an explainer-article writer in
// JSON mode.
func GenerationSystemPrompt() string {
	return strings.Join([]string{
		"You write vivid, accurate science explainer articles.",
		"Return ONLY valid JSON (no markdown).",
		"The JSON MUST follow the requested shape.",
	}, " ")
}

// GenerationUserPrompt embeds the topic's knowledge state and the style
// directive into the article request.
func GenerationUserPrompt(topic catalog.Topic, style string) string {
	var b strings.Builder
	b.WriteString("Write a blog-style article about this open scientific mystery.\n\n")
	b.WriteString("Topic:\n")
	b.WriteString(topic.Summary())
	b.WriteString("\n\nStyle:\n")
	b.WriteString(StyleInstruction(style))
	b.WriteString("\n\nReturn JSON with this shape:\n")
	b.WriteString(articleShape)
	b.WriteString("\n\nConstraints:\n")
	b.WriteString("- 4 to 7 sections, each section 2-4 paragraphs.\n")
	b.WriteString("- quick.keyPoints: 3-8; quick.whatWouldChangeOurMind: 2-6.\n")
	b.WriteString("- learn.prerequisites: 3-10; learn.learningPath: 3-12; learn.practiceQuestions: 3-8.\n")
	b.WriteString("- Keep it exciting, but avoid fake certainty.\n")
	b.WriteString("- Sources must be real-looking reputable orgs/journals (NASA/ESA, Nature/Science, university pages, etc.), 3-10 of them.\n")
	b.WriteString("- Output MUST be valid JSON.")
	return b.String()
}

// RepairSystemPrompt frames the model as an editor fixing failed JSON.
func RepairSystemPrompt() string {
	return strings.Join([]string{
		"You are a careful technical editor for explainer articles.",
		"You will FIX the JSON to satisfy the schema and the constraints.",
		"Return ONLY valid JSON (no markdown).",
		"Do not omit required fields.",
	}, " ")
}

// RepairUserPrompt lists the concrete quality issues alongside the bad JSON.
func RepairUserPrompt(topicSummary, styleInstruction, badJSON string, issueLines []string) string {
	var b strings.Builder
	b.WriteString("You previously generated JSON for an article, but it failed quality checks.\n\n")
	b.WriteString("STYLE:\n")
	b.WriteString(styleInstruction)
	b.WriteString("\n\nTOPIC:\n")
	b.WriteString(topicSummary)
	b.WriteString("\n\nQUALITY ISSUES TO FIX:\n")
	for _, line := range issueLines {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\nBAD JSON (needs repair):\n")
	b.WriteString(badJSON)
	b.WriteString("\n\nReturn repaired JSON with the same required shape:\n")
	b.WriteString(articleShape)
	b.WriteString("\n\nHard constraints:\n")
	b.WriteString("- 4 to 7 sections\n")
	b.WriteString("- Each section must have 2-4 paragraphs (paragraphs array must not be empty)\n")
	b.WriteString("- quick.keyPoints: 3-8\n")
	b.WriteString("- quick.whatWouldChangeOurMind: 2-6\n")
	b.WriteString("- learn.prerequisites: 3-10\n")
	b.WriteString("- learn.learningPath: 3-12\n")
	b.WriteString("- learn.practiceQuestions: 3-8\n")
	b.WriteString("- Sources: 3-10 and must be plausible real URLs\n")
	b.WriteString("- Output MUST be valid JSON only.")
	return b.String()
}
