package article

import (
	"fmt"
	"strings"
	"time"
)

// Minimums the strict schema will require; the sanitizer pads up to these
// with deterministic fallback content rather than failing a thin article.
const (
	minKeyPoints    = 3
	minMindChangers = 2
	minPrereqs      = 3
	minPathSteps    = 3
	minPractice     = 3
)

// SanitizeOptions identifies the request the raw output belongs to.
type SanitizeOptions struct {
	TopicID      string
	TopicTitle   string
	Style        string
	Model        string
	CacheVersion string
	Now          time.Time
}

// Sanitize coerces raw, untrusted model output into a candidate Document for
// strict validation. It never panics on garbage: every field degrades to a
// coerced value or a deterministic fallback. The only failure mode is zero
// salvageable sections, reported as a GenerationError.
func Sanitize(raw map[string]any, opts SanitizeOptions) (Document, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	var doc Document

	// Identifier drift from the backend would poison other topics' cache
	// slots, so the requested id always wins.
	doc.ID = opts.TopicID

	doc.Title = stringFromAny(raw["title"])
	if doc.Title == "" {
		doc.Title = opts.TopicTitle
	}
	doc.Subtitle = stringFromAny(raw["subtitle"])

	doc.Sections = sanitizeSections(raw["sections"])
	if len(doc.Sections) == 0 {
		return Document{}, &GenerationError{
			Code:    CodeModelSectionsEmpty,
			Message: "no section with usable paragraphs survived coercion",
		}
	}

	doc.ReadingMinutes = intFromAny(raw["readingMinutes"])
	if doc.ReadingMinutes < 1 {
		doc.ReadingMinutes = estimateReadingMinutes(doc)
	}
	if doc.ReadingMinutes > maxReadingMinutes {
		doc.ReadingMinutes = maxReadingMinutes
	}

	hero := mapFromAny(raw["hero"])
	doc.Hero.UnsplashQuery = stringFromAny(hero["unsplashQuery"])
	doc.Hero.Alt = stringFromAny(hero["alt"])
	if doc.Hero.UnsplashQuery == "" {
		doc.Hero.UnsplashQuery = doc.Title
	}
	if doc.Hero.Alt == "" {
		doc.Hero.Alt = doc.Title
	}

	doc.KeyTakeaways = stringSliceFromAny(raw["keyTakeaways"])
	doc.Sources = sanitizeSources(raw["sources"])
	doc.Quick = sanitizeQuick(mapFromAny(raw["quick"]), doc)
	doc.Learn = sanitizeLearn(mapFromAny(raw["learn"]), doc)

	doc.Meta = Meta{
		GeneratedAt:  opts.Now.Format(time.RFC3339),
		Model:        opts.Model,
		Style:        opts.Style,
		CacheVersion: opts.CacheVersion,
	}

	return doc.EnsureDefaults(), nil
}

func sanitizeSections(v any) []Section {
	out := []Section{}
	for i, e := range sliceFromAny(v) {
		m := mapFromAny(e)
		if m == nil {
			continue
		}
		paras := stringSliceFromAny(m["paragraphs"])
		if len(paras) == 0 {
			continue
		}
		heading := stringFromAny(m["heading"])
		if heading == "" {
			heading = fmt.Sprintf("Part %d", i+1)
		}
		out = append(out, Section{Heading: heading, Paragraphs: paras})
	}
	return out
}

func sanitizeSources(v any) []Source {
	out := []Source{}
	for _, e := range sliceFromAny(v) {
		m := mapFromAny(e)
		if m == nil {
			continue
		}
		label := stringFromAny(m["label"])
		url := stringFromAny(m["url"])
		if label == "" || url == "" {
			continue
		}
		out = append(out, Source{Label: label, URL: url})
	}
	return out
}

func sanitizeQuick(m map[string]any, doc Document) Quick {
	q := Quick{
		TLDR:                   stringFromAny(m["tldr"]),
		KeyPoints:              stringSliceFromAny(m["keyPoints"]),
		WhatWouldChangeOurMind: stringSliceFromAny(m["whatWouldChangeOurMind"]),
	}
	if q.TLDR == "" {
		q.TLDR = fallbackTLDR(doc)
	}
	// Pad from the article's own takeaways first, then section headings.
	for _, t := range doc.KeyTakeaways {
		if len(q.KeyPoints) >= minKeyPoints {
			break
		}
		q.KeyPoints = append(q.KeyPoints, t)
	}
	for _, s := range doc.Sections {
		if len(q.KeyPoints) >= minKeyPoints {
			break
		}
		q.KeyPoints = append(q.KeyPoints, fmt.Sprintf("See the section %q.", s.Heading))
	}
	for len(q.KeyPoints) < minKeyPoints {
		q.KeyPoints = append(q.KeyPoints, "Revisit the article sections for the full picture.")
	}
	fallbackMindChangers := []string{
		"New peer-reviewed evidence contradicting the current picture.",
		"A replicated experiment ruling out the leading hypothesis.",
	}
	for _, f := range fallbackMindChangers {
		if len(q.WhatWouldChangeOurMind) >= minMindChangers {
			break
		}
		q.WhatWouldChangeOurMind = append(q.WhatWouldChangeOurMind, f)
	}
	return q
}

func sanitizeLearn(m map[string]any, doc Document) Learn {
	l := Learn{
		Prerequisites:     []Prerequisite{},
		LearningPath:      []PathStep{},
		PracticeQuestions: []PracticeQuestion{},
	}
	for _, e := range sliceFromAny(m["prerequisites"]) {
		pm := mapFromAny(e)
		term := stringFromAny(pm["term"])
		expl := stringFromAny(pm["explanation"])
		if term == "" || expl == "" {
			continue
		}
		l.Prerequisites = append(l.Prerequisites, Prerequisite{Term: term, Explanation: expl})
	}
	for _, e := range sliceFromAny(m["learningPath"]) {
		pm := mapFromAny(e)
		title := stringFromAny(pm["title"])
		if title == "" {
			continue
		}
		l.LearningPath = append(l.LearningPath, PathStep{
			Level: normalizeLevel(stringFromAny(pm["level"])),
			Title: title,
			URL:   stringFromAny(pm["url"]),
		})
	}
	for _, e := range sliceFromAny(m["practiceQuestions"]) {
		pm := mapFromAny(e)
		q := stringFromAny(pm["question"])
		a := stringFromAny(pm["answer"])
		if q == "" || a == "" {
			continue
		}
		l.PracticeQuestions = append(l.PracticeQuestions, PracticeQuestion{Question: q, Answer: a})
	}

	fallbackPrereqs := []Prerequisite{
		{Term: "Scientific method", Explanation: "How hypotheses are proposed, tested, and discarded against evidence."},
		{Term: "Orders of magnitude", Explanation: "Reading scales like light-years or nanometers without exact numbers."},
		{Term: "Uncertainty", Explanation: "Why measurements carry error bars and what confidence means."},
	}
	for _, p := range fallbackPrereqs {
		if len(l.Prerequisites) >= minPrereqs {
			break
		}
		l.Prerequisites = append(l.Prerequisites, p)
	}

	fallbackPath := []PathStep{
		{Level: LevelBeginner, Title: "Read the article sections above in order", URL: "https://en.wikipedia.org/wiki/Scientific_method"},
		{Level: LevelIntermediate, Title: "Follow the sources listed at the end of the article", URL: "https://scholar.google.com"},
		{Level: LevelAdvanced, Title: "Look up recent review papers on the topic", URL: "https://arxiv.org"},
	}
	for _, p := range fallbackPath {
		if len(l.LearningPath) >= minPathSteps {
			break
		}
		l.LearningPath = append(l.LearningPath, p)
	}

	fallbackPractice := []PracticeQuestion{
		{Question: "State the core open question in one sentence.", Answer: "Compare your phrasing with the TL;DR and the first section."},
		{Question: "Which observation is the strongest evidence here?", Answer: "Pick one item from the key takeaways and justify it."},
		{Question: "What finding would overturn the leading hypothesis?", Answer: "See the 'what would change our mind' list."},
	}
	for _, p := range fallbackPractice {
		if len(l.PracticeQuestions) >= minPractice {
			break
		}
		l.PracticeQuestions = append(l.PracticeQuestions, p)
	}

	return l
}

func normalizeLevel(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "intermediate":
		return LevelIntermediate
	case "advanced":
		return LevelAdvanced
	default:
		return LevelBeginner
	}
}

func estimateReadingMinutes(doc Document) int {
	// Rough floor: half a minute per paragraph, never under 3.
	est := doc.TotalParagraphs() / 2
	if est < 3 {
		est = 3
	}
	return est
}

func fallbackTLDR(doc Document) string {
	for _, s := range doc.Sections {
		for _, p := range s.Paragraphs {
			if r := []rune(p); len(r) > 220 {
				return string(r[:220])
			}
			return p
		}
	}
	return doc.Title
}
