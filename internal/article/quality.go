package article

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	SeverityInfo     = "info"
	SeverityWarn     = "warn"
	SeverityCritical = "critical"
)

type Issue struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

type QualityChecks struct {
	SectionCount    int `json:"sectionCount"`
	TotalParagraphs int `json:"totalParagraphs"`
	SourcesCount    int `json:"sourcesCount"`
	BadURLs         int `json:"badUrls"`
}

// QualityReport is derived and ephemeral: recomputed where needed, never
// cached as authoritative.
type QualityReport struct {
	Score  int           `json:"score"`
	Grade  string        `json:"grade"`
	Passed bool          `json:"passed"`
	Checks QualityChecks `json:"checks"`
	Issues []Issue       `json:"issues"`
}

func (r QualityReport) HasCritical() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

func gradeFromScore(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// EvaluateQuality scores a validated Document against the content-completeness
// heuristics. Pure and deterministic; all penalties accumulate independently
// in one pass, starting from 100.
func EvaluateQuality(doc Document) QualityReport {
	issues := []Issue{}
	score := 100

	add := func(severity, code, message string, penalty int) {
		score -= penalty
		issues = append(issues, Issue{Severity: severity, Code: code, Message: message})
	}

	sectionCount := len(doc.Sections)
	totalParagraphs := doc.TotalParagraphs()
	sourcesCount := len(doc.Sources)

	if sectionCount < 4 {
		add(SeverityCritical, "SECTIONS_TOO_FEW", "Too few sections. Expected 4-7.", 25)
	} else if sectionCount > 8 {
		add(SeverityWarn, "SECTIONS_TOO_MANY", "Too many sections. Consider tightening.", 10)
	}

	if totalParagraphs < 8 {
		add(SeverityCritical, "TOO_LITTLE_CONTENT", "Not enough content / paragraphs overall.", 20)
	}

	// Guarded by the schema, but kept as a belt here.
	for i, s := range doc.Sections {
		if len(s.Paragraphs) == 0 {
			add(SeverityCritical, "EMPTY_PARAGRAPHS", fmt.Sprintf("Section %d has no paragraphs.", i+1), 30)
		}
	}

	if utf8.RuneCountInString(strings.TrimSpace(doc.Quick.TLDR)) < 40 {
		add(SeverityWarn, "TLDR_WEAK", "TL;DR is missing or too short.", 8)
	}
	if len(doc.Quick.KeyPoints) < 3 {
		add(SeverityWarn, "KEYPOINTS_FEW", "Quick key points are too few (<3).", 8)
	}
	if len(doc.Quick.WhatWouldChangeOurMind) < 2 {
		add(SeverityWarn, "MINDCHANGE_FEW", "What would change our mind is too few (<2).", 8)
	}

	if len(doc.Learn.Prerequisites) < 3 {
		add(SeverityWarn, "PREREQS_FEW", "Prerequisites are too few (<3).", 6)
	}
	if len(doc.Learn.LearningPath) < 3 {
		add(SeverityWarn, "LEARNINGPATH_FEW", "Learning path is too short (<3).", 6)
	}
	if len(doc.Learn.PracticeQuestions) < 3 {
		add(SeverityWarn, "PRACTICE_FEW", "Practice questions are too few (<3).", 6)
	}

	if sourcesCount < 3 {
		add(SeverityWarn, "SOURCES_FEW", "Too few sources (<3).", 12)
	}
	badURLs := 0
	for _, src := range doc.Sources {
		if !IsHTTPURL(src.URL) {
			badURLs++
		}
	}
	if badURLs > 0 {
		add(SeverityWarn, "SOURCES_BAD_URLS", "Some sources have invalid-looking URLs.", 15)
	}

	if len(doc.KeyTakeaways) < 3 {
		add(SeverityWarn, "TAKEAWAYS_FEW", "Key takeaways are too few (<3).", 6)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	report := QualityReport{
		Score: score,
		Grade: gradeFromScore(score),
		Checks: QualityChecks{
			SectionCount:    sectionCount,
			TotalParagraphs: totalParagraphs,
			SourcesCount:    sourcesCount,
			BadURLs:         badURLs,
		},
		Issues: issues,
	}
	report.Passed = score >= 75 && !report.HasCritical()
	return report
}
