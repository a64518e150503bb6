package article

import "testing"

func TestEvaluateQuality_PerfectDocumentScores100(t *testing.T) {
	report := EvaluateQuality(validDocument())
	if report.Score != 100 {
		t.Fatalf("expected score 100, got %d (issues: %+v)", report.Score, report.Issues)
	}
	if report.Grade != "A" || !report.Passed {
		t.Fatalf("expected grade A passed, got %s passed=%v", report.Grade, report.Passed)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", report.Issues)
	}
}

func TestEvaluateQuality_PenaltyTable(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*Document)
		code     string
		severity string
		penalty  int
	}{
		{"few sections", func(d *Document) {
			d.Sections = d.Sections[:3]
			// Keep total paragraphs >=8 so only the section-count penalty fires.
			d.Sections[0].Paragraphs = append(d.Sections[0].Paragraphs, "extra", "extra")
		}, "SECTIONS_TOO_FEW", SeverityCritical, 25},
		{"many sections", func(d *Document) {
			for len(d.Sections) <= 8 {
				d.Sections = append(d.Sections, Section{Heading: "More", Paragraphs: []string{"p", "p"}})
			}
		}, "SECTIONS_TOO_MANY", SeverityWarn, 10},
		{"weak tldr", func(d *Document) { d.Quick.TLDR = "too short" }, "TLDR_WEAK", SeverityWarn, 8},
		{"few key points", func(d *Document) { d.Quick.KeyPoints = d.Quick.KeyPoints[:2] }, "KEYPOINTS_FEW", SeverityWarn, 8},
		{"few mind changers", func(d *Document) { d.Quick.WhatWouldChangeOurMind = nil }, "MINDCHANGE_FEW", SeverityWarn, 8},
		{"few prerequisites", func(d *Document) { d.Learn.Prerequisites = d.Learn.Prerequisites[:1] }, "PREREQS_FEW", SeverityWarn, 6},
		{"short learning path", func(d *Document) { d.Learn.LearningPath = d.Learn.LearningPath[:2] }, "LEARNINGPATH_FEW", SeverityWarn, 6},
		{"few practice questions", func(d *Document) { d.Learn.PracticeQuestions = nil }, "PRACTICE_FEW", SeverityWarn, 6},
		{"few sources", func(d *Document) { d.Sources = d.Sources[:2] }, "SOURCES_FEW", SeverityWarn, 12},
		{"bad source url", func(d *Document) { d.Sources[0].URL = "garbage" }, "SOURCES_BAD_URLS", SeverityWarn, 15},
		{"few takeaways", func(d *Document) { d.KeyTakeaways = d.KeyTakeaways[:2] }, "TAKEAWAYS_FEW", SeverityWarn, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDocument()
			tc.mutate(&doc)
			report := EvaluateQuality(doc)
			if report.Score != 100-tc.penalty {
				t.Fatalf("expected score %d, got %d (issues: %+v)", 100-tc.penalty, report.Score, report.Issues)
			}
			found := false
			for _, i := range report.Issues {
				if i.Code == tc.code {
					found = true
					if i.Severity != tc.severity {
						t.Fatalf("expected severity %s for %s, got %s", tc.severity, tc.code, i.Severity)
					}
				}
			}
			if !found {
				t.Fatalf("expected issue %s, got %+v", tc.code, report.Issues)
			}
		})
	}
}

func TestEvaluateQuality_FewSectionsAlsoThinsContent(t *testing.T) {
	doc := validDocument()
	doc.Sections = doc.Sections[:2] // 4 paragraphs total
	report := EvaluateQuality(doc)
	// Both SECTIONS_TOO_FEW (-25) and TOO_LITTLE_CONTENT (-20) accumulate.
	if report.Score != 55 {
		t.Fatalf("expected score 55, got %d (issues: %+v)", report.Score, report.Issues)
	}
	if report.Passed {
		t.Fatalf("critical issues must fail the document")
	}
	if report.Grade != "F" {
		t.Fatalf("expected grade F, got %s", report.Grade)
	}
}

func TestEvaluateQuality_EmptySectionPenaltyPerSection(t *testing.T) {
	doc := validDocument()
	doc.Sections[0].Paragraphs = nil
	doc.Sections[1].Paragraphs = nil
	report := EvaluateQuality(doc)
	// -30 twice for the empty sections, -20 for thin content (6 paragraphs).
	if report.Score != 100-30-30-20 {
		t.Fatalf("expected score 20, got %d (issues: %+v)", report.Score, report.Issues)
	}
}

func TestEvaluateQuality_ScoreClampedToZero(t *testing.T) {
	doc := validDocument()
	for i := range doc.Sections {
		doc.Sections[i].Paragraphs = nil
	}
	doc.Sources = nil
	doc.KeyTakeaways = nil
	doc.Quick = Quick{}
	doc.Learn = Learn{}
	report := EvaluateQuality(doc)
	if report.Score != 0 {
		t.Fatalf("expected clamped score 0, got %d", report.Score)
	}
	if report.Grade != "F" || report.Passed {
		t.Fatalf("expected failing F grade, got %s passed=%v", report.Grade, report.Passed)
	}
}

func TestEvaluateQuality_GradeThresholds(t *testing.T) {
	cases := []struct {
		score int
		grade string
	}{
		{100, "A"}, {90, "A"}, {89, "B"}, {80, "B"}, {79, "C"}, {70, "C"}, {69, "D"}, {60, "D"}, {59, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		if g := gradeFromScore(tc.score); g != tc.grade {
			t.Fatalf("score %d: expected grade %s, got %s", tc.score, tc.grade, g)
		}
	}
}

func TestEvaluateQuality_PassRequiresScoreAndNoCritical(t *testing.T) {
	// Warn-only deductions totalling >25 drop below 75 without any critical.
	doc := validDocument()
	doc.Sources = doc.Sources[:2]        // -12
	doc.Sources[0].URL = "garbage"       // -15
	doc.KeyTakeaways = nil               // -6
	report := EvaluateQuality(doc)
	if report.HasCritical() {
		t.Fatalf("expected warn-only issues, got %+v", report.Issues)
	}
	if report.Score != 67 || report.Passed {
		t.Fatalf("expected score 67 and passed=false, got %d passed=%v", report.Score, report.Passed)
	}
}

func TestEvaluateQuality_RemovingContentNeverRaisesScore(t *testing.T) {
	full := validDocument()
	fullScore := EvaluateQuality(full).Score

	reduced := validDocument()
	reduced.Sections = reduced.Sections[:2]
	reduced.Sources = reduced.Sources[:1]
	reduced.Learn.PracticeQuestions = nil
	reducedScore := EvaluateQuality(reduced).Score

	if reducedScore > fullScore {
		t.Fatalf("removing content raised score: %d > %d", reducedScore, fullScore)
	}
}

func TestEvaluateQuality_IsDeterministic(t *testing.T) {
	doc := validDocument()
	doc.Sources[0].URL = "garbage"
	a := EvaluateQuality(doc)
	b := EvaluateQuality(doc)
	if a.Score != b.Score || len(a.Issues) != len(b.Issues) || a.Grade != b.Grade {
		t.Fatalf("evaluation must be deterministic: %+v vs %+v", a, b)
	}
}
