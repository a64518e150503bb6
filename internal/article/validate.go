package article

import (
	"fmt"
	"net/url"
)

const maxReadingMinutes = 120

// Validate enforces the strict schema on a candidate Document. It is the last
// line of defense before a document reaches the cache and readers: after it
// returns nil, no downstream consumer sees an empty required field. The first
// violated constraint is reported as a *ValidationError.
func Validate(doc Document) error {
	if doc.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if doc.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if doc.ReadingMinutes < 1 || doc.ReadingMinutes > maxReadingMinutes {
		return &ValidationError{
			Field:  "readingMinutes",
			Reason: fmt.Sprintf("must be in [1,%d], got %d", maxReadingMinutes, doc.ReadingMinutes),
		}
	}
	if len(doc.Sections) == 0 {
		return &ValidationError{Field: "sections", Reason: "must not be empty"}
	}
	for i, s := range doc.Sections {
		if s.Heading == "" {
			return &ValidationError{
				Field:  fmt.Sprintf("sections[%d].heading", i),
				Reason: "must not be empty",
			}
		}
		if len(s.Paragraphs) == 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("sections[%d].paragraphs", i),
				Reason: "must contain at least one paragraph",
			}
		}
		for j, p := range s.Paragraphs {
			if p == "" {
				return &ValidationError{
					Field:  fmt.Sprintf("sections[%d].paragraphs[%d]", i, j),
					Reason: "must not be empty",
				}
			}
		}
	}
	for i, src := range doc.Sources {
		if src.Label == "" {
			return &ValidationError{
				Field:  fmt.Sprintf("sources[%d].label", i),
				Reason: "must not be empty",
			}
		}
		if !IsHTTPURL(src.URL) {
			return &ValidationError{
				Field:  fmt.Sprintf("sources[%d].url", i),
				Reason: fmt.Sprintf("not a valid http(s) URL: %q", src.URL),
			}
		}
	}
	for i, step := range doc.Learn.LearningPath {
		switch step.Level {
		case LevelBeginner, LevelIntermediate, LevelAdvanced:
		default:
			return &ValidationError{
				Field:  fmt.Sprintf("learn.learningPath[%d].level", i),
				Reason: fmt.Sprintf("must be one of Beginner/Intermediate/Advanced, got %q", step.Level),
			}
		}
	}
	return nil
}

// IsHTTPURL reports whether s parses as an absolute http or https URL.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
