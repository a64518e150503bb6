package article

// Learning path difficulty levels. The validator rejects anything else.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

type Hero struct {
	UnsplashQuery string `json:"unsplashQuery"`
	Alt           string `json:"alt"`
}

type Section struct {
	Heading    string   `json:"heading"`
	Paragraphs []string `json:"paragraphs"`
}

type Source struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Quick struct {
	TLDR                   string   `json:"tldr"`
	KeyPoints              []string `json:"keyPoints"`
	WhatWouldChangeOurMind []string `json:"whatWouldChangeOurMind"`
}

type Prerequisite struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
}

type PathStep struct {
	Level string `json:"level"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type PracticeQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Learn struct {
	Prerequisites     []Prerequisite     `json:"prerequisites"`
	LearningPath      []PathStep         `json:"learningPath"`
	PracticeQuestions []PracticeQuestion `json:"practiceQuestions"`
}

type Meta struct {
	GeneratedAt  string `json:"generatedAt"`
	Model        string `json:"model"`
	Style        string `json:"style"`
	CacheVersion string `json:"cacheVersion"`
}

// Document is the generated article. Immutable once cached; the id inside it
// is always forced to match the requested topic id.
type Document struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Subtitle       string    `json:"subtitle"`
	ReadingMinutes int       `json:"readingMinutes"`
	Hero           Hero      `json:"hero"`
	Sections       []Section `json:"sections"`
	KeyTakeaways   []string  `json:"keyTakeaways"`
	Sources        []Source  `json:"sources"`
	Quick          Quick     `json:"quick"`
	Learn          Learn     `json:"learn"`
	Meta           Meta      `json:"meta"`
}

// EnsureDefaults fills nil slices with empty-but-well-typed values so that
// documents cached under earlier schema versions decode without nil fields
// downstream.
func (d Document) EnsureDefaults() Document {
	if d.Sections == nil {
		d.Sections = []Section{}
	}
	if d.KeyTakeaways == nil {
		d.KeyTakeaways = []string{}
	}
	if d.Sources == nil {
		d.Sources = []Source{}
	}
	if d.Quick.KeyPoints == nil {
		d.Quick.KeyPoints = []string{}
	}
	if d.Quick.WhatWouldChangeOurMind == nil {
		d.Quick.WhatWouldChangeOurMind = []string{}
	}
	if d.Learn.Prerequisites == nil {
		d.Learn.Prerequisites = []Prerequisite{}
	}
	if d.Learn.LearningPath == nil {
		d.Learn.LearningPath = []PathStep{}
	}
	if d.Learn.PracticeQuestions == nil {
		d.Learn.PracticeQuestions = []PracticeQuestion{}
	}
	return d
}

// TotalParagraphs counts paragraphs across all sections.
func (d Document) TotalParagraphs() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Paragraphs)
	}
	return n
}
