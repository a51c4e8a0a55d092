package trivia

import "errors"

// Sentinel errors raised by the core; the HTTP boundary maps them onto the
// fixed response envelope via errors.Is.
var (
	// ErrNotFound covers unknown ids, unknown categories, pages beyond the
	// data, and searches with zero matches.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation marks a creation request missing one of its required fields.
	ErrValidation = errors.New("missing required field")
)

// Question is a stored trivia record. The id is assigned on insert and
// immutable afterwards. Category holds the id of the owning category; the
// database keeps it in textual form, the repository normalizes to int.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category is a topic label. Admin-seeded, read-mostly.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CreateQuestionRequest carries the four required creation fields. Zero values
// count as missing.
type CreateQuestionRequest struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionPage is one page of the full question listing.
type QuestionPage struct {
	Questions      []Question
	TotalQuestions int
	Categories     map[int]string
}

// SearchResult holds the questions matching a search term.
type SearchResult struct {
	Questions      []Question
	TotalQuestions int
}

// CategoryQuestions holds all questions scoped to one category.
type CategoryQuestions struct {
	Questions       []Question
	TotalQuestions  int
	CurrentCategory string
}
