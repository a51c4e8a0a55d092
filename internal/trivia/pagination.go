package trivia

// DefaultQuestionsPerPage is the fixed page size used when none is configured.
const DefaultQuestionsPerPage = 10

// paginatePage slices one 1-indexed page out of an ordered question sequence.
// Page numbers at or below zero, and pages beyond the available data, yield an
// empty slice; the caller decides what an empty page means. Bounds are never
// clamped.
func paginatePage(items []Question, page, size int) []Question {
	if size <= 0 {
		size = DefaultQuestionsPerPage
	}
	if page <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
