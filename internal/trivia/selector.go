package trivia

import "math/rand/v2"

// Selector picks one question uniformly at random from a candidate set. The
// integer source is injectable so tests can pin the outcome; the default uses
// the shared math/rand/v2 source, which is safe for concurrent use.
type Selector struct {
	intn func(n int) int
}

// NewSelector returns a selector backed by the process-wide random source.
func NewSelector() *Selector {
	return &Selector{intn: rand.IntN}
}

// NewSeededSelector returns a selector with a reproducible sequence. The
// underlying source is not safe for concurrent use; intended for tests.
func NewSeededSelector(seed uint64) *Selector {
	r := rand.New(rand.NewPCG(seed, seed))
	return &Selector{intn: r.IntN}
}

// Pick returns a uniformly chosen candidate, or nil when none remain.
func (s *Selector) Pick(candidates []Question) *Question {
	if len(candidates) == 0 {
		return nil
	}
	q := candidates[s.intn(len(candidates))]
	return &q
}
