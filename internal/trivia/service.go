package trivia

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// QuestionStore is the persistence contract for question records.
type QuestionStore interface {
	Insert(ctx context.Context, req CreateQuestionRequest) (int, error)
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context) ([]Question, error)
	SearchBySubstring(ctx context.Context, term string) ([]Question, error)
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)
	// ListExcluding returns questions whose id is not in excludeIDs,
	// restricted to categoryID unless it is AllCategories.
	ListExcluding(ctx context.Context, excludeIDs []int, categoryID int) ([]Question, error)
}

// CategoryStore is the persistence contract for the category catalog.
type CategoryStore interface {
	ListAll(ctx context.Context) (map[int]string, error)
	GetByID(ctx context.Context, id int) (Category, error)
}

// CategoryCache caches the full category map. Get returns (nil, nil) on a
// miss; errors degrade to the store and never fail a request.
type CategoryCache interface {
	Get(ctx context.Context) (map[int]string, error)
	Set(ctx context.Context, categories map[int]string) error
}

// AllCategories is the sentinel category id meaning "no category restriction".
const AllCategories = 0

// Service implements the question store and quiz selection operations over
// pluggable stores.
type Service struct {
	questions  QuestionStore
	categories CategoryStore
	cache      CategoryCache
	selector   *Selector
	pageSize   int
	logger     zerolog.Logger
}

// ServiceOptions tunes per-instance behavior.
type ServiceOptions struct {
	// QuestionsPerPage overrides the page size; defaults to DefaultQuestionsPerPage.
	QuestionsPerPage int
	// Selector overrides the random selector; defaults to the shared source.
	Selector *Selector
}

// NewService builds the core service. cache may be nil, in which case every
// category read hits the store.
func NewService(questions QuestionStore, categories CategoryStore, cache CategoryCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	pageSize := opts.QuestionsPerPage
	if pageSize <= 0 {
		pageSize = DefaultQuestionsPerPage
	}
	selector := opts.Selector
	if selector == nil {
		selector = NewSelector()
	}
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
		selector:   selector,
		pageSize:   pageSize,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}

// ListCategories returns the id-to-label map for every category, served from
// cache when warm.
func (s *Service) ListCategories(ctx context.Context) (map[int]string, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// ListQuestions returns one page of the full listing, ordered by id. A page
// beyond the stored data (or at/below zero) is a not-found outcome, never an
// empty success.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	all, err := s.questions.ListAll(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}

	paginated := paginatePage(all, page, s.pageSize)
	if len(paginated) == 0 {
		return QuestionPage{}, fmt.Errorf("page %d: %w", page, ErrNotFound)
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:      paginated,
		TotalQuestions: len(all),
		Categories:     categories,
	}, nil
}

// SearchQuestions returns every question whose text contains term,
// case-insensitively and unanchored. Zero matches is a not-found outcome.
func (s *Service) SearchQuestions(ctx context.Context, term string) (SearchResult, error) {
	matches, err := s.questions.SearchBySubstring(ctx, term)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search questions: %w", err)
	}
	if len(matches) == 0 {
		return SearchResult{}, fmt.Errorf("search %q: %w", term, ErrNotFound)
	}
	return SearchResult{Questions: matches, TotalQuestions: len(matches)}, nil
}

// ListByCategory returns all questions in one category. An unknown category id
// is a not-found outcome; a known category with no questions is an empty success.
func (s *Service) ListByCategory(ctx context.Context, categoryID int) (CategoryQuestions, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("category %d: %w", categoryID, err)
	}

	questions, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("list by category: %w", err)
	}

	return CategoryQuestions{
		Questions:       questions,
		TotalQuestions:  len(questions),
		CurrentCategory: category.Type,
	}, nil
}

// CreateQuestion validates and stores a new question, returning its assigned
// id. Category existence is deliberately not checked against the catalog.
func (s *Service) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (int, error) {
	if req.Question == "" || req.Answer == "" || req.Category == 0 || req.Difficulty == 0 {
		return 0, fmt.Errorf("create question: %w", ErrValidation)
	}

	id, err := s.questions.Insert(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}

	s.logger.Debug().Int("id", id).Int("category", req.Category).Msg("question created")
	return id, nil
}

// DeleteQuestion removes the question with the given id; unknown ids are a
// not-found outcome.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	s.logger.Debug().Int("id", id).Msg("question deleted")
	return nil
}

// NextQuizQuestion picks one unplayed question uniformly at random, optionally
// scoped to a category (AllCategories means no restriction). A nil question
// with a nil error means the quiz is exhausted; that is a normal terminal
// outcome, not a failure.
func (s *Service) NextQuizQuestion(ctx context.Context, previousIDs []int, categoryID int) (*Question, error) {
	candidates, err := s.questions.ListExcluding(ctx, previousIDs, categoryID)
	if err != nil {
		return nil, fmt.Errorf("quiz candidates: %w", err)
	}
	return s.selector.Pick(candidates), nil
}
