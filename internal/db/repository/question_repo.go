package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/triviahq/trivia-api/internal/trivia"
)

// pgxQuerier is the subset of pgxpool.Pool the repositories need; narrowed so
// tests can substitute a connection or transaction.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const questionColumns = "id, question, answer, category, difficulty"

// QuestionRepository persists question records in Postgres. The category
// column is text (legacy schema); ids are normalized to int exactly here, in
// scanQuestion and the strconv.Itoa calls below, and nowhere else.
type QuestionRepository struct {
	db pgxQuerier
}

var _ trivia.QuestionStore = (*QuestionRepository)(nil)

func NewQuestionRepository(db pgxQuerier) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Insert stores a validated question and returns the assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, req trivia.CreateQuestionRequest) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO questions (question, answer, category, difficulty)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		req.Question, req.Answer, strconv.Itoa(req.Category), req.Difficulty,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return id, nil
}

// Delete removes a question by id; deleting an unknown id reports ErrNotFound.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return trivia.ErrNotFound
	}
	return nil
}

// ListAll returns every question ordered by id ascending.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]trivia.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+questionColumns+` FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return collectQuestions(rows)
}

// SearchBySubstring returns questions whose text contains term, matched
// case-insensitively with no anchoring. term is passed as a parameter, so
// LIKE metacharacters in it are matched literally by ILIKE's pattern rules
// only; no extra escaping is applied.
func (r *QuestionRepository) SearchBySubstring(ctx context.Context, term string) ([]trivia.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE question ILIKE '%' || $1 || '%'
		 ORDER BY id`, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return collectQuestions(rows)
}

// ListByCategory returns questions whose stored category equals the textual
// form of categoryID.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE category = $1
		 ORDER BY id`, strconv.Itoa(categoryID))
	if err != nil {
		return nil, fmt.Errorf("list questions by category: %w", err)
	}
	return collectQuestions(rows)
}

// ListExcluding returns questions whose id is not in excludeIDs, scoped to
// categoryID unless it is the all-categories sentinel.
func (r *QuestionRepository) ListExcluding(ctx context.Context, excludeIDs []int, categoryID int) ([]trivia.Question, error) {
	if excludeIDs == nil {
		excludeIDs = []int{}
	}

	var (
		rows pgx.Rows
		err  error
	)
	if categoryID != trivia.AllCategories {
		rows, err = r.db.Query(ctx,
			`SELECT `+questionColumns+` FROM questions
			 WHERE NOT (id = ANY($1)) AND category = $2
			 ORDER BY id`, excludeIDs, strconv.Itoa(categoryID))
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+questionColumns+` FROM questions
			 WHERE NOT (id = ANY($1))
			 ORDER BY id`, excludeIDs)
	}
	if err != nil {
		return nil, fmt.Errorf("list questions excluding: %w", err)
	}
	return collectQuestions(rows)
}

func collectQuestions(rows pgx.Rows) ([]trivia.Question, error) {
	defer rows.Close()

	var questions []trivia.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan questions: %w", err)
	}
	return questions, nil
}

func scanQuestion(row pgx.Row) (trivia.Question, error) {
	var (
		q        trivia.Question
		category string
	)
	if err := row.Scan(&q.ID, &q.Question, &q.Answer, &category, &q.Difficulty); err != nil {
		return trivia.Question{}, fmt.Errorf("scan question: %w", err)
	}
	id, err := strconv.Atoi(category)
	if err != nil {
		return trivia.Question{}, fmt.Errorf("malformed category %q: %w", category, err)
	}
	q.Category = id
	return q, nil
}
