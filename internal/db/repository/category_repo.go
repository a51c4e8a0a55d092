package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/triviahq/trivia-api/internal/trivia"
)

// CategoryRepository reads the category catalog from Postgres.
type CategoryRepository struct {
	db pgxQuerier
}

var _ trivia.CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(db pgxQuerier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListAll returns every category keyed by id.
func (r *CategoryRepository) ListAll(ctx context.Context) (map[int]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id, type FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make(map[int]string)
	for rows.Next() {
		var (
			id    int
			label string
		)
		if err := rows.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories[id] = label
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	return categories, nil
}

// GetByID fetches one category; unknown ids report ErrNotFound.
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (trivia.Category, error) {
	var category trivia.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, type FROM categories WHERE id = $1`, id,
	).Scan(&category.ID, &category.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.Category{}, trivia.ErrNotFound
		}
		return trivia.Category{}, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}
