package repository

import (
	"context"

	"document-management-server/config"
	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type CategoryRepository struct {
	*config.Database
}

func NewCategoryRepository(database *config.Database) *CategoryRepository {
	return &CategoryRepository{database}
}

// GetOrCreate : exact, case-sensitive match on name. Concurrent first use of
// the same name converges on one row through the unique constraint.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string, creatorID int64) (int64, error) {
	query := `
		INSERT INTO categories (name, created_by) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	var id int64
	if err := sqlx.GetContext(ctx, exec, &id, query, name, creatorID); err != nil {
		return 0, translate("[CategoryRepo] get or create category", err)
	}
	return id, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Category, error) {
	query := `
		SELECT c.id, c.name, c.description, c.created_by, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM documents d WHERE d.category_id = c.id) AS document_count
		FROM categories AS c
		WHERE c.id = $1
	`
	var category model.Category
	if err := sqlx.GetContext(ctx, exec, &category, query, id); err != nil {
		return nil, translate("[CategoryRepo] find category", err)
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Category, error) {
	query := `
		SELECT c.id, c.name, c.description, c.created_by, c.created_at, c.updated_at,
		       COUNT(d.id) AS document_count
		FROM categories AS c
		LEFT JOIN documents AS d ON d.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`
	categories := []model.Category{}
	if err := sqlx.SelectContext(ctx, exec, &categories, query); err != nil {
		return nil, translate("[CategoryRepo] list categories", err)
	}
	return categories, nil
}

// ExistsFold : case-insensitive name check, ignoring excludeID
func (r *CategoryRepository) ExistsFold(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1) AND id <> $2)`
	if err := sqlx.GetContext(ctx, exec, &exists, query, name, excludeID); err != nil {
		return false, translate("[CategoryRepo] check category", err)
	}
	return exists, nil
}

func (r *CategoryRepository) Create(ctx context.Context, exec sqlx.ExtContext, category *model.Category) (*model.Category, error) {
	query := `
		INSERT INTO categories (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	created := *category
	err := exec.QueryRowxContext(ctx, query, category.Name, category.Description, category.CreatedBy).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, translate("[CategoryRepo] create category", err)
	}
	return &created, nil
}

func (r *CategoryRepository) Update(ctx context.Context, exec sqlx.ExtContext, category *model.Category) error {
	query := `UPDATE categories SET name = $2, description = $3, updated_at = NOW() WHERE id = $1`
	res, err := exec.ExecContext(ctx, query, category.ID, category.Name, category.Description)
	if err != nil {
		return translate("[CategoryRepo] update category", err)
	}
	return expectRow(res, "[CategoryRepo] update category")
}

func (r *CategoryRepository) CountDocuments(ctx context.Context, exec sqlx.ExtContext, id int64) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, exec, &count, `SELECT COUNT(*) FROM documents WHERE category_id = $1`, id); err != nil {
		return 0, translate("[CategoryRepo] count documents", err)
	}
	return count, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translate("[CategoryRepo] delete category", err)
	}
	return expectRow(res, "[CategoryRepo] delete category")
}
