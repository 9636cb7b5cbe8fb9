package repository

import (
	"context"

	"document-management-server/config"
	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type DepartmentRepository struct {
	*config.Database
}

func NewDepartmentRepository(database *config.Database) *DepartmentRepository {
	return &DepartmentRepository{database}
}

// GetOrCreate : the no-op update makes RETURNING yield the existing row on conflict
func (r *DepartmentRepository) GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string) (int64, error) {
	query := `
		INSERT INTO departments (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	var id int64
	if err := sqlx.GetContext(ctx, exec, &id, query, name); err != nil {
		return 0, translate("[DepartmentRepo] get or create department", err)
	}
	return id, nil
}

func (r *DepartmentRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Department, error) {
	departments := []model.Department{}
	if err := sqlx.SelectContext(ctx, exec, &departments, `SELECT id, name, created_at FROM departments ORDER BY name`); err != nil {
		return nil, translate("[DepartmentRepo] list departments", err)
	}
	return departments, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, exec sqlx.ExtContext, name string) (*model.Department, error) {
	var department model.Department
	query := `INSERT INTO departments (name) VALUES ($1) RETURNING id, name, created_at`
	if err := sqlx.GetContext(ctx, exec, &department, query, name); err != nil {
		return nil, translate("[DepartmentRepo] create department", err)
	}
	return &department, nil
}

func (r *DepartmentRepository) ExistsFold(ctx context.Context, exec sqlx.ExtContext, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM departments WHERE LOWER(name) = LOWER($1))`
	if err := sqlx.GetContext(ctx, exec, &exists, query, name); err != nil {
		return false, translate("[DepartmentRepo] check department", err)
	}
	return exists, nil
}
