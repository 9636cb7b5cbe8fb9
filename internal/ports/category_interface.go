package ports

import (
	"context"

	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type CategoryRepository interface {
	GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string, creatorID int64) (int64, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Category, error)
	List(ctx context.Context, exec sqlx.ExtContext) ([]model.Category, error)
	ExistsFold(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, category *model.Category) (*model.Category, error)
	Update(ctx context.Context, exec sqlx.ExtContext, category *model.Category) error
	CountDocuments(ctx context.Context, exec sqlx.ExtContext, id int64) (int, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
}

// CategoryResolver maps a free-text category name to an id, creating it on first use.
type CategoryResolver interface {
	GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string, creatorID int64) (*int64, error)
}

type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, name string, description *string) (*model.Category, error)
	Update(ctx context.Context, id int64, name *string, description *string) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type DepartmentService interface {
	List(ctx context.Context) ([]model.Department, error)
	Create(ctx context.Context, name string) (*model.Department, error)
}
