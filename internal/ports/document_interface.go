package ports

import (
	"context"

	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
)

// DocumentRepository : SQL layer
type DocumentRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, document *model.Document) (int64, error)
	GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.DocumentDetails, error)
	GetPayload(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.DocumentPayload, error)
	List(ctx context.Context, exec sqlx.ExtContext, filter model.DocumentFilter, approvedOnly bool) ([]model.DocumentDetails, int, error)
	ListPending(ctx context.Context, exec sqlx.ExtContext, limit, offset int) ([]model.DocumentDetails, int, error)
	Update(ctx context.Context, exec sqlx.ExtContext, id int64, update model.DocumentUpdate) error
	SetStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status model.Status, adminID int64) (bool, error)
	IncrementViews(ctx context.Context, exec sqlx.ExtContext, id int64) (int64, error)
	IncrementDownloads(ctx context.Context, exec sqlx.ExtContext, id int64) (int64, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.DocumentPayload, error)
}

// PermissionRepository resolves a document's uploader against a user's role in one lookup.
type PermissionRepository interface {
	Resolve(ctx context.Context, exec sqlx.ExtContext, documentID, userID int64) (uploadedBy int64, role model.Role, err error)
}

// ListCache : Redis layer for document listings
type ListCache interface {
	GetPage(ctx context.Context, key string) (*model.DocumentPage, error)
	SetPage(ctx context.Context, key string, page *model.DocumentPage) error
	Invalidate(ctx context.Context) error
}

// BlobStorage keeps document payloads outside the database.
type BlobStorage interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	DeleteObject(ctx context.Context, key string) error
}

type FileValidator interface {
	Validate(file model.UploadedFile) error
}

type PermissionResolver interface {
	CheckDocumentPermission(ctx context.Context, documentID, userID int64) (*model.DocumentPermission, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

type DocumentService interface {
	Upload(ctx context.Context, input model.UploadDocumentInput) (*model.DocumentDetails, error)
	List(ctx context.Context, filter model.DocumentFilter) (*model.DocumentPage, error)
	ListPending(ctx context.Context, limit, offset int) (*model.DocumentPage, error)
	Get(ctx context.Context, id int64) (*model.DocumentDetails, error)
	Update(ctx context.Context, id int64, changes model.DocumentChanges) (*model.DocumentDetails, error)
	Delete(ctx context.Context, id int64) error
	Download(ctx context.Context, id int64, disposition model.Disposition) (*model.DownloadResult, error)
	Approve(ctx context.Context, id int64) (*model.DocumentDetails, error)
	Reject(ctx context.Context, id int64) (*model.DocumentDetails, error)
}
