package repository

import (
	"context"
	"database/sql"

	"document-management-server/config"
	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type PermissionRepository struct {
	*config.Database
}

func NewPermissionRepository(database *config.Database) *PermissionRepository {
	return &PermissionRepository{database}
}

// Resolve : the document's uploader and the requesting user's role in one
// lookup. An unknown user resolves to staff; a missing document is ErrNotFound.
func (r *PermissionRepository) Resolve(ctx context.Context, exec sqlx.ExtContext, documentID, userID int64) (int64, model.Role, error) {
	query := `
		SELECT d.uploaded_by, u.role
		FROM documents AS d
		LEFT JOIN users AS u ON u.id = $2
		WHERE d.id = $1
	`
	var row struct {
		UploadedBy int64          `db:"uploaded_by"`
		Role       sql.NullString `db:"role"`
	}
	if err := sqlx.GetContext(ctx, exec, &row, query, documentID, userID); err != nil {
		return 0, "", translate("[PermissionRepo] resolve document permission", err)
	}

	role := model.RoleStaff
	if row.Role.Valid {
		parsed, err := model.ParseRole(row.Role.String)
		if err != nil {
			return 0, "", translate("[PermissionRepo] resolve document permission", err)
		}
		role = parsed
	}
	return row.UploadedBy, role, nil
}
