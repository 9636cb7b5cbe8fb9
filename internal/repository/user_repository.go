package repository

import (
	"context"
	"strings"

	"document-management-server/config"
	"document-management-server/internal/common"
	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
)

const userColumns = `
	u.id, u.name, u.email, u.password_hash, u.role, u.department_id,
	dep.name AS department_name, (u.profile_image IS NOT NULL) AS has_avatar,
	u.session_epoch, u.created_at, u.updated_at
	FROM users AS u
	LEFT JOIN departments AS dep ON dep.id = u.department_id`

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// Create : stores a new user and returns it with generated fields
func (r *UserRepository) Create(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, role, department_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	created := *user
	err := exec.QueryRowxContext(ctx, query, user.Name, strings.ToLower(user.Email), user.PasswordHash, user.Role, user.DepartmentID).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, translate("[UserRepo] insert user", err)
	}
	created.Email = strings.ToLower(user.Email)
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.User, error) {
	var user model.User
	if err := sqlx.GetContext(ctx, exec, &user, `SELECT `+userColumns+` WHERE u.id = $1`, id); err != nil {
		return nil, translate("[UserRepo] find user by id", err)
	}
	return &user, nil
}

// FindByEmail : emails are stored lower-cased
func (r *UserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, `SELECT `+userColumns+` WHERE u.email = $1`, strings.ToLower(email))
	if err != nil {
		return nil, translate("[UserRepo] find user by email", err)
	}
	return &user, nil
}

func (r *UserRepository) EmailTaken(ctx context.Context, exec sqlx.ExtContext, email string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	if err := sqlx.GetContext(ctx, exec, &exists, query, strings.ToLower(email), excludeID); err != nil {
		return false, translate("[UserRepo] check email", err)
	}
	return exists, nil
}

func (r *UserRepository) List(ctx context.Context, exec sqlx.ExtContext, limit, offset int) ([]model.User, error) {
	users := []model.User{}
	query := `SELECT ` + userColumns + ` ORDER BY u.created_at DESC, u.id DESC LIMIT $1 OFFSET $2`
	if err := sqlx.SelectContext(ctx, exec, &users, query, limit, offset); err != nil {
		return nil, translate("[UserRepo] list users", err)
	}
	return users, nil
}

// Update : writes name, email and department
func (r *UserRepository) Update(ctx context.Context, exec sqlx.ExtContext, user *model.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, department_id = $4, updated_at = NOW()
		WHERE id = $1
	`
	res, err := exec.ExecContext(ctx, query, user.ID, user.Name, strings.ToLower(user.Email), user.DepartmentID)
	if err != nil {
		return translate("[UserRepo] update user", err)
	}
	return expectRow(res, "[UserRepo] update user")
}

// UpdateRole : a role change revokes every session of the user
func (r *UserRepository) UpdateRole(ctx context.Context, exec sqlx.ExtContext, id int64, role model.Role) error {
	query := `
		UPDATE users
		SET role = $2, session_epoch = session_epoch + 1, updated_at = NOW()
		WHERE id = $1 AND role <> $2
	`
	if _, err := exec.ExecContext(ctx, query, id, role); err != nil {
		return translate("[UserRepo] update role", err)
	}
	return nil
}

// UpdatePassword : stores the new hash and bumps the session epoch, returning the new epoch
func (r *UserRepository) UpdatePassword(ctx context.Context, exec sqlx.ExtContext, id int64, passwordHash string) (int64, error) {
	query := `
		UPDATE users
		SET password_hash = $2, session_epoch = session_epoch + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING session_epoch
	`
	var epoch int64
	if err := sqlx.GetContext(ctx, exec, &epoch, query, id, passwordHash); err != nil {
		return 0, translate("[UserRepo] update password", err)
	}
	return epoch, nil
}

func (r *UserRepository) SetProfileImage(ctx context.Context, exec sqlx.ExtContext, id int64, image []byte) error {
	res, err := exec.ExecContext(ctx, `UPDATE users SET profile_image = $2, updated_at = NOW() WHERE id = $1`, id, image)
	if err != nil {
		return translate("[UserRepo] set profile image", err)
	}
	return expectRow(res, "[UserRepo] set profile image")
}

func (r *UserRepository) ProfileImage(ctx context.Context, exec sqlx.ExtContext, id int64) ([]byte, error) {
	var image []byte
	if err := sqlx.GetContext(ctx, exec, &image, `SELECT profile_image FROM users WHERE id = $1`, id); err != nil {
		return nil, translate("[UserRepo] get profile image", err)
	}
	if len(image) == 0 {
		return nil, common.ErrNotFound
	}
	return image, nil
}

// ReleaseApprovals : clears approver and approval date together on documents
// the user reviewed, ahead of deleting the user
func (r *UserRepository) ReleaseApprovals(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	query := `UPDATE documents SET approved_by = NULL, approval_date = NULL WHERE approved_by = $1`
	if _, err := exec.ExecContext(ctx, query, id); err != nil {
		return translate("[UserRepo] release approvals", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate("[UserRepo] delete user", err)
	}
	return expectRow(res, "[UserRepo] delete user")
}

func (r *UserRepository) Role(ctx context.Context, exec sqlx.ExtContext, id int64) (model.Role, error) {
	var role string
	if err := sqlx.GetContext(ctx, exec, &role, `SELECT role FROM users WHERE id = $1`, id); err != nil {
		return "", translate("[UserRepo] get role", err)
	}
	parsed, err := model.ParseRole(role)
	if err != nil {
		return "", translate("[UserRepo] get role", err)
	}
	return parsed, nil
}
