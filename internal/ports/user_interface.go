package ports

import (
	"context"
	"time"

	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
	EmailTaken(ctx context.Context, exec sqlx.ExtContext, email string, excludeID int64) (bool, error)
	List(ctx context.Context, exec sqlx.ExtContext, limit, offset int) ([]model.User, error)
	Update(ctx context.Context, exec sqlx.ExtContext, user *model.User) error
	UpdateRole(ctx context.Context, exec sqlx.ExtContext, id int64, role model.Role) error
	UpdatePassword(ctx context.Context, exec sqlx.ExtContext, id int64, passwordHash string) (int64, error)
	SetProfileImage(ctx context.Context, exec sqlx.ExtContext, id int64, image []byte) error
	ProfileImage(ctx context.Context, exec sqlx.ExtContext, id int64) ([]byte, error)
	ReleaseApprovals(ctx context.Context, exec sqlx.ExtContext, id int64) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
	Role(ctx context.Context, exec sqlx.ExtContext, id int64) (model.Role, error)
}

type DepartmentRepository interface {
	GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string) (int64, error)
	List(ctx context.Context, exec sqlx.ExtContext) ([]model.Department, error)
	Create(ctx context.Context, exec sqlx.ExtContext, name string) (*model.Department, error)
	ExistsFold(ctx context.Context, exec sqlx.ExtContext, name string) (bool, error)
}

type ResetTokenRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, token *model.PasswordResetToken) error
	FindByHash(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.PasswordResetToken, error)
	MarkUsed(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error)
}

// SessionIssuer signs session tokens.
type SessionIssuer interface {
	Create(user *model.User) (string, time.Time, error)
}

// ResetDelivery hands a password reset secret to the user out of band.
type ResetDelivery interface {
	DeliverResetToken(ctx context.Context, user *model.User, secret string, expiresAt time.Time) error
}

type AuthenticationService interface {
	Register(ctx context.Context, input model.RegisterInput) (*model.AuthResult, error)
	Login(ctx context.Context, email, password string) (*model.AuthResult, error)
	CurrentUser(ctx context.Context) (*model.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) (*model.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ValidateResetToken(ctx context.Context, secret string) error
	ResetPassword(ctx context.Context, secret, newPassword string) error
}

type UserService interface {
	List(ctx context.Context, limit, offset int) ([]model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, input model.CreateUserInput) (*model.User, error)
	UpdateProfile(ctx context.Context, changes model.UserChanges) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, changes model.UserChanges) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	SetProfileImage(ctx context.Context, data []byte, mimeType string) error
	ProfileImage(ctx context.Context, id int64) ([]byte, error)
}
