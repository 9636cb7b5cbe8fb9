// Package portsmock holds testify mocks for the ports interfaces.
package portsmock

import (
	"context"
	"time"

	"document-management-server/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type ActivityRepository struct{ mock.Mock }

func (m *ActivityRepository) Append(ctx context.Context, exec sqlx.ExtContext, entry *model.ActivityLog) error {
	return m.Called(ctx, exec, entry).Error(0)
}

func (m *ActivityRepository) RecentByUser(ctx context.Context, exec sqlx.ExtContext, userID int64, limit int) ([]model.ActivityLog, error) {
	args := m.Called(ctx, exec, userID, limit)
	var r0 []model.ActivityLog
	if v := args.Get(0); v != nil {
		r0 = v.([]model.ActivityLog)
	}
	return r0, args.Error(1)
}

type ActivityRecorder struct{ mock.Mock }

func (m *ActivityRecorder) Record(ctx context.Context, userID int64, action string, details string) {
	m.Called(ctx, userID, action, details)
}

type ActivityService struct{ mock.Mock }

func (m *ActivityService) Record(ctx context.Context, userID int64, action string, details string) {
	m.Called(ctx, userID, action, details)
}

func (m *ActivityService) Recent(ctx context.Context, userID int64, limit int) ([]model.ActivityLog, error) {
	args := m.Called(ctx, userID, limit)
	var r0 []model.ActivityLog
	if v := args.Get(0); v != nil {
		r0 = v.([]model.ActivityLog)
	}
	return r0, args.Error(1)
}

type NotificationRepository struct{ mock.Mock }

func (m *NotificationRepository) Create(ctx context.Context, exec sqlx.ExtContext, notification *model.Notification) error {
	return m.Called(ctx, exec, notification).Error(0)
}

func (m *NotificationRepository) ListByUser(ctx context.Context, exec sqlx.ExtContext, userID int64, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, exec, userID, limit)
	var r0 []model.Notification
	if v := args.Get(0); v != nil {
		r0 = v.([]model.Notification)
	}
	return r0, args.Error(1)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, exec sqlx.ExtContext, userID int64) (int, error) {
	args := m.Called(ctx, exec, userID)
	return args.Get(0).(int), args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, exec sqlx.ExtContext, id int64, userID int64) (bool, error) {
	args := m.Called(ctx, exec, id, userID)
	return args.Get(0).(bool), args.Error(1)
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, exec sqlx.ExtContext, userID int64) (int64, error) {
	args := m.Called(ctx, exec, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64, userID int64) (bool, error) {
	args := m.Called(ctx, exec, id, userID)
	return args.Get(0).(bool), args.Error(1)
}

type Notifier struct{ mock.Mock }

func (m *Notifier) Notify(ctx context.Context, userID int64, title string, message string, kind string, link *string) {
	m.Called(ctx, userID, title, message, kind, link)
}

type NotificationService struct{ mock.Mock }

func (m *NotificationService) Notify(ctx context.Context, userID int64, title string, message string, kind string, link *string) {
	m.Called(ctx, userID, title, message, kind, link)
}

func (m *NotificationService) List(ctx context.Context, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, limit)
	var r0 []model.Notification
	if v := args.Get(0); v != nil {
		r0 = v.([]model.Notification)
	}
	return r0, args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Get(0).(int), args.Error(1)
}

func (m *NotificationService) MarkRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *NotificationService) MarkAllRead(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *NotificationService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type CategoryRepository struct{ mock.Mock }

func (m *CategoryRepository) GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string, creatorID int64) (int64, error) {
	args := m.Called(ctx, exec, name, creatorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CategoryRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.Category, error) {
	args := m.Called(ctx, exec, id)
	var r0 *model.Category
	if v := args.Get(0); v != nil {
		r0 = v.(*model.Category)
	}
	return r0, args.Error(1)
}

func (m *CategoryRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Category, error) {
	args := m.Called(ctx, exec)
	var r0 []model.Category
	if v := args.Get(0); v != nil {
		r0 = v.([]model.Category)
	}
	return r0, args.Error(1)
}

func (m *CategoryRepository) ExistsFold(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, exec, name, excludeID)
	return args.Get(0).(bool), args.Error(1)
}

func (m *CategoryRepository) Create(ctx context.Context, exec sqlx.ExtContext, category *model.Category) (*model.Category, error) {
	args := m.Called(ctx, exec, category)
	var r0 *model.Category
	if v := args.Get(0); v != nil {
		r0 = v.(*model.Category)
	}
	return r0, args.Error(1)
}

func (m *CategoryRepository) Update(ctx context.Context, exec sqlx.ExtContext, category *model.Category) error {
	return m.Called(ctx, exec, category).Error(0)
}

func (m *CategoryRepository) CountDocuments(ctx context.Context, exec sqlx.ExtContext, id int64) (int, error) {
	args := m.Called(ctx, exec, id)
	return args.Get(0).(int), args.Error(1)
}

func (m *CategoryRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	return m.Called(ctx, exec, id).Error(0)
}

type CategoryResolver struct{ mock.Mock }

func (m *CategoryResolver) GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string, creatorID int64) (*int64, error) {
	args := m.Called(ctx, exec, name, creatorID)
	var r0 *int64
	if v := args.Get(0); v != nil {
		r0 = v.(*int64)
	}
	return r0, args.Error(1)
}

type CategoryService struct{ mock.Mock }

func (m *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	var r0 []model.Category
	if v := args.Get(0); v != nil {
		r0 = v.([]model.Category)
	}
	return r0, args.Error(1)
}

func (m *CategoryService) Create(ctx context.Context, name string, description *string) (*model.Category, error) {
	args := m.Called(ctx, name, description)
	var r0 *model.Category
	if v := args.Get(0); v != nil {
		r0 = v.(*model.Category)
	}
	return r0, args.Error(1)
}

func (m *CategoryService) Update(ctx context.Context, id int64, name *string, description *string) (*model.Category, error) {
	args := m.Called(ctx, id, name, description)
	var r0 *model.Category
	if v := args.Get(0); v != nil {
		r0 = v.(*model.Category)
	}
	return r0, args.Error(1)
}

func (m *CategoryService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type DepartmentService struct{ mock.Mock }

func (m *DepartmentService) List(ctx context.Context) ([]model.Department, error) {
	args := m.Called(ctx)
	var r0 []model.Department
	if v := args.Get(0); v != nil {
		r0 = v.([]model.Department)
	}
	return r0, args.Error(1)
}

func (m *DepartmentService) Create(ctx context.Context, name string) (*model.Department, error) {
	args := m.Called(ctx, name)
	var r0 *model.Department
	if v := args.Get(0); v != nil {
		r0 = v.(*model.Department)
	}
	return r0, args.Error(1)
}

type DocumentRepository struct{ mock.Mock }

func (m *DocumentRepository) Create(ctx context.Context, exec sqlx.ExtContext, document *model.Document) (int64, error) {
	args := m.Called(ctx, exec, document)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DocumentRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.DocumentDetails, error) {
	args := m.Called(ctx, exec, id)
	var r0 *model.DocumentDetails
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentDetails)
	}
	return r0, args.Error(1)
}

func (m *DocumentRepository) GetPayload(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.DocumentPayload, error) {
	args := m.Called(ctx, exec, id)
	var r0 *model.DocumentPayload
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentPayload)
	}
	return r0, args.Error(1)
}

func (m *DocumentRepository) List(ctx context.Context, exec sqlx.ExtContext, filter model.DocumentFilter, approvedOnly bool) ([]model.DocumentDetails, int, error) {
	args := m.Called(ctx, exec, filter, approvedOnly)
	var r0 []model.DocumentDetails
	if v := args.Get(0); v != nil {
		r0 = v.([]model.DocumentDetails)
	}
	return r0, args.Get(1).(int), args.Error(2)
}

func (m *DocumentRepository) ListPending(ctx context.Context, exec sqlx.ExtContext, limit int, offset int) ([]model.DocumentDetails, int, error) {
	args := m.Called(ctx, exec, limit, offset)
	var r0 []model.DocumentDetails
	if v := args.Get(0); v != nil {
		r0 = v.([]model.DocumentDetails)
	}
	return r0, args.Get(1).(int), args.Error(2)
}

func (m *DocumentRepository) Update(ctx context.Context, exec sqlx.ExtContext, id int64, update model.DocumentUpdate) error {
	return m.Called(ctx, exec, id, update).Error(0)
}

func (m *DocumentRepository) SetStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status model.Status, adminID int64) (bool, error) {
	args := m.Called(ctx, exec, id, status, adminID)
	return args.Get(0).(bool), args.Error(1)
}

func (m *DocumentRepository) IncrementViews(ctx context.Context, exec sqlx.ExtContext, id int64) (int64, error) {
	args := m.Called(ctx, exec, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DocumentRepository) IncrementDownloads(ctx context.Context, exec sqlx.ExtContext, id int64) (int64, error) {
	args := m.Called(ctx, exec, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DocumentRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.DocumentPayload, error) {
	args := m.Called(ctx, exec, id)
	var r0 *model.DocumentPayload
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentPayload)
	}
	return r0, args.Error(1)
}

type PermissionRepository struct{ mock.Mock }

func (m *PermissionRepository) Resolve(ctx context.Context, exec sqlx.ExtContext, documentID int64, userID int64) (int64, model.Role, error) {
	args := m.Called(ctx, exec, documentID, userID)
	return args.Get(0).(int64), args.Get(1).(model.Role), args.Error(2)
}

type ListCache struct{ mock.Mock }

func (m *ListCache) GetPage(ctx context.Context, key string) (*model.DocumentPage, error) {
	args := m.Called(ctx, key)
	var r0 *model.DocumentPage
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentPage)
	}
	return r0, args.Error(1)
}

func (m *ListCache) SetPage(ctx context.Context, key string, page *model.DocumentPage) error {
	return m.Called(ctx, key, page).Error(0)
}

func (m *ListCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type BlobStorage struct{ mock.Mock }

func (m *BlobStorage) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *BlobStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	var r0 []byte
	if v := args.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, args.Error(1)
}

func (m *BlobStorage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type FileValidator struct{ mock.Mock }

func (m *FileValidator) Validate(file model.UploadedFile) error {
	return m.Called(file).Error(0)
}

type PermissionResolver struct{ mock.Mock }

func (m *PermissionResolver) CheckDocumentPermission(ctx context.Context, documentID int64, userID int64) (*model.DocumentPermission, error) {
	args := m.Called(ctx, documentID, userID)
	var r0 *model.DocumentPermission
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentPermission)
	}
	return r0, args.Error(1)
}

func (m *PermissionResolver) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(bool), args.Error(1)
}

type DocumentService struct{ mock.Mock }

func (m *DocumentService) Upload(ctx context.Context, input model.UploadDocumentInput) (*model.DocumentDetails, error) {
	args := m.Called(ctx, input)
	var r0 *model.DocumentDetails
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentDetails)
	}
	return r0, args.Error(1)
}

func (m *DocumentService) List(ctx context.Context, filter model.DocumentFilter) (*model.DocumentPage, error) {
	args := m.Called(ctx, filter)
	var r0 *model.DocumentPage
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentPage)
	}
	return r0, args.Error(1)
}

func (m *DocumentService) ListPending(ctx context.Context, limit int, offset int) (*model.DocumentPage, error) {
	args := m.Called(ctx, limit, offset)
	var r0 *model.DocumentPage
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentPage)
	}
	return r0, args.Error(1)
}

func (m *DocumentService) Get(ctx context.Context, id int64) (*model.DocumentDetails, error) {
	args := m.Called(ctx, id)
	var r0 *model.DocumentDetails
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentDetails)
	}
	return r0, args.Error(1)
}

func (m *DocumentService) Update(ctx context.Context, id int64, changes model.DocumentChanges) (*model.DocumentDetails, error) {
	args := m.Called(ctx, id, changes)
	var r0 *model.DocumentDetails
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentDetails)
	}
	return r0, args.Error(1)
}

func (m *DocumentService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *DocumentService) Download(ctx context.Context, id int64, disposition model.Disposition) (*model.DownloadResult, error) {
	args := m.Called(ctx, id, disposition)
	var r0 *model.DownloadResult
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DownloadResult)
	}
	return r0, args.Error(1)
}

func (m *DocumentService) Approve(ctx context.Context, id int64) (*model.DocumentDetails, error) {
	args := m.Called(ctx, id)
	var r0 *model.DocumentDetails
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentDetails)
	}
	return r0, args.Error(1)
}

func (m *DocumentService) Reject(ctx context.Context, id int64) (*model.DocumentDetails, error) {
	args := m.Called(ctx, id)
	var r0 *model.DocumentDetails
	if v := args.Get(0); v != nil {
		r0 = v.(*model.DocumentDetails)
	}
	return r0, args.Error(1)
}

type Transactor struct{ mock.Mock }

func (m *Transactor) DB() sqlx.ExtContext {
	args := m.Called()
	var r0 sqlx.ExtContext
	if v := args.Get(0); v != nil {
		r0 = v.(sqlx.ExtContext)
	}
	return r0
}

func (m *Transactor) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	args := m.Called(ctx)
	var r0 sqlx.ExtContext
	if v := args.Get(0); v != nil {
		r0 = v.(sqlx.ExtContext)
	}
	var r1 func() error
	if v := args.Get(1); v != nil {
		r1 = v.(func() error)
	}
	var r2 func() error
	if v := args.Get(2); v != nil {
		r2 = v.(func() error)
	}
	return r0, r1, r2, args.Error(3)
}

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	args := m.Called(ctx, exec, user)
	var r0 *model.User
	if v := args.Get(0); v != nil {
		r0 = v.(*model.User)
	}
	return r0, args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*model.User, error) {
	args := m.Called(ctx, exec, id)
	var r0 *model.User
	if v := args.Get(0); v != nil {
		r0 = v.(*model.User)
	}
	return r0, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error) {
	args := m.Called(ctx, exec, email)
	var r0 *model.User
	if v := args.Get(0); v != nil {
		r0 = v.(*model.User)
	}
	return r0, args.Error(1)
}

func (m *UserRepository) EmailTaken(ctx context.Context, exec sqlx.ExtContext, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, exec, email, excludeID)
	return args.Get(0).(bool), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, exec sqlx.ExtContext, limit int, offset int) ([]model.User, error) {
	args := m.Called(ctx, exec, limit, offset)
	var r0 []model.User
	if v := args.Get(0); v != nil {
		r0 = v.([]model.User)
	}
	return r0, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, exec sqlx.ExtContext, user *model.User) error {
	return m.Called(ctx, exec, user).Error(0)
}

func (m *UserRepository) UpdateRole(ctx context.Context, exec sqlx.ExtContext, id int64, role model.Role) error {
	return m.Called(ctx, exec, id, role).Error(0)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, exec sqlx.ExtContext, id int64, passwordHash string) (int64, error) {
	args := m.Called(ctx, exec, id, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) SetProfileImage(ctx context.Context, exec sqlx.ExtContext, id int64, image []byte) error {
	return m.Called(ctx, exec, id, image).Error(0)
}

func (m *UserRepository) ProfileImage(ctx context.Context, exec sqlx.ExtContext, id int64) ([]byte, error) {
	args := m.Called(ctx, exec, id)
	var r0 []byte
	if v := args.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, args.Error(1)
}

func (m *UserRepository) ReleaseApprovals(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	return m.Called(ctx, exec, id).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	return m.Called(ctx, exec, id).Error(0)
}

func (m *UserRepository) Role(ctx context.Context, exec sqlx.ExtContext, id int64) (model.Role, error) {
	args := m.Called(ctx, exec, id)
	return args.Get(0).(model.Role), args.Error(1)
}

type DepartmentRepository struct{ mock.Mock }

func (m *DepartmentRepository) GetOrCreate(ctx context.Context, exec sqlx.ExtContext, name string) (int64, error) {
	args := m.Called(ctx, exec, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DepartmentRepository) List(ctx context.Context, exec sqlx.ExtContext) ([]model.Department, error) {
	args := m.Called(ctx, exec)
	var r0 []model.Department
	if v := args.Get(0); v != nil {
		r0 = v.([]model.Department)
	}
	return r0, args.Error(1)
}

func (m *DepartmentRepository) Create(ctx context.Context, exec sqlx.ExtContext, name string) (*model.Department, error) {
	args := m.Called(ctx, exec, name)
	var r0 *model.Department
	if v := args.Get(0); v != nil {
		r0 = v.(*model.Department)
	}
	return r0, args.Error(1)
}

func (m *DepartmentRepository) ExistsFold(ctx context.Context, exec sqlx.ExtContext, name string) (bool, error) {
	args := m.Called(ctx, exec, name)
	return args.Get(0).(bool), args.Error(1)
}

type ResetTokenRepository struct{ mock.Mock }

func (m *ResetTokenRepository) Create(ctx context.Context, exec sqlx.ExtContext, token *model.PasswordResetToken) error {
	return m.Called(ctx, exec, token).Error(0)
}

func (m *ResetTokenRepository) FindByHash(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.PasswordResetToken, error) {
	args := m.Called(ctx, exec, tokenHash)
	var r0 *model.PasswordResetToken
	if v := args.Get(0); v != nil {
		r0 = v.(*model.PasswordResetToken)
	}
	return r0, args.Error(1)
}

func (m *ResetTokenRepository) MarkUsed(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error) {
	args := m.Called(ctx, exec, id)
	return args.Get(0).(bool), args.Error(1)
}

type SessionIssuer struct{ mock.Mock }

func (m *SessionIssuer) Create(user *model.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.Get(0).(string), args.Get(1).(time.Time), args.Error(2)
}

type ResetDelivery struct{ mock.Mock }

func (m *ResetDelivery) DeliverResetToken(ctx context.Context, user *model.User, secret string, expiresAt time.Time) error {
	return m.Called(ctx, user, secret, expiresAt).Error(0)
}

type AuthenticationService struct{ mock.Mock }

func (m *AuthenticationService) Register(ctx context.Context, input model.RegisterInput) (*model.AuthResult, error) {
	args := m.Called(ctx, input)
	var r0 *model.AuthResult
	if v := args.Get(0); v != nil {
		r0 = v.(*model.AuthResult)
	}
	return r0, args.Error(1)
}

func (m *AuthenticationService) Login(ctx context.Context, email string, password string) (*model.AuthResult, error) {
	args := m.Called(ctx, email, password)
	var r0 *model.AuthResult
	if v := args.Get(0); v != nil {
		r0 = v.(*model.AuthResult)
	}
	return r0, args.Error(1)
}

func (m *AuthenticationService) CurrentUser(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	var r0 *model.User
	if v := args.Get(0); v != nil {
		r0 = v.(*model.User)
	}
	return r0, args.Error(1)
}

func (m *AuthenticationService) ChangePassword(ctx context.Context, currentPassword string, newPassword string) (*model.AuthResult, error) {
	args := m.Called(ctx, currentPassword, newPassword)
	var r0 *model.AuthResult
	if v := args.Get(0); v != nil {
		r0 = v.(*model.AuthResult)
	}
	return r0, args.Error(1)
}

func (m *AuthenticationService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *AuthenticationService) ValidateResetToken(ctx context.Context, secret string) error {
	return m.Called(ctx, secret).Error(0)
}

func (m *AuthenticationService) ResetPassword(ctx context.Context, secret string, newPassword string) error {
	return m.Called(ctx, secret, newPassword).Error(0)
}

type UserService struct{ mock.Mock }

func (m *UserService) List(ctx context.Context, limit int, offset int) ([]model.User, error) {
	args := m.Called(ctx, limit, offset)
	var r0 []model.User
	if v := args.Get(0); v != nil {
		r0 = v.([]model.User)
	}
	return r0, args.Error(1)
}

func (m *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	var r0 *model.User
	if v := args.Get(0); v != nil {
		r0 = v.(*model.User)
	}
	return r0, args.Error(1)
}

func (m *UserService) Create(ctx context.Context, input model.CreateUserInput) (*model.User, error) {
	args := m.Called(ctx, input)
	var r0 *model.User
	if v := args.Get(0); v != nil {
		r0 = v.(*model.User)
	}
	return r0, args.Error(1)
}

func (m *UserService) UpdateProfile(ctx context.Context, changes model.UserChanges) (*model.User, error) {
	args := m.Called(ctx, changes)
	var r0 *model.User
	if v := args.Get(0); v != nil {
		r0 = v.(*model.User)
	}
	return r0, args.Error(1)
}

func (m *UserService) UpdateUser(ctx context.Context, id int64, changes model.UserChanges) (*model.User, error) {
	args := m.Called(ctx, id, changes)
	var r0 *model.User
	if v := args.Get(0); v != nil {
		r0 = v.(*model.User)
	}
	return r0, args.Error(1)
}

func (m *UserService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserService) SetProfileImage(ctx context.Context, data []byte, mimeType string) error {
	return m.Called(ctx, data, mimeType).Error(0)
}

func (m *UserService) ProfileImage(ctx context.Context, id int64) ([]byte, error) {
	args := m.Called(ctx, id)
	var r0 []byte
	if v := args.Get(0); v != nil {
		r0 = v.([]byte)
	}
	return r0, args.Error(1)
}
