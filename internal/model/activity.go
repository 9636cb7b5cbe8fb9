package model

import "time"

// Activity action codes.
const (
	ActionUserRegister     = "USER_REGISTER"
	ActionUserLogin        = "USER_LOGIN"
	ActionUserCreate       = "USER_CREATE"
	ActionUserUpdate       = "USER_UPDATE"
	ActionUserDelete       = "USER_DELETE"
	ActionProfileUpdate    = "PROFILE_UPDATE"
	ActionPasswordChange   = "PASSWORD_CHANGE"
	ActionPasswordReset    = "PASSWORD_RESET"
	ActionDocumentUpload   = "DOCUMENT_UPLOAD"
	ActionDocumentUpdate   = "DOCUMENT_UPDATE"
	ActionDocumentDelete   = "DOCUMENT_DELETE"
	ActionDocumentDownload = "DOCUMENT_DOWNLOAD"
	ActionDocumentApprove  = "DOCUMENT_APPROVE"
	ActionDocumentReject   = "DOCUMENT_REJECT"
	ActionCategoryCreate   = "CATEGORY_CREATE"
	ActionCategoryUpdate   = "CATEGORY_UPDATE"
	ActionCategoryDelete   = "CATEGORY_DELETE"
	ActionDepartmentCreate = "DEPARTMENT_CREATE"
)

type ActivityLog struct {
	ID        int64     `db:"id" json:"id"`
	UserID    *int64    `db:"user_id" json:"user_id,omitempty"`
	Action    string    `db:"action" json:"action"`
	Details   string    `db:"details" json:"details"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
