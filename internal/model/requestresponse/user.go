package requestresponse

import (
	"time"

	"document-management-server/internal/model"
)

// ErrorResponse : body of every error answer
type ErrorResponse struct {
	Error   string `json:"error" example:"Bad Request"`
	Message string `json:"message" example:"Title is required"`
	Code    int    `json:"code" example:"400"`
}

// MessageResponse : confirmation of an action without a payload
type MessageResponse struct {
	Message string `json:"message" example:"Document deleted successfully"`
}

// UserResponse : public view of an account
type UserResponse struct {
	ID         int64     `json:"id" example:"1"`
	Name       string    `json:"name" example:"Jane Doe"`
	Email      string    `json:"email" example:"jane@example.com"`
	Role       string    `json:"role" example:"staff"`
	Department *string   `json:"department,omitempty" example:"Finance"`
	HasAvatar  bool      `json:"has_avatar" example:"false"`
	CreatedAt  time.Time `json:"created_at" example:"2025-08-23T12:34:56Z"`
	UpdatedAt  time.Time `json:"updated_at" example:"2025-08-23T12:34:56Z"`
}

func UserResponseFromModel(user *model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       string(user.Role),
		Department: user.DepartmentName,
		HasAvatar:  user.HasAvatar,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func UserResponsesFromModel(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, UserResponseFromModel(&users[i]))
	}
	return out
}

// CreateUserRequest : admin-created account
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required,max=255" example:"Sam Roe"`
	Email      string `json:"email" validate:"required,email,max=255" example:"sam@example.com"`
	Password   string `json:"password" validate:"required" example:"Secret123"`
	Role       string `json:"role,omitempty" validate:"omitempty,oneof=admin staff" example:"staff"`
	Department string `json:"department,omitempty" validate:"max=255" example:"Legal"`
}

// UpdateUserRequest : omitted fields are left unchanged
type UpdateUserRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,max=255" example:"Sam Roe"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email,max=255" example:"sam@example.com"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=255" example:"Legal"`
	Role       *string `json:"role,omitempty" validate:"omitempty,oneof=admin staff" example:"admin"`
}

// Changes converts the request; an unknown role is rejected by validation
// before this is called.
func (r UpdateUserRequest) Changes() model.UserChanges {
	changes := model.UserChanges{
		Name:       r.Name,
		Email:      r.Email,
		Department: r.Department,
	}
	if r.Role != nil {
		role := model.Role(*r.Role)
		changes.Role = &role
	}
	return changes
}

type DepartmentRequest struct {
	Name string `json:"name" validate:"required,max=255" example:"Finance"`
}

// UnreadCountResponse : number of unread notifications
type UnreadCountResponse struct {
	Count int `json:"count" example:"3"`
}
