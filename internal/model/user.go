package model

import (
	"fmt"
	"time"
)

// Role is a closed set: every authorization decision switches over it.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStaff:
		return RoleStaff, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleStaff:
		return false
	default:
		return false
	}
}

type User struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Role           Role      `db:"role" json:"role"`
	DepartmentID   *int64    `db:"department_id" json:"department_id,omitempty"`
	DepartmentName *string   `db:"department_name" json:"department_name,omitempty"`
	HasAvatar      bool      `db:"has_avatar" json:"has_avatar"`
	SessionEpoch   int64     `db:"session_epoch" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type Department struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserChanges holds the fields of an update; nil means "leave as is".
type UserChanges struct {
	Name       *string
	Email      *string
	Department *string
	Role       *Role
}

func (c UserChanges) Empty() bool {
	return c.Name == nil && c.Email == nil && c.Department == nil && c.Role == nil
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Department string
}

// CreateUserInput is an admin-created account; Role defaults to staff.
type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	Department string
}

// AuthResult is a signed-in user with the session token to hand back as a cookie.
type AuthResult struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}
