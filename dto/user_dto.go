package dto

import (
	"github.com/resman-simple/models"
	"github.com/resman-simple/pagination"
)

// CreateUserRequest represents the payload to create a user
type CreateUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Name     *string `json:"name"`
	RoleID   *string `json:"roleId"`
}

// UpdateUserRequest represents a partial user update. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	Email  *string `json:"email" binding:"omitempty,email"`
	Name   *string `json:"name"`
	RoleID *string `json:"roleId"`
}

// UpdateUserStatusRequest represents a status change
type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required"`
}

// UserListResponse represents a paginated user list
type UserListResponse struct {
	Data []models.User   `json:"data"`
	Meta pagination.Meta `json:"meta"`
}
