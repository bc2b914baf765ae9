package dto

import (
	"github.com/resman-simple/models"
	"github.com/resman-simple/pagination"
)

// PermissionInput groups the actions requested for one resource. A single
// input with two actions expands into two grants.
type PermissionInput struct {
	Resource models.Resource `json:"resource" binding:"required"`
	Actions  []models.Action `json:"actions" binding:"required,min=1"`
}

// CreateRoleRequest represents the payload to create a role with its grants
type CreateRoleRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Permissions []PermissionInput `json:"permissions"`
}

// UpdateRoleRequest represents a role update. The permission set is a full
// replace, never a merge.
type UpdateRoleRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Permissions []PermissionInput `json:"permissions"`
}

// RoleListResponse represents a paginated role list
type RoleListResponse struct {
	Data []models.Role   `json:"data"`
	Meta pagination.Meta `json:"meta"`
}
