package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resource identifies a protected resource family
type Resource string

const (
	ResourceUser Resource = "USER"
	ResourceRole Resource = "ROLE"
	ResourceFile Resource = "FILE"
)

// Valid reports whether the resource is one of the known values.
func (r Resource) Valid() bool {
	switch r {
	case ResourceUser, ResourceRole, ResourceFile:
		return true
	}
	return false
}

// Action identifies an operation on a resource
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionRead   Action = "READ"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	// ActionManage grants every action on the resource.
	ActionManage Action = "MANAGE"
)

// Valid reports whether the action is one of the known values.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage:
		return true
	}
	return false
}

// Role represents a named permission bundle
type Role struct {
	ID          string           `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string           `json:"name" gorm:"uniqueIndex;not null"`
	Description string           `json:"description" gorm:"default:null"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Permissions []RolePermission `json:"permissions" gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID so the model works on any database backend.
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// RolePermission represents a single (resource, action) grant owned by a role.
// Grants are only written as part of a role create/update, never standalone.
type RolePermission struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	RoleID    string    `json:"roleId" gorm:"type:uuid;not null;uniqueIndex:idx_role_resource_action"`
	Resource  Resource  `json:"resource" gorm:"type:varchar(20);not null;uniqueIndex:idx_role_resource_action"`
	Action    Action    `json:"action" gorm:"type:varchar(20);not null;uniqueIndex:idx_role_resource_action"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a UUID so the model works on any database backend.
func (p *RolePermission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Allows reports whether this grant covers the required resource and action.
// MANAGE covers every action on its resource.
func (p RolePermission) Allows(resource Resource, action Action) bool {
	if p.Resource != resource {
		return false
	}
	return p.Action == action || p.Action == ActionManage
}
