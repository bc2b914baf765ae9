package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStatus represents the account status of a user
type UserStatus string

const (
	StatusActive    UserStatus = "ACTIVE"
	StatusInactive  UserStatus = "INACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
	StatusPending   UserStatus = "PENDING"
)

// Valid reports whether the status is one of the known values.
func (s UserStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended, StatusPending:
		return true
	}
	return false
}

// User represents a user account in the system.
// Email uniqueness is enforced in the repository layer so the scope of the
// check (live rows only vs. all rows) stays configurable.
type User struct {
	ID        string         `json:"id" gorm:"primaryKey;type:uuid"`
	Email     string         `json:"email" gorm:"not null;index"`
	Name      *string        `json:"name" gorm:"default:null"`
	Password  string         `json:"-" gorm:"not null"` // Password is not exposed in JSON
	Status    UserStatus     `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	RoleID    *string        `json:"roleId" gorm:"type:uuid;default:null;index"`
	Role      *Role          `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a UUID so the model works on any database backend.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}
