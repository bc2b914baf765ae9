package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/resman-simple/apperrors"
	"github.com/resman-simple/models"
	"github.com/resman-simple/pagination"
)

// UserRepository handles database operations for users, including the
// soft-delete lifecycle. Default reads exclude soft-deleted rows; only
// Restore and HardDelete look past that filter.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user into the database
func (r *UserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// FindByID retrieves a live user by ID
func (r *UserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user %s", id)
		}
		return nil, apperrors.Storage(err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by email. includeDeleted widens the lookup to
// soft-deleted rows, which is how the configurable uniqueness scope is
// implemented.
func (r *UserRepository) FindByEmail(email string, includeDeleted bool) (*models.User, error) {
	db := r.db
	if includeDeleted {
		db = db.Unscoped()
	}

	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user with email %s", email)
		}
		return nil, apperrors.Storage(err)
	}
	return &user, nil
}

// List retrieves live users matching the descriptor plus the total count
// under the same predicate.
func (r *UserRepository) List(d pagination.Descriptor) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Scopes(d.FilterScope()).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Storage(err)
	}

	var users []models.User
	if err := r.db.Model(&models.User{}).Scopes(d.Scope()).Find(&users).Error; err != nil {
		return nil, 0, apperrors.Storage(err)
	}

	return users, total, nil
}

// Update persists changes to a user
func (r *UserRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// UpdateStatus overwrites the status of a live user. Any status may move to
// any other status.
func (r *UserRepository) UpdateStatus(id string, status models.UserStatus) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundf("user %s", id)
	}
	return nil
}

// SoftDelete marks a live user as deleted. Calling it on an already deleted
// or nonexistent user fails with not-found rather than silently succeeding.
func (r *UserRepository) SoftDelete(id string) error {
	result := r.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundf("user %s", id)
	}
	return nil
}

// Restore clears the soft-delete marker. Not-found if the user never
// existed, conflict if it exists but was never deleted.
func (r *UserRepository) Restore(id string) error {
	var user models.User
	err := r.db.Unscoped().First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("user %s", id)
		}
		return apperrors.Storage(err)
	}

	if !user.DeletedAt.Valid {
		return apperrors.Conflictf("user %s is not deleted", id)
	}

	err = r.db.Unscoped().Model(&models.User{}).Where("id = ?", id).Update("deleted_at", nil).Error
	if err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// HardDelete permanently removes the row, whether or not it was soft-deleted.
// Irreversible.
func (r *UserRepository) HardDelete(id string) error {
	result := r.db.Unscoped().Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundf("user %s", id)
	}
	return nil
}
