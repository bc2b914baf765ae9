package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/resman-simple/apperrors"
	"github.com/resman-simple/models"
	"github.com/resman-simple/pagination"
)

// RoleRepository handles database operations for roles and their permission
// grants. Grants are only ever written as part of a role create or update.
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository instance
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create inserts a role together with its permission grants
func (r *RoleRepository) Create(role *models.Role) error {
	var count int64
	if err := r.db.Model(&models.Role{}).Where("name = ?", role.Name).Count(&count).Error; err != nil {
		return apperrors.Storage(err)
	}
	if count > 0 {
		return apperrors.Conflictf("role name %q already exists", role.Name)
	}

	if err := r.db.Create(role).Error; err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

// FindByID retrieves a role with its permission grants
func (r *RoleRepository) FindByID(id string) (*models.Role, error) {
	var role models.Role
	err := r.db.Preload("Permissions").First(&role, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("role %s", id)
		}
		return nil, apperrors.Storage(err)
	}
	return &role, nil
}

// List retrieves roles matching the descriptor plus the total count.
func (r *RoleRepository) List(d pagination.Descriptor) ([]models.Role, int64, error) {
	var total int64
	if err := r.db.Model(&models.Role{}).Scopes(d.FilterScope()).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Storage(err)
	}

	var roles []models.Role
	err := r.db.Model(&models.Role{}).Scopes(d.Scope()).Preload("Permissions").Find(&roles).Error
	if err != nil {
		return nil, 0, apperrors.Storage(err)
	}

	return roles, total, nil
}

// Update persists role fields and replaces the full permission set in one
// transaction. Existing grants are removed and the submitted set recreated;
// there is no diff or merge.
func (r *RoleRepository) Update(role *models.Role, permissions []models.RolePermission) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Role{}).Where("id = ?", role.ID).Updates(map[string]any{
			"name":        role.Name,
			"description": role.Description,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFoundf("role %s", role.ID)
		}

		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}

		for i := range permissions {
			permissions[i].ID = ""
			permissions[i].RoleID = role.ID
		}
		if len(permissions) > 0 {
			if err := tx.Create(&permissions).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.Storage(err)
	}
	return nil
}

// Delete removes a role and cascades to its permission grants
func (r *RoleRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Role{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFoundf("role %s", id)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.Storage(err)
	}
	return nil
}

// GrantsForRole loads the permission grants of a role. Used by the
// permission middleware on every protected request.
func (r *RoleRepository) GrantsForRole(roleID string) ([]models.RolePermission, error) {
	var grants []models.RolePermission
	if err := r.db.Where("role_id = ?", roleID).Find(&grants).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return grants, nil
}
