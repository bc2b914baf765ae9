package services

import (
	"gorm.io/gorm"

	"github.com/resman-simple/apperrors"
	"github.com/resman-simple/dto"
	"github.com/resman-simple/models"
	"github.com/resman-simple/pagination"
	"github.com/resman-simple/repositories"
)

// roleSearchFields are the columns free-text search matches against.
var roleSearchFields = []string{"name", "description"}

// RoleService handles business logic for roles and permission grants
type RoleService struct {
	roles *repositories.RoleRepository
}

// NewRoleService creates a new role service instance
func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{
		roles: repositories.NewRoleRepository(db),
	}
}

// CreateRole creates a role together with its permission grants.
func (s *RoleService) CreateRole(req dto.CreateRoleRequest) (*models.Role, error) {
	grants, err := expandPermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	role := models.Role{
		Name:        req.Name,
		Description: req.Description,
		Permissions: grants,
	}

	if err := s.roles.Create(&role); err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRole retrieves a role with its grants
func (s *RoleService) GetRole(id string) (*models.Role, error) {
	return s.roles.FindByID(id)
}

// ListRoles retrieves a page of roles with pagination metadata.
func (s *RoleService) ListRoles(params pagination.Params) ([]models.Role, pagination.Meta, error) {
	descriptor := pagination.Compose(params, roleSearchFields, nil)

	roles, total, err := s.roles.List(descriptor)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return roles, pagination.NewMeta(descriptor.Page, descriptor.Take, total), nil
}

// UpdateRole updates role fields and replaces the entire permission set with
// the submitted one.
func (s *RoleService) UpdateRole(id string, req dto.UpdateRoleRequest) (*models.Role, error) {
	grants, err := expandPermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	role := models.Role{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.roles.Update(&role, grants); err != nil {
		return nil, err
	}
	return s.roles.FindByID(id)
}

// DeleteRole removes a role and its grants
func (s *RoleService) DeleteRole(id string) error {
	return s.roles.Delete(id)
}

// expandPermissions flattens {resource, actions[]} inputs into one grant per
// (resource, action) pair, validating enums and dropping duplicates so the
// unique index never trips on repeated input.
func expandPermissions(inputs []dto.PermissionInput) ([]models.RolePermission, error) {
	grants := make([]models.RolePermission, 0)
	seen := make(map[string]bool)

	for _, input := range inputs {
		if !input.Resource.Valid() {
			return nil, apperrors.Validationf("unknown resource %q", input.Resource)
		}
		for _, action := range input.Actions {
			if !action.Valid() {
				return nil, apperrors.Validationf("unknown action %q", action)
			}
			key := string(input.Resource) + "|" + string(action)
			if seen[key] {
				continue
			}
			seen[key] = true
			grants = append(grants, models.RolePermission{
				Resource: input.Resource,
				Action:   action,
			})
		}
	}

	return grants, nil
}
