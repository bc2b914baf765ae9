package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/resman-simple/apperrors"
	"github.com/resman-simple/config"
	"github.com/resman-simple/dto"
	"github.com/resman-simple/models"
	"github.com/resman-simple/pagination"
	"github.com/resman-simple/repositories"
)

// userSearchFields are the columns free-text search matches against.
var userSearchFields = []string{"email", "name"}

// UserService handles business logic for user accounts, including the
// soft-delete lifecycle.
type UserService struct {
	users      *repositories.UserRepository
	roles      *repositories.RoleRepository
	emailScope config.EmailUniqueScope
}

// NewUserService creates a new user service instance
func NewUserService(db *gorm.DB, cfg config.Config) *UserService {
	return &UserService{
		users:      repositories.NewUserRepository(db),
		roles:      repositories.NewRoleRepository(db),
		emailScope: cfg.EmailUniqueScope,
	}
}

// CreateUser registers a new user with a hashed password. The new account
// starts ACTIVE and live.
func (s *UserService) CreateUser(req dto.CreateUserRequest) (*models.User, error) {
	if err := s.checkEmailAvailable(req.Email, ""); err != nil {
		return nil, err
	}

	if req.RoleID != nil {
		if _, err := s.roles.FindByID(*req.RoleID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.Validationf("role %s does not exist", *req.RoleID)
			}
			return nil, err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
		RoleID:   req.RoleID,
		Status:   models.StatusActive,
	}

	if err := s.users.Create(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser retrieves a live user by ID
func (s *UserService) GetUser(id string) (*models.User, error) {
	return s.users.FindByID(id)
}

// GetUserByEmail retrieves a live user by email
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	return s.users.FindByEmail(email, false)
}

// ListUsers retrieves a page of live users with pagination metadata.
func (s *UserService) ListUsers(params pagination.Params, status string) ([]models.User, pagination.Meta, error) {
	filters := make(map[string]any)
	if status != "" {
		if !models.UserStatus(status).Valid() {
			return nil, pagination.Meta{}, apperrors.Validationf("unknown status %q", status)
		}
		filters["status"] = status
	}

	descriptor := pagination.Compose(params, userSearchFields, filters)

	users, total, err := s.users.List(descriptor)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return users, pagination.NewMeta(descriptor.Page, descriptor.Take, total), nil
}

// UpdateUser applies a partial update to a live user.
func (s *UserService) UpdateUser(id string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err := s.checkEmailAvailable(*req.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = req.Name
	}
	if req.RoleID != nil {
		if _, err := s.roles.FindByID(*req.RoleID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.Validationf("role %s does not exist", *req.RoleID)
			}
			return nil, err
		}
		user.RoleID = req.RoleID
	}

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserStatus overwrites the status of a live user.
func (s *UserService) UpdateUserStatus(id string, status models.UserStatus) (*models.User, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("unknown status %q", status)
	}

	if err := s.users.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	return s.users.FindByID(id)
}

// SoftDeleteUser hides a user from default reads. Restorable.
func (s *UserService) SoftDeleteUser(id string) error {
	return s.users.SoftDelete(id)
}

// RestoreUser brings a soft-deleted user back and returns it.
func (s *UserService) RestoreUser(id string) (*models.User, error) {
	if err := s.users.Restore(id); err != nil {
		return nil, err
	}
	return s.users.FindByID(id)
}

// HardDeleteUser permanently removes a user. Irreversible.
func (s *UserService) HardDeleteUser(id string) error {
	return s.users.HardDelete(id)
}

// checkEmailAvailable enforces the configured uniqueness scope. With the
// default "all" scope a soft-deleted user's email still blocks reuse until
// the row is hard-deleted.
func (s *UserService) checkEmailAvailable(email, excludeID string) error {
	includeDeleted := s.emailScope != config.EmailUniqueActive

	existing, err := s.users.FindByEmail(email, includeDeleted)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == excludeID {
		return nil
	}
	return apperrors.Conflictf("email %s is already in use", email)
}
