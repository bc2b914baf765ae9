package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resman-simple/dto"
	"github.com/resman-simple/pagination"
	"github.com/resman-simple/services"
)

// UserController handles user resource endpoints
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers godoc
// @Summary List users with pagination, search and sorting
// @Description Soft-deleted users are never included
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param q query string false "Search term for email/name"
// @Param sortBy query string false "Field to sort by"
// @Param sortOrder query string false "Sort order (asc or desc)"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.UserListResponse
// @Router /users [get]
func (ctl *UserController) ListUsers(c *gin.Context) {
	params := pagination.ParseQuery(c)
	filters := pagination.AllowedFilters(c.Request.URL.Query(), "status")

	status := ""
	if v, ok := filters["status"].(string); ok {
		status = v
	}

	users, meta, err := ctl.userService.ListUsers(params, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": dto.UserListResponse{
			Data: users,
			Meta: meta,
		},
	})
}

// CreateUser godoc
// @Summary Create a new user
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.CreateUserRequest true "User data"
// @Success 201 {object} models.User
// @Router /users [post]
func (ctl *UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	user, err := ctl.userService.CreateUser(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   user,
	})
}

// GetUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Router /users/{id} [get]
func (ctl *UserController) GetUser(c *gin.Context) {
	user, err := ctl.userService.GetUser(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   user,
	})
}

// UpdateUser godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.User
// @Router /users/{id} [patch]
func (ctl *UserController) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	user, err := ctl.userService.UpdateUser(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   user,
	})
}

// UpdateUserStatus godoc
// @Summary Overwrite a user's status
// @Description Any status may move to any other status
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body dto.UpdateUserStatusRequest true "New status"
// @Success 200 {object} models.User
// @Router /users/{id}/status [patch]
func (ctl *UserController) UpdateUserStatus(c *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	user, err := ctl.userService.UpdateUserStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   user,
	})
}

// SoftDeleteUser godoc
// @Summary Soft-delete a user
// @Description The user disappears from default reads but can be restored
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id} [delete]
func (ctl *UserController) SoftDeleteUser(c *gin.Context) {
	if err := ctl.userService.SoftDeleteUser(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User deleted successfully",
	})
}

// RestoreUser godoc
// @Summary Restore a soft-deleted user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Router /users/{id}/restore [patch]
func (ctl *UserController) RestoreUser(c *gin.Context) {
	user, err := ctl.userService.RestoreUser(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   user,
	})
}

// HardDeleteUser godoc
// @Summary Permanently delete a user
// @Description Removes the row regardless of soft-delete state. Irreversible.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/force [delete]
func (ctl *UserController) HardDeleteUser(c *gin.Context) {
	if err := ctl.userService.HardDeleteUser(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User permanently deleted",
	})
}
