package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resman-simple/dto"
	"github.com/resman-simple/pagination"
	"github.com/resman-simple/services"
)

// RoleController handles role resource endpoints
type RoleController struct {
	roleService *services.RoleService
}

// NewRoleController creates a new role controller
func NewRoleController(roleService *services.RoleService) *RoleController {
	return &RoleController{roleService: roleService}
}

// ListRoles godoc
// @Summary List roles with pagination, search and sorting
// @Tags roles
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param q query string false "Search term for name/description"
// @Param sortBy query string false "Field to sort by"
// @Param sortOrder query string false "Sort order (asc or desc)"
// @Success 200 {object} dto.RoleListResponse
// @Router /roles [get]
func (ctl *RoleController) ListRoles(c *gin.Context) {
	params := pagination.ParseQuery(c)

	roles, meta, err := ctl.roleService.ListRoles(params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": dto.RoleListResponse{
			Data: roles,
			Meta: meta,
		},
	})
}

// CreateRole godoc
// @Summary Create a role with its permission grants
// @Tags roles
// @Accept json
// @Produce json
// @Param body body dto.CreateRoleRequest true "Role data"
// @Success 201 {object} models.Role
// @Router /roles [post]
func (ctl *RoleController) CreateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	role, err := ctl.roleService.CreateRole(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   role,
	})
}

// GetRole godoc
// @Summary Get a role by ID
// @Tags roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} models.Role
// @Router /roles/{id} [get]
func (ctl *RoleController) GetRole(c *gin.Context) {
	role, err := ctl.roleService.GetRole(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   role,
	})
}

// UpdateRole godoc
// @Summary Update a role
// @Description The submitted permission set fully replaces the existing one
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param body body dto.UpdateRoleRequest true "Role data"
// @Success 200 {object} models.Role
// @Router /roles/{id} [patch]
func (ctl *RoleController) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	role, err := ctl.roleService.UpdateRole(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   role,
	})
}

// DeleteRole godoc
// @Summary Delete a role and its grants
// @Tags roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} map[string]interface{}
// @Router /roles/{id} [delete]
func (ctl *RoleController) DeleteRole(c *gin.Context) {
	if err := ctl.roleService.DeleteRole(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Role deleted successfully",
	})
}
