package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/resman-simple/database"
	"github.com/resman-simple/models"
	"github.com/resman-simple/repositories"
)

func TestAllowed(t *testing.T) {
	grants := []models.RolePermission{
		{Resource: models.ResourceUser, Action: models.ActionRead},
		{Resource: models.ResourceFile, Action: models.ActionManage},
	}

	tests := []struct {
		name     string
		resource models.Resource
		action   models.Action
		want     bool
	}{
		{"exact grant", models.ResourceUser, models.ActionRead, true},
		{"missing action", models.ResourceUser, models.ActionDelete, false},
		{"missing resource", models.ResourceRole, models.ActionRead, false},
		{"manage covers read", models.ResourceFile, models.ActionRead, true},
		{"manage covers delete", models.ResourceFile, models.ActionDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(grants, tt.resource, tt.action))
		})
	}
}

func TestAllowedWithNoGrants(t *testing.T) {
	assert.False(t, Allowed(nil, models.ResourceUser, models.ActionRead))
}

func setupPermissionRouter(t *testing.T, roleID string, resource models.Resource, action models.Action) (*gin.Engine, *repositories.RoleRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	repo := repositories.NewRoleRepository(db)

	router := gin.New()
	router.GET("/protected",
		func(c *gin.Context) {
			if roleID != "" {
				c.Set("roleId", roleID)
			}
		},
		RequirePermission(repo, resource, action),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "success"})
		},
	)

	return router, repo
}

func TestRequirePermissionGrantsMatchingRole(t *testing.T) {
	roleID := uuid.NewString()
	router, repo := setupPermissionRouter(t, roleID, models.ResourceUser, models.ActionRead)

	require.NoError(t, repo.Create(&models.Role{
		ID:   roleID,
		Name: "viewer",
		Permissions: []models.RolePermission{
			{Resource: models.ResourceUser, Action: models.ActionRead},
		},
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionDeniesInsufficientGrants(t *testing.T) {
	roleID := uuid.NewString()
	router, repo := setupPermissionRouter(t, roleID, models.ResourceUser, models.ActionDelete)

	require.NoError(t, repo.Create(&models.Role{
		ID:   roleID,
		Name: "viewer",
		Permissions: []models.RolePermission{
			{Resource: models.ResourceUser, Action: models.ActionRead},
		},
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermissionDeniesCallerWithoutRole(t *testing.T) {
	router, _ := setupPermissionRouter(t, "", models.ResourceUser, models.ActionRead)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
