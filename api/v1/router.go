package v1

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/resman-simple/config"
	"github.com/resman-simple/middleware"
	"github.com/resman-simple/models"
	"github.com/resman-simple/repositories"
	"github.com/resman-simple/services"
	"github.com/resman-simple/storage"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, db *gorm.DB, store storage.ObjectStore, cfg config.Config) {
	authService := services.NewAuthService(db, cfg)
	userController := NewUserController(services.NewUserService(db, cfg))
	roleController := NewRoleController(services.NewRoleService(db))
	fileController := NewFileController(services.NewFileService(store, cfg.MaxUploadSize))
	authController := NewAuthController(authService)

	roleRepo := repositories.NewRoleRepository(db)
	requireAuth := middleware.AuthMiddleware(authService)
	require := func(resource models.Resource, action models.Action) gin.HandlerFunc {
		return middleware.RequirePermission(roleRepo, resource, action)
	}

	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Auth endpoints
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/logout", authController.Logout)
		authGroup.GET("/me", requireAuth, authController.GetCurrentUser)
	}

	// User endpoints - protected by auth and permission middleware
	userGroup := router.Group("/users")
	userGroup.Use(requireAuth)
	{
		userGroup.GET("", require(models.ResourceUser, models.ActionRead), userController.ListUsers)
		userGroup.POST("", require(models.ResourceUser, models.ActionCreate), userController.CreateUser)
		userGroup.GET("/:id", require(models.ResourceUser, models.ActionRead), userController.GetUser)
		userGroup.PATCH("/:id", require(models.ResourceUser, models.ActionUpdate), userController.UpdateUser)
		userGroup.PATCH("/:id/status", require(models.ResourceUser, models.ActionUpdate), userController.UpdateUserStatus)
		userGroup.PATCH("/:id/restore", require(models.ResourceUser, models.ActionUpdate), userController.RestoreUser)
		userGroup.DELETE("/:id", require(models.ResourceUser, models.ActionDelete), userController.SoftDeleteUser)
		userGroup.DELETE("/:id/force", require(models.ResourceUser, models.ActionDelete), userController.HardDeleteUser)
	}

	// Role endpoints
	roleGroup := router.Group("/roles")
	roleGroup.Use(requireAuth)
	{
		roleGroup.GET("", require(models.ResourceRole, models.ActionRead), roleController.ListRoles)
		roleGroup.POST("", require(models.ResourceRole, models.ActionCreate), roleController.CreateRole)
		roleGroup.GET("/:id", require(models.ResourceRole, models.ActionRead), roleController.GetRole)
		roleGroup.PATCH("/:id", require(models.ResourceRole, models.ActionUpdate), roleController.UpdateRole)
		roleGroup.DELETE("/:id", require(models.ResourceRole, models.ActionDelete), roleController.DeleteRole)
	}

	// File endpoints
	fileGroup := router.Group("/files")
	fileGroup.Use(requireAuth)
	{
		fileGroup.GET("", require(models.ResourceFile, models.ActionRead), fileController.ListFiles)
		fileGroup.POST("/upload", require(models.ResourceFile, models.ActionCreate), fileController.UploadFile)
		fileGroup.GET("/:identifier", require(models.ResourceFile, models.ActionRead), fileController.GetFile)
		fileGroup.DELETE("/:identifier", require(models.ResourceFile, models.ActionDelete), fileController.DeleteFile)
	}
}
