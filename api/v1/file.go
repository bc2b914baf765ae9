package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resman-simple/dto"
	"github.com/resman-simple/services"
)

// FileController handles file resource endpoints
type FileController struct {
	fileService *services.FileService
}

// NewFileController creates a new file controller
func NewFileController(fileService *services.FileService) *FileController {
	return &FileController{fileService: fileService}
}

// UploadFile godoc
// @Summary Upload a file
// @Description Stores the file under a server-derived object name
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} models.ObjectInfo
// @Router /files/upload [post]
func (ctl *FileController) UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Missing file in request: " + err.Error(),
		})
		return
	}

	info, err := ctl.fileService.Upload(c.Request.Context(), header)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   info,
	})
}

// GetFile godoc
// @Summary Get file metadata and access URL
// @Description The identifier may be the exact object name or a fragment of it (for example the embedded UUID)
// @Tags files
// @Produce json
// @Param identifier path string true "Object name or fragment"
// @Success 200 {object} models.ObjectInfo
// @Router /files/{identifier} [get]
func (ctl *FileController) GetFile(c *gin.Context) {
	info, err := ctl.fileService.GetFile(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   info,
	})
}

// ListFiles godoc
// @Summary List stored files
// @Tags files
// @Produce json
// @Param prefix query string false "Object name prefix"
// @Success 200 {object} dto.FileListResponse
// @Router /files [get]
func (ctl *FileController) ListFiles(c *gin.Context) {
	objects, err := ctl.fileService.ListFiles(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   dto.FileListResponse{Data: objects},
	})
}

// DeleteFile godoc
// @Summary Delete a file
// @Description Deletion is immediate and irreversible; there is no soft-delete tier for objects
// @Tags files
// @Produce json
// @Param identifier path string true "Object name or fragment"
// @Success 200 {object} map[string]interface{}
// @Router /files/{identifier} [delete]
func (ctl *FileController) DeleteFile(c *gin.Context) {
	if err := ctl.fileService.DeleteFile(c.Request.Context(), c.Param("identifier")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "File deleted successfully",
	})
}
