package dto

import "github.com/resman-simple/models"

// FileListResponse represents a bucket listing
type FileListResponse struct {
	Data []models.ObjectInfo `json:"data"`
}
