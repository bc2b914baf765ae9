package services

import (
	"context"
	"mime/multipart"

	"github.com/resman-simple/apperrors"
	"github.com/resman-simple/models"
	"github.com/resman-simple/storage"
)

// FileService handles uploads, lookups and deletes against the object store.
// There is no soft-delete tier for objects; deletion is immediate.
type FileService struct {
	store    storage.ObjectStore
	resolver *storage.Resolver
	maxSize  int64
}

// NewFileService creates a new file service instance
func NewFileService(store storage.ObjectStore, maxSize int64) *FileService {
	return &FileService{
		store:    store,
		resolver: storage.NewResolver(store),
		maxSize:  maxSize,
	}
}

// Upload stores a multipart file under a derived object name. The name is
// never client-chosen, so uploading the same file twice yields two distinct
// objects.
func (s *FileService) Upload(ctx context.Context, header *multipart.FileHeader) (*models.ObjectInfo, error) {
	if header.Size > s.maxSize {
		return nil, apperrors.Validationf("file exceeds maximum size of %d bytes", s.maxSize)
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.Validationf("unreadable upload: %v", err)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := storage.BuildObjectName(header.Filename)

	info, err := s.store.Put(ctx, objectName, file, header.Size, contentType)
	if err != nil {
		return nil, err
	}

	url, err := s.store.AccessURL(ctx, objectName)
	if err != nil {
		return nil, err
	}
	info.URL = url

	return &info, nil
}

// GetFile resolves an identifier (exact name or fragment) to one object.
func (s *FileService) GetFile(ctx context.Context, identifier string) (*models.ObjectInfo, error) {
	info, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, apperrors.NotFoundf("file %s", identifier)
	}
	return info, nil
}

// DeleteFile resolves an identifier and removes the object it names.
func (s *FileService) DeleteFile(ctx context.Context, identifier string) error {
	info, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return err
	}
	if info == nil {
		return apperrors.NotFoundf("file %s", identifier)
	}
	return s.store.Remove(ctx, info.Name)
}

// ListFiles enumerates stored objects, optionally under a prefix.
func (s *FileService) ListFiles(ctx context.Context, prefix string) ([]models.ObjectInfo, error) {
	objects, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	for i := range objects {
		url, err := s.store.AccessURL(ctx, objects[i].Name)
		if err != nil {
			return nil, err
		}
		objects[i].URL = url
	}

	return objects, nil
}
