package storage

import (
	"context"
	"mime/multipart"
)

// StorageService stores and serves listing photos.
type StorageService interface {
	UploadPhoto(ctx context.Context, file multipart.File, folder string) (publicID string, url string, err error)
	DeletePhoto(ctx context.Context, publicID string) error
}
