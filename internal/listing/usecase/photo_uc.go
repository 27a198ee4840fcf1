package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.uber.org/zap"
)

const DefaultMaxImageBytes int64 = 10 << 20

// PhotoUsecase validates and stores listing images. The returned reference is
// then supplied in a listing's Image field.
type PhotoUsecase struct {
	files    domain.FileStorage
	maxBytes int64
	allowed  map[string]bool
	logger   *logger.Logger
}

func NewPhotoUsecase(files domain.FileStorage, maxBytes int64, allowedExtensions []string, log *logger.Logger) *PhotoUsecase {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	allowed := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &PhotoUsecase{files: files, maxBytes: maxBytes, allowed: allowed, logger: log.Named("PhotoUsecase")}
}

func (uc *PhotoUsecase) UploadImage(ctx context.Context, viewer domain.Viewer, fileName, contentType string, data []byte) (string, error) {
	if d := domain.AuthorizeRole(viewer, domain.RoleUser); d != domain.Allow {
		return "", d.Err()
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: file is empty", domain.ErrInvalidInput)
	}
	if int64(len(data)) > uc.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, uc.maxBytes)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if !uc.allowed[ext] {
		return "", fmt.Errorf("%w: file extension %q is not allowed", domain.ErrInvalidInput, ext)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: content type %q is not an image", domain.ErrInvalidInput, contentType)
	}

	ref, err := uc.files.Store(ctx, fileName, contentType, data)
	if err != nil {
		uc.logger.Error("Failed to store image", zap.Error(err), zap.String("file_name", fileName))
		return "", err
	}
	uc.logger.Info("Image stored", zap.String("ref", ref), zap.String("owner_id", viewer.AccountID), zap.Int("size_bytes", len(data)))
	return ref, nil
}
