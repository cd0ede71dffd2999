package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"SampleBlog/internal/model"
	"SampleBlog/internal/repo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImageUpload — прочитанный в память файл из multipart-формы.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
	AltText     string
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ImageService — загрузка, выдача и удаление изображений поста.
type ImageService struct {
	images   repo.ImageRepository
	maxBytes int64
	logger   *zap.SugaredLogger
}

func NewImageService(images repo.ImageRepository, maxSizeMB int, logger *zap.SugaredLogger) *ImageService {
	return &ImageService{
		images:   images,
		maxBytes: int64(maxSizeMB) * 1024 * 1024,
		logger:   logger,
	}
}

// Upload валидирует файл и сохраняет его целиком.
// Порядок проверок: пустой файл, размер, расширение, content type.
func (s *ImageService) Upload(ctx context.Context, postID int64, up ImageUpload) (*model.Image, error) {
	if err := s.validate(up); err != nil {
		return nil, err
	}

	img, err := s.images.Create(ctx, &model.Image{
		PostID:      postID,
		Data:        up.Data,
		ContentType: up.ContentType,
		FileName:    up.FileName,
		AltText:     up.AltText,
		Size:        int64(len(up.Data)),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("image uploaded", "image_id", img.ID, "post_id", postID, "size", img.Size)
	return img, nil
}

func (s *ImageService) validate(up ImageUpload) error {
	if len(up.Data) == 0 {
		return fmt.Errorf("%w: file is required", ErrValidation)
	}
	if int64(len(up.Data)) > s.maxBytes {
		return fmt.Errorf("%w: file size exceeds maximum allowed size of %dMB", ErrValidation, s.maxBytes/1024/1024)
	}
	ext := strings.ToLower(filepath.Ext(up.FileName))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: file extension %q is not allowed", ErrValidation, ext)
	}
	if !allowedContentTypes[strings.ToLower(up.ContentType)] {
		return fmt.Errorf("%w: content type %q is not allowed", ErrValidation, up.ContentType)
	}
	return nil
}

// Get возвращает изображение с данными. Отсутствие — это (nil, nil),
// а не ошибка: единственный читающий путь с таким сигналом.
func (s *ImageService) Get(ctx context.Context, id int64) (*model.Image, error) {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return img, nil
}

// Delete удаляет изображение; на отсутствующий id — ErrImageNotFound.
func (s *ImageService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.images.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrImageNotFound
	}
	s.logger.Infow("image deleted", "image_id", id)
	return nil
}

// GetByPost возвращает изображения поста, старые первыми.
func (s *ImageService) GetByPost(ctx context.Context, postID int64) ([]model.Image, error) {
	return s.images.GetByPostID(ctx, postID)
}

// DeleteAllForPost удаляет все изображения поста одним запросом.
func (s *ImageService) DeleteAllForPost(ctx context.Context, postID int64) (int64, error) {
	n, err := s.images.DeleteByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Infow("post images deleted", "post_id", postID, "count", n)
	}
	return n, nil
}
