package repo

import (
	"context"

	"SampleBlog/internal/model"

	"gorm.io/gorm"
)

// ImageRepository определяет контракт доступа к Image для слоя сервиса.
type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) (*model.Image, error)

	// GetByID возвращает gorm.ErrRecordNotFound, если изображения нет.
	GetByID(ctx context.Context, id int64) (*model.Image, error)

	// Delete возвращает false, если изображения не было.
	Delete(ctx context.Context, id int64) (bool, error)

	// GetByPostID возвращает изображения поста по возрастанию created_at:
	// первое — «главное» изображение поста.
	GetByPostID(ctx context.Context, postID int64) ([]model.Image, error)

	// DeleteByPostID удаляет все изображения поста одним запросом.
	// Возвращает число удалённых строк.
	DeleteByPostID(ctx context.Context, postID int64) (int64, error)
}

type imageRepo struct {
	db *gorm.DB
}

// NewImageRepository создаёт реализацию репозитория для Image.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) Create(ctx context.Context, image *model.Image) (*model.Image, error) {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

func (r *imageRepo) GetByID(ctx context.Context, id int64) (*model.Image, error) {
	var img model.Image
	if err := r.db.WithContext(ctx).First(&img, id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *imageRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&model.Image{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *imageRepo) GetByPostID(ctx context.Context, postID int64) ([]model.Image, error) {
	var images []model.Image
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&images).Error
	return images, err
}

func (r *imageRepo) DeleteByPostID(ctx context.Context, postID int64) (int64, error) {
	tx := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.Image{})
	return tx.RowsAffected, tx.Error
}
