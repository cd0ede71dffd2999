package repo

import (
	"context"
	"strings"

	"SampleBlog/internal/model"

	"gorm.io/gorm"
)

// PostRepository определяет контракт доступа к Post для слоя сервиса.
// Правила публикации (что и когда менять в PublishedAt) живут в сервисе,
// репозиторий только читает и сохраняет строки.
type PostRepository interface {
	// GetByID возвращает пост с автором и изображениями.
	// При includeUnpublished=false черновик считается отсутствующим.
	// Возвращает gorm.ErrRecordNotFound, если поста нет.
	GetByID(ctx context.Context, id int64, includeUnpublished bool) (*model.Post, error)

	// GetAll — все посты, порядок created_at DESC (административный срез).
	GetAll(ctx context.Context, page, pageSize int, isPublished *bool) ([]model.Post, error)
	CountAll(ctx context.Context, isPublished *bool) (int64, error)

	// GetPublished — опубликованные посты, порядок
	// COALESCE(published_at, created_at) DESC.
	GetPublished(ctx context.Context, page, pageSize int) ([]model.Post, error)

	// GetByAuthor — посты автора, порядок COALESCE(published_at, created_at) DESC.
	GetByAuthor(ctx context.Context, authorID int64, page, pageSize int, isPublished *bool) ([]model.Post, error)
	CountByAuthor(ctx context.Context, authorID int64, isPublished *bool) (int64, error)

	// GetRecent — последние count опубликованных постов.
	GetRecent(ctx context.Context, count int) ([]model.Post, error)

	// Search — регистронезависимый поиск подстроки по title/subtitle/text
	// среди опубликованных постов.
	Search(ctx context.Context, query string, page, pageSize int) ([]model.Post, error)
	CountSearch(ctx context.Context, query string) (int64, error)

	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) (*model.Post, error)

	// Delete удаляет пост вместе с изображениями (каскад на уровне БД).
	// Возвращает false, если поста не было.
	Delete(ctx context.Context, id int64) (bool, error)
}

type postRepo struct {
	db *gorm.DB
}

// NewPostRepository создаёт реализацию репозитория для Post.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

// withRelations подгружает автора и изображения поста.
// Изображения упорядочены по created_at ASC: первое — «главное».
func (r *postRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("images.created_at ASC, images.id ASC")
		})
}

func (r *postRepo) GetByID(ctx context.Context, id int64, includeUnpublished bool) (*model.Post, error) {
	q := r.withRelations(ctx)
	if !includeUnpublished {
		q = q.Where("is_published = ?", true)
	}
	var p model.Post
	if err := q.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepo) GetAll(ctx context.Context, page, pageSize int, isPublished *bool) ([]model.Post, error) {
	q := r.withRelations(ctx)
	if isPublished != nil {
		q = q.Where("is_published = ?", *isPublished)
	}
	var posts []model.Post
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	return posts, err
}

func (r *postRepo) CountAll(ctx context.Context, isPublished *bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{})
	if isPublished != nil {
		q = q.Where("is_published = ?", *isPublished)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *postRepo) GetPublished(ctx context.Context, page, pageSize int) ([]model.Post, error) {
	var posts []model.Post
	err := r.withRelations(ctx).
		Where("is_published = ?", true).
		Order("COALESCE(published_at, created_at) DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	return posts, err
}

func (r *postRepo) GetByAuthor(ctx context.Context, authorID int64, page, pageSize int, isPublished *bool) ([]model.Post, error) {
	q := r.withRelations(ctx).Where("author_id = ?", authorID)
	if isPublished != nil {
		q = q.Where("is_published = ?", *isPublished)
	}
	var posts []model.Post
	err := q.Order("COALESCE(published_at, created_at) DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	return posts, err
}

func (r *postRepo) CountByAuthor(ctx context.Context, authorID int64, isPublished *bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID)
	if isPublished != nil {
		q = q.Where("is_published = ?", *isPublished)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *postRepo) GetRecent(ctx context.Context, count int) ([]model.Post, error) {
	var posts []model.Post
	err := r.withRelations(ctx).
		Where("is_published = ?", true).
		Order("COALESCE(published_at, created_at) DESC").
		Limit(count).
		Find(&posts).Error
	return posts, err
}

// searchPattern приводит запрос к шаблону LIKE в нижнем регистре.
func searchPattern(query string) string {
	return "%" + strings.ToLower(query) + "%"
}

const searchCondition = "is_published = ? AND (LOWER(title) LIKE ? OR LOWER(subtitle) LIKE ? OR LOWER(text) LIKE ?)"

func (r *postRepo) Search(ctx context.Context, query string, page, pageSize int) ([]model.Post, error) {
	pat := searchPattern(query)
	var posts []model.Post
	err := r.withRelations(ctx).
		Where(searchCondition, true, pat, pat, pat).
		Order("COALESCE(published_at, created_at) DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	return posts, err
}

func (r *postRepo) CountSearch(ctx context.Context, query string) (int64, error) {
	pat := searchPattern(query)
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).
		Where(searchCondition, true, pat, pat, pat).
		Count(&count).Error
	return count, err
}

func (r *postRepo) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, post.ID, true)
}

func (r *postRepo) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	// Save пишет все поля, включая сброс published_at в NULL
	if err := r.db.WithContext(ctx).Omit("Author", "Images").Save(post).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, post.ID, true)
}

func (r *postRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&model.Post{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
