package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"SampleBlog/internal/model"
	"SampleBlog/internal/repo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreatePostRequest — параметры создания поста.
type CreatePostRequest struct {
	Title       string
	Subtitle    string
	Text        string
	IsPublished bool
}

// UpdatePostRequest — параметры обновления; все поля перезаписываются.
type UpdatePostRequest struct {
	Title       string
	Subtitle    string
	Text        string
	IsPublished bool
}

// PostService — жизненный цикл поста: CRUD, публикация, проекции, поиск.
type PostService struct {
	posts  repo.PostRepository
	logger *zap.SugaredLogger
}

func NewPostService(posts repo.PostRepository, logger *zap.SugaredLogger) *PostService {
	return &PostService{posts: posts, logger: logger}
}

// --- Административные операции ---

// GetAllPosts — посты всех авторов, порядок created_at DESC.
func (s *PostService) GetAllPosts(ctx context.Context, page, pageSize int, isPublished *bool) (Paginated[PostDTO], error) {
	posts, err := s.posts.GetAll(ctx, page, pageSize, isPublished)
	if err != nil {
		return Paginated[PostDTO]{}, err
	}
	total, err := s.posts.CountAll(ctx, isPublished)
	if err != nil {
		return Paginated[PostDTO]{}, err
	}
	return newPaginated(toPostDTOs(posts), total, page, pageSize), nil
}

// GetPostsByAuthor — посты автора, порядок COALESCE(published_at, created_at) DESC.
func (s *PostService) GetPostsByAuthor(ctx context.Context, authorID int64, page, pageSize int, isPublished *bool) (Paginated[PostDTO], error) {
	posts, err := s.posts.GetByAuthor(ctx, authorID, page, pageSize, isPublished)
	if err != nil {
		return Paginated[PostDTO]{}, err
	}
	total, err := s.posts.CountByAuthor(ctx, authorID, isPublished)
	if err != nil {
		return Paginated[PostDTO]{}, err
	}
	return newPaginated(toPostDTOs(posts), total, page, pageSize), nil
}

func toPostDTOs(posts []model.Post) []PostDTO {
	items := make([]PostDTO, 0, len(posts))
	for i := range posts {
		items = append(items, *toPostDTO(&posts[i], ImageURLAdmin))
	}
	return items
}

// GetPostByID возвращает полную проекцию поста.
// При includeUnpublished=false черновик неотличим от отсутствующего поста.
func (s *PostService) GetPostByID(ctx context.Context, id int64, includeUnpublished bool) (*PostDTO, error) {
	post, err := s.loadPost(ctx, id, includeUnpublished)
	if err != nil {
		return nil, err
	}
	return toPostDTO(post, ImageURLAdmin), nil
}

// GetPostStatsByAuthor считает сводку независимыми запросами,
// черновики — как разность.
func (s *PostService) GetPostStatsByAuthor(ctx context.Context, authorID int64) (*PostStatsDTO, error) {
	total, err := s.posts.CountByAuthor(ctx, authorID, nil)
	if err != nil {
		return nil, err
	}
	published := true
	publishedCount, err := s.posts.CountByAuthor(ctx, authorID, &published)
	if err != nil {
		return nil, err
	}
	return &PostStatsDTO{
		TotalPosts:     total,
		PublishedPosts: publishedCount,
		DraftPosts:     total - publishedCount,
	}, nil
}

// GetOverallStats — та же сводка по всем авторам.
func (s *PostService) GetOverallStats(ctx context.Context) (*PostStatsDTO, error) {
	total, err := s.posts.CountAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	published := true
	publishedCount, err := s.posts.CountAll(ctx, &published)
	if err != nil {
		return nil, err
	}
	return &PostStatsDTO{
		TotalPosts:     total,
		PublishedPosts: publishedCount,
		DraftPosts:     total - publishedCount,
	}, nil
}

// CreatePost сохраняет пост; созданный сразу опубликованным получает
// PublishedAt в момент создания.
func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest, authorID int64) (*PostDTO, error) {
	post := &model.Post{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Text:        req.Text,
		IsPublished: req.IsPublished,
		AuthorID:    authorID,
	}
	if post.IsPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("post created", "post_id", created.ID, "author_id", authorID, "published", created.IsPublished)
	return toPostDTO(created, ImageURLAdmin), nil
}

// UpdatePost перезаписывает содержимое поста и применяет переходы
// публикации: false→true ставит PublishedAt (если его ещё не было),
// true→false сбрасывает его в NULL.
func (s *PostService) UpdatePost(ctx context.Context, id int64, req UpdatePostRequest) (*PostDTO, error) {
	post, err := s.loadPost(ctx, id, true)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Subtitle = req.Subtitle
	post.Text = req.Text

	if req.IsPublished != post.IsPublished {
		post.IsPublished = req.IsPublished
		if req.IsPublished && post.PublishedAt == nil {
			now := time.Now().UTC()
			post.PublishedAt = &now
		} else if !req.IsPublished {
			post.PublishedAt = nil
		}
	}

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	return toPostDTO(updated, ImageURLAdmin), nil
}

// PublishPost идемпотентен: повторная публикация не трогает PublishedAt.
func (s *PostService) PublishPost(ctx context.Context, id int64) (*PostDTO, error) {
	post, err := s.loadPost(ctx, id, true)
	if err != nil {
		return nil, err
	}

	post.IsPublished = true
	if post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("post published", "post_id", id)
	return toPostDTO(updated, ImageURLAdmin), nil
}

// UnpublishPost снимает пост с публикации и безусловно сбрасывает PublishedAt.
func (s *PostService) UnpublishPost(ctx context.Context, id int64) (*PostDTO, error) {
	post, err := s.loadPost(ctx, id, true)
	if err != nil {
		return nil, err
	}

	post.IsPublished = false
	post.PublishedAt = nil

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("post unpublished", "post_id", id)
	return toPostDTO(updated, ImageURLAdmin), nil
}

// DeletePost удаляет пост насовсем; изображения уходят каскадом.
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	deleted, err := s.posts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPostNotFound
	}
	s.logger.Infow("post deleted", "post_id", id)
	return nil
}

// --- Публичные операции ---

// GetPublishedPosts — страница кратких проекций опубликованных постов.
func (s *PostService) GetPublishedPosts(ctx context.Context, page, pageSize int) (Paginated[PostSummaryDTO], error) {
	posts, err := s.posts.GetPublished(ctx, page, pageSize)
	if err != nil {
		return Paginated[PostSummaryDTO]{}, err
	}
	published := true
	total, err := s.posts.CountAll(ctx, &published)
	if err != nil {
		return Paginated[PostSummaryDTO]{}, err
	}
	return newPaginated(toSummaries(posts), total, page, pageSize), nil
}

// GetPublishedPostByID — публичная проекция; черновик отдаёт NotFound.
func (s *PostService) GetPublishedPostByID(ctx context.Context, id int64) (*PostPublicDTO, error) {
	post, err := s.loadPost(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return toPostPublicDTO(post, ImageURLPublic), nil
}

// GetRecentPosts — count последних опубликованных постов.
func (s *PostService) GetRecentPosts(ctx context.Context, count int) ([]PostSummaryDTO, error) {
	posts, err := s.posts.GetRecent(ctx, count)
	if err != nil {
		return nil, err
	}
	return toSummaries(posts), nil
}

// SearchPublishedPosts ищет подстроку без учёта регистра в
// title/subtitle/text опубликованных постов. Пустой запрос — ошибка валидации.
func (s *PostService) SearchPublishedPosts(ctx context.Context, query string, page, pageSize int) (Paginated[PostSummaryDTO], error) {
	if strings.TrimSpace(query) == "" {
		return Paginated[PostSummaryDTO]{}, ErrValidation
	}

	posts, err := s.posts.Search(ctx, query, page, pageSize)
	if err != nil {
		return Paginated[PostSummaryDTO]{}, err
	}
	total, err := s.posts.CountSearch(ctx, query)
	if err != nil {
		return Paginated[PostSummaryDTO]{}, err
	}
	return newPaginated(toSummaries(posts), total, page, pageSize), nil
}

func toSummaries(posts []model.Post) []PostSummaryDTO {
	items := make([]PostSummaryDTO, 0, len(posts))
	for i := range posts {
		items = append(items, toPostSummaryDTO(&posts[i], ImageURLPosts))
	}
	return items
}

func (s *PostService) loadPost(ctx context.Context, id int64, includeUnpublished bool) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id, includeUnpublished)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
