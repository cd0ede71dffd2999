package service

import (
	"fmt"
	"time"

	"SampleBlog/internal/model"
)

// Префиксы ссылок на изображения: одно и то же изображение отдаётся
// по разным путям в зависимости от того, какая группа маршрутов
// обслуживала запрос.
const (
	ImageURLAdmin  = "/api/admin/images"
	ImageURLPublic = "/api/images"
	ImageURLPosts  = "/api/posts/images"
)

// UserDTO — публичная проекция пользователя, без хеша пароля.
type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// AuthResponse — результат регистрации или входа.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// PostDTO — полная (административная) проекция поста.
type PostDTO struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Subtitle     string     `json:"subtitle"`
	Text         string     `json:"text"`
	MainImageURL *string    `json:"mainImageUrl"`
	IsPublished  bool       `json:"isPublished"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	PublishedAt  *time.Time `json:"publishedAt"`
	Author       UserDTO    `json:"author"`
}

// PostPublicDTO — проекция поста для читателя: вместо объекта автора
// только его имя.
type PostPublicDTO struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Subtitle       string     `json:"subtitle"`
	Text           string     `json:"text"`
	MainImageURL   *string    `json:"mainImageUrl"`
	IsPublished    bool       `json:"isPublished"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	PublishedAt    *time.Time `json:"publishedAt"`
	AuthorUsername string     `json:"authorUsername"`
}

// PostSummaryDTO — краткая проекция для списков, без текста поста.
type PostSummaryDTO struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Subtitle       string     `json:"subtitle"`
	MainImageURL   *string    `json:"mainImageUrl"`
	CreatedAt      time.Time  `json:"createdAt"`
	PublishedAt    *time.Time `json:"publishedAt"`
	AuthorUsername string     `json:"authorUsername"`
}

// ImageDetailsDTO — метаданные изображения без бинарных данных.
type ImageDetailsDTO struct {
	ID          int64     `json:"id"`
	PostID      int64     `json:"postId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	AltText     string    `json:"altText,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	URL         string    `json:"url"`
}

// PostStatsDTO — сводка по постам автора.
type PostStatsDTO struct {
	TotalPosts     int64 `json:"totalPosts"`
	PublishedPosts int64 `json:"publishedPosts"`
	DraftPosts     int64 `json:"draftPosts"`
}

// Paginated — страница выдачи с производными полями навигации.
type Paginated[T any] struct {
	Items           []T   `json:"items"`
	TotalCount      int64 `json:"totalCount"`
	Page            int   `json:"page"`
	PageSize        int   `json:"pageSize"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

func newPaginated[T any](items []T, totalCount int64, page, pageSize int) Paginated[T] {
	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	return Paginated[T]{
		Items:           items,
		TotalCount:      totalCount,
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, Username: u.Username}
}

// mainImageURL строит ссылку на первое (главное) изображение поста.
func mainImageURL(p *model.Post, urlPrefix string) *string {
	if len(p.Images) == 0 {
		return nil
	}
	url := fmt.Sprintf("%s/%d", urlPrefix, p.Images[0].ID)
	return &url
}

func toPostDTO(p *model.Post, urlPrefix string) *PostDTO {
	dto := &PostDTO{
		ID:           p.ID,
		Title:        p.Title,
		Subtitle:     p.Subtitle,
		Text:         p.Text,
		MainImageURL: mainImageURL(p, urlPrefix),
		IsPublished:  p.IsPublished,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		PublishedAt:  p.PublishedAt,
	}
	if p.Author != nil {
		dto.Author = toUserDTO(p.Author)
	}
	return dto
}

func toPostPublicDTO(p *model.Post, urlPrefix string) *PostPublicDTO {
	dto := &PostPublicDTO{
		ID:           p.ID,
		Title:        p.Title,
		Subtitle:     p.Subtitle,
		Text:         p.Text,
		MainImageURL: mainImageURL(p, urlPrefix),
		IsPublished:  p.IsPublished,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		PublishedAt:  p.PublishedAt,
	}
	if p.Author != nil {
		dto.AuthorUsername = p.Author.Username
	}
	return dto
}

func toPostSummaryDTO(p *model.Post, urlPrefix string) PostSummaryDTO {
	dto := PostSummaryDTO{
		ID:           p.ID,
		Title:        p.Title,
		Subtitle:     p.Subtitle,
		MainImageURL: mainImageURL(p, urlPrefix),
		CreatedAt:    p.CreatedAt,
		PublishedAt:  p.PublishedAt,
	}
	if p.Author != nil {
		dto.AuthorUsername = p.Author.Username
	}
	return dto
}

// ToImageDetailsDTO строит проекцию изображения со ссылкой,
// привязанной к группе маршрутов вызывающей стороны.
func ToImageDetailsDTO(img *model.Image, urlPrefix string) ImageDetailsDTO {
	return ImageDetailsDTO{
		ID:          img.ID,
		PostID:      img.PostID,
		FileName:    img.FileName,
		ContentType: img.ContentType,
		Size:        img.Size,
		AltText:     img.AltText,
		CreatedAt:   img.CreatedAt,
		URL:         fmt.Sprintf("%s/%d", urlPrefix, img.ID),
	}
}
