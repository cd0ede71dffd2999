package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"SampleBlog/internal/middleware"
	"SampleBlog/internal/service"

	"github.com/go-chi/chi/v5"
)

// guard — проверки личности и владения для административных маршрутов.
// Любая операция над своим постом или изображением обязана пройти через
// соответствующий assert до выполнения действия.
type guard struct {
	posts  *service.PostService
	images *service.ImageService
}

// currentUserID достаёт id пользователя из контекста запроса.
// Отсутствие или некорректность клейма — ErrUnauthorized.
func (g guard) currentUserID(r *http.Request) (int64, error) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, service.ErrUnauthorized
	}
	return userID, nil
}

// assertOwnsPost загружает пост (включая черновики) и сверяет владельца.
// Нет поста — ErrPostNotFound; чужой пост — ErrForbidden.
func (g guard) assertOwnsPost(ctx context.Context, userID, postID int64) (*service.PostDTO, error) {
	post, err := g.posts.GetPostByID(ctx, postID, true)
	if err != nil {
		return nil, err
	}
	if post.Author.ID != userID {
		return nil, service.ErrForbidden
	}
	return post, nil
}

// assertOwnsImage сводит владение изображением к владению его постом.
func (g guard) assertOwnsImage(ctx context.Context, userID, imageID int64) error {
	img, err := g.images.Get(ctx, imageID)
	if err != nil {
		return err
	}
	if img == nil {
		return service.ErrImageNotFound
	}
	_, err = g.assertOwnsPost(ctx, userID, img.PostID)
	return err
}

// idParam читает целочисленный URL-параметр.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", service.ErrValidation, name)
	}
	return id, nil
}
