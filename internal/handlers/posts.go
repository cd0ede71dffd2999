package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"SampleBlog/internal/model"
	"SampleBlog/internal/service"

	"go.uber.org/zap"
)

// PostsHandler — публичные маршруты чтения: только опубликованное,
// без аутентификации.
type PostsHandler struct {
	Posts  *service.PostService
	Images *service.ImageService
	Logger *zap.SugaredLogger
}

func NewPostsHandler(posts *service.PostService, images *service.ImageService, logger *zap.SugaredLogger) *PostsHandler {
	return &PostsHandler{Posts: posts, Images: images, Logger: logger}
}

// GetPublishedPosts — страница кратких проекций; непустой параметр
// search переключает выдачу на поиск.
func (h *PostsHandler) GetPublishedPosts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	if search := r.URL.Query().Get("search"); strings.TrimSpace(search) != "" {
		result, err := h.Posts.SearchPublishedPosts(r.Context(), search, page, pageSize)
		if err != nil {
			writeError(w, r, h.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	result, err := h.Posts.GetPublishedPosts(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetPublishedPost — публичная детальная проекция; черновик — 404.
func (h *PostsHandler) GetPublishedPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	post, err := h.Posts.GetPublishedPostByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GetRecentPosts — count последних опубликованных, по умолчанию 5.
func (h *PostsHandler) GetRecentPosts(w http.ResponseWriter, r *http.Request) {
	count := 5
	if v := r.URL.Query().Get("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}

	posts, err := h.Posts.GetRecentPosts(r.Context(), count)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// SearchPosts — поиск по опубликованным; пустой query — 400.
func (h *PostsHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	result, err := h.Posts.SearchPublishedPosts(r.Context(), r.URL.Query().Get("query"), page, pageSize)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetImage отдаёт сырые байты изображения. Проверки владения нет:
// любое изображение доступно по id.
func (h *PostsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	img, err := h.Images.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	if img == nil {
		writeError(w, r, h.Logger, service.ErrImageNotFound)
		return
	}
	serveImage(w, img)
}

// GetImagesByPost — метаданные изображений поста со ссылками
// через /api/posts/images.
func (h *PostsHandler) GetImagesByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	images, err := h.Images.GetByPost(r.Context(), postID)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, imageDetails(images, service.ImageURLPosts))
}

// pageParams читает page/pageSize с дефолтами 1/10.
func pageParams(r *http.Request) (page, pageSize int) {
	page, pageSize = 1, 10
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			page = n
		}
	}
	if v := r.URL.Query().Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			pageSize = n
		}
	}
	return page, pageSize
}

func serveImage(w http.ResponseWriter, img *model.Image) {
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", img.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

func imageDetails(images []model.Image, urlPrefix string) []service.ImageDetailsDTO {
	result := make([]service.ImageDetailsDTO, 0, len(images))
	for i := range images {
		result = append(result, service.ToImageDetailsDTO(&images[i], urlPrefix))
	}
	return result
}
