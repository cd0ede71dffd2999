package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"SampleBlog/internal/config"
	"SampleBlog/internal/service"

	"go.uber.org/zap"
)

// AdminHandler — маршруты управления своими постами и изображениями.
// Каждая операция сначала проходит через guard: действие не выполняется,
// пока владение не подтверждено.
type AdminHandler struct {
	Posts  *service.PostService
	Images *service.ImageService
	Logger *zap.SugaredLogger
	Config *config.Config
	guard  guard
}

func NewAdminHandler(posts *service.PostService, images *service.ImageService, logger *zap.SugaredLogger, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		Posts:  posts,
		Images: images,
		Logger: logger,
		Config: cfg,
		guard:  guard{posts: posts, images: images},
	}
}

type PostRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Subtitle    string `json:"subtitle" validate:"max=500"`
	Text        string `json:"text" validate:"required"`
	IsPublished bool   `json:"isPublished"`
}

// GetPosts — посты текущего автора, полная проекция,
// опциональный фильтр isPublished.
func (h *AdminHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := h.guard.currentUserID(r)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	page, pageSize := pageParams(r)
	var isPublished *bool
	if v := r.URL.Query().Get("isPublished"); v != "" {
		if b, perr := strconv.ParseBool(v); perr == nil {
			isPublished = &b
		}
	}

	result, err := h.Posts.GetPostsByAuthor(r.Context(), userID, page, pageSize, isPublished)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetPost — свой пост, включая черновики.
func (h *AdminHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	userID, id, err := h.userAndID(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	post, err := h.guard.assertOwnsPost(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *AdminHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := h.guard.currentUserID(r)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	var req PostRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	post, err := h.Posts.CreatePost(r.Context(), service.CreatePostRequest{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Text:        req.Text,
		IsPublished: req.IsPublished,
	}, userID)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *AdminHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, id, err := h.userAndID(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	var req PostRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	if _, err := h.guard.assertOwnsPost(r.Context(), userID, id); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	post, err := h.Posts.UpdatePost(r.Context(), id, service.UpdatePostRequest{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Text:        req.Text,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, id, err := h.userAndID(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	if _, err := h.guard.assertOwnsPost(r.Context(), userID, id); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	if err := h.Posts.DeletePost(r.Context(), id); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) PublishPost(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Posts.PublishPost)
}

func (h *AdminHandler) UnpublishPost(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Posts.UnpublishPost)
}

// UploadImage принимает multipart-форму с полями image и altText.
// Размер тела ограничивается до чтения файла в память.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, postID, err := h.userAndID(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	if _, err := h.guard.assertOwnsPost(r.Context(), userID, postID); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	up, err := readImageUpload(w, r, h.Config.ImageMaxSizeMB)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	img, err := h.Images.Upload(r.Context(), postID, up)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, service.ToImageDetailsDTO(img, service.ImageURLAdmin))
}

// GetImage — своё изображение, сырые байты.
func (h *AdminHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	userID, imageID, err := h.userAndID(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	if err := h.guard.assertOwnsImage(r.Context(), userID, imageID); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	img, err := h.Images.Get(r.Context(), imageID)
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

// GetImagesByPost — изображения своего поста со ссылками
// через /api/admin/images.
func (h *AdminHandler) GetImagesByPost(w http.ResponseWriter, r *http.Request) {
	userID, postID, err := h.userAndID(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	if _, err := h.guard.assertOwnsPost(r.Context(), userID, postID); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	images, err := h.Images.GetByPost(r.Context(), postID)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, imageDetails(images, service.ImageURLAdmin))
}

func (h *AdminHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	userID, imageID, err := h.userAndID(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	if err := h.guard.assertOwnsImage(r.Context(), userID, imageID); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	if err := h.Images.Delete(r.Context(), imageID); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStats — сводка по постам текущего автора.
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, err := h.guard.currentUserID(r)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	stats, err := h.Posts.GetPostStatsByAuthor(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64) (*service.PostDTO, error)) {
	userID, id, err := h.userAndID(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	if _, err := h.guard.assertOwnsPost(r.Context(), userID, id); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	post, err := op(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *AdminHandler) userAndID(r *http.Request, name string) (userID, id int64, err error) {
	userID, err = h.guard.currentUserID(r)
	if err != nil {
		return 0, 0, err
	}
	id, err = idParam(r, name)
	if err != nil {
		return 0, 0, err
	}
	return userID, id, nil
}

// readImageUpload ограничивает тело запроса и читает файл целиком.
// Лимит ставится до буферизации, чтобы ограничить память.
func readImageUpload(w http.ResponseWriter, r *http.Request, maxSizeMB int) (service.ImageUpload, error) {
	maxBody := int64(maxSizeMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return service.ImageUpload{}, fmt.Errorf("%w: invalid multipart form", service.ErrValidation)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return service.ImageUpload{}, fmt.Errorf("%w: file is required", service.ErrValidation)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return service.ImageUpload{}, fmt.Errorf("%w: failed to read file", service.ErrValidation)
	}

	return service.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		AltText:     r.FormValue("altText"),
	}, nil
}
