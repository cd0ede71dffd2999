package handlers

import (
	"net/http"

	"SampleBlog/internal/config"
	"SampleBlog/internal/service"

	"go.uber.org/zap"
)

// ImagesHandler — прямые маршруты изображений. Чтение публичное,
// изменяющие операции требуют аутентификации и владения постом —
// ровно так же, как административная группа.
type ImagesHandler struct {
	Images *service.ImageService
	Logger *zap.SugaredLogger
	Config *config.Config
	guard  guard
}

func NewImagesHandler(posts *service.PostService, images *service.ImageService, logger *zap.SugaredLogger, cfg *config.Config) *ImagesHandler {
	return &ImagesHandler{
		Images: images,
		Logger: logger,
		Config: cfg,
		guard:  guard{posts: posts, images: images},
	}
}

// GetImage отдаёт сырые байты любого изображения по id, без проверки
// владения.
func (h *ImagesHandler) GetImage(w http.ResponseWriter, r *http.Request) {
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

// UploadImage загружает изображение к своему посту.
func (h *ImagesHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, err := h.guard.currentUserID(r)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	postID, err := idParam(r, "postId")
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
	writeJSON(w, http.StatusCreated, service.ToImageDetailsDTO(img, service.ImageURLPublic))
}

// DeleteImage удаляет своё изображение по id.
func (h *ImagesHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	userID, err := h.guard.currentUserID(r)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	if err := h.guard.assertOwnsImage(r.Context(), userID, id); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	if err := h.Images.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetImagesByPost — метаданные изображений поста со ссылками
// через /api/images.
func (h *ImagesHandler) GetImagesByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := idParam(r, "postId")
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	images, err := h.Images.GetByPost(r.Context(), postID)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, imageDetails(images, service.ImageURLPublic))
}
