package handlers

import (
	"SampleBlog/internal/config"
	"SampleBlog/internal/middleware"
	"SampleBlog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров: три группы маршрутов —
// публичное чтение, административное управление, прямые изображения.
func NewHandler(
	authService *service.AuthService,
	postService *service.PostService,
	imageService *service.ImageService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(cfg.AuthSecret, cfg.JWTIssuer, cfg.JWTAudience))

	// Handlers
	authHandler := NewAuthHandler(authService, logger)
	postsHandler := NewPostsHandler(postService, imageService, logger)
	adminHandler := NewAdminHandler(postService, imageService, logger, cfg)
	imagesHandler := NewImagesHandler(postService, imageService, logger, cfg)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postsHandler.GetPublishedPosts)
			r.Get("/recent", postsHandler.GetRecentPosts)
			r.Get("/search", postsHandler.SearchPosts)
			r.Get("/images/{id}", postsHandler.GetImage)
			r.Get("/{id}", postsHandler.GetPublishedPost)
			r.Get("/{id}/images", postsHandler.GetImagesByPost)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/posts", adminHandler.GetPosts)
			r.Post("/posts", adminHandler.CreatePost)
			r.Get("/posts/{id}", adminHandler.GetPost)
			r.Put("/posts/{id}", adminHandler.UpdatePost)
			r.Delete("/posts/{id}", adminHandler.DeletePost)
			r.Patch("/posts/{id}/publish", adminHandler.PublishPost)
			r.Patch("/posts/{id}/unpublish", adminHandler.UnpublishPost)
			r.Post("/posts/{id}/images", adminHandler.UploadImage)
			r.Get("/posts/{id}/images", adminHandler.GetImagesByPost)
			r.Get("/images/{id}", adminHandler.GetImage)
			r.Delete("/images/{id}", adminHandler.DeleteImage)
			r.Get("/stats", adminHandler.GetStats)
		})

		r.Route("/images", func(r chi.Router) {
			r.Get("/{id}", imagesHandler.GetImage)
			r.Delete("/{id}", imagesHandler.DeleteImage)
			r.Get("/post/{postId}", imagesHandler.GetImagesByPost)
			r.Post("/post/{postId}", imagesHandler.UploadImage)
		})
	})

	return &Handler{Router: r}
}
