package main

import (
	"net/http"

	"SampleBlog/internal/config"
	"SampleBlog/internal/handlers"
	"SampleBlog/internal/middleware"
	"SampleBlog/internal/repo"
	"SampleBlog/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	postRepo := repo.NewPostRepository(gormDB)
	imageRepo := repo.NewImageRepository(gormDB)

	authService := service.NewAuthService(userRepo, cfg, sugar)
	postService := service.NewPostService(postRepo, sugar)
	imageService := service.NewImageService(imageRepo, cfg.ImageMaxSizeMB, sugar)

	h := handlers.NewHandler(authService, postService, imageService, sugar, cfg)

	sugar.Infow(
		"Starting server",
		"addr", cfg.RunAddress,
	)

	sugar.Infow("Config",
		"RunAddress", cfg.RunAddress,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"TokenExpiryMinutes", cfg.TokenExpiryMinutes,
		"ImageMaxSizeMB", cfg.ImageMaxSizeMB,
	)

	if err := http.ListenAndServe(cfg.RunAddress, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
