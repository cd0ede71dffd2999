package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"SampleBlog/internal/config"
	"SampleBlog/internal/handlers"
	"SampleBlog/internal/model"
	"SampleBlog/internal/repo"
	"SampleBlog/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// Хендлерные тесты гоняют запросы через весь стек: роутер, middleware,
// сервисы и репозитории поверх in-memory SQLite. DSN уникален на тест.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Image{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	cfg := &config.Config{
		AuthSecret:         "test-secret",
		JWTIssuer:          "SampleBlog",
		JWTAudience:        "SampleBlogUsers",
		TokenExpiryMinutes: 60,
		ImageMaxSizeMB:     1,
	}
	logger := zap.NewNop().Sugar()

	authSvc := service.NewAuthService(repo.NewUserRepository(db), cfg, logger)
	postSvc := service.NewPostService(repo.NewPostRepository(db), logger)
	imageSvc := service.NewImageService(repo.NewImageRepository(db), cfg.ImageMaxSizeMB, logger)

	h := handlers.NewHandler(authSvc, postSvc, imageSvc, logger, cfg)
	return h.Router
}

// doJSON выполняет запрос с JSON-телом; пустой token — анонимный запрос.
func doJSON(t *testing.T, router http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

// registerUser регистрирует пользователя через API и возвращает токен.
func registerUser(t *testing.T, router http.Handler, email, username string) (token string, userID int64) {
	t.Helper()

	rr := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password1",
		"username": username,
	})
	if !assert.Equal(t, http.StatusOK, rr.Code, "register %s: %s", email, rr.Body.String()) {
		t.FailNow()
	}
	resp := decodeBody[service.AuthResponse](t, rr)
	assert.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

// createPost создаёт пост через API от имени владельца токена.
func createPost(t *testing.T, router http.Handler, token, title string, published bool) service.PostDTO {
	t.Helper()

	rr := doJSON(t, router, http.MethodPost, "/api/admin/posts", token, map[string]any{
		"title":       title,
		"subtitle":    "sub of " + title,
		"text":        "text of " + title,
		"isPublished": published,
	})
	if !assert.Equal(t, http.StatusCreated, rr.Code, "create post: %s", rr.Body.String()) {
		t.FailNow()
	}
	return decodeBody[service.PostDTO](t, rr)
}

// multipartImage собирает multipart-форму с файловым полем image.
func multipartImage(t *testing.T, fileName, contentType string, data []byte, altText string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, fileName))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	if altText != "" {
		_ = mw.WriteField("altText", altText)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

// newUploadRequest собирает POST с multipart-телом.
func newUploadRequest(t *testing.T, target, token string, body *bytes.Buffer, contentType string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// uploadImage загружает изображение к посту через административный маршрут.
func uploadImage(t *testing.T, router http.Handler, token string, postID int64, data []byte) service.ImageDetailsDTO {
	t.Helper()

	body, ct := multipartImage(t, "pic.png", "image/png", data, "")
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/posts/%d/images", postID), body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if !assert.Equal(t, http.StatusCreated, rr.Code, "upload image: %s", rr.Body.String()) {
		t.FailNow()
	}
	return decodeBody[service.ImageDetailsDTO](t, rr)
}
