package service

import (
	"fmt"
	"testing"

	"SampleBlog/internal/model"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB — in-memory SQLite для сервисных тестов, уникальная БД на тест.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Image{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, username string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Username: username, PasswordHash: "hash"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}
