package repo

import (
	"errors"
	"strings"

	"SampleBlog/internal/model"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// InitDB открывает соединение с БД и выполняет миграции схемы.
// Диалект выбирается по DSN: postgres-URL — PostgreSQL, иначе SQLite-файл
// (драйвер modernc, без cgo).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dial = postgres.Open(dsn)
	} else {
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: withForeignKeys(dsn)}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Image{}); err != nil {
		return nil, err
	}
	return db, nil
}

// IsDuplicateKey распознаёт нарушение уникального индекса у обоих
// диалектов: postgres пишет "duplicate key value violates unique
// constraint", SQLite — "UNIQUE constraint failed".
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// withForeignKeys включает контроль внешних ключей в SQLite,
// иначе каскадные удаления не работают.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
