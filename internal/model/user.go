package model

import "time"

// User — автор блога. Хеш пароля наружу никогда не отдаётся.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"size:256;not null;uniqueIndex"`
	Username     string `gorm:"size:100;not null"`
	PasswordHash string `gorm:"not null"`

	// Связи
	Posts []Post `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
