package model

import "time"

// Post — запись блога.
// Инвариант: PublishedAt != nil тогда и только тогда, когда пост сейчас
// опубликован; unpublish сбрасывает отметку в nil.
type Post struct {
	ID       int64  `gorm:"primaryKey"`
	Title    string `gorm:"size:200;not null"`
	Subtitle string `gorm:"size:500"`
	Text     string `gorm:"not null"`

	IsPublished bool       `gorm:"not null;default:false;index"`
	PublishedAt *time.Time `gorm:"index"`

	AuthorID int64 `gorm:"not null;index"`
	Author   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Упорядочены по возрастанию CreatedAt: первая — «главное» изображение поста
	Images []Image `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
