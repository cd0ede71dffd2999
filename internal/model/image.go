package model

import "time"

// Image — бинарное содержимое, привязанное к посту.
type Image struct {
	ID          int64  `gorm:"primaryKey"`
	Data        []byte `gorm:"not null"`
	ContentType string `gorm:"size:100;not null"`
	FileName    string `gorm:"size:200;not null"`
	AltText     string `gorm:"size:500"`
	Size        int64  `gorm:"not null"`

	PostID int64 `gorm:"not null;index"`
	Post   *Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
