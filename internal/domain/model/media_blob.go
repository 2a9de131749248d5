package model

import (
	"time"

	"github.com/google/uuid"
)

// MediaBlob stores a normalized image when media lives in the database
type MediaBlob struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key         string    `gorm:"size:255;not null;uniqueIndex" json:"key"`
	ContentType string    `gorm:"size:100;not null" json:"content_type"`
	Data        []byte    `gorm:"not null" json:"-"`
	Size        int       `gorm:"not null" json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (MediaBlob) TableName() string {
	return "media_blobs"
}
