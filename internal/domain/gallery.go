package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AssetTypeImage = "image"
	AssetTypeVideo = "video"
)

// GalleryAsset is a standalone media record, not attached to any product.
// The blob itself lives in object storage; url points at its public address.
type GalleryAsset struct {
	ID          int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	Category    string                      `gorm:"index" json:"category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	IsFeatured  bool                        `json:"isFeatured"`
	URL         string                      `gorm:"size:1024" json:"url"`
	Type        string                      `gorm:"size:16;index" json:"type"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// TableName Specify table name
func (GalleryAsset) TableName() string {
	return "gallery_assets"
}
