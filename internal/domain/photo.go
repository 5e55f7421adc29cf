package domain

import "time"

// Photo is immutable after ingestion except LikeCount, which is a denormalized
// counter kept in step with photo_likes inside the same transaction. Width,
// height and blurhash are always populated by the ingest tool, so rendering
// code may rely on them.
type Photo struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	EventID     string    `json:"event_id" gorm:"not null;index"`
	StoragePath string    `json:"storage_path" gorm:"not null"`
	ThumbPath   string    `json:"thumb_path" gorm:"not null"`
	Filename    string    `json:"filename" gorm:"not null"`
	Width       int       `json:"width" gorm:"not null"`
	Height      int       `json:"height" gorm:"not null"`
	Blurhash    *string   `json:"blurhash,omitempty"`
	LikeCount   int64     `json:"like_count" gorm:"not null;default:0"`
	SortOrder   int       `json:"sort_order" gorm:"not null;index:idx_photos_event_order"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
}

func (Photo) TableName() string {
	return "photos"
}
