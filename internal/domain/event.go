package domain

import "time"

// Event is a published photo gallery for a shoot. Rows are created by the
// createevent/ingest tooling; the gallery only ever reads them.
type Event struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Date        time.Time  `json:"date"`
	Description *string    `json:"description,omitempty"`
	CoverPhoto  *string    `json:"cover_photo_url,omitempty"`
	IsPublished bool       `json:"is_published" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"-"`
}

func (Event) TableName() string {
	return "events"
}
