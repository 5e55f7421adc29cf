package domain

import "time"

// PhotoComment is an event guestbook entry. Clients only ever append; the
// moderation endpoint can flip IsVisible to false but rows are never deleted
// by ordinary users. PhotoID anchors the comment to the event's first photo
// for compatibility with older ingests; EventID is the authoritative scope.
type PhotoComment struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	EventID    string    `json:"event_id" gorm:"not null;index"`
	PhotoID    string    `json:"photo_id" gorm:"not null;index"`
	DeviceID   string    `json:"device_id" gorm:"not null"`
	AuthorName string    `json:"author_name" gorm:"not null;default:Guest"`
	Body       string    `json:"body" gorm:"not null;size:500"`
	IsVisible  bool      `json:"is_visible" gorm:"not null;default:true;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (PhotoComment) TableName() string {
	return "photo_comments"
}
