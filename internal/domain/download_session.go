package domain

import "time"

// DownloadSession is a token-addressed full-resolution export request. Expiry
// is fixed at creation (72 hours) and never extended; DownloadCount tracks
// visits to the token page.
type DownloadSession struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Token         string    `json:"token" gorm:"uniqueIndex;not null"`
	EventID       string    `json:"event_id" gorm:"not null;index"`
	Email         string    `json:"email" gorm:"not null"`
	PhotoIDs      string    `json:"-" gorm:"column:photo_ids;not null"`
	ExpiresAt     time.Time `json:"expires_at" gorm:"not null"`
	DownloadCount int64     `json:"download_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`

	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
}

func (DownloadSession) TableName() string {
	return "download_sessions"
}

// ExpiredAt reports whether the session is unusable at the given instant.
// The boundary itself counts as expired.
func (s *DownloadSession) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
