package domain

import "time"

// PhotoLike links a device to a liked photo. Presence of the row is the fact;
// there is nothing to update. The unique index guarantees at most one row per
// (photo, device) pair.
type PhotoLike struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PhotoID   string    `json:"photo_id" gorm:"not null;index;uniqueIndex:idx_photo_device"`
	DeviceID  string    `json:"device_id" gorm:"not null;index;uniqueIndex:idx_photo_device"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Photo *Photo `json:"photo,omitempty" gorm:"foreignKey:PhotoID"`
}

func (PhotoLike) TableName() string {
	return "photo_likes"
}
