package models

import "time"

// Rating is an append-only product review record. Ratings are never edited or
// deleted through the API.
type Rating struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID string    `gorm:"index;not null" json:"productId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"timestamp"`
}
