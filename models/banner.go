package models

import "time"

// Banner is one slide of the home-page carousel, ordered by Position.
type Banner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:150" json:"title"`
	ImageURL  string    `gorm:"size:500;not null" json:"image_url"`
	TargetURL string    `gorm:"size:500" json:"target_url"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	Status    string    `gorm:"type:enum('Active','Inactive');default:'Active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
