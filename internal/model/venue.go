package model

import (
	"time"

	"gorm.io/gorm"
)

// Venue is a physical third place listing.
type Venue struct {
	ID          string `gorm:"primaryKey;uuid;not null"`
	Name        string `gorm:"not null"`
	Description string
	Category    string `gorm:"index"`
	Address     string
	City        string `gorm:"index"`
	Latitude    float64
	Longitude   float64
	Photos      []string `gorm:"serializer:json"`
	OwnerUID    string   `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time      `gorm:"index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// PrimaryPhoto is the first photo, empty when there is none.
func (v *Venue) PrimaryPhoto() string {
	if len(v.Photos) == 0 {
		return ""
	}
	return v.Photos[0]
}
