package model

import (
	"time"

	"gorm.io/gorm"
)

type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
)

// Blog is a post about one or more venues. Content holds the storage form,
// compressed with the algorithm named by Compression.
type Blog struct {
	ID            string `gorm:"primaryKey;uuid;not null"`
	Title         string `gorm:"not null"`
	Content       []byte
	Compression   string
	ContentHash   string
	Excerpt       string
	Category      string     `gorm:"index"`
	Tags          []string   `gorm:"serializer:json"`
	AuthorUID     string     `gorm:"index"`
	Status        BlogStatus `gorm:"index;not null;default:draft"`
	FeaturedImage string
	ViewCount     int64
	WordCount     int
	ReadTime      int
	PublishedAt   *time.Time

	// denormalized venue fields, rewritten as a whole by the linker
	LinkedVenues       []string            `gorm:"serializer:json"`
	VenueRelationships []VenueRelationship `gorm:"serializer:json"`
	PrimaryVenue       *string
	VenueCategories    []string `gorm:"serializer:json"`
	LocationTags       []string `gorm:"serializer:json"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Markdown is the decoded content, filled by the service layer.
	Markdown string `gorm:"-"`
}

func (b *Blog) Published() bool {
	return b.Status == BlogStatusPublished
}

// BlogVenueFields is the set of venue fields written in one update.
type BlogVenueFields struct {
	LinkedVenues       []string
	VenueRelationships []VenueRelationship
	PrimaryVenue       *string
	VenueCategories    []string
	LocationTags       []string
}

func (b *Blog) VenueFields() BlogVenueFields {
	return BlogVenueFields{
		LinkedVenues:       b.LinkedVenues,
		VenueRelationships: b.VenueRelationships,
		PrimaryVenue:       b.PrimaryVenue,
		VenueCategories:    b.VenueCategories,
		LocationTags:       b.LocationTags,
	}
}

func (b *Blog) SetVenueFields(f BlogVenueFields) {
	b.LinkedVenues = f.LinkedVenues
	b.VenueRelationships = f.VenueRelationships
	b.PrimaryVenue = f.PrimaryVenue
	b.VenueCategories = f.VenueCategories
	b.LocationTags = f.LocationTags
}
