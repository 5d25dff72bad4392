package model

import (
	"strings"
	"time"
)

type RelationshipType string

const (
	RelationshipFeatured  RelationshipType = "featured"
	RelationshipMentioned RelationshipType = "mentioned"
	RelationshipCompared  RelationshipType = "compared"
)

// ParseRelationshipType defaults unknown values to mentioned.
func ParseRelationshipType(s string) RelationshipType {
	switch RelationshipType(strings.ToLower(strings.TrimSpace(s))) {
	case RelationshipFeatured:
		return RelationshipFeatured
	case RelationshipCompared:
		return RelationshipCompared
	default:
		return RelationshipMentioned
	}
}

// VenueRelationship is how a blog references a venue, with a denormalized
// copy of the venue's display fields taken at CachedAt.
type VenueRelationship struct {
	VenueID          string           `json:"venueId"`
	RelationshipType RelationshipType `json:"relationshipType"`
	ContextInBlog    string           `json:"contextInBlog,omitempty"`
	OrderInBlog      int              `json:"orderInBlog"`
	VenueName        string           `json:"venueName"`
	VenueCategory    string           `json:"venueCategory"`
	VenueCity        string           `json:"venueCity"`
	VenuePhoto       string           `json:"venuePhoto,omitempty"`
	CachedAt         time.Time        `json:"cachedAt"`
}

// BlogVenue indexes which venues a blog links to. Rows are rewritten in the
// same transaction as the blog's venue fields.
type BlogVenue struct {
	BlogID           string           `gorm:"primaryKey;uuid;not null;index:idx_blog_venues_blog_id"`
	VenueID          string           `gorm:"primaryKey;uuid;not null;index:idx_blog_venues_venue_id"`
	RelationshipType RelationshipType `gorm:"not null"`
	OrderInBlog      int
}

func (b *BlogVenue) TableName() string {
	return "blog_venues"
}
