// Package linker maintains the denormalized many-to-many relationship between
// blogs and venues and derives related content from it.
//
// Writes return errors to the caller. Reads log backend failures and return
// an empty result, so an empty answer may also mean a transient failure.
package linker

import (
	"context"
	"time"

	"github.com/emrgen/thirdplace/internal/model"
)

const (
	// lookupConcurrency bounds the venue lookups in flight for one call.
	lookupConcurrency = 8

	recommendCategories  = 3
	recommendPerCategory = 5
	recommendLimit       = 10
)

type BlogStore interface {
	GetBlog(ctx context.Context, id string) (*model.Blog, error)
	UpdateBlogVenueFields(ctx context.Context, id string, fields model.BlogVenueFields) error
	ListBlogsByVenue(ctx context.Context, venueID string, publishedOnly bool) ([]*model.Blog, error)
	ListPublishedBlogsByVenues(ctx context.Context, venueIDs []string, limit int) ([]*model.Blog, error)
}

// VenueLookup returns nil and no error when a venue does not exist.
type VenueLookup interface {
	GetVenue(ctx context.Context, id string) (*model.Venue, error)
}

type VenueStore interface {
	ListVenuesByCategory(ctx context.Context, category string, limit int) ([]*model.Venue, error)
}

// LinkInput is one venue reference as authored in a blog.
type LinkInput struct {
	VenueID          string
	RelationshipType model.RelationshipType
	ContextInBlog    string
}

// VenueInBlog is a fresh venue record with the blog's relationship attached.
type VenueInBlog struct {
	Venue            *model.Venue
	RelationshipType model.RelationshipType
	ContextInBlog    string
	OrderInBlog      int
}

// Filter narrows GetBlogsAboutVenue. An empty RelationshipType matches all.
type Filter struct {
	RelationshipType model.RelationshipType
}

type Linker struct {
	blogs  BlogStore
	lookup VenueLookup
	venues VenueStore
	now    func() time.Time
}

func New(blogs BlogStore, lookup VenueLookup, venues VenueStore) *Linker {
	return &Linker{
		blogs:  blogs,
		lookup: lookup,
		venues: venues,
		now:    time.Now,
	}
}
