package store

import (
	"context"
	"errors"
	"time"

	"github.com/emrgen/thirdplace/internal/model"
)

var (
	ErrBlogNotFound  = errors.New("blog not found")
	ErrVenueNotFound = errors.New("venue not found")
)

type Store interface {
	BlogStore
	VenueStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

// ListBlogsOptions narrows ListBlogs. Zero values match everything.
type ListBlogsOptions struct {
	Status    model.BlogStatus
	Category  string
	AuthorUID string
	Offset    int
	Limit     int
}

type BlogStore interface {
	// CreateBlog creates a new blog.
	CreateBlog(ctx context.Context, blog *model.Blog) error
	// GetBlog retrieves a blog by ID.
	GetBlog(ctx context.Context, id string) (*model.Blog, error)
	// ListBlogs retrieves blogs newest first with the total match count.
	ListBlogs(ctx context.Context, opts ListBlogsOptions) ([]*model.Blog, int64, error)
	// UpdateBlog saves every column of a blog.
	UpdateBlog(ctx context.Context, blog *model.Blog) error
	// DeleteBlog deletes a blog and its venue rows.
	DeleteBlog(ctx context.Context, id string) error
	// UpdateBlogVenueFields replaces the venue fields and join rows of a blog.
	UpdateBlogVenueFields(ctx context.Context, id string, fields model.BlogVenueFields) error
	// ListBlogsByVenue retrieves blogs linking a venue, newest first.
	ListBlogsByVenue(ctx context.Context, venueID string, publishedOnly bool) ([]*model.Blog, error)
	// ListPublishedBlogsByVenues retrieves published blogs linking any of the venues, newest first.
	ListPublishedBlogsByVenues(ctx context.Context, venueIDs []string, limit int) ([]*model.Blog, error)
	// IncrementViewCounts adds the buffered view counts to each blog.
	IncrementViewCounts(ctx context.Context, counts map[string]int64) error
}

type VenueStore interface {
	// CreateVenue creates a new venue.
	CreateVenue(ctx context.Context, venue *model.Venue) error
	// GetVenue retrieves a venue by ID.
	GetVenue(ctx context.Context, id string) (*model.Venue, error)
	// UpdateVenue saves every column of a venue.
	UpdateVenue(ctx context.Context, venue *model.Venue) error
	// DeleteVenue deletes a venue by ID.
	DeleteVenue(ctx context.Context, id string) error
	// ListVenues retrieves venues ordered by name.
	ListVenues(ctx context.Context, limit int) ([]*model.Venue, error)
	// ListVenuesByCategory retrieves venues in a category ordered by name.
	ListVenuesByCategory(ctx context.Context, category string, limit int) ([]*model.Venue, error)
	// ListVenuesUpdatedSince retrieves venues modified after the given time.
	ListVenuesUpdatedSince(ctx context.Context, since time.Time) ([]*model.Venue, error)
}
