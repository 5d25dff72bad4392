package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/emrgen/thirdplace/internal/model"
	"github.com/emrgen/thirdplace/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()
	tester.RemoveDBFile()

	os.Exit(code)
}

func newBlog(t *testing.T, s *GormStore, status model.BlogStatus, createdAt time.Time) *model.Blog {
	t.Helper()
	blog := &model.Blog{
		ID:        uuid.New().String(),
		Title:     "blog",
		Status:    status,
		CreatedAt: createdAt,
	}
	require.NoError(t, s.CreateBlog(context.TODO(), blog))
	return blog
}

func TestGormStore_UpdateBlogVenueFields(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	blog := newBlog(t, s, model.BlogStatusPublished, time.Now())
	primary := "v1"
	err := s.UpdateBlogVenueFields(ctx, blog.ID, model.BlogVenueFields{
		LinkedVenues: []string{"v1", "v2"},
		VenueRelationships: []model.VenueRelationship{
			{VenueID: "v1", RelationshipType: model.RelationshipFeatured, OrderInBlog: 1, VenueName: "Cafe"},
			{VenueID: "v2", RelationshipType: model.RelationshipMentioned, OrderInBlog: 2, VenueName: "Library"},
		},
		PrimaryVenue:    &primary,
		VenueCategories: []string{"cafe", "library"},
		LocationTags:    []string{"Austin"},
	})
	require.NoError(t, err)

	got, err := s.GetBlog(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2"}, got.LinkedVenues)
	require.Len(t, got.VenueRelationships, 2)
	assert.Equal(t, "Library", got.VenueRelationships[1].VenueName)
	require.NotNil(t, got.PrimaryVenue)
	assert.Equal(t, "v1", *got.PrimaryVenue)

	// replacing drops the old join rows
	err = s.UpdateBlogVenueFields(ctx, blog.ID, model.BlogVenueFields{
		LinkedVenues: []string{"v2"},
		VenueRelationships: []model.VenueRelationship{
			{VenueID: "v2", RelationshipType: model.RelationshipMentioned, OrderInBlog: 1},
		},
	})
	require.NoError(t, err)

	byV1, err := s.ListBlogsByVenue(ctx, "v1", false)
	require.NoError(t, err)
	assert.Empty(t, byV1)

	byV2, err := s.ListBlogsByVenue(ctx, "v2", true)
	require.NoError(t, err)
	require.Len(t, byV2, 1)
	assert.Equal(t, blog.ID, byV2[0].ID)
	assert.Nil(t, byV2[0].PrimaryVenue)
}

func TestGormStore_UpdateBlogVenueFieldsDuplicateVenue(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	blog := newBlog(t, s, model.BlogStatusPublished, time.Now())
	err := s.UpdateBlogVenueFields(ctx, blog.ID, model.BlogVenueFields{
		LinkedVenues: []string{"v1", "v2", "v1"},
		VenueRelationships: []model.VenueRelationship{
			{VenueID: "v1", RelationshipType: model.RelationshipFeatured, OrderInBlog: 1},
			{VenueID: "v2", RelationshipType: model.RelationshipMentioned, OrderInBlog: 2},
			{VenueID: "v1", RelationshipType: model.RelationshipCompared, OrderInBlog: 3},
		},
	})
	require.NoError(t, err)

	var rows []*model.BlogVenue
	require.NoError(t, tester.TestDB().Where("blog_id = ?", blog.ID).Order("order_in_blog").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "v1", rows[0].VenueID)
	assert.Equal(t, model.RelationshipFeatured, rows[0].RelationshipType)
	assert.Equal(t, "v2", rows[1].VenueID)
}

func TestGormStore_UpdateBlogVenueFieldsMissingBlog(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	err := s.UpdateBlogVenueFields(context.TODO(), uuid.New().String(), model.BlogVenueFields{})
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestGormStore_ListPublishedBlogsByVenues(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	venue := uuid.New().String()
	now := time.Now()

	older := newBlog(t, s, model.BlogStatusPublished, now.Add(-2*time.Hour))
	newer := newBlog(t, s, model.BlogStatusPublished, now.Add(-time.Hour))
	draft := newBlog(t, s, model.BlogStatusDraft, now)

	for _, b := range []*model.Blog{older, newer, draft} {
		require.NoError(t, s.UpdateBlogVenueFields(ctx, b.ID, model.BlogVenueFields{
			LinkedVenues:       []string{venue},
			VenueRelationships: []model.VenueRelationship{{VenueID: venue, OrderInBlog: 1}},
		}))
	}

	blogs, err := s.ListPublishedBlogsByVenues(ctx, []string{venue, "other"}, 10)
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, newer.ID, blogs[0].ID)
	assert.Equal(t, older.ID, blogs[1].ID)

	blogs, err = s.ListPublishedBlogsByVenues(ctx, []string{venue}, 1)
	require.NoError(t, err)
	assert.Len(t, blogs, 1)

	blogs, err = s.ListPublishedBlogsByVenues(ctx, nil, 1)
	require.NoError(t, err)
	assert.Empty(t, blogs)
}

func TestGormStore_BlogsByVenueTieBreak(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	venue := uuid.New().String()
	created := time.Now().Add(-time.Hour).Truncate(time.Second)

	a := newBlog(t, s, model.BlogStatusPublished, created)
	b := newBlog(t, s, model.BlogStatusPublished, created)
	for _, blog := range []*model.Blog{a, b} {
		require.NoError(t, s.UpdateBlogVenueFields(ctx, blog.ID, model.BlogVenueFields{
			LinkedVenues:       []string{venue},
			VenueRelationships: []model.VenueRelationship{{VenueID: venue, OrderInBlog: 1}},
		}))
	}
	want := []string{max(a.ID, b.ID), min(a.ID, b.ID)}

	for range 3 {
		byVenue, err := s.ListBlogsByVenue(ctx, venue, true)
		require.NoError(t, err)
		require.Len(t, byVenue, 2)
		assert.Equal(t, want, []string{byVenue[0].ID, byVenue[1].ID})

		published, err := s.ListPublishedBlogsByVenues(ctx, []string{venue}, 10)
		require.NoError(t, err)
		require.Len(t, published, 2)
		assert.Equal(t, want, []string{published[0].ID, published[1].ID})
	}
}

func TestGormStore_DeleteBlog(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	venue := uuid.New().String()

	blog := newBlog(t, s, model.BlogStatusPublished, time.Now())
	require.NoError(t, s.UpdateBlogVenueFields(ctx, blog.ID, model.BlogVenueFields{
		LinkedVenues:       []string{venue},
		VenueRelationships: []model.VenueRelationship{{VenueID: venue, OrderInBlog: 1}},
	}))

	require.NoError(t, s.DeleteBlog(ctx, blog.ID))

	_, err := s.GetBlog(ctx, blog.ID)
	assert.ErrorIs(t, err, ErrBlogNotFound)

	blogs, err := s.ListBlogsByVenue(ctx, venue, false)
	require.NoError(t, err)
	assert.Empty(t, blogs)

	assert.ErrorIs(t, s.DeleteBlog(ctx, blog.ID), ErrBlogNotFound)
}

func TestGormStore_IncrementViewCounts(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	blog := newBlog(t, s, model.BlogStatusPublished, time.Now())
	require.NoError(t, s.IncrementViewCounts(ctx, map[string]int64{blog.ID: 3}))
	require.NoError(t, s.IncrementViewCounts(ctx, map[string]int64{blog.ID: 2}))

	got, err := s.GetBlog(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ViewCount)
}

func TestGormStore_Venues(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	category := uuid.New().String()
	start := time.Now().Add(-time.Minute)

	a := &model.Venue{ID: uuid.New().String(), Name: "B Cafe", Category: category, Photos: []string{"a.jpg"}}
	b := &model.Venue{ID: uuid.New().String(), Name: "A Cafe", Category: category}
	require.NoError(t, s.CreateVenue(ctx, a))
	require.NoError(t, s.CreateVenue(ctx, b))

	venues, err := s.ListVenuesByCategory(ctx, category, 5)
	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, "A Cafe", venues[0].Name)

	got, err := s.GetVenue(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", got.PrimaryPhoto())

	updated, err := s.ListVenuesUpdatedSince(ctx, start)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(updated), 2)

	require.NoError(t, s.DeleteVenue(ctx, a.ID))
	_, err = s.GetVenue(ctx, a.ID)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
