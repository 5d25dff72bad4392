package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	v1 "github.com/emrgen/thirdplace/apis/v1"
	"github.com/emrgen/thirdplace/internal/cache"
	"github.com/emrgen/thirdplace/internal/compress"
	"github.com/emrgen/thirdplace/internal/linker"
	"github.com/emrgen/thirdplace/internal/model"
	"github.com/emrgen/thirdplace/internal/queue"
	"github.com/emrgen/thirdplace/internal/store"
	"github.com/emrgen/thirdplace/internal/tester"
	"github.com/emrgen/thirdplace/internal/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ServiceSuite struct {
	suite.Suite
	ctx    context.Context
	views  *cache.MemoryViewCounter
	queue  *queue.MemoryVenueQueue
	blogs  *BlogService
	venues *VenueService
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	st := store.NewGormStore(tester.TestDB())
	venueCache := cache.NewMemoryVenueCache()
	l := linker.New(st, cache.NewCachedVenueLookup(st, venueCache), st)

	s.views = cache.NewMemoryViewCounter()
	s.queue = queue.NewMemoryVenueQueue()
	images := upload.NewLocalUploader(s.T().TempDir(), "http://localhost/uploads")
	s.blogs = NewBlogService(st, l, compress.NewGZip(), s.views, images, 10)
	s.venues = NewVenueService(st, venueCache, s.queue, l)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) createVenue(name, category, city string) *v1.Venue {
	res, err := s.venues.CreateVenue(s.ctx, &v1.CreateVenueRequest{Name: name, Category: category, City: city})
	s.Require().NoError(err)
	return res.Venue
}

func (s *ServiceSuite) TestCreateAndGetBlog() {
	content := "# Corner Cafe\n\nHello **world**, this is *great*!"
	created, err := s.blogs.CreateBlog(s.ctx, &v1.CreateBlogRequest{Title: " Corner Cafe ", Content: content})
	s.Require().NoError(err)

	blog := created.Blog
	s.Equal("Corner Cafe", blog.Title)
	s.Equal("draft", blog.Status)
	s.Equal(7, blog.WordCount)
	s.Equal(1, blog.ReadTime)
	s.Equal("Corner Cafe Hello world, this is great!", blog.Excerpt)
	s.Nil(blog.PublishedAt)
	s.Equal(content, blog.Content)

	got, err := s.blogs.GetBlog(s.ctx, &v1.GetBlogRequest{Id: blog.Id})
	s.Require().NoError(err)
	s.Equal(content, got.Blog.Content)
}

func (s *ServiceSuite) TestWordLimitIsAWarning() {
	content := strings.Repeat("word ", 12)
	created, err := s.blogs.CreateBlog(s.ctx, &v1.CreateBlogRequest{Title: "Long", Content: content})
	s.Require().NoError(err)
	s.True(created.WordCount.Exceeded)
	s.Equal(12, created.WordCount.Count)
	s.Equal(10, created.WordCount.Max)
}

func (s *ServiceSuite) TestCreateBlogValidation() {
	_, err := s.blogs.CreateBlog(s.ctx, &v1.CreateBlogRequest{Title: "  "})
	s.Equal(codes.InvalidArgument, status.Code(err))

	_, err = s.blogs.GetBlog(s.ctx, &v1.GetBlogRequest{Id: "missing"})
	s.Equal(codes.NotFound, status.Code(err))
}

type failingLinkStore struct {
	*store.GormStore
}

func (f failingLinkStore) UpdateBlogVenueFields(context.Context, string, model.BlogVenueFields) error {
	return errors.New("link write failed")
}

func (s *ServiceSuite) TestCreateBlogLinkFailureLeavesNoBlog() {
	st := store.NewGormStore(tester.TestDB())
	cafe := s.createVenue("Link Fail Cafe", "cafe", "Austin")
	l := linker.New(failingLinkStore{st}, cache.NewCachedVenueLookup(st, cache.NewMemoryVenueCache()), st)
	blogs := NewBlogService(st, l, compress.NewGZip(), s.views, nil, 10)

	title := "unlinked " + cafe.Id
	_, err := blogs.CreateBlog(s.ctx, &v1.CreateBlogRequest{
		Title:   title,
		Content: "body",
		Venues:  []*v1.VenueLink{{VenueId: cafe.Id}},
	})
	s.Equal(codes.Internal, status.Code(err))

	var count int64
	s.Require().NoError(tester.TestDB().Model(&model.Blog{}).Where("title = ?", title).Count(&count).Error)
	s.Zero(count)
}

func (s *ServiceSuite) TestUpdateAndPublish() {
	created, err := s.blogs.CreateBlog(s.ctx, &v1.CreateBlogRequest{Title: "Draft", Content: "one two"})
	s.Require().NoError(err)

	content := "one two three"
	updated, err := s.blogs.UpdateBlog(s.ctx, &v1.UpdateBlogRequest{Id: created.Blog.Id, Content: &content})
	s.Require().NoError(err)
	s.Equal(3, updated.Blog.WordCount)
	s.Equal("Draft", updated.Blog.Title)

	published, err := s.blogs.PublishBlog(s.ctx, &v1.PublishBlogRequest{Id: created.Blog.Id})
	s.Require().NoError(err)
	s.Equal("published", published.Blog.Status)
	s.Require().NotNil(published.Blog.PublishedAt)

	again, err := s.blogs.PublishBlog(s.ctx, &v1.PublishBlogRequest{Id: created.Blog.Id})
	s.Require().NoError(err)
	s.WithinDuration(*published.Blog.PublishedAt, *again.Blog.PublishedAt, time.Second)
}

func (s *ServiceSuite) TestLinkAndRelated() {
	cafe := s.createVenue("Bean There", "cafe", "Austin")
	library := s.createVenue("Central Library", "library", "Austin")

	blogA, err := s.blogs.CreateBlog(s.ctx, &v1.CreateBlogRequest{
		Title:   "A",
		Content: "about cafes",
		Publish: true,
		Venues: []*v1.VenueLink{
			{VenueId: cafe.Id, RelationshipType: "featured"},
			{VenueId: "does-not-exist"},
			{VenueId: library.Id, ContextInBlog: "quiet"},
		},
	})
	s.Require().NoError(err)
	s.Equal([]string{cafe.Id, library.Id}, blogA.Blog.LinkedVenues)
	s.Equal(cafe.Id, *blogA.Blog.PrimaryVenue)
	s.Equal(3, blogA.Blog.VenueRelationships[1].OrderInBlog)

	blogB, err := s.blogs.CreateBlog(s.ctx, &v1.CreateBlogRequest{
		Title:   "B",
		Content: "more cafes",
		Publish: true,
		Venues:  []*v1.VenueLink{{VenueId: cafe.Id}},
	})
	s.Require().NoError(err)

	related, err := s.blogs.GetRelatedBlogs(s.ctx, &v1.GetRelatedBlogsRequest{BlogId: blogA.Blog.Id})
	s.Require().NoError(err)
	s.Require().Len(related.Blogs, 1)
	s.Equal(blogB.Blog.Id, related.Blogs[0].Id)

	about, err := s.blogs.GetBlogsAboutVenue(s.ctx, &v1.GetBlogsAboutVenueRequest{VenueId: cafe.Id, RelationshipType: "featured"})
	s.Require().NoError(err)
	s.Require().Len(about.Blogs, 1)
	s.Equal(blogA.Blog.Id, about.Blogs[0].Id)

	inBlog, err := s.blogs.GetVenuesInBlog(s.ctx, &v1.GetVenuesInBlogRequest{BlogId: blogA.Blog.Id})
	s.Require().NoError(err)
	s.Require().Len(inBlog.Venues, 2)
	s.Equal("quiet", inBlog.Venues[1].ContextInBlog)

	recs, err := s.blogs.GetVenueRecommendations(s.ctx, &v1.GetVenueRecommendationsRequest{BlogId: blogA.Blog.Id})
	s.Require().NoError(err)
	for _, venue := range recs.Venues {
		s.NotContains(blogA.Blog.LinkedVenues, venue.Id)
	}
}

func (s *ServiceSuite) TestVenueUpdatePublishesAndRefreshes() {
	cafe := s.createVenue("Old Name", "cafe", "Austin")
	blog, err := s.blogs.CreateBlog(s.ctx, &v1.CreateBlogRequest{
		Title:  "Cafe review",
		Venues: []*v1.VenueLink{{VenueId: cafe.Id}},
	})
	s.Require().NoError(err)

	events, err := s.queue.SubscribeVenueUpdates(s.ctx)
	s.Require().NoError(err)

	name := "New Name"
	_, err = s.venues.UpdateVenue(s.ctx, &v1.UpdateVenueRequest{Id: cafe.Id, Name: &name})
	s.Require().NoError(err)

	event := <-events
	s.Equal(cafe.Id, event.VenueID)

	refreshed, err := s.venues.RefreshVenueRelationships(s.ctx, &v1.RefreshVenueRelationshipsRequest{VenueId: cafe.Id})
	s.Require().NoError(err)
	s.Equal(1, refreshed.UpdatedBlogs)

	got, err := s.blogs.GetBlog(s.ctx, &v1.GetBlogRequest{Id: blog.Blog.Id})
	s.Require().NoError(err)
	s.Equal("New Name", got.Blog.VenueRelationships[0].VenueName)
}

func (s *ServiceSuite) TestVenueValidationAndSearch() {
	_, err := s.venues.CreateVenue(s.ctx, &v1.CreateVenueRequest{Name: "Nowhere", Category: "nightclub"})
	s.Equal(codes.InvalidArgument, status.Code(err))

	s.createVenue("Zephyr Reading Room", "library", "Boston")
	found, err := s.venues.SearchVenues(s.ctx, &v1.SearchVenuesRequest{Query: "Zephyr"})
	s.Require().NoError(err)
	s.Require().NotEmpty(found.Venues)
	s.Equal("Zephyr Reading Room", found.Venues[0].Name)

	_, err = s.venues.SearchVenues(s.ctx, &v1.SearchVenuesRequest{Query: " "})
	s.Equal(codes.InvalidArgument, status.Code(err))

	categories, err := s.venues.ListCategories(s.ctx, &v1.ListCategoriesRequest{})
	s.Require().NoError(err)
	s.NotEmpty(categories.Categories)
}

func (s *ServiceSuite) TestViewsAndDeleteWithImage() {
	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	uploaded, err := s.blogs.UploadImage(s.ctx, &v1.UploadImageRequest{Name: "cover.png", Data: buf.Bytes()})
	s.Require().NoError(err)

	created, err := s.blogs.CreateBlog(s.ctx, &v1.CreateBlogRequest{
		Title:         "With cover",
		Content:       "![cover](" + uploaded.Url + ")",
		FeaturedImage: uploaded.Url,
		Publish:       true,
	})
	s.Require().NoError(err)

	_, err = s.blogs.GetBlog(s.ctx, &v1.GetBlogRequest{Id: created.Blog.Id, CountView: true})
	s.Require().NoError(err)
	counts, err := s.views.Drain(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), counts[created.Blog.Id])

	_, err = s.blogs.DeleteBlog(s.ctx, &v1.DeleteBlogRequest{Id: created.Blog.Id})
	s.Require().NoError(err)

	_, err = s.blogs.GetBlog(s.ctx, &v1.GetBlogRequest{Id: created.Blog.Id})
	s.Equal(codes.NotFound, status.Code(err))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short text", excerpt("  short\n text "))

	long := strings.Repeat("venue ", 40)
	got := excerpt(long)
	require.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), excerptLength+3)
	assert.False(t, strings.Contains(got, "venu..."))
}
