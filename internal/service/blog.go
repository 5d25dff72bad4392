package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	v1 "github.com/emrgen/thirdplace/apis/v1"
	"github.com/emrgen/thirdplace/internal/cache"
	"github.com/emrgen/thirdplace/internal/compress"
	"github.com/emrgen/thirdplace/internal/editor"
	"github.com/emrgen/thirdplace/internal/linker"
	"github.com/emrgen/thirdplace/internal/markup"
	"github.com/emrgen/thirdplace/internal/model"
	"github.com/emrgen/thirdplace/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/blake3"
)

const (
	excerptLength       = 160
	defaultPageSize     = 20
	maxPageSize         = 100
	defaultRelatedCount = 4
	defaultVenueBlogs   = 10
	imageFolder         = "blog-images"
)

var (
	_ v1.BlogServiceServer = (*BlogService)(nil)
)

// ImageStore keeps uploaded blog images.
type ImageStore interface {
	Upload(ctx context.Context, blob io.Reader, name, folder string, onProgress func(percent int)) (string, error)
	Delete(ctx context.Context, url string) error
}

// NewBlogService creates a new BlogService. images may be nil when uploads
// are not configured.
func NewBlogService(store store.Store, linker *linker.Linker, compress compress.Compress, views cache.ViewCounter, images ImageStore, maxWords int) *BlogService {
	return &BlogService{
		store:    store,
		linker:   linker,
		compress: compress,
		views:    views,
		images:   images,
		maxWords: maxWords,
	}
}

// BlogService manages blogs and their venue relationships.
type BlogService struct {
	store    store.Store
	linker   *linker.Linker
	compress compress.Compress
	views    cache.ViewCounter
	images   ImageStore
	maxWords int
	v1.UnimplementedBlogServiceServer
}

// CreateBlog stores a new draft, links its venues and optionally publishes it.
// The blog is removed again when its venues cannot be linked.
func (b *BlogService) CreateBlog(ctx context.Context, request *v1.CreateBlogRequest) (*v1.BlogResponse, error) {
	title := strings.TrimSpace(request.Title)
	if title == "" {
		return nil, grpcError(fmt.Errorf("%w: title is required", ErrInvalidBlog))
	}

	blog := &model.Blog{
		ID:            uuid.New().String(),
		Title:         title,
		Category:      request.Category,
		Tags:          request.Tags,
		AuthorUID:     request.AuthorUid,
		FeaturedImage: request.FeaturedImage,
		Status:        model.BlogStatusDraft,
	}
	if request.Publish {
		publish(blog)
	}

	wc, err := b.setContent(blog, request.Content)
	if err != nil {
		return nil, grpcError(err)
	}

	if err := b.store.CreateBlog(ctx, blog); err != nil {
		return nil, grpcError(err)
	}

	if len(request.Venues) > 0 {
		fields, err := b.linker.LinkBlogToVenues(ctx, blog.ID, toLinkInputs(request.Venues))
		if err != nil {
			if derr := b.store.DeleteBlog(context.WithoutCancel(ctx), blog.ID); derr != nil {
				logrus.Errorf("remove unlinked blog %s: %v", blog.ID, derr)
			}
			return nil, grpcError(err)
		}
		blog.SetVenueFields(fields)
	}

	logrus.Infof("created blog %s (%s, %d words)", blog.ID, blog.Status, blog.WordCount)
	return &v1.BlogResponse{Blog: toBlog(blog, true), WordCount: toWordCount(wc)}, nil
}

// GetBlog returns a blog with its decoded content.
func (b *BlogService) GetBlog(ctx context.Context, request *v1.GetBlogRequest) (*v1.BlogResponse, error) {
	blog, err := b.loadBlog(ctx, request.Id)
	if err != nil {
		return nil, grpcError(err)
	}

	if request.CountView && blog.Published() {
		if err := b.views.IncrView(ctx, blog.ID); err != nil {
			logrus.Warnf("count view of blog %s: %v", blog.ID, err)
		}
	}

	return &v1.BlogResponse{Blog: toBlog(blog, true)}, nil
}

// UpdateBlog applies the set fields. Content that hashes the same as the
// stored content is not re-encoded.
func (b *BlogService) UpdateBlog(ctx context.Context, request *v1.UpdateBlogRequest) (*v1.BlogResponse, error) {
	blog, err := b.loadBlog(ctx, request.Id)
	if err != nil {
		return nil, grpcError(err)
	}

	if request.Title != nil {
		title := strings.TrimSpace(*request.Title)
		if title == "" {
			return nil, grpcError(fmt.Errorf("%w: title is required", ErrInvalidBlog))
		}
		blog.Title = title
	}
	if request.Category != nil {
		blog.Category = *request.Category
	}
	if request.Tags != nil {
		blog.Tags = request.Tags
	}
	if request.FeaturedImage != nil {
		blog.FeaturedImage = *request.FeaturedImage
	}

	var wc *v1.WordCount
	if request.Content != nil {
		status, err := b.setContent(blog, *request.Content)
		if err != nil {
			return nil, grpcError(err)
		}
		wc = toWordCount(status)
	}

	if err := b.store.UpdateBlog(ctx, blog); err != nil {
		return nil, grpcError(err)
	}

	if request.SetVenues {
		fields, err := b.linker.LinkBlogToVenues(ctx, blog.ID, toLinkInputs(request.Venues))
		if err != nil {
			return nil, grpcError(err)
		}
		blog.SetVenueFields(fields)
	}

	return &v1.BlogResponse{Blog: toBlog(blog, true), WordCount: wc}, nil
}

// PublishBlog marks a blog published. Publishing twice keeps the first
// publication time.
func (b *BlogService) PublishBlog(ctx context.Context, request *v1.PublishBlogRequest) (*v1.BlogResponse, error) {
	blog, err := b.loadBlog(ctx, request.Id)
	if err != nil {
		return nil, grpcError(err)
	}

	if !blog.Published() {
		publish(blog)
		if err := b.store.UpdateBlog(ctx, blog); err != nil {
			return nil, grpcError(err)
		}
		logrus.Infof("published blog %s", blog.ID)
	}

	return &v1.BlogResponse{Blog: toBlog(blog, true)}, nil
}

// DeleteBlog removes a blog and its featured image.
func (b *BlogService) DeleteBlog(ctx context.Context, request *v1.DeleteBlogRequest) (*v1.DeleteBlogResponse, error) {
	if request.Id == "" {
		return nil, grpcError(ErrMissingID)
	}

	blog, err := b.store.GetBlog(ctx, request.Id)
	if err != nil {
		return nil, grpcError(err)
	}

	if err := b.store.DeleteBlog(ctx, blog.ID); err != nil {
		return nil, grpcError(err)
	}

	if blog.FeaturedImage != "" && b.images != nil {
		if err := b.images.Delete(ctx, blog.FeaturedImage); err != nil {
			logrus.Warnf("delete featured image of blog %s: %v", blog.ID, err)
		}
	}

	logrus.Infof("deleted blog %s", blog.ID)
	return &v1.DeleteBlogResponse{}, nil
}

func (b *BlogService) ListBlogs(ctx context.Context, request *v1.ListBlogsRequest) (*v1.ListBlogsResponse, error) {
	size := request.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	size = min(size, maxPageSize)
	page := max(request.Page, 0)

	blogs, total, err := b.store.ListBlogs(ctx, store.ListBlogsOptions{
		Status:    model.BlogStatus(request.Status),
		Category:  request.Category,
		AuthorUID: request.AuthorUid,
		Offset:    page * size,
		Limit:     size,
	})
	if err != nil {
		return nil, grpcError(err)
	}

	return &v1.ListBlogsResponse{Blogs: toBlogs(blogs), Total: total}, nil
}

// LinkBlogToVenues replaces the blog's venue relationships.
func (b *BlogService) LinkBlogToVenues(ctx context.Context, request *v1.LinkBlogToVenuesRequest) (*v1.LinkBlogToVenuesResponse, error) {
	if request.BlogId == "" {
		return nil, grpcError(ErrMissingID)
	}

	fields, err := b.linker.LinkBlogToVenues(ctx, request.BlogId, toLinkInputs(request.Venues))
	if err != nil {
		return nil, grpcError(err)
	}

	return &v1.LinkBlogToVenuesResponse{
		LinkedVenues:       nonNil(fields.LinkedVenues),
		VenueRelationships: toRelationships(fields.VenueRelationships),
		PrimaryVenue:       fields.PrimaryVenue,
		VenueCategories:    nonNil(fields.VenueCategories),
		LocationTags:       nonNil(fields.LocationTags),
	}, nil
}

func (b *BlogService) GetVenuesInBlog(ctx context.Context, request *v1.GetVenuesInBlogRequest) (*v1.GetVenuesInBlogResponse, error) {
	venues := b.linker.GetVenuesInBlog(ctx, request.BlogId)
	return &v1.GetVenuesInBlogResponse{Venues: toVenuesInBlog(venues)}, nil
}

func (b *BlogService) GetBlogsAboutVenue(ctx context.Context, request *v1.GetBlogsAboutVenueRequest) (*v1.ListBlogsResponse, error) {
	if request.VenueId == "" {
		return nil, grpcError(ErrMissingID)
	}

	count := request.Count
	if count <= 0 {
		count = defaultVenueBlogs
	}

	var filter *linker.Filter
	if request.RelationshipType != "" {
		filter = &linker.Filter{RelationshipType: model.ParseRelationshipType(request.RelationshipType)}
	}

	blogs := b.linker.GetBlogsAboutVenue(ctx, request.VenueId, count, filter)
	return &v1.ListBlogsResponse{Blogs: toBlogs(blogs), Total: int64(len(blogs))}, nil
}

// GetRelatedBlogs defaults the venue set to the blog's own linked venues.
func (b *BlogService) GetRelatedBlogs(ctx context.Context, request *v1.GetRelatedBlogsRequest) (*v1.ListBlogsResponse, error) {
	count := request.Count
	if count <= 0 {
		count = defaultRelatedCount
	}

	venueIDs := request.VenueIds
	if len(venueIDs) == 0 && request.BlogId != "" {
		blog, err := b.store.GetBlog(ctx, request.BlogId)
		if err != nil {
			logrus.Errorf("get related blogs for %s: %v", request.BlogId, err)
			return &v1.ListBlogsResponse{Blogs: []*v1.Blog{}}, nil
		}
		venueIDs = blog.LinkedVenues
	}

	blogs := b.linker.GetRelatedBlogs(ctx, request.BlogId, venueIDs, count)
	return &v1.ListBlogsResponse{Blogs: toBlogs(blogs), Total: int64(len(blogs))}, nil
}

func (b *BlogService) GetVenueRecommendations(ctx context.Context, request *v1.GetVenueRecommendationsRequest) (*v1.ListVenuesResponse, error) {
	venues := b.linker.GetVenueRecommendations(ctx, request.BlogId)
	return &v1.ListVenuesResponse{Venues: toVenues(venues)}, nil
}

// UploadImage stores an image for use in blog content.
func (b *BlogService) UploadImage(ctx context.Context, request *v1.UploadImageRequest) (*v1.UploadImageResponse, error) {
	if b.images == nil {
		return nil, grpcError(ErrUploadUnavailable)
	}

	folder := request.Folder
	if folder == "" {
		folder = imageFolder
	}

	url, err := b.images.Upload(ctx, bytes.NewReader(request.Data), request.Name, folder, func(percent int) {
		logrus.Debugf("upload %s: %d%%", request.Name, percent)
	})
	if err != nil {
		return nil, grpcError(fmt.Errorf("%w: %w", ErrInvalidBlog, err))
	}

	return &v1.UploadImageResponse{Url: url}, nil
}

// loadBlog fetches a blog and decodes its content.
func (b *BlogService) loadBlog(ctx context.Context, id string) (*model.Blog, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	blog, err := b.store.GetBlog(ctx, id)
	if err != nil {
		return nil, err
	}

	codec, err := compress.ByName(blog.Compression)
	if err != nil {
		return nil, err
	}

	content, err := codec.Decode(blog.Content)
	if err != nil {
		return nil, fmt.Errorf("decode blog %s: %w", id, err)
	}
	blog.Markdown = string(content)

	return blog, nil
}

// setContent canonicalizes markdown through an editor session and fills the
// derived fields. A word count over the limit is reported, never rejected.
func (b *BlogService) setContent(blog *model.Blog, markdown string) (editor.WordCountStatus, error) {
	session := editor.New(markdown, editor.Options{MaxWords: b.maxWords})
	defer session.Close()

	canonical := session.SettleNow()
	wc := session.WordCount()
	if wc.Exceeded {
		logrus.Warnf("blog %s has %d words, over the %d word limit", blog.ID, wc.Count, wc.Max)
	}

	hash := contentHash(canonical)
	blog.Markdown = canonical
	if hash == blog.ContentHash {
		return wc, nil
	}

	data, err := b.compress.Encode([]byte(canonical))
	if err != nil {
		return wc, err
	}

	blog.Content = data
	blog.Compression = b.compress.Name()
	blog.ContentHash = hash
	blog.WordCount = wc.Count
	blog.ReadTime = markup.ReadTime(wc.Count)
	blog.Excerpt = excerpt(markup.PlainText(canonical))
	return wc, nil
}

func publish(blog *model.Blog) {
	blog.Status = model.BlogStatusPublished
	if blog.PublishedAt == nil {
		now := time.Now()
		blog.PublishedAt = &now
	}
}

func contentHash(markdown string) string {
	sum := blake3.Sum256([]byte(markdown))
	return hex.EncodeToString(sum[:])
}

// excerpt cuts plain text at a word boundary near excerptLength runes.
func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= excerptLength {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:excerptLength])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
