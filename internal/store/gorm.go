package store

import (
	"context"
	"errors"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/thirdplace/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreateBlog(ctx context.Context, blog *model.Blog) error {
	return g.db.WithContext(ctx).Create(blog).Error
}

func (g *GormStore) GetBlog(ctx context.Context, id string) (*model.Blog, error) {
	var blog model.Blog
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&blog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlogNotFound
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (g *GormStore) ListBlogs(ctx context.Context, opts ListBlogsOptions) ([]*model.Blog, int64, error) {
	query := g.db.WithContext(ctx).Model(&model.Blog{})
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.Category != "" {
		query = query.Where("category = ?", opts.Category)
	}
	if opts.AuthorUID != "" {
		query = query.Where("author_uid = ?", opts.AuthorUID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc").Offset(opts.Offset)
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var blogs []*model.Blog
	err := query.Find(&blogs).Error
	return blogs, total, err
}

func (g *GormStore) UpdateBlog(ctx context.Context, blog *model.Blog) error {
	return g.db.WithContext(ctx).Save(blog).Error
}

// DeleteBlog soft deletes the blog and erases its venue rows so it no longer
// shows up in venue queries.
func (g *GormStore) DeleteBlog(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&model.BlogVenue{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&model.Blog{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBlogNotFound
		}
		return nil
	})
}

// UpdateBlogVenueFields writes the venue fields and the join rows in one
// transaction. A failure leaves the previous relationship set in place.
func (g *GormStore) UpdateBlogVenueFields(ctx context.Context, id string, fields model.BlogVenueFields) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		blog := &model.Blog{ID: id}
		blog.SetVenueFields(fields)

		res := tx.Model(blog).
			Select("linked_venues", "venue_relationships", "primary_venue", "venue_categories", "location_tags").
			Updates(blog)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBlogNotFound
		}

		if err := tx.Where("blog_id = ?", id).Delete(&model.BlogVenue{}).Error; err != nil {
			return err
		}

		if len(fields.VenueRelationships) == 0 {
			return nil
		}

		rows := make([]*model.BlogVenue, 0, len(fields.VenueRelationships))
		linked := mapset.NewThreadUnsafeSet[string]()
		for _, rel := range fields.VenueRelationships {
			if !linked.Add(rel.VenueID) {
				continue
			}
			rows = append(rows, &model.BlogVenue{
				BlogID:           id,
				VenueID:          rel.VenueID,
				RelationshipType: rel.RelationshipType,
				OrderInBlog:      rel.OrderInBlog,
			})
		}

		logrus.Debugf("linking blog %s to %d venues", id, len(rows))
		return tx.Create(&rows).Error
	})
}

func (g *GormStore) ListBlogsByVenue(ctx context.Context, venueID string, publishedOnly bool) ([]*model.Blog, error) {
	query := g.db.WithContext(ctx).
		Where("id IN (?)", g.db.Model(&model.BlogVenue{}).Select("blog_id").Where("venue_id = ?", venueID))
	if publishedOnly {
		query = query.Where("status = ?", model.BlogStatusPublished)
	}

	var blogs []*model.Blog
	err := query.Order("created_at desc").Order("id desc").Find(&blogs).Error
	return blogs, err
}

func (g *GormStore) ListPublishedBlogsByVenues(ctx context.Context, venueIDs []string, limit int) ([]*model.Blog, error) {
	if len(venueIDs) == 0 {
		return nil, nil
	}

	query := g.db.WithContext(ctx).
		Where("id IN (?)", g.db.Model(&model.BlogVenue{}).Select("blog_id").Where("venue_id IN ?", venueIDs)).
		Where("status = ?", model.BlogStatusPublished).
		Order("created_at desc").
		Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var blogs []*model.Blog
	err := query.Find(&blogs).Error
	return blogs, err
}

func (g *GormStore) IncrementViewCounts(ctx context.Context, counts map[string]int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, n := range counts {
			err := tx.Model(&model.Blog{}).
				Where("id = ?", id).
				UpdateColumn("view_count", gorm.Expr("view_count + ?", n)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *GormStore) CreateVenue(ctx context.Context, venue *model.Venue) error {
	return g.db.WithContext(ctx).Create(venue).Error
}

func (g *GormStore) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	var venue model.Venue
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&venue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (g *GormStore) UpdateVenue(ctx context.Context, venue *model.Venue) error {
	return g.db.WithContext(ctx).Save(venue).Error
}

func (g *GormStore) DeleteVenue(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Venue{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVenueNotFound
	}
	return nil
}

func (g *GormStore) ListVenues(ctx context.Context, limit int) ([]*model.Venue, error) {
	query := g.db.WithContext(ctx).Order("name")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var venues []*model.Venue
	err := query.Find(&venues).Error
	return venues, err
}

func (g *GormStore) ListVenuesByCategory(ctx context.Context, category string, limit int) ([]*model.Venue, error) {
	query := g.db.WithContext(ctx).Where("category = ?", category).Order("name")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var venues []*model.Venue
	err := query.Find(&venues).Error
	return venues, err
}

func (g *GormStore) ListVenuesUpdatedSince(ctx context.Context, since time.Time) ([]*model.Venue, error) {
	var venues []*model.Venue
	err := g.db.WithContext(ctx).Where("updated_at > ?", since).Order("updated_at").Find(&venues).Error
	return venues, err
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
