package linker

import (
	"context"
	"slices"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/thirdplace/internal/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// GetVenuesInBlog re-fetches every venue the blog links, sorted by the
// authored order. Venues that fail to load are left out.
func (l *Linker) GetVenuesInBlog(ctx context.Context, blogID string) []*VenueInBlog {
	blog, err := l.blogs.GetBlog(ctx, blogID)
	if err != nil {
		logrus.Errorf("get venues in blog %s: %v", blogID, err)
		return []*VenueInBlog{}
	}

	ids := make([]string, len(blog.VenueRelationships))
	for i, rel := range blog.VenueRelationships {
		ids[i] = rel.VenueID
	}
	venues := l.fetchVenues(ctx, ids)

	result := make([]*VenueInBlog, 0, len(ids))
	for i, rel := range blog.VenueRelationships {
		if venues[i] == nil {
			continue
		}
		result = append(result, &VenueInBlog{
			Venue:            venues[i],
			RelationshipType: rel.RelationshipType,
			ContextInBlog:    rel.ContextInBlog,
			OrderInBlog:      rel.OrderInBlog,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OrderInBlog < result[j].OrderInBlog
	})
	return result
}

// GetBlogsAboutVenue returns published blogs linking the venue, newest first.
// A count of zero or less means no limit.
func (l *Linker) GetBlogsAboutVenue(ctx context.Context, venueID string, count int, filter *Filter) []*model.Blog {
	blogs, err := l.blogs.ListBlogsByVenue(ctx, venueID, true)
	if err != nil {
		logrus.Errorf("get blogs about venue %s: %v", venueID, err)
		return []*model.Blog{}
	}

	result := make([]*model.Blog, 0, len(blogs))
	for _, blog := range blogs {
		if !blog.Published() || !slices.Contains(blog.LinkedVenues, venueID) {
			continue
		}
		if filter != nil && filter.RelationshipType != "" && !hasRelationship(blog, venueID, filter.RelationshipType) {
			continue
		}
		result = append(result, blog)
	}

	sortNewestFirst(result)
	return capBlogs(result, count)
}

// GetRelatedBlogs returns published blogs sharing at least one venue with
// venueIDs, never including excludeBlogID.
func (l *Linker) GetRelatedBlogs(ctx context.Context, excludeBlogID string, venueIDs []string, count int) []*model.Blog {
	if len(venueIDs) == 0 || count <= 0 {
		return []*model.Blog{}
	}

	// one extra in case the excluded blog is among the newest
	blogs, err := l.blogs.ListPublishedBlogsByVenues(ctx, venueIDs, count+1)
	if err != nil {
		logrus.Errorf("get related blogs for %s: %v", excludeBlogID, err)
		return []*model.Blog{}
	}

	wanted := mapset.NewThreadUnsafeSet(venueIDs...)
	result := make([]*model.Blog, 0, len(blogs))
	for _, blog := range blogs {
		if blog.ID == excludeBlogID || !blog.Published() {
			continue
		}
		if !sharesVenue(wanted, blog.LinkedVenues) {
			continue
		}
		result = append(result, blog)
	}

	sortNewestFirst(result)
	return capBlogs(result, count)
}

// GetVenueRecommendations suggests venues from up to three of the blog's
// categories that the blog does not already link.
func (l *Linker) GetVenueRecommendations(ctx context.Context, blogID string) []*model.Venue {
	blog, err := l.blogs.GetBlog(ctx, blogID)
	if err != nil {
		logrus.Errorf("get venue recommendations for %s: %v", blogID, err)
		return []*model.Venue{}
	}

	categories := blog.VenueCategories
	if len(categories) > recommendCategories {
		categories = categories[:recommendCategories]
	}

	perCategory := make([][]*model.Venue, len(categories))
	var g errgroup.Group
	for i, category := range categories {
		g.Go(func() error {
			venues, err := l.venues.ListVenuesByCategory(ctx, category, recommendPerCategory)
			if err != nil {
				logrus.Warnf("list venues in category %s: %v", category, err)
				return nil
			}
			perCategory[i] = venues
			return nil
		})
	}
	_ = g.Wait()

	seen := mapset.NewThreadUnsafeSet(blog.LinkedVenues...)
	result := make([]*model.Venue, 0, recommendLimit)
	for _, venues := range perCategory {
		for _, venue := range venues {
			if len(result) == recommendLimit {
				return result
			}
			if !seen.Add(venue.ID) {
				continue
			}
			result = append(result, venue)
		}
	}

	return result
}

func hasRelationship(blog *model.Blog, venueID string, kind model.RelationshipType) bool {
	for _, rel := range blog.VenueRelationships {
		if rel.VenueID == venueID && rel.RelationshipType == kind {
			return true
		}
	}
	return false
}

func sharesVenue(wanted mapset.Set[string], linked []string) bool {
	for _, id := range linked {
		if wanted.Contains(id) {
			return true
		}
	}
	return false
}

// sortNewestFirst keeps the store order for equal creation times.
func sortNewestFirst(blogs []*model.Blog) {
	sort.SliceStable(blogs, func(i, j int) bool {
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})
}

func capBlogs(blogs []*model.Blog, count int) []*model.Blog {
	if count > 0 && len(blogs) > count {
		return blogs[:count]
	}
	return blogs
}
