package service

import (
	v1 "github.com/emrgen/thirdplace/apis/v1"
	"github.com/emrgen/thirdplace/internal/category"
	"github.com/emrgen/thirdplace/internal/editor"
	"github.com/emrgen/thirdplace/internal/linker"
	"github.com/emrgen/thirdplace/internal/model"
)

func toBlog(blog *model.Blog, withContent bool) *v1.Blog {
	out := &v1.Blog{
		Id:                 blog.ID,
		Title:              blog.Title,
		Excerpt:            blog.Excerpt,
		Category:           blog.Category,
		Tags:               nonNil(blog.Tags),
		AuthorUid:          blog.AuthorUID,
		Status:             string(blog.Status),
		FeaturedImage:      blog.FeaturedImage,
		ViewCount:          blog.ViewCount,
		WordCount:          blog.WordCount,
		ReadTime:           blog.ReadTime,
		LinkedVenues:       nonNil(blog.LinkedVenues),
		VenueRelationships: toRelationships(blog.VenueRelationships),
		PrimaryVenue:       blog.PrimaryVenue,
		VenueCategories:    nonNil(blog.VenueCategories),
		LocationTags:       nonNil(blog.LocationTags),
		PublishedAt:        blog.PublishedAt,
		CreatedAt:          blog.CreatedAt,
		UpdatedAt:          blog.UpdatedAt,
	}
	if withContent {
		out.Content = blog.Markdown
	}
	return out
}

func toBlogs(blogs []*model.Blog) []*v1.Blog {
	out := make([]*v1.Blog, 0, len(blogs))
	for _, blog := range blogs {
		out = append(out, toBlog(blog, false))
	}
	return out
}

func toRelationships(rels []model.VenueRelationship) []*v1.VenueRelationship {
	out := make([]*v1.VenueRelationship, 0, len(rels))
	for _, rel := range rels {
		out = append(out, &v1.VenueRelationship{
			VenueId:          rel.VenueID,
			RelationshipType: string(rel.RelationshipType),
			ContextInBlog:    rel.ContextInBlog,
			OrderInBlog:      rel.OrderInBlog,
			VenueName:        rel.VenueName,
			VenueCategory:    rel.VenueCategory,
			VenueCity:        rel.VenueCity,
			VenuePhoto:       rel.VenuePhoto,
			CachedAt:         rel.CachedAt,
		})
	}
	return out
}

func toVenue(venue *model.Venue) *v1.Venue {
	return &v1.Venue{
		Id:          venue.ID,
		Name:        venue.Name,
		Description: venue.Description,
		Category:    venue.Category,
		Address:     venue.Address,
		City:        venue.City,
		Latitude:    venue.Latitude,
		Longitude:   venue.Longitude,
		Photos:      nonNil(venue.Photos),
		OwnerUid:    venue.OwnerUID,
		CreatedAt:   venue.CreatedAt,
		UpdatedAt:   venue.UpdatedAt,
	}
}

func toVenues(venues []*model.Venue) []*v1.Venue {
	out := make([]*v1.Venue, 0, len(venues))
	for _, venue := range venues {
		out = append(out, toVenue(venue))
	}
	return out
}

func toVenuesInBlog(venues []*linker.VenueInBlog) []*v1.VenueInBlog {
	out := make([]*v1.VenueInBlog, 0, len(venues))
	for _, v := range venues {
		out = append(out, &v1.VenueInBlog{
			Venue:            toVenue(v.Venue),
			RelationshipType: string(v.RelationshipType),
			ContextInBlog:    v.ContextInBlog,
			OrderInBlog:      v.OrderInBlog,
		})
	}
	return out
}

func toCategory(c *category.Category) *v1.Category {
	return &v1.Category{Id: c.ID, Name: c.Name, Icon: c.Icon}
}

func toWordCount(wc editor.WordCountStatus) *v1.WordCount {
	return &v1.WordCount{Count: wc.Count, Max: wc.Max, Exceeded: wc.Exceeded}
}

func toLinkInputs(links []*v1.VenueLink) []linker.LinkInput {
	out := make([]linker.LinkInput, 0, len(links))
	for _, link := range links {
		if link == nil {
			continue
		}
		out = append(out, linker.LinkInput{
			VenueID:          link.VenueId,
			RelationshipType: model.ParseRelationshipType(link.RelationshipType),
			ContextInBlog:    link.ContextInBlog,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
