package linker

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/thirdplace/internal/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// LinkBlogToVenues replaces the blog's whole relationship set. A venue listed
// more than once keeps only its first entry. Inputs whose venue cannot be
// found are dropped; the rest keep their authored position.
func (l *Linker) LinkBlogToVenues(ctx context.Context, blogID string, inputs []LinkInput) (model.BlogVenueFields, error) {
	inputs = uniqueInputs(inputs)
	venues := l.fetchVenues(ctx, inputIDs(inputs))
	cachedAt := l.now()

	relationships := make([]model.VenueRelationship, 0, len(inputs))
	for i, in := range inputs {
		venue := venues[i]
		if venue == nil {
			continue
		}

		relationships = append(relationships, model.VenueRelationship{
			VenueID:          in.VenueID,
			RelationshipType: model.ParseRelationshipType(string(in.RelationshipType)),
			ContextInBlog:    in.ContextInBlog,
			OrderInBlog:      i + 1,
			VenueName:        venue.Name,
			VenueCategory:    venue.Category,
			VenueCity:        venue.City,
			VenuePhoto:       venue.PrimaryPhoto(),
			CachedAt:         cachedAt,
		})
	}
	fields := deriveFields(relationships)

	if err := l.blogs.UpdateBlogVenueFields(ctx, blogID, fields); err != nil {
		return model.BlogVenueFields{}, fmt.Errorf("link blog %s: %w", blogID, err)
	}

	logrus.Infof("linked blog %s to %d of %d venues", blogID, len(relationships), len(inputs))
	return fields, nil
}

// UpdateVenueInBlogRelationships rewrites the cached venue fields in every
// blog that references the venue. Relationship type, context and order are
// left untouched. It returns the number of blogs rewritten.
func (l *Linker) UpdateVenueInBlogRelationships(ctx context.Context, venue *model.Venue) (int, error) {
	blogs, err := l.blogs.ListBlogsByVenue(ctx, venue.ID, false)
	if err != nil {
		return 0, fmt.Errorf("list blogs for venue %s: %w", venue.ID, err)
	}

	cachedAt := l.now()
	updated := 0
	for _, blog := range blogs {
		changed := false
		relationships := make([]model.VenueRelationship, len(blog.VenueRelationships))
		copy(relationships, blog.VenueRelationships)
		for i := range relationships {
			rel := &relationships[i]
			if rel.VenueID != venue.ID {
				continue
			}
			rel.VenueName = venue.Name
			rel.VenueCategory = venue.Category
			rel.VenueCity = venue.City
			rel.VenuePhoto = venue.PrimaryPhoto()
			rel.CachedAt = cachedAt
			changed = true
		}
		if !changed {
			continue
		}

		fields := deriveFields(relationships)
		fields.PrimaryVenue = blog.PrimaryVenue
		if err := l.blogs.UpdateBlogVenueFields(ctx, blog.ID, fields); err != nil {
			return updated, fmt.Errorf("update venue %s in blog %s: %w", venue.ID, blog.ID, err)
		}
		updated++
	}

	logrus.Infof("refreshed venue %s in %d blogs", venue.ID, updated)
	return updated, nil
}

// fetchVenues looks the ids up concurrently. The result is index aligned with
// ids; a failed or missing lookup leaves a nil slot.
func (l *Linker) fetchVenues(ctx context.Context, ids []string) []*model.Venue {
	venues := make([]*model.Venue, len(ids))

	var g errgroup.Group
	g.SetLimit(lookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			venue, err := l.lookup.GetVenue(ctx, id)
			if err != nil {
				logrus.Warnf("venue lookup %s failed: %v", id, err)
				return nil
			}
			if venue == nil {
				logrus.Warnf("venue %s not found", id)
				return nil
			}
			venues[i] = venue
			return nil
		})
	}
	_ = g.Wait()

	return venues
}

// deriveFields computes the denormalized blog fields from an ordered
// relationship list.
func deriveFields(relationships []model.VenueRelationship) model.BlogVenueFields {
	fields := model.BlogVenueFields{
		LinkedVenues:       make([]string, 0, len(relationships)),
		VenueRelationships: relationships,
		VenueCategories:    []string{},
		LocationTags:       []string{},
	}

	categories := mapset.NewThreadUnsafeSet[string]()
	cities := mapset.NewThreadUnsafeSet[string]()
	for _, rel := range relationships {
		fields.LinkedVenues = append(fields.LinkedVenues, rel.VenueID)
		if rel.VenueCategory != "" && categories.Add(rel.VenueCategory) {
			fields.VenueCategories = append(fields.VenueCategories, rel.VenueCategory)
		}
		if rel.VenueCity != "" && cities.Add(rel.VenueCity) {
			fields.LocationTags = append(fields.LocationTags, rel.VenueCity)
		}
		if fields.PrimaryVenue == nil && rel.RelationshipType == model.RelationshipFeatured {
			id := rel.VenueID
			fields.PrimaryVenue = &id
		}
	}

	if fields.PrimaryVenue == nil && len(relationships) > 0 {
		id := relationships[0].VenueID
		fields.PrimaryVenue = &id
	}

	return fields
}

func uniqueInputs(inputs []LinkInput) []LinkInput {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]LinkInput, 0, len(inputs))
	for _, in := range inputs {
		if seen.Add(in.VenueID) {
			out = append(out, in)
		}
	}
	if len(out) < len(inputs) {
		logrus.Debugf("dropped %d duplicate venue links", len(inputs)-len(out))
	}
	return out
}

func inputIDs(inputs []LinkInput) []string {
	ids := make([]string, len(inputs))
	for i, in := range inputs {
		ids[i] = in.VenueID
	}
	return ids
}
