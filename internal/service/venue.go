package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	v1 "github.com/emrgen/thirdplace/apis/v1"
	"github.com/emrgen/thirdplace/internal/cache"
	"github.com/emrgen/thirdplace/internal/category"
	"github.com/emrgen/thirdplace/internal/linker"
	"github.com/emrgen/thirdplace/internal/model"
	"github.com/emrgen/thirdplace/internal/queue"
	"github.com/emrgen/thirdplace/internal/store"
	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
)

const (
	defaultVenueLimit  = 50
	defaultSearchLimit = 10
)

var (
	_ v1.VenueServiceServer = (*VenueService)(nil)
)

// NewVenueService creates a new VenueService.
func NewVenueService(store store.Store, venueCache cache.VenueCache, queue queue.VenueQueue, linker *linker.Linker) *VenueService {
	return &VenueService{
		store:  store,
		cache:  venueCache,
		queue:  queue,
		linker: linker,
	}
}

// VenueService manages venues. Updates invalidate the venue cache and
// publish an event so blogs refresh their cached copy.
type VenueService struct {
	store  store.Store
	cache  cache.VenueCache
	queue  queue.VenueQueue
	linker *linker.Linker
	v1.UnimplementedVenueServiceServer
}

func (v *VenueService) CreateVenue(ctx context.Context, request *v1.CreateVenueRequest) (*v1.VenueResponse, error) {
	venue := &model.Venue{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(request.Name),
		Description: request.Description,
		Category:    request.Category,
		Address:     request.Address,
		City:        strings.TrimSpace(request.City),
		Latitude:    request.Latitude,
		Longitude:   request.Longitude,
		Photos:      request.Photos,
		OwnerUID:    request.OwnerUid,
	}
	if err := validateVenue(venue); err != nil {
		return nil, grpcError(err)
	}

	if err := v.store.CreateVenue(ctx, venue); err != nil {
		return nil, grpcError(err)
	}

	logrus.Infof("created venue %s (%s)", venue.ID, venue.Name)
	return &v1.VenueResponse{Venue: toVenue(venue)}, nil
}

func (v *VenueService) GetVenue(ctx context.Context, request *v1.GetVenueRequest) (*v1.VenueResponse, error) {
	if request.Id == "" {
		return nil, grpcError(ErrMissingID)
	}

	venue, err := v.store.GetVenue(ctx, request.Id)
	if err != nil {
		return nil, grpcError(err)
	}

	return &v1.VenueResponse{Venue: toVenue(venue)}, nil
}

// UpdateVenue saves the set fields. A failed event publish is logged; the
// relationship sweep picks the change up later.
func (v *VenueService) UpdateVenue(ctx context.Context, request *v1.UpdateVenueRequest) (*v1.VenueResponse, error) {
	if request.Id == "" {
		return nil, grpcError(ErrMissingID)
	}

	venue, err := v.store.GetVenue(ctx, request.Id)
	if err != nil {
		return nil, grpcError(err)
	}

	if request.Name != nil {
		venue.Name = strings.TrimSpace(*request.Name)
	}
	if request.Description != nil {
		venue.Description = *request.Description
	}
	if request.Category != nil {
		venue.Category = *request.Category
	}
	if request.Address != nil {
		venue.Address = *request.Address
	}
	if request.City != nil {
		venue.City = strings.TrimSpace(*request.City)
	}
	if request.Latitude != nil {
		venue.Latitude = *request.Latitude
	}
	if request.Longitude != nil {
		venue.Longitude = *request.Longitude
	}
	if request.Photos != nil {
		venue.Photos = request.Photos
	}
	if err := validateVenue(venue); err != nil {
		return nil, grpcError(err)
	}

	if err := v.store.UpdateVenue(ctx, venue); err != nil {
		return nil, grpcError(err)
	}

	if err := v.cache.DeleteVenue(ctx, venue.ID); err != nil {
		logrus.Warnf("invalidate venue %s: %v", venue.ID, err)
	}

	event := &queue.VenueEvent{VenueID: venue.ID, UpdatedAt: time.Now()}
	if err := v.queue.PublishVenueUpdated(ctx, event); err != nil {
		logrus.Warnf("publish venue %s update: %v", venue.ID, err)
	}

	return &v1.VenueResponse{Venue: toVenue(venue)}, nil
}

// DeleteVenue removes a venue. Blogs keep their cached copy until they are
// relinked; fresh reads skip the missing venue.
func (v *VenueService) DeleteVenue(ctx context.Context, request *v1.DeleteVenueRequest) (*v1.DeleteVenueResponse, error) {
	if request.Id == "" {
		return nil, grpcError(ErrMissingID)
	}

	if err := v.store.DeleteVenue(ctx, request.Id); err != nil {
		return nil, grpcError(err)
	}

	if err := v.cache.DeleteVenue(ctx, request.Id); err != nil {
		logrus.Warnf("invalidate venue %s: %v", request.Id, err)
	}

	return &v1.DeleteVenueResponse{}, nil
}

func (v *VenueService) ListVenues(ctx context.Context, request *v1.ListVenuesRequest) (*v1.ListVenuesResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultVenueLimit
	}

	var (
		venues []*model.Venue
		err    error
	)
	if request.Category != "" {
		venues, err = v.store.ListVenuesByCategory(ctx, request.Category, limit)
	} else {
		venues, err = v.store.ListVenues(ctx, limit)
	}
	if err != nil {
		return nil, grpcError(err)
	}

	return &v1.ListVenuesResponse{Venues: toVenues(venues)}, nil
}

// SearchVenues ranks venues by fuzzy match on name, category and city.
func (v *VenueService) SearchVenues(ctx context.Context, request *v1.SearchVenuesRequest) (*v1.ListVenuesResponse, error) {
	query := strings.TrimSpace(request.Query)
	if query == "" {
		return nil, grpcError(fmt.Errorf("%w: query is required", ErrInvalidVenue))
	}

	limit := request.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	venues, err := v.store.ListVenues(ctx, 0)
	if err != nil {
		return nil, grpcError(err)
	}

	matches := fuzzy.FindFrom(query, venueSource(venues))
	result := make([]*model.Venue, 0, min(limit, len(matches)))
	for _, match := range matches {
		if len(result) == limit {
			break
		}
		result = append(result, venues[match.Index])
	}

	return &v1.ListVenuesResponse{Venues: toVenues(result)}, nil
}

// RefreshVenueRelationships pushes the venue's current fields into every
// blog that caches it.
func (v *VenueService) RefreshVenueRelationships(ctx context.Context, request *v1.RefreshVenueRelationshipsRequest) (*v1.RefreshVenueRelationshipsResponse, error) {
	if request.VenueId == "" {
		return nil, grpcError(ErrMissingID)
	}

	venue, err := v.store.GetVenue(ctx, request.VenueId)
	if err != nil {
		return nil, grpcError(err)
	}

	n, err := v.linker.UpdateVenueInBlogRelationships(ctx, venue)
	if err != nil {
		return nil, grpcError(err)
	}

	return &v1.RefreshVenueRelationshipsResponse{UpdatedBlogs: n}, nil
}

func (v *VenueService) ListCategories(_ context.Context, _ *v1.ListCategoriesRequest) (*v1.ListCategoriesResponse, error) {
	all := category.All()
	out := make([]*v1.Category, 0, len(all))
	for i := range all {
		out = append(out, toCategory(&all[i]))
	}
	return &v1.ListCategoriesResponse{Categories: out}, nil
}

func validateVenue(venue *model.Venue) error {
	if venue.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidVenue)
	}
	c := category.GetCategoryByID(venue.Category)
	if c == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, venue.Category)
	}
	venue.Category = c.ID
	return nil
}

// venueSource exposes venues to fuzzy matching.
type venueSource []*model.Venue

func (s venueSource) String(i int) string {
	return s[i].Name + " " + s[i].Category + " " + s[i].City
}

func (s venueSource) Len() int {
	return len(s)
}
