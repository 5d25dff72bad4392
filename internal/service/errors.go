package service

import (
	"errors"

	"github.com/emrgen/thirdplace/internal/compress"
	"github.com/emrgen/thirdplace/internal/store"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrMissingID is returned when a request does not name its target.
	ErrMissingID = errors.New("id is required")
	// ErrInvalidBlog is returned when a blog fails validation.
	ErrInvalidBlog = errors.New("invalid blog")
	// ErrInvalidVenue is returned when a venue fails validation.
	ErrInvalidVenue = errors.New("invalid venue")
	// ErrUnknownCategory is returned when a venue category is not registered.
	ErrUnknownCategory = errors.New("unknown venue category")
	// ErrUploadUnavailable is returned when no image store is configured.
	ErrUploadUnavailable = errors.New("image upload is not configured")
)

// grpcError maps domain errors onto gRPC status codes.
func grpcError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrBlogNotFound), errors.Is(err, store.ErrVenueNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrMissingID),
		errors.Is(err, ErrInvalidBlog),
		errors.Is(err, ErrInvalidVenue),
		errors.Is(err, ErrUnknownCategory):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrUploadUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, compress.ErrUnknownCompression):
		logrus.Errorf("stored content is unreadable: %v", err)
		return status.Error(codes.DataLoss, err.Error())
	default:
		logrus.Errorf("request failed: %v", err)
		return status.Error(codes.Internal, err.Error())
	}
}
