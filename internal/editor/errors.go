package editor

import "errors"

var (
	// ErrLinkURLRequired is returned when a link is inserted without a url.
	ErrLinkURLRequired = errors.New("link url is required")
	// ErrLinkInHeading is returned when a link would replace heading text.
	ErrLinkInHeading = errors.New("links cannot be placed in a heading")
	// ErrImageURLRequired is returned when an image is inserted without a url.
	ErrImageURLRequired = errors.New("image url is required")
	// ErrInvalidHeadingLevel is returned for heading levels outside 1-3.
	ErrInvalidHeadingLevel = errors.New("heading level must be between 1 and 3")
	// ErrBlockNotFound is returned when a caption edit targets a missing image.
	ErrBlockNotFound = errors.New("image block not found")
	// ErrUploadFailed wraps every failure of the image upload flow.
	ErrUploadFailed = errors.New("image upload failed")
	// ErrUploadUnavailable is returned when no uploader or picker is configured.
	ErrUploadUnavailable = errors.New("image upload is not configured")
	// ErrPermissionDenied is returned when media library access is refused.
	ErrPermissionDenied = errors.New("media library permission denied")
	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("editor session is closed")
)
