package editor

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Uploader stores an image blob and returns its public url.
type Uploader interface {
	Upload(ctx context.Context, blob io.Reader, name, folder string, onProgress func(percent int)) (string, error)
}

// Asset is a media item picked by the user.
type Asset struct {
	Name string
	Body io.ReadCloser
}

// MediaPicker asks for media library access and lets the user pick an image.
// Pick returns nil when the user cancels.
type MediaPicker interface {
	RequestPermission(ctx context.Context) (bool, error)
	Pick(ctx context.Context) (*Asset, error)
}

// CaptionPrompt asks for an optional caption once the upload finished.
type CaptionPrompt interface {
	Caption(ctx context.Context, url string) (caption string, confirmed bool, err error)
}

// AddImage runs the upload flow: permission, pick, upload with progress,
// caption prompt, insert. Any failure leaves the document unchanged. It
// reports whether an image was inserted.
func (s *Session) AddImage(ctx context.Context) (bool, error) {
	if s.opts.Uploader == nil || s.opts.Picker == nil {
		return false, ErrUploadUnavailable
	}

	granted, err := s.opts.Picker.RequestPermission(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if !granted {
		return false, ErrPermissionDenied
	}

	asset, err := s.opts.Picker.Pick(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if asset == nil {
		return false, nil
	}
	defer asset.Body.Close()

	url, err := s.opts.Uploader.Upload(ctx, asset.Body, asset.Name, s.opts.UploadFolder, s.opts.OnProgress)
	if err != nil {
		logrus.Errorf("image upload failed: %v", err)
		return false, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	caption := ""
	if s.opts.Captions != nil {
		text, confirmed, err := s.opts.Captions.Caption(ctx, url)
		if err != nil {
			logrus.Warnf("caption prompt failed, inserting without caption: %v", err)
		} else if confirmed {
			caption = text
		}
	}

	if err := s.InsertImage(url, caption); err != nil {
		return false, err
	}
	return true, nil
}
