// Package upload stores editor images on the local filesystem.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
)

var (
	ErrTooLarge      = errors.New("image too large")
	ErrInvalidFolder = errors.New("invalid upload folder")
	ErrForeignURL    = errors.New("url is not served by this uploader")
)

// LocalUploader re-encodes images as JPEG no wider than 800px and writes
// them under dir. Files are served from baseURL.
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(dir, baseURL string) *LocalUploader {
	return &LocalUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload reports progress at 0, 30, 70 and 100 percent.
func (u *LocalUploader) Upload(ctx context.Context, blob io.Reader, name, folder string, onProgress func(percent int)) (string, error) {
	progress := func(p int) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	folder, err := cleanFolder(folder)
	if err != nil {
		return "", err
	}

	progress(0)
	raw, err := io.ReadAll(io.LimitReader(blob, maxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(raw) > maxUploadSize {
		return "", ErrTooLarge
	}
	progress(30)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := processImage(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	progress(70)

	dir := filepath.Join(u.dir, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.New().String() + ".jpg"
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	progress(100)

	logrus.Infof("stored image %q as %s/%s", name, folder, filename)
	return u.baseURL + "/" + path.Join(folder, filename), nil
}

// Delete removes a file previously returned by Upload. Missing files are
// not an error.
func (u *LocalUploader) Delete(_ context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, u.baseURL+"/")
	if !ok {
		return ErrForeignURL
	}

	rel, err := cleanFolder(rel)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(u.dir, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func processImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

func cleanFolder(folder string) (string, error) {
	cleaned := path.Clean("/" + folder)[1:]
	if cleaned == "" || strings.Contains(folder, "..") {
		return "", ErrInvalidFolder
	}
	return cleaned, nil
}
