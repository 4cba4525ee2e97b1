// Package uploads stores post images on the local filesystem and validates
// them before anything touches disk.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxImageSize is the upload cap in bytes.
const MaxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

var (
	// ErrImageTooLarge is returned for uploads over MaxImageSize
	ErrImageTooLarge = errors.New("file size exceeds the maximum allowed size of 5MB")
	// ErrInvalidImageType is returned for anything but JPEG/JPG/PNG
	ErrInvalidImageType = errors.New("invalid file type, only JPEG, JPG and PNG images are allowed")
)

// ImageStore writes validated images under a base directory and hands back
// the relative URL stored on post records.
type ImageStore struct {
	baseDir string
}

// NewImageStore creates an ImageStore rooted at baseDir
func NewImageStore(baseDir string) *ImageStore {
	return &ImageStore{baseDir: baseDir}
}

// Validate checks the upload's size and declared content type
func Validate(fh *multipart.FileHeader) error {
	if fh.Size > MaxImageSize {
		return ErrImageTooLarge
	}
	if !allowedImageTypes[fh.Header.Get("Content-Type")] {
		return ErrInvalidImageType
	}
	return nil
}

// SavePostImage validates the upload, writes it under <base>/posts with a
// unique filename, and returns the relative URL referencing it.
func (s *ImageStore) SavePostImage(fh *multipart.FileHeader) (string, error) {
	if err := Validate(fh); err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("image-%d-%d%s", time.Now().UnixNano(), rand.Intn(1_000_000_000), strings.ToLower(filepath.Ext(fh.Filename)))

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/posts/" + name, nil
}
