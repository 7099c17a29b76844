// Package media stores uploaded product images on Cloudinary or on local
// disk below MEDIA_DIR.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Asset is a stored image.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Uploader persists an image read from r. name is the client file name and
// only its extension is kept.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (Asset, error)
	Backend() string
}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

func IsImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, imgExt := range imageExtensions {
		if ext == imgExt {
			return true
		}
	}
	return false
}

var ErrNotImage = errors.New("media: only png, jpg, gif and webp images are accepted")

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(url, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Backend() string { return "cloudinary" }

func (c *Cloudinary) Upload(ctx context.Context, name string, r io.Reader) (Asset, error) {
	if !IsImageFile(name) {
		return Asset{}, ErrNotImage
	}
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{Folder: c.folder})
	if err != nil {
		return Asset{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return Asset{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return Asset{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Local writes images into dir; they are served under prefix.
type Local struct {
	dir    string
	prefix string
}

func NewLocal(dir, prefix string) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("media dir: %w", err)
	}
	return &Local{dir: abs, prefix: strings.TrimSuffix(prefix, "/")}, nil
}

func (l *Local) Backend() string { return "local" }

// Dir is the absolute directory files are written to.
func (l *Local) Dir() string { return l.dir }

func (l *Local) Upload(_ context.Context, name string, r io.Reader) (Asset, error) {
	if !IsImageFile(name) {
		return Asset{}, ErrNotImage
	}
	file := uuid.NewString() + strings.ToLower(filepath.Ext(name))
	f, err := os.OpenFile(filepath.Join(l.dir, file), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Asset{}, err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return Asset{}, err
	}
	if err := f.Close(); err != nil {
		return Asset{}, err
	}
	return Asset{URL: l.prefix + "/" + file, PublicID: file}, nil
}

// SafePath joins a request path onto root, refusing traversal, encoded
// dots, NUL bytes and absolute paths.
func SafePath(root, p string) (string, bool) {
	lower := strings.ToLower(p)
	if strings.Contains(lower, "..") || strings.Contains(lower, "%2e") || strings.Contains(lower, "\x00") {
		return "", false
	}
	clean := filepath.Clean(p)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", false
	}
	return filepath.Join(root, clean), true
}
