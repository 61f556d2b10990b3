// Package imagefile loads the image a user selects for analysis.
package imagefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/five82/foodlens/internal/foodlens"
)

// ErrNotImage is returned when a file's content is not an image.
var ErrNotImage = errors.New("not an image")

// Extensions lists the file extensions offered by the picker.
var Extensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp",
	".tif", ".tiff", ".heic", ".heif", ".avif",
}

// Image is the selected file held in memory.
type Image struct {
	Path string
	Name string
	MIME string
	Data []byte
}

// Open reads path and checks that its sniffed content type is image/*.
func Open(path string) (Image, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Image{}, fmt.Errorf("open image: path is empty")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return Image{}, fmt.Errorf("resolve image path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	name := filepath.Base(abs)
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%s is empty: %w", name, ErrNotImage)
	}

	detected := baseMIME(mimetype.Detect(data).String())
	if !IsImageMIME(detected) {
		return Image{}, fmt.Errorf("%s is %s: %w", name, detected, ErrNotImage)
	}

	return Image{
		Path: abs,
		Name: name,
		MIME: detected,
		Data: data,
	}, nil
}

// HasImageExtension reports whether name ends in one of Extensions.
func HasImageExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// IsImageMIME reports whether a media type is in the image/* family.
func IsImageMIME(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(baseMIME(mediaType)), "image/")
}

// IsZero reports whether no image is held.
func (img Image) IsZero() bool {
	return len(img.Data) == 0
}

// Size returns the payload size in bytes.
func (img Image) Size() int {
	return len(img.Data)
}

// Upload converts the image into the multipart part sent for analysis.
func (img Image) Upload() foodlens.Upload {
	return foodlens.Upload{
		Name:        img.Name,
		ContentType: img.MIME,
		Data:        img.Data,
	}
}

func baseMIME(value string) string {
	if i := strings.IndexByte(value, ';'); i >= 0 {
		value = value[:i]
	}
	return strings.TrimSpace(value)
}
