package assetstore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	_ "golang.org/x/image/webp"
)

// ErrUnsupportedContent is returned when a file's actual encoding is not
// accepted by the target profile, whatever its declared type was.
var ErrUnsupportedContent = errors.New("unsupported image content")

// prepared is a normalized image ready for upload.
type prepared struct {
	data        []byte
	contentType string
	ext         string
}

// prepare reads the file at path, checks its sniffed encoding against the
// profile and shrinks it into the profile's bounding box. Images already
// inside the box are passed through untouched.
func prepare(path string, profile Profile) (*prepared, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	mime := mimetype.Detect(raw)
	ext := strings.TrimPrefix(mime.Extension(), ".")
	if !profile.allows(ext) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, mime.String())
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= profile.MaxWidth && bounds.Dy() <= profile.MaxHeight {
		return &prepared{data: raw, contentType: mime.String(), ext: ext}, nil
	}

	resized := imaging.Fit(img, profile.MaxWidth, profile.MaxHeight, imaging.Lanczos)

	// webp has no encoder in the image stack, so resized webp becomes png.
	// gif is re-encoded from its first frame.
	var (
		format      imaging.Format
		contentType string
	)
	switch ext {
	case "jpg", "jpeg":
		format, contentType, ext = imaging.JPEG, "image/jpeg", "jpg"
	case "gif":
		format, contentType = imaging.GIF, "image/gif"
	default:
		format, contentType, ext = imaging.PNG, "image/png", "png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return &prepared{data: buf.Bytes(), contentType: contentType, ext: ext}, nil
}
