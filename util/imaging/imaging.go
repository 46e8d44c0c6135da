// Package imaging normalizes uploaded photos: phone shots come in sideways
// (EXIF orientation) and far larger than the catalog needs.
package imaging

import (
	"bytes"
	"io"

	"github.com/disintegration/imaging"
)

const (
	maxDimension = 800
	jpegQuality  = 85
)

// Normalize decodes an uploaded image, applies the EXIF orientation, bounds
// it to 800x800 and re-encodes as JPEG. Images already within bounds are
// still re-encoded so everything stored is a plain upright JPEG.
func Normalize(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
