package app

import (
	"bytes"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/nfnt/resize"
)

const thumbnailSize = 300

// MakeThumbnail decodes the image bytes and produces a JPEG thumbnail
// bounded by 300x300. Formats the decoder does not know (webp, tiff, ...)
// come back as an error; callers treat that as "no thumbnail", not a
// failed upload.
func MakeThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	thumbnail := resize.Thumbnail(thumbnailSize, thumbnailSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumbnail, &jpeg.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
