package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"

	// Decoders for the formats vendors ship
	_ "image/gif"
	_ "image/png"

	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ContentTypeJPEG is the type of every normalized image
const ContentTypeJPEG = "image/jpeg"

// IsImageContentType reports whether a response declared image content
func IsImageContentType(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "image")
}

// Normalize decodes an image, flattens any transparency onto white and
// re-encodes it as JPEG.
func Normalize(data []byte, quality int) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image %s has no pixels", format)
	}

	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(src, -bounds.Min.X, -bounds.Min.Y)

	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dc.Image(), &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return out.Bytes(), nil
}
