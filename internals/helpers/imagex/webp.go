// Package imagex converts uploaded screenshots to compact webp files.
package imagex

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

type WebPOptions struct {
	MaxWidth int     // 0 = keep size
	Quality  float32 // 0 = 85
}

var ErrUnsupportedImage = errors.New("unsupported image type")

// SniffContentType looks at the first 512 bytes like net/http does.
func SniffContentType(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return http.DetectContentType(head)
}

// Decode reads jpeg/png/gif (EXIF orientation applied) or webp.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	ct := SniffContentType(data)
	switch {
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(data))
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "png"), strings.Contains(ct, "gif"):
		return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, ct)
	}
}

// ToWebP decodes data, shrinks it to MaxWidth (never enlarges), and encodes lossy webp.
func ToWebP(data []byte, opt WebPOptions) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if opt.MaxWidth > 0 && img.Bounds().Dx() > opt.MaxWidth {
		img = imaging.Resize(img, opt.MaxWidth, 0, imaging.Lanczos)
	}
	q := opt.Quality
	if q <= 0 {
		q = 85
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
