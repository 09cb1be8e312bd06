package imagex

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestToWebPDownscales(t *testing.T) {
	out, err := ToWebP(pngBytes(t, 200, 100), WebPOptions{MaxWidth: 50})
	require.NoError(t, err)
	assert.Contains(t, SniffContentType(out), "webp")

	img, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())
}

func TestToWebPKeepsSmallImages(t *testing.T) {
	out, err := ToWebP(pngBytes(t, 40, 30), WebPOptions{MaxWidth: 1600})
	require.NoError(t, err)

	img, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestDecodeRejectsText(t *testing.T) {
	_, err := Decode([]byte("<html><body>hi</body></html>"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = Decode(nil)
	assert.Error(t, err)
}
