package codec

import (
	"bytes"
	"image"
	"image/jpeg"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
)

func randomImage(w, h int, seed int64) *imgbuf.Image {
	img := imgbuf.New(w, h, 3)
	r := rand.New(rand.NewSource(seed))
	r.Read(img.Pixels)
	return img
}

func TestPNGEncodeDecodeRoundTrip(t *testing.T) {
	img := randomImage(40, 30, 1)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, FormatPNG))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Width, decoded.Width)
	assert.Equal(t, img.Height, decoded.Height)
	assert.Equal(t, img.Pixels, decoded.Pixels)
}

func TestBMPEncodeDecodeRoundTrip(t *testing.T) {
	img := randomImage(20, 15, 2)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, FormatBMP))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Width, decoded.Width)
	assert.Equal(t, img.Height, decoded.Height)
	assert.Equal(t, img.Pixels, decoded.Pixels)
}

func TestJPEGEncodeIsRefused(t *testing.T) {
	img := randomImage(8, 8, 3)
	var buf bytes.Buffer
	err := Encode(&buf, img, FormatJPEG)
	require.Error(t, err)
	assert.True(t, imgerr.Is(err, imgerr.InputInvalid))
	assert.Equal(t, 0, buf.Len())
}

func TestJPEGDecodeIsAccepted(t *testing.T) {
	raster := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			raster.Set(x, y, image.NewUniform(image.Black).At(0, 0))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, raster, nil))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, decoded.Width)
	assert.Equal(t, 16, decoded.Height)
	assert.Equal(t, 3, decoded.Channels)
}

func TestFormatFromExtension(t *testing.T) {
	assert.Equal(t, FormatBMP, FormatFromExtension("bmp"))
	assert.Equal(t, FormatJPEG, FormatFromExtension("jpg"))
	assert.Equal(t, FormatJPEG, FormatFromExtension("jpeg"))
	assert.Equal(t, FormatPNG, FormatFromExtension("png"))
	assert.Equal(t, FormatPNG, FormatFromExtension("unknown"))
}

func TestEncodeRejectsNonThreeChannel(t *testing.T) {
	img := imgbuf.New(4, 4, 1)
	var buf bytes.Buffer
	err := Encode(&buf, img, FormatPNG)
	require.Error(t, err)
	assert.True(t, imgerr.Is(err, imgerr.InputInvalid))
}
