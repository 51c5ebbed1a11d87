package lsb

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
)

func randomImage(w, h, c int, seed int64) *imgbuf.Image {
	img := imgbuf.New(w, h, c)
	r := rand.New(rand.NewSource(seed))
	r.Read(img.Pixels)
	return img
}

// TestHideExtractRoundTripS4 mirrors spec scenario S4: 256x256 RGB carrier,
// 1000-byte random payload, bits_per_channel=3.
func TestHideExtractRoundTripS4(t *testing.T) {
	carrier := randomImage(256, 256, 3, 1)
	payload := make([]byte, 1000)
	rand.New(rand.NewSource(2)).Read(payload)

	stego, err := HideData(carrier, payload, "x", 3)
	require.NoError(t, err)
	assert.Equal(t, carrier.Width, stego.Width)
	assert.Equal(t, carrier.Height, stego.Height)

	extracted, err := ExtractData(stego, "x", 3)
	require.NoError(t, err)
	assert.Equal(t, payload, extracted)
}

func TestHideExtractRoundTripAllBitDepths(t *testing.T) {
	for bits := 1; bits <= 4; bits++ {
		carrier := randomImage(64, 64, 3, int64(bits))
		payload := []byte("round trip payload for bit depth test")

		stego, err := HideData(carrier, payload, "pw", bits)
		require.NoError(t, err)
		extracted, err := ExtractData(stego, "pw", bits)
		require.NoError(t, err)
		assert.Equal(t, payload, extracted)
	}
}

func TestHideImageExtractImageRoundTrip(t *testing.T) {
	carrier := randomImage(128, 128, 3, 3)
	hidden := randomImage(16, 16, 3, 4)

	stego, err := HideImage(carrier, hidden, "pw", 2)
	require.NoError(t, err)
	extracted, err := ExtractImage(stego, "pw", 2)
	require.NoError(t, err)

	assert.Equal(t, hidden.Width, extracted.Width)
	assert.Equal(t, hidden.Height, extracted.Height)
	assert.Equal(t, hidden.Pixels, extracted.Pixels)
}

// TestCapacityGuardS6 mirrors spec scenario S6: a carrier too small for the
// payload must fail before any pixel is written.
func TestCapacityGuardS6(t *testing.T) {
	carrier := randomImage(10, 10, 3, 5) // 300 pixel bytes
	payload := make([]byte, 10000)

	orig := append([]byte(nil), carrier.Pixels...)
	_, err := HideData(carrier, payload, "x", 1)
	require.Error(t, err)
	assert.True(t, imgerr.Is(err, imgerr.InsufficientCapacity))
	assert.Equal(t, orig, carrier.Pixels, "carrier must be untouched on capacity failure")
}

func TestWrongPasswordFailsExtraction(t *testing.T) {
	carrier := randomImage(64, 64, 3, 6)
	stego, err := HideData(carrier, []byte("top secret"), "correct", 2)
	require.NoError(t, err)

	_, err = ExtractData(stego, "incorrect", 2)
	require.Error(t, err)
	assert.True(t, imgerr.Is(err, imgerr.ExtractionFailed))
}

func TestInvalidBitsPerChannelRejected(t *testing.T) {
	carrier := randomImage(8, 8, 3, 1)
	_, err := HideData(carrier, []byte("x"), "pw", 0)
	require.Error(t, err)
	assert.True(t, imgerr.Is(err, imgerr.InputInvalid))

	_, err = HideData(carrier, []byte("x"), "pw", 5)
	require.Error(t, err)
	assert.True(t, imgerr.Is(err, imgerr.InputInvalid))
}
