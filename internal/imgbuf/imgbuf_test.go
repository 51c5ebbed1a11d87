package imgbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
)

func TestNewAndGetSet(t *testing.T) {
	img := New(4, 3, 3)
	require.Equal(t, 36, len(img.Pixels))

	img.Set(1, 1, 2, 0xAB)
	assert.Equal(t, byte(0xAB), img.Get(1, 1, 2))
	assert.Equal(t, byte(0), img.Get(0, 0, 0))
}

func TestCloneIsIndependent(t *testing.T) {
	img := New(2, 2, 3)
	img.SetMeta("k", "v")
	clone := img.Clone()

	clone.Set(0, 0, 0, 42)
	assert.Equal(t, byte(0), img.Get(0, 0, 0))
	assert.Equal(t, byte(42), clone.Get(0, 0, 0))

	v, ok := clone.Meta("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestCheckInvariant(t *testing.T) {
	img := New(2, 2, 3)
	assert.NoError(t, img.CheckInvariant())

	img.Pixels = img.Pixels[:len(img.Pixels)-1]
	err := img.CheckInvariant()
	require.Error(t, err)
	assert.True(t, imgerr.Is(err, imgerr.DimensionDrift))
}

func TestMetaOrdering(t *testing.T) {
	img := New(1, 1, 1)
	img.SetMeta("z", "1")
	img.SetMeta("a", "2")
	img.SetMeta("m", "3")

	assert.Equal(t, []string{"z", "a", "m"}, img.MetaKeysInsertionOrder())
	assert.Equal(t, []string{"a", "m", "z"}, img.MetaKeysSorted())

	img.RemoveMeta("a")
	_, ok := img.Meta("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"z", "m"}, img.MetaKeysInsertionOrder())
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	img := New(3, 2, 3)
	for i := range img.Pixels {
		img.Pixels[i] = byte(i)
	}

	buf := img.Serialize()
	out, err := Deserialize(buf)
	require.NoError(t, err)

	assert.Equal(t, img.Width, out.Width)
	assert.Equal(t, img.Height, out.Height)
	assert.Equal(t, img.Channels, out.Channels)
	assert.Equal(t, img.Pixels, out.Pixels)
}

func TestDeserializeRejectsShortBuffer(t *testing.T) {
	_, err := Deserialize([]byte{1, 2, 3})
	require.Error(t, err)
	assert.True(t, imgerr.Is(err, imgerr.InputInvalid))
}

func TestDeserializeRejectsTruncatedPixels(t *testing.T) {
	img := New(4, 4, 3)
	buf := img.Serialize()
	_, err := Deserialize(buf[:len(buf)-1])
	require.Error(t, err)
	assert.True(t, imgerr.Is(err, imgerr.InputInvalid))
}
