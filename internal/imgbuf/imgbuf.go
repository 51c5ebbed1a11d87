// Package imgbuf implements the flat, row-major pixel buffer that every
// cipher primitive and stego engine operates on. It intentionally knows
// nothing about PNG/JPEG/BMP; that belongs to internal/codec.
package imgbuf

import (
	"encoding/binary"
	"sort"

	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
)

// Image is a channel-interleaved, row-major pixel buffer with an ordered
// string metadata map. Channels is 1 (grayscale/text-as-image) or 3 (RGB).
type Image struct {
	Width, Height, Channels int
	Pixels                  []byte

	metaKeys []string
	metaVals map[string]string
}

// New allocates a zero-filled image of the given dimensions.
func New(width, height, channels int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pixels:   make([]byte, width*height*channels),
		metaVals: make(map[string]string),
	}
}

// FromPixels wraps an existing pixel slice without copying. The caller must
// ensure len(pixels) == width*height*channels.
func FromPixels(width, height, channels int, pixels []byte) *Image {
	img := New(width, height, channels)
	img.Pixels = pixels
	return img
}

// Clone returns a deep copy, including metadata.
func (img *Image) Clone() *Image {
	out := New(img.Width, img.Height, img.Channels)
	copy(out.Pixels, img.Pixels)
	for _, k := range img.metaKeys {
		out.SetMeta(k, img.metaVals[k])
	}
	return out
}

func (img *Image) index(x, y, c int) int {
	return ((y*img.Width)+x)*img.Channels + c
}

// Get returns the byte at (x, y, c).
func (img *Image) Get(x, y, c int) byte {
	return img.Pixels[img.index(x, y, c)]
}

// Set writes the byte at (x, y, c).
func (img *Image) Set(x, y, c int, v byte) {
	img.Pixels[img.index(x, y, c)] = v
}

// CheckInvariant verifies len(Pixels) == Width*Height*Channels, the
// invariant every transform must preserve. A violation is always a bug in
// the primitive that just ran, never a user-triggerable condition.
func (img *Image) CheckInvariant() error {
	want := img.Width * img.Height * img.Channels
	if len(img.Pixels) != want {
		return imgerr.New(imgerr.DimensionDrift,
			"pixel buffer length %d does not match width*height*channels %d", len(img.Pixels), want)
	}
	return nil
}

// SetMeta inserts or updates a metadata key, preserving first-insertion
// order for keys not yet seen.
func (img *Image) SetMeta(key, value string) {
	if img.metaVals == nil {
		img.metaVals = make(map[string]string)
	}
	if _, ok := img.metaVals[key]; !ok {
		img.metaKeys = append(img.metaKeys, key)
	}
	img.metaVals[key] = value
}

// Meta returns the value for key and whether it was present.
func (img *Image) Meta(key string) (string, bool) {
	v, ok := img.metaVals[key]
	return v, ok
}

// RemoveMeta deletes a metadata key, if present.
func (img *Image) RemoveMeta(key string) {
	if _, ok := img.metaVals[key]; !ok {
		return
	}
	delete(img.metaVals, key)
	for i, k := range img.metaKeys {
		if k == key {
			img.metaKeys = append(img.metaKeys[:i], img.metaKeys[i+1:]...)
			break
		}
	}
}

// ClearMeta removes all metadata.
func (img *Image) ClearMeta() {
	img.metaKeys = nil
	img.metaVals = make(map[string]string)
}

// MetaKeysSorted returns metadata keys in sorted order, used wherever
// serialization needs a deterministic key ordering (§9 design note).
func (img *Image) MetaKeysSorted() []string {
	keys := make([]string, len(img.metaKeys))
	copy(keys, img.metaKeys)
	sort.Strings(keys)
	return keys
}

// MetaKeysInsertionOrder returns metadata keys in first-insertion order.
func (img *Image) MetaKeysInsertionOrder() []string {
	keys := make([]string, len(img.metaKeys))
	copy(keys, img.metaKeys)
	return keys
}

// Serialize encodes the image as [w u32 LE][h u32 LE][c u32 LE][pixels...].
// Metadata is not part of the wire form; it travels out of band.
func (img *Image) Serialize() []byte {
	buf := make([]byte, 12+len(img.Pixels))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(img.Width))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(img.Height))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(img.Channels))
	copy(buf[12:], img.Pixels)
	return buf
}

// Deserialize parses the wire form produced by Serialize. It fails if buf
// is too short to hold the header, or if the declared dimensions exceed
// the remaining bytes.
func Deserialize(buf []byte) (*Image, error) {
	if len(buf) < 12 {
		return nil, imgerr.New(imgerr.InputInvalid, "serialized image shorter than 12-byte header (%d bytes)", len(buf))
	}
	w := int(binary.LittleEndian.Uint32(buf[0:4]))
	h := int(binary.LittleEndian.Uint32(buf[4:8]))
	c := int(binary.LittleEndian.Uint32(buf[8:12]))
	need := w * h * c
	if need < 0 || len(buf)-12 < need {
		return nil, imgerr.New(imgerr.InputInvalid, "serialized image declares %d pixel bytes but only %d remain", need, len(buf)-12)
	}
	pixels := make([]byte, need)
	copy(pixels, buf[12:12+need])
	return FromPixels(w, h, c, pixels), nil
}
