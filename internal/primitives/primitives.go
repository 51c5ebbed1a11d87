// Package primitives implements the registered image-to-image ciphers (the
// six core primitives plus addbit) and the name->primitive registry the recipe engine dispatches through.
// Every primitive is a pure function of (input image, key); the registry
// itself is a read-mostly map populated once at package init and never
// mutated afterward (§5 shared resources).
package primitives

import (
	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
)

// Primitive is the common interface every registered cipher satisfies.
type Primitive interface {
	// Name returns the canonical registry name.
	Name() string
	Encrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error)
	Decrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error)
}

// Canonical primitive names, used both for recipe serialization and for
// alias resolution on lookup.
const (
	NameXOR         = "xor"
	NameRotN        = "rotn"
	NameBitNot      = "bitnot"
	NameChannelSwap = "channelswap"
	NamePixelPerm   = "pixelperm"
	NameAddBit      = "addbit"
	NameAES256      = "aes256"
)

// aliases maps every historical spelling to its canonical name (§9 Alias
// reconciliation).
var aliases = map[string]string{
	NameXOR:             NameXOR,
	NameRotN:            NameRotN,
	NameBitNot:          NameBitNot,
	"bitwise_not":       NameBitNot,
	NameChannelSwap:     NameChannelSwap,
	"swap_channels":     NameChannelSwap,
	NamePixelPerm:       NamePixelPerm,
	"pixel_permutation": NamePixelPerm,
	NameAddBit:          NameAddBit,
	NameAES256:          NameAES256,
}

// registry holds one singleton instance per canonical name, populated at
// package init and read-only thereafter.
var registry = map[string]Primitive{
	NameXOR:         xorPrimitive{},
	NameRotN:        rotNPrimitive{},
	NameBitNot:      bitNotPrimitive{},
	NameChannelSwap: channelSwapPrimitive{},
	NamePixelPerm:   pixelPermPrimitive{},
	NameAddBit:      addBitPrimitive{},
	NameAES256:      aes256Primitive{},
}

// Canonicalize resolves any registered alias to its canonical name. The ok
// result is false for unknown names.
func Canonicalize(name string) (string, bool) {
	canon, ok := aliases[name]
	return canon, ok
}

// Lookup resolves name (canonical or alias) to its Primitive.
func Lookup(name string) (Primitive, error) {
	canon, ok := Canonicalize(name)
	if !ok {
		return nil, imgerr.New(imgerr.RecipeInvalid, "unknown primitive %q", name)
	}
	return registry[canon], nil
}

// checkDimensions verifies a primitive's invariant: output dimensions must
// equal input dimensions (§4.C, Testable Property 4). A mismatch is always
// a primitive bug, never a user error.
func checkDimensions(in, out *imgbuf.Image) error {
	if out.Width != in.Width || out.Height != in.Height || out.Channels != in.Channels {
		return imgerr.New(imgerr.DimensionDrift,
			"output %dx%dx%d does not match input %dx%dx%d",
			out.Width, out.Height, out.Channels, in.Width, in.Height, in.Channels)
	}
	if len(out.Pixels) != len(in.Pixels) {
		return imgerr.New(imgerr.DimensionDrift,
			"output pixel buffer length %d does not match input length %d", len(out.Pixels), len(in.Pixels))
	}
	return nil
}
