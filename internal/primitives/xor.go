package primitives

import (
	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
	"github.com/hidenseek-go/imgcrypt/internal/randkey"
)

// xorPrimitive is, despite its name, a key-seeded permutation of whole
// pixels - not a bitwise XOR. The name is part of the external interface
// (recipe strings, the decrypt-side recipe-recovery fallback) and must not
// change; see §9 DESIGN NOTES.
type xorPrimitive struct{}

func (xorPrimitive) Name() string { return NameXOR }

func (xorPrimitive) Encrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error) {
	if in.Channels != 3 {
		return nil, imgerr.New(imgerr.InputInvalid, "xor primitive requires 3-channel input, got %d", in.Channels)
	}
	total := in.Width * in.Height
	perm := randkey.Permutation(key, total)

	out := imgbuf.New(in.Width, in.Height, 3)
	for i := 0; i < total; i++ {
		src := perm[i] * 3
		dst := i * 3
		copy(out.Pixels[dst:dst+3], in.Pixels[src:src+3])
	}
	return out, checkDimensions(in, out)
}

func (xorPrimitive) Decrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error) {
	if in.Channels != 3 {
		return nil, imgerr.New(imgerr.InputInvalid, "xor primitive requires 3-channel input, got %d", in.Channels)
	}
	total := in.Width * in.Height
	perm := randkey.Permutation(key, total)

	out := imgbuf.New(in.Width, in.Height, 3)
	for i := 0; i < total; i++ {
		src := i * 3
		dst := perm[i] * 3
		copy(out.Pixels[dst:dst+3], in.Pixels[src:src+3])
	}
	return out, checkDimensions(in, out)
}
