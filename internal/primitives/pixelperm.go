package primitives

import (
	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/randkey"
)

// pixelPermPrimitive moves whole pixels (all channels together) according
// to a key-seeded permutation: out[perm[i]] <- in[i].
type pixelPermPrimitive struct{}

func (pixelPermPrimitive) Name() string { return NamePixelPerm }

func (pixelPermPrimitive) Encrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error) {
	total := in.Width * in.Height
	perm := randkey.Permutation(key, total)
	c := in.Channels

	out := imgbuf.New(in.Width, in.Height, c)
	for i := 0; i < total; i++ {
		src := i * c
		dst := perm[i] * c
		copy(out.Pixels[dst:dst+c], in.Pixels[src:src+c])
	}
	return out, checkDimensions(in, out)
}

func (pixelPermPrimitive) Decrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error) {
	total := in.Width * in.Height
	perm := randkey.Permutation(key, total)
	inverse := randkey.Invert(perm)
	c := in.Channels

	out := imgbuf.New(in.Width, in.Height, c)
	for i := 0; i < total; i++ {
		src := i * c
		dst := inverse[i] * c
		copy(out.Pixels[dst:dst+c], in.Pixels[src:src+c])
	}
	return out, checkDimensions(in, out)
}
