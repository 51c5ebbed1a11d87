package primitives

import (
	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/randkey"
)

// rotNPrimitive rotates every byte left (encrypt) or right (decrypt) by an
// amount n in [1,7] derived from the key.
type rotNPrimitive struct{}

func (rotNPrimitive) Name() string { return NameRotN }

func rotateLeft8(b byte, n uint) byte  { return (b << n) | (b >> (8 - n)) }
func rotateRight8(b byte, n uint) byte { return (b >> n) | (b << (8 - n)) }

func (rotNPrimitive) Encrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error) {
	n, err := randkey.RotationAmount(key)
	if err != nil {
		return nil, err
	}
	out := imgbuf.New(in.Width, in.Height, in.Channels)
	for i, b := range in.Pixels {
		out.Pixels[i] = rotateLeft8(b, uint(n))
	}
	return out, checkDimensions(in, out)
}

func (rotNPrimitive) Decrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error) {
	n, err := randkey.RotationAmount(key)
	if err != nil {
		return nil, err
	}
	out := imgbuf.New(in.Width, in.Height, in.Channels)
	for i, b := range in.Pixels {
		out.Pixels[i] = rotateRight8(b, uint(n))
	}
	return out, checkDimensions(in, out)
}
