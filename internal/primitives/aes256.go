package primitives

import (
	crand "crypto/rand"
	"io"

	"github.com/hidenseek-go/imgcrypt/internal/bitpack"
	"github.com/hidenseek-go/imgcrypt/internal/cryptoenv"
	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
)

// aes256Primitive is the hardest primitive in the registry (§4.C.6): it
// AES-256-CTR encrypts the whole pixel buffer and hides the salt and IV in
// the low bits of the first 256 pixel bytes of the *output*. That makes it
// lossy: those 256 low bits are never restored on decrypt, so this
// primitive is not a bijection on pixels and should only sit at the start
// or end of a recipe where a lossless round trip is not required.
type aes256Primitive struct{}

func (aes256Primitive) Name() string { return NameAES256 }

const aes256MinPixelBytes = 256

func (aes256Primitive) Encrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error) {
	if len(in.Pixels) < aes256MinPixelBytes {
		return nil, imgerr.New(imgerr.InsufficientCapacity,
			"aes256 primitive needs at least %d pixel bytes to hide salt+iv, got %d", aes256MinPixelBytes, len(in.Pixels))
	}

	salt := make([]byte, cryptoenv.SaltLen)
	iv := make([]byte, cryptoenv.IVLen)
	// RNG draws for salt and IV happen before any ciphertext computation
	// (§5 ordering requirement).
	if _, err := io.ReadFull(crand.Reader, salt); err != nil {
		return nil, imgerr.Wrap(imgerr.CryptoFailure, err, "generating salt")
	}
	if _, err := io.ReadFull(crand.Reader, iv); err != nil {
		return nil, imgerr.Wrap(imgerr.CryptoFailure, err, "generating iv")
	}

	ciphertext, err := cryptoenv.CTR(key, salt, iv, in.Pixels)
	if err != nil {
		return nil, err
	}

	out := imgbuf.FromPixels(in.Width, in.Height, in.Channels, ciphertext)
	if err := bitpack.EmbedBits(out.Pixels, 0, salt); err != nil {
		return nil, err
	}
	if err := bitpack.EmbedBits(out.Pixels, 128, iv); err != nil {
		return nil, err
	}
	return out, checkDimensions(in, out)
}

func (aes256Primitive) Decrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error) {
	if len(in.Pixels) < aes256MinPixelBytes {
		return nil, imgerr.New(imgerr.InsufficientCapacity,
			"aes256 primitive needs at least %d pixel bytes to recover salt+iv, got %d", aes256MinPixelBytes, len(in.Pixels))
	}

	salt, err := bitpack.ExtractBits(in.Pixels, 0, cryptoenv.SaltLen)
	if err != nil {
		return nil, err
	}
	iv, err := bitpack.ExtractBits(in.Pixels, 128, cryptoenv.IVLen)
	if err != nil {
		return nil, err
	}

	plaintext, err := cryptoenv.CTR(key, salt, iv, in.Pixels)
	if err != nil {
		return nil, err
	}

	out := imgbuf.FromPixels(in.Width, in.Height, in.Channels, plaintext)
	return out, checkDimensions(in, out)
}
