// Package bitpack implements the single-bit-per-pixel-byte embed/extract
// primitives used wherever a small payload (a salt, an IV) must be hidden in
// the least significant bits of a pixel buffer. The aes256 primitive is its
// caller; the LSB and PVD stego engines pack their bits themselves.
package bitpack

import "github.com/hidenseek-go/imgcrypt/internal/imgerr"

// EmbedBits writes 8*len(data) bits into pixels starting at startPixel, one
// bit per pixel byte, MSB-first within each source byte. Pixel byte p
// becomes (p & 0xFE) | bit.
func EmbedBits(pixels []byte, startPixel int, data []byte) error {
	bits := len(data) * 8
	if startPixel < 0 || startPixel+bits > len(pixels) {
		return imgerr.New(imgerr.InsufficientCapacity,
			"cannot embed %d bits starting at pixel %d into a %d-byte buffer", bits, startPixel, len(pixels))
	}
	for i := 0; i < bits; i++ {
		byteIdx := i / 8
		bitPos := 7 - (i % 8)
		bit := (data[byteIdx] >> uint(bitPos)) & 1
		pixels[startPixel+i] = (pixels[startPixel+i] & 0xFE) | bit
	}
	return nil
}

// ExtractBits reads byteCount bytes back out of pixels starting at
// startPixel, the inverse of EmbedBits.
func ExtractBits(pixels []byte, startPixel int, byteCount int) ([]byte, error) {
	bits := byteCount * 8
	if startPixel < 0 || startPixel+bits > len(pixels) {
		return nil, imgerr.New(imgerr.InsufficientCapacity,
			"cannot extract %d bits starting at pixel %d from a %d-byte buffer", bits, startPixel, len(pixels))
	}
	data := make([]byte, byteCount)
	for i := 0; i < bits; i++ {
		byteIdx := i / 8
		bitPos := 7 - (i % 8)
		bit := pixels[startPixel+i] & 1
		data[byteIdx] |= bit << uint(bitPos)
	}
	return data, nil
}
