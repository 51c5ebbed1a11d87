// Package codec adapts between on-disk raster formats (PNG, JPEG, BMP) and
// the flat imgbuf.Image buffer every cipher primitive and stego engine
// operates on. Decoding accepts all three formats; encoding refuses JPEG,
// since its lossy quantization would destroy any embedded ciphertext or
// stego payload (§4.G).
package codec

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoding with image.Decode
	"image/png"
	"io"

	"golang.org/x/image/bmp"

	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
)

// Format identifies an on-disk raster container.
type Format int

const (
	// FormatPNG is lossless and the default output container.
	FormatPNG Format = iota
	// FormatBMP is lossless, uncompressed.
	FormatBMP
	// FormatJPEG is decode-only; see package doc.
	FormatJPEG
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatJPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}

// Decode reads a PNG, JPEG, or BMP image from r and flattens it into an
// imgbuf.Image with 3 (RGB) channels. The alpha channel, if any, is
// discarded: none of the cipher primitives or stego engines use it.
func Decode(r io.Reader) (*imgbuf.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, imgerr.Wrap(imgerr.InputInvalid, err, "decoding raster image")
	}
	return fromImage(src), nil
}

// fromImage flattens a decoded image.Image into a 3-channel imgbuf.Image,
// normalizing the alpha-premultiplied uint32 channel values image.Color.RGBA
// returns back down to 8-bit samples.
func fromImage(src image.Image) *imgbuf.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := imgbuf.New(width, height, 3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.Set(x, y, 0, byte(r>>8))
			out.Set(x, y, 1, byte(g>>8))
			out.Set(x, y, 2, byte(b>>8))
		}
	}
	return out
}

// toImage expands a 3-channel imgbuf.Image back into a stdlib image.Image
// for encoding.
func toImage(img *imgbuf.Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.Set(x, y, color.NRGBA{
				R: img.Get(x, y, 0),
				G: img.Get(x, y, 1),
				B: img.Get(x, y, 2),
				A: 255,
			})
		}
	}
	return out
}

// Encode writes img to w in the given format. FormatJPEG is refused: its
// lossy compression would silently corrupt any embedded ciphertext or
// stego payload, so the cipher and stego code paths never round-trip
// through it.
func Encode(w io.Writer, img *imgbuf.Image, format Format) error {
	if img.Channels != 3 {
		return imgerr.New(imgerr.InputInvalid, "codec can only encode 3-channel images, got %d channels", img.Channels)
	}
	raster := toImage(img)
	switch format {
	case FormatPNG:
		if err := png.Encode(w, raster); err != nil {
			return imgerr.Wrap(imgerr.InputInvalid, err, "encoding PNG")
		}
		return nil
	case FormatBMP:
		if err := bmp.Encode(w, raster); err != nil {
			return imgerr.Wrap(imgerr.InputInvalid, err, "encoding BMP")
		}
		return nil
	case FormatJPEG:
		return imgerr.New(imgerr.InputInvalid, "JPEG output is refused for cipher/stego images: lossy compression would destroy the embedded payload")
	default:
		return imgerr.New(imgerr.InputInvalid, "unknown raster format %v", format)
	}
}

// EncodeBytes is a convenience wrapper around Encode that returns the
// encoded bytes instead of writing to a stream.
func EncodeBytes(img *imgbuf.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatFromExtension maps a lowercase file extension (without the leading
// dot) to a Format, defaulting to FormatPNG for anything unrecognized.
func FormatFromExtension(ext string) Format {
	switch ext {
	case "bmp":
		return FormatBMP
	case "jpg", "jpeg":
		return FormatJPEG
	default:
		return FormatPNG
	}
}
