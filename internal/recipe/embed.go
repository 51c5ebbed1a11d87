package recipe

import (
	"encoding/base64"
	"sort"
	"strconv"
	"strings"

	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
	"github.com/hidenseek-go/imgcrypt/internal/primitives"
)

// MetaKeyEncSteps is the metadata key the recipe blob is stored under on
// the processed image.
const MetaKeyEncSteps = "enc_steps_img"

// MetaKeyText marks the text-as-image blob below: a 3-channel, height-1
// image whose pixels are the UTF-8 recipe bytes, zero-padded out to
// textImgMinPixelBytes so that every registered primitive (in particular
// xor's 3-channel requirement and aes256's 256-byte minimum) can run on it
// regardless of which step happens to be first in the recipe.
const MetaKeyText = "TEXT"

// textImgMinPixelBytes matches aes256Primitive's minimum, the strictest
// precondition any primitive in the registry places on its input.
const textImgMinPixelBytes = 256

const metaSectionDelim = "!META!"

// textImageFor reshapes blob's UTF-8 bytes into a 3-channel, height-1
// "text image", zero-padding the final row out to at least
// textImgMinPixelBytes pixel bytes. The trailing zero padding is not
// printable ASCII, so Recover's byte-range filter drops it automatically
// when it reconstructs the recipe string.
func textImageFor(blob string) *imgbuf.Image {
	raw := []byte(blob)
	width := (len(raw) + 2) / 3
	if width*3 < textImgMinPixelBytes {
		width = (textImgMinPixelBytes + 2) / 3
	}
	textImg := imgbuf.New(width, 1, 3)
	copy(textImg.Pixels, raw)
	textImg.SetMeta(MetaKeyText, "1")
	return textImg
}

// Embed serializes r, turns it into a 3-channel "text image" (see
// textImageFor), encrypts that image with the primitive named by r's first
// step (keyed by masterPassword), and stores the base64-encoded result -
// plus any extra key/value pairs - as the enc_steps_img metadata entry on
// img.
//
// Extra metadata ordering in the !META! section is not specified by the
// format; keys are sorted for determinism (§9 DESIGN NOTES).
func Embed(img *imgbuf.Image, r Recipe, masterPassword string, extraMeta map[string]string) error {
	if len(r) == 0 {
		return imgerr.New(imgerr.RecipeInvalid, "cannot embed an empty recipe")
	}

	textImg := textImageFor(r.String())

	prim, err := primitives.Lookup(r[0].Algo)
	if err != nil {
		return err
	}
	encrypted, err := prim.Encrypt(textImg, masterPassword)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(strconv.Itoa(encrypted.Width))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(encrypted.Height))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(encrypted.Channels))
	sb.WriteByte(':')
	sb.WriteString(base64.StdEncoding.EncodeToString(encrypted.Pixels))

	if len(extraMeta) > 0 {
		keys := make([]string, 0, len(extraMeta))
		for k := range extraMeta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(metaSectionDelim)
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(base64.StdEncoding.EncodeToString([]byte(k)))
			sb.WriteByte(':')
			sb.WriteString(base64.StdEncoding.EncodeToString([]byte(extraMeta[k])))
		}
	}

	img.SetMeta(MetaKeyEncSteps, sb.String())
	return nil
}

// Recover reconstructs the original recipe and extra metadata from img's
// enc_steps_img metadata entry. Per §4.D this hard-codes the xor primitive
// for the recovery decrypt regardless of which primitive originally
// embedded the blob - an inconsistency the spec requires implementations
// to preserve verbatim rather than "fix".
func Recover(img *imgbuf.Image, masterPassword string) (Recipe, map[string]string, error) {
	blob, ok := img.Meta(MetaKeyEncSteps)
	if !ok {
		return nil, nil, imgerr.New(imgerr.RecipeInvalid, "no recoverable recipe: %s metadata is absent", MetaKeyEncSteps)
	}

	header, rest, ok := strings.Cut(blob, ":")
	if !ok {
		return nil, nil, imgerr.New(imgerr.RecipeInvalid, "malformed %s metadata: missing header delimiter", MetaKeyEncSteps)
	}
	dims := strings.Split(header, ",")
	if len(dims) != 3 {
		return nil, nil, imgerr.New(imgerr.RecipeInvalid, "malformed %s header %q", MetaKeyEncSteps, header)
	}
	w, err1 := strconv.Atoi(dims[0])
	h, err2 := strconv.Atoi(dims[1])
	c, err3 := strconv.Atoi(dims[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, nil, imgerr.New(imgerr.RecipeInvalid, "malformed %s header %q", MetaKeyEncSteps, header)
	}

	body := rest
	extraMeta := map[string]string{}
	if idx := strings.Index(rest, metaSectionDelim); idx >= 0 {
		body = rest[:idx]
		metaSection := rest[idx+len(metaSectionDelim):]
		if metaSection != "" {
			for _, pair := range strings.Split(metaSection, ",") {
				kv := strings.SplitN(pair, ":", 2)
				if len(kv) != 2 {
					continue
				}
				kb, errK := base64.StdEncoding.DecodeString(kv[0])
				vb, errV := base64.StdEncoding.DecodeString(kv[1])
				if errK != nil || errV != nil {
					continue
				}
				extraMeta[string(kb)] = string(vb)
			}
		}
	}

	pixels, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, nil, imgerr.New(imgerr.RecipeInvalid, "malformed %s pixel payload: %v", MetaKeyEncSteps, err)
	}
	if len(pixels) != w*h*c {
		return nil, nil, imgerr.New(imgerr.RecipeInvalid, "malformed %s header declares %d bytes, got %d", MetaKeyEncSteps, w*h*c, len(pixels))
	}
	encrypted := imgbuf.FromPixels(w, h, c, pixels)

	xorPrim, err := primitives.Lookup(primitives.NameXOR)
	if err != nil {
		return nil, nil, err
	}
	decrypted, err := xorPrim.Decrypt(encrypted, masterPassword)
	if err != nil {
		return nil, nil, imgerr.Wrap(imgerr.RecipeInvalid, err, "failed to recover embedded recipe")
	}

	var sb strings.Builder
	for _, b := range decrypted.Pixels {
		if b >= 32 && b <= 126 {
			sb.WriteByte(b)
		}
	}

	parsed, err := Parse(sb.String())
	if err != nil {
		return nil, nil, err
	}
	if len(parsed) == 0 {
		return nil, nil, imgerr.New(imgerr.RecipeInvalid, "recovered recipe blob %q contained no steps", sb.String())
	}

	return parsed, extraMeta, nil
}
