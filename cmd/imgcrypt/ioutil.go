package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hidenseek-go/imgcrypt/internal/applog"
	"github.com/hidenseek-go/imgcrypt/internal/codec"
	"github.com/hidenseek-go/imgcrypt/internal/histogram"
	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
	"github.com/hidenseek-go/imgcrypt/internal/metafile"
)

// loadImage decodes the raster file at path into an imgbuf.Image, repopulates
// its metadata from the path's sidecar .meta file (if one exists - §4.I's
// metadata is out-of-band from the raster codec's pixel wire format), and in
// --debug mode dumps its per-channel histogram to stderr.
func loadImage(path string) (*imgbuf.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	img, err := codec.Decode(f)
	if err != nil {
		return nil, err
	}

	if metafile.Exists(path) {
		meta, err := metafile.Read(metafile.SidecarPath(path))
		if err != nil {
			return nil, err
		}
		for k, v := range meta {
			img.SetMeta(k, v)
		}
	}

	if debug {
		applog.Log.Debug().Str("path", path).Int("width", img.Width).Int("height", img.Height).Msg("decoded image")
		histogram.Print(os.Stderr, img)
	}
	return img, nil
}

// saveImage encodes img to path, choosing the container format from the
// file extension (JPEG is refused for cipher/stego outputs), then writes
// img's metadata (if any) to the path's sidecar .meta file so that a later
// loadImage of this same path can repopulate it.
func saveImage(path string, img *imgbuf.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	format := codec.FormatFromExtension(ext)
	if err := codec.Encode(f, img, format); err != nil {
		return err
	}
	applog.Log.Info().Str("path", path).Str("format", format.String()).Msg("wrote image")

	if keys := img.MetaKeysSorted(); len(keys) > 0 {
		meta := make(map[string]string, len(keys))
		for _, k := range keys {
			if v, ok := img.Meta(k); ok {
				meta[k] = v
			}
		}
		if err := metafile.Write(metafile.SidecarPath(path), meta); err != nil {
			applog.Log.Warn().Err(err).Str("path", path).Msg("failed to write sidecar metadata file")
		}
	}
	return nil
}
