// Package metafile reads and writes the sidecar <path>.meta files that
// carry an image's recipe/extra metadata as plain UTF-8 text, independent
// of the image format's own metadata chunks (§4.I).
package metafile

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
)

// SidecarPath returns the conventional sidecar path for an image file.
func SidecarPath(imagePath string) string {
	return imagePath + ".meta"
}

// Write serializes meta as sorted "key=value\n" lines to path, overwriting
// any existing file.
func Write(path string, meta map[string]string) error {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s=%s\n", k, meta[k])
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return imgerr.Wrap(imgerr.InputInvalid, err, "writing sidecar metadata file %s", path)
	}
	return nil
}

// Read parses a sidecar file written by Write. Lines without an "=" are
// skipped rather than treated as malformed, since a hand-edited sidecar is
// a realistic, recoverable scenario.
func Read(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, imgerr.Wrap(imgerr.InputInvalid, err, "opening sidecar metadata file %s", path)
	}
	defer f.Close()

	meta := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		meta[k] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, imgerr.Wrap(imgerr.InputInvalid, err, "reading sidecar metadata file %s", path)
	}
	return meta, nil
}

// Exists reports whether a sidecar file is present for imagePath.
func Exists(imagePath string) bool {
	_, err := os.Stat(SidecarPath(imagePath))
	return err == nil
}
