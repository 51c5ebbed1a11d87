package metafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, "image.png.meta", SidecarPath("image.png"))
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stego.png.meta")
	meta := map[string]string{
		"enc_steps": "xor:1 rotn:3",
		"stego":     "pvd",
	}

	require.NoError(t, Write(path, meta))
	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, meta, got)
}

func TestWriteProducesSortedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sorted.meta")
	require.NoError(t, Write(path, map[string]string{"zeta": "1", "alpha": "2"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha=2\nzeta=1\n", string(raw))
}

func TestReadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hand-edited.meta")
	content := "good=value\nthis line has no equals sign\n\nalso_good=yes\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"good": "value", "also_good": "yes"}, got)
}

func TestReadMissingFileFails(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "does-not-exist.meta"))
	require.Error(t, err)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "pic.png")
	assert.False(t, Exists(imagePath))

	require.NoError(t, Write(SidecarPath(imagePath), map[string]string{"k": "v"}))
	assert.True(t, Exists(imagePath))
}
