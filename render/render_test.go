package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/aouyang1/imagegallery/slideshow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 0xff, A: 0xff})
	return img
}

func TestProbePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testImage()))
	require.NoError(t, f.Close())

	info, err := Probe(path)
	require.NoError(t, err)
	assert.Equal(t, 4, info.Width)
	assert.Equal(t, 3, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Positive(t, info.Size)
}

func TestProbeBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.BMP")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, testImage()))
	require.NoError(t, f.Close())

	info, err := Probe(path)
	require.NoError(t, err)
	assert.Equal(t, "bmp", info.Format)
	assert.Equal(t, 4, info.Width)
}

func TestProbeFailures(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a jpeg"), 0o644))

	_, err := Probe(corrupt)
	assert.ErrorIs(t, err, slideshow.ErrRender)

	_, err = Probe(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, slideshow.ErrRender)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
