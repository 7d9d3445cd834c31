package slideshow

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFolderGroupsByExtension(t *testing.T) {
	dir := writeFiles(t, "b.gif", "a.jpeg", "c.bmp", "d.png", "e.jpg")

	images, err := ScanFolder(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "d.png"),
		filepath.Join(dir, "e.jpg"),
		filepath.Join(dir, "a.jpeg"),
		filepath.Join(dir, "c.bmp"),
		filepath.Join(dir, "b.gif"),
	}, images)
}

func TestScanFolderSkipsHiddenFiles(t *testing.T) {
	dir := writeFiles(t, "b.png", "a.jpg", ".x.png")

	images, err := ScanFolder(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "a.jpg"),
	}, images)
}

func TestScanFolderSortsNamesIgnoringCase(t *testing.T) {
	dir := writeFiles(t, "B.png", "a.png", "C.JPG", "b.jpg")

	images, err := ScanFolder(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "B.png"),
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "C.JPG"),
	}, images)
}

func TestScanFolderUnreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := writeFiles(t, "a.png")
	require.NoError(t, os.Chmod(dir, 0o000))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	_, err := ScanFolder(dir)
	assert.ErrorIs(t, err, ErrIO)
}
