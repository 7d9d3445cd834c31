package client_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aouyang1/imagegallery/api"
	"github.com/aouyang1/imagegallery/api/client"
	"github.com/aouyang1/imagegallery/eventloop"
	"github.com/aouyang1/imagegallery/slideshow"
	"github.com/aouyang1/imagegallery/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGallery(t *testing.T) *client.GalleryClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loop := eventloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	ctrl := slideshow.NewController(nil)
	catalog, err := store.NewCatalog()
	require.NoError(t, err)

	ws := api.NewWebServer(loop, ctrl, catalog, func(string) error { return nil }, nil)
	srv := httptest.NewServer(ws.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
		catalog.Close()
	})
	return client.NewGalleryClient(srv.URL)
}

func TestClientRoundTrip(t *testing.T) {
	gc := newGallery(t)
	ctx := context.Background()

	dir := t.TempDir()
	for _, name := range []string{"1.png", "2.jpg", "3.gif", "skip.doc"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	state, err := gc.LoadFolder(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 3, state.Total)
	assert.Equal(t, 0, state.Index)

	state, err = gc.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Index)

	state, err = gc.Previous(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Index)

	state, err = gc.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, state.Running)

	state, err = gc.SetInterval(ctx, 2000)
	require.NoError(t, err)
	assert.Equal(t, 2000, state.IntervalMS)

	state, err = gc.State(ctx)
	require.NoError(t, err)
	assert.True(t, state.Running)
	assert.Equal(t, dir, state.Folder)

	photos, err := gc.GetPhotos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, photos.Total)
	assert.Len(t, photos.Photos, 3)
}

func TestClientReportsServerErrors(t *testing.T) {
	gc := newGallery(t)
	ctx := context.Background()

	_, err := gc.SetInterval(ctx, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")

	_, err = gc.LoadFolder(ctx, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "folder inaccessible")
}
