package imagestore

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()

	store, err := NewLocal(t.TempDir(), "/static")
	require.NoError(t, err)

	t.Run("save then read back", func(t *testing.T) {
		err := store.Save(ctx, "rooms/ab/abc.jpg", strings.NewReader("content"))
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(store.basePath, "rooms", "ab", "abc.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})

	t.Run("URL joins the base", func(t *testing.T) {
		assert.Equal(t, "/static/rooms/ab/abc.jpg", store.URL("rooms/ab/abc.jpg"))
	})

	t.Run("delete removes the object", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "tmp.jpg", strings.NewReader("x")))
		require.NoError(t, store.Delete(ctx, "tmp.jpg"))

		_, err := os.Stat(filepath.Join(store.basePath, "tmp.jpg"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("deleting a missing object is not an error", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "never-existed.jpg"))
	})
}

func TestProcessorNormalize(t *testing.T) {
	p := NewProcessor()

	t.Run("oversized image is fitted and re-encoded as jpeg", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 400, 200))))

		out, err := p.Normalize(&buf, 100, 100)
		require.NoError(t, err)

		decoded, err := jpeg.Decode(out)
		require.NoError(t, err)

		bounds := decoded.Bounds()
		assert.Equal(t, 100, bounds.Dx())
		assert.Equal(t, 50, bounds.Dy())
	})

	t.Run("non image content fails", func(t *testing.T) {
		_, err := p.Normalize(strings.NewReader("plain text"), 100, 100)
		assert.Error(t, err)
	})
}
