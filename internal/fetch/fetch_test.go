package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal PNG header so DetectContentType recognizes the payload
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestGetHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))
	defer srv.Close()

	img, err := New().Get(context.Background(), srv.URL+"/box.png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, img.Data)
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, srv.URL+"/box.png", img.Source)
}

func TestGetHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New().Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestGetHTTPTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := New(WithTimeout(20 * time.Millisecond))
	_, err := f.Get(context.Background(), srv.URL)
	var tErr *TimeoutError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, srv.URL, tErr.Source)
}

func TestGetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "label.png")
	require.NoError(t, os.WriteFile(path, pngBytes, 0o644))

	for _, ref := range []string{path, "file://" + path} {
		img, err := New().Get(context.Background(), ref)
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.MediaType)
	}
}

func TestGetFileMissing(t *testing.T) {
	_, err := New().Get(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	require.Error(t, err)

	var tErr *TimeoutError
	assert.False(t, errors.As(err, &tErr))
}

func TestGetEmptyRef(t *testing.T) {
	_, err := New().Get(context.Background(), "")
	require.Error(t, err)
}

func TestFromBytes(t *testing.T) {
	img := FromBytes(pngBytes, "image/png; charset=binary", "upload:box.png")
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, "upload:box.png", img.Source)
}

func TestMediaTypeFallbacks(t *testing.T) {
	// declared wins over sniffing
	assert.Equal(t, "image/webp", mediaType("image/webp", pngBytes))
	// unknown declared falls back to sniffing
	assert.Equal(t, "image/png", mediaType("application/octet-stream", pngBytes))
	// unrecognizable bytes default to jpeg
	assert.Equal(t, "image/jpeg", mediaType("", []byte("not an image")))
}
