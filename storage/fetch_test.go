package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocalPathPassesThrough(t *testing.T) {
	f := NewFetcher(nil)

	got, err := f.Resolve(context.Background(), "/data/local.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/data/local.jpg", got)
}

func TestResolveDownloadsRemoteImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png bytes"))
	}))
	defer srv.Close()

	local, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	f := &Fetcher{HTTP: srv.Client(), Store: local}

	got, err := f.Resolve(context.Background(), srv.URL+"/gen.png")
	require.NoError(t, err)

	assert.Regexp(t, `dream_\d+\.png$`, filepath.Base(got))

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
}

func TestResolveRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	local, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	f := &Fetcher{HTTP: srv.Client(), Store: local}

	_, err = f.Resolve(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://cdn.example.com/a.png"))
	assert.True(t, IsRemote("http://cdn.example.com/a.png"))
	assert.False(t, IsRemote("/data/local.jpg"))
	assert.False(t, IsRemote("dream_123.png"))
}
