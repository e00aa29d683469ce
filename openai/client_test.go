package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateImageReturnsURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":[{"url":"https://cdn.example.com/gen.png"}]}`))
	}))
	defer srv.Close()

	c := &Client{HTTP: srv.Client(), BaseURL: srv.URL, Key: "test-key"}

	url, err := c.GenerateImage(context.Background(), "a dream about mountains")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/gen.png", url)
}

func TestGenerateImageEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := &Client{HTTP: srv.Client(), BaseURL: srv.URL, Key: "test-key"}

	_, err := c.GenerateImage(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestTranscribeReturnsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")
		w.Write([]byte(`{"text":"I flew over mountains"}`))
	}))
	defer srv.Close()

	c := &Client{HTTP: srv.Client(), BaseURL: srv.URL, Key: "test-key"}

	text, err := c.Transcribe(context.Background(), "dream.wav", strings.NewReader("fake audio bytes"))
	require.NoError(t, err)
	assert.Equal(t, "I flew over mountains", text)
}

func TestTranscribeRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &Client{HTTP: srv.Client(), BaseURL: srv.URL, Key: "test-key"}

	_, err := c.Transcribe(context.Background(), "dream.wav", strings.NewReader("fake audio bytes"))
	assert.Error(t, err)
}
