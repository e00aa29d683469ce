package huggingface

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySortsDescending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`[[{"label":"fear","score":0.2},{"label":"joy","score":0.7},{"label":"sadness","score":0.1}]]`))
	}))
	defer srv.Close()

	c := &Client{HTTP: srv.Client(), ModelURL: srv.URL}

	scores, err := c.Classify(context.Background(), "I flew over mountains")
	require.NoError(t, err)
	require.Len(t, scores, 3)

	assert.Equal(t, "joy", scores[0].Label)
	assert.Equal(t, "fear", scores[1].Label)
	assert.Equal(t, "sadness", scores[2].Label)
}

func TestClassifyEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := &Client{HTTP: srv.Client(), ModelURL: srv.URL}

	_, err := c.Classify(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNoScores)
}

func TestClassifyRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := &Client{HTTP: srv.Client(), ModelURL: srv.URL}

	_, err := c.Classify(context.Background(), "anything")
	assert.Error(t, err)
}
