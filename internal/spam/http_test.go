package spam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClassifierSendsPayload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spam": true}`))
	}))
	defer srv.Close()

	c := &HTTPClassifier{Endpoint: srv.URL, Token: "secret", Client: srv.Client()}
	spam, err := c.IsSpam(context.Background(), "buy now", Metadata{Title: "t", UserID: "usr_1", IP: "10.0.0.1"})
	require.NoError(t, err)
	assert.True(t, spam)

	assert.Equal(t, "buy now", got["content"])
	assert.Equal(t, "t", got["title"])
	assert.Equal(t, "usr_1", got["user_id"])
	assert.Equal(t, "10.0.0.1", got["ip"])
}

func TestHTTPClassifierUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := &HTTPClassifier{Endpoint: srv.URL, Client: srv.Client()}
	_, err := c.IsSpam(context.Background(), "x", Metadata{})
	assert.Error(t, err)
}

func TestHTTPClassifierRequiresEndpoint(t *testing.T) {
	c := &HTTPClassifier{}
	_, err := c.IsSpam(context.Background(), "x", Metadata{})
	assert.Error(t, err)
}
