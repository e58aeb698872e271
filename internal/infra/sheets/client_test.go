package sheets

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, proxyURL string) *client {
	t.Helper()

	cfg := &config.Config{
		Import: &config.ImportConfig{
			ProxyEndpoint: proxyURL + "/get?url=",
			SheetURL:      "https://docs.example.com/sheet/pub?output=csv",
			Timeout:       5 * time.Second,
		},
	}

	fetcher, err := NewClient(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	return fetcher.(*client)
}

func TestClient_FetchCSV(t *testing.T) {
	const csvBody = "Name,Price\nBlin,150\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The sheet URL must arrive URL-encoded in the query string.
		target := r.URL.Query().Get("url")
		assert.Equal(t, "https://docs.example.com/sheet/pub?output=csv", target)

		json.NewEncoder(w).Encode(map[string]string{"contents": csvBody})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	contents, err := c.FetchCSV(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, csvBody, contents)
}

func TestClient_FetchCSV_ExplicitSheetURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://docs.example.com/other?output=csv", r.URL.Query().Get("url"))
		json.NewEncoder(w).Encode(map[string]string{"contents": "Name,Price\n"})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	_, err := c.FetchCSV(context.Background(), "https://docs.example.com/other?output=csv")
	require.NoError(t, err)
}

func TestClient_FetchCSV_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	_, err := c.FetchCSV(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_FetchCSV_EmptyEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"contents": ""})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	_, err := c.FetchCSV(context.Background(), "")
	require.Error(t, err)
}
