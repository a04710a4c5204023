package tests

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdabridge/lambdabridge/pkg/adapter"
	"github.com/lambdabridge/lambdabridge/pkg/httpservice"
)

// Integration tests driving the full pipeline: proxy event in, proxy
// response out, through a real http.Handler.

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"query": r.URL.RawQuery,
			"path":  r.URL.Path,
		})
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(payload)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot overheated", http.StatusTeapot)
	})
	return mux
}

func newAdapter(t *testing.T) *adapter.Adapter {
	t.Helper()
	a := adapter.New(httpservice.Factory(func() http.Handler { return newMux() })).
		BinaryMediaTypes("application/octet-stream").
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, a.Init(context.Background()))
	t.Cleanup(a.Close)
	return a
}

func proxyGet(path string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       path,
		MultiValueHeaders: map[string][]string{
			"Host":              {"api.example.com"},
			"X-Forwarded-Proto": {"https"},
		},
	}
}

func TestEndToEnd_QueryReconstruction(t *testing.T) {
	a := newAdapter(t)

	req := proxyGet("/items")
	req.MultiValueQueryStringParameters = map[string][]string{"q": {"a b", "c&d"}}

	out, err := a.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, out.StatusCode)
	assert.False(t, out.IsBase64Encoded)

	var seen struct {
		Query string `json:"query"`
		Path  string `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.Body), &seen))
	assert.Equal(t, "q=a%20b&q=c%26d", seen.Query)
	assert.Equal(t, "/items", seen.Path)
}

func TestEndToEnd_BinaryUploadRoundTrip(t *testing.T) {
	a := newAdapter(t)

	raw := []byte{0x00, 0x01, 0xfe, 0xff}
	req := proxyGet("/upload")
	req.HTTPMethod = http.MethodPost
	req.Body = base64.StdEncoding.EncodeToString(raw)
	req.IsBase64Encoded = true

	out, err := a.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, out.StatusCode)

	require.True(t, out.IsBase64Encoded)
	decoded, err := base64.StdEncoding.DecodeString(out.Body)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded, "binary payloads round-trip byte for byte")
}

func TestEndToEnd_HandlerErrorStatusPassesThrough(t *testing.T) {
	a := newAdapter(t)

	out, err := a.Handle(context.Background(), proxyGet("/broken"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, out.StatusCode)
	assert.Contains(t, out.Body, "teapot overheated")
}

func TestEndToEnd_SequentialInvocations(t *testing.T) {
	a := newAdapter(t)

	for i := 0; i < 20; i++ {
		out, err := a.Handle(context.Background(), proxyGet("/items"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, out.StatusCode)
	}
}

func TestEndToEnd_MetricsObserveTraffic(t *testing.T) {
	a := newAdapter(t)

	_, err := a.Handle(context.Background(), proxyGet("/items"))
	require.NoError(t, err)

	registry := a.MetricsRegistry()
	require.NotNil(t, registry)

	families, err := registry.Gather()
	require.NoError(t, err)

	found := false
	for _, f := range families {
		if f.GetName() == "lambdabridge_invocations_total" {
			found = true
		}
	}
	assert.True(t, found, "invocation counter should be registered and populated")
}
