package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransport(t *testing.T) {
	transport, err := NewTransport("", 0)
	require.NoError(t, err)
	assert.Nil(t, transport.Proxy)
	assert.Equal(t, 20, transport.MaxIdleConnsPerHost)

	transport, err = NewTransport("http://127.0.0.1:3128", 4)
	require.NoError(t, err)
	assert.NotNil(t, transport.Proxy)
	assert.Equal(t, 4, transport.MaxIdleConnsPerHost)

	transport, err = NewTransport("socks5://127.0.0.1:1080", 4)
	require.NoError(t, err)
	assert.Nil(t, transport.Proxy)
	assert.NotNil(t, transport.DialContext)

	_, err = NewTransport("ftp://127.0.0.1:21", 4)
	assert.Error(t, err)
}

func TestUpstreamClientGetSendsHeadersAndParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "cats", r.URL.Query().Get("q"))
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"ok":false}`))
	}))
	defer server.Close()

	client := NewUpstreamClient(nil)
	resp, err := client.Get(context.Background(), server.URL+"/search", map[string]string{"q": "cats"}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.JSONEq(t, `{"ok":false}`, string(resp.Body))
}

func TestUpstreamClientGetTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewUpstreamClient(nil)
	start := time.Now()
	_, err := client.Get(context.Background(), server.URL, nil, 50*time.Millisecond)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
