package webhook_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LoopTracer/looptracer-landing/internal/webhook"
)

func TestPostJSON_HappyPath(t *testing.T) {
	var gotHeaders http.Header
	var gotBody string
	var gotMethod string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeaders = r.Header
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer srv.Close()

	c := webhook.NewClient(5*time.Second, nil, "looptracer-landing/test")
	res, err := c.PostJSON(context.Background(), srv.URL, map[string]string{"type": "pageview"})

	require.NoError(t, err)
	assert.True(t, res.Sent)
	assert.True(t, res.OK())
	assert.NoError(t, res.Err())
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, `{"result":"success"}`, res.Body)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "looptracer-landing/test", gotHeaders.Get("User-Agent"))
	assert.JSONEq(t, `{"type":"pageview"}`, gotBody)
}

func TestPostJSON_NonSuccessStatusIsAResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	c := webhook.NewClient(5*time.Second, nil, "")
	res, err := c.PostJSON(context.Background(), srv.URL, map[string]string{})

	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.Len(t, res.Body, 1024)
	assert.True(t, errors.Is(res.Err(), webhook.ErrUpstreamStatus))
}

func TestPostJSON_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := webhook.NewClient(50*time.Millisecond, nil, "")
	res, err := c.PostJSON(context.Background(), srv.URL, map[string]string{})

	require.Error(t, err)
	assert.True(t, res.Sent)
	assert.Equal(t, 0, res.StatusCode)
}

func TestPostJSON_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := webhook.NewClient(time.Second, nil, "")
	_, err := c.PostJSON(context.Background(), url, map[string]string{})
	require.Error(t, err)
}

func TestPostJSON_UnencodablePayload(t *testing.T) {
	c := webhook.NewClient(time.Second, nil, "")
	res, err := c.PostJSON(context.Background(), "http://127.0.0.1:1", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.False(t, res.Sent)
	assert.Zero(t, res.Latency)
	assert.Contains(t, err.Error(), "marshal payload")
}

type countingTransport struct {
	calls int
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return c.next.RoundTrip(r)
}

func TestNewClient_UsesTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	tr := &countingTransport{next: http.DefaultTransport}
	c := webhook.NewClient(time.Second, tr, "")
	_, err := c.PostJSON(context.Background(), srv.URL, struct{}{})

	require.NoError(t, err)
	assert.Equal(t, 1, tr.calls)
}
