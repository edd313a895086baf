// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/blog-engine/pkg/types"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.HTTPConfig{})
	assert.Equal(t, types.DefaultTimeout, c.Timeout)

	ua, ok := c.Transport.(*userAgentTransport)
	require.True(t, ok)
	tr, ok := ua.base.(*http.Transport)
	require.True(t, ok)
	if tr.TLSClientConfig != nil {
		assert.False(t, tr.TLSClientConfig.InsecureSkipVerify)
	}
}

func TestNewClientInsecureOptIn(t *testing.T) {
	c := NewClient(types.HTTPConfig{Timeout: 5 * time.Second, InsecureSkipVerify: true})
	assert.Equal(t, 5*time.Second, c.Timeout)

	tr := c.Transport.(*userAgentTransport).base.(*http.Transport)
	require.NotNil(t, tr.TLSClientConfig)
	assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
}

func TestNewClientInsecureReachesSelfSignedServer(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer ts.Close()

	var out struct{ OK bool }

	strict := NewClient(types.HTTPConfig{})
	_, err := GetJSON(context.Background(), strict, ts.URL, nil, &out)
	assert.Error(t, err, "self-signed certificate must be rejected by default")

	relaxed := NewClient(types.HTTPConfig{InsecureSkipVerify: true})
	status, err := GetJSON(context.Background(), relaxed, ts.URL, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, out.OK)
}

func TestGetJSONSetsParamsAndUserAgent(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"value":"x"}`)
	}))
	defer ts.Close()

	c := NewClient(types.HTTPConfig{UserAgent: "test/0.1"})
	var out struct{ Value string }
	status, err := GetJSON(context.Background(), c, ts.URL, url.Values{"q": {"go lang"}}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "x", out.Value)
	assert.Equal(t, "go lang", captured.URL.Query().Get("q"))
	assert.Equal(t, "test/0.1", captured.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", captured.Header.Get("Accept"))
}

func TestGetJSONNon200IsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"value":"ignored"}`)
	}))
	defer ts.Close()

	var out struct{ Value string }
	status, err := GetJSON(context.Background(), ts.Client(), ts.URL, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Empty(t, out.Value)
}

func TestGetJSONDecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer ts.Close()

	var out struct{}
	_, err := GetJSON(context.Background(), ts.Client(), ts.URL, nil, &out)
	assert.ErrorContains(t, err, "decoding response")
}

func TestGetJSONContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var out struct{}
	_, err := GetJSON(ctx, ts.Client(), ts.URL, nil, &out)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseIdleNil(t *testing.T) {
	assert.NotPanics(t, func() { CloseIdle(nil) })
}
