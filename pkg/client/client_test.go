package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnauthorizedHookFires(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, nil, "authentication required")
	}))
	defer ts.Close()

	hookFired := false
	c := New(ts.URL, WithUnauthorizedHandler(func() { hookFired = true }))

	_, err := c.GetBill(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsAuthRequired())
	assert.Equal(t, "authentication required", apiErr.Message)
	assert.True(t, hookFired, "every 401 must run the unauthorized hook")
}

func TestAPIErrorClassification(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: 401}).IsAuthRequired())
	assert.True(t, (&APIError{StatusCode: 403}).IsForbidden())
	assert.True(t, (&APIError{StatusCode: 0}).IsNetwork())
	assert.False(t, (&APIError{StatusCode: 500}).IsNetwork())
}

func TestNetworkFailureIsClassified(t *testing.T) {
	// Point at a closed server.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := New(url)
	_, err := c.GetBill(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNetwork())
}

func TestErrorEnvelopeMessageSurfaces(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, nil, "item not found")
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.GetBill(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "item not found", apiErr.Message)
}

func TestSessionCookiePersistsAcrossCalls(t *testing.T) {
	var sawCookie bool
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "tok-123", Path: "/"})
		} else if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value == "tok-123" {
			sawCookie = true
		}
		writeEnvelope(w, http.StatusOK, Bill{}, "")
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.GetBill(context.Background())
	require.NoError(t, err)
	_, err = c.GetBill(context.Background())
	require.NoError(t, err)
	assert.True(t, sawCookie, "jar must replay the session cookie")
}
