package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDigest(t *testing.T) {
	t.Parallel()

	var gotPath, gotChat, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotChat = r.FormValue("chat_id")
		gotText = r.FormValue("text")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier("tok", "42")
	n.baseURL = srv.URL

	require.NoError(t, n.PublishDigest(context.Background(), "2 high-signal items"))
	assert.Equal(t, "/bottok/sendMessage", gotPath)
	assert.Equal(t, "42", gotChat)
	assert.Equal(t, "2 high-signal items", gotText)
}

func TestPublishDigestEmptyIsNoop(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	n := NewNotifier("tok", "42")
	n.baseURL = srv.URL

	require.NoError(t, n.PublishDigest(context.Background(), "  "))
	assert.False(t, called)
}

func TestPublishDigestServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	n := NewNotifier("tok", "42")
	n.baseURL = srv.URL

	assert.Error(t, n.PublishDigest(context.Background(), "digest"))
}

func TestPublishDigestMisconfigured(t *testing.T) {
	t.Parallel()

	n := NewNotifier("", "")
	assert.Error(t, n.PublishDigest(context.Background(), "digest"))
}
