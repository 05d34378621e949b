package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UploadTimeAdvisor/internal/config"
)

func TestPublishDigest(t *testing.T) {
	t.Parallel()

	type call struct {
		path string
		chat string
		text string
	}
	calls := make(chan call, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		calls <- call{path: r.URL.Path, chat: r.PostForm.Get("chat_id"), text: r.PostForm.Get("text")}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewNotifier(config.TelegramConfig{BotToken: "123:abc", ChatID: "42", BaseURL: srv.URL})
	require.NoError(t, n.PublishDigest(context.Background(), "오후 8시 업로드 추천"))

	got := <-calls
	assert.Equal(t, "/bot123:abc/sendMessage", got.path)
	assert.Equal(t, "42", got.chat)
	assert.Equal(t, "오후 8시 업로드 추천", got.text)
}

func TestPublishDigest_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	n := NewNotifier(config.TelegramConfig{BotToken: "t", ChatID: "1", BaseURL: srv.URL})
	err := n.PublishDigest(context.Background(), "x")
	assert.ErrorContains(t, err, "chat not found")
}

func TestPublishDigest_Misconfigured(t *testing.T) {
	t.Parallel()

	err := NewNotifier(config.TelegramConfig{}).PublishDigest(context.Background(), "x")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("가", maxMessageLength+10)
	out := truncate(long, maxMessageLength)
	assert.Equal(t, maxMessageLength, utf8.RuneCountInString(out))
	assert.Equal(t, "짧다", truncate("짧다", maxMessageLength))
}
