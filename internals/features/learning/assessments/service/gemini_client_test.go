package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiGenerate(t *testing.T) {
	var got generateRequest
	var key, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("x-goog-api-key")
		path = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"a\":"},{"text":"1}"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient(srv.URL, "gemini-1.5-flash", "k-123", time.Second)
	text, err := c.Generate(context.Background(), []Part{
		{Text: "grade this"},
		{InlineData: &InlineData{MimeType: "image/png", Data: "AAAA"}},
	})
	require.NoError(t, err)

	assert.Equal(t, `{"a":1}`, text)
	assert.Equal(t, "k-123", key)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", path)
	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 2)
	assert.Equal(t, "grade this", got.Contents[0].Parts[0].Text)
	assert.Equal(t, "image/png", got.Contents[0].Parts[1].InlineData.MimeType)
}

func TestGeminiErrors(t *testing.T) {
	_, err := NewGeminiClient("http://unused", "m", "", time.Second).Generate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrGeneratorNotConfigured)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota"}}`))
	}))
	defer srv.Close()

	_, err = NewGeminiClient(srv.URL, "m", "k", time.Second).Generate(context.Background(), []Part{{Text: "x"}})
	var ge *GeminiError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, http.StatusTooManyRequests, ge.StatusCode)
	assert.Contains(t, ge.Body, "quota")
}

func TestGeminiBlockedPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiClient(srv.URL, "m", "k", time.Second).Generate(context.Background(), []Part{{Text: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAFETY")
}
