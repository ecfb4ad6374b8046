package llmclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"medcart-agent/config"
	apperrors "medcart-agent/errors"
	"medcart-agent/web/types"

	"go.uber.org/zap"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		GroqAPIKey:            "test-key",
		GroqBaseURL:           baseURL,
		Temperature:           0.0,
		MaxTokens:             1024,
		MaxRetries:            3,
		RetryDelaySeconds:     5 * time.Millisecond,
		LLMRequestTimeout:     5 * time.Second,
		LLMBackoffMaxSeconds:  50 * time.Millisecond,
		LLMBackoffJitterRatio: 0.1,
	}
}

func completionHandler(t *testing.T, content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer test key", got)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if _, ok := req["model"].(string); !ok {
			t.Error("request is missing the model field")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}
}

func TestChatSuccess(t *testing.T) {
	srv := httptest.NewServer(completionHandler(t, "Category: Diabetic"))
	defer srv.Close()

	c := New(testConfig(srv.URL), zap.NewNop())
	got, err := c.Chat(context.Background(), "criteria-model", []types.Message{
		{Role: "system", Content: "extract criteria"},
		{Role: "user", Content: "something for diabetes"},
	})
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if got != "Category: Diabetic" {
		t.Errorf("Chat() = %q, want criteria output", got)
	}
}

func TestChatMissingAPIKey(t *testing.T) {
	cfg := testConfig("http://unused")
	cfg.GroqAPIKey = ""
	c := New(cfg, zap.NewNop())

	_, err := c.Chat(context.Background(), "m", nil)
	if !apperrors.IsConfiguration(err) {
		t.Errorf("Chat() error = %v, want configuration error", err)
	}
}

func TestChatRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		completionHandler(t, "ok")(w, r)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zap.NewNop())
	got, err := c.Chat(context.Background(), "m", nil)
	if err != nil {
		t.Fatalf("Chat() error after retries: %v", err)
	}
	if got != "ok" {
		t.Errorf("Chat() = %q, want ok", got)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("server called %d times, want 3", n)
	}
}

func TestChatUpstreamErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"error": "bad request"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zap.NewNop())
	_, err := c.Chat(context.Background(), "m", nil)
	if err == nil {
		t.Fatal("Chat() should surface a 400 from the server")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("server called %d times, want 1 (no retry on 400)", n)
	}
}
