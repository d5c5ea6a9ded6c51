package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
)

func testAnthropic(serverURL string) *Anthropic {
	cfg := &config.LLMConfig{
		AnthropicAPIKey: "test-key",
		Model:           "claude-sonnet-4-5",
		RequestTimeout:  5 * time.Second,
	}
	return &Anthropic{
		baseProvider: newBaseProvider(serverURL, cfg.AnthropicAPIKey, cfg.RequestTimeout),
		cfg:          cfg,
		limiter:      rate.NewLimiter(100, 10),
	}
}

func TestAnthropicGenerate_Success(t *testing.T) {
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("unexpected api key header %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("missing anthropic-version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		_, _ = w.Write([]byte(`{"content": [{"type": "text", "text": "Dear "}, {"type": "text", "text": "client"}]}`))
	}))
	defer server.Close()

	p := testAnthropic(server.URL)

	text, err := p.Generate(context.Background(), "system instructions", "write a letter", core.GenerationParams{MaxTokens: 700})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if text != "Dear client" {
		t.Errorf("text = %q", text)
	}
	if gotPayload["system"] != "system instructions" {
		t.Errorf("system = %v", gotPayload["system"])
	}
	if gotPayload["model"] != "claude-sonnet-4-5" {
		t.Errorf("model = %v", gotPayload["model"])
	}
	if gotPayload["max_tokens"] != float64(700) {
		t.Errorf("max_tokens = %v", gotPayload["max_tokens"])
	}
}

func TestAnthropicGenerate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error"}}`))
	}))
	defer server.Close()

	p := testAnthropic(server.URL)

	if _, err := p.Generate(context.Background(), "s", "p", core.GenerationParams{}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNewAnthropic_RequiresAPIKey(t *testing.T) {
	if _, err := NewAnthropic(&config.LLMConfig{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
