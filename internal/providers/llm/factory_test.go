package llm

import (
	"context"
	"testing"
)

func TestNewBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("openai", func(t *testing.T) {
		backend, err := NewBackend(ctx, "openai", testLLMConfig(""))
		if err != nil {
			t.Fatalf("NewBackend: %v", err)
		}
		if _, ok := backend.(*OpenAI); !ok {
			t.Errorf("backend = %T", backend)
		}
	})

	t.Run("anthropic", func(t *testing.T) {
		cfg := testLLMConfig("")
		cfg.AnthropicAPIKey = "test-key"
		backend, err := NewBackend(ctx, "anthropic", cfg)
		if err != nil {
			t.Fatalf("NewBackend: %v", err)
		}
		if _, ok := backend.(*Anthropic); !ok {
			t.Errorf("backend = %T", backend)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := NewBackend(ctx, "acme", testLLMConfig("")); err == nil {
			t.Fatal("expected error for unknown provider")
		}
	})
}
