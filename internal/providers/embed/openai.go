package embed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sashabaranov/go-openai"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/pkg/log"
	"github.com/warrenhq/warren/pkg/retry"
)

// OpenAI embeds query text through the embeddings API. Vectors for repeated
// queries come from a TTL cache, so refinement rounds within a session do not
// pay for the same embedding twice. Transient API failures are retried; auth
// failures are permanent and surface immediately.
type OpenAI struct {
	client  *openai.Client
	model   openai.EmbeddingModel
	cache   *gocache.Cache
	retrier *retry.Retrier
}

func NewOpenAI(llmCfg *config.LLMConfig, searchCfg *config.SearchConfig) (*OpenAI, error) {
	if llmCfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	clientConfig := openai.DefaultConfig(llmCfg.OpenAIAPIKey)
	if llmCfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = llmCfg.OpenAIBaseURL
	}

	return &OpenAI{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   openai.EmbeddingModel(searchCfg.EmbeddingModel),
		cache:   gocache.New(searchCfg.EmbedCacheTTL, 2*searchCfg.EmbedCacheTTL),
		retrier: retry.NewDefaultRetrier(),
	}, nil
}

func (e *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	key := strings.TrimSpace(text)
	if key == "" {
		return nil, fmt.Errorf("empty text")
	}

	if cached, found := e.cache.Get(key); found {
		return cached.([]float32), nil
	}

	var vector []float32
	err := e.retrier.Do(ctx, func() error {
		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: []string{key},
			Model: e.model,
		})
		if err != nil {
			if isAuthError(err) {
				return retry.Permanent(err)
			}
			return err
		}
		if len(resp.Data) == 0 {
			return retry.Permanent(fmt.Errorf("empty embedding response"))
		}
		vector = resp.Data[0].Embedding
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}

	e.cache.Set(key, vector, gocache.DefaultExpiration)
	log.FromCtx(ctx).Debug().Int("dims", len(vector)).Msg("embedded query")

	return vector, nil
}

func isAuthError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden
	}
	return false
}

var _ core.Embedder = (*OpenAI)(nil)
