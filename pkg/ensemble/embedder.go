package ensemble

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/TryMightyAI/rampart/pkg/httputil"
)

// EmbeddingProvider generates vector embeddings for the similarity model's
// seed phrases and queries.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// HTTPEmbedder implements EmbeddingProvider against an OpenAI-style
// /embeddings endpoint.
type HTTPEmbedder struct {
	apiKey    string
	baseURL   string
	model     string
	dimension int
	client    *http.Client
	mu        sync.Mutex

	// Rate limiting
	lastRequest time.Time
	minInterval time.Duration
}

// HTTPEmbedderConfig configures the HTTP embedder.
type HTTPEmbedderConfig struct {
	APIKey    string // defaults to RAMPART_EMBED_API_KEY env
	BaseURL   string // e.g. https://api.example.com/v1
	Model     string // defaults to text-embedding-3-small
	Dimension int    // defaults to 768
}

// NewHTTPEmbedder creates an embedder for an OpenAI-style embeddings API.
func NewHTTPEmbedder(cfg HTTPEmbedderConfig) (*HTTPEmbedder, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("RAMPART_EMBED_API_KEY")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("embedder base URL not configured")
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = 768
	}

	e := &HTTPEmbedder{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		dimension:   cfg.Dimension,
		client:      httputil.EmbedClient(),
		minInterval: 50 * time.Millisecond, // max 20 req/sec against shared endpoints
	}

	log.Printf("[EMBEDDER] HTTP embedder initialized: model=%s, dim=%d", cfg.Model, cfg.Dimension)
	return e, nil
}

// embeddingRequest is the OpenAI-style embeddings request format.
type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

// embeddingResponse is the OpenAI-style embeddings response format.
type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// Embed generates an embedding for a single text.
func (e *HTTPEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 || embeddings[0] == nil {
		return nil, fmt.Errorf("no embedding returned")
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one call.
func (e *HTTPEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	// Rate limiting: sleeping under the lock serializes concurrent batches
	e.mu.Lock()
	elapsed := time.Since(e.lastRequest)
	if elapsed < e.minInterval {
		time.Sleep(e.minInterval - elapsed)
	}
	e.lastRequest = time.Now()
	e.mu.Unlock()

	headers := map[string]string{}
	if e.apiKey != "" {
		headers["Authorization"] = "Bearer " + e.apiKey
	}

	var resp embeddingResponse
	err := httputil.PostJSON(ctx, e.client, e.baseURL+"/embeddings", headers, embeddingRequest{
		Model:      e.model,
		Input:      texts,
		Dimensions: e.dimension,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	result := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(texts) {
			continue
		}
		vec := make([]float32, len(data.Embedding))
		for i, v := range data.Embedding {
			vec[i] = float32(v)
		}
		result[data.Index] = vec
	}
	return result, nil
}

// Dimension returns the embedding dimension.
func (e *HTTPEmbedder) Dimension() int {
	return e.dimension
}
