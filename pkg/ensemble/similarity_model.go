package ensemble

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/philippgille/chromem-go"
)

// SimilarityModel votes by nearest-neighbor lookup against a seeded
// in-memory vector index. It behaves like any other ensemble model: the
// best-matching seed's category becomes the label, the cosine similarity
// becomes the score. A benign best match therefore reads as clean
// evidence, which is what keeps ops language ("kill the process") from
// voting as a threat.
type SimilarityModel struct {
	id         string
	db         *chromem.DB
	collection *chromem.Collection
	mu         sync.RWMutex
	seeded     int
	ready      bool
}

// NewSimilarityModel creates an unseeded similarity model backed by the
// given embedding provider. Call Seed before dispatching to it.
func NewSimilarityModel(id string, embedder EmbeddingProvider) (*SimilarityModel, error) {
	if embedder == nil {
		return nil, fmt.Errorf("similarity model requires an embedding provider")
	}
	if id == "" {
		id = "similarity"
	}

	db := chromem.NewDB()
	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		return embedder.Embed(ctx, text)
	}
	collection, err := db.CreateCollection("risk_phrases", nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to create similarity collection: %w", err)
	}

	return &SimilarityModel{
		id:         id,
		db:         db,
		collection: collection,
	}, nil
}

// Seed embeds and indexes the reference phrases. Safe to call again to
// extend the index at runtime.
func (s *SimilarityModel) Seed(ctx context.Context, seeds []SeedPhrase) error {
	if len(seeds) == 0 {
		return fmt.Errorf("no seed phrases provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.seeded
	docs := make([]chromem.Document, 0, len(seeds))
	for i, seed := range seeds {
		docs = append(docs, chromem.Document{
			ID:      fmt.Sprintf("seed_%d", base+i),
			Content: strings.ToLower(seed.Text),
			Metadata: map[string]string{
				"category": seed.Category,
			},
		})
	}

	// One worker so a remote embedding endpoint is not hammered at startup.
	if err := s.collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("failed to seed similarity index: %w", err)
	}

	s.seeded += len(docs)
	s.ready = true
	log.Printf("[ENSEMBLE] Similarity model %s seeded with %d phrases", s.id, len(docs))
	return nil
}

// Ready reports whether the index has been seeded.
func (s *SimilarityModel) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// ID implements Model.
func (s *SimilarityModel) ID() string {
	return s.id
}

// Kind implements Model. Similarity scores extract like toxicity labels.
func (s *SimilarityModel) Kind() Kind {
	return KindToxicity
}

// Classify returns the single best seed match as a label. Only one label
// comes back so near-misses across categories cannot stack into a risk
// estimate above the best similarity.
func (s *SimilarityModel) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return nil, fmt.Errorf("similarity model %s not seeded", s.id)
	}

	results, err := s.collection.Query(ctx, strings.ToLower(text), 1, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}
	if len(results) == 0 {
		return []LabelScore{{Label: "benign", Score: 0}}, nil
	}

	best := results[0]
	return []LabelScore{{
		Label: best.Metadata["category"],
		Score: clampUnit(float64(best.Similarity)),
	}}, nil
}
