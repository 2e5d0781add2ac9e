// Package ensemble dispatches text to external classifier models and folds
// their votes into one confidence-weighted risk estimate.
package ensemble

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/TryMightyAI/rampart/pkg/httputil"
	"github.com/TryMightyAI/rampart/pkg/hyper"
	"github.com/TryMightyAI/rampart/pkg/rules"
	"github.com/TryMightyAI/rampart/pkg/tone"
)

// Static per-model weights are adjusted per call: informal text favors
// social-register models, harmful keywords favor toxicity models,
// professional context discounts everyone.
const (
	informalBoost = 1.3
	harmfulBoost  = 1.4
)

type modelEntry struct {
	model  Model
	weight float64
}

// Adapter fans one text out to every registered model and aggregates the
// responses. Models are registered at startup; Vote is safe for concurrent
// use afterwards.
type Adapter struct {
	models  []modelEntry
	limiter *httputil.Limiter
}

// NewAdapter creates an adapter whose total in-flight model calls are
// bounded by maxInFlight (non-positive uses the limiter default).
func NewAdapter(maxInFlight int) *Adapter {
	return &Adapter{
		limiter: httputil.NewLimiter(maxInFlight),
	}
}

// AddModel registers a model with its static weight.
// Non-positive weights fall back to 1.0.
func (a *Adapter) AddModel(m Model, weight float64) {
	if weight <= 0 {
		weight = 1.0
	}
	a.models = append(a.models, modelEntry{model: m, weight: weight})
}

// ModelCount returns the number of registered models.
func (a *Adapter) ModelCount() int {
	return len(a.models)
}

// LimiterStats exposes dispatch limiter occupancy for logging.
func (a *Adapter) LimiterStats() httputil.LimiterStats {
	return a.limiter.Stats()
}

// Vote dispatches the text to all models concurrently and aggregates the
// responses. Failures and timeouts are logged and excluded; Vote itself
// never fails. Social-register models receive the raw text so slang and
// emoji survive; everyone else sees the normalized form.
func (a *Adapter) Vote(ctx context.Context, raw, normalized string, signals tone.Signals, hp *hyper.Hyperparameters) Outcome {
	if len(a.models) == 0 {
		return Outcome{}
	}
	if hp == nil {
		defaults := hyper.Defaults()
		hp = &defaults
	}

	timeout := time.Duration(hp.Ensemble.TimeoutMs) * time.Millisecond
	harmful := rules.Get().MatchAny(normalized, rules.CategoryHarassment) != nil

	type response struct {
		vote Vote
		ok   bool
	}

	responses := make([]response, len(a.models))
	var wg sync.WaitGroup
	for i, ent := range a.models {
		wg.Add(1)
		go func(i int, ent modelEntry) {
			defer wg.Done()

			if !a.limiter.TryAcquire() {
				log.Printf("[WARN] Ensemble dispatch saturated, skipping model %s", ent.model.ID())
				return
			}
			defer a.limiter.Release()

			mctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			text := normalized
			if ent.model.Kind() == KindSocial {
				text = raw
			}

			labels, err := ent.model.Classify(mctx, text)
			if err != nil {
				log.Printf("[WARN] Ensemble model %s excluded: %v", ent.model.ID(), err)
				return
			}

			score, confidence := extract(ent.model.Kind(), labels)
			responses[i] = response{
				vote: Vote{
					ModelID:    ent.model.ID(),
					RawScore:   score,
					Confidence: confidence,
					Weight:     adjustWeight(ent.weight, ent.model.Kind(), signals, harmful, hp),
				},
				ok: true,
			}
		}(i, ent)
	}
	wg.Wait()

	var out Outcome
	var sumWeight, sumScore, sumConfidence float64
	for _, r := range responses {
		if !r.ok {
			continue
		}
		out.Votes = append(out.Votes, r.vote)
		sumWeight += r.vote.Weight
		sumScore += r.vote.RawScore * r.vote.Weight
		sumConfidence += r.vote.Confidence * r.vote.Weight
	}
	out.Responding = len(out.Votes)

	if sumWeight > 0 {
		out.Score = sumScore / sumWeight
		out.Confidence = sumConfidence / sumWeight
	}
	return out
}

// adjustWeight applies the content heuristics to a model's static weight.
func adjustWeight(weight float64, kind Kind, signals tone.Signals, harmful bool, hp *hyper.Hyperparameters) float64 {
	if signals.IsModernSlang && (kind == KindSocial || kind == KindEmotion) {
		weight *= informalBoost
	}
	if harmful && kind == KindToxicity {
		weight *= harmfulBoost
	}
	if signals.IsProfessional {
		weight *= hp.Ensemble.ProfessionalDamp
	}
	return weight
}
