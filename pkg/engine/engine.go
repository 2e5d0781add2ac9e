// Package engine runs the risk-scoring pipeline: normalize, classify
// context, run the scoring modules and rule table, take the ensemble
// vote, apply protective adjustments, and band the final score. The
// engine only orchestrates; all detection lives in the packages it
// drives.
package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TryMightyAI/rampart/pkg/ensemble"
	"github.com/TryMightyAI/rampart/pkg/hyper"
	"github.com/TryMightyAI/rampart/pkg/scorers"
	"github.com/TryMightyAI/rampart/pkg/textnorm"
	"github.com/TryMightyAI/rampart/pkg/tone"
)

// fallbackScore is the conservative verdict when analysis itself fails.
// Failing open on a scoring error would let the worst inputs through, so
// a broken analysis reads as HIGH until a human looks.
const fallbackScore = 10.0

// Config selects which modules run and how their output is combined.
type Config struct {
	// SpamThreshold is the score at or above which IsSpam is set.
	SpamThreshold float64

	// ParallelModules fans the scoring modules out over goroutines.
	// Output is identical either way; only latency changes.
	ParallelModules bool

	// Modules lists the module names to run. Empty runs every module the
	// registry knows.
	Modules []string

	// ModuleConfigs overrides per-module settings by name.
	ModuleConfigs map[string]scorers.Config
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{SpamThreshold: 5.0}
}

// Engine is the phase pipeline. Safe for concurrent Analyze calls: all
// per-call state lives on the stack, tuning comes from atomic snapshots.
type Engine struct {
	cfg     Config
	store   *hyper.Store
	adapter *ensemble.Adapter

	// modules run in the scoring phase; table is the pattern-table module,
	// which gets its own rule-matching phase.
	modules []scorers.Module
	table   scorers.Module
	weights map[string]float64
}

// New builds an engine from a module registry, a tuning store, and an
// optional ensemble adapter (nil disables the voting phase).
func New(registry *scorers.Registry, store *hyper.Store, adapter *ensemble.Adapter, cfg Config) (*Engine, error) {
	if registry == nil {
		return nil, fmt.Errorf("engine requires a module registry")
	}
	if store == nil {
		store = hyper.NewStore(hyper.Defaults())
	}
	if cfg.SpamThreshold <= 0 {
		cfg.SpamThreshold = DefaultConfig().SpamThreshold
	}

	e := &Engine{
		cfg:     cfg,
		store:   store,
		adapter: adapter,
		weights: make(map[string]float64),
	}

	names := cfg.Modules
	if len(names) == 0 {
		names = registry.Names()
	}

	for _, name := range names {
		module, err := registry.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to build module %s: %w", name, err)
		}

		mcfg, ok := cfg.ModuleConfigs[name]
		if !ok {
			mcfg = scorers.DefaultConfig()
		}
		if mcfg.Weight <= 0 {
			mcfg.Weight = 1.0
		}
		if err := module.Init(mcfg); err != nil {
			return nil, fmt.Errorf("failed to init module %s: %w", name, err)
		}
		e.weights[name] = mcfg.Weight

		if name == scorers.ModulePatternTable {
			e.table = module
			continue
		}
		e.modules = append(e.modules, module)
	}

	return e, nil
}

// Hyper exposes the tuning store for snapshot swaps.
func (e *Engine) Hyper() *hyper.Store {
	return e.store
}

// ModuleNames returns the active module names in execution order, the
// pattern table last.
func (e *Engine) ModuleNames() []string {
	names := make([]string, 0, len(e.modules)+1)
	for _, m := range e.modules {
		names = append(names, m.Name())
	}
	if e.table != nil {
		names = append(names, e.table.Name())
	}
	return names
}

// Analyze scores one input. It never returns an error and never panics:
// any internal failure produces the conservative fallback verdict.
func (e *Engine) Analyze(ctx context.Context, in AnalysisInput) (result AnalysisResult) {
	start := time.Now()
	analysisID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] Analysis %s panicked: %v", analysisID, r)
			result = AnalysisResult{
				AnalysisID:       analysisID,
				Score:            fallbackScore,
				RiskLevel:        RiskHigh,
				IsSpam:           true,
				Flags:            []string{"[ANALYSIS-ERROR] analysis failed, conservative fallback applied"},
				ProcessingTimeMs: elapsedMs(start),
			}
		}
	}()

	if in.IsEmpty() {
		return AnalysisResult{
			AnalysisID:       analysisID,
			Score:            0,
			RiskLevel:        RiskClean,
			IsSpam:           false,
			ProcessingTimeMs: elapsedMs(start),
		}
	}

	hp := e.store.Snapshot()
	allText := in.AllText()

	// Normalize. The professional hint is probed from the raw text so
	// workplace abbreviations are not expanded into their aggressive long
	// forms before scoring.
	probe := tone.Detect(allText, allText)
	norm := textnorm.Normalize(allText, textnorm.Options{ProfessionalHint: probe.IsProfessional})

	// Context classification on the folded form.
	signals := tone.Detect(allText, norm.Normalized)

	var flags []string
	if signals.EarlyProfessional {
		flags = append(flags, "[TONE] early professional context detected")
	}

	modInput := scorers.Input{
		Name:       in.Name,
		Email:      in.Email,
		Subject:    in.Subject,
		Message:    in.Message,
		Raw:        allText,
		Normalized: norm.Normalized,
		Evasion:    norm.Signals,
		Context:    signals,
		Hyper:      hp,
	}

	score := 0.0

	// Scoring modules. A failing module contributes zero and a flag;
	// the analysis always continues.
	moduleScore, moduleFlags := e.runModules(ctx, modInput)
	score += moduleScore
	flags = append(flags, moduleFlags...)

	// Rule-table matching.
	if e.table != nil {
		sub, err := runModule(ctx, e.table, modInput)
		if err != nil {
			flags = append(flags, fmt.Sprintf("[MODULE-ERROR %s] %v", e.table.Name(), err))
		} else {
			score += sub.Points * e.weights[e.table.Name()]
			flags = append(flags, sub.Tags...)
		}
	}

	// Ensemble vote.
	voted := false
	voteConfidence := 0.0
	if e.adapter != nil && e.adapter.ModelCount() > 0 {
		outcome := e.adapter.Vote(ctx, allText, norm.Normalized, signals, hp)
		if outcome.Responding >= hp.Ensemble.MinModels {
			voted = true
			voteConfidence = outcome.Confidence
			if outcome.Score > hp.Ensemble.VotingThreshold && outcome.Confidence > hp.Ensemble.ConfidenceThreshold {
				contribution := outcome.Score * hp.Ensemble.VoteScale
				score += contribution
				flags = append(flags, fmt.Sprintf(
					"[ENSEMBLE] %d models voted %.2f (confidence %.2f), +%.1f",
					outcome.Responding, outcome.Score, outcome.Confidence, contribution))
			} else {
				flags = append(flags, fmt.Sprintf(
					"[ENSEMBLE] vote %.2f (confidence %.2f) below thresholds, not applied",
					outcome.Score, outcome.Confidence))
			}
		} else {
			flags = append(flags, fmt.Sprintf(
				"[ENSEMBLE] %d of %d required models responded, vote skipped",
				outcome.Responding, hp.Ensemble.MinModels))
		}
	}

	// Protective adjustments, soft cap, confidence scaling.
	score, adjustFlags := applyAdjustments(score, signals, voted, voteConfidence, hp)
	flags = append(flags, adjustFlags...)

	score = clampScore(score)
	return AnalysisResult{
		AnalysisID:       analysisID,
		Score:            score,
		RiskLevel:        riskLevelFor(score, hp.Thresholds),
		IsSpam:           score >= e.cfg.SpamThreshold,
		Flags:            flags,
		ProcessingTimeMs: elapsedMs(start),
	}
}

// runModules executes the scoring modules, sequentially or fanned out.
// Contributions are folded in registration order either way, so the two
// modes produce identical output.
func (e *Engine) runModules(ctx context.Context, in scorers.Input) (float64, []string) {
	type outcome struct {
		sub scorers.SubScore
		err error
	}

	outcomes := make([]outcome, len(e.modules))
	if e.cfg.ParallelModules {
		var wg sync.WaitGroup
		for i, m := range e.modules {
			wg.Add(1)
			go func(i int, m scorers.Module) {
				defer wg.Done()
				sub, err := runModule(ctx, m, in)
				outcomes[i] = outcome{sub: sub, err: err}
			}(i, m)
		}
		wg.Wait()
	} else {
		for i, m := range e.modules {
			sub, err := runModule(ctx, m, in)
			outcomes[i] = outcome{sub: sub, err: err}
		}
	}

	score := 0.0
	var flags []string
	for i, out := range outcomes {
		name := e.modules[i].Name()
		if out.err != nil {
			flags = append(flags, fmt.Sprintf("[MODULE-ERROR %s] %v", name, out.err))
			continue
		}
		score += out.sub.Points * e.weights[name]
		flags = append(flags, out.sub.Tags...)
	}
	return score, flags
}

// runModule contains one module call: an error or panic becomes that
// module's failure, never the analysis's.
func runModule(ctx context.Context, m scorers.Module, in scorers.Input) (sub scorers.SubScore, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("module panic: %v", r)
		}
	}()
	return m.Analyze(ctx, in)
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
