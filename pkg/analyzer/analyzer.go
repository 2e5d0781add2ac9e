// Package analyzer is the public facade: it assembles the rule tables,
// scoring modules, tuning store, ensemble models and result cache from
// one Config, and exposes the thin entry points callers actually use.
package analyzer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/TryMightyAI/rampart/pkg/cache"
	"github.com/TryMightyAI/rampart/pkg/config"
	"github.com/TryMightyAI/rampart/pkg/engine"
	"github.com/TryMightyAI/rampart/pkg/ensemble"
	"github.com/TryMightyAI/rampart/pkg/hyper"
	"github.com/TryMightyAI/rampart/pkg/rules"
	"github.com/TryMightyAI/rampart/pkg/scorers"
	"github.com/TryMightyAI/rampart/pkg/telemetry"
)

// seedTimeout bounds the similarity-index build at startup. Seeding makes
// one embedding call per phrase, so this is the slowest optional step.
const seedTimeout = 60 * time.Second

// Analyzer wires the pipeline together. Safe for concurrent use.
type Analyzer struct {
	cfg    *config.Config
	engine *engine.Engine
	cache  cache.Cache

	// closers are the optional backends holding real resources.
	closers []func() error
}

// New builds an analyzer from cfg. Required pieces (rules, modules,
// tuning) either work or return an error; optional pieces (ensemble
// models, cache backends) degrade with a log line, matching how a
// moderation pipeline should start even when its extras are down.
func New(cfg *config.Config) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Compile the rule tables up front so the first analysis doesn't pay
	// for regex compilation.
	rules.Get()

	hp, err := tuningFor(cfg)
	if err != nil {
		return nil, err
	}
	store := hyper.NewStore(hp)

	a := &Analyzer{cfg: cfg}

	adapter := a.buildAdapter(cfg)

	engCfg := engine.Config{
		SpamThreshold:   cfg.SpamThreshold,
		ParallelModules: cfg.ParallelModules,
		Modules:         cfg.Modules,
		ModuleConfigs:   moduleConfigs(cfg),
	}
	eng, err := engine.New(scorers.NewRegistry(), store, adapter, engCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	a.engine = eng

	a.cache = a.buildCache(cfg)
	return a, nil
}

// tuningFor resolves the hyperparameter set: the named profile, unless a
// YAML tuning file is configured, which takes precedence.
func tuningFor(cfg *config.Config) (hyper.Hyperparameters, error) {
	profile := cfg.Profile
	if profile == "" {
		profile = "balanced"
	}
	hp, err := hyper.Profile(profile)
	if err != nil {
		return hyper.Hyperparameters{}, err
	}
	if cfg.HyperFile != "" {
		hp = hyper.LoadFileOrDefaults(cfg.HyperFile)
	}
	return hp, nil
}

func moduleConfigs(cfg *config.Config) map[string]scorers.Config {
	if len(cfg.ModuleConfigs) == 0 {
		return nil
	}
	out := make(map[string]scorers.Config, len(cfg.ModuleConfigs))
	for name, mc := range cfg.ModuleConfigs {
		out[name] = scorers.Config{Weight: mc.Weight, ContextAware: mc.ContextAware}
	}
	return out
}

// buildAdapter wires every configured ensemble backend, logging a ✓ or ○
// line per backend. Returns nil when no model came up; the engine then
// skips the voting phase entirely.
func (a *Analyzer) buildAdapter(cfg *config.Config) *ensemble.Adapter {
	if !cfg.EnableEnsemble {
		return nil
	}

	adapter := ensemble.NewAdapter(cfg.MaxModelCalls)

	if cfg.EnableHugot {
		for _, mc := range []ensemble.HugotModelConfig{
			ensemble.ToxicityModelConfig(),
			ensemble.EmotionModelConfig(),
			ensemble.SocialModelConfig(),
		} {
			model, err := ensemble.NewHugotModel(mc)
			if err != nil {
				log.Printf("○ Local model %s disabled: %v", mc.ID, err)
				continue
			}
			adapter.AddModel(model, kindWeight(model.Kind()))
			a.closers = append(a.closers, model.Close)
			log.Printf("✓ Local model %s enabled (%s)", mc.ID, mc.Kind)
		}
	}

	for _, entry := range cfg.ModelEndpoints {
		id, kindName, url, err := config.ParseModelEndpoint(entry)
		if err != nil {
			log.Printf("○ Remote model skipped: %v", err)
			continue
		}
		kind, err := parseKind(kindName)
		if err != nil {
			log.Printf("○ Remote model %s skipped: %v", id, err)
			continue
		}
		model, err := ensemble.NewHTTPModel(ensemble.HTTPModelConfig{
			ID:    id,
			Kind:  kind,
			URL:   url,
			Token: cfg.ModelToken,
		})
		if err != nil {
			log.Printf("○ Remote model %s disabled: %v", id, err)
			continue
		}
		adapter.AddModel(model, kindWeight(kind))
		log.Printf("✓ Remote model %s enabled (%s)", id, kind)
	}

	if cfg.EmbedBaseURL != "" {
		if model := buildSimilarityModel(cfg); model != nil {
			adapter.AddModel(model, similarityWeight)
			log.Printf("✓ Similarity model enabled")
		}
	}

	if adapter.ModelCount() == 0 {
		log.Printf("○ Ensemble voting disabled (no models came up)")
		return nil
	}
	return adapter
}

// buildSimilarityModel seeds the chromem index from the configured seed
// file or the built-in phrases. Seeding failures disable the model.
func buildSimilarityModel(cfg *config.Config) *ensemble.SimilarityModel {
	embedder, err := ensemble.NewHTTPEmbedder(ensemble.HTTPEmbedderConfig{
		APIKey:  cfg.EmbedAPIKey,
		BaseURL: cfg.EmbedBaseURL,
		Model:   cfg.EmbedModel,
	})
	if err != nil {
		log.Printf("○ Similarity model disabled (embedder: %v)", err)
		return nil
	}

	model, err := ensemble.NewSimilarityModel("similarity", embedder)
	if err != nil {
		log.Printf("○ Similarity model disabled: %v", err)
		return nil
	}

	seeds := ensemble.DefaultSeedPhrases()
	if cfg.SeedFile != "" {
		seeds = ensemble.LoadSeedFileOrDefaults(cfg.SeedFile)
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()
	if err := model.Seed(ctx, seeds); err != nil {
		log.Printf("○ Similarity model disabled (seeding: %v)", err)
		return nil
	}
	return model
}

// buildCache selects the configured result cache, or nil when caching is
// off or the backend fails to come up.
func (a *Analyzer) buildCache(cfg *config.Config) cache.Cache {
	if !cfg.EnableCaching || cfg.CacheBackend == config.CacheNone {
		return nil
	}

	switch cfg.CacheBackend {
	case config.CacheRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		if err != nil {
			log.Printf("○ Redis result cache disabled: %v", err)
			return nil
		}
		a.closers = append(a.closers, c.Close)
		log.Printf("✓ Redis result cache enabled (%s)", cfg.RedisAddr)
		return c
	default:
		c, err := cache.NewMemory(cfg.CacheSize)
		if err != nil {
			log.Printf("○ Memory result cache disabled: %v", err)
			return nil
		}
		return c
	}
}

// Analyze scores one input, consulting the result cache first.
func (a *Analyzer) Analyze(ctx context.Context, in engine.AnalysisInput) engine.AnalysisResult {
	key := ""
	if a.cache != nil {
		key = cache.Key(in.Name, in.Email, in.Subject, in.Message)
		if cached, ok := a.cache.Get(ctx, key); ok {
			return cached
		}
	}

	result := a.engine.Analyze(ctx, in)
	telemetry.GlobalClient.TrackAnalysis(result.AnalysisID, result.Score, string(result.RiskLevel), result.ProcessingTimeMs)

	if a.cache != nil {
		a.cache.Set(ctx, key, result)
	}
	return result
}

// AnalyzeText scores a bare message string.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) engine.AnalysisResult {
	return a.Analyze(ctx, engine.AnalysisInput{Message: text})
}

// IsSpam reports whether text crosses the spam threshold.
func (a *Analyzer) IsSpam(ctx context.Context, text string) bool {
	return a.AnalyzeText(ctx, text).IsSpam
}

// Score returns the risk score for text.
func (a *Analyzer) Score(ctx context.Context, text string) float64 {
	return a.AnalyzeText(ctx, text).Score
}

// HyperparameterRanges returns the legal [min, max] for every tunable,
// keyed by dotted path. Optimizers bound their search with this.
func (a *Analyzer) HyperparameterRanges() map[string][2]float64 {
	return hyper.Ranges()
}

// SetHyperparameters publishes a partial tuning update. The swap is
// all-or-nothing and atomic: in-flight analyses finish on the snapshot
// they started with.
func (a *Analyzer) SetHyperparameters(partial map[string]float64) error {
	return a.engine.Hyper().Apply(partial)
}

// EvaluateHyperparameters scores a candidate tuning against labeled
// cases without touching the live tuning.
func (a *Analyzer) EvaluateHyperparameters(ctx context.Context, params map[string]float64, cases []engine.LabeledCase) (engine.Metrics, error) {
	return a.engine.EvaluateHyperparameters(ctx, params, cases)
}

// Close releases the optional backends (model sessions, cache clients).
func (a *Analyzer) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Static per-kind model weights; the adapter adjusts them per call.
const similarityWeight = 0.7

func kindWeight(kind ensemble.Kind) float64 {
	switch kind {
	case ensemble.KindToxicity:
		return 1.2
	case ensemble.KindEmotion:
		return 1.0
	case ensemble.KindSocial:
		return 0.9
	case ensemble.KindSentiment:
		return 0.8
	}
	return 1.0
}

func parseKind(name string) (ensemble.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "toxicity":
		return ensemble.KindToxicity, nil
	case "sentiment":
		return ensemble.KindSentiment, nil
	case "emotion":
		return ensemble.KindEmotion, nil
	case "social":
		return ensemble.KindSocial, nil
	}
	return "", fmt.Errorf("unknown model kind %q", name)
}
