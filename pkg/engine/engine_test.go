package engine

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/TryMightyAI/rampart/pkg/ensemble"
	"github.com/TryMightyAI/rampart/pkg/hyper"
	"github.com/TryMightyAI/rampart/pkg/scorers"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(scorers.NewRegistry(), hyper.NewStore(hyper.Defaults()), nil, DefaultConfig())
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	return e
}

func TestAnalyzeEmptyInput(t *testing.T) {
	e := newTestEngine(t)

	for _, in := range []AnalysisInput{
		{},
		{Message: "   "},
		{Name: "\t", Subject: " ", Message: "\n"},
	} {
		res := e.Analyze(context.Background(), in)
		if res.Score != 0 {
			t.Errorf("expected zero score for empty input, got %v", res.Score)
		}
		if res.RiskLevel != RiskClean {
			t.Errorf("expected CLEAN for empty input, got %s", res.RiskLevel)
		}
		if res.IsSpam {
			t.Error("expected empty input not spam")
		}
		if res.AnalysisID == "" {
			t.Error("expected analysis ID even for empty input")
		}
	}
}

func TestAnalyzeHarassment(t *testing.T) {
	e := newTestEngine(t)

	res := e.Analyze(context.Background(), AnalysisInput{
		Message: "Go kill yourself, nobody likes you",
	})

	if !res.IsSpam {
		t.Error("expected harassment flagged as spam")
	}
	if res.RiskLevel != RiskHigh && res.RiskLevel != RiskCritical {
		t.Errorf("expected HIGH or CRITICAL, got %s (score %.1f)", res.RiskLevel, res.Score)
	}
}

func TestAnalyzeProfessionalContext(t *testing.T) {
	e := newTestEngine(t)

	res := e.Analyze(context.Background(), AnalysisInput{
		Message: "We need to kill the runaway process on server-prod-03 before it crashes the cluster.",
	})

	if res.IsSpam {
		t.Errorf("expected operational message not spam, got score %.1f flags %v", res.Score, res.Flags)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	e := newTestEngine(t)
	in := AnalysisInput{
		Name:    "Alex",
		Subject: "You again",
		Message: "you're worthless and everyone hates you, just quit",
	}

	first := e.Analyze(context.Background(), in)
	for i := 0; i < 5; i++ {
		again := e.Analyze(context.Background(), in)
		if again.Score != first.Score {
			t.Fatalf("run %d: score %v, want %v", i, again.Score, first.Score)
		}
		if again.RiskLevel != first.RiskLevel || again.IsSpam != first.IsSpam {
			t.Fatalf("run %d: verdict diverged", i)
		}
		if len(again.Flags) != len(first.Flags) {
			t.Fatalf("run %d: flag count %d, want %d", i, len(again.Flags), len(first.Flags))
		}
		for j := range again.Flags {
			if again.Flags[j] != first.Flags[j] {
				t.Fatalf("run %d: flag %d %q, want %q", i, j, again.Flags[j], first.Flags[j])
			}
		}
	}
}

func TestAnalyzeNonNegative(t *testing.T) {
	e := newTestEngine(t)

	inputs := []AnalysisInput{
		{Message: "have you considered a different approach, hope this helps"},
		{Message: "oh great, another deploy broke the staging database, thanks a lot"},
		{Message: "ngl the demo was mid but the api design is goated fr"},
		{Message: "please review my pull request for the incident postmortem"},
		{Message: "lovely weather today"},
	}

	for _, in := range inputs {
		res := e.Analyze(context.Background(), in)
		if res.Score < 0 {
			t.Errorf("negative score %v for %q", res.Score, in.Message)
		}
	}
}

func TestAnalyzeParallelMatchesSequential(t *testing.T) {
	seq := newTestEngine(t)

	pcfg := DefaultConfig()
	pcfg.ParallelModules = true
	par, err := New(scorers.NewRegistry(), hyper.NewStore(hyper.Defaults()), nil, pcfg)
	if err != nil {
		t.Fatalf("failed to build parallel engine: %v", err)
	}

	inputs := []AnalysisInput{
		{Message: "Go kill yourself, nobody likes you"},
		{Message: "We need to kill the runaway process on server-prod-03 before it crashes the cluster."},
		{Message: "URGENT: verify your account immediately or lose access"},
		{Message: "k i l l   y o u r s e l f"},
	}

	for _, in := range inputs {
		a := seq.Analyze(context.Background(), in)
		b := par.Analyze(context.Background(), in)
		if a.Score != b.Score {
			t.Errorf("%q: sequential %.2f, parallel %.2f", in.Message, a.Score, b.Score)
		}
		if len(a.Flags) != len(b.Flags) {
			t.Errorf("%q: flag count %d vs %d", in.Message, len(a.Flags), len(b.Flags))
			continue
		}
		for i := range a.Flags {
			if a.Flags[i] != b.Flags[i] {
				t.Errorf("%q: flag %d %q vs %q", in.Message, i, a.Flags[i], b.Flags[i])
			}
		}
	}
}

// faultyModule always fails; it must cost its own contribution and
// nothing else.
type faultyModule struct{ panics bool }

func (f *faultyModule) Name() string                  { return "faulty" }
func (f *faultyModule) Init(cfg scorers.Config) error { return nil }

func (f *faultyModule) Analyze(ctx context.Context, in scorers.Input) (scorers.SubScore, error) {
	if f.panics {
		panic("dictionary index out of range")
	}
	return scorers.SubScore{}, errors.New("model file corrupted")
}

func newFaultyRegistry(t *testing.T, panics bool) *scorers.Registry {
	t.Helper()
	reg := scorers.NewRegistry()
	if err := reg.Register("faulty", func() scorers.Module { return &faultyModule{panics: panics} }); err != nil {
		t.Fatalf("failed to register faulty module: %v", err)
	}
	return reg
}

func TestAnalyzeModuleErrorIsolated(t *testing.T) {
	baseline := newTestEngine(t)

	e, err := New(newFaultyRegistry(t, false), hyper.NewStore(hyper.Defaults()), nil, DefaultConfig())
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	in := AnalysisInput{Message: "Go kill yourself, nobody likes you"}
	res := e.Analyze(context.Background(), in)
	want := baseline.Analyze(context.Background(), in)

	if res.Score != want.Score {
		t.Errorf("faulty module changed the score: %.2f, want %.2f", res.Score, want.Score)
	}
	if !hasFlagPrefix(res.Flags, "[MODULE-ERROR faulty]") {
		t.Errorf("expected module error flag, got %v", res.Flags)
	}
}

func TestAnalyzeModulePanicContained(t *testing.T) {
	e, err := New(newFaultyRegistry(t, true), hyper.NewStore(hyper.Defaults()), nil, DefaultConfig())
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	res := e.Analyze(context.Background(), AnalysisInput{Message: "Go kill yourself, nobody likes you"})

	if !hasFlagPrefix(res.Flags, "[MODULE-ERROR faulty]") {
		t.Errorf("expected panic contained as module error, got %v", res.Flags)
	}
	if hasFlagPrefix(res.Flags, "[ANALYSIS-ERROR]") {
		t.Error("module panic must not trigger the analysis fallback")
	}
	if !res.IsSpam {
		t.Error("remaining modules should still score the input as spam")
	}
}

func TestAnalyzeFallbackOnInternalFailure(t *testing.T) {
	// A nil store panics inside the pipeline; the recover path must hand
	// back the conservative verdict instead of crashing the caller.
	e := &Engine{cfg: DefaultConfig()}

	res := e.Analyze(context.Background(), AnalysisInput{Message: "anything"})

	if res.Score != fallbackScore {
		t.Errorf("expected fallback score %.1f, got %.1f", fallbackScore, res.Score)
	}
	if res.RiskLevel != RiskHigh {
		t.Errorf("expected HIGH fallback, got %s", res.RiskLevel)
	}
	if !res.IsSpam {
		t.Error("fallback must fail closed")
	}
	if !hasFlagPrefix(res.Flags, "[ANALYSIS-ERROR]") {
		t.Errorf("expected analysis error flag, got %v", res.Flags)
	}
}

// stubModel is a scripted ensemble model for gating tests.
type stubModel struct {
	id     string
	labels []ensemble.LabelScore
}

func (s *stubModel) ID() string          { return s.id }
func (s *stubModel) Kind() ensemble.Kind { return ensemble.KindToxicity }

func (s *stubModel) Classify(ctx context.Context, text string) ([]ensemble.LabelScore, error) {
	return s.labels, nil
}

func engineWithModels(t *testing.T, models ...ensemble.Model) *Engine {
	t.Helper()
	adapter := ensemble.NewAdapter(4)
	for _, m := range models {
		adapter.AddModel(m, 1.0)
	}
	e, err := New(scorers.NewRegistry(), hyper.NewStore(hyper.Defaults()), adapter, DefaultConfig())
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	return e
}

func TestAnalyzeEnsembleRequiresQuorum(t *testing.T) {
	in := AnalysisInput{Message: "Go kill yourself, nobody likes you"}
	baseline := newTestEngine(t).Analyze(context.Background(), in)

	// One responder is below the two-model quorum: zero contribution.
	e := engineWithModels(t, &stubModel{
		id:     "lone",
		labels: []ensemble.LabelScore{{Label: "toxic", Score: 0.95}},
	})
	res := e.Analyze(context.Background(), in)

	if res.Score != baseline.Score {
		t.Errorf("single responder changed the score: %.2f, want %.2f", res.Score, baseline.Score)
	}
	if !hasFlagPrefix(res.Flags, "[ENSEMBLE]") {
		t.Errorf("expected ensemble skip flag, got %v", res.Flags)
	}
}

func TestAnalyzeEnsembleVoteApplied(t *testing.T) {
	in := AnalysisInput{Message: "Go kill yourself, nobody likes you"}
	baseline := newTestEngine(t).Analyze(context.Background(), in)

	e := engineWithModels(t,
		&stubModel{id: "tox-a", labels: []ensemble.LabelScore{{Label: "toxic", Score: 0.9}}},
		&stubModel{id: "tox-b", labels: []ensemble.LabelScore{{Label: "toxic", Score: 0.8}}},
	)
	res := e.Analyze(context.Background(), in)

	if res.Score <= baseline.Score {
		t.Errorf("expected ensemble vote to raise the score above %.2f, got %.2f", baseline.Score, res.Score)
	}
	if !flagContains(res.Flags, "models voted") {
		t.Errorf("expected applied-vote flag, got %v", res.Flags)
	}
}

func TestAnalyzeEnsembleBelowThresholdNotApplied(t *testing.T) {
	in := AnalysisInput{Message: "Go kill yourself, nobody likes you"}
	baseline := newTestEngine(t).Analyze(context.Background(), in)

	// Two responders but a weak vote: recorded, never added. The weak
	// confidence (0.2 < 0.5) also scales the lexical score down.
	e := engineWithModels(t,
		&stubModel{id: "tox-a", labels: []ensemble.LabelScore{{Label: "toxic", Score: 0.2}}},
		&stubModel{id: "tox-b", labels: []ensemble.LabelScore{{Label: "toxic", Score: 0.2}}},
	)
	res := e.Analyze(context.Background(), in)

	if !flagContains(res.Flags, "not applied") {
		t.Errorf("expected below-threshold flag, got %v", res.Flags)
	}

	// scale = 0.75 + 0.25*(0.2/0.5)
	want := baseline.Score * 0.85
	if math.Abs(res.Score-want) > 1e-6 {
		t.Errorf("expected low-confidence scaling to %.3f, got %.3f", want, res.Score)
	}
}

func TestAnalyzeEvasionRecovery(t *testing.T) {
	e := newTestEngine(t)

	plain := e.Analyze(context.Background(), AnalysisInput{Message: "kill yourself"})
	spaced := e.Analyze(context.Background(), AnalysisInput{Message: "k i l l   y o u r s e l f"})
	leet := e.Analyze(context.Background(), AnalysisInput{Message: "k1ll y0urself"})

	for name, res := range map[string]AnalysisResult{"plain": plain, "spaced": spaced, "leet": leet} {
		if !res.IsSpam {
			t.Errorf("%s form not flagged as spam (score %.1f)", name, res.Score)
		}
	}

	// The spaced form may pick up evasion points but must stay within a
	// bounded delta of the plain form.
	if delta := math.Abs(spaced.Score - plain.Score); delta > 10 {
		t.Errorf("spaced form drifted %.1f points from plain", delta)
	}
}

func TestAnalyzeSpamThresholdConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpamThreshold = 40.0
	e, err := New(scorers.NewRegistry(), hyper.NewStore(hyper.Defaults()), nil, cfg)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	res := e.Analyze(context.Background(), AnalysisInput{Message: "Go kill yourself, nobody likes you"})

	// Risk banding is untouched by the spam threshold.
	if res.RiskLevel != RiskHigh && res.RiskLevel != RiskCritical {
		t.Errorf("expected HIGH or CRITICAL, got %s", res.RiskLevel)
	}
	if res.IsSpam {
		t.Errorf("score %.1f should be below the raised threshold 40", res.Score)
	}
}

func TestRiskLevelBands(t *testing.T) {
	th := hyper.Defaults().Thresholds

	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskClean},
		{1.99, RiskClean},
		{2, RiskLow},
		{4.99, RiskLow},
		{5, RiskModerate},
		{9.99, RiskModerate},
		{10, RiskHigh},
		{14.99, RiskHigh},
		{15, RiskCritical},
		{100, RiskCritical},
	}
	for _, tt := range tests {
		if got := riskLevelFor(tt.score, th); got != tt.want {
			t.Errorf("riskLevelFor(%v): expected %s, got %s", tt.score, tt.want, got)
		}
	}
}

func TestModuleNamesTableLast(t *testing.T) {
	e := newTestEngine(t)

	names := e.ModuleNames()
	if len(names) != 5 {
		t.Fatalf("expected 5 modules, got %d: %v", len(names), names)
	}
	if names[len(names)-1] != scorers.ModulePatternTable {
		t.Errorf("expected pattern table last, got %v", names)
	}
}

func TestNewEngineDefaults(t *testing.T) {
	e, err := New(scorers.NewRegistry(), nil, nil, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.cfg.SpamThreshold != 5.0 {
		t.Errorf("expected default spam threshold 5.0, got %v", e.cfg.SpamThreshold)
	}

	if _, err := New(nil, nil, nil, Config{}); err == nil {
		t.Error("expected error for nil registry")
	}
}

func TestAllText(t *testing.T) {
	in := AnalysisInput{
		Name:    "Sam",
		Email:   "sam@example.com",
		Subject: "hello",
		Message: "world",
	}
	if got := in.AllText(); got != "Sam hello world" {
		t.Errorf("expected name+subject+message join, got %q", got)
	}
	if got := in.AllTextLower(); got != "sam hello world" {
		t.Errorf("expected lower-cased join, got %q", got)
	}
	if strings.Contains(in.AllText(), "example.com") {
		t.Error("email must not leak into scored text")
	}
}

func hasFlagPrefix(flags []string, prefix string) bool {
	for _, f := range flags {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

func flagContains(flags []string, substr string) bool {
	for _, f := range flags {
		if strings.Contains(f, substr) {
			return true
		}
	}
	return false
}
