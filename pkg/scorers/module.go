// Package scorers hosts the pluggable scoring modules. Each module reads
// the prepared input and emits one SubScore; modules are independent, may
// run concurrently, and never see another module's output. A module
// failure is the caller's problem to contain, never to propagate.
package scorers

import (
	"context"

	"github.com/TryMightyAI/rampart/pkg/hyper"
	"github.com/TryMightyAI/rampart/pkg/textnorm"
	"github.com/TryMightyAI/rampart/pkg/tone"
)

// Input is the read-only view of one analysis handed to every module.
type Input struct {
	// Original fields as submitted.
	Name    string
	Email   string
	Subject string
	Message string

	// Raw is the concatenated original text, Normalized the folded form.
	Raw        string
	Normalized string

	// Evasion signals discovered during normalization.
	Evasion []textnorm.EvasionSignal

	// Context classification for this message.
	Context tone.Signals

	// Hyper is the tuning snapshot for this analysis. Read-only.
	Hyper *hyper.Hyperparameters
}

// SubScore is one module's contribution: points on the risk scale plus
// human-readable tags explaining where they came from. Tags are for audit
// and tests, never for control flow.
type SubScore struct {
	Source string   `json:"source"`
	Points float64  `json:"points"`
	Tags   []string `json:"tags"`
}

// Config carries per-module settings chosen by the orchestrator.
type Config struct {
	// Weight multiplies the module's points in the final sum.
	Weight float64

	// ContextAware lets the module soften itself on professional input.
	// Modules that ignore context are exact regardless of this flag.
	ContextAware bool

	// Options holds module-specific settings.
	Options map[string]any
}

// DefaultConfig returns the neutral module configuration.
func DefaultConfig() Config {
	return Config{Weight: 1.0, ContextAware: true}
}

// Module is one scoring plugin. Init runs once at startup; Analyze runs
// per message and must be safe for concurrent calls. Shared dictionaries
// load lazily on first use, once per process.
type Module interface {
	Name() string
	Init(cfg Config) error
	Analyze(ctx context.Context, in Input) (SubScore, error)
}
