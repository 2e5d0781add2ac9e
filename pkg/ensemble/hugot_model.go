package ensemble

// hugot_model.go - Local ONNX text classification via Hugot.
//
// Runs toxicity, emotion, and sentiment classifiers fully local, no
// external API calls. Tries the ONNX Runtime backend first and falls
// back to the pure Go backend when libonnxruntime is not installed.
//
// Build:
// - Standard: go build (Go backend, slower but no dependencies)
// - With ORT: go build -tags ORT (ONNX Runtime, faster)

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
	"github.com/knights-analytics/hugot/pipelines"
)

// HugotModelConfig configures one local classifier.
type HugotModelConfig struct {
	// ID names the model in votes and logs.
	ID string

	// Kind selects the label vocabulary used to extract risk.
	Kind Kind

	// ModelPath is the local path to the ONNX model directory.
	// If empty and ModelName is set, the model will be downloaded.
	ModelPath string

	// ModelName is the HuggingFace model name, used to download the
	// model when ModelPath is missing.
	ModelName string

	// OnnxLibraryPath is the directory holding libonnxruntime.
	// Empty selects the pure Go backend.
	OnnxLibraryPath string
}

// Model presets. All three are permissively licensed and small enough to
// run on CPU.
const (
	// ModelToxicBERT is unitary/toxic-bert, a BERT fine-tune over the
	// Jigsaw toxicity labels (toxic, insult, threat, ...).
	ModelToxicBERT = "unitary/toxic-bert"

	// ModelGoEmotions is SamLowe/roberta-base-go_emotions, 28 emotion
	// labels including anger, disgust, and annoyance.
	ModelGoEmotions = "SamLowe/roberta-base-go_emotions"

	// ModelTwitterSentiment is cardiffnlp's RoBERTa sentiment model
	// trained on tweets, so slang and emoji are in-distribution.
	ModelTwitterSentiment = "cardiffnlp/twitter-roberta-base-sentiment-latest"
)

// ToxicityModelConfig returns the default toxicity classifier setup.
func ToxicityModelConfig() HugotModelConfig {
	return HugotModelConfig{
		ID:              "toxic-bert",
		Kind:            KindToxicity,
		ModelName:       ModelToxicBERT,
		ModelPath:       "./models/toxic-bert",
		OnnxLibraryPath: defaultOnnxPath(),
	}
}

// EmotionModelConfig returns the default emotion classifier setup.
func EmotionModelConfig() HugotModelConfig {
	return HugotModelConfig{
		ID:              "go-emotions",
		Kind:            KindEmotion,
		ModelName:       ModelGoEmotions,
		ModelPath:       "./models/go-emotions",
		OnnxLibraryPath: defaultOnnxPath(),
	}
}

// SocialModelConfig returns the default social-register sentiment setup.
// Registered as KindSocial so it receives raw, unnormalized text.
func SocialModelConfig() HugotModelConfig {
	return HugotModelConfig{
		ID:              "twitter-sentiment",
		Kind:            KindSocial,
		ModelName:       ModelTwitterSentiment,
		ModelPath:       "./models/twitter-sentiment",
		OnnxLibraryPath: defaultOnnxPath(),
	}
}

// defaultOnnxPath returns the ONNX Runtime library directory for the
// current platform, or "" when none is installed.
func defaultOnnxPath() string {
	paths := []string{
		"/usr/lib/libonnxruntime.so",
		"/usr/local/lib/libonnxruntime.so",
		"/opt/homebrew/lib/libonnxruntime.dylib",
		"/usr/local/lib/libonnxruntime.dylib",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return filepath.Dir(p)
		}
	}
	return ""
}

// HugotModel wraps one local ONNX classification pipeline as an ensemble
// model.
type HugotModel struct {
	id       string
	kind     Kind
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	mu       sync.RWMutex
	ready    bool
}

// NewHugotModel loads (downloading if necessary) the configured model and
// prepares its pipeline.
func NewHugotModel(cfg HugotModelConfig) (*HugotModel, error) {
	if cfg.ID == "" {
		return nil, fmt.Errorf("hugot model requires an ID")
	}

	session, err := newSession(cfg.OnnxLibraryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	modelPath, err := resolveModelPath(cfg)
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("failed to resolve model path: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      cfg.ID,
	})
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	log.Printf("[ENSEMBLE] Local model %s ready (%s)", cfg.ID, modelPath)
	return &HugotModel{
		id:       cfg.ID,
		kind:     cfg.Kind,
		session:  session,
		pipeline: pipeline,
		ready:    true,
	}, nil
}

// newSession tries the ONNX Runtime backend first, then the Go backend.
func newSession(onnxLibraryPath string) (*hugot.Session, error) {
	if onnxLibraryPath != "" {
		session, err := hugot.NewORTSession(options.WithOnnxLibraryPath(onnxLibraryPath))
		if err == nil {
			return session, nil
		}
		log.Printf("[WARN] ONNX Runtime unavailable, falling back to Go backend: %v", err)
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create Go session: %w", err)
	}
	return session, nil
}

// resolveModelPath ensures the model is on disk, downloading it when the
// configured path is missing.
func resolveModelPath(cfg HugotModelConfig) (string, error) {
	if cfg.ModelPath != "" {
		if _, err := os.Stat(cfg.ModelPath); err == nil {
			return cfg.ModelPath, nil
		}
	}

	if cfg.ModelName == "" {
		return "", fmt.Errorf("no model path or name specified")
	}

	modelsDir := "./models"
	if err := os.MkdirAll(modelsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create models directory: %w", err)
	}

	log.Printf("[ENSEMBLE] Downloading model %s...", cfg.ModelName)
	modelPath, err := hugot.DownloadModel(cfg.ModelName, modelsDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("failed to download model: %w", err)
	}
	return modelPath, nil
}

// ID implements Model.
func (h *HugotModel) ID() string {
	return h.id
}

// Kind implements Model.
func (h *HugotModel) Kind() Kind {
	return h.kind
}

// Ready reports whether the pipeline survived initialization.
func (h *HugotModel) Ready() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ready
}

// Classify runs local inference and returns every label the pipeline
// emitted for the text.
func (h *HugotModel) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.ready || h.pipeline == nil {
		return nil, fmt.Errorf("hugot model %s not ready", h.id)
	}

	result, err := h.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	if len(result.ClassificationOutputs) == 0 {
		return nil, fmt.Errorf("no classification output")
	}

	outputs := result.ClassificationOutputs[0]
	labels := make([]LabelScore, 0, len(outputs))
	for _, out := range outputs {
		labels = append(labels, LabelScore{
			Label: out.Label,
			Score: float64(out.Score),
		})
	}
	return labels, nil
}

// Close releases the underlying ONNX session.
func (h *HugotModel) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ready = false
	if h.session != nil {
		return h.session.Destroy()
	}
	return nil
}
