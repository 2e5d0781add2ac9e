package ensemble

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/TryMightyAI/rampart/pkg/httputil"
)

// HTTPModel calls a remote inference endpoint that speaks the common
// text-classification wire shape: {"inputs": text} in, label/score pairs
// out. Works against HuggingFace inference endpoints and anything
// mimicking them.
type HTTPModel struct {
	id      string
	kind    Kind
	url     string
	headers map[string]string
}

// HTTPModelConfig configures a remote classifier.
type HTTPModelConfig struct {
	// ID names the model in votes and logs.
	ID string

	// Kind selects the label vocabulary used to extract risk.
	Kind Kind

	// URL is the full inference endpoint.
	URL string

	// Token, when set, is sent as a bearer credential.
	Token string
}

// NewHTTPModel creates a remote classifier client.
func NewHTTPModel(cfg HTTPModelConfig) (*HTTPModel, error) {
	if cfg.ID == "" {
		return nil, fmt.Errorf("http model requires an ID")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("http model %s requires a URL", cfg.ID)
	}

	headers := make(map[string]string)
	if cfg.Token != "" {
		headers["Authorization"] = "Bearer " + cfg.Token
	}

	return &HTTPModel{
		id:      cfg.ID,
		kind:    cfg.Kind,
		url:     cfg.URL,
		headers: headers,
	}, nil
}

// ID implements Model.
func (m *HTTPModel) ID() string {
	return m.id
}

// Kind implements Model.
func (m *HTTPModel) Kind() Kind {
	return m.kind
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// Classify implements Model.
func (m *HTTPModel) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	req := inferenceRequest{Inputs: text}

	var raw json.RawMessage
	if err := httputil.PostJSON(ctx, httputil.ScoreClient(), m.url, m.headers, req, &raw); err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	return decodeLabels(raw)
}

// decodeLabels accepts both response shapes in the wild: a nested
// [[{label,score}]] batch (HuggingFace) and a flat [{label,score}] list.
func decodeLabels(raw json.RawMessage) ([]LabelScore, error) {
	var nested [][]LabelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}

	var flat []LabelScore
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	return nil, fmt.Errorf("unrecognized classification response: %s", truncate(string(raw), 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
