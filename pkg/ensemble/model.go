package ensemble

import (
	"context"
	"strings"
)

// Kind categorizes what an external classifier measures. The extraction rule
// that turns a model's label distribution into a risk estimate depends on it.
type Kind string

const (
	// KindToxicity for toxicity/abuse classifiers (toxic vs non-toxic).
	KindToxicity Kind = "toxicity"
	// KindSentiment for polarity classifiers (negative vs positive).
	KindSentiment Kind = "sentiment"
	// KindEmotion for emotion classifiers; risk is the summed mass of the
	// hostile-emotion labels.
	KindEmotion Kind = "emotion"
	// KindSocial for social-register models trained on informal text.
	// These receive the raw input so slang and emoji survive.
	KindSocial Kind = "social"
)

// LabelScore is one entry of a classifier's label distribution.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Model is one external classifier the ensemble can poll.
// Classify must honor ctx cancellation; a slow model is cut off by the
// per-model timeout and excluded from the vote.
type Model interface {
	ID() string
	Kind() Kind
	Classify(ctx context.Context, text string) ([]LabelScore, error)
}

// Vote is one responding model's contribution after extraction and
// weight adjustment.
type Vote struct {
	ModelID    string  `json:"model_id"`
	RawScore   float64 `json:"raw_score"`
	Confidence float64 `json:"confidence"`
	Weight     float64 `json:"weight"`
}

// Outcome aggregates all responding votes into one (score, confidence) pair.
// Score and Confidence are weighted means in [0,1]. The engine decides
// whether the outcome crosses the voting thresholds; the adapter only
// reports what the models said.
type Outcome struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Votes      []Vote  `json:"votes"`
	Responding int     `json:"responding"`
}

// Per-kind label vocabularies, checked case-insensitively. Generic LABEL_N
// names are resolved per kind: LABEL_1 means toxic for toxicity checkpoints
// but positive for sentiment checkpoints.
var harmfulLabels = map[Kind]map[string]struct{}{
	KindToxicity:  labelSet("toxic", "toxicity", "hate", "hateful", "abusive", "offensive", "insult", "threat", "harassment", "social_engineering", "label_1"),
	KindSentiment: labelSet("negative", "neg", "label_0"),
	KindEmotion:   labelSet("anger", "disgust", "fear", "sadness", "annoyance", "disapproval"),
	KindSocial:    labelSet("negative", "threat", "insult", "harassment", "offensive", "abusive", "hate", "toxic", "label_0"),
}

var cleanLabels = map[Kind]map[string]struct{}{
	KindToxicity:  labelSet("non-toxic", "non_toxic", "not_toxic", "neutral", "benign", "safe", "clean", "label_0"),
	KindSentiment: labelSet("positive", "pos", "neutral", "label_1", "label_2"),
	KindEmotion:   labelSet("neutral", "joy", "love", "optimism", "approval", "amusement", "gratitude"),
	KindSocial:    labelSet("positive", "neutral", "benign", "clean", "label_1", "label_2"),
}

func labelSet(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// extract maps a model's label distribution to a (risk, confidence) pair.
// Confidence is the strongest label probability. Risk sums the harmful-label
// mass for the model's kind; when a model reports only a clean top label,
// risk falls back to the complement of that label's probability.
func extract(kind Kind, labels []LabelScore) (risk, confidence float64) {
	var harmful, bestClean float64
	var sawHarmful, sawClean bool

	for _, ls := range labels {
		p := clampUnit(ls.Score)
		if p > confidence {
			confidence = p
		}
		name := strings.ToLower(strings.TrimSpace(ls.Label))
		if _, ok := harmfulLabels[kind][name]; ok {
			harmful += p
			sawHarmful = true
			continue
		}
		if _, ok := cleanLabels[kind][name]; ok {
			if p > bestClean {
				bestClean = p
			}
			sawClean = true
		}
	}

	switch {
	case sawHarmful:
		risk = clampUnit(harmful)
	case sawClean:
		risk = clampUnit(1 - bestClean)
	}
	return risk, confidence
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
