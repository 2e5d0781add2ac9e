package scorers

import (
	"context"
	"fmt"
	"sync"

	"github.com/TryMightyAI/rampart/pkg/tone"
)

// sentiment word lists, loaded lazily once per process.
type sentimentDict struct {
	negative map[string]struct{}
	positive map[string]struct{}
}

var (
	sentimentOnce sync.Once
	sentimentLex  *sentimentDict
)

func loadSentiment() *sentimentDict {
	sentimentOnce.Do(func() {
		sentimentLex = &sentimentDict{
			negative: wordSet(
				"hate", "awful", "terrible", "horrible", "disgusting", "worst",
				"stupid", "idiot", "pathetic", "worthless", "useless", "loser",
				"failure", "trash", "garbage", "miserable", "ugly", "dumb",
				"annoying", "toxic", "evil", "cruel", "nasty", "vile",
			),
			positive: wordSet(
				"thanks", "thank", "great", "good", "love", "awesome",
				"excellent", "wonderful", "helpful", "appreciate", "nice",
				"brilliant", "fantastic", "perfect", "amazing", "kind",
				"congratulations", "welcome", "glad", "happy",
			),
		}
	})
	return sentimentLex
}

const (
	negativeWordPoints = 1.2
	positiveWordCredit = 1.0

	// toneBonus charges extra when the detected emotional register is
	// hostile; polarity alone misses cold anger.
	toneBonus = 2.0
)

// SentimentModule scores lexical polarity: negative words add, positive
// words offset, hostile emotional tone adds a flat bonus. Deliberately
// simple; the ensemble carries the heavyweight sentiment models.
type SentimentModule struct {
	cfg Config
}

func NewSentimentModule() *SentimentModule { return &SentimentModule{cfg: DefaultConfig()} }

func (m *SentimentModule) Name() string { return ModuleSentiment }

func (m *SentimentModule) Init(cfg Config) error {
	m.cfg = cfg
	loadSentiment()
	return nil
}

func (m *SentimentModule) Analyze(ctx context.Context, in Input) (SubScore, error) {
	dict := loadSentiment()
	sub := SubScore{Source: m.Name()}

	neg, pos := 0, 0
	for _, tok := range tokenize(in.Normalized) {
		if _, ok := dict.negative[tok]; ok {
			neg++
		} else if _, ok := dict.positive[tok]; ok {
			pos++
		}
	}

	points := float64(neg)*negativeWordPoints - float64(pos)*positiveWordCredit
	if points < 0 {
		points = 0
	}
	if points > 0 {
		sub.Tags = append(sub.Tags,
			fmt.Sprintf("[SENTIMENT] polarity %d negative / %d positive (+%.1f)", neg, pos, points))
	}

	if in.Context.EmotionalTone == tone.ToneAngry || in.Context.EmotionalTone == tone.ToneAggressive {
		points += toneBonus
		sub.Tags = append(sub.Tags,
			fmt.Sprintf("[SENTIMENT] %s tone (+%.1f)", in.Context.EmotionalTone, toneBonus))
	}

	sub.Points = points
	return sub, nil
}
