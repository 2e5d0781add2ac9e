package scorers

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Social-engineering vocabulary, loaded lazily once per process.
type socialEngDict struct {
	urgency     map[string]struct{}
	sensitive   map[string]struct{}
	impersonate []string
}

var (
	socialEngOnce sync.Once
	socialEngLex  *socialEngDict
)

func loadSocialEng() *socialEngDict {
	socialEngOnce.Do(func() {
		socialEngLex = &socialEngDict{
			urgency: wordSet(
				"urgent", "urgently", "immediately", "now", "asap",
				"expires", "expiring", "final", "last", "deadline",
				"hurry", "quickly", "instantly",
			),
			sensitive: wordSet(
				"password", "account", "bank", "transfer", "verify",
				"credentials", "ssn", "pin", "billing", "payment",
				"giftcard", "bitcoin", "wallet", "login",
			),
			impersonate: []string{
				"microsoft", "apple", "google", "amazon", "paypal",
				"netflix", "irs", "fbi", "bank of",
			},
		}
	})
	return socialEngLex
}

const (
	urgencyComboPoints  = 3.0
	linkPressurePoints  = 2.0
	brandMismatchPoints = 4.0

	// minUrgencyHits and minSensitiveHits gate the combination score;
	// either vocabulary alone is everyday email.
	minUrgencyHits   = 2
	minSensitiveHits = 2
)

// SocialEngineeringModule scores manipulation mechanics: urgency pressure
// combined with sensitive-data vocabulary, links under pressure, and brand
// impersonation that the sender address does not back up. Template
// phrasing ("verify your account") lives in the rule table; this module
// measures structure instead.
type SocialEngineeringModule struct {
	cfg Config
}

func NewSocialEngineeringModule() *SocialEngineeringModule {
	return &SocialEngineeringModule{cfg: DefaultConfig()}
}

func (m *SocialEngineeringModule) Name() string { return ModuleSocialEngineering }

func (m *SocialEngineeringModule) Init(cfg Config) error {
	m.cfg = cfg
	loadSocialEng()
	return nil
}

func (m *SocialEngineeringModule) Analyze(ctx context.Context, in Input) (SubScore, error) {
	dict := loadSocialEng()
	sub := SubScore{Source: m.Name()}
	lower := strings.ToLower(in.Normalized)

	urgency, sensitive := 0, 0
	for _, tok := range tokenize(lower) {
		if _, ok := dict.urgency[tok]; ok {
			urgency++
		}
		if _, ok := dict.sensitive[tok]; ok {
			sensitive++
		}
	}

	points := 0.0

	if urgency >= minUrgencyHits && sensitive >= minSensitiveHits {
		points += urgencyComboPoints
		sub.Tags = append(sub.Tags,
			fmt.Sprintf("[SOCIAL-ENG] urgency x sensitive data: %d/%d hits (+%.1f)",
				urgency, sensitive, urgencyComboPoints))
	}

	hasLink := strings.Contains(lower, "http://") || strings.Contains(lower, "https://") ||
		strings.Contains(lower, "www.")
	if hasLink && urgency >= minUrgencyHits {
		points += linkPressurePoints
		sub.Tags = append(sub.Tags,
			fmt.Sprintf("[SOCIAL-ENG] link under time pressure (+%.1f)", linkPressurePoints))
	}

	if brand := claimedBrandMismatch(lower, in.Email); brand != "" {
		points += brandMismatchPoints
		sub.Tags = append(sub.Tags,
			fmt.Sprintf("[SOCIAL-ENG] claims %q but sender is %q (+%.1f)",
				brand, in.Email, brandMismatchPoints))
	}

	if m.cfg.ContextAware && in.Context.IsProfessional && points > 0 {
		// Ops messages legitimately say "urgent" and "credentials".
		points *= 0.5
		sub.Tags = append(sub.Tags, "[SOCIAL-ENG] professional context softening (x0.5)")
	}

	sub.Points = points
	return sub, nil
}

// claimedBrandMismatch returns the impersonated brand when the message
// name-drops a known organization but the sender address belongs to a
// different domain. No sender address means no verdict either way.
func claimedBrandMismatch(lowerText, email string) string {
	if email == "" {
		return ""
	}
	emailLower := strings.ToLower(email)

	dict := loadSocialEng()
	for _, brand := range dict.impersonate {
		if !strings.Contains(lowerText, brand) {
			continue
		}
		domainToken := strings.ReplaceAll(brand, " ", "")
		if !strings.Contains(emailLower, domainToken) {
			return brand
		}
	}
	return ""
}
