package hyper

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Defaults returns the balanced tuning set. Every value is an empirically
// chosen starting point, expected to be re-tuned per deployment through
// the optimizer interface.
func Defaults() Hyperparameters {
	return Hyperparameters{
		Weights: CategoryWeights{
			Evasion:           1.0,
			Harassment:        1.0,
			CrossCultural:     1.0,
			AIGenerated:       1.0,
			ModernHarassment:  1.0,
			Steganography:     1.0,
			SocialEngineering: 1.0,
			WorkplaceBoost:    1.5,
		},
		Caps: CategoryCaps{
			Evasion:           8.0,
			Harassment:        25.0,
			CrossCultural:     20.0,
			AIGenerated:       12.0,
			ModernHarassment:  10.0,
			Steganography:     15.0,
			SocialEngineering: 18.0,
			MatchLimit:        5,
		},
		Protection: Protection{
			EarlyReduction:       0.95,
			EarlyFloor:           2.0,
			ProfessionalMin:      0.50,
			ProfessionalMax:      0.90,
			ConstructiveDiscount: 0.30,
			SarcasmDiscount:      0.25,
			SlangDiscount:        0.20,
			MaxDiscountPoints:    12.0,
		},
		Ensemble: Ensemble{
			VotingThreshold:     0.50,
			ConfidenceThreshold: 0.55,
			MinModels:           2,
			TimeoutMs:           1500,
			ProfessionalDamp:    0.30,
			VoteScale:           10.0,
		},
		Thresholds: Thresholds{
			Low:                2.0,
			Moderate:           5.0,
			High:               10.0,
			Critical:           15.0,
			SoftCapStart:       50.0,
			SoftCapSlope:       0.5,
			LowConfidenceFloor: 0.75,
		},
	}
}

// profileBuilders derive each named profile from the balanced defaults.
// One engine, swappable tuning; never forked code paths per speed tier.
var profileBuilders = map[string]func() Hyperparameters{
	"turbo": func() Hyperparameters {
		h := Defaults()
		h.Caps.MatchLimit = 3
		h.Ensemble.TimeoutMs = 400
		h.Ensemble.MinModels = 2
		h.Caps.Harassment = 20.0
		h.Caps.SocialEngineering = 14.0
		return h
	},
	"fast": func() Hyperparameters {
		h := Defaults()
		h.Caps.MatchLimit = 4
		h.Ensemble.TimeoutMs = 800
		return h
	},
	"balanced": Defaults,
	"large": func() Hyperparameters {
		h := Defaults()
		h.Caps.MatchLimit = 8
		h.Ensemble.TimeoutMs = 4000
		h.Caps.Harassment = 35.0
		h.Caps.CrossCultural = 30.0
		h.Caps.SocialEngineering = 25.0
		h.Ensemble.VoteScale = 12.0
		return h
	},
}

// Profile returns the named tuning profile.
func Profile(name string) (Hyperparameters, error) {
	if build, ok := profileBuilders[name]; ok {
		return build(), nil
	}
	return Hyperparameters{}, fmt.Errorf("unknown hyperparameter profile %q (have %v)", name, ProfileNames())
}

// ProfileNames returns the available profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profileBuilders))
	for name := range profileBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads a YAML tuning file layered over the defaults, so partial
// files only override what they name.
func LoadFile(path string) (Hyperparameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Hyperparameters{}, fmt.Errorf("read hyperparameters: %w", err)
	}

	h := Defaults()
	if err := yaml.Unmarshal(data, &h); err != nil {
		return Hyperparameters{}, fmt.Errorf("parse hyperparameters: %w", err)
	}
	if err := h.Validate(); err != nil {
		return Hyperparameters{}, err
	}
	return h, nil
}

// LoadFileOrDefaults is LoadFile that warns and keeps going on the
// defaults rather than refusing to start.
func LoadFileOrDefaults(path string) Hyperparameters {
	h, err := LoadFile(path)
	if err != nil {
		log.Printf("[WARN] Could not load hyperparameters from %s: %v. Using defaults.", path, err)
		return Defaults()
	}
	return h
}
