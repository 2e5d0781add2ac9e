package ensemble

import (
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// SeedPhrase is one reference phrase for the similarity index. Category
// "benign" marks counter-examples that pull operational language away
// from the risk clusters.
type SeedPhrase struct {
	Text     string
	Category string
}

type seedFileConfig struct {
	RiskPhrases   map[string][]string `yaml:"risk_phrases"`
	BenignPhrases []string            `yaml:"benign_phrases"`
}

// LoadSeedFile reads seed phrases from a YAML file. Categories are
// flattened in sorted order so document IDs stay stable across runs.
func LoadSeedFile(path string) ([]SeedPhrase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var cfg seedFileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	categories := make([]string, 0, len(cfg.RiskPhrases))
	for cat := range cfg.RiskPhrases {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var seeds []SeedPhrase
	for _, cat := range categories {
		for _, text := range cfg.RiskPhrases[cat] {
			seeds = append(seeds, SeedPhrase{Text: text, Category: cat})
		}
	}
	for _, text := range cfg.BenignPhrases {
		seeds = append(seeds, SeedPhrase{Text: text, Category: "benign"})
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("seed file %s contains no phrases", path)
	}
	return seeds, nil
}

// LoadSeedFileOrDefaults tries the YAML file first and falls back to the
// built-in set so a missing file never disables the similarity model.
func LoadSeedFileOrDefaults(path string) []SeedPhrase {
	if path != "" {
		seeds, err := LoadSeedFile(path)
		if err == nil {
			return seeds
		}
		log.Printf("[WARN] Could not load seed phrases from %s: %v. Using built-in set.", path, err)
	}
	return DefaultSeedPhrases()
}

var (
	defaultSeedsOnce sync.Once
	defaultSeeds     []SeedPhrase
)

// DefaultSeedPhrases returns the built-in reference set. The benign block
// matters as much as the risk blocks: it anchors operational kill/restart
// vocabulary so the nearest neighbor for server talk is never a threat.
func DefaultSeedPhrases() []SeedPhrase {
	defaultSeedsOnce.Do(func() {
		risk := map[string][]string{
			"harassment": {
				"go kill yourself nobody likes you",
				"you are worthless and everyone hates you",
				"kill yourself you pathetic loser",
				"nobody would miss you if you disappeared",
				"you should just end it all",
				"you are a waste of space and air",
				"everyone at work laughs at you behind your back",
				"you are too stupid to ever amount to anything",
				"shut up you disgusting freak",
				"the world would be better without you in it",
				"you deserve everything bad that happens to you",
				"stop embarrassing yourself you incompetent idiot",
			},
			"threat": {
				"i will find you and hurt you",
				"i know where you live",
				"watch your back when you leave the office",
				"you will regret crossing me i promise",
				"i am going to make your life a living hell",
				"say that again and see what happens to you",
				"i will ruin you and your whole family",
			},
			"social_engineering": {
				"your account has been suspended verify your identity immediately",
				"click this link now to avoid losing access to your account",
				"buy gift cards and send me the codes",
				"wire the payment today or the deal is off",
				"i am from it support and i need your password to fix the issue",
				"congratulations you have won a prize send your bank details to claim it",
				"urgent invoice attached open immediately",
				"this is your ceo i need you to transfer funds right now quietly",
			},
		}

		benign := []string{
			"we need to kill the runaway process on the server before it crashes",
			"kill the stale worker threads and restart the queue",
			"please restart the service after the deploy finishes",
			"the migration script terminated the old connections cleanly",
			"can you review my pull request when you get a chance",
			"the quarterly report numbers look great this time",
			"let's schedule the retro for thursday afternoon",
			"the patient should take the medication twice daily",
			"attack the problem from the caching layer first",
			"great shot, you absolutely destroyed that level",
		}

		categories := make([]string, 0, len(risk))
		for cat := range risk {
			categories = append(categories, cat)
		}
		sort.Strings(categories)

		for _, cat := range categories {
			for _, text := range risk[cat] {
				defaultSeeds = append(defaultSeeds, SeedPhrase{Text: text, Category: cat})
			}
		}
		for _, text := range benign {
			defaultSeeds = append(defaultSeeds, SeedPhrase{Text: text, Category: "benign"})
		}
	})
	return defaultSeeds
}
