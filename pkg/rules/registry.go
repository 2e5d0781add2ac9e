// Package rules provides the static detection rule tables and protective
// lexicons consumed by the scoring pipeline. All patterns are compiled once
// at first use and shared read-only across every analysis.
//
// Design principles:
// - COMPILE ONCE: patterns compile at first Get, never per call
// - SINGLE SOURCE: one table feeds every scorer, no per-module pattern lists
// - CATEGORIZED: entries are grouped so each phase scans only what it needs
// - IMMUTABLE: nothing is mutated after load, so readers need no locks
package rules

import (
	"regexp"
	"sync"
)

// Category identifies one detection rule family.
type Category string

const (
	CategoryEvasion           Category = "evasion"
	CategoryHarassment        Category = "harassment"
	CategoryCrossCultural     Category = "cross_cultural"
	CategoryAIGenerated       Category = "ai_generated"
	CategoryModernHarassment  Category = "modern_harassment"
	CategorySteganography     Category = "steganography"
	CategorySocialEngineering Category = "social_engineering"
)

// AllCategories lists every category in canonical scan order. Scorers that
// walk the whole table iterate this slice so flag order stays reproducible.
var AllCategories = []Category{
	CategoryEvasion,
	CategoryHarassment,
	CategoryCrossCultural,
	CategoryAIGenerated,
	CategoryModernHarassment,
	CategorySteganography,
	CategorySocialEngineering,
}

// Pattern holds one compiled detection rule with its metadata.
type Pattern struct {
	Name        string         // stable identifier used in flags and tags
	Regex       *regexp.Regexp // compiled rule, never nil after load
	Category    Category       // rule family
	BaseWeight  float64        // points contributed per hit, before caps
	Description string         // what this rule detects
}

// Table holds all compiled rules grouped by category. A Table is immutable
// after construction and safe for unlimited concurrent readers.
type Table struct {
	byCategory map[Category][]*Pattern
	all        []*Pattern
}

var (
	globalTable *Table
	initOnce    sync.Once
)

// Get returns the process-wide rule table, building it on first call.
func Get() *Table {
	initOnce.Do(func() {
		globalTable = newTable()
	})
	return globalTable
}

func newTable() *Table {
	t := &Table{
		byCategory: make(map[Category][]*Pattern),
		all:        make([]*Pattern, 0, 128),
	}

	t.registerEvasionPatterns()
	t.registerHarassmentPatterns()
	t.registerCrossCulturalPatterns()
	t.registerAIGeneratedPatterns()
	t.registerModernHarassmentPatterns()
	t.registerSteganographyPatterns()
	t.registerSocialEngineeringPatterns()

	return t
}

func (t *Table) register(name, pattern string, cat Category, weight float64, description string) {
	p := &Pattern{
		Name:        name,
		Regex:       regexp.MustCompile(pattern),
		Category:    cat,
		BaseWeight:  weight,
		Description: description,
	}
	t.byCategory[cat] = append(t.byCategory[cat], p)
	t.all = append(t.all, p)
}

// ByCategory returns the rules for one category. The returned slice is
// shared and must not be modified. Never nil.
func (t *Table) ByCategory(cat Category) []*Pattern {
	if patterns, ok := t.byCategory[cat]; ok {
		return patterns
	}
	return []*Pattern{}
}

// MatchCategory returns the rules in cat that fire on text. Scanning stops
// after limit hits so pathological inputs cannot force a full table walk;
// limit <= 0 disables the cap.
func (t *Table) MatchCategory(text string, cat Category, limit int) []*Pattern {
	var matches []*Pattern
	for _, p := range t.byCategory[cat] {
		if p.Regex.MatchString(text) {
			matches = append(matches, p)
			if limit > 0 && len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

// MatchAny returns the first rule in the given categories that fires on
// text, or nil. Optimized for early exit; used for cheap boolean probes.
func (t *Table) MatchAny(text string, cats ...Category) *Pattern {
	for _, cat := range cats {
		for _, p := range t.byCategory[cat] {
			if p.Regex.MatchString(text) {
				return p
			}
		}
	}
	return nil
}

// TotalPatterns returns the number of registered rules.
func (t *Table) TotalPatterns() int {
	return len(t.all)
}

// CategoryCount returns the number of rules in one category.
func (t *Table) CategoryCount(cat Category) int {
	return len(t.byCategory[cat])
}
