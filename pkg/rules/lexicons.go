package rules

import "strings"

// Lexicon is an immutable protective vocabulary list. Terms are matched as
// lowercase substrings, so "crash" also covers "crashes" and "crashed".
// Terms stay at four characters or longer to keep substring matching from
// firing inside unrelated words.
type Lexicon struct {
	name  string
	terms []string
}

func newLexicon(name string, terms ...string) *Lexicon {
	return &Lexicon{name: name, terms: terms}
}

// Name returns the lexicon's identifier, used in flags.
func (l *Lexicon) Name() string { return l.name }

// Len returns the number of terms.
func (l *Lexicon) Len() int { return len(l.terms) }

// CountHits returns how many distinct lexicon terms occur in text.
// Each term counts once no matter how often it repeats.
func (l *Lexicon) CountHits(text string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, term := range l.terms {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	return hits
}

// Matches reports whether at least one lexicon term occurs in text.
func (l *Lexicon) Matches(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range l.terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Protective lexicons. A message dense in one of these vocabularies is
// talking about work, not attacking a person; trigger words inside it
// ("kill the process", "attack vector", "execute the plan") earn a
// discount instead of a verdict.
var (
	TechnicalLexicon = newLexicon("technical",
		"server", "database", "deploy", "kubernetes", "docker", "container",
		"cluster", "process", "pipeline", "branch", "merge", "commit",
		"debug", "latency", "timeout", "memory", "endpoint", "backend",
		"frontend", "production", "staging", "rollback", "incident",
		"outage", "monitoring", "cache", "queue", "thread", "runtime",
		"compile", "script", "terminal", "crash", "restart", "config",
		"kernel", "daemon", "replica", "shard", "failover", "hotfix",
	)

	BusinessLexicon = newLexicon("business",
		"meeting", "quarterly", "revenue", "stakeholder", "deadline",
		"budget", "invoice", "client", "contract", "proposal", "roadmap",
		"milestone", "forecast", "standup", "retrospective", "sprint",
		"agile", "headcount", "onboarding", "offsite", "deliverable",
		"escalation", "procurement", "vendor", "compliance", "audit",
	)

	AcademicLexicon = newLexicon("academic",
		"thesis", "hypothesis", "literature", "citation", "peer review",
		"methodology", "abstract", "dissertation", "seminar", "curriculum",
		"syllabus", "semester", "professor", "journal", "conference",
		"grant", "research", "experiment", "dataset", "baseline",
		"supervisor", "coursework", "lecture",
	)

	MedicalLexicon = newLexicon("medical",
		"patient", "diagnosis", "symptom", "treatment", "dosage",
		"prescription", "clinical", "surgery", "triage", "oncology",
		"cardiology", "intensive care", "vitals", "biopsy", "radiology",
		"anesthesia", "discharge", "ward round", "pathology", "referral",
	)

	// WorkplaceLexicon marks workplace settings. Unlike the four above it
	// is aggravating, not protective: harassment aimed at a coworker is
	// weighted up because the target cannot walk away.
	WorkplaceLexicon = newLexicon("workplace",
		"boss", "manager", "coworker", "co-worker", "colleague",
		"human resources", "office", "workplace", "promotion", "fired",
		"salary", "performance review", "team lead", "supervisor",
		"cubicle", "shift", "probation", "demoted", "your job",
	)
)

// ProfessionalLexicons groups the vocabularies that signal legitimate
// professional context, in the order they are scanned.
var ProfessionalLexicons = []*Lexicon{
	TechnicalLexicon,
	BusinessLexicon,
	AcademicLexicon,
	MedicalLexicon,
}
