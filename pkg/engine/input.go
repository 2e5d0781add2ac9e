package engine

import "strings"

// AnalysisInput is one message to score. All fields are optional; an
// input whose fields are all blank short-circuits to a clean result.
type AnalysisInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// AllText concatenates the scorable fields in submission order. Email is
// excluded: it is routing metadata, consumed by modules that check it
// explicitly (brand impersonation), never scanned as prose.
func (in AnalysisInput) AllText() string {
	parts := make([]string, 0, 3)
	for _, f := range []string{in.Name, in.Subject, in.Message} {
		if s := strings.TrimSpace(f); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// AllTextLower is AllText lower-cased for callers doing case-free scans.
func (in AnalysisInput) AllTextLower() string {
	return strings.ToLower(in.AllText())
}

// IsEmpty reports whether every field is blank or whitespace.
func (in AnalysisInput) IsEmpty() bool {
	return strings.TrimSpace(in.Name) == "" &&
		strings.TrimSpace(in.Email) == "" &&
		strings.TrimSpace(in.Subject) == "" &&
		strings.TrimSpace(in.Message) == ""
}
