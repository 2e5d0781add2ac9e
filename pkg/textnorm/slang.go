package textnorm

import (
	"regexp"
	"strings"
)

// slangTable expands abbreviations whose long forms carry the signal the
// short forms hide. "kys" scores nothing as a token; "kill yourself"
// walks straight into the harassment tables. Expansion is suppressed
// under a professional-context hint (see Options).
var slangTable = map[string]string{
	"kys":   "kill yourself",
	"kms":   "kill myself",
	"stfu":  "shut the fuck up",
	"gtfo":  "get the fuck out",
	"wtf":   "what the fuck",
	"ffs":   "for fuck's sake",
	"fml":   "fuck my life",
	"smh":   "shaking my head",
	"ngl":   "not gonna lie",
	"istg":  "i swear to god",
	"idgaf": "i don't give a fuck",
	"af":    "as fuck",
}

var slangRe = buildSlangRe()

func buildSlangRe() *regexp.Regexp {
	keys := make([]string, 0, len(slangTable))
	for k := range slangTable {
		keys = append(keys, k)
	}
	sortStrings(keys)
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(keys, "|") + `)\b`)
}

// expandSlang rewrites known abbreviations to their long forms,
// returning the expanded text and the number of expansions made.
func expandSlang(text string) (string, int) {
	expanded := 0
	out := slangRe.ReplaceAllStringFunc(text, func(m string) string {
		long, ok := slangTable[strings.ToLower(m)]
		if !ok {
			return m
		}
		expanded++
		return long
	})
	if expanded == 0 {
		return text, 0
	}
	return out, expanded
}
