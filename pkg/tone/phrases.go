package tone

import "regexp"

// incidentPhrasings recognize urgent-but-legitimate operational messages.
// They are deliberately narrow: each one requires infrastructure nouns
// next to the scary verb, so "kill the process" protects while "kill
// yourself" never can.
var incidentPhrasings = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:kill|restart|terminate|stop)\s+(?:the\s+|that\s+|a\s+)?(?:\w+[\s-]+){0,2}(?:process(?:es)?|service|job|container|pod|daemon|instance|query|thread)\b`),
	regexp.MustCompile(`(?i)\b(?:prod|production|server|service|cluster|database|node)\b[^.!?]{0,40}\b(?:is\s+)?(?:down|crashing|failing|unresponsive|on\s+fire)\b`),
	regexp.MustCompile(`(?i)\bsev(?:erity)?[\s-]?:?\s?[123]\b`),
	regexp.MustCompile(`(?i)\b(?:incident|outage|downtime|postmortem|post-mortem|rollback|hotfix)\b`),
	regexp.MustCompile(`(?i)\bsecurity\s+(?:breach|incident|vulnerability|advisory)\b`),
	regexp.MustCompile(`(?i)\bon[\s-]?call\b`),
	regexp.MustCompile(`(?i)\b\w+-(?:prod|staging|dev|test)-\d+\b`),
	regexp.MustCompile(`(?i)\bcrash(?:es|ed|ing)?\s+the\s+(?:cluster|server|service|app|database)\b`),
}

// constructivePhrases indicate feedback offered in good faith.
var constructivePhrases = []string{
	"have you considered",
	"you could try",
	"it might help",
	"my suggestion",
	"a suggestion",
	"some feedback",
	"maybe we can",
	"what if we",
	"i'd recommend",
	"i would recommend",
	"consider using",
	"one improvement",
	"worth trying",
	"happy to help",
	"hope this helps",
}

// sarcasmPhrases indicate mock register. Sarcastic jabs read harsher than
// they are meant, so they earn a partial discount, never full protection.
var sarcasmPhrases = []string{
	"oh great",
	"oh wonderful",
	"oh fantastic",
	"yeah right",
	"sure thing, genius",
	"nice job breaking",
	"well done, genius",
	"thanks a lot",
	"just great",
	"slow clap",
	"what could possibly go wrong",
	"/s",
}

// slangPhrases are multi-word slang markers matched as substrings.
var slangPhrases = []string{
	"no cap",
	"it's giving",
	"its giving",
	"rent free",
	"main character energy",
	"touch grass",
	"caught in 4k",
}

// slangTokens are single-word slang markers matched on token boundaries.
var slangTokens = map[string]struct{}{
	"fr":      {},
	"frfr":    {},
	"ngl":     {},
	"tbh":     {},
	"lowkey":  {},
	"highkey": {},
	"deadass": {},
	"sus":     {},
	"bussin":  {},
	"rizz":    {},
	"goated":  {},
	"mid":     {},
	"based":   {},
	"bet":     {},
	"cringe":  {},
	"salty":   {},
	"simp":    {},
	"stan":    {},
	"vibes":   {},
	"yeet":    {},
}

// emotionWords feed the majority vote in detectEmotion. Kept small on
// purpose; broad lists make every message "angry".
var emotionWords = map[Tone]map[string]struct{}{
	ToneAngry: {
		"angry":     {},
		"furious":   {},
		"mad":       {},
		"rage":      {},
		"raging":    {},
		"hate":      {},
		"pissed":    {},
		"annoyed":   {},
		"irritated": {},
		"livid":     {},
	},
	ToneSad: {
		"sad":         {},
		"depressed":   {},
		"miserable":   {},
		"crying":      {},
		"lonely":      {},
		"hopeless":    {},
		"empty":       {},
		"devastated":  {},
		"heartbroken": {},
	},
	ToneAggressive: {
		"fight":   {},
		"punch":   {},
		"smash":   {},
		"destroy": {},
		"hurt":    {},
		"beat":    {},
		"attack":  {},
		"crush":   {},
		"wreck":   {},
		"stomp":   {},
	},
}

// emotionPhrases extend the vote with multi-word markers that tokenized
// matching cannot see.
var emotionPhrases = map[Tone][]string{
	ToneAngry: {
		"fed up",
		"sick of",
		"had enough",
	},
	ToneSad: {
		"tired of everything",
		"no one cares",
		"want to give up",
	},
	ToneAggressive: {
		"beat you",
		"mess you up",
		"knock you out",
	},
}
