package rules

// =============================================================================
// RULE DEFINITIONS BY CATEGORY
// All rules are registered here and compiled once at first Get().
// Weights are points on the risk scale (LOW>=2, MODERATE>=5, HIGH>=10,
// CRITICAL>=15) before category caps and protective discounts apply.
// =============================================================================

// --- EVASION RULES ---
// Residual obfuscation that survives normalization. The heavy lifting
// (homoglyphs, leet, spacing, invisibles) happens in textnorm and is scored
// from its signals; these rules catch what folding cannot remove.
func (t *Table) registerEvasionPatterns() {
	cat := CategoryEvasion

	t.register("excessive_punctuation", `[!?]{4,}`, cat, 2.0, "Shouting punctuation run")
	t.register("alternating_caps", `(?:[a-z][A-Z]){4,}`, cat, 3.0, "Mocking alternating capitalization")
	t.register("letter_stretch", `(?i)(?:a{4,}|e{4,}|i{4,}|o{4,}|u{4,}|h{4,}|r{4,}|s{4,}|g{4,})`, cat, 2.0, "Elongated letters")
	t.register("grawlix", `(?i)\b[a-z][*#$%@&]{2,}[a-z]*`, cat, 3.0, "Symbol-masked profanity")
	t.register("caps_flood", `\b[A-Z]{6,}\b(?:\s+\b[A-Z]{2,}\b){2,}`, cat, 2.5, "Sustained all-caps shouting")
}

// --- HARASSMENT RULES ---
// Direct attacks, threats, power dynamics, gaslighting and microaggressions.
// Matched against normalized text so folded evasions land here too. Workplace
// vocabulary multiplies these hits (see the harassment scorer).
func (t *Table) registerHarassmentPatterns() {
	cat := CategoryHarassment

	// Self-harm directives
	t.register("kill_yourself", `(?i)\b(?:go\s+)?kill\s*your\s*sel(?:f|ves)\b`, cat, 10.0, "Self-harm directive")
	t.register("hope_you_die", `(?i)\b(?:hope|wish)\s+you\s+(?:die|drop\s+dead|get\s+hurt)\b`, cat, 10.0, "Death wish")
	t.register("die_in", `(?i)\b(?:go\s+)?(?:die|rot|burn)\s+in\s+(?:a\s+)?(?:fire|hell)\b`, cat, 9.0, "Death wish")
	t.register("drink_bleach", `(?i)\bdrink\s+bleach\b`, cat, 10.0, "Self-harm directive")
	t.register("end_it_all", `(?i)\b(?:just\s+)?end\s+it\s+all\s+already\b`, cat, 9.0, "Self-harm directive")

	// Direct threats
	t.register("threat_direct", `(?i)\bi(?:'ll|\s+will)\s+(?:hurt|find|destroy|ruin|end|kill)\s+you\b`, cat, 10.0, "Direct threat")
	t.register("threat_regret", `(?i)\byou(?:'ll|\s+will)\s+(?:regret|pay\s+for)\s+(?:this|that|it)\b`, cat, 7.0, "Retaliation threat")
	t.register("threat_watch", `(?i)\bwatch\s+your\s+back\b`, cat, 7.0, "Implied threat")
	t.register("threat_know_where", `(?i)\bi\s+know\s+where\s+you\s+(?:live|work|sleep)\b`, cat, 10.0, "Stalking threat")

	// Social rejection attacks
	t.register("nobody_likes", `(?i)\bnobody\s+(?:likes|loves|wants|needs)\s+you\b`, cat, 7.0, "Social rejection attack")
	t.register("everyone_hates", `(?i)\beveryone\s+(?:hates|laughs\s+at)\s+you\b`, cat, 7.0, "Social rejection attack")
	t.register("better_off_without", `(?i)\b(?:world|everyone)\s+(?:is|would\s+be)\s+better\s+(?:off\s+)?without\s+you\b`, cat, 9.0, "Social rejection attack")

	// Degradation
	t.register("worthless", `(?i)\byou(?:'re|\s+are)\s+(?:so\s+|such\s+)?(?:worthless|useless|pathetic|disgusting|trash|garbage|a\s+(?:loser|failure|waste))\b`, cat, 6.0, "Degrading insult")
	t.register("dumb_insult", `(?i)\byou(?:'re|\s+are)\s+(?:an?\s+)?(?:idiot|moron|imbecile|stupid|braindead)\b`, cat, 5.0, "Intelligence insult")
	t.register("shut_up", `(?i)\b(?:just\s+)?shut\s+(?:the\s+fuck\s+)?up\b`, cat, 4.0, "Silencing")
	t.register("asshole", `(?i)\byou(?:'re|\s+are)\s+(?:an?\s+|such\s+an?\s+)?ass\s*hole\b`, cat, 5.0, "Profane insult")

	// Power dynamics
	t.register("power_fired", `(?i)\bi\s+(?:can|will|could)\s+(?:get\s+you\s+fired|end\s+your\s+career|have\s+you\s+(?:fired|removed|terminated))\b`, cat, 8.0, "Employment threat")
	t.register("power_own", `(?i)\b(?:i\s+own\s+you|you\s+work\s+for\s+me|you\s+answer\s+to\s+me)\b`, cat, 6.0, "Dominance assertion")
	t.register("power_nothing", `(?i)\byou(?:'re|\s+are)\s+nothing\s+without\s+(?:me|this\s+(?:job|company|team))\b`, cat, 7.0, "Dependency assertion")
	t.register("power_replaceable", `(?i)\byou\s+are\s+(?:easily\s+)?replaceable\b`, cat, 5.0, "Devaluation")

	// Gaslighting
	t.register("gaslight_crazy", `(?i)\byou(?:'re|\s+are)\s+(?:crazy|insane|delusional|imagining\s+(?:it|things)|overreacting)\b`, cat, 5.0, "Gaslighting")
	t.register("gaslight_never", `(?i)\bthat\s+never\s+happened\b`, cat, 4.0, "Gaslighting")
	t.register("gaslight_sensitive", `(?i)\byou(?:'re|\s+are)\s+(?:way\s+)?too\s+sensitive\b`, cat, 3.5, "Dismissal")

	// Microaggressions
	t.register("micro_articulate", `(?i)\byou(?:'re|\s+are)\s+(?:surprisingly|actually|pretty)\s+(?:articulate|smart|competent|well[\s-]spoken)\b`, cat, 4.0, "Backhanded compliment")
	t.register("micro_really_from", `(?i)\bwhere\s+are\s+you\s+(?:really|actually)\s+from\b`, cat, 4.0, "Othering question")
	t.register("micro_for_a", `(?i)\b(?:good|smart|impressive)\s+for\s+a\s+(?:woman|girl|foreigner)\b`, cat, 6.0, "Backhanded compliment")

	// Hostility
	t.register("hate_you", `(?i)\b(?:i|we(?:\s+all)?)\s+hate\s+you\b`, cat, 6.0, "Open hostility")
	t.register("get_lost", `(?i)\b(?:get\s+lost|piss\s+off|fuck\s+off)\b`, cat, 4.0, "Hostile dismissal")
}

// --- CROSS-CULTURAL BIAS RULES ---
// Discriminatory phrasing targeting nationality, religion, gender, age,
// disability or language ability.
func (t *Table) registerCrossCulturalPatterns() {
	cat := CategoryCrossCultural

	t.register("go_back_to", `(?i)\bgo\s+back\s+to\s+(?:your|where\s+you)\b`, cat, 8.0, "Nationality exclusion")
	t.register("your_kind", `(?i)\byour\s+kind\s+(?:is|are|always|never|should)\b`, cat, 7.0, "Group derogation")
	t.register("you_people", `(?i)\byou\s+people\s+(?:are|always|never|can'?t|should)\b`, cat, 6.0, "Group derogation")
	t.register("people_like_you", `(?i)\bpeople\s+like\s+you\s+(?:are|should|don'?t\s+belong)\b`, cat, 6.0, "Group derogation")
	t.register("all_of_them", `(?i)\b(?:all|those)\s+(?:muslims?|jews?|christians?|hindus?|immigrants?|foreigners?)\s+(?:are|should)\b`, cat, 8.0, "Religious or ethnic generalization")
	t.register("gender_belong", `(?i)\bwomen\s+(?:belong\s+in|can'?t|shouldn'?t|are\s+too)\b`, cat, 7.0, "Gender discrimination")
	t.register("gender_all_men", `(?i)\bmen\s+are\s+all\s+(?:the\s+same|trash|pigs|useless)\b`, cat, 6.0, "Gender generalization")
	t.register("age_boomer", `(?i)\b(?:ok(?:ay)?\s+boomer|too\s+old\s+to\s+(?:understand|get\s+it|work\s+here))\b`, cat, 4.0, "Age dismissal")
	t.register("age_young", `(?i)\byou(?:'re|\s+are)\s+too\s+young\s+to\s+(?:understand|matter|have\s+an\s+opinion)\b`, cat, 4.0, "Age dismissal")
	t.register("disability_slur", `(?i)\bwhat\s+are\s+you,?\s+(?:blind|deaf|slow)\b`, cat, 6.0, "Disability insult")
	t.register("asylum", `(?i)\byou\s+belong\s+in\s+(?:a|an)\s+(?:mental\s+)?(?:asylum|institution|madhouse)\b`, cat, 7.0, "Mental-health derogation")
	t.register("learn_english", `(?i)\b(?:learn\s+(?:proper|real)\s+english|can'?t\s+even\s+speak\s+english)\b`, cat, 6.0, "Language derogation")
	t.register("this_country", `(?i)\bin\s+this\s+country\s+we\s+(?:speak|don'?t|do\s+things)\b`, cat, 5.0, "Nationality exclusion")
	t.register("not_from_here", `(?i)\byou(?:'re|\s+are)\s+not\s+(?:really\s+)?(?:from\s+here|one\s+of\s+us)\b`, cat, 6.0, "Othering")
}

// --- AI-GENERATED HARASSMENT RULES ---
// Formally phrased negative assessments. Polished register plus a personal
// negative verdict is the tell; either half alone is ordinary prose.
func (t *Table) registerAIGeneratedPatterns() {
	cat := CategoryAIGenerated

	t.register("upon_review", `(?i)\bupon\s+(?:careful\s+|thorough\s+)?(?:review|evaluation|analysis|reflection)[^.!?]{0,80}\b(?:inadequate|deficient|substandard|unacceptable|incompetent|failure)\b`, cat, 6.0, "Formal negative assessment")
	t.register("come_to_attention", `(?i)\bit\s+has\s+(?:come\s+to\s+(?:my|our)\s+attention|been\s+(?:determined|observed|noted))\s+that\s+you[^.!?]{0,80}\b(?:fail|inadequate|lacking|incompetent|deficient)`, cat, 6.0, "Formal negative assessment")
	t.register("regrettably", `(?i)\bregrettably,?\s+your\s+(?:performance|contribution|work|presence)[^.!?]{0,60}\b(?:falls\s+short|fails|disappoints|is\s+lacking)`, cat, 6.0, "Formal negative assessment")
	t.register("one_might", `(?i)\bone\s+might\s+(?:observe|note|conclude|argue)\s+that\s+you(?:r)?\b[^.!?]{0,60}\b(?:lack|fail|inferior|inadequate)`, cat, 5.5, "Detached negative assessment")
	t.register("objectively", `(?i)\bobjectively\s+speaking,?\s+you(?:r)?\b[^.!?]{0,60}\b(?:inferior|worst|worthless|incompetent|failure)`, cat, 6.0, "Pseudo-objective attack")
	t.register("cognitive_capacity", `(?i)\byour\s+(?:cognitive|intellectual)\s+(?:capacity|abilit(?:y|ies)|limitations?)\s+(?:appears?|seems?|is|are|prevent)`, cat, 6.5, "Clinical intelligence attack")
	t.register("per_assessment", `(?i)\bper\s+my\s+(?:previous\s+|earlier\s+)?assessment,?\s+you(?:r)?\b[^.!?]{0,60}\b(?:remain|continue|still)\b`, cat, 5.0, "Formal negative assessment")
	t.register("comprehensive_list", `(?i)\b(?:allow\s+me\s+to|i\s+(?:shall|will))\s+enumerate\s+(?:your|the)\s+(?:deficiencies|shortcomings|failures)\b`, cat, 7.0, "Itemized degradation")
}

// --- MODERN HARASSMENT RULES ---
// Social-platform and gaming slang insults. Individually mild; weights sit
// low so verdicts come from accumulation, not a single meme phrase.
func (t *Table) registerModernHarassmentPatterns() {
	cat := CategoryModernHarassment

	t.register("ratio", `(?i)\b(?:l\s*\+\s*ratio|get\s+ratio(?:'?d|ed))\b`, cat, 3.0, "Pile-on dismissal")
	t.register("touch_grass", `(?i)\btouch\s+(?:some\s+)?grass\b`, cat, 3.0, "Terminally-online insult")
	t.register("npc", `(?i)\byou(?:'re|\s+are)\s+(?:such\s+)?(?:an?\s+)?npc\b`, cat, 3.5, "Dehumanizing gaming insult")
	t.register("skill_issue", `(?i)\bskill\s+issue\b`, cat, 2.5, "Dismissive gaming taunt")
	t.register("didnt_ask", `(?i)\b(?:didn'?t|no\s+one|nobody)\s+ask(?:ed)?\b`, cat, 3.0, "Dismissal")
	t.register("cope_seethe", `(?i)\bcope\s+(?:and\s+seethe|harder)\b`, cat, 3.5, "Taunt")
	t.register("stay_mad", `(?i)\bstay\s+(?:mad|pressed|salty)\b`, cat, 3.0, "Taunt")
	t.register("get_rekt", `(?i)\bget\s+rekt\b`, cat, 3.0, "Gaming taunt")
	t.register("uninstall", `(?i)\buninstall\s+(?:the\s+game|yourself|life)\b`, cat, 5.0, "Exclusion directive")
	t.register("cry_about_it", `(?i)\bcry\s+(?:about\s+it|more|harder)\b`, cat, 3.0, "Taunt")
	t.register("basement_dweller", `(?i)\b(?:basement\s+dweller|keyboard\s+warrior|neckbeard)\b`, cat, 3.5, "Stereotype insult")
	t.register("go_touch", `(?i)\bgo\s+outside\s+for\s+once\b`, cat, 2.5, "Terminally-online insult")
	t.register("mid", `(?i)\byou(?:'re|\s+are)\s+(?:so\s+)?mid\b`, cat, 2.5, "Dismissive rating")
}

// --- STEGANOGRAPHY RULES ---
// Invisible characters, BiDi tricks and injected markup. These run against
// the RAW input; normalization strips the very characters they detect.
func (t *Table) registerSteganographyPatterns() {
	cat := CategorySteganography

	t.register("zero_width", `[\x{200B}-\x{200D}\x{2060}\x{FEFF}]`, cat, 5.0, "Zero-width characters")
	t.register("bidi_override", `[\x{202A}-\x{202E}\x{2066}-\x{2069}]`, cat, 6.0, "BiDi control characters")
	t.register("unicode_tags", `[\x{E0000}-\x{E007F}]`, cat, 8.0, "Unicode tag block payload")
	t.register("variation_flood", `[\x{FE00}-\x{FE0F}]{2,}`, cat, 5.0, "Variation selector run")
	t.register("combining_flood", `[\x{0300}-\x{036F}]{3,}`, cat, 4.0, "Combining mark flood (zalgo)")
	t.register("script_tag", `(?i)<\s*script[^>]*>`, cat, 7.0, "Script tag injection")
	t.register("js_scheme", `(?i)javascript\s*:`, cat, 6.0, "JavaScript URL scheme")
	t.register("data_html", `(?i)data:text/html`, cat, 6.0, "Data URL HTML payload")
	t.register("event_handler", `(?i)\bon(?:click|error|load|mouseover)\s*=`, cat, 5.0, "Inline event handler")
	t.register("url_shortener", `(?i)\b(?:bit\.ly|tinyurl\.com|t\.co|goo\.gl|is\.gd)/[A-Za-z0-9]+`, cat, 4.0, "Shortened URL")
	t.register("punycode_host", `(?i)\bhttps?://xn--`, cat, 6.0, "Punycode hostname")
}

// --- SOCIAL ENGINEERING RULES ---
// Credential phishing, authority impersonation and manufactured emergencies.
func (t *Table) registerSocialEngineeringPatterns() {
	cat := CategorySocialEngineering

	// Credential phishing
	t.register("verify_account", `(?i)\bverify\s+your\s+(?:account|identity|password|credentials)\b`, cat, 6.0, "Credential phishing")
	t.register("confirm_billing", `(?i)\b(?:confirm|update|validate)\s+your\s+(?:payment|billing|card)\s+(?:details|information|info)\b`, cat, 6.0, "Payment phishing")
	t.register("account_suspended", `(?i)\byour\s+account\s+(?:has\s+been|will\s+be|is)\s+(?:suspended|locked|closed|deactivated|compromised)\b`, cat, 6.0, "Account scare")
	t.register("click_to_restore", `(?i)\bclick\s+(?:here|the\s+link|below)\s+to\s+(?:verify|confirm|restore|unlock|claim)\b`, cat, 6.5, "Phishing call to action")
	t.register("enter_credentials", `(?i)\benter\s+your\s+(?:password|pin|ssn|social\s+security|one[\s-]time\s+code)\b`, cat, 8.0, "Credential harvesting")

	// Authority impersonation
	t.register("agency_notice", `(?i)\b(?:irs|fbi|interpol|homeland\s+security)\s+(?:final\s+)?(?:notice|warning|investigation)\b`, cat, 7.0, "Agency impersonation")
	t.register("support_detected", `(?i)\b(?:microsoft|apple|google|amazon)\s+(?:technical\s+)?support\s+(?:has\s+)?detected\b`, cat, 7.0, "Tech-support scam")
	t.register("inheritance", `(?i)\b(?:prince|barrister|attorney|diplomat)\b[^.!?]{0,80}\b(?:inheritance|million|funds?|transfer)\b`, cat, 7.0, "Advance-fee scam")

	// Manufactured emergency
	t.register("urgent_wire", `(?i)\burgent(?:ly)?\b[^.!?]{0,60}\b(?:wire|transfer|gift\s*cards?|bitcoin|crypto)\b`, cat, 7.0, "Urgent payment demand")
	t.register("relative_emergency", `(?i)\b(?:grandson|granddaughter|nephew|niece|son|daughter)\b[^.!?]{0,50}\b(?:arrested|hospital|accident|jail|bail)\b`, cat, 7.0, "Relative-in-trouble scam")
	t.register("act_now", `(?i)\bact\s+(?:now|immediately)\s+or\b`, cat, 5.0, "Pressure tactic")
	t.register("deadline_threat", `(?i)\bwithin\s+\d+\s+hours?\s+or\s+(?:your|you)\b`, cat, 5.5, "Deadline pressure")
	t.register("prize_claim", `(?i)\byou(?:'ve|\s+have)\s+(?:won|been\s+selected)\b[^.!?]{0,50}\b(?:prize|lottery|reward|gift)\b`, cat, 6.0, "Prize bait")
	t.register("gift_card_numbers", `(?i)\b(?:read|send|give)\s+(?:me\s+)?the\s+gift\s*card\s+(?:numbers?|codes?)\b`, cat, 8.0, "Gift card scam")
	t.register("keep_secret", `(?i)\bdo\s+not\s+tell\s+(?:anyone|your\s+(?:family|bank))\b`, cat, 6.5, "Secrecy pressure")
}
