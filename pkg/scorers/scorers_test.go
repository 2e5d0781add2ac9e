package scorers

import (
	"context"
	"strings"
	"testing"

	"github.com/TryMightyAI/rampart/pkg/hyper"
	"github.com/TryMightyAI/rampart/pkg/textnorm"
	"github.com/TryMightyAI/rampart/pkg/tone"
)

func testInput(text string) Input {
	h := hyper.Defaults()
	return Input{
		Message:    text,
		Raw:        text,
		Normalized: text,
		Context:    tone.Signals{EmotionalTone: tone.ToneNeutral},
		Hyper:      &h,
	}
}

func mustAnalyze(t *testing.T, m Module, in Input) SubScore {
	t.Helper()
	if err := m.Init(DefaultConfig()); err != nil {
		t.Fatalf("%s Init: %v", m.Name(), err)
	}
	sub, err := m.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("%s Analyze: %v", m.Name(), err)
	}
	if sub.Source != m.Name() {
		t.Fatalf("expected source %s, got %s", m.Name(), sub.Source)
	}
	return sub
}

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()

	names := r.Names()
	want := []string{
		ModuleHarassment, ModuleObscenity, ModulePatternTable,
		ModuleSentiment, ModuleSocialEngineering,
	}
	if len(names) != len(want) {
		t.Fatalf("expected %d builtins, got %v", len(want), names)
	}

	for _, name := range want {
		m, err := r.Create(name)
		if err != nil {
			t.Errorf("Create(%s): %v", name, err)
			continue
		}
		if m.Name() != name {
			t.Errorf("module %s reports name %s", name, m.Name())
		}
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(ModuleObscenity, func() Module { return NewObscenityModule() }); err == nil {
		t.Error("expected error registering duplicate name")
	}
	if _, err := r.Create("quantum_vibes"); err == nil {
		t.Error("expected error creating unregistered module")
	}
}

func TestObscenityDirected(t *testing.T) {
	m := NewObscenityModule()

	directed := mustAnalyze(t, m, testInput("fuck you and everything you stand for"))
	undirected := mustAnalyze(t, m, testInput("fuck, the build broke again"))

	if directed.Points <= undirected.Points {
		t.Errorf("directed profanity %f should outscore undirected %f",
			directed.Points, undirected.Points)
	}
	if undirected.Points <= 0 {
		t.Errorf("undirected profanity should still score, got %f", undirected.Points)
	}
}

func TestObscenityProfessionalSoftening(t *testing.T) {
	m := NewObscenityModule()

	in := testInput("damn, the deploy is broken again")
	plain := mustAnalyze(t, m, in)

	in.Context.IsProfessional = true
	softened := mustAnalyze(t, m, in)

	if softened.Points >= plain.Points {
		t.Errorf("professional context should soften profanity: %f vs %f",
			softened.Points, plain.Points)
	}
}

func TestObscenityClean(t *testing.T) {
	m := NewObscenityModule()

	sub := mustAnalyze(t, m, testInput("thank you for the thoughtful review"))
	if sub.Points != 0 {
		t.Errorf("expected 0 points for clean text, got %f", sub.Points)
	}
	if len(sub.Tags) != 0 {
		t.Errorf("expected no tags for clean text, got %v", sub.Tags)
	}
}

func TestSentimentPolarity(t *testing.T) {
	m := NewSentimentModule()

	negative := mustAnalyze(t, m, testInput("this is awful, terrible, worthless garbage"))
	if negative.Points <= 0 {
		t.Errorf("expected positive score for negative text, got %f", negative.Points)
	}

	positive := mustAnalyze(t, m, testInput("thanks, this is great and really helpful"))
	if positive.Points != 0 {
		t.Errorf("expected 0 for positive text, got %f", positive.Points)
	}
}

func TestSentimentToneBonus(t *testing.T) {
	m := NewSentimentModule()

	in := testInput("this is terrible and awful")
	calm := mustAnalyze(t, m, in)

	in.Context.EmotionalTone = tone.ToneAngry
	angry := mustAnalyze(t, m, in)

	if angry.Points <= calm.Points {
		t.Errorf("angry tone should add points: %f vs %f", angry.Points, calm.Points)
	}
}

func TestHarassmentTargeting(t *testing.T) {
	m := NewHarassmentModule()

	targeted := mustAnalyze(t, m,
		testInput("you are pathetic, your work is garbage, you should be ashamed of yourself"))
	if targeted.Points <= 0 {
		t.Errorf("expected targeting score, got %f", targeted.Points)
	}

	neutral := mustAnalyze(t, m, testInput("the quarterly numbers look strong this sprint"))
	if neutral.Points != 0 {
		t.Errorf("expected 0 for neutral text, got %f", neutral.Points)
	}
}

func TestHarassmentWorkplaceBoost(t *testing.T) {
	m := NewHarassmentModule()

	plain := mustAnalyze(t, m,
		testInput("you are pathetic and your work is garbage, you should quit"))
	work := mustAnalyze(t, m,
		testInput("you are pathetic and your work is garbage, your manager agrees, you should quit"))

	if work.Points <= plain.Points {
		t.Errorf("workplace context should boost harassment: %f vs %f",
			work.Points, plain.Points)
	}
}

func TestSocialEngineeringCombo(t *testing.T) {
	m := NewSocialEngineeringModule()

	scam := mustAnalyze(t, m, testInput(
		"URGENT: your account password expires now, verify your bank login immediately"))
	if scam.Points <= 0 {
		t.Errorf("expected social engineering score, got %f", scam.Points)
	}

	benign := mustAnalyze(t, m, testInput("lunch on thursday? the new place on fifth"))
	if benign.Points != 0 {
		t.Errorf("expected 0 for benign text, got %f", benign.Points)
	}
}

func TestSocialEngineeringBrandMismatch(t *testing.T) {
	m := NewSocialEngineeringModule()
	if err := m.Init(DefaultConfig()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	in := testInput("microsoft support has detected a problem with your license")
	in.Email = "flash-alerts@win-fix.example"
	mismatch, err := m.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if mismatch.Points <= 0 {
		t.Error("expected brand mismatch score")
	}

	in.Email = "updates@microsoft.com"
	legit, err := m.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if legit.Points >= mismatch.Points {
		t.Errorf("matching sender domain should not flag: %f vs %f",
			legit.Points, mismatch.Points)
	}
}

func TestPatternTableScoring(t *testing.T) {
	m := NewPatternTableModule()

	sub := mustAnalyze(t, m, testInput("Go kill yourself, nobody likes you"))
	if sub.Points < 10 {
		t.Errorf("expected at least 10 points for direct harassment, got %f", sub.Points)
	}

	foundTag := false
	for _, tag := range sub.Tags {
		if strings.Contains(tag, "kill_yourself") {
			foundTag = true
		}
	}
	if !foundTag {
		t.Errorf("expected kill_yourself tag, got %v", sub.Tags)
	}
}

func TestPatternTableCategoryCap(t *testing.T) {
	m := NewPatternTableModule()
	if err := m.Init(DefaultConfig()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	h := hyper.Defaults()
	h.Caps.Harassment = 6.0

	in := testInput("Go kill yourself, I hate you, nobody likes you, you're worthless and pathetic")
	in.Hyper = &h

	sub, err := m.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// Harassment alone is capped at 6; other categories may add a little,
	// but the uncapped sum would be far higher.
	if sub.Points > 20 {
		t.Errorf("expected capped score, got %f", sub.Points)
	}

	capped := false
	for _, tag := range sub.Tags {
		if strings.Contains(tag, "capped at 6.0") {
			capped = true
		}
	}
	if !capped {
		t.Errorf("expected cap tag, got %v", sub.Tags)
	}
}

func TestPatternTableStegoUsesRaw(t *testing.T) {
	m := NewPatternTableModule()
	if err := m.Init(DefaultConfig()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	in := testInput("hello there")
	in.Raw = "hel​lo the‌re" // zero-width characters in raw only

	sub, err := m.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	found := false
	for _, tag := range sub.Tags {
		if strings.Contains(tag, "zero_width") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected zero_width tag from raw text scan, got %v", sub.Tags)
	}
}

func TestPatternTableChargesEvasionSignals(t *testing.T) {
	m := NewPatternTableModule()
	if err := m.Init(DefaultConfig()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	in := testInput("kill yourself")
	in.Evasion = []textnorm.EvasionSignal{
		{Kind: textnorm.EvasionSpacing, Magnitude: 0.75, Detail: "collapsed 2 runs"},
	}

	withSignal, err := m.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	plain, err := m.Analyze(context.Background(), testInput("kill yourself"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if withSignal.Points <= plain.Points {
		t.Errorf("evasion signals must add points: %f vs %f",
			withSignal.Points, plain.Points)
	}
}

func TestModulesConcurrencySafe(t *testing.T) {
	r := NewRegistry()
	in := testInput("you are worthless, everyone hates you, fuck you")

	for _, name := range r.Names() {
		m, err := r.Create(name)
		if err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
		if err := m.Init(DefaultConfig()); err != nil {
			t.Fatalf("%s Init: %v", name, err)
		}

		first, err := m.Analyze(context.Background(), in)
		if err != nil {
			t.Fatalf("%s Analyze: %v", name, err)
		}

		done := make(chan SubScore, 8)
		for i := 0; i < 8; i++ {
			go func() {
				sub, _ := m.Analyze(context.Background(), in)
				done <- sub
			}()
		}
		for i := 0; i < 8; i++ {
			sub := <-done
			if sub.Points != first.Points {
				t.Errorf("%s not deterministic under concurrency: %f vs %f",
					name, sub.Points, first.Points)
			}
		}
	}
}
