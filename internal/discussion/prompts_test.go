package discussion

import (
	"context"
	"math/rand"
	"strings"
	"testing"
)

func TestIntroductionPromptAsksForIntroduction(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	if _, err := e.CreateSession(context.Background(), makeInput(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := gen.callsFor(FunctionTurn)
	if len(calls) != 2 {
		t.Fatalf("expected 2 turn calls, got %d", len(calls))
	}
	for _, c := range calls {
		if !strings.Contains(c.prompt, "introduce yourself") {
			t.Error("introduction prompt must ask for an introduction")
		}
		if strings.Contains(c.prompt, "Do NOT introduce yourself again") {
			t.Error("introduction prompt must not carry the no-re-intro rule")
		}
	}
}

func TestLaterPromptForbidsReintroduction(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	s, err := e.CreateSession(context.Background(), makeInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.Advance(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := gen.callsFor(FunctionTurn)
	for _, c := range calls[2:] {
		if !strings.Contains(c.prompt, "Do NOT introduce yourself again") {
			t.Error("post-introduction prompt must forbid re-introduction")
		}
		if !strings.Contains(c.prompt, PhaseProblemAnalysis.Instruction()) {
			t.Error("prompt must carry the current phase instruction")
		}
	}
}

func TestPromptIncludesSameTurnMessages(t *testing.T) {
	gen := &mockGenerator{responses: []string{"the ceo spoke first about growth"}}
	e := newTestEngine(gen)
	if _, err := e.CreateSession(context.Background(), makeInput(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := gen.callsFor(FunctionTurn)
	if len(calls) != 2 {
		t.Fatalf("expected 2 turn calls, got %d", len(calls))
	}
	if !strings.Contains(calls[1].prompt, "the ceo spoke first about growth") {
		t.Error("a later speaker must see messages generated earlier in the same turn")
	}
}

func TestPromptCarriesStylesAndEnthusiasm(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	in := makeInput(2)
	in.Roles[0].StyleIDs = []string{"tone_direct"}
	in.Roles[0].Enthusiasm = 1
	if _, err := e.CreateSession(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := gen.callsFor(FunctionTurn)[0].prompt
	opt, ok := DefaultStyleCatalog().Lookup("tone_direct")
	if !ok {
		t.Fatal("tone_direct missing from the default catalog")
	}
	if !strings.Contains(prompt, opt.Instruction) {
		t.Error("prompt must carry the selected style instruction")
	}
	if !strings.Contains(prompt, enthusiasmInstructions[1]) {
		t.Error("prompt must carry the configured enthusiasm tone")
	}
}

func TestPromptNamesLanguage(t *testing.T) {
	gen := &mockGenerator{}
	e := newTestEngine(gen)
	in := makeInput(2)
	in.Language = "nl"
	if _, err := e.CreateSession(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gen.callsFor(FunctionTurn)[0].prompt, "Respond in Dutch.") {
		t.Error("prompt must name the session language")
	}
}

func TestRelevanceToFocus(t *testing.T) {
	cases := []struct {
		focus string
		text  string
		want  float64
	}{
		{"budget costs revenue", "the budget and the costs are fine", 2.0 / 3.0},
		{"budget costs revenue", "nothing financial here", 0},
		{"", "anything", 0},
		{"a an of", "short words carry no signal", 0},
	}
	for _, c := range cases {
		if got := relevanceToFocus(c.focus, c.text); got != c.want {
			t.Errorf("relevanceToFocus(%q, %q) = %f, want %f", c.focus, c.text, got, c.want)
		}
	}
}

func TestRankAnswerTargets(t *testing.T) {
	s := transcriptSession([]Message{
		msg("ceo", "Growth needs a bigger marketing budget."),
		msg("ceo", "Our strategy depends on market expansion."),
		msg("cfo", "Completely unrelated administrative note."),
		msg("ceo", "What does this do to costs and revenue?"),
	})
	cfo := s.Roles[1]

	targets := rankAnswerTargets(s, cfo)
	if len(targets) != 2 {
		t.Fatalf("expected 2 answer targets, got %d", len(targets))
	}
	// "costs and revenue" hits two focus words, "budget" one.
	if !strings.Contains(targets[0].Content, "costs and revenue") {
		t.Errorf("best target should be the costs question, got %q", targets[0].Content)
	}
	for _, m := range targets {
		if m.Author == cfo.ID {
			t.Error("a role must never target its own messages")
		}
	}
}

func TestRankAnswerTargetsSkipsUserMessages(t *testing.T) {
	s := transcriptSession([]Message{
		{ID: "u1", Author: UserAuthor, Content: "What about the budget costs?", IsUserIntervention: true},
	})
	if targets := rankAnswerTargets(s, s.Roles[1]); len(targets) != 0 {
		t.Errorf("user messages are not answer targets, got %d", len(targets))
	}
}

func TestIsUnderActive(t *testing.T) {
	activity := []RoleActivity{
		{RoleID: "ceo", Total: 6},
		{RoleID: "cfo", Total: 2},
	}
	if isUnderActive(Role{ID: "ceo"}, activity) {
		t.Error("ceo is above the mean and not under-active")
	}
	if !isUnderActive(Role{ID: "cfo"}, activity) {
		t.Error("cfo is below the mean and under-active")
	}
	if isUnderActive(Role{ID: "ceo"}, nil) {
		t.Error("no activity data means no nudge")
	}
}

func TestChallengeNudgeBiasedWhenCool(t *testing.T) {
	s := transcriptSession(nil)
	role := s.Roles[0]

	count := func(temp float64) int {
		rnd := rand.New(rand.NewSource(7))
		hits := 0
		for i := 0; i < 1000; i++ {
			rc := buildRoleContext(s, role, Dynamics{Temperature: temp}, rnd)
			if rc.shouldChallenge {
				hits++
			}
		}
		return hits
	}

	cool := count(0)
	hot := count(maxTemperature)
	if cool <= hot {
		t.Errorf("cool discussions must challenge more often: cool=%d hot=%d", cool, hot)
	}
	// Rough sanity on the configured chances.
	if cool < 600 || cool > 800 {
		t.Errorf("cool challenge rate out of range: %d/1000", cool)
	}
	if hot < 200 || hot > 400 {
		t.Errorf("default challenge rate out of range: %d/1000", hot)
	}
}
