package discussion

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// controversialIntro seeds the opening round with an explicit disagreement
// so the next advance sees a controversy in the transcript.
var controversialIntro = []string{
	"Wij moeten volop investeren in groei, dat is de kern van de strategie.",
	"Daar ben ik het mee oneens, de cijfers laten die investering niet toe.",
}

func TestAdvanceAttachesPollOnControversy(t *testing.T) {
	gen := &mockGenerator{
		responses:      controversialIntro,
		classResponses: map[FunctionClass]string{FunctionVote: "1"},
	}
	e := newTestEngine(gen)
	s, err := e.CreateSession(context.Background(), makeInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	turn, err := e.Advance(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vp := turn.Messages[0].VotingPrompt
	if vp == nil {
		t.Fatal("expected a poll on the turn's first message")
	}
	if len(vp.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(vp.Options))
	}
	if vp.Options[0].Label != "Side with CEO" || vp.Options[1].Label != "Side with CFO" {
		t.Errorf("side options wrong: %q, %q", vp.Options[0].Label, vp.Options[1].Label)
	}

	votes := turn.Messages[0].Votes
	if len(votes) != 2 {
		t.Fatalf("expected one vote per role, got %d", len(votes))
	}
	if votes[0].RoleID != "ceo" || votes[1].RoleID != "cfo" {
		t.Errorf("votes not in role order: %s, %s", votes[0].RoleID, votes[1].RoleID)
	}
	for _, v := range votes {
		if v.OptionID != "option_a" {
			t.Errorf("answer %q should map to option_a, got %s", "1", v.OptionID)
		}
		if v.PromptID != vp.ID {
			t.Errorf("vote must reference the poll, got %s", v.PromptID)
		}
	}
	if vp.Options[0].Count != 2 {
		t.Errorf("expected option_a count 2, got %d", vp.Options[0].Count)
	}

	for _, m := range turn.Messages[1:] {
		if m.VotingPrompt != nil {
			t.Error("only the first message of the turn carries the poll")
		}
	}
}

func TestAdvanceSkipsPollWithoutControversy(t *testing.T) {
	e := newTestEngine(&mockGenerator{})
	s, err := e.CreateSession(context.Background(), makeInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	turn, err := e.Advance(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turn.Messages[0].VotingPrompt != nil {
		t.Error("calm discussion must not trigger a poll")
	}
}

func TestVoteFailureIsDropped(t *testing.T) {
	gen := &mockGenerator{
		responses:      controversialIntro,
		classResponses: map[FunctionClass]string{FunctionVote: "2"},
		failOn: func(prompt string, class FunctionClass) error {
			if class == FunctionVote && strings.Contains(prompt, "You are CFO") {
				return errors.New("gateway down")
			}
			return nil
		},
	}
	e := newTestEngine(gen)
	s, err := e.CreateSession(context.Background(), makeInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	turn, err := e.Advance(context.Background(), s)
	if err != nil {
		t.Fatalf("a failed vote must not fail the turn: %v", err)
	}
	vp := turn.Messages[0].VotingPrompt
	if vp == nil {
		t.Fatal("expected a poll despite the failed vote")
	}
	votes := turn.Messages[0].Votes
	if len(votes) != 1 || votes[0].RoleID != "ceo" {
		t.Fatalf("expected only the ceo vote to survive, got %v", votes)
	}
	if vp.Options[1].Count != 1 {
		t.Errorf("expected option_b count 1, got %d", vp.Options[1].Count)
	}
}

func TestUninterpretableVoteIsDropped(t *testing.T) {
	gen := &mockGenerator{
		responses:      controversialIntro,
		classResponses: map[FunctionClass]string{FunctionVote: "I would rather abstain from this."},
	}
	e := newTestEngine(gen)
	s, err := e.CreateSession(context.Background(), makeInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	turn, err := e.Advance(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vp := turn.Messages[0].VotingPrompt; vp == nil {
		t.Fatal("poll must still be attached")
	}
	if votes := turn.Messages[0].Votes; len(votes) != 0 {
		t.Errorf("uninterpretable answers must be dropped, got %d votes", len(votes))
	}
}

func TestParseVote(t *testing.T) {
	options := []VoteOption{
		{ID: "option_a", Label: "Side with CEO"},
		{ID: "option_b", Label: "Side with CFO"},
		{ID: "option_middle", Label: "Middle ground between both positions"},
	}
	cases := []struct {
		answer string
		want   string
		ok     bool
	}{
		{"1", "option_a", true},
		{"  2. Definitely.", "option_b", true},
		{"3", "option_middle", true},
		{"I'd side with CFO on this one.", "option_b", true},
		{"The middle ground between both positions seems wise.", "option_middle", true},
		{"no idea", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := parseVote(c.answer, options)
		if got != c.want || ok != c.ok {
			t.Errorf("parseVote(%q) = (%q, %v), want (%q, %v)", c.answer, got, ok, c.want, c.ok)
		}
	}
}

func TestVotePromptListsNumberedOptions(t *testing.T) {
	gen := &mockGenerator{
		responses:      controversialIntro,
		classResponses: map[FunctionClass]string{FunctionVote: "1"},
	}
	e := newTestEngine(gen)
	s, err := e.CreateSession(context.Background(), makeInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.Advance(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := gen.callsFor(FunctionVote)
	if len(calls) != 2 {
		t.Fatalf("expected 2 vote calls, got %d", len(calls))
	}
	for _, c := range calls {
		if !strings.Contains(c.prompt, "1. Side with CEO") {
			t.Error("vote prompt must list the options by number")
		}
		if !strings.Contains(c.prompt, "answer with the number") {
			t.Error("vote prompt must demand a numeric answer")
		}
	}
}
