package discussion

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// attachVoting builds a poll from the most relevant controversy, attaches
// it to the turn's first message, and collects one vote per role. Votes are
// independent of each other, so collection runs concurrently; any vote that
// fails or cannot be interpreted is dropped.
func (e *Engine) attachVoting(ctx context.Context, s *Session, turn *Turn, dyn Dynamics) {
	c := mostRelevantControversy(s, dyn.Controversies)
	prompt := e.buildVotingPrompt(c)
	turn.Messages[0].VotingPrompt = prompt

	votes := e.collectVotes(ctx, s, prompt)
	for _, v := range votes {
		turn.Messages[0].Votes = append(turn.Messages[0].Votes, v)
		for i := range prompt.Options {
			if prompt.Options[i].ID == v.OptionID {
				prompt.Options[i].Count++
			}
		}
	}
}

// mostRelevantControversy ranks controversies by overlap with the session
// topic; ties go to the most recent one.
func mostRelevantControversy(s *Session, controversies []Controversy) Controversy {
	topic := s.Topic.Title + " " + s.Topic.Description
	best := controversies[0]
	bestScore := -1.0
	for _, c := range controversies {
		score := relevanceToFocus(topic, c.Topic+" "+c.Disagreement)
		if score >= bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

func (e *Engine) buildVotingPrompt(c Controversy) *VotingPrompt {
	return &VotingPrompt{
		ID:       e.newID(),
		Question: fmt.Sprintf("Where do you stand on the disagreement about %q?", c.Topic),
		Options: []VoteOption{
			{ID: "option_a", Label: fmt.Sprintf("Side with %s", c.RoleA)},
			{ID: "option_b", Label: fmt.Sprintf("Side with %s", c.RoleB)},
			{ID: "option_middle", Label: "Middle ground between both positions"},
		},
	}
}

// collectVotes asks every role to pick an option via one generation call
// each. All calls must finish (or be individually swallowed) before the
// turn is considered done.
func (e *Engine) collectVotes(ctx context.Context, s *Session, vp *VotingPrompt) []Vote {
	var (
		mu    sync.Mutex
		votes []Vote
		wg    sync.WaitGroup
	)
	for _, role := range s.Roles {
		wg.Add(1)
		go func(role Role) {
			defer wg.Done()
			prompt := e.composeVotePrompt(s, role, vp)
			res, err := e.gen.Generate(ctx, prompt, FunctionVote, e.tier)
			if err != nil {
				e.log.Warn("vote generation failed, dropping vote",
					zap.String("session", s.ID),
					zap.String("role", role.ID),
					zap.Error(err))
				return
			}
			e.recordUsage(prompt, res)
			optionID, ok := parseVote(res.Content, vp.Options)
			if !ok {
				e.log.Warn("vote answer not interpretable, dropping vote",
					zap.String("session", s.ID),
					zap.String("role", role.ID))
				return
			}
			mu.Lock()
			votes = append(votes, Vote{PromptID: vp.ID, RoleID: role.ID, OptionID: optionID})
			mu.Unlock()
		}(role)
	}
	wg.Wait()

	// Deterministic order: role order, not goroutine completion order.
	ordered := make([]Vote, 0, len(votes))
	for _, role := range s.Roles {
		for _, v := range votes {
			if v.RoleID == role.ID {
				ordered = append(ordered, v)
			}
		}
	}
	return ordered
}

func (e *Engine) composeVotePrompt(s *Session, role Role, vp *VotingPrompt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s with focus area %s.\n", role.Name, role.FocusArea)
	fmt.Fprintf(&b, "Poll question: %s\n", vp.Question)
	for i, o := range vp.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, o.Label)
	}
	b.WriteString("Based on your stance in the discussion so far, answer with the number of the option you choose and nothing else.")
	return b.String()
}

// parseVote interprets a generated answer as an option choice: first by
// option number, then by label match.
func parseVote(answer string, options []VoteOption) (string, bool) {
	trimmed := strings.TrimSpace(answer)
	for i, o := range options {
		if strings.HasPrefix(trimmed, fmt.Sprintf("%d", i+1)) {
			return o.ID, true
		}
	}
	lower := strings.ToLower(trimmed)
	for _, o := range options {
		if strings.Contains(lower, strings.ToLower(o.Label)) {
			return o.ID, true
		}
	}
	return "", false
}
