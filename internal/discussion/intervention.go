package discussion

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Intervention length limits after trimming.
const (
	minInterventionLen = 20
	maxInterventionLen = 250
)

// unsafePatterns rejects the obvious injection vectors before any
// generation call sees the content.
var unsafePatterns = []string{
	"<script", "</script", "javascript:", "onerror=", "onload=", "onclick=",
	"onmouseover=", "eval(", "document.", "window.",
}

// Intervention is a user message injected mid-discussion.
type Intervention struct {
	Content     string
	TargetRoles []string // role ids, or the single TargetAllRoles sentinel
	UserName    string
}

// ValidateIntervention applies the synchronous validation rules: length
// first, then targets, then the unsafe-content scan. Lifecycle checks live
// in Intervene.
func ValidateIntervention(iv Intervention) error {
	content := strings.TrimSpace(iv.Content)
	if len([]rune(content)) < minInterventionLen || len([]rune(content)) > maxInterventionLen {
		return ErrInvalidInterventionLength
	}
	if len(iv.TargetRoles) == 0 {
		return ErrNoTargetRoles
	}
	lower := strings.ToLower(content)
	for _, p := range unsafePatterns {
		if strings.Contains(lower, p) {
			return ErrUnsafeInput
		}
	}
	return nil
}

// Intervene injects a user message and collects responses from the
// targeted roles. It never consumes phase budget and always leaves the
// session awaiting further input. Individual role failures are dropped
// silently; the intervention itself never aborts because of them.
func (e *Engine) Intervene(ctx context.Context, s *Session, iv Intervention) (*Turn, error) {
	if err := ValidateIntervention(iv); err != nil {
		return nil, err
	}
	if s.Status != StatusAwaitingUserInput {
		return nil, fmt.Errorf("%w: status %s", ErrNotAwaitingInput, s.Status)
	}
	if s.UserInterventionCount >= MaxInterventions {
		return nil, ErrInterventionBudgetExhausted
	}

	targets, err := e.resolveTargets(s, iv.TargetRoles)
	if err != nil {
		return nil, err
	}

	s.Status = StatusActive
	s.UserInterventionCount++

	userMsg := Message{
		ID:                 e.newID(),
		Author:             UserAuthor,
		Content:            strings.TrimSpace(iv.Content),
		Timestamp:          e.now(),
		IsUserIntervention: true,
		TargetRoles:        roleIDs(targets),
		UserName:           iv.UserName,
	}
	turn := Turn{
		ID:        e.newID(),
		Number:    len(s.Turns) + 1,
		Phase:     PhaseUserIntervention,
		Messages:  []Message{userMsg},
		Timestamp: e.now(),
	}
	if e.OnMessage != nil {
		e.OnMessage(userMsg)
	}

	for _, role := range targets {
		if err := ctx.Err(); err != nil {
			break
		}
		prompt := e.composeInterventionPrompt(s, role, userMsg, turn.Messages[1:])
		res, genErr := e.gen.Generate(ctx, prompt, FunctionIntervention, e.tier)
		if genErr != nil {
			e.log.Warn("intervention response failed, dropping role response",
				zap.String("session", s.ID),
				zap.String("role", role.ID),
				zap.Error(genErr))
			continue
		}
		e.recordUsage(prompt, res)
		msg := Message{
			ID:        e.newID(),
			Author:    role.ID,
			Content:   res.Content,
			Timestamp: e.now(),
		}
		turn.Messages = append(turn.Messages, msg)
		if e.OnMessage != nil {
			e.OnMessage(msg)
		}
	}

	s.Turns = append(s.Turns, turn)
	s.Status = StatusAwaitingUserInput
	return &s.Turns[len(s.Turns)-1], nil
}

// resolveTargets maps target ids onto configured roles; the all-roles
// sentinel selects every role.
func (e *Engine) resolveTargets(s *Session, targetIDs []string) ([]Role, error) {
	if len(targetIDs) == 1 && targetIDs[0] == TargetAllRoles {
		return s.Roles, nil
	}
	var targets []Role
	for _, r := range s.Roles {
		for _, id := range targetIDs {
			if r.ID == id {
				targets = append(targets, r)
				break
			}
		}
	}
	if len(targets) == 0 {
		return nil, ErrNoTargetRoles
	}
	return targets, nil
}

func roleIDs(roles []Role) []string {
	ids := make([]string, len(roles))
	for i, r := range roles {
		ids[i] = r.ID
	}
	return ids
}

// composeInterventionPrompt asks the role to restate the question, judge
// its topical relevance before answering, and keep its configured style.
// Off-topic questions get a redirect back to the topic instead of an
// answer.
func (e *Engine) composeInterventionPrompt(s *Session, role Role, userMsg Message, pending []Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s in a roundtable discussion about %s.\n", role.Name, role.Description, s.Topic.Title)
	fmt.Fprintf(&b, "Your focus area: %s.\n", role.FocusArea)
	userName := userMsg.UserName
	if userName == "" {
		userName = "A participant"
	}
	fmt.Fprintf(&b, "%s interrupts the discussion with this question: %q\n", userName, userMsg.Content)
	b.WriteString("First restate the question briefly in your own words.\n")
	b.WriteString("Then judge whether the question is relevant to the discussion topic. If it is off-topic, do not answer it; instead, politely redirect the conversation back to the topic.\n")
	b.WriteString("If it is relevant, answer it from your expertise.\n")

	e.writeStyleInstructions(&b, role)

	if msgs := append(s.Messages(), pending...); len(msgs) > 0 {
		b.WriteString("\nDiscussion so far:\n")
		for _, m := range msgs {
			fmt.Fprintf(&b, "%s: %s\n", s.authorName(m), m.Content)
		}
	}
	fmt.Fprintf(&b, "\nRespond in %s.", languageName(s.Language))
	return b.String()
}
