package discussion

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine orchestrates roundtable discussions. It owns no session state:
// every operation takes the session it mutates, and callers must serialize
// calls per session (single-writer access, not internally thread-safe for
// one session).
type Engine struct {
	gen    Generator
	usage  UsageRecorder
	styles *StyleCatalog
	log    *zap.Logger
	rnd    *rand.Rand
	newID  func() string
	now    func() time.Time
	tier   Tier
	userID string

	// OnMessage fires after each message is appended to a turn.
	OnMessage func(Message)
	// OnPhase fires when a new phase-advancing turn starts.
	OnPhase func(Phase)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithRand injects the randomness source used for probabilistic prompt
// decisions, so tests can pin outcomes.
func WithRand(rnd *rand.Rand) Option {
	return func(e *Engine) { e.rnd = rnd }
}

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithUsage attaches a fire-and-forget usage recorder for the given user.
func WithUsage(rec UsageRecorder, userID string) Option {
	return func(e *Engine) {
		e.usage = rec
		e.userID = userID
	}
}

// WithTier sets the tier passed to the generation gateway.
func WithTier(tier Tier) Option {
	return func(e *Engine) { e.tier = tier }
}

// NewEngine creates an engine backed by the given generation gateway and
// style catalog.
func NewEngine(gen Generator, styles *StyleCatalog, opts ...Option) *Engine {
	e := &Engine{
		gen:    gen,
		styles: styles,
		log:    zap.NewNop(),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		newID:  uuid.NewString,
		now:    time.Now,
		tier:   TierFree,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateSessionInput is the configuration of a new session.
type CreateSessionInput struct {
	Topic    Topic
	Goal     Goal
	Roles    []Role
	Language string
}

// CreateSession validates the configuration and produces a session whose
// introduction turn is already generated: every role speaks once, and the
// turn budget stays untouched.
func (e *Engine) CreateSession(ctx context.Context, in CreateSessionInput) (*Session, error) {
	if len(in.Roles) < MinRoles || len(in.Roles) > MaxRoles {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRoleCount, len(in.Roles))
	}

	roles := make([]Role, len(in.Roles))
	copy(roles, in.Roles)
	for i := range roles {
		if roles[i].Enthusiasm < 1 || roles[i].Enthusiasm > 5 {
			roles[i].Enthusiasm = 3
		}
		if len(roles[i].StyleIDs) == 0 {
			roles[i].StyleIDs = e.styles.DefaultsFor(roles[i].Category)
		}
	}

	s := &Session{
		ID:        e.newID(),
		CreatedAt: e.now(),
		Language:  in.Language,
		Topic:     in.Topic,
		Goal:      in.Goal,
		Roles:     roles,
		Status:    StatusActive,
	}

	turn, err := e.runPhaseTurn(ctx, s, PhaseIntroduction, AnalyzeDynamics(s, 0))
	if err != nil {
		return nil, err
	}
	s.Turns = append(s.Turns, turn)
	s.Status = StatusAwaitingUserInput
	return s, nil
}

// Advance runs the next phase-advancing turn. The budget unit is consumed
// up front: a turn that degrades to fallback messages for some roles still
// counts, by design.
func (e *Engine) Advance(ctx context.Context, s *Session) (*Turn, error) {
	if s.Status != StatusActive && s.Status != StatusAwaitingUserInput {
		return nil, fmt.Errorf("%w: status %s", ErrSessionNotActive, s.Status)
	}
	if s.ActualTurnNumber >= MaxActualTurns {
		s.Status = StatusCompleted
		return nil, ErrTurnBudgetExhausted
	}

	s.Status = StatusActive
	s.ActualTurnNumber++
	phase := PhaseForTurn(s.ActualTurnNumber + 1)
	if e.OnPhase != nil {
		e.OnPhase(phase)
	}

	dyn := AnalyzeDynamics(s, s.ActualTurnNumber)
	turn, err := e.runPhaseTurn(ctx, s, phase, dyn)
	if err != nil {
		s.Status = StatusAwaitingUserInput
		return nil, err
	}

	if len(dyn.Controversies) > 0 && len(turn.Messages) > 0 {
		e.attachVoting(ctx, s, &turn, dyn)
	}

	s.Turns = append(s.Turns, turn)
	if s.ActualTurnNumber >= MaxActualTurns {
		s.Status = StatusCompleted
	} else {
		s.Status = StatusAwaitingUserInput
	}
	return &s.Turns[len(s.Turns)-1], nil
}

// runPhaseTurn generates one message per role, in role order and strictly
// sequentially: each role's prompt includes every message generated before
// it. A single role's gateway failure substitutes a fallback message and
// never aborts the turn; only caller cancellation does.
func (e *Engine) runPhaseTurn(ctx context.Context, s *Session, phase Phase, dyn Dynamics) (Turn, error) {
	turn := Turn{
		ID:        e.newID(),
		Number:    len(s.Turns) + 1,
		Phase:     phase,
		Timestamp: e.now(),
	}

	for _, role := range s.Roles {
		if err := ctx.Err(); err != nil {
			return Turn{}, fmt.Errorf("discussion: %w", err)
		}

		rc := buildRoleContext(s, role, dyn, e.rnd)
		prompt := e.composeRolePrompt(s, role, phase, rc, turn.Messages)
		res, err := e.gen.Generate(ctx, prompt, FunctionTurn, e.tier)
		content := res.Content
		if err != nil {
			e.log.Warn("generation failed, substituting fallback",
				zap.String("session", s.ID),
				zap.String("role", role.ID),
				zap.String("phase", string(phase)),
				zap.Error(err))
			content = fallbackMessage(role)
		} else {
			e.recordUsage(prompt, res)
		}

		msg := Message{
			ID:        e.newID(),
			Author:    role.ID,
			Content:   content,
			Timestamp: e.now(),
		}
		turn.Messages = append(turn.Messages, msg)
		if e.OnMessage != nil {
			e.OnMessage(msg)
		}
	}
	return turn, nil
}

// fallbackMessage is the fixed substitute for a role whose generation call
// failed.
func fallbackMessage(role Role) string {
	return fmt.Sprintf("%s is gathering thoughts and will come back to this point in the next round.", role.Name)
}

// Finalize marks the session completed. Idempotent.
func (e *Engine) Finalize(s *Session) {
	s.Status = StatusCompleted
}

// recordUsage reports token counts fire-and-forget: the provider's own
// accounting when present, otherwise a word-count approximation (times 4/3).
func (e *Engine) recordUsage(prompt string, c Completion) {
	if e.usage == nil {
		return
	}
	in, out := c.InputTokens, c.OutputTokens
	if in == 0 && out == 0 {
		in = len(strings.Fields(prompt)) * 4 / 3
		out = len(strings.Fields(c.Content)) * 4 / 3
	}
	e.usage.RecordUsage(e.userID, in, out)
}
