package discussion

import (
	"context"
	"time"
)

// Status represents the lifecycle state of a session.
type Status string

const (
	StatusActive            Status = "active"
	StatusAwaitingUserInput Status = "awaiting_user_input"
	StatusCompleted         Status = "completed"
)

// Session budget and configuration limits.
const (
	MinRoles         = 2
	MaxRoles         = 4
	MaxActualTurns   = 10
	MaxInterventions = 5
)

// UserAuthor is the author id used for user-injected messages.
const UserAuthor = "user"

// TargetAllRoles is the sentinel target meaning every configured role.
const TargetAllRoles = "all"

// Topic is the subject under discussion.
type Topic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Goal describes what the discussion should achieve.
type Goal struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Role is a participant persona. The first role of a session acts as
// moderator. Enthusiasm (1-5) and StyleIDs may be updated live; everything
// else is immutable once the session starts.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	FocusArea   string   `json:"focusArea"`
	Category    string   `json:"category"`
	Enthusiasm  int      `json:"enthusiasm"`
	StyleIDs    []string `json:"styleIds,omitempty"`
}

// VoteOption is one selectable answer of a poll, with a running count.
type VoteOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// VotingPrompt is a poll built from a controversial topic.
type VotingPrompt struct {
	ID       string       `json:"id"`
	Question string       `json:"question"`
	Options  []VoteOption `json:"options"`
}

// Vote binds one role to one option of one prompt.
type Vote struct {
	PromptID string `json:"promptId"`
	RoleID   string `json:"roleId"`
	OptionID string `json:"optionId"`
}

// Message is a single utterance. Author is a role id, or UserAuthor for
// user interventions. Messages reference roles by id only so a session
// serializes to a plain record without cycles.
type Message struct {
	ID                 string        `json:"id"`
	Author             string        `json:"author"`
	Content            string        `json:"content"`
	Timestamp          time.Time     `json:"timestamp"`
	IsUserIntervention bool          `json:"isUserIntervention,omitempty"`
	TargetRoles        []string      `json:"targetRoles,omitempty"`
	UserName           string        `json:"userName,omitempty"`
	VotingPrompt       *VotingPrompt `json:"votingPrompt,omitempty"`
	Votes              []Vote        `json:"votes,omitempty"`
}

// Turn is one phase-advancing round or one intervention round.
type Turn struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Phase     Phase     `json:"phase"`
	Messages  []Message `json:"messages"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the unit of a discussion. It is a plain value: all state
// lives here and the engine assumes single-writer access per session.
type Session struct {
	ID                    string    `json:"id"`
	CreatedAt             time.Time `json:"createdAt"`
	Language              string    `json:"language"`
	Topic                 Topic     `json:"topic"`
	Goal                  Goal      `json:"goal"`
	Roles                 []Role    `json:"roles"`
	Turns                 []Turn    `json:"turns"`
	Status                Status    `json:"status"`
	ActualTurnNumber      int       `json:"actualTurnNumber"`
	UserInterventionCount int       `json:"userInterventionCount"`
}

// Report is the derived summary of a session, immutable once generated.
type Report struct {
	SessionID       string    `json:"sessionId"`
	Summary         string    `json:"summary"`
	KeyPoints       []string  `json:"keyPoints"`
	Recommendations []string  `json:"recommendations"`
	FullTranscript  string    `json:"fullTranscript"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// FunctionClass classifies a generation call so the gateway can route it.
type FunctionClass string

const (
	FunctionTurn         FunctionClass = "turn"
	FunctionVote         FunctionClass = "vote"
	FunctionIntervention FunctionClass = "intervention"
	FunctionReport       FunctionClass = "report"
)

// Tier is the caller's usage tier, passed through to the gateway.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// Completion is one generation result. Token counts are the provider's own
// accounting and stay zero when the provider omits them.
type Completion struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Generator is the text generation gateway. Implementations own transport,
// model selection and retries; the engine never retries internally.
type Generator interface {
	Generate(ctx context.Context, prompt string, class FunctionClass, tier Tier) (Completion, error)
}

// UsageRecorder records token usage fire-and-forget. Vote collection reports
// concurrently, so implementations must be safe for concurrent use and must
// never let a recording failure affect session state.
type UsageRecorder interface {
	RecordUsage(userID string, inputTokens, outputTokens int)
}

// RoleByID returns the configured role with the given id.
func (s *Session) RoleByID(id string) (Role, bool) {
	for _, r := range s.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// Moderator returns the first configured role.
func (s *Session) Moderator() Role {
	return s.Roles[0]
}

// Messages returns all messages of all turns in order.
func (s *Session) Messages() []Message {
	var msgs []Message
	for _, t := range s.Turns {
		msgs = append(msgs, t.Messages...)
	}
	return msgs
}

// SetEnthusiasm updates a role's enthusiasm level (clamped to 1-5) mid-session.
func (s *Session) SetEnthusiasm(roleID string, level int) bool {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	for i := range s.Roles {
		if s.Roles[i].ID == roleID {
			s.Roles[i].Enthusiasm = level
			return true
		}
	}
	return false
}

// SetStyles replaces a role's selected style ids mid-session.
func (s *Session) SetStyles(roleID string, styleIDs []string) bool {
	for i := range s.Roles {
		if s.Roles[i].ID == roleID {
			s.Roles[i].StyleIDs = append([]string(nil), styleIDs...)
			return true
		}
	}
	return false
}

// authorName resolves an author id to a display name for transcripts.
func (s *Session) authorName(m Message) string {
	if m.Author == UserAuthor {
		if m.UserName != "" {
			return m.UserName
		}
		return "User"
	}
	if r, ok := s.RoleByID(m.Author); ok {
		return r.Name
	}
	return m.Author
}
