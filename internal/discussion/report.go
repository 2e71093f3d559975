package discussion

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Analytics is a pure reduction over a session's turns.
type Analytics struct {
	TotalTurns        int             `json:"totalTurns"`
	TotalMessages     int             `json:"totalMessages"`
	AvgMessageLength  float64         `json:"avgMessageLength"`
	UserInterventions int             `json:"userInterventions"`
	MostActiveRole    string          `json:"mostActiveRole"`
	Duration          time.Duration   `json:"duration"`
	Controversies     []Controversy   `json:"controversies"`
	VotingResults     []*VotingPrompt `json:"votingResults"`
}

// Analyze reduces the session into aggregate metrics. It never touches the
// gateway and works on completed and in-progress sessions alike.
func Analyze(s *Session) Analytics {
	a := Analytics{
		TotalTurns:    len(s.Turns),
		Controversies: detectControversies(s, s.Messages()),
	}

	counts := make(map[string]int)
	var totalLen int
	var lastTimestamp time.Time
	for _, t := range s.Turns {
		for _, m := range t.Messages {
			a.TotalMessages++
			totalLen += len([]rune(m.Content))
			if m.Timestamp.After(lastTimestamp) {
				lastTimestamp = m.Timestamp
			}
			if m.IsUserIntervention {
				a.UserInterventions++
			} else {
				counts[m.Author]++
			}
			if m.VotingPrompt != nil {
				a.VotingResults = append(a.VotingResults, m.VotingPrompt)
			}
		}
	}
	if a.TotalMessages > 0 {
		a.AvgMessageLength = float64(totalLen) / float64(a.TotalMessages)
	}
	if !lastTimestamp.IsZero() {
		a.Duration = lastTimestamp.Sub(s.CreatedAt)
	}

	best := 0
	for _, r := range s.Roles {
		if counts[r.ID] > best {
			best = counts[r.ID]
			a.MostActiveRole = r.Name
		}
	}
	return a
}

// FormatTranscript renders the full session deterministically: every turn
// with its phase header and every message with its author name.
func FormatTranscript(s *Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Discussion: %s\nGoal: %s\n", s.Topic.Title, s.Goal.Name)
	for _, t := range s.Turns {
		fmt.Fprintf(&b, "\n== Turn %d (%s) ==\n", t.Number, t.Phase)
		for _, m := range t.Messages {
			fmt.Fprintf(&b, "%s: %s\n", s.authorName(m), m.Content)
			if m.VotingPrompt != nil {
				fmt.Fprintf(&b, "[Poll] %s\n", m.VotingPrompt.Question)
				for _, o := range m.VotingPrompt.Options {
					fmt.Fprintf(&b, "  - %s: %d votes\n", o.Label, o.Count)
				}
			}
		}
	}
	return b.String()
}

// reportPayload is the structured object the report call must return.
type reportPayload struct {
	Summary         string   `json:"summary"`
	KeyPoints       []string `json:"keyPoints"`
	Recommendations []string `json:"recommendations"`
}

var codeBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// GenerateReport freezes the session and summarizes its transcript through
// a single gateway call. A gateway failure surfaces as ErrReportGeneration;
// malformed output degrades to a fixed generic report. The transcript is
// always rendered deterministically from session data.
func (e *Engine) GenerateReport(ctx context.Context, s *Session) (*Report, error) {
	e.Finalize(s)

	transcript := FormatTranscript(s)
	prompt := reportPrompt(s, transcript)
	res, err := e.gen.Generate(ctx, prompt, FunctionReport, e.tier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportGeneration, err)
	}
	e.recordUsage(prompt, res)

	payload, ok := parseReportJSON(res.Content)
	if !ok {
		payload = fallbackReportPayload(s)
	}
	return &Report{
		SessionID:       s.ID,
		Summary:         payload.Summary,
		KeyPoints:       payload.KeyPoints,
		Recommendations: payload.Recommendations,
		FullTranscript:  transcript,
		GeneratedAt:     e.now(),
	}, nil
}

func reportPrompt(s *Session, transcript string) string {
	var b strings.Builder
	b.WriteString("You summarize expert roundtable discussions. Analyze the transcript below and return ONLY valid JSON in this exact format:\n")
	b.WriteString(`{"summary": "...", "keyPoints": ["..."], "recommendations": ["..."]}` + "\n")
	b.WriteString("Do NOT include any other text, explanation, or markdown formatting.\n")
	fmt.Fprintf(&b, "Write all content in %s.\n\n", languageName(s.Language))
	b.WriteString(transcript)
	return b.String()
}

// parseReportJSON tries to extract the report payload from generated
// output: direct parse, then a markdown code block, then the outermost
// JSON object in the text.
func parseReportJSON(raw string) (reportPayload, bool) {
	var payload reportPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err == nil && payload.Summary != "" {
		return payload, true
	}

	if matches := codeBlockRe.FindStringSubmatch(raw); len(matches) > 1 {
		if err := json.Unmarshal([]byte(strings.TrimSpace(matches[1])), &payload); err == nil && payload.Summary != "" {
			return payload, true
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err == nil && payload.Summary != "" {
			return payload, true
		}
	}
	return reportPayload{}, false
}

// fallbackReportPayload is the deterministic substitute when the gateway
// returns unusable output.
func fallbackReportPayload(s *Session) reportPayload {
	return reportPayload{
		Summary: fmt.Sprintf("The roundtable discussed %q with %d participants over %d turns. See the full transcript for details.",
			s.Topic.Title, len(s.Roles), len(s.Turns)),
		KeyPoints:       []string{"The automatic summary could not be generated; consult the transcript."},
		Recommendations: []string{"Review the transcript and rerun report generation."},
	}
}
