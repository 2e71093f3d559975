package discussion

import "strings"

// Heuristic constants. These are test-observable configuration: changing a
// keyword list or threshold changes detection behavior.
const (
	recentActivityWindow = 6
	controversyWindow    = 2
	answerLookahead      = 3
	minSharedWords       = 2
	minContentWordLen    = 4
	lengthFactorDivisor  = 50.0
	maxTemperature       = 10.0
	topicSnippetLen      = 100
	excerptLen           = 160
)

// Disagreement signals. The discussions run in Dutch or English, so both
// vocabularies are covered.
var disagreementTerms = []string{
	"oneens", "niet eens", "niet mee eens", "integendeel", "klopt niet",
	"onjuist", "daar ben ik het niet", "juist niet",
	"disagree", "on the contrary", "that is wrong", "incorrect", "however i",
}

// Question signals, including the literal question mark.
var questionTerms = []string{
	"?", "waarom", "hoe zou", "wat als", "wat denk", "kun je",
	"why", "how would", "what if", "what do you think", "could you",
}

// Engagement signals used for the temperature score. "urgent" is spelled the
// same in both languages and appears once.
var engagementTerms = []string{
	"belangrijk", "cruciaal", "essentieel", "absoluut", "urgent", "risico",
	"moet", "critical", "essential", "important", "must", "risk",
}

// RoleActivity counts a role's messages overall and within the recent window.
type RoleActivity struct {
	RoleID string `json:"roleId"`
	Total  int    `json:"total"`
	Recent int    `json:"recent"`
}

// Controversy is a heuristically detected disagreement between two roles.
type Controversy struct {
	Topic        string `json:"topic"`
	Disagreement string `json:"disagreement"`
	RoleA        string `json:"roleA"`
	RoleB        string `json:"roleB"`
}

// UnansweredPoint is a question no other role appears to have picked up.
type UnansweredPoint struct {
	Question string `json:"question"`
	RoleName string `json:"roleName"`
}

// Dynamics is the analyzer's summary of the accumulated transcript.
type Dynamics struct {
	Activity      []RoleActivity    `json:"activity"`
	Controversies []Controversy     `json:"controversies"`
	Unanswered    []UnansweredPoint `json:"unanswered"`
	Temperature   float64           `json:"temperature"`
	TurnNumber    int               `json:"turnNumber"`
}

// AnalyzeDynamics inspects the transcript and produces a deterministic
// context summary for the given turn number. It is a pure function of the
// session contents.
func AnalyzeDynamics(s *Session, currentTurn int) Dynamics {
	msgs := s.Messages()
	return Dynamics{
		Activity:      roleActivity(s, msgs),
		Controversies: detectControversies(s, msgs),
		Unanswered:    detectUnanswered(s, msgs),
		Temperature:   temperature(msgs),
		TurnNumber:    currentTurn,
	}
}

func roleActivity(s *Session, msgs []Message) []RoleActivity {
	activity := make([]RoleActivity, len(s.Roles))
	for i, r := range s.Roles {
		activity[i].RoleID = r.ID
	}
	recentStart := len(msgs) - recentActivityWindow
	for i, m := range msgs {
		for j := range activity {
			if activity[j].RoleID != m.Author {
				continue
			}
			activity[j].Total++
			if i >= recentStart {
				activity[j].Recent++
			}
		}
	}
	return activity
}

// detectControversies flags pairs of messages from different roles where
// the later one contains a disagreement signal and an earlier message from
// another role sits within the sliding window.
func detectControversies(s *Session, msgs []Message) []Controversy {
	var found []Controversy
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Author == UserAuthor || !containsAnyTerm(msgs[i].Content, disagreementTerms) {
			continue
		}
		for j := i - 1; j >= 0 && j >= i-controversyWindow; j-- {
			if msgs[j].Author == msgs[i].Author || msgs[j].Author == UserAuthor {
				continue
			}
			found = append(found, Controversy{
				Topic:        snippet(msgs[j].Content, topicSnippetLen),
				Disagreement: snippet(msgs[i].Content, excerptLen),
				RoleA:        s.authorName(msgs[j]),
				RoleB:        s.authorName(msgs[i]),
			})
			break
		}
	}
	return found
}

// detectUnanswered finds question-bearing messages that none of the next
// few messages from another role substantively responds to (shared content
// words as the overlap measure).
func detectUnanswered(s *Session, msgs []Message) []UnansweredPoint {
	var points []UnansweredPoint
	for i, m := range msgs {
		if m.Author == UserAuthor || !containsAnyTerm(m.Content, questionTerms) {
			continue
		}
		answered := false
		for j := i + 1; j < len(msgs) && j <= i+answerLookahead; j++ {
			if msgs[j].Author == m.Author {
				continue
			}
			if sharedContentWords(m.Content, msgs[j].Content) >= minSharedWords {
				answered = true
				break
			}
		}
		if !answered {
			points = append(points, UnansweredPoint{
				Question: snippet(m.Content, excerptLen),
				RoleName: s.authorName(m),
			})
		}
	}
	return points
}

// temperature scores engagement 0-10: per message a length factor plus
// twice the number of engagement signals present, averaged over all
// messages.
func temperature(msgs []Message) float64 {
	if len(msgs) == 0 {
		return 0
	}
	var total float64
	for _, m := range msgs {
		score := float64(len(strings.Fields(m.Content))) / lengthFactorDivisor
		score += 2 * float64(countTerms(m.Content, engagementTerms))
		total += score
	}
	avg := total / float64(len(msgs))
	if avg > maxTemperature {
		return maxTemperature
	}
	return avg
}

func containsAnyTerm(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func countTerms(text string, terms []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			n++
		}
	}
	return n
}

// sharedContentWords counts distinct words longer than three characters
// that appear in both texts.
func sharedContentWords(a, b string) int {
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(a)) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if len(w) >= minContentWordLen {
			seen[w] = true
		}
	}
	shared := 0
	counted := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(b)) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if seen[w] && !counted[w] {
			shared++
			counted[w] = true
		}
	}
	return shared
}

func snippet(text string, max int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
