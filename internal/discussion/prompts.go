package discussion

import (
	"fmt"
	"math/rand"
	"strings"
)

// Prompt-context thresholds.
const (
	answerCandidateWindow  = 4
	maxAnswerTargets       = 2
	controversyRelevance   = 0.3
	expertiseRelevance     = 0.4
	coolTemperature        = 3.0
	challengeChanceCool    = 0.7
	challengeChanceDefault = 0.3
)

var enthusiasmInstructions = map[int]string{
	1: "Your tone is pessimistic and reserved; stress problems and doubts.",
	2: "Your tone is neutral and measured; weigh pros and cons evenly.",
	3: "Your tone is constructive; look for workable ways forward.",
	4: "Your tone is enthusiastic; emphasize opportunities and momentum.",
	5: "Your tone is highly enthusiastic; radiate conviction and energy.",
}

var languageNames = map[string]string{
	"nl": "Dutch",
	"en": "English",
	"de": "German",
	"fr": "French",
}

// roleContext carries the dynamics-derived guidance for one role in one turn.
type roleContext struct {
	answerTargets   []Message
	underActive     bool
	controversies   []Controversy
	shouldChallenge bool
	expertisePoint  *UnansweredPoint
}

// buildRoleContext derives per-role guidance from the analyzer output. The
// random source decides the probabilistic challenge nudge, biased toward
// challenging when the discussion runs cool.
func buildRoleContext(s *Session, role Role, dyn Dynamics, rnd *rand.Rand) roleContext {
	rc := roleContext{
		answerTargets: rankAnswerTargets(s, role),
		underActive:   isUnderActive(role, dyn.Activity),
	}

	for _, c := range dyn.Controversies {
		if relevanceToFocus(role.FocusArea, c.Topic+" "+c.Disagreement) > controversyRelevance {
			rc.controversies = append(rc.controversies, c)
		}
	}

	chance := challengeChanceDefault
	if dyn.Temperature < coolTemperature {
		chance = challengeChanceCool
	}
	rc.shouldChallenge = rnd.Float64() < chance

	for i, p := range dyn.Unanswered {
		if relevanceToFocus(role.FocusArea, p.Question) > expertiseRelevance {
			rc.expertisePoint = &dyn.Unanswered[i]
			break
		}
	}
	return rc
}

// rankAnswerTargets picks, from the most recent other-role messages, the
// ones most relevant to this role's focus area.
func rankAnswerTargets(s *Session, role Role) []Message {
	msgs := s.Messages()
	var candidates []Message
	for i := len(msgs) - 1; i >= 0 && len(candidates) < answerCandidateWindow; i-- {
		if msgs[i].Author == role.ID || msgs[i].Author == UserAuthor {
			continue
		}
		candidates = append(candidates, msgs[i])
	}

	type scored struct {
		msg   Message
		score float64
	}
	var ranked []scored
	for _, m := range candidates {
		if score := relevanceToFocus(role.FocusArea, m.Content); score > 0 {
			ranked = append(ranked, scored{m, score})
		}
	}
	for i := range ranked {
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].score > ranked[i].score {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}
	var targets []Message
	for i := 0; i < len(ranked) && i < maxAnswerTargets; i++ {
		targets = append(targets, ranked[i].msg)
	}
	return targets
}

func isUnderActive(role Role, activity []RoleActivity) bool {
	if len(activity) == 0 {
		return false
	}
	total := 0
	own := 0
	for _, a := range activity {
		total += a.Total
		if a.RoleID == role.ID {
			own = a.Total
		}
	}
	mean := float64(total) / float64(len(activity))
	return float64(own) < mean
}

// relevanceToFocus scores how strongly a text touches a role's focus area:
// the fraction of the focus-area content words that appear in the text.
func relevanceToFocus(focusArea, text string) float64 {
	var focusWords []string
	for _, w := range strings.Fields(strings.ToLower(focusArea)) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if len(w) >= minContentWordLen {
			focusWords = append(focusWords, w)
		}
	}
	if len(focusWords) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, w := range focusWords {
		if strings.Contains(lower, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(focusWords))
}

// composeRolePrompt builds the full instruction payload for one role in one
// turn: persona, topic and goal, phase intent, dynamics guidance, style and
// enthusiasm configuration, and the accumulated transcript.
func (e *Engine) composeRolePrompt(s *Session, role Role, phase Phase, rc roleContext, pending []Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, %s in a roundtable discussion.\n", role.Name, role.Description)
	fmt.Fprintf(&b, "Your focus area: %s.\n", role.FocusArea)
	fmt.Fprintf(&b, "Topic: %s. %s\n", s.Topic.Title, s.Topic.Description)
	fmt.Fprintf(&b, "Goal of this discussion: %s (%s).\n", s.Goal.Name, s.Goal.Description)
	fmt.Fprintf(&b, "Current phase: %s\n", phase.Instruction())

	if phase == PhaseIntroduction {
		b.WriteString("This is the opening round: introduce yourself in one or two sentences and state your initial stance.\n")
	} else {
		b.WriteString("Do NOT introduce yourself again. Take a substantive position and move the discussion forward.\n")
		for _, m := range rc.answerTargets {
			fmt.Fprintf(&b, "Respond specifically to %s, who said: %q\n", s.authorName(m), snippet(m.Content, excerptLen))
		}
		if rc.underActive {
			b.WriteString("You have been quieter than the others; claim space and make your point firmly.\n")
		}
		if rc.shouldChallenge {
			b.WriteString("Challenge at least one assumption made so far instead of agreeing.\n")
		}
		for _, c := range rc.controversies {
			fmt.Fprintf(&b, "There is open disagreement between %s and %s about: %q. Take an explicit side.\n", c.RoleA, c.RoleB, c.Topic)
		}
		if rc.expertisePoint != nil {
			fmt.Fprintf(&b, "An unanswered question from %s needs your expertise: %q\n", rc.expertisePoint.RoleName, rc.expertisePoint.Question)
		}
	}

	e.writeStyleInstructions(&b, role)

	if msgs := append(s.Messages(), pending...); len(msgs) > 0 {
		b.WriteString("\nDiscussion so far:\n")
		for _, m := range msgs {
			fmt.Fprintf(&b, "%s: %s\n", s.authorName(m), m.Content)
		}
	}

	fmt.Fprintf(&b, "\nRespond in %s. It is your turn to speak.", languageName(s.Language))
	return b.String()
}

// writeStyleInstructions appends the role's configured style fragments and
// the enthusiasm tone profile.
func (e *Engine) writeStyleInstructions(b *strings.Builder, role Role) {
	for _, id := range role.StyleIDs {
		if opt, ok := e.styles.Lookup(id); ok {
			b.WriteString(opt.Instruction)
			b.WriteString("\n")
		}
	}
	level := role.Enthusiasm
	if level < 1 || level > 5 {
		level = 3
	}
	b.WriteString(enthusiasmInstructions[level])
	b.WriteString("\n")
}

func languageName(tag string) string {
	if name, ok := languageNames[tag]; ok {
		return name
	}
	if tag == "" {
		return "English"
	}
	return tag
}
