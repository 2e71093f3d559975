package discussion

// StyleCategory groups style options; a role selects at most one option
// per category.
type StyleCategory string

const (
	StyleCommunicationTone  StyleCategory = "communication_tone"
	StyleInteractionPattern StyleCategory = "interaction_pattern"
	StyleDepthFocus         StyleCategory = "depth_focus"
)

// StyleOption is a static catalog entry. The catalog is read-only
// configuration; options are never created or destroyed at runtime.
type StyleOption struct {
	ID          string        `json:"id"`
	Category    StyleCategory `json:"category"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Instruction string        `json:"instruction"`
}

// StyleCatalog is a closed, immutable set of style options looked up by id
// at prompt composition time.
type StyleCatalog struct {
	byID  map[string]StyleOption
	order []StyleOption
}

// NewStyleCatalog builds a catalog from a fixed option list.
func NewStyleCatalog(options []StyleOption) *StyleCatalog {
	c := &StyleCatalog{byID: make(map[string]StyleOption, len(options))}
	for _, o := range options {
		if _, dup := c.byID[o.ID]; dup {
			continue
		}
		c.byID[o.ID] = o
		c.order = append(c.order, o)
	}
	return c
}

// Lookup returns the option with the given id.
func (c *StyleCatalog) Lookup(id string) (StyleOption, bool) {
	o, ok := c.byID[id]
	return o, ok
}

// Options returns all options in catalog order.
func (c *StyleCatalog) Options() []StyleOption {
	return c.order
}

// DefaultsFor returns the default style selection for a role category.
func (c *StyleCatalog) DefaultsFor(roleCategory string) []string {
	ids, ok := defaultStylesByRoleCategory[roleCategory]
	if !ok {
		ids = defaultStylesByRoleCategory["general"]
	}
	var valid []string
	for _, id := range ids {
		if _, ok := c.byID[id]; ok {
			valid = append(valid, id)
		}
	}
	return valid
}

var defaultStylesByRoleCategory = map[string][]string{
	"executive": {"tone_direct", "pattern_decisive", "depth_strategic"},
	"finance":   {"tone_formal", "pattern_analytical", "depth_detail"},
	"technical": {"tone_direct", "pattern_analytical", "depth_detail"},
	"people":    {"tone_diplomatic", "pattern_collaborative", "depth_operational"},
	"creative":  {"tone_informal", "pattern_explorative", "depth_strategic"},
	"general":   {"tone_diplomatic", "pattern_collaborative", "depth_strategic"},
}

// DefaultStyleCatalog returns the built-in style catalog.
func DefaultStyleCatalog() *StyleCatalog {
	return NewStyleCatalog([]StyleOption{
		{ID: "tone_formal", Category: StyleCommunicationTone, Name: "Formal",
			Description: "Businesslike and precise wording.",
			Instruction: "Keep a formal, businesslike tone and precise wording."},
		{ID: "tone_informal", Category: StyleCommunicationTone, Name: "Informal",
			Description: "Accessible, conversational wording.",
			Instruction: "Keep an accessible, conversational tone."},
		{ID: "tone_direct", Category: StyleCommunicationTone, Name: "Direct",
			Description: "Short sentences, no hedging.",
			Instruction: "Be direct: short sentences, clear positions, no hedging."},
		{ID: "tone_diplomatic", Category: StyleCommunicationTone, Name: "Diplomatic",
			Description: "Tactful, bridging wording.",
			Instruction: "Be diplomatic: acknowledge other views before giving your own."},
		{ID: "pattern_collaborative", Category: StyleInteractionPattern, Name: "Collaborative",
			Description: "Builds on contributions of others.",
			Instruction: "Build explicitly on what others have said and look for common ground."},
		{ID: "pattern_analytical", Category: StyleInteractionPattern, Name: "Analytical",
			Description: "Structured, evidence-driven reasoning.",
			Instruction: "Reason step by step and back claims with evidence or numbers."},
		{ID: "pattern_decisive", Category: StyleInteractionPattern, Name: "Decisive",
			Description: "Pushes toward decisions.",
			Instruction: "Push the group toward a decision; name trade-offs and pick a side."},
		{ID: "pattern_explorative", Category: StyleInteractionPattern, Name: "Explorative",
			Description: "Widens the option space.",
			Instruction: "Explore unconventional angles before settling on an answer."},
		{ID: "depth_strategic", Category: StyleDepthFocus, Name: "Strategic",
			Description: "Long-term, big-picture focus.",
			Instruction: "Focus on the long term and the big picture over implementation detail."},
		{ID: "depth_operational", Category: StyleDepthFocus, Name: "Operational",
			Description: "Day-to-day execution focus.",
			Instruction: "Focus on day-to-day execution and practical feasibility."},
		{ID: "depth_detail", Category: StyleDepthFocus, Name: "Detail-oriented",
			Description: "Specifics, numbers, edge cases.",
			Instruction: "Get specific: numbers, edge cases and concrete examples."},
	})
}
