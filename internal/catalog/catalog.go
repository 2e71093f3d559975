// Package catalog holds the static goal and role content consumed by the
// discussion engine. Entries are read-only configuration, never created or
// destroyed at runtime.
package catalog

import (
	"fmt"

	"github.com/lorenzotomasdiez/roundtable/internal/discussion"
)

// DefaultGoals returns the built-in discussion goals.
func DefaultGoals() []discussion.Goal {
	return []discussion.Goal{
		{ID: "decision", Name: "Reach a decision", Category: "converge",
			Description: "Weigh the options and commit to one course of action."},
		{ID: "brainstorm", Name: "Generate ideas", Category: "diverge",
			Description: "Produce as many distinct, usable ideas as possible."},
		{ID: "analysis", Name: "Understand the problem", Category: "explore",
			Description: "Map causes, effects and unknowns before acting."},
		{ID: "alignment", Name: "Align the team", Category: "converge",
			Description: "Surface disagreements and land on a shared position."},
		{ID: "risk_review", Name: "Review the risks", Category: "explore",
			Description: "Stress-test a plan against failure scenarios."},
	}
}

// GoalByID returns the goal with the given id.
func GoalByID(id string) (discussion.Goal, error) {
	for _, g := range DefaultGoals() {
		if g.ID == id {
			return g, nil
		}
	}
	return discussion.Goal{}, fmt.Errorf("catalog: unknown goal %q", id)
}

// DefaultRoles returns the built-in expert personas. The first selected
// role always acts as moderator.
func DefaultRoles() []discussion.Role {
	return []discussion.Role{
		{ID: "ceo", Name: "CEO", Category: "executive", Enthusiasm: 4,
			Description: "the chief executive who owns the overall direction",
			FocusArea:   "strategy vision growth market position leadership priorities"},
		{ID: "cfo", Name: "CFO", Category: "finance", Enthusiasm: 2,
			Description: "the finance chief who guards the numbers",
			FocusArea:   "budget costs revenue margins cashflow investment financial risk"},
		{ID: "cto", Name: "CTO", Category: "technical", Enthusiasm: 3,
			Description: "the technology chief responsible for systems and delivery",
			FocusArea:   "architecture technology platform scalability security technical debt delivery"},
		{ID: "hr", Name: "HR Director", Category: "people", Enthusiasm: 3,
			Description: "the people lead watching culture and capacity",
			FocusArea:   "people culture hiring retention workload morale development teams"},
		{ID: "marketing", Name: "Marketing Lead", Category: "creative", Enthusiasm: 5,
			Description: "the marketing lead focused on customers and positioning",
			FocusArea:   "customers brand positioning campaigns audience messaging conversion"},
		{ID: "advocate", Name: "Customer Advocate", Category: "general", Enthusiasm: 3,
			Description: "the voice of the customer at the table",
			FocusArea:   "customer experience usability support complaints feedback loyalty"},
	}
}

// RolesFor resolves a list of role ids against the default catalog,
// preserving order.
func RolesFor(ids []string) ([]discussion.Role, error) {
	all := DefaultRoles()
	var roles []discussion.Role
	for _, id := range ids {
		found := false
		for _, r := range all {
			if r.ID == id {
				roles = append(roles, r)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("catalog: unknown role %q", id)
		}
	}
	return roles, nil
}
