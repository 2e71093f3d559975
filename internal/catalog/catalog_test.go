package catalog

import (
	"testing"

	"github.com/lorenzotomasdiez/roundtable/internal/discussion"
)

func TestDefaultRolesAreWellFormed(t *testing.T) {
	roles := DefaultRoles()
	if len(roles) < discussion.MaxRoles {
		t.Fatalf("catalog must offer at least %d roles, got %d", discussion.MaxRoles, len(roles))
	}
	seen := map[string]bool{}
	for _, r := range roles {
		if r.ID == "" || r.Name == "" || r.Description == "" || r.FocusArea == "" {
			t.Errorf("role %q has empty fields", r.ID)
		}
		if r.Enthusiasm < 1 || r.Enthusiasm > 5 {
			t.Errorf("role %q enthusiasm out of range: %d", r.ID, r.Enthusiasm)
		}
		if seen[r.ID] {
			t.Errorf("duplicate role id %q", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestRolesForPreservesOrder(t *testing.T) {
	roles, err := RolesFor([]string{"cto", "ceo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roles) != 2 || roles[0].ID != "cto" || roles[1].ID != "ceo" {
		t.Errorf("selection order not preserved: %v", roles)
	}
}

func TestRolesForUnknownID(t *testing.T) {
	if _, err := RolesFor([]string{"ceo", "astronaut"}); err == nil {
		t.Error("expected error for unknown role id")
	}
}

func TestGoalByID(t *testing.T) {
	g, err := GoalByID("decision")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Name != "Reach a decision" {
		t.Errorf("unexpected goal: %+v", g)
	}
	if _, err := GoalByID("world_domination"); err == nil {
		t.Error("expected error for unknown goal id")
	}
}

func TestRoleCategoriesHaveDefaultStyles(t *testing.T) {
	styles := discussion.DefaultStyleCatalog()
	for _, r := range DefaultRoles() {
		if len(styles.DefaultsFor(r.Category)) == 0 {
			t.Errorf("role category %q has no default styles", r.Category)
		}
	}
}
