package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lorenzotomasdiez/roundtable/internal/discussion"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Remote work policy", "remote-work-policy"},
		{"  Weird -- punctuation!!  ", "weird-punctuation"},
		{"Überbudget: 2027?", "berbudget-2027"},
		{"", "discussion"},
		{"!!!", "discussion"},
		{strings.Repeat("long title ", 10), "long-title-long-title-long-title-long-title-long-t"},
	}
	for _, c := range cases {
		if got := GenerateSlug(c.in); got != c.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	for _, c := range cases {
		if got := GenerateSlug(c.in); len(got) > 50 {
			t.Errorf("slug %q exceeds the length cap", got)
		}
	}
}

func TestCreateOutputDir(t *testing.T) {
	base := t.TempDir()
	dir, err := CreateOutputDir(base, "my-topic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join(base, "my-topic") {
		t.Errorf("unexpected dir %q", dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("expected a directory at %q, got %v", dir, err)
	}
}

func sampleSession() *discussion.Session {
	return &discussion.Session{
		ID:        "s1",
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Language:  "en",
		Topic:     discussion.Topic{Title: "Remote work policy"},
		Goal:      discussion.Goal{ID: "g1", Name: "Reach a decision"},
		Roles: []discussion.Role{
			{ID: "ceo", Name: "CEO", Enthusiasm: 3},
			{ID: "cfo", Name: "CFO", Enthusiasm: 3},
		},
		Turns: []discussion.Turn{{
			ID: "t1", Number: 1, Phase: discussion.PhaseIntroduction,
			Messages: []discussion.Message{
				{ID: "m1", Author: "ceo", Content: "Opening statement."},
			},
			Timestamp: time.Date(2026, 3, 1, 9, 0, 1, 0, time.UTC),
		}},
		Status: discussion.StatusCompleted,
	}
}

func TestWriteSession(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	s := sampleSession()

	if err := w.WriteSession(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("session.json not written: %v", err)
	}
	restored, err := discussion.UnmarshalSession(data)
	if err != nil {
		t.Fatalf("written session does not parse: %v", err)
	}
	if restored.ID != s.ID || len(restored.Turns) != 1 {
		t.Errorf("round trip lost data: %+v", restored)
	}
}

func TestWriteMarkdown(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	s := sampleSession()
	r := &discussion.Report{
		SessionID:       s.ID,
		Summary:         "A summary of the discussion.",
		KeyPoints:       []string{"point one"},
		Recommendations: []string{"do the thing"},
		FullTranscript:  discussion.FormatTranscript(s),
		GeneratedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	if err := w.WriteMarkdown(s, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "report.md"))
	if err != nil {
		t.Fatalf("report.md not written: %v", err)
	}
	doc := string(data)
	for _, want := range []string{
		"# Remote work policy",
		"## Summary",
		"A summary of the discussion.",
		"- point one",
		"- do the thing",
		"== Turn 1 (introduction) ==",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("report.md missing %q", want)
		}
	}
}
