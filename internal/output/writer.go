package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lorenzotomasdiez/roundtable/internal/discussion"
)

const maxSlugLen = 50

// GenerateSlug turns a topic title into a filesystem-safe directory name.
func GenerateSlug(topic string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(topic) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		slug = "discussion"
	}
	return slug
}

// CreateOutputDir creates base/slug and returns its path.
func CreateOutputDir(base, slug string) (string, error) {
	dir := filepath.Join(base, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("output: %w", err)
	}
	return dir, nil
}

// Writer persists session artifacts into an output directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteSession writes the serialized session record.
func (w *Writer) WriteSession(s *discussion.Session) error {
	data, err := discussion.MarshalSession(s)
	if err != nil {
		return err
	}
	return w.writeFile("session.json", data)
}

// WriteMarkdown writes a human-readable report document.
func (w *Writer) WriteMarkdown(s *discussion.Session, r *discussion.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Topic.Title)
	fmt.Fprintf(&b, "Goal: %s  \nGenerated: %s\n\n", s.Goal.Name, r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "## Summary\n\n%s\n\n", r.Summary)
	if len(r.KeyPoints) > 0 {
		b.WriteString("## Key points\n\n")
		for _, p := range r.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}
	if len(r.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "## Transcript\n\n```\n%s\n```\n", r.FullTranscript)
	return w.writeFile("report.md", []byte(b.String()))
}

func (w *Writer) writeFile(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(w.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("output: writing %s: %w", name, err)
	}
	return nil
}
