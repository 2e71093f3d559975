package output

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/lorenzotomasdiez/roundtable/internal/discussion"
)

var (
	phaseColor   = color.New(color.FgCyan, color.Bold)
	speakerColor = color.New(color.Bold)
	userColor    = color.New(color.FgMagenta, color.Bold)
	pollColor    = color.New(color.FgYellow)
	headerColor  = color.New(color.FgGreen, color.Bold)
)

// PrintPhase prints a phase transition banner.
func PrintPhase(phase discussion.Phase) {
	fmt.Println()
	phaseColor.Printf("=== Phase: %s ===\n", phase)
	fmt.Println()
}

// PrintMessage prints one formatted message. User interventions are
// highlighted.
func PrintMessage(speaker string, m discussion.Message) {
	if m.IsUserIntervention {
		userColor.Printf("[%s] ", speaker)
	} else {
		speakerColor.Printf("%s: ", speaker)
	}
	fmt.Println(m.Content)
	if m.VotingPrompt != nil {
		PrintPoll(m.VotingPrompt)
	}
}

// PrintPoll prints a poll question with its running counts.
func PrintPoll(vp *discussion.VotingPrompt) {
	pollColor.Printf("[Poll] %s\n", vp.Question)
	for _, o := range vp.Options {
		pollColor.Printf("  - %s: %d\n", o.Label, o.Count)
	}
}

// PrintReport prints the generated report.
func PrintReport(r *discussion.Report) {
	headerColor.Println("\n=== Report ===")
	fmt.Println(r.Summary)
	if len(r.KeyPoints) > 0 {
		headerColor.Println("\nKey points")
		for _, p := range r.KeyPoints {
			fmt.Printf("  - %s\n", p)
		}
	}
	if len(r.Recommendations) > 0 {
		headerColor.Println("\nRecommendations")
		for _, rec := range r.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}

// PrintAnalytics prints the session metrics.
func PrintAnalytics(a discussion.Analytics) {
	headerColor.Println("\n=== Session metrics ===")
	fmt.Printf("Turns: %d | Messages: %d | Interventions: %d\n", a.TotalTurns, a.TotalMessages, a.UserInterventions)
	fmt.Printf("Average message length: %.0f characters\n", a.AvgMessageLength)
	if a.MostActiveRole != "" {
		fmt.Printf("Most active role: %s\n", a.MostActiveRole)
	}
	fmt.Printf("Duration: %s\n", a.Duration)
	if len(a.Controversies) > 0 {
		fmt.Printf("Controversial moments: %d\n", len(a.Controversies))
	}
}
