package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/roundtable/internal/catalog"
	"github.com/lorenzotomasdiez/roundtable/internal/discussion"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the available roles, goals and discussion styles",
		RunE:  runCatalog,
	}
}

func runCatalog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Roles:")
	for _, r := range catalog.DefaultRoles() {
		fmt.Fprintf(out, "  %-10s %s - %s\n", r.ID, r.Name, r.Description)
	}

	fmt.Fprintln(out, "\nGoals:")
	for _, g := range catalog.DefaultGoals() {
		fmt.Fprintf(out, "  %-12s %s - %s\n", g.ID, g.Name, g.Description)
	}

	fmt.Fprintln(out, "\nStyles:")
	for _, s := range discussion.DefaultStyleCatalog().Options() {
		fmt.Fprintf(out, "  %-22s [%s] %s - %s\n", s.ID, s.Category, s.Name, s.Description)
	}
	return nil
}
