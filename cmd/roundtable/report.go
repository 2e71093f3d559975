package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/roundtable/internal/discussion"
	"github.com/lorenzotomasdiez/roundtable/internal/logging"
	"github.com/lorenzotomasdiez/roundtable/internal/output"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Regenerate the report for a saved session",
		RunE:  runReport,
	}
	cmd.Flags().String("session", "", "Path to a saved session.json (required)")
	cmd.MarkFlagRequired("session")
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	sessionPath, _ := cmd.Flags().GetString("session")
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogFile, verbose)
	defer logger.Sync()

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}
	sess, err := discussion.UnmarshalSession(data)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engine := discussion.NewEngine(
		buildGateway(ctx, cfg.APIKey),
		discussion.DefaultStyleCatalog(),
		discussion.WithLogger(logger),
		discussion.WithTier(cfg.Tier),
	)

	report, err := engine.GenerateReport(ctx, sess)
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}
	output.PrintReport(report)
	output.PrintAnalytics(discussion.Analyze(sess))

	writer := output.NewWriter(filepath.Dir(sessionPath))
	if err := writer.WriteMarkdown(sess, report); err != nil {
		return err
	}
	fmt.Printf("\nReport written next to %s\n", sessionPath)
	return nil
}
