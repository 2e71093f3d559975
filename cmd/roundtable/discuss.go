package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lorenzotomasdiez/roundtable/internal/catalog"
	"github.com/lorenzotomasdiez/roundtable/internal/config"
	"github.com/lorenzotomasdiez/roundtable/internal/discussion"
	"github.com/lorenzotomasdiez/roundtable/internal/logging"
	"github.com/lorenzotomasdiez/roundtable/internal/models"
	"github.com/lorenzotomasdiez/roundtable/internal/openrouter"
	"github.com/lorenzotomasdiez/roundtable/internal/output"
)

func newDiscussCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discuss",
		Short: "Run a full roundtable discussion on a topic",
		RunE:  runDiscuss,
	}
	cmd.Flags().String("topic", "", "Discussion topic (required)")
	cmd.Flags().String("description", "", "Longer topic description")
	cmd.Flags().String("goal", "decision", "Goal id (see 'roundtable catalog')")
	cmd.Flags().String("roles", "ceo,cfo,cto", "Comma-separated role ids, 2-4, first is moderator")
	cmd.Flags().Int("turns", 0, "Number of phase turns to run (default: full budget)")
	cmd.Flags().String("ask", "", "User question to inject after the first turn (20-250 chars)")
	cmd.Flags().String("ask-roles", discussion.TargetAllRoles, "Comma-separated target role ids for --ask, or 'all'")
	cmd.Flags().String("name", "", "Override output folder name (default: auto-slug from topic)")
	cmd.MarkFlagRequired("topic")
	return cmd
}

func runDiscuss(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	description, _ := cmd.Flags().GetString("description")
	goalID, _ := cmd.Flags().GetString("goal")
	rolesCSV, _ := cmd.Flags().GetString("roles")
	turnsFlag, _ := cmd.Flags().GetInt("turns")
	ask, _ := cmd.Flags().GetString("ask")
	askRolesCSV, _ := cmd.Flags().GetString("ask-roles")
	name, _ := cmd.Flags().GetString("name")
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if turnsFlag > 0 {
		cfg.Turns = turnsFlag
	}

	logger := logging.New(cfg.LogFile, verbose)
	defer logger.Sync()

	goal, err := catalog.GoalByID(goalID)
	if err != nil {
		return err
	}
	roles, err := catalog.RolesFor(splitCSV(rolesCSV))
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

	engine.OnPhase = output.PrintPhase
	engine.OnMessage = func(m discussion.Message) {
		speaker := m.Author
		if m.Author == discussion.UserAuthor {
			speaker = m.UserName
			if speaker == "" {
				speaker = "User"
			}
		} else {
			for _, r := range roles {
				if r.ID == m.Author {
					speaker = r.Name
					break
				}
			}
		}
		output.PrintMessage(speaker, m)
	}

	fmt.Printf("Roundtable: %s\nGoal: %s | Roles: %s | Turns: %d\n", topic, goal.Name, rolesCSV, cfg.Turns)

	sess, err := engine.CreateSession(ctx, discussion.CreateSessionInput{
		Topic:    discussion.Topic{Title: topic, Description: description},
		Goal:     goal,
		Roles:    roles,
		Language: cfg.Language,
	})
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	for i := 0; i < cfg.Turns; i++ {
		if _, err := engine.Advance(ctx, sess); err != nil {
			if errors.Is(err, discussion.ErrTurnBudgetExhausted) {
				break
			}
			return fmt.Errorf("advancing discussion: %w", err)
		}
		if i == 0 && ask != "" {
			_, ivErr := engine.Intervene(ctx, sess, discussion.Intervention{
				Content:     ask,
				TargetRoles: splitCSV(askRolesCSV),
				UserName:    "Moderator desk",
			})
			if ivErr != nil {
				fmt.Printf("Warning: intervention rejected: %v\n", ivErr)
			}
		}
	}

	report, err := engine.GenerateReport(ctx, sess)
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}
	output.PrintReport(report)
	output.PrintAnalytics(discussion.Analyze(sess))

	slug := name
	if slug == "" {
		slug = output.GenerateSlug(topic)
	}
	outDir, err := output.CreateOutputDir(cfg.OutputDir, slug)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	writer := output.NewWriter(outDir)
	if err := writer.WriteSession(sess); err != nil {
		return err
	}
	if err := writer.WriteMarkdown(sess, report); err != nil {
		return err
	}

	fmt.Printf("\nDiscussion complete. Output saved to: %s\n", outDir)
	return nil
}

// loadConfig merges the environment configuration with root flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	if apiKey, _ := cmd.Root().PersistentFlags().GetString("api-key"); apiKey != "" {
		os.Setenv("OPENROUTER_API_KEY", apiKey)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if outputDir, _ := cmd.Root().PersistentFlags().GetString("output-dir"); outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if language, _ := cmd.Root().PersistentFlags().GetString("language"); language != "" {
		cfg.Language = language
	}
	if logFile, _ := cmd.Root().PersistentFlags().GetString("log-file"); logFile != "" {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

// buildGateway assigns free models to the engine's function classes,
// falling back to the hardcoded list when the live listing is unavailable.
func buildGateway(ctx context.Context, apiKey string) *openrouter.Gateway {
	client := openrouter.NewClient(apiKey)
	allModels, err := client.ListModels(ctx)
	if err != nil {
		fmt.Printf("Warning: could not fetch models: %v. Using defaults.\n", err)
		allModels = models.DefaultFreeModels()
	}
	registry := models.NewRegistry(allModels)
	if len(registry.FreeModels()) == 0 {
		registry = models.NewRegistry(models.DefaultFreeModels())
	}
	classes := []discussion.FunctionClass{
		discussion.FunctionTurn,
		discussion.FunctionVote,
		discussion.FunctionIntervention,
		discussion.FunctionReport,
	}
	return openrouter.NewGateway(client, registry.AssignFunctions(classes), registry.FreeModels()[0].ID)
}

func splitCSV(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
