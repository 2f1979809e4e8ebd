// Package main implements wbrun, the CLI that drives epistemic pipelines
// against a durable whiteboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/whiteboard/internal/agent"
	"github.com/fyrsmithlabs/whiteboard/internal/config"
	"github.com/fyrsmithlabs/whiteboard/internal/crew"
	"github.com/fyrsmithlabs/whiteboard/internal/kernel"
	"github.com/fyrsmithlabs/whiteboard/internal/logging"
	"github.com/fyrsmithlabs/whiteboard/internal/telemetry"
	"github.com/fyrsmithlabs/whiteboard/internal/whiteboard"
)

var (
	configPath       string
	project          string
	topic            string
	notes            string
	problem          string
	workspace        string
	applyChanges     bool
	constitutionPath string

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "wbrun",
	Short:   "Run epistemic pipelines against a whiteboard",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/whiteboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&project, "project", "", "project identifier grouping this run's snapshots")
	rootCmd.PersistentFlags().StringVar(&constitutionPath, "constitution", "", "path to a constitution file seeded into each agent")

	kernelCmd.Flags().StringVar(&topic, "topic", "", "problem topic for the run")
	kernelCmd.Flags().StringVar(&notes, "notes", "", "extra context for the north-star phase")
	_ = kernelCmd.MarkFlagRequired("topic")
	rootCmd.AddCommand(kernelCmd)

	crewCmd.Flags().StringVar(&problem, "problem", "", "problem statement for the run")
	crewCmd.Flags().StringVar(&workspace, "workspace", "", "target workspace directory")
	crewCmd.Flags().BoolVar(&applyChanges, "apply", false, "write file changes to the workspace (default is dry run)")
	_ = crewCmd.MarkFlagRequired("problem")
	_ = crewCmd.MarkFlagRequired("workspace")
	rootCmd.AddCommand(crewCmd)
}

var kernelCmd = &cobra.Command{
	Use:   "kernel",
	Short: "Run the single-agent pipeline",
	Long: `Run one agent through the fixed phase sequence (upgrade, north_star,
architecture, dev_plan, reflection, checkpoint), writing one snapshot per
phase.

Examples:
  wbrun kernel --project demo --topic "an AI-native operating system"
  wbrun kernel --project demo --topic "..." --notes "focus on storage"`,
	RunE: runKernel,
}

var crewCmd = &cobra.Command{
	Use:   "crew",
	Short: "Run the four-role pipeline against a workspace",
	Long: `Run architect, planner, developer, and critic agents: north star,
architecture, and dev plan first, then implement and critique each plan
step. File changes are computed as a dry run unless --apply is set.

Examples:
  wbrun crew --project demo --problem "build a key-value store" --workspace ./out
  wbrun crew --project demo --problem "..." --workspace ./out --apply`,
	RunE: runCrew,
}

// setup loads config and builds the shared pieces of both commands.
func setup(ctx context.Context) (*config.Config, *zap.Logger, *telemetry.Telemetry, whiteboard.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, nil, err
	}
	if project == "" {
		return nil, nil, nil, nil, fmt.Errorf("--project is required")
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	tel, err := telemetry.New(ctx, cfg.Telemetry)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	store, err := whiteboard.NewFileStore(cfg.Whiteboard.Root, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return cfg, logger, tel, store, nil
}

func newClient(cfg *config.Config, logger *zap.Logger) (agent.Client, error) {
	return agent.NewResponsesClient(agent.ClientConfig{
		BaseURL: cfg.Service.BaseURL,
		APIKey:  cfg.Service.APIKey.Value(),
		Model:   cfg.Service.Model,
		Timeout: cfg.Service.Timeout.Duration(),
	}, logger)
}

func loadConstitution() (string, error) {
	if constitutionPath == "" {
		return "", nil
	}
	text, err := os.ReadFile(constitutionPath)
	if err != nil {
		return "", fmt.Errorf("failed to read constitution: %w", err)
	}
	return string(text), nil
}

func runKernel(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, tel, store, err := setup(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tel.Shutdown(context.Background()) }()
	defer func() { _ = logger.Sync() }()

	effort, err := agent.ParseLevel(cfg.Service.Effort)
	if err != nil {
		return err
	}
	verbosity, err := agent.ParseLevel(cfg.Service.Verbosity)
	if err != nil {
		return err
	}
	constitution, err := loadConstitution()
	if err != nil {
		return err
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	a, err := agent.New(ctx, agent.Config{
		Name:         "lola",
		Constitution: constitution,
		Effort:       effort,
		Verbosity:    verbosity,
	}, client, logger)
	if err != nil {
		return err
	}

	k, err := kernel.New(a, store, kernel.Config{Project: project, Topic: topic, Notes: notes}, logger)
	if err != nil {
		return err
	}
	k.OnProgress(func(p kernel.PhaseProgress) {
		fmt.Printf("[%3d%%] %-12s %s\n", p.Percentage, p.Phase, p.Status)
	})

	results, err := k.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	for _, phase := range kernel.AllPhases() {
		snap := results[phase]
		fmt.Printf("%-12s %s  %s\n", phase, snap.ID, snap.CreatedAt)
	}
	return nil
}

func runCrew(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, tel, store, err := setup(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tel.Shutdown(context.Background()) }()
	defer func() { _ = logger.Sync() }()

	constitution, err := loadConstitution()
	if err != nil {
		return err
	}

	roles, err := crew.NewRoles(ctx, func() (agent.Client, error) {
		return newClient(cfg, logger)
	}, constitution, logger)
	if err != nil {
		return err
	}

	o, err := crew.New(store, roles, project, logger)
	if err != nil {
		return err
	}

	result, err := o.Run(ctx, problem, workspace, !applyChanges)
	if err != nil {
		return err
	}

	fmt.Printf("run %s completed (%d steps)\n", result.RunID, len(result.FileChanges))
	for i := 1; i <= len(result.FileChanges); i++ {
		label := fmt.Sprintf("step_%d", i)
		fmt.Printf("%s:\n", label)
		for _, path := range result.FileChanges[label] {
			fmt.Printf("  %s\n", path)
		}
	}
	if !applyChanges {
		fmt.Println("dry run: no files were written (use --apply to write)")
	}
	return nil
}
