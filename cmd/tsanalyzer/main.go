package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tsanalyzer/internal/analyzer"
	"tsanalyzer/internal/config"
	"tsanalyzer/internal/exercises"
	"tsanalyzer/internal/logging"
	"tsanalyzer/internal/runner"
)

// defaultConfigPath is read when --config is not given. A missing file is fine.
const defaultConfigPath = ".tsanalyzer.yaml"

// cli carries the flags and state of one command tree.
type cli struct {
	// Global flags
	verbose    bool
	configPath string

	// Run flags
	output      string
	dry         bool
	pretty      bool
	style       string
	concurrency int

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "tsanalyzer",
		Short: "Automated mentoring feedback for TypeScript exercise submissions",
		Long: `tsanalyzer reads a TypeScript exercise submission, inspects its syntax tree
and decides whether it can be approved, needs changes, or should go to a
human mentor. The decision and its comments are written as analysis.json.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
			logging.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", defaultConfigPath, "Configuration file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <exercise> <input-dir>",
		Short: "Analyze one submission",
		Long: `Analyzes the submission in <input-dir> with the analyzer for <exercise>.

Example:
  tsanalyzer analyze two-fer ./submissions/45 --dry --pretty`,
		Args: cobra.ExactArgs(2),
		RunE: c.runAnalyze,
	}
	analyzeCmd.Flags().StringVarP(&c.output, "output", "o", "", "Output file, relative to <input-dir> unless absolute")
	analyzeCmd.Flags().BoolVar(&c.dry, "dry", false, "Print the result without writing it")
	analyzeCmd.Flags().BoolVar(&c.pretty, "pretty", false, "Render the comments as formatted text")
	analyzeCmd.Flags().StringVar(&c.style, "style", "", "Markdown style for --pretty (dark, light, notty; default: detect)")

	batchCmd := &cobra.Command{
		Use:   "batch <exercise> <dir>...",
		Short: "Analyze many submissions concurrently",
		Args:  cobra.MinimumNArgs(2),
		RunE:  c.runBatch,
	}
	batchCmd.Flags().IntVarP(&c.concurrency, "concurrency", "j", 0, "Submissions analyzed at once (default from config)")
	batchCmd.Flags().BoolVar(&c.dry, "dry", false, "Analyze without writing results")
	batchCmd.Flags().StringVarP(&c.output, "output", "o", "", "Output file name inside each submission")

	exercisesCmd := &cobra.Command{
		Use:   "exercises",
		Short: "List the exercises with an analyzer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, slug := range exercises.List() {
				fmt.Fprintln(cmd.OutOrStdout(), slug)
			}
			return nil
		},
	}

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(exercisesCmd)
	return rootCmd
}

// setup loads configuration, applies flag overrides and initializes logging.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.File = c.output
	}
	if flags.Changed("dry") {
		cfg.Output.Dry = c.dry
	}
	if flags.Changed("concurrency") {
		cfg.Batch.Concurrency = c.concurrency
	}
	if c.verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logging.Initialize(cfg.Logging.Options()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if c.verbose {
		zc := zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		logger, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		c.logger = logger
	}

	c.cfg = cfg
	logging.Boot("config loaded from %s (dry=%t, concurrency=%d)", c.configPath, cfg.Output.Dry, cfg.Batch.Concurrency)
	return nil
}

func (c *cli) runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	a, err := exercises.Find(args[0])
	if err != nil {
		return err
	}
	dir := args[1]

	c.logger.Debug("Analyzing submission", zap.String("exercise", a.Exercise()), zap.String("dir", dir))

	res, err := runner.Run(ctx, a, dir, c.cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	c.logger.Info("Analysis finished", zap.String("run_id", res.RunID), zap.String("status", string(res.Output.Status)))

	if c.pretty {
		return renderPretty(cmd.OutOrStdout(), res.Output, c.style)
	}
	return nil
}

func (c *cli) runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	a, err := exercises.Find(args[0])
	if err != nil {
		return err
	}
	dirs := args[1:]

	c.logger.Debug("Starting batch", zap.String("exercise", a.Exercise()), zap.Int("submissions", len(dirs)))

	results, err := runner.Batch(ctx, a, dirs, c.cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	counts := make(map[analyzer.Status]int)
	var failed []string
	for _, res := range results {
		counts[res.Output.Status]++
		line := fmt.Sprintf("%s %s", badge(res.Output.Status), res.Dir)
		if res.Err != nil {
			failed = append(failed, res.Dir)
			line += fmt.Sprintf(" (write failed: %v)", res.Err)
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintf(w, "=> %d submissions: %s\n", len(results), summary(counts))

	if len(failed) > 0 {
		return errors.New("could not write results for: " + strings.Join(failed, ", "))
	}
	return nil
}

// summary lists the status counts in decision order.
func summary(counts map[analyzer.Status]int) string {
	order := []analyzer.Status{
		analyzer.ApproveAsOptimal,
		analyzer.ApproveWithComment,
		analyzer.DisapproveWithComment,
		analyzer.ReferToMentor,
	}
	parts := make([]string, 0, len(order))
	for _, s := range order {
		parts = append(parts, fmt.Sprintf("%s=%d", s, counts[s]))
	}
	return strings.Join(parts, " ")
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
