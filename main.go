//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// version is injected via ldflags at build time.
var version = "dev"

// cliOptions are flags that only make sense on the command line.
type cliOptions struct {
	configFile   string
	jsonOut      bool
	showFrontier bool
}

func main() {
	flagCfg := DefaultConfig()
	var opts cliOptions

	rootCmd := &cobra.Command{
		Use:     "crafting-solver",
		Short:   "Quality-optimal crafting rotation solver",
		Long:    "Solves the full progress/quality trade-off frontier of a craft and prints the rotation that maximizes quality at the required progress.",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cat, err := resolveConfig(cmd, flagCfg, opts)
			if err != nil {
				return err
			}
			return runSingle(cmd.Context(), cmd.OutOrStdout(), cat, cfg, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bindFlags(rootCmd, &flagCfg, &opts)

	sweepCmd := &cobra.Command{
		Use:   "sweep [condition...]",
		Short: "Solve the craft under several conditions in parallel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cat, err := resolveConfig(cmd, flagCfg, opts)
			if err != nil {
				return err
			}
			conds, err := sweepConditions(args)
			if err != nil {
				return err
			}
			return runSweep(cmd.Context(), cmd.OutOrStdout(), cat, cfg, conds, opts.jsonOut)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(sweepCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, ErrInfeasible) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// bindFlags registers the flags shared by every command. Flag values only
// override the config file when the user set them explicitly.
func bindFlags(cmd *cobra.Command, cfg *Config, opts *cliOptions) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	flags.StringVar(&cfg.CatalogFile, "catalog", "", "Path to a JSON action catalog override")

	flags.IntVar(&cfg.MinProgress, "min-progress", cfg.MinProgress, "Progress the craft must reach")
	flags.IntVar(&cfg.MaxCP, "max-cp", cfg.MaxCP, "Starting CP")
	flags.IntVar(&cfg.MaxDurability, "max-durability", cfg.MaxDurability, "Starting and maximum durability")
	flags.IntVar(&cfg.MaxQuality, "max-quality", cfg.MaxQuality, "Quality cap used in the report")
	flags.StringVar(&cfg.Condition, "condition", cfg.Condition, "Condition held for every turn")
	flags.StringVar(&cfg.Pruning, "pruning", cfg.Pruning, "Branch pruning: heuristic or none")

	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log search details and metrics")

	flags.BoolVar(&opts.jsonOut, "json", false, "Print results as JSON")
	flags.BoolVar(&opts.showFrontier, "frontier", false, "Also print every frontier entry")
}

// resolveConfig applies defaults < config file < explicitly set flags, then
// sets up logging and loads the catalog.
func resolveConfig(cmd *cobra.Command, flagCfg Config, opts cliOptions) (Config, *Catalog, error) {
	cfg := DefaultConfig()
	if opts.configFile != "" {
		loaded, err := LoadConfig(opts.configFile)
		if err != nil {
			return cfg, nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.CatalogFile = flagCfg.CatalogFile
	}
	if flags.Changed("min-progress") {
		cfg.MinProgress = flagCfg.MinProgress
	}
	if flags.Changed("max-cp") {
		cfg.MaxCP = flagCfg.MaxCP
	}
	if flags.Changed("max-durability") {
		cfg.MaxDurability = flagCfg.MaxDurability
	}
	if flags.Changed("max-quality") {
		cfg.MaxQuality = flagCfg.MaxQuality
	}
	if flags.Changed("condition") {
		cfg.Condition = flagCfg.Condition
	}
	if flags.Changed("pruning") {
		cfg.Pruning = flagCfg.Pruning
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagCfg.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = flagCfg.LogFormat
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagCfg.Verbose
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	level, _ := parseLogLevel(cfg.LogLevel)
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	initLogging(level, cfg.LogFormat, cmd.ErrOrStderr())
	if opts.jsonOut {
		color.NoColor = true
	}

	cat, err := LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, cat, nil
}

func runSingle(ctx context.Context, w io.Writer, cat *Catalog, cfg Config, opts cliOptions) error {
	runID := uuid.NewString()
	log := newLogger("cli").With("run_id", runID)
	log.Info("solve.start", "condition", cfg.Condition, "min_progress", cfg.MinProgress,
		"max_cp", cfg.MaxCP, "max_durability", cfg.MaxDurability, "pruning", cfg.Pruning)

	out, err := runCraft(ctx, cat, cfg)
	if err != nil && !errors.Is(err, ErrInfeasible) {
		return err
	}
	out.Result.RunID = runID
	log.Info("solve.done", "states", out.Stats.States, "cache_hits", out.Stats.CacheHits,
		"frontier", out.Frontier.Len(), "arena_peak", out.Stats.PeakArena, "time_ms", out.Result.TimeMs)

	if opts.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(out.Result); encErr != nil {
			return encErr
		}
	} else {
		fmt.Fprint(w, FormatSummary(cat, cfg, out.Result, out.Plan))
		if opts.showFrontier {
			fmt.Fprintln(w, FormatFrontier(out.Frontier))
		}
	}
	if cfg.Verbose {
		logMetrics(log)
	}
	return err
}

// sweepConditions resolves the sweep arguments; no arguments means every
// condition.
func sweepConditions(args []string) ([]Condition, error) {
	if len(args) == 0 {
		all := make([]Condition, conditionCount)
		for i := range all {
			all[i] = Condition(i)
		}
		return all, nil
	}
	conds := make([]Condition, 0, len(args))
	for _, a := range args {
		c, ok := parseCondition(a)
		if !ok {
			return nil, fmt.Errorf("unknown condition %q", a)
		}
		conds = append(conds, c)
	}
	return conds, nil
}

// runSweep solves one craft per condition. Each goroutine owns its Solver;
// only the read-only catalog is shared.
func runSweep(ctx context.Context, w io.Writer, cat *Catalog, cfg Config, conds []Condition, jsonOut bool) error {
	results := make([]RunResult, len(conds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, cond := range conds {
		g.Go(func() error {
			c := cfg
			c.Condition = cond.String()
			out, err := runCraft(ctx, cat, c)
			if err != nil && !errors.Is(err, ErrInfeasible) {
				return fmt.Errorf("%s: %w", cond, err)
			}
			results[i] = out.Result
			newLogger("sweep").Info("sweep.done", "condition", cond.String(),
				"max_quality", out.Result.MaxQuality, "states", out.Result.States)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	fmt.Fprint(w, formatSweep(results))
	return nil
}

func formatSweep(results []RunResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %8s %10s %9s %8s\n", "Condition", "Quality", "States", "Frontier", "Time")
	fmt.Fprintf(&b, "%-10s %8s %10s %9s %8s\n", "----------", "--------", "----------", "---------", "--------")
	for _, r := range results {
		quality := fmt.Sprintf("%d", r.MaxQuality)
		if !r.Feasible {
			quality = "-"
		}
		fmt.Fprintf(&b, "%-10s %8s %10d %9d %7.1fs\n",
			r.Condition, quality, r.States, r.FrontierSize, float64(r.TimeMs)/1000)
	}
	return b.String()
}

func logMetrics(log *slog.Logger) {
	values, err := gatherMetrics()
	if err != nil {
		log.Warn("metrics.gather", "error", err)
		return
	}
	for name, v := range values {
		log.Debug("metric", "name", name, "value", v)
	}
}
