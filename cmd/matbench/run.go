// Copyright 2026 The matbench Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/matbench/bench"
	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/profiling"
	"github.com/ajroetker/matbench/report"
)

// configEnv names a config file used when --config is not given.
const configEnv = "MATBENCH_CONFIG"

// profileTop is the number of functions logged from a CPU profile.
const profileTop = 5

type runOptions struct {
	*rootOptions

	configPath      string
	sizes           []int
	threads         []int
	reps            int
	seed            uint64
	min, max        int
	strategies      []string
	loop            string
	batch           int
	lockThreads     bool
	displayLimit    int
	continueOnError bool

	jsonPath   string
	cpuProfile string
	pause      bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: root}
	def := bench.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark",
		Long: `Run multiplies two random square matrices per size with every strategy
and thread count, and prints the average time and speedup of each.

Settings come from the defaults, then the YAML file given by --config (or
$` + configEnv + `), then $` + bench.SeedEnv + `, then the flags set on the command line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (default $"+configEnv+")")
	f.IntSliceVar(&opts.sizes, "sizes", def.Sizes, "Square matrix sizes, run in order")
	f.IntSliceVarP(&opts.threads, "threads", "t", def.Threads, "Thread counts, ascending; the first is the speedup baseline")
	f.IntVarP(&opts.reps, "reps", "r", def.Repetitions, "Timed repetitions per measurement")
	f.Uint64Var(&opts.seed, "seed", def.Seed, "Random seed, 0 seeds from the clock")
	f.IntVar(&opts.min, "min", def.Min, "Smallest random value (inclusive)")
	f.IntVar(&opts.max, "max", def.Max, "Largest random value (exclusive)")
	f.StringSliceVarP(&opts.strategies, "strategies", "s",
		lo.Map(def.Strategies, func(s matmul.Strategy, _ int) string { return s.String() }),
		"Strategies to run: parallel, thread")
	f.StringVar(&opts.loop, "loop", string(def.Loop), "Parallel-for behind the parallel strategy: pool or group")
	f.IntVar(&opts.batch, "batch", def.Batch, "Rows claimed per grab by the parallel loop")
	f.BoolVar(&opts.lockThreads, "lock-threads", def.LockThreads, "Pin each manual thread to its own OS thread")
	f.IntVar(&opts.displayLimit, "display-limit", def.DisplayLimit, "Print the matrices of sizes up to this one")
	f.BoolVar(&opts.continueOnError, "continue-on-error", def.ContinueOnError, "Keep going after a failed measurement")
	f.StringVar(&opts.jsonPath, "json", "", "Also write a JSON report to this file")
	f.StringVar(&opts.cpuProfile, "cpuprofile", "", "Write a CPU profile of the run to this file")
	f.BoolVar(&opts.pause, "pause", false, "Wait for enter before exiting")
	return cmd
}

// config layers the config file, the environment and the changed flags over
// the defaults, and validates the result.
func (o *runOptions) config(flags *pflag.FlagSet) (bench.Config, error) {
	cfg := bench.DefaultConfig()

	path := o.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path != "" {
		var err error
		if cfg, err = bench.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	if flags.Changed("sizes") {
		cfg.Sizes = o.sizes
	}
	if flags.Changed("threads") {
		cfg.Threads = o.threads
	}
	if flags.Changed("reps") {
		cfg.Repetitions = o.reps
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("min") {
		cfg.Min = o.min
	}
	if flags.Changed("max") {
		cfg.Max = o.max
	}
	if flags.Changed("strategies") {
		strategies, err := parseStrategies(o.strategies)
		if err != nil {
			return cfg, err
		}
		cfg.Strategies = strategies
	}
	if flags.Changed("loop") {
		cfg.Loop = bench.Loop(o.loop)
	}
	if flags.Changed("batch") {
		cfg.Batch = o.batch
	}
	if flags.Changed("lock-threads") {
		cfg.LockThreads = o.lockThreads
	}
	if flags.Changed("display-limit") {
		cfg.DisplayLimit = o.displayLimit
	}
	if flags.Changed("continue-on-error") {
		cfg.ContinueOnError = o.continueOnError
	}
	return cfg, cfg.Validate()
}

func parseStrategies(names []string) ([]matmul.Strategy, error) {
	strategies := make([]matmul.Strategy, 0, len(names))
	for _, name := range names {
		s, err := matmul.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}

func (o *runOptions) run(cmd *cobra.Command) (err error) {
	logger, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg, err := o.config(cmd.Flags())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hw := bench.DetectHardware()
	logger.Info("hardware",
		"os", hw.OS, "arch", hw.Arch, "cpus", hw.NumCPU, "gomaxprocs", hw.GOMAXPROCS, "features", hw.Features)

	sinks := report.Multi{report.NewTable(cmd.OutOrStdout())}
	var jsonSink *report.JSON
	if o.jsonPath != "" {
		f, createErr := os.Create(o.jsonPath)
		if createErr != nil {
			return fmt.Errorf("creating JSON report: %w", createErr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		jsonSink = report.NewJSON(f, hw, cfg)
		sinks = append(sinks, jsonSink)
	}

	executors, closeExecutors := bench.NewExecutors(cfg)
	defer closeExecutors()

	h, err := bench.New(cfg, executors, sinks, logger)
	if err != nil {
		return err
	}
	if jsonSink != nil {
		jsonSink.SetRunID(h.RunID())
	}

	var stopProfile func() error
	if o.cpuProfile != "" {
		if stopProfile, err = profiling.Start(o.cpuProfile); err != nil {
			return err
		}
	}

	_, runErr := h.Run(ctx)

	var profileErr error
	if stopProfile != nil {
		if profileErr = stopProfile(); profileErr == nil {
			logProfile(logger, o.cpuProfile)
		}
	}

	flushErr := sinks.Flush()

	if o.pause {
		waitForEnter(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return errors.Join(runErr, profileErr, flushErr)
}

// logProfile logs the most expensive functions of the profile at path.
func logProfile(logger *slog.Logger, path string) {
	summary, err := profiling.Summarize(path, profileTop)
	if err != nil {
		logger.Warn("could not summarize CPU profile", "path", path, "err", err)
		return
	}
	logger.Info("cpu profile", "path", path, "duration", summary.Duration, "samples", summary.Samples)
	for _, fn := range summary.Top {
		share := 0.0
		if summary.Total > 0 {
			share = 100 * float64(fn.Flat) / float64(summary.Total)
		}
		logger.Info("cpu profile function",
			"func", fn.Name, "flat", fn.Flat, "cum", fn.Cum, "unit", summary.Unit,
			"flat_pct", fmt.Sprintf("%.1f", share))
	}
}

// waitForEnter blocks until the user presses enter, or the input ends.
func waitForEnter(in io.Reader, out io.Writer) {
	prompt := promptui.Prompt{
		Label:  "Press enter to exit",
		Stdin:  io.NopCloser(in),
		Stdout: nopWriteCloser{out},
	}
	_, _ = prompt.Run()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
