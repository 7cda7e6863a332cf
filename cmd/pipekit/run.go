package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/asterion-dev/pipekit/config"
	"github.com/asterion-dev/pipekit/device"
	"github.com/asterion-dev/pipekit/exttool"
	"github.com/asterion-dev/pipekit/graph"
	"github.com/asterion-dev/pipekit/kernels"
	"github.com/asterion-dev/pipekit/logger"
	"github.com/asterion-dev/pipekit/observability"
	"github.com/asterion-dev/pipekit/processor"
	"github.com/asterion-dev/pipekit/runner"
	"github.com/asterion-dev/pipekit/util"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Seeds         []string
	Params        []string
	Tools         []string
	Device        string
	OutDir        string
	MaxConcurrent int
	MaxIterations int
	OTelEndpoint  string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <pipeline.yml>",
		Short: "Execute a pipeline over image seeds",
		Long: `Execute a YAML pipeline definition.

Seed inputs are named image files; "name=a.png,b.png" seeds a frame
collection. Results land in the output directory: tables as CSV, frames
as PNG.

Example:
  pipekit run detect.yml --seed input_frame=m31.png --param sigma=2.5 --out ./results`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVar(&opts.Seeds, "seed", nil, "seed input as name=image.png (repeatable; comma-separate paths for a collection)")
	cmd.Flags().StringArrayVar(&opts.Params, "param", nil, "pipeline parameter as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Tools, "tool", nil, "external tool processor as id=binary[,arg...] (repeatable)")
	cmd.Flags().StringVar(&opts.Device, "device", "cpu", "compute device context")
	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", "", "directory for result export")
	cmd.Flags().IntVar(&opts.MaxConcurrent, "max-concurrent", 0, "concurrent instance bound (overrides config)")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", 0, "scheduling iteration ceiling (overrides config)")
	cmd.Flags().StringVar(&opts.OTelEndpoint, "otel-endpoint", "", "OTLP HTTP endpoint for traces and metrics")

	return cmd
}

func runPipeline(cmd *cobra.Command, opts *RunOptions, path string) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	log := logger.Get("cli")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := graph.ParseFile(path)
	if err != nil {
		return err
	}

	seeds, err := loadSeeds(ctx, opts.Seeds)
	if err != nil {
		return err
	}
	params, err := parseParams(opts.Params)
	if err != nil {
		return err
	}

	dev, err := device.Acquire(ctx, opts.Device)
	if err != nil {
		return err
	}

	reg := processor.NewRegistry()
	kernels.Register(reg)
	if err := registerTools(reg, opts.Tools, cfg.Tools); err != nil {
		return err
	}

	runCfg := runner.Config{
		MaxConcurrent: util.Coalesce(opts.MaxConcurrent, cfg.Runner.MaxConcurrent),
		MaxIterations: util.Coalesce(opts.MaxIterations, cfg.Runner.MaxIterations),
	}
	if opts.OTelEndpoint != "" {
		metrics, shutdown, err := initObservability(ctx, opts.OTelEndpoint)
		if err != nil {
			return err
		}
		defer shutdown()
		runCfg.Metrics = metrics
	}

	log.Info("running pipeline", map[string]interface{}{
		"pipeline": p.Name,
		"steps":    len(p.Steps),
		"seeds":    util.Keys(seeds),
		"device":   dev.Name(),
	})

	res, err := runner.New(runCfg).Execute(ctx, p, seeds, params, dev, reg)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), res)
	if opts.OutDir != "" {
		if err := exportResults(res, opts.OutDir); err != nil {
			return err
		}
		log.Info("results exported", map[string]interface{}{"dir": opts.OutDir})
	}
	if len(res.Failed()) > 0 {
		return fmt.Errorf("%d instance(s) failed", len(res.Failed()))
	}
	return nil
}

// registerTools adds external-tool processors declared as
// "id=binary[,arg...]"; unset timeouts fall back to the configured tool
// defaults.
func registerTools(reg *processor.Registry, specs []string, defaults config.ToolsConfig) error {
	for _, spec := range specs {
		id, rest, ok := strings.Cut(spec, "=")
		if !ok || id == "" || rest == "" {
			return fmt.Errorf("invalid --tool %q: want id=binary[,arg...]", spec)
		}
		parts := strings.Split(rest, ",")
		reg.Register(exttool.NewProcessor(id, exttool.Tool{
			Binary:      parts[0],
			Args:        parts[1:],
			Timeout:     defaults.Timeout,
			GracePeriod: defaults.GracePeriod,
		}))
	}
	return nil
}

// initObservability brings up OTLP trace and metric export and returns the
// runner metrics plus a shutdown function.
func initObservability(ctx context.Context, endpoint string) (*observability.Metrics, func(), error) {
	tracerCfg := observability.DefaultTracerConfig("pipekit")
	tracerCfg.Endpoint = endpoint
	tp, err := observability.InitTracer(ctx, tracerCfg)
	if err != nil {
		return nil, nil, err
	}
	meterCfg := observability.DefaultMeterConfig("pipekit")
	meterCfg.Endpoint = endpoint
	mp, err := observability.InitMeter(ctx, meterCfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}
	metrics, err := observability.NewMetrics(observability.Meter("pipekit"))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}
	shutdown := func() {
		sctx := context.Background()
		_ = mp.Shutdown(sctx)
		_ = tp.Shutdown(sctx)
	}
	return metrics, shutdown, nil
}
