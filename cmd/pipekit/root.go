package main

import (
	"github.com/spf13/cobra"

	"github.com/asterion-dev/pipekit/config"
	"github.com/asterion-dev/pipekit/logger"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigFile string
	Verbose    bool
}

// NewRootCommand creates the pipekit root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pipekit",
		Short: "Run image-processing pipelines",
		Long: `pipekit executes YAML-defined step graphs over image frames:
seeding, dependency resolution, concurrent scheduling, and result export.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: search for pipekit.yml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewDescribeCommand(opts))
	cmd.AddCommand(NewProcessorsCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// loadConfig loads the toolkit configuration and initializes the global
// logger from it. The --verbose flag wins over the configured level.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg := &config.Config{}
	var loaderOpts []config.LoaderOption
	if opts.ConfigFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(opts.ConfigFile))
	}
	if err := config.LoadConfig("pipekit", cfg, loaderOpts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Init(cfg.Logging)
	logger.RegisterDefaults("cli", "runner", "device")
	return cfg, nil
}
