package config

import (
	"fmt"
	"time"

	"github.com/asterion-dev/pipekit/logger"
)

// Config is the toolkit configuration consumed by the pipekit CLI.
// Zero values for runner and tool settings defer to the built-in
// defaults of their packages.
type Config struct {
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
	Runner  RunnerConfig  `yaml:"runner" mapstructure:"runner"`
	Tools   ToolsConfig   `yaml:"tools" mapstructure:"tools"`
}

// RunnerConfig carries scheduling bounds for pipeline execution.
type RunnerConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	MaxIterations int `yaml:"max_iterations" mapstructure:"max_iterations"`
}

// ToolsConfig carries defaults for external tool processors.
type ToolsConfig struct {
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	GracePeriod time.Duration `yaml:"grace_period" mapstructure:"grace_period"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	c.Logging.ApplyDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if c.Runner.MaxConcurrent < 0 {
		return fmt.Errorf("config.runner.max_concurrent must not be negative (got: %d)", c.Runner.MaxConcurrent)
	}
	if c.Runner.MaxIterations < 0 {
		return fmt.Errorf("config.runner.max_iterations must not be negative (got: %d)", c.Runner.MaxIterations)
	}
	if c.Tools.Timeout < 0 {
		return fmt.Errorf("config.tools.timeout must not be negative (got: %s)", c.Tools.Timeout)
	}
	if c.Tools.GracePeriod < 0 {
		return fmt.Errorf("config.tools.grace_period must not be negative (got: %s)", c.Tools.GracePeriod)
	}
	return nil
}
