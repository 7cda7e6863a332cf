package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default level 'info', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("expected default format 'console', got %q", cfg.Logging.Format)
	}
	if cfg.Runner.MaxConcurrent != 0 || cfg.Runner.MaxIterations != 0 {
		t.Errorf("expected runner bounds left to the runner defaults, got %+v", cfg.Runner)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "noisy" }, "config.logging"},
		{"negative concurrency", func(c *Config) { c.Runner.MaxConcurrent = -1 }, "max_concurrent"},
		{"negative iterations", func(c *Config) { c.Runner.MaxIterations = -2 }, "max_iterations"},
		{"negative timeout", func(c *Config) { c.Tools.Timeout = -time.Second }, "timeout"},
		{"negative grace period", func(c *Config) { c.Tools.GracePeriod = -time.Second }, "grace_period"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "pipekit.yml")

	yamlContent := `
logging:
  level: warn
  format: json
runner:
  max_concurrent: 4
  max_iterations: 50
tools:
  timeout: 30s
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg Config
	err := LoadConfig("pipekit", &cfg,
		WithConfigFile(configPath),
		WithEnvFile(filepath.Join(dir, ".env")))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level 'warn', got %q", cfg.Logging.Level)
	}
	if cfg.Runner.MaxConcurrent != 4 {
		t.Errorf("expected max_concurrent 4, got %d", cfg.Runner.MaxConcurrent)
	}
	if cfg.Runner.MaxIterations != 50 {
		t.Errorf("expected max_iterations 50, got %d", cfg.Runner.MaxIterations)
	}
	if cfg.Tools.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %s", cfg.Tools.Timeout)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PIPEKIT_RUNNER_MAX_CONCURRENT", "3")
	t.Setenv("PIPEKIT_LOGGING_LEVEL", "debug")

	dir := t.TempDir()
	var cfg Config
	err := LoadConfig("pipekit", &cfg,
		WithConfigFile(filepath.Join(dir, "pipekit.yml")),
		WithEnvFile(filepath.Join(dir, ".env")))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Runner.MaxConcurrent != 3 {
		t.Errorf("expected max_concurrent 3 from environment, got %d", cfg.Runner.MaxConcurrent)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level 'debug' from environment, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	dir := t.TempDir()
	var cfg Config
	// With no config file found, LoadConfig should still succeed (just empty config)
	err := LoadConfig("pipekit", &cfg,
		WithConfigFile(filepath.Join(dir, "pipekit.yml")),
		WithEnvFile(filepath.Join(dir, ".env")))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/pipekit.yml": true,
		"../.env":              true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("pipekit", LoaderConfig{})
	if files.ConfigFile != "./config/pipekit.yml" {
		t.Errorf("expected config file at ./config/pipekit.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "../.env" {
		t.Errorf("expected env file at ../.env, got %q", files.EnvFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("RUNNER_MAX_CONCURRENT")
	found := false
	for _, v := range variants {
		if v == "runner.max_concurrent" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected variants to include runner.max_concurrent, got %v", variants)
	}

	single := envKeyVariants("DEBUG")
	if len(single) != 1 || single[0] != "debug" {
		t.Errorf("expected [debug], got %v", single)
	}
}

func TestWithFileSystemOption(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
}

func TestWithConfigFileOption(t *testing.T) {
	var lc LoaderConfig
	WithConfigFile("/path/to/pipekit.yml")(&lc)
	if lc.ConfigFile != "/path/to/pipekit.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
}

func TestWithEnvFileOption(t *testing.T) {
	var lc LoaderConfig
	WithEnvFile("/path/to/.env")(&lc)
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}
