// Package config loads toolkit configuration from YAML files and
// environment variables.
//
// It uses Viper to merge a pipekit.yml file with environment variables,
// optionally layered with a .env file loaded via godotenv.
//
// # Usage
//
//	var cfg config.Config
//	err := config.LoadConfig("pipekit", &cfg)
//
// Environment variables override file values using the PIPEKIT_ prefix
// with underscore-separated paths (e.g., PIPEKIT_RUNNER_MAX_CONCURRENT).
package config
