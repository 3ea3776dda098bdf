// Package config handles configuration management for pathpirate.
// It layers the embedded defaults, an optional user TOML file and
// PATHPIRATE_* environment variables into a single Config.
package config
