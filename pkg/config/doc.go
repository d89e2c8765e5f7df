// Package config handles configuration management for provisio.
// It layers the embedded defaults, system and user TOML files, an explicit
// file and PROVISIO_* environment variables with koanf.
package config
