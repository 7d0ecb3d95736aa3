package config

import "github.com/spf13/viper"

// File permissions for created config directories and files.
const (
	DefaultDirPermissions  = 0750
	DefaultFilePermissions = 0644
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Encoder defaults match codec.DefaultEncoderOptions
	v.SetDefault("encoder.compression", "balanced")
	v.SetDefault("encoder.optimize", true)
	v.SetDefault("encoder.queryable", false)
	v.SetDefault("encoder.validate", true)

	// Streaming defaults
	v.SetDefault("stream.chunk_size", 100)

	// Log defaults
	v.SetDefault("log.theme", "")
	v.SetDefault("log.json", false)
}

// Default returns a Config populated with the default values only.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, _ := LoadWithViper(v)
	return cfg
}
