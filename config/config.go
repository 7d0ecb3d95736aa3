// Package config holds the aton CLI configuration: encoder and streaming
// defaults plus logging presentation. Configuration is layered from
// defaults, TOML files (user then project), and ATON_* environment
// variables; the codec packages themselves never read it.
package config

import (
	"github.com/teranos/aton/codec"
	"github.com/teranos/aton/compress"
	"github.com/teranos/aton/errors"
)

// Config represents the aton tool configuration
type Config struct {
	Encoder EncoderConfig `mapstructure:"encoder" toml:"encoder"`
	Stream  StreamConfig  `mapstructure:"stream" toml:"stream"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

// EncoderConfig carries the default encoder options applied by the CLI
type EncoderConfig struct {
	Compression string `mapstructure:"compression" toml:"compression"` // fast, balanced, ultra, adaptive
	Optimize    bool   `mapstructure:"optimize" toml:"optimize"`       // infer defaults and elide matching values
	Queryable   bool   `mapstructure:"queryable" toml:"queryable"`     // emit @queryable markers
	Validate    bool   `mapstructure:"validate" toml:"validate"`       // validate datasets before encoding
}

// StreamConfig carries streaming encoder defaults
type StreamConfig struct {
	ChunkSize int `mapstructure:"chunk_size" toml:"chunk_size"` // records per chunk (default: 100)
}

// LogConfig configures CLI log output
type LogConfig struct {
	Theme string `mapstructure:"theme" toml:"theme"` // color theme: gruvbox, everforest
	JSON  bool   `mapstructure:"json" toml:"json"`   // structured JSON logs instead of console output
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := compress.ParseMode(c.Encoder.Compression); err != nil {
		return errors.Wrap(err, "encoder.compression")
	}

	// Chunk size: 0 = use default, negative = invalid
	if c.Stream.ChunkSize < 0 {
		return errors.Newf("stream.chunk_size must be >= 0, got %d", c.Stream.ChunkSize)
	}
	return nil
}

// EncoderOptions maps the configuration onto codec encoder options.
func (c *Config) EncoderOptions() (codec.EncoderOptions, error) {
	mode, err := compress.ParseMode(c.Encoder.Compression)
	if err != nil {
		return codec.EncoderOptions{}, errors.Wrap(err, "encoder.compression")
	}
	return codec.EncoderOptions{
		Optimize:    c.Encoder.Optimize,
		Compression: mode,
		Queryable:   c.Encoder.Queryable,
		Validate:    c.Encoder.Validate,
	}, nil
}

// StreamOptions maps the configuration onto codec streaming options.
func (c *Config) StreamOptions() (codec.StreamOptions, error) {
	mode, err := compress.ParseMode(c.Encoder.Compression)
	if err != nil {
		return codec.StreamOptions{}, errors.Wrap(err, "encoder.compression")
	}
	return codec.StreamOptions{
		ChunkSize:   c.Stream.ChunkSize,
		Compression: mode,
	}, nil
}
