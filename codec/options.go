package codec

import "github.com/teranos/aton/compress"

// defaultChunkSize is the streaming record count per chunk when the caller
// does not set one.
const defaultChunkSize = 100

// EncoderOptions configure an Encoder. Zero values are honored as given
// except Compression, where the empty string selects Balanced; start from
// DefaultEncoderOptions for the documented defaults.
type EncoderOptions struct {
	Optimize    bool          // infer per-table defaults and elide matching row values
	Compression compress.Mode // dictionary mode; empty selects Balanced
	Queryable   bool          // emit @queryable[table] markers
	Validate    bool          // reject empty table and field names before encoding
}

// DefaultEncoderOptions returns the standard encoder configuration:
// optimization and validation on, Balanced compression, no queryable
// markers.
func DefaultEncoderOptions() EncoderOptions {
	return EncoderOptions{
		Optimize:    true,
		Compression: compress.ModeBalanced,
		Validate:    true,
	}
}

// DecoderOptions configure a Decoder.
type DecoderOptions struct {
	Validate bool // reject object-valued record fields after decoding
}

// DefaultDecoderOptions returns the standard decoder configuration with
// validation on.
func DefaultDecoderOptions() DecoderOptions {
	return DecoderOptions{Validate: true}
}

// StreamOptions configure a StreamEncoder.
type StreamOptions struct {
	ChunkSize   int           // records per chunk; values < 1 select 100
	Compression compress.Mode // dictionary mode; empty selects Balanced
}

// DefaultStreamOptions returns the standard streaming configuration.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		ChunkSize:   defaultChunkSize,
		Compression: compress.ModeBalanced,
	}
}

// normalizeMode fills the Balanced default for an unset compression mode.
func normalizeMode(m compress.Mode) compress.Mode {
	if m == "" {
		return compress.ModeBalanced
	}
	return m
}
