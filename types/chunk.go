package types

// ChunkMetadata describes where a chunk sits inside its stream.
type ChunkMetadata struct {
	StreamID       string  `json:"stream_id"`        // shared by every chunk of one stream
	Table          string  `json:"table"`            // source table name
	RecordsInChunk int     `json:"records_in_chunk"` // record count in this chunk
	StartIdx       int     `json:"start_idx"`        // index of the first record, inclusive
	EndIdx         int     `json:"end_idx"`          // index past the last record, exclusive
	TotalRecords   int     `json:"total_records"`    // record count of the whole table
	Progress       float64 `json:"progress"`         // (ChunkID+1) / TotalChunks, 1.0 on the last chunk
}

// Chunk is one self-describing piece of a streamed encoding. The first chunk
// carries the full header block; continuation chunks carry a table+ header
// and rows only.
type Chunk struct {
	ChunkID     int           `json:"chunk_id"`     // zero-based position in the stream
	TotalChunks int           `json:"total_chunks"` // chunk count for the table
	Data        string        `json:"data"`         // encoded text of this chunk
	IsFirst     bool          `json:"is_first"`
	IsLast      bool          `json:"is_last"`
	Metadata    ChunkMetadata `json:"metadata"`
}
