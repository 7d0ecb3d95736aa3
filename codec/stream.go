package codec

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/aton/compress"
	"github.com/teranos/aton/errors"
	"github.com/teranos/aton/internal/util"
	"github.com/teranos/aton/logger"
	"github.com/teranos/aton/types"
)

// StreamEncoder splits a single table into bounded chunks whose
// concatenated text decodes like one full encoding. Compression and
// schema/defaults inference run once over the whole table before the
// first chunk, so the chunk 0 header block covers every later chunk.
type StreamEncoder struct {
	opts StreamOptions
	log  *zap.SugaredLogger
}

// NewStreamEncoder returns a stream encoder with the given options.
func NewStreamEncoder(opts StreamOptions) *StreamEncoder {
	return &StreamEncoder{opts: opts, log: zap.NewNop().Sugar()}
}

// WithLogger attaches a logger and returns the encoder for chaining.
func (s *StreamEncoder) WithLogger(log *zap.SugaredLogger) *StreamEncoder {
	if log != nil {
		s.log = log
	}
	return s
}

// Stream prepares a chunk cursor over the named table. An empty table
// name is accepted only when the dataset holds exactly one table. All
// failures surface here; once a stream exists, pulling chunks cannot
// fail and an abandoned stream needs no cleanup.
func (s *StreamEncoder) Stream(ds *types.Dataset, table string) (*ChunkStream, error) {
	if ds == nil {
		return nil, errors.NewEncodingError("cannot stream a nil dataset")
	}
	if table == "" {
		if ds.Len() != 1 {
			return nil, errors.NewEncodingError("streaming needs a table name when the dataset has %d tables", ds.Len())
		}
		table = ds.Tables()[0]
	}
	records, ok := ds.Get(table)
	if !ok {
		return nil, errors.NewEncodingError("unknown table %q", table)
	}

	size := s.opts.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}

	var dict *types.Dictionary
	if mode := normalizeMode(s.opts.Compression); mode != compress.ModeFast {
		result := compress.New(mode).Compress(types.NewDataset().Set(table, records))
		rewritten, _ := result.Dataset.Get(table)
		records = rewritten
		dict = result.Dictionary
	}
	schema := inferSchema(records)
	defaults := inferDefaults(records, schema)

	stream := &ChunkStream{
		id:       uuid.NewString(),
		table:    table,
		records:  records,
		schema:   schema,
		defaults: defaults,
		dict:     dict,
		size:     size,
		total:    util.CeilDiv(len(records), size),
	}
	s.log.Debugw("stream opened",
		logger.FieldStreamID, stream.id,
		logger.FieldTable, table,
		logger.FieldRecords, len(records),
		logger.FieldChunks, stream.total,
	)
	return stream, nil
}

// ChunkStream is a pull cursor over the chunks of one streamed table.
// Chunks are rendered lazily, one per Next call:
//
//	stream, err := enc.Stream(ds, "events")
//	...
//	for stream.Next() {
//		send(stream.Chunk())
//	}
type ChunkStream struct {
	id       string
	table    string
	records  []*types.Record
	schema   types.Schema
	defaults map[string]types.Value
	dict     *types.Dictionary
	size     int
	total    int
	next     int
	current  types.Chunk
}

// StreamID returns the identifier shared by every chunk of this stream.
func (c *ChunkStream) StreamID() string { return c.id }

// TotalChunks returns how many chunks the stream will yield.
func (c *ChunkStream) TotalChunks() int { return c.total }

// Next renders the next chunk, reporting false once the stream is
// exhausted.
func (c *ChunkStream) Next() bool {
	if c.next >= c.total {
		return false
	}
	c.current = c.render(c.next)
	c.next++
	return true
}

// Chunk returns the chunk rendered by the last successful Next.
func (c *ChunkStream) Chunk() types.Chunk {
	return c.current
}

// render produces chunk id. Chunk 0 carries the full header block over
// its slice; later chunks open with a newline so that concatenating
// chunk texts in order yields one well-formed document.
func (c *ChunkStream) render(id int) types.Chunk {
	start := id * c.size
	end := start + c.size
	if end > len(c.records) {
		end = len(c.records)
	}
	slice := c.records[start:end]

	var lines []string
	if id == 0 {
		if c.dict != nil && c.dict.Len() > 0 {
			lines = appendDictHeader(lines, c.dict)
			lines = append(lines, "")
		}
		lines = encodeTable(lines, c.table, slice, c.schema, c.defaults, false)
	} else {
		lines = append(lines, "", c.table+"+("+strconv.Itoa(len(slice))+"):")
		for _, rec := range slice {
			lines = append(lines, "  "+renderRow(rec, c.schema, c.defaults))
		}
	}

	return types.Chunk{
		ChunkID:     id,
		TotalChunks: c.total,
		Data:        strings.Join(lines, "\n"),
		IsFirst:     id == 0,
		IsLast:      id == c.total-1,
		Metadata: types.ChunkMetadata{
			StreamID:       c.id,
			Table:          c.table,
			RecordsInChunk: len(slice),
			StartIdx:       start,
			EndIdx:         end,
			TotalRecords:   len(c.records),
			Progress:       float64(id+1) / float64(c.total),
		},
	}
}
