package codec

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/teranos/aton/compress"
	"github.com/teranos/aton/errors"
	"github.com/teranos/aton/types"
)

// EstimateTokens guesses how many LLM tokens text costs. The heuristic is
// characters/4 + punctuation/2 + words/3 with each term truncated, tuned
// for ratio comparisons between encodings of the same data rather than
// absolute counts.
func EstimateTokens(text string) int {
	var punct int
	for _, r := range text {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			punct++
		}
	}
	chars := utf8.RuneCountInString(text)
	words := len(strings.Fields(text))
	return chars/4 + punct/2 + words/3
}

// Stats reports the token economy of encoding a dataset: estimated tokens
// for the canonical JSON rendering against the ATON text.
type Stats struct {
	OriginalTokens int           // estimate for the compact JSON form
	EncodedTokens  int           // estimate for the ATON text
	Ratio          float64       // encoded over original, 0 when the original is empty
	SavingsPercent float64       // (1 - Ratio) * 100
	Mode           compress.Mode // concrete mode that ran, Adaptive resolved
	DictEntries    int
	Elapsed        time.Duration
}

// CompressionStats encodes ds with the given options and reports the
// estimated savings against its compact JSON rendering.
func CompressionStats(ds *types.Dataset, opts EncoderOptions) (*Stats, error) {
	if ds == nil {
		return nil, errors.NewEncodingError("cannot analyze nil dataset")
	}
	start := time.Now()
	text, err := NewEncoder(opts).Encode(ds)
	if err != nil {
		return nil, err
	}
	result := compress.New(normalizeMode(opts.Compression)).Compress(ds)

	stats := &Stats{
		OriginalTokens: EstimateTokens(string(ds.AppendJSON(nil))),
		EncodedTokens:  EstimateTokens(text),
		Mode:           result.Mode,
		DictEntries:    result.Dictionary.Len(),
		Elapsed:        time.Since(start),
	}
	if stats.OriginalTokens > 0 {
		stats.Ratio = float64(stats.EncodedTokens) / float64(stats.OriginalTokens)
		stats.SavingsPercent = (1 - stats.Ratio) * 100
	}
	return stats, nil
}
