package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - User-facing output only: results, errors with hints, final status
//	1 (-v)      - + Progress, startup info, encode/decode summaries
//	2 (-vv)     - + Query parse details, timing, config loaded, compression stats
//	3 (-vvv)    - + Dictionary passes, per-chunk emission, schema inference steps
//	4 (-vvvv)   - + Full dataset dumps and chunk payloads

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Encoded text, decoded JSON, query results
	OutputErrors                           // Errors with hints and resolution steps
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress      // Progress indicators (e.g., "chunk 3/7 emitted")
	OutputStartup       // Startup banners, config summary
	OutputOperationInfo // High-level encode/decode/query summaries

	// Level 2 (-vv) - Detailed
	OutputQueries     // Query parsing and evaluation details
	OutputTiming      // Operation timing (e.g., "encode took 42ms")
	OutputConfig      // Config values loaded/applied
	OutputCompression // Compression level choice, token savings

	// Level 3 (-vvv) - Debug
	OutputDictionary // Dictionary candidate collection and assignment
	OutputSchema     // Schema inference and defaults sampling
	OutputChunks     // Per-chunk boundaries and metadata
	OutputInternalOp // Internal operation flow

	// Level 4 (-vvvv) - Full dump
	OutputDataDump // Full dataset and chunk payload contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	// Level 0 - Always shown
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	// Level 1 - Informational
	OutputProgress:      VerbosityInfo,
	OutputStartup:       VerbosityInfo,
	OutputOperationInfo: VerbosityInfo,

	// Level 2 - Detailed
	OutputQueries:     VerbosityDebug,
	OutputTiming:      VerbosityDebug,
	OutputConfig:      VerbosityDebug,
	OutputCompression: VerbosityDebug,

	// Level 3 - Debug
	OutputDictionary: VerbosityTrace,
	OutputSchema:     VerbosityTrace,
	OutputChunks:     VerbosityTrace,
	OutputInternalOp: VerbosityTrace,

	// Level 4 - Full dump
	OutputDataDump: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:       "results",
	OutputErrors:        "errors",
	OutputUserStatus:    "status",
	OutputProgress:      "progress",
	OutputStartup:       "startup",
	OutputOperationInfo: "operation-info",
	OutputQueries:       "queries",
	OutputTiming:        "timing",
	OutputConfig:        "config",
	OutputCompression:   "compression",
	OutputDictionary:    "dictionary",
	OutputSchema:        "schema",
	OutputChunks:        "chunks",
	OutputInternalOp:    "internal",
	OutputDataDump:      "data-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// EnabledCategories returns all output categories enabled at the given verbosity
func EnabledCategories(verbosity int) []OutputCategory {
	var enabled []OutputCategory
	for cat, minLevel := range categoryLevels {
		if verbosity >= minLevel {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "results and errors only"
	case VerbosityInfo:
		return "results, errors, progress, and status"
	case VerbosityDebug:
		return "above + queries, timing, compression stats"
	case VerbosityTrace:
		return "above + dictionary, schema, and chunk details"
	case VerbosityAll:
		return "full output including dataset dumps"
	default:
		if verbosity > VerbosityAll {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}
