// Package mcp exposes ATON encoding over the Model Context Protocol so
// agent runtimes can compress tabular context without shelling out.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/teranos/aton/codec"
	"github.com/teranos/aton/compress"
	"github.com/teranos/aton/engine"
	"github.com/teranos/aton/ingest"
	"github.com/teranos/aton/parser"
	"github.com/teranos/aton/version"
)

// MCPServer exposes the codec via Model Context Protocol
type MCPServer struct {
	server *server.MCPServer
	log    *zap.SugaredLogger
}

// NewMCPServer creates a new MCP server over stdio transport
func NewMCPServer(log *zap.SugaredLogger) *MCPServer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	s := &MCPServer{log: log}

	s.server = server.NewMCPServer(
		"aton",
		version.Version,
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// registerTools registers all MCP tools for ATON operations
func (s *MCPServer) registerTools() {
	encodeTool := mcp.NewTool("aton_encode",
		mcp.WithDescription("Encode JSON records as ATON, a token-efficient text format for tabular data"),
		mcp.WithString("json",
			mcp.Required(),
			mcp.Description("JSON object mapping table names to arrays of records, or a bare array of records"),
		),
		mcp.WithString("compression",
			mcp.Description("Compression mode: fast, balanced, ultra, or adaptive (default: balanced)"),
		),
		mcp.WithBoolean("optimize",
			mcp.Description("Elide repeated values through defaults inference (default: true)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional query to filter records before encoding, e.g. 'users WHERE age > 30 LIMIT 10'"),
		),
	)
	s.server.AddTool(encodeTool, s.handleEncode)

	decodeTool := mcp.NewTool("aton_decode",
		mcp.WithDescription("Decode ATON text back into JSON records"),
		mcp.WithString("aton",
			mcp.Required(),
			mcp.Description("ATON document text"),
		),
		mcp.WithBoolean("validate",
			mcp.Description("Reject records with nested object fields (default: true)"),
		),
	)
	s.server.AddTool(decodeTool, s.handleDecode)

	queryTool := mcp.NewTool("aton_query",
		mcp.WithDescription("Run a query against an ATON document and return matching records as JSON"),
		mcp.WithString("aton",
			mcp.Required(),
			mcp.Description("ATON document text"),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Query of the form 'table WHERE cond [AND|OR cond...] [ORDER BY field [DESC]] [LIMIT n]'"),
		),
	)
	s.server.AddTool(queryTool, s.handleQuery)

	statsTool := mcp.NewTool("aton_stats",
		mcp.WithDescription("Estimate the token savings of encoding JSON records as ATON"),
		mcp.WithString("json",
			mcp.Required(),
			mcp.Description("JSON object mapping table names to arrays of records, or a bare array of records"),
		),
		mcp.WithString("compression",
			mcp.Description("Compression mode to measure: fast, balanced, ultra, or adaptive (default: balanced)"),
		),
	)
	s.server.AddTool(statsTool, s.handleStats)
}

// handleEncode handles aton_encode tool calls
func (s *MCPServer) handleEncode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("json")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mode, err := compress.ParseMode(request.GetString("compression", string(compress.ModeBalanced)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ds, err := ingest.FromJSON([]byte(input))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse JSON: %v", err)), nil
	}

	encoder := codec.NewEncoder(codec.EncoderOptions{
		Compression: mode,
		Optimize:    request.GetBool("optimize", true),
		Validate:    true,
	}).WithLogger(s.log)

	var encoded string
	if query := request.GetString("query", ""); query != "" {
		encoded, err = encoder.EncodeWithQuery(ds, query)
	} else {
		encoded, err = encoder.Encode(ds)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode: %v", err)), nil
	}

	return mcp.NewToolResultText(encoded), nil
}

// handleDecode handles aton_decode tool calls
func (s *MCPServer) handleDecode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("aton")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	decoder := codec.NewDecoder(codec.DecoderOptions{
		Validate: request.GetBool("validate", true),
	}).WithLogger(s.log)

	ds, err := decoder.Decode(text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to decode: %v", err)), nil
	}

	out, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to render JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(out)), nil
}

// handleQuery handles aton_query tool calls
func (s *MCPServer) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("aton")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	queryText, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Decode leniently; queries should work on any document that parses
	ds, err := codec.NewDecoder(codec.DecoderOptions{}).WithLogger(s.log).Decode(text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to decode: %v", err)), nil
	}

	parsed, err := parser.Parse(queryText)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid query: %v", err)), nil
	}

	records, err := engine.New(s.log).Execute(ds, parsed)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to execute query: %v", err)), nil
	}

	if len(records) == 0 {
		return mcp.NewToolResultText("No records matched"), nil
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to render JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Found %d record(s):\n%s", len(records), out)), nil
}

// handleStats handles aton_stats tool calls
func (s *MCPServer) handleStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("json")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mode, err := compress.ParseMode(request.GetString("compression", string(compress.ModeBalanced)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ds, err := ingest.FromJSON([]byte(input))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse JSON: %v", err)), nil
	}

	stats, err := codec.CompressionStats(ds, codec.EncoderOptions{
		Compression: mode,
		Optimize:    true,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to compute stats: %v", err)), nil
	}

	result := fmt.Sprintf("Original:  ~%d tokens\n", stats.OriginalTokens)
	result += fmt.Sprintf("Encoded:   ~%d tokens\n", stats.EncodedTokens)
	result += fmt.Sprintf("Ratio:     %.2f\n", stats.Ratio)
	result += fmt.Sprintf("Savings:   %.1f%%\n", stats.SavingsPercent)
	result += fmt.Sprintf("Mode:      %s\n", stats.Mode)
	result += fmt.Sprintf("Dict size: %d entries", stats.DictEntries)

	return mcp.NewToolResultText(result), nil
}

// Serve starts the MCP server using stdio transport
func (s *MCPServer) Serve() error {
	s.log.Infow("mcp server listening on stdio")
	return server.ServeStdio(s.server)
}
