package commands

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/teranos/aton/codec"
	"github.com/teranos/aton/display"
	"github.com/teranos/aton/engine"
	"github.com/teranos/aton/errors"
	"github.com/teranos/aton/logger"
	"github.com/teranos/aton/parser"
	"github.com/teranos/aton/types"
)

var queryFormat string

// QueryCmd represents the query command
var QueryCmd = &cobra.Command{
	Use:   "query [FILE] QUERY",
	Short: "Run a query against ATON text",
	Long: `Run a query against ATON text.

With two or more arguments the first is the input file and the rest form
the query; with one argument the query runs against stdin. Quote the whole
query to keep operators like > away from the shell.

Examples:
  aton query data.aton "users WHERE age > 30"
  aton query data.aton "users SELECT name, email ORDER BY name LIMIT 10"
  cat data.aton | aton query "users WHERE active = true"
  aton query data.aton "users" --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQueryCommand,
}

func init() {
	QueryCmd.Flags().StringVar(&queryFormat, "format", "table", "Output format: table, json, aton")
}

func runQueryCommand(cmd *cobra.Command, args []string) error {
	var fileArgs []string
	var queryArgs []string
	if len(args) >= 2 {
		fileArgs = args[:1]
		queryArgs = args[1:]
	} else {
		queryArgs = args
	}

	_, data, err := readInput(fileArgs)
	if err != nil {
		return err
	}

	// Queries are read leniently so row width drift never blocks a lookup
	ds, err := codec.NewDecoder(codec.DecoderOptions{}).WithLogger(logger.Logger).Decode(string(data))
	if err != nil {
		return err
	}

	verbosity, _ := cmd.Flags().GetCount("verbose")

	q, err := parser.Parse(queryText(queryArgs))
	if err != nil {
		return renderQueryError(err)
	}
	if logger.ShouldLogTrace(verbosity) {
		logger.Debugw("parsed query", "query", fmt.Sprintf("%+v", q))
	}

	records, err := engine.New(logger.Logger).Execute(ds, q)
	if err != nil {
		return renderQueryError(err)
	}
	if logger.ShouldLogAll(verbosity) {
		logger.Debugw("query results", "records", fmt.Sprintf("%+v", records))
	}

	switch queryFormat {
	case "table":
		out, err := display.RenderRecords(records)
		if err != nil {
			return err
		}
		return writeOutput("", out)
	case "json":
		return display.OutputJSON(records, false)
	case "aton":
		result := types.NewDataset()
		result.Set(q.Table, records)
		text, err := codec.NewEncoder(codec.DefaultEncoderOptions()).WithLogger(logger.Logger).Encode(result)
		if err != nil {
			return err
		}
		return writeOutput("", text)
	default:
		return errors.Newf("unknown output format: %s (use table, json, or aton)", queryFormat)
	}
}

// queryText joins query arguments back into one query string. A single
// argument passes through verbatim; several are rejoined with shell
// quoting so multi-word values survive the round trip.
func queryText(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return shellquote.Join(args...)
}

// renderQueryError swaps in the terminal rendering, with position context
// and suggestions, for errors the parser or engine annotated.
func renderQueryError(err error) error {
	var qe *parser.QueryError
	if errors.As(err, &qe) {
		return errors.New(qe.FormatError(parser.ErrorContextTerminal))
	}
	return err
}
