package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/aton/errors"
)

// ErrorContext indicates the environment where query errors will be displayed
type ErrorContext string

const (
	// ErrorContextTerminal indicates errors will be displayed in terminal with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain indicates errors will be displayed without ANSI codes (logs, MCP, etc)
	ErrorContextPlain ErrorContext = "plain"
)

// ErrorSeverity indicates the severity level of a query error
type ErrorSeverity string

const (
	SeverityError   ErrorSeverity = "error"   // Failures that prevent parsing or execution
	SeverityWarning ErrorSeverity = "warning" // Best-effort warnings
	SeverityHint    ErrorSeverity = "hint"    // Suggestions for improvement
)

// ErrorKind categorizes query errors for programmatic handling
type ErrorKind string

const (
	ErrorKindLex     ErrorKind = "lex"     // No token pattern matched
	ErrorKindSyntax  ErrorKind = "syntax"  // Token stream violates the grammar
	ErrorKindExec    ErrorKind = "exec"    // Query is well-formed but cannot run
	ErrorKindUnknown ErrorKind = "unknown" // Uncategorized
)

// QueryError represents a structured query error with position metadata.
// It wraps errors.ErrQuery, so errors.Is(err, errors.ErrQuery) holds for
// every error this package produces.
type QueryError struct {
	Err         error         // Underlying error (carries the ErrQuery sentinel)
	Kind        ErrorKind     // Error category
	Severity    ErrorSeverity // Error severity
	Message     string        // Human-readable message
	Offset      int           // Byte offset into the query text (-1 if unknown)
	Position    int           // Token index where the error occurred (-1 if unknown)
	TokenCount  int           // Total tokens in the query
	Token       *Token        // Token that caused the error (optional)
	Expected    string        // What the parser wanted (optional)
	Actual      string        // What the parser found (optional)
	Suggestions []string      // Possible fixes
	Timestamp   time.Time     // When the error occurred
}

// Error implements the error interface with the plain format; the terminal
// rendering is opt-in via FormatError so wrapped errors stay readable in
// logs and test output.
func (e *QueryError) Error() string {
	return e.formatPlainError()
}

// FormatError generates a context-appropriate error message
func (e *QueryError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		return e.formatPlainError()
	}
	return e.formatTerminalError()
}

// formatPlainError creates a concise single-line error for logs and wrapping
func (e *QueryError) formatPlainError() string {
	msg := e.Message
	if e.Expected != "" {
		msg += fmt.Sprintf(": expected %s, got %s", e.Expected, e.actualOrEnd())
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" (offset %d)", e.Offset)
	} else if e.Position >= 0 && e.TokenCount > 0 {
		msg += fmt.Sprintf(" (at token %d/%d)", e.Position, e.TokenCount)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Suggestions: %s", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// formatTerminalError creates a rich colored error for terminal display
func (e *QueryError) formatTerminalError() string {
	var baseMsg string
	switch e.Severity {
	case SeverityError:
		baseMsg = pterm.Red(e.Message)
	case SeverityWarning:
		baseMsg = pterm.Yellow(e.Message)
	case SeverityHint:
		baseMsg = pterm.LightCyan(e.Message)
	default:
		baseMsg = e.Message
	}

	context := fmt.Sprintf("\n\n%s", pterm.LightCyan("Context:"))
	if e.Expected != "" {
		context += fmt.Sprintf("\n  %s %s", pterm.Yellow("Expected:"), e.Expected)
		context += fmt.Sprintf("\n  %s %s", pterm.Yellow("Found:"), e.actualOrEnd())
	}
	if e.Offset >= 0 {
		context += fmt.Sprintf("\n  %s %d", pterm.Yellow("Offset:"), e.Offset)
	}
	if e.Position >= 0 && e.TokenCount > 0 {
		context += fmt.Sprintf("\n  %s %d/%d", pterm.Yellow("Token:"), e.Position, e.TokenCount)
	}
	if e.Token != nil {
		context += fmt.Sprintf("\n  %s '%s'", pterm.Yellow("Near:"), e.Token.Literal)
	}

	if len(e.Suggestions) > 0 {
		context += fmt.Sprintf("\n\n%s", pterm.Green("Suggestions:"))
		for _, suggestion := range e.Suggestions {
			context += fmt.Sprintf("\n  • %s", suggestion)
		}
	}

	return fmt.Sprintf("%s%s", baseMsg, context)
}

func (e *QueryError) actualOrEnd() string {
	if e.Actual != "" {
		return e.Actual
	}
	return "end of input"
}

// Unwrap for errors.Is/As compatibility
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsWarning returns true if this error has warning severity specifically
func (e *QueryError) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// Builder pattern for constructing QueryErrors

// NewQueryError creates a new QueryError with the given kind and message
func NewQueryError(kind ErrorKind, message string) *QueryError {
	return &QueryError{
		Err:       errors.ErrQuery,
		Kind:      kind,
		Severity:  SeverityError,
		Message:   message,
		Offset:    -1,
		Position:  -1,
		Timestamp: time.Now(),
	}
}

// WithOffset sets the byte offset into the query text
func (e *QueryError) WithOffset(offset int) *QueryError {
	e.Offset = offset
	return e
}

// WithPosition sets the token index where the error occurred
func (e *QueryError) WithPosition(pos int, total int) *QueryError {
	e.Position = pos
	e.TokenCount = total
	return e
}

// WithToken sets the token that caused the error
func (e *QueryError) WithToken(token Token) *QueryError {
	e.Token = &token
	return e
}

// WithExpected records the expected/actual pair for consume failures
func (e *QueryError) WithExpected(expected, actual string) *QueryError {
	e.Expected = expected
	e.Actual = actual
	return e
}

// WithSeverity sets the error severity
func (e *QueryError) WithSeverity(sev ErrorSeverity) *QueryError {
	e.Severity = sev
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *QueryError) WithSuggestion(suggestion string) *QueryError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithUnderlying wraps an underlying cause while keeping the ErrQuery family
func (e *QueryError) WithUnderlying(err error) *QueryError {
	if err != nil {
		e.Err = errors.Wrap(errors.ErrQuery, err.Error())
	}
	return e
}
