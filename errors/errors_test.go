package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf("error: %s %d", "test", 42)
	require.NotNil(t, err)
	assert.Equal(t, "error: test 42", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestIs(t *testing.T) {
	err1 := New("error 1")
	err2 := New("error 2")
	wrapped := Wrap(err1, "wrapped")

	assert.True(t, Is(wrapped, err1))
	assert.False(t, Is(wrapped, err2))
	assert.False(t, Is(nil, err1))
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}

func TestAs(t *testing.T) {
	original := &customError{msg: "custom"}
	wrapped := Wrap(original, "wrapped")

	var target *customError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "custom", target.msg)
}

func TestErrorFamilies(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		check    func(error) bool
	}{
		{"encoding", NewEncodingError("bad table name %q", ""), ErrEncoding, IsEncodingError},
		{"decoding", NewDecodingError("bad header at line %d", 3), ErrDecoding, IsDecodingError},
		{"query", NewQueryError("unknown table: %s", "ghosts"), ErrQuery, IsQueryError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Is(tt.err, tt.sentinel))
			assert.True(t, tt.check(tt.err))

			// Wrapping preserves the family.
			wrapped := Wrap(tt.err, "outer context")
			assert.True(t, tt.check(wrapped))
			assert.Contains(t, wrapped.Error(), "outer context")
		})
	}
}

func TestFamiliesAreDistinct(t *testing.T) {
	err := NewQueryError("expected field name")
	assert.False(t, IsEncodingError(err))
	assert.False(t, IsDecodingError(err))
	assert.True(t, IsQueryError(err))

	assert.False(t, IsQueryError(nil))
}

func TestWrapFamilyFromForeignError(t *testing.T) {
	cause := New("unexpected end of input")
	err := WrapDecoding(cause, "parsing @dict header")

	assert.True(t, IsDecodingError(err))
	assert.Contains(t, err.Error(), "parsing @dict header")
	assert.Contains(t, err.Error(), "unexpected end of input")
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "try this fix")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestWithDetail(t *testing.T) {
	err := New("error")
	withDetail := WithDetail(err, "detailed information")

	details := GetAllDetails(withDetail)
	require.Len(t, details, 1)
	assert.Equal(t, "detailed information", details[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	// Format with stack trace
	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func TestErrorChaining(t *testing.T) {
	err := NewEncodingError("field name is empty")
	err = WithHint(err, "every field in the first record needs a name")
	err = Wrap(err, "encoding table users")

	assert.True(t, IsEncodingError(err))
	assert.Contains(t, err.Error(), "encoding table users")
	assert.Contains(t, err.Error(), "field name is empty")

	hints := GetAllHints(err)
	assert.Contains(t, hints, "every field in the first record needs a name")
}

func ExampleNew() {
	err := New("something went wrong")
	fmt.Println(err)
	// Output: something went wrong
}

func ExampleNewQueryError() {
	err := NewQueryError("unknown table: %s", "ghosts")
	fmt.Println(IsQueryError(err))
	// Output: true
}
