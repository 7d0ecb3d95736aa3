// Package errors provides error handling for ATON.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing output
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check error families
//	if errors.Is(err, errors.ErrQuery) {
//	    // handle a malformed query
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Join         = crdb.Join
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the three ATON failure families.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the family.
var (
	// ErrEncoding indicates a dataset could not be rendered as ATON text
	ErrEncoding = New("encoding error")

	// ErrDecoding indicates ATON text could not be parsed back into a dataset
	ErrDecoding = New("decoding error")

	// ErrQuery indicates a query string is malformed or references unknown data
	ErrQuery = New("query error")
)

// IsEncodingError checks if an error is or wraps ErrEncoding
func IsEncodingError(err error) bool {
	return err != nil && Is(err, ErrEncoding)
}

// IsDecodingError checks if an error is or wraps ErrDecoding
func IsDecodingError(err error) bool {
	return err != nil && Is(err, ErrDecoding)
}

// IsQueryError checks if an error is or wraps ErrQuery
func IsQueryError(err error) bool {
	return err != nil && Is(err, ErrQuery)
}

// NewEncodingError creates an encoding error with a formatted message
func NewEncodingError(format string, args ...interface{}) error {
	return Wrap(ErrEncoding, Newf(format, args...).Error())
}

// NewDecodingError creates a decoding error with a formatted message
func NewDecodingError(format string, args ...interface{}) error {
	return Wrap(ErrDecoding, Newf(format, args...).Error())
}

// NewQueryError creates a query error with a formatted message
func NewQueryError(format string, args ...interface{}) error {
	return Wrap(ErrQuery, Newf(format, args...).Error())
}

// WrapEncoding wraps an error into the encoding family with context
func WrapEncoding(err error, context string) error {
	return Wrap(Wrap(ErrEncoding, err.Error()), context)
}

// WrapDecoding wraps an error into the decoding family with context
func WrapDecoding(err error, context string) error {
	return Wrap(Wrap(ErrDecoding, err.Error()), context)
}

// WrapQuery wraps an error into the query family with context
func WrapQuery(err error, context string) error {
	return Wrap(Wrap(ErrQuery, err.Error()), context)
}
