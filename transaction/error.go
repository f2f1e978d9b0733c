// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.  An ErrorCode is itself an error so
// callers can match on it with errors.Is.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrTruncated indicates the buffer ended before a structurally
	// complete transaction was read, or a length prefix overran it.
	ErrTruncated ErrorCode = iota

	// ErrTrailingData indicates a strict decode finished with unconsumed
	// bytes left in the buffer.
	ErrTrailingData

	// ErrNonCanonicalVarInt indicates a variable length integer that was
	// not encoded with the minimal number of bytes.
	ErrNonCanonicalVarInt

	// ErrSuperfluousWitness indicates the segwit marker and flag were
	// present but every input carried an empty witness.
	ErrSuperfluousWitness

	// ErrInvalidHex indicates a hex-encoded transaction could not be
	// decoded to bytes.
	ErrInvalidHex

	// ErrInvalidAmount indicates an output amount outside the range
	// [0, btcutil.MaxSatoshi].
	ErrInvalidAmount

	// ErrIndexOutOfRange indicates an input index or buffer offset that
	// does not refer to an existing element.
	ErrIndexOutOfRange

	// ErrScriptTooLarge indicates a script longer than the maximum
	// allowed size.
	ErrScriptTooLarge

	// ErrWitnessTooLarge indicates a witness stack with too many items or
	// an item longer than the maximum allowed size.
	ErrWitnessTooLarge

	// ErrShortBuffer indicates a caller supplied buffer too small to hold
	// the encoding.
	ErrShortBuffer

	// ErrInvalidSigHashType indicates a signature hash type string that
	// could not be parsed.
	ErrInvalidSigHashType

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrTruncated:          "ErrTruncated",
	ErrTrailingData:       "ErrTrailingData",
	ErrNonCanonicalVarInt: "ErrNonCanonicalVarInt",
	ErrSuperfluousWitness: "ErrSuperfluousWitness",
	ErrInvalidHex:         "ErrInvalidHex",
	ErrInvalidAmount:      "ErrInvalidAmount",
	ErrIndexOutOfRange:    "ErrIndexOutOfRange",
	ErrScriptTooLarge:     "ErrScriptTooLarge",
	ErrWitnessTooLarge:    "ErrWitnessTooLarge",
	ErrShortBuffer:        "ErrShortBuffer",
	ErrInvalidSigHashType: "ErrInvalidSigHashType",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorCode) Error() string {
	return e.String()
}

// IsMalformed returns whether the code reports a buffer that could not be
// parsed as a transaction.
func (e ErrorCode) IsMalformed() bool {
	switch e {
	case ErrTruncated, ErrTrailingData, ErrNonCanonicalVarInt,
		ErrSuperfluousWitness, ErrInvalidHex:
		return true
	}
	return false
}

// IsConstraint returns whether the code reports a caller supplied value that
// failed a type or range precondition.
func (e ErrorCode) IsConstraint() bool {
	switch e {
	case ErrInvalidAmount, ErrIndexOutOfRange, ErrScriptTooLarge,
		ErrWitnessTooLarge, ErrShortBuffer, ErrInvalidSigHashType:
		return true
	}
	return false
}

// Error identifies an error related to transaction encoding, decoding or
// signature hashing.  It has full support for errors.Is and errors.As, so the
// caller can ascertain the specific reason for the error by checking the
// underlying error code.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error code.
func (e Error) Unwrap() error {
	return e.ErrorCode
}

// txError creates an Error given a set of arguments.
func txError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a transaction
// error with the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var e Error
	return errors.As(err, &e) && e.ErrorCode == c
}
