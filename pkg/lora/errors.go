// Package lora implements the LoRa chirp-spread-spectrum physical layer
// core: parameter validation, the chirp modulator, the CFO/TO-compensating
// FFT demodulator and the Hamming-coded encode and CRC-checked decode
// paths, built on top of internal/chirp, internal/detector and
// internal/kissfft. Encode and Decode do not apply whitening.
package lora

import "errors"

// Code is the POSIX-flavored error taxonomy the core reports through:
// every public entry point either returns a non-negative count or one of
// these three codes.
type Code int

const (
	CodeInvalidArg Code = -22
	CodeOutOfRange Code = -34
	CodeNoMemory   Code = -12
)

// coreError pairs a Code with a human-readable reason; errors.Is matches
// against the three sentinels below regardless of the wrapped reason.
type coreError struct {
	code Code
	msg  string
}

func (e *coreError) Error() string { return e.msg }

func (e *coreError) Is(target error) bool {
	t, ok := target.(*coreError)
	if !ok {
		return false
	}
	return e.code == t.code
}

var (
	// ErrInvalidArg is returned for malformed parameters, size mismatches
	// and alignment failures.
	ErrInvalidArg error = &coreError{CodeInvalidArg, "lora: invalid argument"}
	// ErrOutOfRange is returned when a caller-supplied buffer is too
	// small for the operation's output.
	ErrOutOfRange error = &coreError{CodeOutOfRange, "lora: out of range"}
	// ErrNoMemory is returned when a required caller-owned buffer is
	// absent.
	ErrNoMemory error = &coreError{CodeNoMemory, "lora: required buffer not provided"}
)

func newError(code Code, msg string) error {
	return &coreError{code, msg}
}

// ErrCode extracts the numeric Code carried by an error produced by this
// package, or 0 if err was not produced by this package.
func ErrCode(err error) Code {
	var ce *coreError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 0
}
