// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidText is returned for strings that are not valid UTF-8
	// or contain a NUL byte. SWF strings are NUL terminated, so an
	// embedded NUL would silently truncate the value in the player.
	ErrInvalidText = errors.New("swf: text must be valid UTF-8 without NUL bytes")

	// ErrTooManyCharacters is returned when all 65535 character IDs
	// have been allocated.
	ErrTooManyCharacters = errors.New("swf: character ID space exhausted")

	// ErrTooManyFrames is returned when the main timeline would exceed
	// 65535 frames.
	ErrTooManyFrames = errors.New("swf: frame count exceeds 65535")

	// ErrEmptyImage is returned when embedding image data of length
	// zero.
	ErrEmptyImage = errors.New("swf: empty image data")

	// ErrOutOfRange is returned when a value does not fit the bit width
	// its encoding allows.
	ErrOutOfRange = errors.New("swf: value out of encodable range")

	// ErrNoSoundStream is returned when ending a sound stream that was
	// never started, or whose header no longer exists.
	ErrNoSoundStream = errors.New("swf: no open sound stream")

	// ErrFrameRate is returned for frame rates outside (0, 256).
	ErrFrameRate = errors.New("swf: frame rate must be greater than 0 and less than 256")
)

// ContractError is the panic value for misuse of a [Writer] by its
// caller. It is never returned as an error: a stream that hit one is
// malformed and must not be persisted.
type ContractError struct {
	// Operation is the Writer method that detected the violation.
	Operation string

	// Detail describes what the caller did wrong.
	Detail string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("swf: %s: %s", e.Operation, e.Detail)
}

func violation(operation, format string, args ...any) {
	panic(&ContractError{Operation: operation, Detail: fmt.Sprintf(format, args...)})
}
