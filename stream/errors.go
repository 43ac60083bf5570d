// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the encoder and decoder. All errors returned by
// this package are wrapped so callers can distinguish kind with errors.Is.
var (
	// ErrInvalidFormat covers magic mismatch, malformed UTF-8, out-of-range
	// sizes, chunk index mismatch, and trailing bytes after the last chunk.
	ErrInvalidFormat = errors.New("stream: invalid format")
	// ErrCryptography covers AEAD authentication failure, KDF failure, RNG
	// failure, and configuration out of bounds.
	ErrCryptography = errors.New("stream: cryptography failure")
	// ErrIO covers underlying source/sink failure and unexpected end of
	// stream.
	ErrIO = errors.New("stream: io failure")
)

// UnsupportedVersionError is returned when a stream header carries a
// version byte outside the set this package supports.
type UnsupportedVersionError struct {
	Version uint8
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("stream: unsupported version %d", e.Version)
}

// Is allows errors.Is(err, ErrInvalidFormat) to match an UnsupportedVersionError,
// since a version mismatch is a format-level defect from the caller's
// perspective.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrInvalidFormat
}
