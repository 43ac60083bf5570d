// SPDX-FileCopyrightText: 2024-Present Datadog, Inc
// SPDX-License-Identifier: Apache-2.0

// Package ioutil bounds the reads the stream decoder performs against an
// attacker-controlled chunk record and times out reads from a stalled
// source. Its atomic subpackage persists volume files.
package ioutil

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrTruncatedCopy is raised by LimitCopy when the source yields more than
// maxSize bytes.
var ErrTruncatedCopy = errors.New("truncated copy due to too large input")

// LimitCopy streams src into dst in page-sized steps, aborting with
// ErrTruncatedCopy once more than maxSize bytes have been copied. Used by
// the stream decoder to cap a single chunk record's payload read instead of
// trusting the untrusted data_size field on its face.
func LimitCopy(dst io.Writer, src io.Reader, maxSize uint64) (uint64, error) {
	writtenLength := uint64(0)

	// Check arguments
	if dst == nil {
		return 0, errors.New("writer must not be nil")
	}
	if src == nil {
		return 0, errors.New("reader must not be nil")
	}

	// Retrieve system pagesize for optimized buffer length
	pageSize := os.Getpagesize()

	// Chunked read with hard limit to reduce/prevent memory bomb.
	for {
		written, err := io.CopyN(dst, src, int64(pageSize))
		if err != nil {
			if errors.Is(err, io.EOF) {
				writtenLength += uint64(written)
				break
			}
			return writtenLength, fmt.Errorf("unable to stream source data to destination: %w", err)
		}

		// Add to length
		writtenLength += uint64(written)

		// Stop as soon as the limit is crossed
		if writtenLength > maxSize {
			return writtenLength, ErrTruncatedCopy
		}
	}

	// Check max size
	if writtenLength > maxSize {
		return writtenLength, ErrTruncatedCopy
	}

	// No error
	return writtenLength, nil
}
