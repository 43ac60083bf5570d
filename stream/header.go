// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"
)

// Magic identifies a v2 stream.
var Magic = [8]byte{'S', 'C', 'R', 'Y', 'P', 'T', 'v', '2'}

// Version is the only version byte this package accepts.
const Version uint8 = 0x02

// baseNonceSize is the width of StreamHeader.BaseNonce, matching
// noncederive.Size.
const baseNonceSize = 12

// StreamHeader is the metadata prefix of a v2 file, fully determined by the
// encoder before any chunk is emitted and read-only thereafter.
type StreamHeader struct {
	Salt         []byte
	BaseNonce    [baseNonceSize]byte
	ChunkSize    uint32
	TotalChunks  uint64
	OriginalSize uint64
	Metadata     string
}

// byteLen returns the number of bytes WriteTo will emit for this header.
func (h *StreamHeader) byteLen() int {
	return 8 + 1 + 4 + 2 + len(h.Salt) + baseNonceSize + 4 + 8 + 8 + 2 + len(h.Metadata)
}

// WriteTo serializes h to w using the fixed little-endian layout of
// spec §6. The reserved header-size field is computed and written as the
// real byte length of the header (the offset of the first chunk record),
// per the forward-compatible reading of the open question around that
// field; readers tolerate both the real value and zero.
func (h *StreamHeader) WriteTo(w io.Writer) (int64, error) {
	if !utf8.Valid(h.Salt) {
		return 0, fmt.Errorf("%w: salt is not valid UTF-8", ErrInvalidFormat)
	}
	if !utf8.ValidString(h.Metadata) {
		return 0, fmt.Errorf("%w: metadata is not valid UTF-8", ErrInvalidFormat)
	}
	if len(h.Salt) > 0xFFFF {
		return 0, fmt.Errorf("%w: salt too large", ErrInvalidFormat)
	}
	if len(h.Metadata) > 0xFFFF {
		return 0, fmt.Errorf("%w: metadata too large", ErrInvalidFormat)
	}

	buf := make([]byte, h.byteLen())
	off := 0

	copy(buf[off:], Magic[:])
	off += 8

	buf[off] = Version
	off++

	binary.LittleEndian.PutUint32(buf[off:], uint32(h.byteLen()))
	off += 4

	binary.LittleEndian.PutUint16(buf[off:], uint16(len(h.Salt)))
	off += 2
	copy(buf[off:], h.Salt)
	off += len(h.Salt)

	copy(buf[off:], h.BaseNonce[:])
	off += baseNonceSize

	binary.LittleEndian.PutUint32(buf[off:], h.ChunkSize)
	off += 4

	binary.LittleEndian.PutUint64(buf[off:], h.TotalChunks)
	off += 8

	binary.LittleEndian.PutUint64(buf[off:], h.OriginalSize)
	off += 8

	binary.LittleEndian.PutUint16(buf[off:], uint16(len(h.Metadata)))
	off += 2
	copy(buf[off:], h.Metadata)
	off += len(h.Metadata)

	n, err := w.Write(buf[:off])
	if err != nil {
		return int64(n), fmt.Errorf("%w: unable to write stream header: %w", ErrIO, err)
	}
	return int64(n), nil
}

// ReadFrom parses a StreamHeader from r. It rejects a magic or version
// mismatch, and any malformed UTF-8 in the salt or metadata fields, per
// spec §4.3 steps 1-8.
func (h *StreamHeader) ReadFrom(r io.Reader) (int64, error) {
	var total int64

	var magic [8]byte
	n, err := io.ReadFull(r, magic[:])
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("%w: unable to read magic: %w", ErrIO, err)
	}
	if magic != Magic {
		return total, fmt.Errorf("%w: bad magic", ErrInvalidFormat)
	}

	var versionBuf [1]byte
	n, err = io.ReadFull(r, versionBuf[:])
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("%w: unable to read version: %w", ErrIO, err)
	}
	if versionBuf[0] != Version {
		return total, &UnsupportedVersionError{Version: versionBuf[0]}
	}

	var reservedBuf [4]byte
	n, err = io.ReadFull(r, reservedBuf[:])
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("%w: unable to read reserved header-size field: %w", ErrIO, err)
	}
	// Discarded: tolerant of both a real computed length and legacy zero.

	saltLen, n, err := readUint16(r)
	total += n
	if err != nil {
		return total, err
	}

	h.Salt = make([]byte, saltLen)
	rn, err := io.ReadFull(r, h.Salt)
	total += int64(rn)
	if err != nil {
		return total, fmt.Errorf("%w: unable to read salt: %w", ErrIO, err)
	}
	if !utf8.Valid(h.Salt) {
		return total, fmt.Errorf("%w: salt is not valid UTF-8", ErrInvalidFormat)
	}

	rn, err = io.ReadFull(r, h.BaseNonce[:])
	total += int64(rn)
	if err != nil {
		return total, fmt.Errorf("%w: unable to read base nonce: %w", ErrIO, err)
	}

	h.ChunkSize, n, err = readUint32(r)
	total += n
	if err != nil {
		return total, err
	}

	h.TotalChunks, n, err = readUint64(r)
	total += n
	if err != nil {
		return total, err
	}

	h.OriginalSize, n, err = readUint64(r)
	total += n
	if err != nil {
		return total, err
	}

	metaLen, n, err := readUint16(r)
	total += n
	if err != nil {
		return total, err
	}

	metaBuf := make([]byte, metaLen)
	rn, err = io.ReadFull(r, metaBuf)
	total += int64(rn)
	if err != nil {
		return total, fmt.Errorf("%w: unable to read metadata: %w", ErrIO, err)
	}
	if !utf8.Valid(metaBuf) {
		return total, fmt.Errorf("%w: metadata is not valid UTF-8", ErrInvalidFormat)
	}
	h.Metadata = string(metaBuf)

	return total, nil
}

func readUint16(r io.Reader) (uint16, int64, error) {
	var buf [2]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, int64(n), fmt.Errorf("%w: unable to read u16 field: %w", ErrIO, err)
	}
	return binary.LittleEndian.Uint16(buf[:]), int64(n), nil
}

func readUint32(r io.Reader) (uint32, int64, error) {
	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, int64(n), fmt.Errorf("%w: unable to read u32 field: %w", ErrIO, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), int64(n), nil
}

func readUint64(r io.Reader) (uint64, int64, error) {
	var buf [8]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, int64(n), fmt.Errorf("%w: unable to read u64 field: %w", ErrIO, err)
	}
	return binary.LittleEndian.Uint64(buf[:]), int64(n), nil
}
