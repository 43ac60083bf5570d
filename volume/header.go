// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package volume implements the fixed-size header record placed at offset 0
// of an encrypted block volume: magic, version, cipher selector, salt, IV,
// geometry, timestamps, and a reserved extension area, serialized to an
// exact 4096-byte record.
package volume

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sealedstream/cryptor/crypto/aead"
)

// HeaderSize is the exact on-disk length of a VolumeHeader record.
const HeaderSize = 4096

// SaltSize is the width of VolumeHeader.salt.
const SaltSize = 32

// HeaderIVSize is the width of VolumeHeader.headerIV.
const HeaderIVSize = 12

// reservedSize is the width of the trailing, currently-unused extension
// area.
const reservedSize = 256

// Version is the only volume header version this package writes and
// accepts.
const Version uint32 = 1

// Magic identifies a Secure Cryptor volume file.
var Magic = [8]byte{'S', 'E', 'C', 'V', 'O', 'L', '0', '1'}

// Sentinel errors surfaced by this package.
var (
	// ErrInvalidMagic is returned when a header's magic bytes don't match
	// Magic.
	ErrInvalidMagic = errors.New("volume: invalid magic")
	// ErrSizeMismatch is returned when a byte slice isn't exactly
	// HeaderSize long, or when encoding would overflow it.
	ErrSizeMismatch = errors.New("volume: size mismatch")
	// ErrNonZeroReserved is returned by FromBytes in strict mode when the
	// reserved area isn't all zero.
	ErrNonZeroReserved = errors.New("volume: non-zero reserved bytes")
)

// UnsupportedVersionError is returned when a header's version field is
// outside the set this package supports.
type UnsupportedVersionError struct {
	Version uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("volume: unsupported version %d", e.Version)
}

// VolumeHeader is the 4 KiB leading record of a block volume. Field order,
// widths, and endianness are part of the on-disk contract; any future
// change requires incrementing Version.
type VolumeHeader struct {
	cipher     aead.CipherAlgorithm
	salt       [SaltSize]byte
	headerIV   [HeaderIVSize]byte
	volumeSize uint64
	sectorSize uint32
	createdAt  uint64
	modifiedAt uint64
	reserved   [reservedSize]byte
}

// New populates a fresh header: constants (magic, version, cipher AES-256-GCM),
// the given geometry and crypto parameters, both timestamps set to now, and
// a zeroed reserved area.
func New(volumeSize uint64, sectorSize uint32, salt [SaltSize]byte, headerIV [HeaderIVSize]byte) (*VolumeHeader, error) {
	now := time.Now().Unix()
	if now < 0 {
		return nil, fmt.Errorf("volume: system clock before Unix epoch")
	}

	return &VolumeHeader{
		cipher:     aead.Aes256Gcm,
		salt:       salt,
		headerIV:   headerIV,
		volumeSize: volumeSize,
		sectorSize: sectorSize,
		createdAt:  uint64(now),
		modifiedAt: uint64(now),
	}, nil
}

// Cipher returns the cipher algorithm tag.
func (h *VolumeHeader) Cipher() aead.CipherAlgorithm { return h.cipher }

// Salt returns the KDF salt.
func (h *VolumeHeader) Salt() [SaltSize]byte { return h.salt }

// HeaderIV returns the header encryption IV.
func (h *VolumeHeader) HeaderIV() [HeaderIVSize]byte { return h.headerIV }

// VolumeSize returns the total volume size in bytes, excluding the header.
func (h *VolumeHeader) VolumeSize() uint64 { return h.volumeSize }

// SectorSize returns the sector size in bytes.
func (h *VolumeHeader) SectorSize() uint32 { return h.sectorSize }

// CreatedAt returns the creation timestamp (Unix seconds).
func (h *VolumeHeader) CreatedAt() uint64 { return h.createdAt }

// ModifiedAt returns the last modification timestamp (Unix seconds).
func (h *VolumeHeader) ModifiedAt() uint64 { return h.modifiedAt }

// Touch advances ModifiedAt to the current Unix second. CreatedAt is never
// altered.
func (h *VolumeHeader) Touch() error {
	now := time.Now().Unix()
	if now < 0 {
		return fmt.Errorf("volume: system clock before Unix epoch")
	}
	h.modifiedAt = uint64(now)
	return nil
}

// encodedLen is the exact prefix length this header serializes to, before
// zero-padding to HeaderSize.
const encodedLen = 8 + 4 + 1 + SaltSize + HeaderIVSize + 8 + 4 + 8 + 8 + reservedSize

// ToBytes serializes h to a stable little-endian encoding, zero-padded to
// exactly HeaderSize bytes. Hand-rolled binary.LittleEndian writes are used
// rather than a structural/self-describing encoder, because this wire
// format must reproduce an exact byte offset table across implementations.
func (h *VolumeHeader) ToBytes() ([HeaderSize]byte, error) {
	var out [HeaderSize]byte

	if encodedLen > HeaderSize {
		return out, fmt.Errorf("%w: encoded header %d bytes exceeds %d", ErrSizeMismatch, encodedLen, HeaderSize)
	}

	off := 0
	copy(out[off:], Magic[:])
	off += 8

	binary.LittleEndian.PutUint32(out[off:], Version)
	off += 4

	out[off] = byte(h.cipher)
	off++

	copy(out[off:], h.salt[:])
	off += SaltSize

	copy(out[off:], h.headerIV[:])
	off += HeaderIVSize

	binary.LittleEndian.PutUint64(out[off:], h.volumeSize)
	off += 8

	binary.LittleEndian.PutUint32(out[off:], h.sectorSize)
	off += 4

	binary.LittleEndian.PutUint64(out[off:], h.createdAt)
	off += 8

	binary.LittleEndian.PutUint64(out[off:], h.modifiedAt)
	off += 8

	copy(out[off:], h.reserved[:])

	// Remaining bytes of out are already zero-valued: the zero-padding to
	// HeaderSize.

	return out, nil
}

// FromBytes decodes a VolumeHeader from exactly HeaderSize bytes, validating
// magic, version, and cipher tag (Aes256Gcm is the only one accepted). When
// strict mode is enabled (see SetStrictMode), a
// non-zero reserved area is rejected; otherwise it is preserved verbatim
// through round-trips.
func FromBytes(data []byte) (*VolumeHeader, error) {
	if len(data) != HeaderSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrSizeMismatch, HeaderSize, len(data))
	}

	var magic [8]byte
	copy(magic[:], data[0:8])
	if magic != Magic {
		return nil, ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint32(data[8:12])
	if version != Version {
		return nil, &UnsupportedVersionError{Version: version}
	}

	h := &VolumeHeader{}
	off := 12

	h.cipher = aead.CipherAlgorithm(data[off])
	if h.cipher != aead.Aes256Gcm {
		return nil, fmt.Errorf("%w: %d", aead.ErrUnsupportedCipher, h.cipher)
	}
	off++

	copy(h.salt[:], data[off:off+SaltSize])
	off += SaltSize

	copy(h.headerIV[:], data[off:off+HeaderIVSize])
	off += HeaderIVSize

	h.volumeSize = binary.LittleEndian.Uint64(data[off : off+8])
	off += 8

	h.sectorSize = binary.LittleEndian.Uint32(data[off : off+4])
	off += 4

	h.createdAt = binary.LittleEndian.Uint64(data[off : off+8])
	off += 8

	h.modifiedAt = binary.LittleEndian.Uint64(data[off : off+8])
	off += 8

	copy(h.reserved[:], data[off:off+reservedSize])
	off += reservedSize

	if strictMode.isSet() {
		for _, b := range h.reserved {
			if b != 0 {
				return nil, ErrNonZeroReserved
			}
		}
	}

	return h, nil
}

// WriteTo is a convenience wrapper writing the full HeaderSize-byte block.
func (h *VolumeHeader) WriteTo(w io.Writer) (int64, error) {
	buf, err := h.ToBytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf[:])
	if err != nil {
		return int64(n), fmt.Errorf("volume: unable to write header: %w", err)
	}
	return int64(n), nil
}

// ReadFrom is a convenience wrapper reading exactly HeaderSize bytes and
// decoding them.
func ReadFrom(r io.Reader) (*VolumeHeader, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("volume: unable to read header: %w", err)
	}
	return FromBytes(buf[:])
}
