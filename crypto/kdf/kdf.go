// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package kdf provides the password-based key-derivation contract consumed
// by the streaming container and the host envelope: a memory-hard function
// turning a low-entropy password and a public salt into a fixed-length
// symmetric key, under caller-chosen cost parameters.
//
// Cost parameters are never embedded in the stream or envelope formats
// themselves; they are an application-level concern that must match between
// derivation calls, so callers persist a Params value out of band.
package kdf

import (
	"encoding/hex"
	"fmt"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/argon2"

	"github.com/sealedstream/cryptor/generator/randomness"
)

// KeyLen is the fixed output length of a derived key, matching aead.KeySize.
const KeyLen = 32

// SaltLen is the number of raw random bytes GenerateSalt draws before
// hex-encoding; the returned salt is hex.EncodedLen(SaltLen) bytes long.
const SaltLen = 16

// Params tunes the Argon2id cost. Memory is in KiB, Time is the number of
// passes, Threads is the degree of parallelism.
type Params struct {
	Memory  uint32
	Time    uint32
	Threads uint8
}

// Fast trades security margin for speed: 8 MiB, 1 pass.
var Fast = Params{Memory: 8 * 1024, Time: 1, Threads: 4}

// Balanced is the default preset: 64 MiB, 3 passes.
var Balanced = Params{Memory: 64 * 1024, Time: 3, Threads: 4}

// Secure is the high-cost preset: 128 MiB, 5 passes. Callers choosing this
// preset must account for the transient ~128 MiB of scratch memory Argon2id
// consumes during derivation.
var Secure = Params{Memory: 128 * 1024, Time: 5, Threads: 4}

// GenerateSalt returns a fresh, cryptographically random salt suitable for
// DeriveKey. The salt is hex-encoded so it is always valid UTF-8 text: the
// spec's salt is a "textual salt string" field, and callers such as
// StreamHeader reject a salt that isn't valid UTF-8.
func GenerateSalt() ([]byte, error) {
	raw, err := randomness.Bytes(SaltLen)
	if err != nil {
		return nil, fmt.Errorf("kdf: unable to generate salt: %w", err)
	}
	encoded := make([]byte, hex.EncodedLen(len(raw)))
	hex.Encode(encoded, raw)
	return encoded, nil
}

// DeriveKey derives a KeyLen-byte symmetric key from password and salt under
// params, using Argon2id. The returned buffer holds the key outside normal
// GC-managed, swappable memory; the caller must call Destroy() on every exit
// path once the key is no longer needed.
func DeriveKey(password, salt []byte, params Params) (*memguard.LockedBuffer, error) {
	if len(salt) == 0 {
		return nil, fmt.Errorf("kdf: salt must not be empty")
	}
	if params.Memory == 0 || params.Time == 0 || params.Threads == 0 {
		return nil, fmt.Errorf("kdf: cost parameters must be non-zero")
	}

	raw := argon2.IDKey(password, salt, params.Time, params.Memory, params.Threads, KeyLen)

	// NewBufferFromBytes moves raw into locked, non-swappable memory and
	// wipes the source slice itself.
	return memguard.NewBufferFromBytes(raw), nil
}
