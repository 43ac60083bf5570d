// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package noncederive derives per-chunk AEAD nonces from a per-file base
// nonce so that a single random value can safely seed an unbounded number of
// chunk encryptions.
package noncederive

import "encoding/binary"

// Size is the width in bytes of both the base nonce and any derived chunk
// nonce.
const Size = 12

// counterOffset is the byte offset within the nonce where the little-endian
// chunk index is XORed in. The leading 4 bytes of the base nonce are left
// untouched, giving every nonce in a file a shared per-file prefix distinct
// from the counter region.
const counterOffset = 4

// DeriveChunkNonce returns the nonce to use for the chunk at index, derived
// from base by XORing the little-endian encoding of index into bytes
// [4:12). Equal (base, index) pairs always yield equal output; distinct
// indices within a single file always yield distinct nonces since index
// ranges over 2^64 possibilities XORed into an 8-byte region.
//
// Reuse of base across different files is the caller's responsibility to
// avoid: base must be drawn fresh from a CSPRNG per file.
func DeriveChunkNonce(base [Size]byte, index uint64) [Size]byte {
	out := base

	var counter [8]byte
	binary.LittleEndian.PutUint64(counter[:], index)

	for i := 0; i < 8; i++ {
		out[counterOffset+i] ^= counter[i]
	}

	return out
}
