// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package noncederive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealedstream/cryptor/crypto/noncederive"
)

func TestDeriveChunkNonce_Deterministic(t *testing.T) {
	t.Parallel()

	base := [noncederive.Size]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	n1 := noncederive.DeriveChunkNonce(base, 42)
	n2 := noncederive.DeriveChunkNonce(base, 42)

	require.Equal(t, n1, n2)
}

func TestDeriveChunkNonce_DistinctIndicesDiverge(t *testing.T) {
	t.Parallel()

	base := [noncederive.Size]byte{}

	seen := map[[noncederive.Size]byte]uint64{}
	for i := uint64(0); i < 10_000; i++ {
		n := noncederive.DeriveChunkNonce(base, i)
		if prev, ok := seen[n]; ok {
			t.Fatalf("collision between index %d and %d", prev, i)
		}
		seen[n] = i
	}
}

func TestDeriveChunkNonce_PrefixUntouched(t *testing.T) {
	t.Parallel()

	base := [noncederive.Size]byte{0xAA, 0xBB, 0xCC, 0xDD, 1, 2, 3, 4, 5, 6, 7, 8}

	n := noncederive.DeriveChunkNonce(base, 0xFFFFFFFFFFFFFFFF)

	require.Equal(t, base[:4], n[:4])
}

func TestDeriveChunkNonce_ZeroIndexMatchesBase(t *testing.T) {
	t.Parallel()

	base := [noncederive.Size]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	n := noncederive.DeriveChunkNonce(base, 0)

	require.Equal(t, base, n)
}
