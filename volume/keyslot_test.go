// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package volume_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealedstream/cryptor/volume"
)

func TestKeySlots_AddAndFind(t *testing.T) {
	t.Parallel()

	var slots volume.KeySlots

	require.NoError(t, slots.Add(volume.KeySlot{Name: "primary", Payload: []byte("wrapped-key-bytes")}))
	require.Equal(t, 1, slots.Len())

	found, ok := slots.Find("primary")
	require.True(t, ok)
	require.Equal(t, []byte("wrapped-key-bytes"), found.Payload)

	_, ok = slots.Find("missing")
	require.False(t, ok)
}

func TestKeySlots_EnforcesMaxSlots(t *testing.T) {
	t.Parallel()

	var slots volume.KeySlots
	for i := 0; i < volume.MaxKeySlots; i++ {
		require.NoError(t, slots.Add(volume.KeySlot{Name: "slot", Payload: []byte("x")}))
	}

	err := slots.Add(volume.KeySlot{Name: "overflow", Payload: []byte("x")})
	require.Error(t, err)
}

func TestKeySlots_RejectsOversizedPayload(t *testing.T) {
	t.Parallel()

	var slots volume.KeySlots
	err := slots.Add(volume.KeySlot{Name: "too-big", Payload: make([]byte, 5000)})
	require.Error(t, err)
}
