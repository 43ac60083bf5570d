// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package volume_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sealedstream/cryptor/crypto/aead"
	"github.com/sealedstream/cryptor/volume"
)

func testSaltAndIV() ([volume.SaltSize]byte, [volume.HeaderIVSize]byte) {
	var salt [volume.SaltSize]byte
	var iv [volume.HeaderIVSize]byte
	for i := range salt {
		salt[i] = 1
	}
	for i := range iv {
		iv[i] = 2
	}
	return salt, iv
}

func TestNew_PopulatesConstants(t *testing.T) {
	t.Parallel()

	salt, iv := testSaltAndIV()
	h, err := volume.New(1024*1024*1024, 4096, salt, iv)
	require.NoError(t, err)

	require.Equal(t, aead.Aes256Gcm, h.Cipher())
	require.Equal(t, salt, h.Salt())
	require.Equal(t, iv, h.HeaderIV())
	require.Equal(t, uint64(1024*1024*1024), h.VolumeSize())
	require.Equal(t, uint32(4096), h.SectorSize())
	require.Equal(t, h.CreatedAt(), h.ModifiedAt())
}

func TestToBytes_ExactLengthAndMagic(t *testing.T) {
	t.Parallel()

	salt, iv := testSaltAndIV()
	h, err := volume.New(1024*1024*1024, 4096, salt, iv)
	require.NoError(t, err)

	raw, err := h.ToBytes()
	require.NoError(t, err)
	require.Len(t, raw, volume.HeaderSize)
	require.Equal(t, []byte{0x53, 0x45, 0x43, 0x56, 0x4F, 0x4C, 0x30, 0x31}, raw[0:8])
}

func TestToBytesFromBytes_RoundTrip(t *testing.T) {
	t.Parallel()

	salt, iv := testSaltAndIV()
	h, err := volume.New(2*1024*1024*1024, 512, salt, iv)
	require.NoError(t, err)

	raw, err := h.ToBytes()
	require.NoError(t, err)

	decoded, err := volume.FromBytes(raw[:])
	require.NoError(t, err)

	require.Equal(t, h.Salt(), decoded.Salt())
	require.Equal(t, h.HeaderIV(), decoded.HeaderIV())
	require.Equal(t, h.VolumeSize(), decoded.VolumeSize())
	require.Equal(t, h.SectorSize(), decoded.SectorSize())
	require.Equal(t, h.CreatedAt(), decoded.CreatedAt())
	require.Equal(t, h.ModifiedAt(), decoded.ModifiedAt())
	require.Equal(t, h.Cipher(), decoded.Cipher())
}

func TestWriteToReadFrom_RoundTrip(t *testing.T) {
	t.Parallel()

	salt, iv := testSaltAndIV()
	h, err := volume.New(2*1024*1024*1024, 512, salt, iv)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = h.WriteTo(&buf)
	require.NoError(t, err)

	decoded, err := volume.ReadFrom(&buf)
	require.NoError(t, err)

	require.Equal(t, h.Salt(), decoded.Salt())
	require.Equal(t, h.VolumeSize(), decoded.VolumeSize())
}

func TestFromBytes_InvalidMagic(t *testing.T) {
	t.Parallel()

	raw := make([]byte, volume.HeaderSize)
	copy(raw, []byte("INVALID!"))

	_, err := volume.FromBytes(raw)
	require.ErrorIs(t, err, volume.ErrInvalidMagic)
}

func TestFromBytes_UnsupportedVersion(t *testing.T) {
	t.Parallel()

	salt, iv := testSaltAndIV()
	h, err := volume.New(1024, 512, salt, iv)
	require.NoError(t, err)

	raw, err := h.ToBytes()
	require.NoError(t, err)

	raw[8] = 0xFF // version byte (offset 8, little-endian, low byte)

	_, err = volume.FromBytes(raw[:])
	var verErr *volume.UnsupportedVersionError
	require.ErrorAs(t, err, &verErr)
}

func TestFromBytes_WrongSizeRejected(t *testing.T) {
	t.Parallel()

	_, err := volume.FromBytes(make([]byte, volume.HeaderSize-1))
	require.ErrorIs(t, err, volume.ErrSizeMismatch)
}

func TestTouch_UpdatesModifiedNotCreated(t *testing.T) {
	t.Parallel()

	salt, iv := testSaltAndIV()
	h, err := volume.New(1024, 512, salt, iv)
	require.NoError(t, err)

	createdBefore := h.CreatedAt()
	modifiedBefore := h.ModifiedAt()

	time.Sleep(1100 * time.Millisecond)
	require.NoError(t, h.Touch())

	require.Equal(t, createdBefore, h.CreatedAt())
	require.Greater(t, h.ModifiedAt(), modifiedBefore)
}

func TestStrictMode_RejectsNonZeroReserved(t *testing.T) {
	salt, iv := testSaltAndIV()
	h, err := volume.New(1024, 512, salt, iv)
	require.NoError(t, err)

	raw, err := h.ToBytes()
	require.NoError(t, err)
	raw[volume.HeaderSize-1] = 0xFF // inside reserved[256]

	// Lenient by default: preserved through round-trip, no rejection.
	decoded, err := volume.FromBytes(raw[:])
	require.NoError(t, err)
	_ = decoded

	revert := volume.SetStrictMode()
	defer revert()

	_, err = volume.FromBytes(raw[:])
	require.ErrorIs(t, err, volume.ErrNonZeroReserved)
}
