// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package aead_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealedstream/cryptor/crypto/aead"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestAES256GCM_RoundTrip(t *testing.T) {
	t.Parallel()

	key := randomBytes(t, aead.KeySize)
	nonce := randomBytes(t, aead.NonceSize)

	a, err := aead.New(aead.Aes256Gcm, key)
	require.NoError(t, err)

	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	ciphertext, err := a.Seal(nil, nonce, plaintext, nil)
	require.NoError(t, err)
	require.Len(t, ciphertext, len(plaintext)+aead.TagSize)

	recovered, err := a.Open(nil, nonce, ciphertext, nil)
	require.NoError(t, err)
	require.True(t, bytes.Equal(plaintext, recovered))
}

func TestAES256GCM_TamperedCiphertextFails(t *testing.T) {
	t.Parallel()

	key := randomBytes(t, aead.KeySize)
	nonce := randomBytes(t, aead.NonceSize)

	a, err := aead.New(aead.Aes256Gcm, key)
	require.NoError(t, err)

	ciphertext, err := a.Seal(nil, nonce, []byte("hello"), nil)
	require.NoError(t, err)

	ciphertext[0] ^= 0xFF

	_, err = a.Open(nil, nonce, ciphertext, nil)
	require.Error(t, err)
}

func TestAES256GCM_WrongKeyFails(t *testing.T) {
	t.Parallel()

	nonce := randomBytes(t, aead.NonceSize)

	encKey := randomBytes(t, aead.KeySize)
	enc, err := aead.New(aead.Aes256Gcm, encKey)
	require.NoError(t, err)

	ciphertext, err := enc.Seal(nil, nonce, []byte("hello"), nil)
	require.NoError(t, err)

	decKey := randomBytes(t, aead.KeySize)
	dec, err := aead.New(aead.Aes256Gcm, decKey)
	require.NoError(t, err)

	_, err = dec.Open(nil, nonce, ciphertext, nil)
	require.Error(t, err)
}

func TestAES256GCM_AssociatedDataBound(t *testing.T) {
	t.Parallel()

	key := randomBytes(t, aead.KeySize)
	nonce := randomBytes(t, aead.NonceSize)

	a, err := aead.New(aead.Aes256Gcm, key)
	require.NoError(t, err)

	ciphertext, err := a.Seal(nil, nonce, []byte("hello"), []byte("context-a"))
	require.NoError(t, err)

	_, err = a.Open(nil, nonce, ciphertext, []byte("context-b"))
	require.Error(t, err)

	recovered, err := a.Open(nil, nonce, ciphertext, []byte("context-a"))
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), recovered)
}

func TestNew_UnsupportedCipherRejected(t *testing.T) {
	t.Parallel()

	_, err := aead.New(aead.CipherAlgorithm(0xFF), randomBytes(t, aead.KeySize))
	require.ErrorIs(t, err, aead.ErrUnsupportedCipher)
}

func TestAES256GCM_WrongKeySizeRejected(t *testing.T) {
	t.Parallel()

	_, err := aead.New(aead.Aes256Gcm, randomBytes(t, 16))
	require.Error(t, err)
}
