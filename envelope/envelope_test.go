// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package envelope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealedstream/cryptor/envelope"
)

func TestEncryptDecryptString_RoundTrip(t *testing.T) {
	t.Parallel()

	encoded, err := envelope.EncryptString("hunter2", "Hello, World!", envelope.Fast)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	plaintext, err := envelope.DecryptString("hunter2", encoded, envelope.Fast)
	require.NoError(t, err)
	require.Equal(t, "Hello, World!", plaintext)
}

func TestDecryptString_WrongPasswordFails(t *testing.T) {
	t.Parallel()

	encoded, err := envelope.EncryptString("alpha", "secret payload", envelope.Fast)
	require.NoError(t, err)

	_, err = envelope.DecryptString("beta", encoded, envelope.Fast)
	require.Error(t, err)
}

func TestEncryptString_ProducesDistinctCiphertextsEachCall(t *testing.T) {
	t.Parallel()

	e1, err := envelope.EncryptString("p", "same plaintext", envelope.Fast)
	require.NoError(t, err)

	e2, err := envelope.EncryptString("p", "same plaintext", envelope.Fast)
	require.NoError(t, err)

	require.NotEqual(t, e1, e2)
}

func TestDecryptString_TruncatedPayloadRejected(t *testing.T) {
	t.Parallel()

	_, err := envelope.DecryptString("p", "YWJj", envelope.Fast) // "abc" base64, far too short
	require.Error(t, err)
}

func TestDecryptString_InvalidBase64Rejected(t *testing.T) {
	t.Parallel()

	_, err := envelope.DecryptString("p", "not valid base64!!", envelope.Fast)
	require.Error(t, err)
}
