// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package envelope implements the host-binding single-shot payload format:
// a password and a UTF-8 plaintext in, a base64 string out, built on the
// same crypto/kdf and crypto/aead contracts as the streaming container.
// This is a simpler sibling of the v2 stream format, not the core format
// itself — it serves single-shot payloads such as a config value or a
// small secret, not arbitrarily large files.
package envelope

import (
	"encoding/base64"
	"fmt"

	"github.com/sealedstream/cryptor/crypto/aead"
	"github.com/sealedstream/cryptor/crypto/kdf"
	"github.com/sealedstream/cryptor/generator/randomness"
)

// Preset cost parameters for host-binding operations, matching spec §6:
// fast (8 MiB, 1 pass), balanced (64 MiB, 3 passes), secure (128 MiB, 5
// passes).
var (
	Fast     = kdf.Fast
	Balanced = kdf.Balanced
	Secure   = kdf.Secure
)

// EncryptString encrypts plaintext under password, returning a
// base64-encoded envelope: salt[32] || nonce[12] || ciphertext-with-tag.
func EncryptString(password, plaintext string, params kdf.Params) (string, error) {
	salt, err := randomness.Bytes(volumeSaltSize)
	if err != nil {
		return "", fmt.Errorf("envelope: unable to generate salt: %w", err)
	}

	nonce, err := randomness.Bytes(aead.NonceSize)
	if err != nil {
		return "", fmt.Errorf("envelope: unable to generate nonce: %w", err)
	}

	lb, err := kdf.DeriveKey([]byte(password), salt, params)
	if err != nil {
		return "", fmt.Errorf("envelope: unable to derive key: %w", err)
	}
	defer lb.Destroy()

	cipher, err := aead.New(aead.Aes256Gcm, lb.Bytes())
	if err != nil {
		return "", fmt.Errorf("envelope: unable to initialize cipher: %w", err)
	}

	ciphertext, err := cipher.Seal(nil, nonce, []byte(plaintext), nil)
	if err != nil {
		return "", fmt.Errorf("envelope: unable to seal payload: %w", err)
	}

	out := make([]byte, 0, len(salt)+len(nonce)+len(ciphertext))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)

	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptString reverses EncryptString: it parses the base64 envelope,
// derives the key under password and params, and returns the recovered
// plaintext.
func DecryptString(password, encoded string, params kdf.Params) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("envelope: unable to decode base64 payload: %w", err)
	}

	minLen := volumeSaltSize + aead.NonceSize + aead.TagSize
	if len(raw) < minLen {
		return "", fmt.Errorf("envelope: payload too short: need at least %d bytes, got %d", minLen, len(raw))
	}

	salt := raw[:volumeSaltSize]
	nonce := raw[volumeSaltSize : volumeSaltSize+aead.NonceSize]
	ciphertext := raw[volumeSaltSize+aead.NonceSize:]

	lb, err := kdf.DeriveKey([]byte(password), salt, params)
	if err != nil {
		return "", fmt.Errorf("envelope: unable to derive key: %w", err)
	}
	defer lb.Destroy()

	cipher, err := aead.New(aead.Aes256Gcm, lb.Bytes())
	if err != nil {
		return "", fmt.Errorf("envelope: unable to initialize cipher: %w", err)
	}

	plaintext, err := cipher.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("envelope: unable to open payload: %w", err)
	}

	return string(plaintext), nil
}

// volumeSaltSize is the salt width for the host envelope's self-contained
// salt||nonce||ciphertext layout, independent of crypto/kdf.SaltLen used by
// the streaming container (the envelope inlines a larger salt to match the
// volume header's own 32-byte KDF salt convention).
const volumeSaltSize = 32
