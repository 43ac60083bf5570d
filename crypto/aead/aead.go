// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package aead provides the symmetric authenticated-encryption contract
// consumed by the streaming container and the host envelope, keyed by a tag
// byte so a stored CipherAlgorithm value can be resolved back to an
// implementation.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/sealedstream/cryptor/log"
)

// KeySize is the required symmetric key length for every registered cipher.
const KeySize = 32

// NonceSize is the required nonce length for every registered cipher.
const NonceSize = 12

// TagSize is the trailing authentication tag length appended to ciphertext.
const TagSize = 16

// CipherAlgorithm identifies an AEAD construction by a stable byte tag. It
// is the on-disk representation stored in both the volume header and any
// future stream header extension.
type CipherAlgorithm uint8

// Aes256Gcm is the sole registered cipher: AES-256 in Galois/Counter Mode.
const Aes256Gcm CipherAlgorithm = 1

// AEAD is the capability contract the core composes with the KDF: seal and
// open a single plaintext/ciphertext payload under a key and nonce, with
// optional associated data bound into the authentication tag.
type AEAD interface {
	// Seal encrypts and authenticates plaintext, appending the result (and
	// its tag) to dst, and returns the updated slice.
	Seal(dst, nonce, plaintext, aad []byte) ([]byte, error)
	// Open authenticates and decrypts ciphertext (which must include its
	// trailing tag), appending the recovered plaintext to dst.
	Open(dst, nonce, ciphertext, aad []byte) ([]byte, error)
}

// ErrUnsupportedCipher is returned when a CipherAlgorithm tag has no
// registered implementation.
var ErrUnsupportedCipher = errors.New("aead: unsupported cipher algorithm")

// registry maps a CipherAlgorithm tag to its constructor. Exactly one entry
// is populated today; adding a second cipher is a one-function change, and
// reading an unregistered tag is always an error.
var registry = map[CipherAlgorithm]func(key []byte) (AEAD, error){
	Aes256Gcm: newAES256GCM,
}

// New resolves alg to its AEAD implementation, keyed by key. key must be
// exactly KeySize bytes.
func New(alg CipherAlgorithm, key []byte) (AEAD, error) {
	ctor, ok := registry[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedCipher, alg)
	}
	return ctor(key)
}

// -----------------------------------------------------------------------------

// aes256GCM implements AEAD using the standard library's AES-256-GCM, the
// same construction the teacher's own d5 cipher suite uses: a hardware
// accelerated, side-channel-hardened implementation that no third-party
// dependency in scope improves on.
type aes256GCM struct {
	gcm cipher.AEAD
}

func newAES256GCM(key []byte) (AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("aead: key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aead: unable to initialize block cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("aead: unable to initialize GCM mode: %w", err)
	}

	return &aes256GCM{gcm: gcm}, nil
}

func (a *aes256GCM) Seal(dst, nonce, plaintext, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("aead: nonce must be %d bytes, got %d", NonceSize, len(nonce))
	}
	return a.gcm.Seal(dst, nonce, plaintext, aad), nil
}

func (a *aes256GCM) Open(dst, nonce, ciphertext, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("aead: nonce must be %d bytes, got %d", NonceSize, len(nonce))
	}

	out, err := a.gcm.Open(dst, nonce, ciphertext, aad)
	if err != nil {
		log.Level(log.DebugLevel).Message("aead: authentication failure during open")
		return nil, fmt.Errorf("aead: authentication failed: %w", err)
	}
	return out, nil
}
