// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sealedstream/cryptor"
	"github.com/sealedstream/cryptor/crypto/aead"
	"github.com/sealedstream/cryptor/crypto/kdf"
	"github.com/sealedstream/cryptor/crypto/noncederive"
	"github.com/sealedstream/cryptor/generator/randomness"
	"github.com/sealedstream/cryptor/log"
)

// compressedMetadata is written into the header's metadata field when the
// caller enables compression and supplies no metadata of their own, so a
// decoder without prior knowledge of the config can still invert it.
// Caller-supplied metadata is written unchanged and, with compression
// enabled, must itself contain `"compressed":true` or Encode fails.
const compressedMetadata = `{"compressed":true}`

// Encode writes a complete v2 stream to dst: a StreamHeader followed by
// exactly cfg's derived total_chunks chunk records, sealing each plaintext
// chunk read from src under a key derived from password.
//
// originalSize must equal the number of bytes src will yield; the minimal
// encoder requires the plaintext length to be known up front (spec's
// streaming container does not support unsized sources).
func Encode(dst io.Writer, src io.Reader, originalSize uint64, password []byte, cfg StreamConfig, kdfParams kdf.Params, metadata string) error {
	salt, err := kdf.GenerateSalt()
	if err != nil {
		return fmt.Errorf("%w: unable to generate salt: %w", ErrCryptography, err)
	}

	baseNonceSlice, err := randomness.Bytes(baseNonceSize)
	if err != nil {
		return fmt.Errorf("%w: unable to generate base nonce: %w", ErrCryptography, err)
	}
	var baseNonce [baseNonceSize]byte
	copy(baseNonce[:], baseNonceSlice)

	effectiveMetadata := metadata
	if cfg.Compress() {
		switch {
		case effectiveMetadata == "":
			effectiveMetadata = compressedMetadata
		case !strings.Contains(effectiveMetadata, `"compressed":true`):
			return fmt.Errorf("%w: compression enabled but metadata does not record %s", ErrCryptography, compressedMetadata)
		}
	}

	totalChunks := CalculateChunks(originalSize, cfg.ChunkSize())

	header := StreamHeader{
		Salt:         salt,
		BaseNonce:    baseNonce,
		ChunkSize:    cfg.ChunkSize(),
		TotalChunks:  totalChunks,
		OriginalSize: originalSize,
		Metadata:     effectiveMetadata,
	}
	if _, err := header.WriteTo(dst); err != nil {
		return err
	}

	lb, err := kdf.DeriveKey(password, salt, kdfParams)
	if err != nil {
		return fmt.Errorf("%w: unable to derive key: %w", ErrCryptography, err)
	}
	defer lb.Destroy()

	cipher, err := aead.New(aead.Aes256Gcm, lb.Bytes())
	if err != nil {
		return fmt.Errorf("%w: unable to initialize cipher: %w", ErrCryptography, err)
	}

	var totalRead uint64
	chunkBuf := make([]byte, cfg.ChunkSize())

	for i := uint64(0); i < totalChunks; i++ {
		n, err := io.ReadFull(src, chunkBuf)
		switch {
		case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
			// Short final chunk; fall through with n bytes read.
		case err != nil:
			return fmt.Errorf("%w: unable to read plaintext chunk %d: %w", ErrIO, i, err)
		}
		totalRead += uint64(n)

		plaintext := chunkBuf[:n]
		if cfg.Compress() {
			plaintext, err = compressChunk(plaintext)
			if err != nil {
				return fmt.Errorf("%w: unable to compress chunk %d: %w", ErrCryptography, i, err)
			}
		}

		nonce := noncederive.DeriveChunkNonce(baseNonce, i)

		payload, err := cipher.Seal(nil, nonce[:], plaintext, nil)
		if err != nil {
			return fmt.Errorf("%w: unable to seal chunk %d: %w", ErrCryptography, i, err)
		}

		if err := writeChunkRecord(dst, i, payload); err != nil {
			return err
		}

		if cryptor.InDevMode() {
			log.Level(log.DebugLevel).Field("chunk_index", i).Field("plaintext_bytes", n).Message("stream: chunk sealed")
		}
	}

	if totalRead != originalSize {
		return fmt.Errorf("%w: read %d bytes, expected original_size %d", ErrIO, totalRead, originalSize)
	}

	log.Level(log.DebugLevel).Field("total_chunks", totalChunks).Message("stream: encode complete")

	return nil
}

func compressChunk(plaintext []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(plaintext); err != nil {
		return nil, fmt.Errorf("unable to write to gzip writer: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("unable to close gzip writer: %w", err)
	}
	return buf.Bytes(), nil
}
