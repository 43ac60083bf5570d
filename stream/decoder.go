// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sealedstream/cryptor"
	"github.com/sealedstream/cryptor/crypto/aead"
	"github.com/sealedstream/cryptor/crypto/kdf"
	"github.com/sealedstream/cryptor/crypto/noncederive"
	"github.com/sealedstream/cryptor/ioutil"
	"github.com/sealedstream/cryptor/log"
)

// Decode reads a complete v2 stream from src, verifies and decrypts every
// chunk record in order, and writes the recovered plaintext to dst. It
// returns the parsed header for caller inspection (total_chunks, metadata,
// etc).
//
// State machine: ExpectHeader -> ExpectChunk(0..total_chunks) -> Done. Any
// short read, AEAD failure, or index mismatch aborts immediately; the
// caller must treat any plaintext already written to dst as corrupt.
func Decode(dst io.Writer, src io.Reader, password []byte, kdfParams kdf.Params) (*StreamHeader, error) {
	var header StreamHeader
	if _, err := header.ReadFrom(src); err != nil {
		return nil, err
	}

	lb, err := kdf.DeriveKey(password, header.Salt, kdfParams)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to derive key: %w", ErrCryptography, err)
	}
	defer lb.Destroy()

	cipher, err := aead.New(aead.Aes256Gcm, lb.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: unable to initialize cipher: %w", ErrCryptography, err)
	}

	compressed := strings.Contains(header.Metadata, `"compressed":true`)
	maxDataSize := uint64(header.ChunkSize) + uint64(header.ChunkSize)/1024 + uint64(aead.TagSize) + chunkOverheadSlack

	for i := uint64(0); i < header.TotalChunks; i++ {
		payload, err := readChunkRecord(src, i, maxDataSize)
		if err != nil {
			return nil, err
		}

		nonce := noncederive.DeriveChunkNonce(header.BaseNonce, i)

		plaintext, err := cipher.Open(nil, nonce[:], payload, nil)
		if err != nil {
			log.Level(log.DebugLevel).Field("chunk_index", i).Message("stream: chunk authentication failed")
			return nil, fmt.Errorf("%w: chunk %d authentication failed: %w", ErrCryptography, i, err)
		}

		if compressed {
			plaintext, err = decompressChunk(plaintext)
			if err != nil {
				return nil, fmt.Errorf("%w: unable to decompress chunk %d: %w", ErrInvalidFormat, i, err)
			}
		}

		if _, err := dst.Write(plaintext); err != nil {
			return nil, fmt.Errorf("%w: unable to write plaintext chunk %d: %w", ErrIO, i, err)
		}

		if cryptor.InDevMode() {
			log.Level(log.DebugLevel).Field("chunk_index", i).Field("plaintext_bytes", len(plaintext)).Message("stream: chunk verified")
		}
	}

	// Trailing bytes after the last declared chunk are a format error.
	var trailer [1]byte
	if n, _ := io.ReadFull(src, trailer[:]); n > 0 {
		return nil, fmt.Errorf("%w: trailing bytes after last chunk", ErrInvalidFormat)
	}

	return &header, nil
}

// DecodeWithTimeout behaves like Decode, but aborts with
// ioutil.ErrReaderTimedOut if src stalls for longer than timeout on any
// single read. Use this when src is backed by a live, potentially slow or
// stalled producer (a network socket, a pipe) rather than an in-memory or
// on-disk source, to mitigate a slow-producer denial of service.
func DecodeWithTimeout(dst io.Writer, src io.Reader, password []byte, kdfParams kdf.Params, timeout time.Duration) (*StreamHeader, error) {
	return Decode(dst, ioutil.TimeoutReader(src, timeout), password, kdfParams)
}

func decompressChunk(compressed []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("unable to open gzip reader: %w", err)
	}
	defer gr.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, gr); err != nil {
		return nil, fmt.Errorf("unable to read gzip stream: %w", err)
	}
	return buf.Bytes(), nil
}
