// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package stream

import "fmt"

// MinChunkSize is the smallest permitted StreamConfig chunk size.
const MinChunkSize = 4096

// MaxChunkSize is the largest permitted StreamConfig chunk size.
const MaxChunkSize = 16 * 1024 * 1024

// DefaultChunkSize is used by DefaultStreamConfig.
const DefaultChunkSize = 1024 * 1024

// StreamConfig tunes a single encode operation. It is a value type:
// constructed once by NewStreamConfig, validated at construction, and never
// mutated afterwards.
type StreamConfig struct {
	chunkSize uint32
	compress  bool
}

// ChunkSize returns the configured plaintext chunk size.
func (c StreamConfig) ChunkSize() uint32 { return c.chunkSize }

// Compress reports whether pre-encryption compression is enabled.
func (c StreamConfig) Compress() bool { return c.compress }

// Option configures a StreamConfig at construction time.
type Option func(*StreamConfig)

// WithCompression enables gzip compression of each plaintext chunk before
// AEAD sealing.
func WithCompression() Option {
	return func(c *StreamConfig) { c.compress = true }
}

// NewStreamConfig validates chunkSize against [MinChunkSize, MaxChunkSize]
// and applies opts.
func NewStreamConfig(chunkSize uint32, opts ...Option) (StreamConfig, error) {
	if chunkSize < MinChunkSize || chunkSize > MaxChunkSize {
		return StreamConfig{}, fmt.Errorf("%w: chunk size %d outside [%d, %d]", ErrCryptography, chunkSize, MinChunkSize, MaxChunkSize)
	}

	cfg := StreamConfig{chunkSize: chunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg, nil
}

// DefaultStreamConfig returns the balanced default: 1 MiB chunks, no
// compression.
func DefaultStreamConfig() StreamConfig {
	cfg, _ := NewStreamConfig(DefaultChunkSize)
	return cfg
}

// CalculateChunks returns ceil(n / chunkSize), matching the encoder's
// total_chunks computation. CalculateChunks(0, c) == 0 for any chunkSize > 0.
func CalculateChunks(n uint64, chunkSize uint32) uint64 {
	if n == 0 {
		return 0
	}
	cs := uint64(chunkSize)
	return (n + cs - 1) / cs
}
