// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sealedstream/cryptor/ioutil"
)

// chunkOverheadSlack is the fixed part of the margin by which a single
// ciphertext payload may exceed the configured chunk size. The decoder adds
// it to the AEAD tag and a chunkSize/1024 term that scales with gzip's
// per-block framing overhead on incompressible input, closing the
// "implausibly large data_size" gap the decoder must defend against.
const chunkOverheadSlack = 1024

func writeChunkRecord(w io.Writer, index uint64, payload []byte) error {
	var prefix [12]byte
	binary.LittleEndian.PutUint64(prefix[0:8], index)
	binary.LittleEndian.PutUint32(prefix[8:12], uint32(len(payload)))

	if _, err := w.Write(prefix[:]); err != nil {
		return fmt.Errorf("%w: unable to write chunk record prefix: %w", ErrIO, err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("%w: unable to write chunk record payload: %w", ErrIO, err)
	}
	return nil
}

// readChunkRecord reads one chunk record, rejecting an index that doesn't
// match expectedIndex (order/truncation defense) and a data_size exceeding
// maxDataSize.
func readChunkRecord(r io.Reader, expectedIndex uint64, maxDataSize uint64) ([]byte, error) {
	observedIndex, _, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	if observedIndex != expectedIndex {
		return nil, fmt.Errorf("%w: chunk index mismatch: expected %d, got %d", ErrInvalidFormat, expectedIndex, observedIndex)
	}

	dataSize, _, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if uint64(dataSize) > maxDataSize {
		return nil, fmt.Errorf("%w: chunk data size %d exceeds plausible ceiling %d", ErrInvalidFormat, dataSize, maxDataSize)
	}

	var buf bytes.Buffer
	buf.Grow(int(dataSize))
	if _, err := ioutil.LimitCopy(&buf, io.LimitReader(r, int64(dataSize)), uint64(dataSize)); err != nil {
		return nil, fmt.Errorf("%w: unable to read chunk payload: %w", ErrIO, err)
	}
	if buf.Len() != int(dataSize) {
		return nil, fmt.Errorf("%w: truncated chunk payload: expected %d bytes, got %d", ErrIO, dataSize, buf.Len())
	}

	return buf.Bytes(), nil
}
