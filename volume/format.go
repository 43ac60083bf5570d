// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package volume

import (
	"fmt"
	"io"

	"github.com/sealedstream/cryptor/ioutil/atomic"
)

// Format writes a fresh header plus a zero-filled body of volumeSize bytes
// to path, using an atomic whole-file rewrite so header creation can never
// leave a partially-written volume behind.
func Format(path string, volumeSize uint64, sectorSize uint32, salt [SaltSize]byte, headerIV [HeaderIVSize]byte) (*VolumeHeader, error) {
	header, err := New(volumeSize, sectorSize, salt, headerIV)
	if err != nil {
		return nil, err
	}

	headerBytes, err := header.ToBytes()
	if err != nil {
		return nil, err
	}

	content := io.MultiReader(
		newSliceReader(headerBytes[:]),
		io.LimitReader(zeroReader{}, int64(volumeSize)),
	)

	if err := atomic.WriteFile(path, content); err != nil {
		return nil, fmt.Errorf("volume: unable to format volume at %q: %w", path, err)
	}

	return header, nil
}

func newSliceReader(b []byte) io.Reader {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &sliceReader{data: cp}
}

type sliceReader struct {
	data []byte
	off  int
}

func (r *sliceReader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.off:])
	r.off += n
	return n, nil
}

// zeroReader yields an endless stream of zero bytes, bounded by the caller
// via io.LimitReader.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
