// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in the
// header, it is computed when the archive is written.
func NewBuilder(header Header) *Builder {
	return &Builder{header: header}
}

// Builder assembles an archive in memory. Entries are compressed as
// they are added, so Add blocks until lz4 finishes. It is safe to Add
// from multiple goroutines.
type Builder struct {
	header Header

	mutex   sync.Mutex
	entries []builderEntry
}

type builderEntry struct {
	name       string
	size       int64
	compressed []byte
}

// Add compresses data from r and appends it under the given name.
func (b *Builder) Add(name string, r io.Reader) error {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	size, err := io.Copy(zw, r)
	if err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.entries = append(b.entries, builderEntry{
		name:       name,
		size:       size,
		compressed: buf.Bytes(),
	})
	return nil
}

// WriteTo bundles everything added so far into a ready to use archive:
// magic, header length, the gob encoded header, then the compressed
// entries back to back.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	header.Index = make([]Entry, 0, len(b.entries))

	var offset int64
	for _, e := range b.entries {
		header.Index = append(header.Index, Entry{
			Name:           e.name,
			Offset:         offset,
			Size:           e.size,
			CompressedSize: int64(len(e.compressed)),
		})
		offset += int64(len(e.compressed))
	}

	rawHeader, err := encode(header)
	if err != nil {
		return 0, err
	}

	lengthBuf := make([]byte, headerLengthBytes)
	binary.LittleEndian.PutUint64(lengthBuf, uint64(len(rawHeader)))

	var written int64
	for _, chunk := range [][]byte{[]byte(magic), lengthBuf, rawHeader} {
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	for _, e := range b.entries {
		n, err := w.Write(e.compressed)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
