// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4"
)

// Open reads the archive layout from r. It verifies the magic and
// decodes the index; entry data is only touched when asked for.
func Open(r io.ReaderAt) (*Archive, error) {
	magicBuf := make([]byte, magicLength)
	if _, err := r.ReadAt(magicBuf, 0); err != nil {
		return nil, ErrFormat
	}
	if string(magicBuf) != magic {
		return nil, ErrFormat
	}

	lengthBuf := make([]byte, headerLengthBytes)
	if _, err := r.ReadAt(lengthBuf, magicLength); err != nil {
		return nil, ErrFormat
	}
	headerSize := int64(binary.LittleEndian.Uint64(lengthBuf))

	headerBuf := make([]byte, headerSize)
	if _, err := r.ReadAt(headerBuf, magicLength+headerLengthBytes); err != nil {
		return nil, ErrFormat
	}

	var header Header
	if err := decode(&header, headerBuf); err != nil {
		return nil, ErrFormat
	}

	return &Archive{
		reader:    r,
		header:    header,
		dataStart: magicLength + headerLengthBytes + headerSize,
	}, nil
}

// Archive provides concurrent io over a pak file. Every entry gets its
// own reader, nothing is shared between them besides the underlying
// io.ReaderAt.
type Archive struct {
	reader    io.ReaderAt
	header    Header
	dataStart int64
}

// Names returns the names of every entry in index order.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.header.Index))
	for _, e := range a.header.Index {
		names = append(names, e.Name)
	}
	return names
}

// ReadAll returns the decompressed contents of the named entry.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	entry, ok := a.entry(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	compressed := make([]byte, entry.CompressedSize)
	if _, err := a.reader.ReadAt(compressed, a.dataStart+entry.Offset); err != nil {
		return nil, err
	}

	out := make([]byte, entry.Size)
	if _, err := io.ReadFull(lz4.NewReader(bytes.NewReader(compressed)), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Open returns a Reader that decompresses the named entry on the fly.
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.entry(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	section := io.NewSectionReader(a.reader, a.dataStart+entry.Offset, entry.CompressedSize)
	return &Reader{
		zr:   lz4.NewReader(section),
		size: entry.Size,
	}, nil
}

func (a *Archive) entry(name string) (Entry, bool) {
	for _, e := range a.header.Index {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Reader streams one decompressed entry of an Archive.
type Reader struct {
	zr   *lz4.Reader
	size int64
}

// Read reads already decompressed data.
func (r *Reader) Read(p []byte) (int, error) {
	return r.zr.Read(p)
}

// Size returns the decompressed size of the entry.
func (r *Reader) Size() int64 {
	return r.size
}
