// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package asset implements an lz4 backed archive format for streaming
// GPU assets such as compiled shaders and textures. The index sits at
// the front of the file, so every entry location is known before any
// data is read. Entries are compressed individually rather than the
// archive as a whole, which costs some space but lets each entry be
// decompressed straight from its offset. Reads are safe to perform
// concurrently.
package asset

import (
	"bytes"
	"encoding/gob"
	"errors"
)

// Archive layout constants.
const (
	magic             = "PAK\x00"
	magicLength       = 4
	headerLengthBytes = 8
)

// package errors
var (
	ErrFormat   = errors.New("corrupted or not a pak archive")
	ErrNotFound = errors.New("no entry with that name in the archive")
)

// Entry is info for one file in the archive index.
type Entry struct {
	Name string

	// Offset is relative to the start of the data section, which
	// keeps the header size independent of where entries land.
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the archive header. Archives are versioned and cannot be
// appended to once written.
type Header struct {
	Author  string
	Created int64
	Version int64
	Index   []Entry
}

func encode(data interface{}) ([]byte, error) {
	var encoded bytes.Buffer
	if err := gob.NewEncoder(&encoded).Encode(data); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func decode(obj interface{}, bts []byte) error {
	return gob.NewDecoder(bytes.NewReader(bts)).Decode(obj)
}
