// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"encoding/binary"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/plume-gfx/plume/core"
)

func TestSliceUint32(t *testing.T) {
	c := qt.New(t)

	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data, 0x07230203)
	binary.LittleEndian.PutUint32(data[4:], 0x00010000)

	words := core.SliceUint32(data)
	c.Assert(len(words), qt.Equals, 2)
	c.Assert(words[0], qt.Equals, uint32(0x07230203))
	c.Assert(words[1], qt.Equals, uint32(0x00010000))
}

func BenchmarkSliceUint32Small(b *testing.B) {
	data := make([]byte, 100)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Medium(b *testing.B) {
	data := make([]byte, 1000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Big(b *testing.B) {
	data := make([]byte, 100000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}
