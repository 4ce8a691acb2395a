// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model_test

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	qt "github.com/frankban/quicktest"
	glm "github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"

	"github.com/plume-gfx/plume/model"
)

func TestVertexDescriptions(t *testing.T) {
	c := qt.New(t)

	bindings := model.VertexBindingDescriptions()
	c.Assert(len(bindings), qt.Equals, 1)
	c.Assert(bindings[0].Stride, qt.Equals, uint32(unsafe.Sizeof(model.Vertex{})))
	c.Assert(bindings[0].InputRate, qt.Equals, vk.VertexInputRateVertex)

	attributes := model.VertexAttributeDescriptions()
	c.Assert(len(attributes), qt.Equals, 2)
	c.Assert(attributes[0].Location, qt.Equals, uint32(0))
	c.Assert(attributes[0].Format, qt.Equals, vk.FormatR32g32b32Sfloat)
	c.Assert(attributes[0].Offset, qt.Equals, uint32(0))
	c.Assert(attributes[1].Location, qt.Equals, uint32(1))
	c.Assert(attributes[1].Format, qt.Equals, vk.FormatR32g32b32a32Sfloat)
	c.Assert(attributes[1].Offset, qt.Equals, uint32(unsafe.Offsetof(model.Vertex{}.Color)))
}

func TestBytes(t *testing.T) {
	c := qt.New(t)

	mesh := model.Triangle()
	data := model.Bytes(mesh)
	c.Assert(len(data), qt.Equals, len(mesh)*int(unsafe.Sizeof(model.Vertex{})))

	c.Assert(model.Bytes(nil), qt.IsNil)
}

func TestUniformBytes(t *testing.T) {
	c := qt.New(t)

	var u model.Uniform
	data := model.UniformBytes(&u)
	c.Assert(len(data), qt.Equals, int(unsafe.Sizeof(model.Uniform{})))
}

func TestUniformBytesCarryMatrixContents(t *testing.T) {
	c := qt.New(t)

	u := model.Uniform{
		Model:      glm.Ident4(),
		View:       glm.Ident4(),
		Projection: glm.Ident4(),
	}
	data := model.UniformBytes(&u)

	at := func(idx int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[idx*4:]))
	}

	// Column-major identity: ones on the diagonal of each matrix
	for _, base := range []int{0, 16, 32} {
		for _, diag := range []int{0, 5, 10, 15} {
			c.Assert(at(base+diag), qt.Equals, float32(1))
		}
		c.Assert(at(base+1), qt.Equals, float32(0))
	}
}
