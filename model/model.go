// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package model holds the vertex and uniform value types the renderer
// feeds to its pipelines.
package model

import (
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"
)

// Vertex is a model vertex
type Vertex struct {
	Pos   glm.Vec3
	Color glm.Vec4
}

// Uniform defines a model-view-projection object
type Uniform struct {
	Model      glm.Mat4
	View       glm.Mat4
	Projection glm.Mat4
}

// VertexBindingDescriptions return Vulkan vertex descriptors
func VertexBindingDescriptions() []vk.VertexInputBindingDescription {
	return []vk.VertexInputBindingDescription{{
		Binding:   0,
		Stride:    uint32(unsafe.Sizeof(Vertex{})),
		InputRate: vk.VertexInputRateVertex,
	}}
}

// VertexAttributeDescriptions return Vulkan attribute descriptors
func VertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Binding:  0,
			Location: 0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Pos)),
		},
		{
			Binding:  0,
			Location: 1,
			Format:   vk.FormatR32g32b32a32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Color)),
		},
	}
}

// Triangle returns a single colored triangle in clip space, the
// placeholder mesh drawn until real geometry is loaded.
func Triangle() []Vertex {
	return []Vertex{
		{Pos: glm.Vec3{0, -0.5, 0}, Color: glm.Vec4{1, 0, 0, 1}},
		{Pos: glm.Vec3{0.5, 0.5, 0}, Color: glm.Vec4{0, 1, 0, 1}},
		{Pos: glm.Vec3{-0.5, 0.5, 0}, Color: glm.Vec4{0, 0, 1, 1}},
	}
}

// Bytes reslices vertices into raw bytes for buffer uploads.
func Bytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	const m = 0x7fffffff
	size := len(vertices) * int(unsafe.Sizeof(Vertex{}))
	return (*[m]byte)(unsafe.Pointer(&vertices[0]))[:size]
}

// UniformBytes reslices a uniform object into raw bytes.
func UniformBytes(u *Uniform) []byte {
	const m = 0x7fffffff
	return (*[m]byte)(unsafe.Pointer(u))[:unsafe.Sizeof(Uniform{})]
}
