// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core is a thin convenience layer over the Vulkan API. It
// wraps the opaque handles of an application (instance, device,
// swapchain, shader modules, samplers) in owning types, and hosts the
// pure selection logic that decides how a presentable image chain is
// configured for a given surface.
package core

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// Destroyable owns native handles that must be released explicitly.
// Creation and destruction of a Destroyable belong to one goroutine,
// mirroring the API's rules for pool-adjacent objects.
type Destroyable interface {
	Destroy()
}

// Instance describes a Vulkan instance and supporting methods.
// Once created it is ready to use.
type Instance interface {
	// PhysicalDevicesInfo returns a struct for each physical device
	// along with info about those devices
	PhysicalDevicesInfo() []PhysicalDeviceInfo

	// AvailableDevices returns handles of physical devices
	// from the Vulkan API
	AvailableDevices() []vk.PhysicalDevice

	// SetSurface sets the window surface for rendering
	SetSurface(unsafe.Pointer)

	// Surface returns the window surface, if it's not set
	// it should return a valid but empty surface
	Surface() vk.Surface

	// Extensions returns enabled instance extensions
	Extensions() []string

	// Inner returns the inner handle of the underlying API
	Inner() interface{}

	// Destroy destroys internal members
	Destroy()
}

// PhysicalDeviceInfo describes available properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	Name          string
	Invalid       bool
	Extensions    []string
	Layers        []string
	Memory        uint
}

// Renderer describes the rendering machinery.
// It's created only with internal values set,
// it needs to be initialised with Initialise() before use.
type Renderer interface {
	// Initialise sets up the configured rendering pipeline
	Initialise() error

	// DeviceIsSuitable checks if the device given is suitable for the
	// rendering pipeline. If not suitable string contains the reason
	DeviceIsSuitable(vk.PhysicalDevice) (bool, string)

	// Draw submits and presents a single frame
	Draw() error

	// SurfaceConfig returns the configuration selected for the
	// current presentable image chain
	SurfaceConfig() SurfaceConfig

	// Destroy destroys internal members
	Destroy()
}

// Shader is a wrapped shader module
type Shader interface {
	// Type returns the pipeline stage the shader belongs to
	Type() ShaderType

	// Name returns the name the shader was loaded under
	Name() string

	// ShaderModule is an accessor to the underlying module handle
	ShaderModule() interface{}

	// Destroy destroys internal members
	Destroy()
}

// ShaderType represents the type of shader thats loaded
type ShaderType int

// Identifies shader objects with their types
const (
	VertexShaderType ShaderType = iota
	FragmentShaderType
	UnknownShaderType
)
