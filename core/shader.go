// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"strings"

	vk "github.com/vulkan-go/vulkan"
)

// shaderSuffix is the file suffix compiled SPIR-V modules carry.
const shaderSuffix = ".spv"

// shaderTypeFromName reads the pipeline stage out of a shader name of
// the form <base>.<stage>.spv.
func shaderTypeFromName(name string) ShaderType {
	trimmed := strings.TrimSuffix(name, shaderSuffix)
	parts := strings.Split(trimmed, ".")
	switch parts[len(parts)-1] {
	case "vert":
		return VertexShaderType
	case "frag":
		return FragmentShaderType
	default:
		return UnknownShaderType
	}
}

// NewVulkanShader creates a shader module from SPIR-V contents.
func NewVulkanShader(name string, shaderType ShaderType, contents []byte, device vk.Device) (Shader, error) {
	if len(contents) == 0 || len(contents)%4 != 0 {
		return nil, errors.New("shader contents are not valid SPIR-V: " + name)
	}

	smci := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(contents)),
		PCode:    SliceUint32(contents),
	}

	var shaderModule vk.ShaderModule
	if err := vk.Error(vk.CreateShaderModule(device, &smci, nil, &shaderModule)); err != nil {
		return nil, errors.New("vk.CreateShaderModule(): " + err.Error())
	}

	return &VulkanShader{
		name:       name,
		shaderType: shaderType,
		shader:     shaderModule,
		device:     device,
	}, nil
}

// VulkanShader is the Vulkan implementation of Shader
type VulkanShader struct {
	Shader
	Destroyable

	name       string
	shaderType ShaderType

	device vk.Device
	shader vk.ShaderModule
}

// Type implements interface
func (v VulkanShader) Type() ShaderType {
	return v.shaderType
}

// Name implements interface
func (v VulkanShader) Name() string {
	return v.name
}

// ShaderModule implements interface
func (v VulkanShader) ShaderModule() interface{} {
	return v.shader
}

// Destroy implements interface
func (v VulkanShader) Destroy() {
	vk.DestroyShaderModule(v.device, v.shader, nil)
}
