// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// SamplerOptions describe how an image is filtered and addressed when
// sampled in a shader.
type SamplerOptions struct {
	MagFilter vk.Filter
	MinFilter vk.Filter

	AddressModeU vk.SamplerAddressMode
	AddressModeV vk.SamplerAddressMode
	AddressModeW vk.SamplerAddressMode

	// MaxAnisotropy enables anisotropic filtering when above zero
	MaxAnisotropy float32

	BorderColor vk.BorderColor
	MipmapMode  vk.SamplerMipmapMode
}

// DefaultSamplerOptions returns the options used for texture sampling
// unless a caller asks otherwise: linear filtering, repeat addressing
// and 16x anisotropy.
func DefaultSamplerOptions() SamplerOptions {
	return SamplerOptions{
		MagFilter:     vk.FilterLinear,
		MinFilter:     vk.FilterLinear,
		AddressModeU:  vk.SamplerAddressModeRepeat,
		AddressModeV:  vk.SamplerAddressModeRepeat,
		AddressModeW:  vk.SamplerAddressModeRepeat,
		MaxAnisotropy: 16,
		BorderColor:   vk.BorderColorIntOpaqueBlack,
		MipmapMode:    vk.SamplerMipmapModeLinear,
	}
}

// NewVulkanSampler creates a sampler owned by the given device.
func NewVulkanSampler(device vk.Device, opts SamplerOptions) (*VulkanSampler, error) {
	anisotropyEnable := vk.False
	if opts.MaxAnisotropy > 0 {
		anisotropyEnable = vk.True
	}

	sci := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               opts.MagFilter,
		MinFilter:               opts.MinFilter,
		AddressModeU:            opts.AddressModeU,
		AddressModeV:            opts.AddressModeV,
		AddressModeW:            opts.AddressModeW,
		AnisotropyEnable:        vk.Bool32(anisotropyEnable),
		MaxAnisotropy:           opts.MaxAnisotropy,
		BorderColor:             opts.BorderColor,
		UnnormalizedCoordinates: vk.False,
		CompareEnable:           vk.False,
		CompareOp:               vk.CompareOpAlways,
		MipmapMode:              opts.MipmapMode,
	}

	var sampler vk.Sampler
	if err := vk.Error(vk.CreateSampler(device, &sci, nil, &sampler)); err != nil {
		return nil, errors.New("vk.CreateSampler(): " + err.Error())
	}

	return &VulkanSampler{
		device:  device,
		sampler: sampler,
	}, nil
}

// VulkanSampler owns a sampler handle
type VulkanSampler struct {
	Destroyable

	device  vk.Device
	sampler vk.Sampler
}

// Sampler returns the underlying handle
func (v VulkanSampler) Sampler() vk.Sampler {
	return v.sampler
}

// Destroy implements interface
func (v VulkanSampler) Destroy() {
	vk.DestroySampler(v.device, v.sampler, nil)
}
