// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	vk "github.com/vulkan-go/vulkan"
)

// IsDepthFormat reports whether format carries a depth aspect. The set
// is closed: these are the only depth-capable formats the layer deals
// in.
func IsDepthFormat(format vk.Format) bool {
	switch format {
	case vk.FormatD16Unorm,
		vk.FormatD16UnormS8Uint,
		vk.FormatD24UnormS8Uint,
		vk.FormatD32Sfloat,
		vk.FormatD32SfloatS8Uint:
		return true
	}
	return false
}

// IsStencilFormat reports whether format carries a stencil aspect next
// to its depth aspect. Also a closed set.
func IsStencilFormat(format vk.Format) bool {
	switch format {
	case vk.FormatD16UnormS8Uint,
		vk.FormatD24UnormS8Uint,
		vk.FormatD32SfloatS8Uint:
		return true
	}
	return false
}

// AspectMask derives the image aspect flags for format. Every image
// view created through this layer derives its mask here, so the
// color/depth/stencil classification cannot drift between call sites.
func AspectMask(format vk.Format) vk.ImageAspectFlags {
	if !IsDepthFormat(format) {
		return vk.ImageAspectFlags(vk.ImageAspectColorBit)
	}

	mask := vk.ImageAspectFlags(vk.ImageAspectDepthBit)
	if IsStencilFormat(format) {
		mask |= vk.ImageAspectFlags(vk.ImageAspectStencilBit)
	}
	return mask
}
