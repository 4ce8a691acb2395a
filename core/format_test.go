// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	vk "github.com/vulkan-go/vulkan"

	"github.com/plume-gfx/plume/core"
)

func TestAspectMask(t *testing.T) {
	c := qt.New(t)

	depthOnly := vk.ImageAspectFlags(vk.ImageAspectDepthBit)
	depthStencil := vk.ImageAspectFlags(vk.ImageAspectDepthBit | vk.ImageAspectStencilBit)
	color := vk.ImageAspectFlags(vk.ImageAspectColorBit)

	cases := []struct {
		name   string
		format vk.Format
		want   vk.ImageAspectFlags
	}{
		{"D16Unorm", vk.FormatD16Unorm, depthOnly},
		{"D32Sfloat", vk.FormatD32Sfloat, depthOnly},
		{"D16UnormS8Uint", vk.FormatD16UnormS8Uint, depthStencil},
		{"D24UnormS8Uint", vk.FormatD24UnormS8Uint, depthStencil},
		{"D32SfloatS8Uint", vk.FormatD32SfloatS8Uint, depthStencil},
		{"B8g8r8a8Unorm", vk.FormatB8g8r8a8Unorm, color},
		{"R8g8b8a8Unorm", vk.FormatR8g8b8a8Unorm, color},
		// Stencil-only formats are outside the depth set, so they
		// classify as color like any other non-depth format.
		{"S8Uint", vk.FormatS8Uint, color},
		{"Undefined", vk.FormatUndefined, color},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(core.AspectMask(tc.format), qt.Equals, tc.want)
		})
	}
}

func TestIsDepthFormat(t *testing.T) {
	c := qt.New(t)
	c.Assert(core.IsDepthFormat(vk.FormatD16Unorm), qt.IsTrue)
	c.Assert(core.IsDepthFormat(vk.FormatD32SfloatS8Uint), qt.IsTrue)
	c.Assert(core.IsDepthFormat(vk.FormatB8g8r8a8Unorm), qt.IsFalse)
	c.Assert(core.IsDepthFormat(vk.FormatS8Uint), qt.IsFalse)
}

func TestIsStencilFormat(t *testing.T) {
	c := qt.New(t)
	c.Assert(core.IsStencilFormat(vk.FormatD24UnormS8Uint), qt.IsTrue)
	c.Assert(core.IsStencilFormat(vk.FormatD16Unorm), qt.IsFalse)
	c.Assert(core.IsStencilFormat(vk.FormatD32Sfloat), qt.IsFalse)
}
