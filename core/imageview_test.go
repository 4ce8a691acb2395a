// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	vk "github.com/vulkan-go/vulkan"

	"github.com/plume-gfx/plume/core"
)

func TestDeriveImageViewSpec(t *testing.T) {
	c := qt.New(t)

	c.Run("Plain2dColor", func(c *qt.C) {
		spec, err := core.DeriveImageViewSpec(vk.FormatB8g8r8a8Unorm, vk.ImageType2d, false, 0, 1, 0, 1)
		c.Assert(err, qt.IsNil)
		c.Assert(spec.ViewType, qt.Equals, vk.ImageViewType2d)
		c.Assert(spec.AspectMask, qt.Equals, vk.ImageAspectFlags(vk.ImageAspectColorBit))
		c.Assert(spec.LayerCount, qt.Equals, uint32(1))
	})

	c.Run("2dArray", func(c *qt.C) {
		spec, err := core.DeriveImageViewSpec(vk.FormatB8g8r8a8Unorm, vk.ImageType2d, true, 2, 4, 0, 1)
		c.Assert(err, qt.IsNil)
		c.Assert(spec.ViewType, qt.Equals, vk.ImageViewType2dArray)
		c.Assert(spec.BaseArrayLayer, qt.Equals, uint32(2))
		c.Assert(spec.LayerCount, qt.Equals, uint32(4))
	})

	c.Run("1dAnd1dArray", func(c *qt.C) {
		spec, err := core.DeriveImageViewSpec(vk.FormatR8g8b8a8Unorm, vk.ImageType1d, false, 0, 1, 0, 1)
		c.Assert(err, qt.IsNil)
		c.Assert(spec.ViewType, qt.Equals, vk.ImageViewType1d)

		spec, err = core.DeriveImageViewSpec(vk.FormatR8g8b8a8Unorm, vk.ImageType1d, true, 0, 3, 0, 1)
		c.Assert(err, qt.IsNil)
		c.Assert(spec.ViewType, qt.Equals, vk.ImageViewType1dArray)
	})

	c.Run("3dIgnoresArrayFlag", func(c *qt.C) {
		// Arrays of 3D images do not exist, the flag cannot promote
		// the view type.
		spec, err := core.DeriveImageViewSpec(vk.FormatR8g8b8a8Unorm, vk.ImageType3d, true, 0, 1, 0, 1)
		c.Assert(err, qt.IsNil)
		c.Assert(spec.ViewType, qt.Equals, vk.ImageViewType3d)
	})

	c.Run("DepthFormatGetsDepthAspect", func(c *qt.C) {
		spec, err := core.DeriveImageViewSpec(vk.FormatD24UnormS8Uint, vk.ImageType2d, false, 0, 1, 0, 1)
		c.Assert(err, qt.IsNil)
		c.Assert(spec.AspectMask, qt.Equals, vk.ImageAspectFlags(vk.ImageAspectDepthBit|vk.ImageAspectStencilBit))
	})

	c.Run("LayersOnNonArrayImage", func(c *qt.C) {
		_, err := core.DeriveImageViewSpec(vk.FormatB8g8r8a8Unorm, vk.ImageType2d, false, 0, 2, 0, 1)
		c.Assert(errors.Is(err, core.ErrInvalidArrayAccess), qt.IsTrue)

		_, err = core.DeriveImageViewSpec(vk.FormatB8g8r8a8Unorm, vk.ImageType2d, false, 1, 1, 0, 1)
		c.Assert(errors.Is(err, core.ErrInvalidArrayAccess), qt.IsTrue)
	})

	c.Run("MipRangePassedThrough", func(c *qt.C) {
		spec, err := core.DeriveImageViewSpec(vk.FormatB8g8r8a8Unorm, vk.ImageType2d, false, 0, 1, 3, 5)
		c.Assert(err, qt.IsNil)
		c.Assert(spec.BaseMipLevel, qt.Equals, uint32(3))
		c.Assert(spec.LevelCount, qt.Equals, uint32(5))
	})

	c.Run("UnmappedImageType", func(c *qt.C) {
		_, err := core.DeriveImageViewSpec(vk.FormatB8g8r8a8Unorm, vk.ImageType(99), false, 0, 1, 0, 1)
		c.Assert(errors.Is(err, core.ErrUnsupportedImageType), qt.IsTrue)
	})
}
