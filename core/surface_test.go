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

func capsWithCurrentExtent(w, h uint32) vk.SurfaceCapabilities {
	return vk.SurfaceCapabilities{
		MinImageCount: 2,
		MaxImageCount: 8,
		CurrentExtent: vk.Extent2D{Width: w, Height: h},
		MinImageExtent: vk.Extent2D{
			Width: 1, Height: 1,
		},
		MaxImageExtent: vk.Extent2D{
			Width: 8192, Height: 8192,
		},
	}
}

func capsWithUndefinedExtent(minW, minH, maxW, maxH uint32) vk.SurfaceCapabilities {
	caps := capsWithCurrentExtent(vk.MaxUint32, vk.MaxUint32)
	caps.MinImageExtent = vk.Extent2D{Width: minW, Height: minH}
	caps.MaxImageExtent = vk.Extent2D{Width: maxW, Height: maxH}
	return caps
}

func TestSelectSurfaceFormat(t *testing.T) {
	c := qt.New(t)

	c.Run("NoPreferenceGetsDefault", func(c *qt.C) {
		format, err := core.SelectSurfaceFormat([]vk.SurfaceFormat{
			{Format: vk.FormatUndefined},
		})
		c.Assert(err, qt.IsNil)
		c.Assert(format.Format, qt.Equals, vk.FormatB8g8r8a8Unorm)
		c.Assert(format.ColorSpace, qt.Equals, vk.ColorSpaceSrgbNonlinear)
	})

	c.Run("PreferredPairWinsAnywhere", func(c *qt.C) {
		format, err := core.SelectSurfaceFormat([]vk.SurfaceFormat{
			{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		})
		c.Assert(err, qt.IsNil)
		c.Assert(format.Format, qt.Equals, vk.FormatB8g8r8a8Unorm)
		c.Assert(format.ColorSpace, qt.Equals, vk.ColorSpaceSrgbNonlinear)
	})

	c.Run("PreferredFormatWrongColorSpaceDoesNotCount", func(c *qt.C) {
		format, err := core.SelectSurfaceFormat([]vk.SurfaceFormat{
			{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpace(1)},
		})
		c.Assert(err, qt.IsNil)
		c.Assert(format.Format, qt.Equals, vk.FormatR8g8b8a8Unorm)
	})

	c.Run("FallsBackToFirstReported", func(c *qt.C) {
		format, err := core.SelectSurfaceFormat([]vk.SurfaceFormat{
			{Format: vk.FormatR5g6b5UnormPack16, ColorSpace: vk.ColorSpaceSrgbNonlinear},
			{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		})
		c.Assert(err, qt.IsNil)
		c.Assert(format.Format, qt.Equals, vk.FormatR5g6b5UnormPack16)
	})

	c.Run("UndefinedAmongOthersIsNotAWildcard", func(c *qt.C) {
		format, err := core.SelectSurfaceFormat([]vk.SurfaceFormat{
			{Format: vk.FormatUndefined},
			{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		})
		c.Assert(err, qt.IsNil)
		c.Assert(format.Format, qt.Equals, vk.FormatUndefined)
	})

	c.Run("EmptyCandidates", func(c *qt.C) {
		_, err := core.SelectSurfaceFormat(nil)
		c.Assert(errors.Is(err, core.ErrEmptyCandidateSet), qt.IsTrue)
	})
}

func TestSelectPresentMode(t *testing.T) {
	c := qt.New(t)

	c.Run("MailboxWins", func(c *qt.C) {
		mode, err := core.SelectPresentMode([]vk.PresentMode{
			vk.PresentModeImmediate,
			vk.PresentModeMailbox,
			vk.PresentModeFifo,
		})
		c.Assert(err, qt.IsNil)
		c.Assert(mode, qt.Equals, vk.PresentModeMailbox)
	})

	c.Run("FifoWithoutMailbox", func(c *qt.C) {
		mode, err := core.SelectPresentMode([]vk.PresentMode{
			vk.PresentModeImmediate,
			vk.PresentModeFifoRelaxed,
		})
		c.Assert(err, qt.IsNil)
		c.Assert(mode, qt.Equals, vk.PresentModeFifo)
	})

	c.Run("FifoEvenWhenUnlisted", func(c *qt.C) {
		mode, err := core.SelectPresentMode([]vk.PresentMode{
			vk.PresentModeImmediate,
		})
		c.Assert(err, qt.IsNil)
		c.Assert(mode, qt.Equals, vk.PresentModeFifo)
	})

	c.Run("EmptyCandidates", func(c *qt.C) {
		mode, err := core.SelectPresentMode(nil)
		c.Assert(errors.Is(err, core.ErrEmptyCandidateSet), qt.IsTrue)
		c.Assert(mode, qt.Equals, vk.PresentModeFifo)
	})
}

func TestSelectExtent(t *testing.T) {
	c := qt.New(t)

	c.Run("SurfaceDictatesSize", func(c *qt.C) {
		extent := core.SelectExtent(capsWithCurrentExtent(1280, 720), 800, 600)
		c.Assert(extent.Width, qt.Equals, uint32(1280))
		c.Assert(extent.Height, qt.Equals, uint32(720))
	})

	c.Run("UndefinedWidthAloneIsNotTheSentinel", func(c *qt.C) {
		// Only an all-ones width marks the extent undefined; the
		// height is not consulted.
		extent := core.SelectExtent(capsWithCurrentExtent(1280, vk.MaxUint32), 800, 600)
		c.Assert(extent.Width, qt.Equals, uint32(1280))
		c.Assert(extent.Height, qt.Equals, uint32(vk.MaxUint32))
	})

	c.Run("RequestClampedPerAxis", func(c *qt.C) {
		extent := core.SelectExtent(capsWithUndefinedExtent(64, 64, 4096, 4096), 10, 9000)
		c.Assert(extent.Width, qt.Equals, uint32(64))
		c.Assert(extent.Height, qt.Equals, uint32(4096))
	})

	c.Run("RequestInRangePassesThrough", func(c *qt.C) {
		extent := core.SelectExtent(capsWithUndefinedExtent(64, 64, 4096, 4096), 800, 600)
		c.Assert(extent.Width, qt.Equals, uint32(800))
		c.Assert(extent.Height, qt.Equals, uint32(600))
	})
}

func TestSelectImageCount(t *testing.T) {
	c := qt.New(t)

	c.Run("ZeroDesiredMeansMinimumPlusOne", func(c *qt.C) {
		caps := capsWithCurrentExtent(800, 600)
		c.Assert(core.SelectImageCount(caps, 0), qt.Equals, uint32(3))
	})

	c.Run("DesiredHonoredWithinLimits", func(c *qt.C) {
		caps := capsWithCurrentExtent(800, 600)
		c.Assert(core.SelectImageCount(caps, 4), qt.Equals, uint32(4))
	})

	c.Run("DesiredBelowMinimumRaised", func(c *qt.C) {
		caps := capsWithCurrentExtent(800, 600)
		c.Assert(core.SelectImageCount(caps, 1), qt.Equals, uint32(2))
	})

	c.Run("CappedByMaximum", func(c *qt.C) {
		caps := capsWithCurrentExtent(800, 600)
		caps.MaxImageCount = 3
		c.Assert(core.SelectImageCount(caps, 10), qt.Equals, uint32(3))
	})

	c.Run("ZeroMaximumMeansUnbounded", func(c *qt.C) {
		caps := capsWithCurrentExtent(800, 600)
		caps.MaxImageCount = 0
		c.Assert(core.SelectImageCount(caps, 12), qt.Equals, uint32(12))
	})
}

func TestSelectSurfaceConfig(t *testing.T) {
	c := qt.New(t)

	c.Run("BundlesAllSelections", func(c *qt.C) {
		caps := capsWithUndefinedExtent(64, 64, 4096, 4096)
		config, err := core.SelectSurfaceConfig(
			[]vk.SurfaceFormat{{Format: vk.FormatUndefined}},
			[]vk.PresentMode{vk.PresentModeMailbox, vk.PresentModeFifo},
			caps, 800, 600, 3)
		c.Assert(err, qt.IsNil)
		c.Assert(config.Format, qt.Equals, vk.FormatB8g8r8a8Unorm)
		c.Assert(config.ColorSpace, qt.Equals, vk.ColorSpaceSrgbNonlinear)
		c.Assert(config.PresentMode, qt.Equals, vk.PresentModeMailbox)
		c.Assert(config.Extent.Width, qt.Equals, uint32(800))
		c.Assert(config.Extent.Height, qt.Equals, uint32(600))
		c.Assert(config.ImageCount, qt.Equals, uint32(3))
	})

	c.Run("EmptyFormatsFailWholeSelection", func(c *qt.C) {
		_, err := core.SelectSurfaceConfig(nil,
			[]vk.PresentMode{vk.PresentModeFifo},
			capsWithCurrentExtent(800, 600), 800, 600, 0)
		c.Assert(errors.Is(err, core.ErrEmptyCandidateSet), qt.IsTrue)
	})

	c.Run("EmptyModesFailWholeSelection", func(c *qt.C) {
		_, err := core.SelectSurfaceConfig(
			[]vk.SurfaceFormat{{Format: vk.FormatUndefined}},
			nil, capsWithCurrentExtent(800, 600), 800, 600, 0)
		c.Assert(errors.Is(err, core.ErrEmptyCandidateSet), qt.IsTrue)
	})
}
