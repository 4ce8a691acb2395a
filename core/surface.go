// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// ErrEmptyCandidateSet is returned when a surface reports no format or
// present mode candidates at all. The querying layer violated a
// precondition, there is nothing sensible to select from.
var ErrEmptyCandidateSet = errors.New("empty candidate set supplied for surface configuration")

// Preferred defaults used when the surface leaves the choice to us.
const (
	preferredFormat     = vk.FormatB8g8r8a8Unorm
	preferredColorSpace = vk.ColorSpaceSrgbNonlinear
)

// SurfaceConfig is the resolved configuration of a presentable image
// chain. It is computed once per swapchain (re)build and never mutated
// afterwards; a resize discards the old value and selection runs again.
type SurfaceConfig struct {
	Format      vk.Format
	ColorSpace  vk.ColorSpace
	PresentMode vk.PresentMode
	Extent      vk.Extent2D
	ImageCount  uint32
}

// SelectSurfaceFormat picks a color format and color space from the
// candidates a surface reports, in reported order. A single entry with
// vk.FormatUndefined means the surface has no preference, in which case
// the preferred default pair wins. Otherwise the preferred pair is
// taken when listed anywhere, or the first reported format as a
// deterministic fallback.
func SelectSurfaceFormat(formats []vk.SurfaceFormat) (vk.SurfaceFormat, error) {
	if len(formats) == 0 {
		return vk.SurfaceFormat{}, ErrEmptyCandidateSet
	}

	if len(formats) == 1 && formats[0].Format == vk.FormatUndefined {
		return vk.SurfaceFormat{
			Format:     preferredFormat,
			ColorSpace: preferredColorSpace,
		}, nil
	}

	for _, format := range formats {
		if format.Format == preferredFormat && format.ColorSpace == preferredColorSpace {
			return format, nil
		}
	}

	return formats[0], nil
}

// SelectPresentMode picks the presentation mode for the chain. Mailbox
// wins when the surface lists it, everything else falls through to
// Fifo. Fifo is the only mode an implementation must support, so it is
// a safe answer even when the surface did not list it. No other mode is
// ever selected, including ones that are listed.
func SelectPresentMode(modes []vk.PresentMode) (vk.PresentMode, error) {
	if len(modes) == 0 {
		return vk.PresentModeFifo, ErrEmptyCandidateSet
	}

	for _, mode := range modes {
		if mode == vk.PresentModeMailbox {
			return mode, nil
		}
	}

	return vk.PresentModeFifo, nil
}

// SelectExtent resolves the pixel size of the chain. A current extent
// other than the undefined sentinel means the surface dictates the size
// and it is returned verbatim. Otherwise the requested size is clamped
// per axis into the surface's supported range.
func SelectExtent(caps vk.SurfaceCapabilities, requestedWidth, requestedHeight uint32) vk.Extent2D {
	if caps.CurrentExtent.Width != vk.MaxUint32 {
		return caps.CurrentExtent
	}

	return vk.Extent2D{
		Width:  clamp(requestedWidth, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(requestedHeight, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// SelectImageCount decides how many images the chain rotates through.
// A desired count of zero means one more than the surface minimum. A
// MaxImageCount of zero reports no upper limit besides memory.
func SelectImageCount(caps vk.SurfaceCapabilities, desired uint32) uint32 {
	count := caps.MinImageCount + 1
	if desired != 0 {
		count = desired
	}
	if count < caps.MinImageCount {
		count = caps.MinImageCount
	}
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

// SelectSurfaceConfig runs all selections against one set of query
// results and bundles the outcome. Pure and reentrant like the
// individual selections, safe to call from any goroutine.
func SelectSurfaceConfig(formats []vk.SurfaceFormat, modes []vk.PresentMode, caps vk.SurfaceCapabilities, requestedWidth, requestedHeight, desiredImages uint32) (SurfaceConfig, error) {
	format, err := SelectSurfaceFormat(formats)
	if err != nil {
		return SurfaceConfig{}, err
	}

	mode, err := SelectPresentMode(modes)
	if err != nil {
		return SurfaceConfig{}, err
	}

	return SurfaceConfig{
		Format:      format.Format,
		ColorSpace:  format.ColorSpace,
		PresentMode: mode,
		Extent:      SelectExtent(caps, requestedWidth, requestedHeight),
		ImageCount:  SelectImageCount(caps, desiredImages),
	}, nil
}

func clamp(v, min, max uint32) uint32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
