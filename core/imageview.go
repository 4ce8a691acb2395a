// Copyright (c) 2024 plume-gfx
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// Image view derivation errors.
var (
	// ErrInvalidArrayAccess is returned when a view over multiple
	// array layers, or with a non-zero base layer, is requested on an
	// image that is not an array.
	ErrInvalidArrayAccess = errors.New("array layer view requested on a non-array image")

	// ErrUnsupportedImageType is returned for image dimensionalities
	// with no mapped view type. Cube categories are not mapped yet.
	ErrUnsupportedImageType = errors.New("image type has no matching view type")
)

// ImageViewSpec carries everything needed to create a view over an
// image, minus the native handles themselves.
type ImageViewSpec struct {
	ViewType   vk.ImageViewType
	AspectMask vk.ImageAspectFlags

	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// DeriveImageViewSpec computes the view parameters for an image of the
// given format and dimensionality. The aspect mask follows AspectMask.
// 1D and 2D images take their array view types when isArray is set; 3D
// images are forced non-array because arrays of 3D images do not
// exist. Requesting layers beyond the first on a non-array image is an
// error.
func DeriveImageViewSpec(format vk.Format, imageType vk.ImageType, isArray bool, baseArrayLayer, layerCount, baseMipLevel, levelCount uint32) (ImageViewSpec, error) {
	if !isArray && (layerCount > 1 || baseArrayLayer > 0) {
		return ImageViewSpec{}, ErrInvalidArrayAccess
	}

	viewType, err := viewTypeFor(imageType, isArray)
	if err != nil {
		return ImageViewSpec{}, err
	}

	return ImageViewSpec{
		ViewType:       viewType,
		AspectMask:     AspectMask(format),
		BaseMipLevel:   baseMipLevel,
		LevelCount:     levelCount,
		BaseArrayLayer: baseArrayLayer,
		LayerCount:     layerCount,
	}, nil
}

func viewTypeFor(imageType vk.ImageType, isArray bool) (vk.ImageViewType, error) {
	switch imageType {
	case vk.ImageType1d:
		if isArray {
			return vk.ImageViewType1dArray, nil
		}
		return vk.ImageViewType1d, nil
	case vk.ImageType2d:
		if isArray {
			return vk.ImageViewType2dArray, nil
		}
		return vk.ImageViewType2d, nil
	case vk.ImageType3d:
		return vk.ImageViewType3d, nil
	default:
		return vk.ImageViewType(0), ErrUnsupportedImageType
	}
}
