// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureFormatNames translates surface formats into human-readable
// strings for the formats surfaces commonly offer.
var TextureFormatNames = map[wgpu.TextureFormat]string{
	wgpu.TextureFormatRGBA8UnormSrgb: "RGBA 8bit sRGB colorspace",
	wgpu.TextureFormatRGBA8Unorm:     "RGBA 8bit unsigned linear colorspace",
	wgpu.TextureFormatBGRA8UnormSrgb: "BGRA 8bit sRGB colorspace",
	wgpu.TextureFormatBGRA8Unorm:     "BGRA 8bit unsigned linear colorspace",
}

// srgbFormats are the color formats that are stored non-linearly
// in the sRGB colorspace.
var srgbFormats = map[wgpu.TextureFormat]bool{
	wgpu.TextureFormatRGBA8UnormSrgb: true,
	wgpu.TextureFormatBGRA8UnormSrgb: true,
}

// IsSRGB returns true if the format stores color in the sRGB colorspace.
func IsSRGB(f wgpu.TextureFormat) bool {
	return srgbFormats[f]
}

// FormatName returns a human-readable name for the format,
// falling back on the wgpu name for formats without a description.
func FormatName(f wgpu.TextureFormat) string {
	if nm, ok := TextureFormatNames[f]; ok {
		return nm
	}
	return fmt.Sprintf("%v", f)
}
