package analyzer

import (
	"image"

	"github.com/menta2k/team-cropper/pkg/types"
)

// ImageInfo contains basic image metadata
type ImageInfo struct {
	Width       int
	Height      int
	AspectRatio float64
	Area        int
}

// Inspect returns basic information about an image
func Inspect(img image.Image) ImageInfo {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	info := ImageInfo{
		Width:  width,
		Height: height,
		Area:   width * height,
	}
	if height > 0 {
		info.AspectRatio = float64(width) / float64(height)
	}
	return info
}

// Contains reports whether p lies within [0,Width] x [0,Height]
func (i ImageInfo) Contains(p types.Point) bool {
	return p.X >= 0 && p.X <= i.Width && p.Y >= 0 && p.Y <= i.Height
}

// OutOfBounds returns the specs whose center falls outside the image.
// Such specs still produce a clamped (possibly empty) box.
func OutOfBounds(info ImageInfo, specs []types.CropSpec) []types.CropSpec {
	var out []types.CropSpec
	for _, s := range specs {
		if !info.Contains(s.Center) {
			out = append(out, s)
		}
	}
	return out
}
