package cropper

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/team-cropper/pkg/types"
)

// ErrDegenerateBox is returned when a clamped box covers no pixels
var ErrDegenerateBox = errors.New("degenerate crop box")

// BoxSize is the width and height of every crop box
type BoxSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultBoxSize fits one portrait circle and its border
var DefaultBoxSize = BoxSize{Width: 190, Height: 190}

// RawBox returns the unclamped box of size w x h around center.
// Edges are computed in floating point and truncated toward zero.
func RawBox(center types.Point, w, h int) types.BoundingBox {
	halfW := float64(w) / 2
	halfH := float64(h) / 2
	cx, cy := float64(center.X), float64(center.Y)

	return types.BoundingBox{
		X1: int(cx - halfW),
		Y1: int(cy - halfH),
		X2: int(cx + halfW),
		Y2: int(cy + halfH),
	}
}

// ClampBox constrains box to [0,imgW] x [0,imgH].
// The result always satisfies 0 <= X1 <= X2 <= imgW and 0 <= Y1 <= Y2 <= imgH;
// a box lying outside the image collapses to zero area.
func ClampBox(box types.BoundingBox, imgW, imgH int) types.BoundingBox {
	x1 := clampInt(box.X1, 0, imgW)
	y1 := clampInt(box.Y1, 0, imgH)
	return types.BoundingBox{
		X1: x1,
		Y1: y1,
		X2: clampInt(box.X2, x1, imgW),
		Y2: clampInt(box.Y2, y1, imgH),
	}
}

// BoxFor computes the clamped box for spec against an image of the given bounds
func BoxFor(spec types.CropSpec, size BoxSize, bounds image.Rectangle) types.BoundingBox {
	raw := RawBox(spec.Center, size.Width, size.Height)
	return ClampBox(raw, bounds.Dx(), bounds.Dy())
}

// Crop extracts box from img into a new image anchored at (0,0).
// Box coordinates are relative to the image origin, so images with a
// non-zero Bounds().Min are handled too.
func Crop(img image.Image, box types.BoundingBox) (*image.NRGBA, error) {
	if box.Empty() {
		return nil, ErrDegenerateBox
	}
	rect := box.Rect().Add(img.Bounds().Min)
	return imaging.Crop(img, rect), nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
