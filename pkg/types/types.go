package types

import (
	"fmt"
	"image"
)

// Point is a pixel coordinate in source image space
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CropSpec is a named crop request centered on a point of the source image
type CropSpec struct {
	Filename string `json:"filename"`
	Center   Point  `json:"center"`
}

// BoundingBox is the half-open pixel region [X1,X2) x [Y1,Y2)
type BoundingBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (b BoundingBox) Width() int  { return b.X2 - b.X1 }
func (b BoundingBox) Height() int { return b.Y2 - b.Y1 }

// Empty reports whether the box covers no pixels
func (b BoundingBox) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Rect converts the box to an image.Rectangle
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("%d,%d to %d,%d", b.X1, b.Y1, b.X2, b.Y2)
}

// CropResult describes one written crop
type CropResult struct {
	Spec CropSpec    `json:"spec"`
	Box  BoundingBox `json:"box"`
	Path string      `json:"path"`
}

// Report summarizes a completed run
type Report struct {
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Results []CropResult `json:"results"`
	Overlay string       `json:"overlay,omitempty"`
}
