package cropper

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/menta2k/team-cropper/pkg/types"
)

// createTestImage creates an image where every pixel encodes its own position
func createTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), uint8(x ^ y), 255})
		}
	}
	return img
}

func TestRawBox(t *testing.T) {
	tests := []struct {
		name   string
		center types.Point
		w, h   int
		want   types.BoundingBox
	}{
		{"chairman", types.Point{X: 470, Y: 140}, 190, 190, types.BoundingBox{X1: 375, Y1: 45, X2: 565, Y2: 235}},
		{"second row", types.Point{X: 195, Y: 480}, 190, 190, types.BoundingBox{X1: 100, Y1: 385, X2: 290, Y2: 575}},
		{"near corner", types.Point{X: 50, Y: 50}, 190, 190, types.BoundingBox{X1: -45, Y1: -45, X2: 145, Y2: 145}},
		// 100-95.5 = 4.5 -> 4, 100+95.5 = 195.5 -> 195
		{"odd size truncates", types.Point{X: 100, Y: 100}, 191, 191, types.BoundingBox{X1: 4, Y1: 4, X2: 195, Y2: 195}},
		// -45.5 truncates toward zero
		{"odd size negative", types.Point{X: 50, Y: 50}, 191, 191, types.BoundingBox{X1: -45, Y1: -45, X2: 145, Y2: 145}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RawBox(tt.center, tt.w, tt.h)
			if got != tt.want {
				t.Errorf("RawBox(%v, %d, %d) = %v, want %v", tt.center, tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestBoxForReferenceScenarios(t *testing.T) {
	bounds := image.Rect(0, 0, 939, 867)

	tests := []struct {
		name   string
		center types.Point
		want   types.BoundingBox
		w, h   int
	}{
		{"no clamping", types.Point{X: 470, Y: 140}, types.BoundingBox{X1: 375, Y1: 45, X2: 565, Y2: 235}, 190, 190},
		{"second row", types.Point{X: 195, Y: 480}, types.BoundingBox{X1: 100, Y1: 385, X2: 290, Y2: 575}, 190, 190},
		{"clamped corner", types.Point{X: 50, Y: 50}, types.BoundingBox{X1: 0, Y1: 0, X2: 145, Y2: 145}, 145, 145},
		{"bottom row clipped", types.Point{X: 745, Y: 800}, types.BoundingBox{X1: 650, Y1: 705, X2: 840, Y2: 867}, 190, 162},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoxFor(types.CropSpec{Filename: "x.png", Center: tt.center}, DefaultBoxSize, bounds)
			if got != tt.want {
				t.Fatalf("BoxFor = %v, want %v", got, tt.want)
			}
			if got.Width() != tt.w || got.Height() != tt.h {
				t.Errorf("Expected %dx%d, got %dx%d", tt.w, tt.h, got.Width(), got.Height())
			}
		})
	}
}

func TestClampBoxLaw(t *testing.T) {
	const imgW, imgH = 939, 867
	sizes := []int{1, 2, 95, 190, 191, 2000}

	for _, size := range sizes {
		for cx := -1200; cx <= 2200; cx += 37 {
			for cy := -1200; cy <= 2200; cy += 41 {
				b := ClampBox(RawBox(types.Point{X: cx, Y: cy}, size, size), imgW, imgH)
				if b.X1 < 0 || b.X1 > b.X2 || b.X2 > imgW {
					t.Fatalf("x out of range for center (%d,%d) size %d: %v", cx, cy, size, b)
				}
				if b.Y1 < 0 || b.Y1 > b.Y2 || b.Y2 > imgH {
					t.Fatalf("y out of range for center (%d,%d) size %d: %v", cx, cy, size, b)
				}
			}
		}
	}
}

func TestClampBoxFarOutsideCollapses(t *testing.T) {
	const imgW, imgH = 939, 867

	centers := []types.Point{
		{X: -200, Y: 400},
		{X: 1200, Y: 400},
		{X: 400, Y: -96},
		{X: 400, Y: 963},
		{X: -5000, Y: -5000},
	}
	for _, c := range centers {
		b := ClampBox(RawBox(c, 190, 190), imgW, imgH)
		if b.Width() != 0 && b.Height() != 0 {
			t.Errorf("center %v: expected zero area, got %v", c, b)
		}
		if !b.Empty() {
			t.Errorf("center %v: expected Empty() to be true for %v", c, b)
		}
	}
}

func TestCrop(t *testing.T) {
	img := createTestImage(300, 200)
	box := types.BoundingBox{X1: 10, Y1: 20, X2: 110, Y2: 70}

	cropped, err := Crop(img, box)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	bounds := cropped.Bounds()
	if bounds.Min != (image.Point{}) {
		t.Errorf("Expected origin (0,0), got %v", bounds.Min)
	}
	if bounds.Dx() != 100 || bounds.Dy() != 50 {
		t.Fatalf("Expected 100x50, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			want := color.NRGBAModel.Convert(img.At(x+box.X1, y+box.Y1))
			if got := cropped.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCropNonZeroOrigin(t *testing.T) {
	full := createTestImage(300, 200)
	sub := full.SubImage(image.Rect(50, 40, 250, 190))

	cropped, err := Crop(sub, types.BoundingBox{X1: 0, Y1: 0, X2: 10, Y2: 10})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	want := color.NRGBAModel.Convert(full.At(50, 40))
	if got := cropped.At(0, 0); got != want {
		t.Errorf("Expected first pixel to come from the sub-image origin: got %v, want %v", got, want)
	}
}

func TestCropDegenerateBox(t *testing.T) {
	img := createTestImage(100, 100)

	for _, box := range []types.BoundingBox{
		{X1: 100, Y1: 10, X2: 100, Y2: 50},
		{X1: 0, Y1: 0, X2: 50, Y2: 0},
	} {
		if _, err := Crop(img, box); !errors.Is(err, ErrDegenerateBox) {
			t.Errorf("Crop(%v): expected ErrDegenerateBox, got %v", box, err)
		}
	}
}

func BenchmarkCrop(b *testing.B) {
	img := createTestImage(1920, 1080)
	box := BoxFor(types.CropSpec{Center: types.Point{X: 960, Y: 540}}, DefaultBoxSize, img.Bounds())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Crop(img, box)
	}
}
