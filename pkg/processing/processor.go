package processing

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/team-cropper/pkg/types"
)

// ErrUnsupportedFormat is returned when no encoder matches an output extension
var ErrUnsupportedFormat = errors.New("unsupported output format")

// EncodeOptions controls lossy encoders
type EncodeOptions struct {
	JPEGQuality int
	WebPQuality int
	Lossless    bool
}

// DefaultEncodeOptions returns the options used when none are configured
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		JPEGQuality: 95,
		WebPQuality: 90,
	}
}

// Processor handles image decoding and encoding
type Processor struct {
	opts EncodeOptions
}

// NewProcessor creates a new image processor
func NewProcessor(opts EncodeOptions) *Processor {
	return &Processor{opts: opts}
}

// LoadImage decodes the image at path in stored pixel order. EXIF
// orientation is not applied, so crop coordinates address raw pixels.
// WebP sources go through the golang.org/x/image/webp decoder.
func (p *Processor) LoadImage(path string) (image.Image, error) {
	return imaging.Open(path)
}

// SaveImage encodes img to path, picking the encoder from the path extension
func (p *Processor) SaveImage(img image.Image, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".webp" {
		return p.saveWebP(img, path)
	}

	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return imaging.Save(img, path, imaging.JPEGQuality(p.opts.JPEGQuality))
}

func (p *Processor) saveWebP(img image.Image, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	opts := &webp.Options{Lossless: p.opts.Lossless, Quality: float32(p.opts.WebPQuality)}
	return webp.Encode(f, img, opts)
}

// CreateOverlay returns a copy of img with every crop box outlined and its
// center marked. Boxes are relative to the image origin.
func (p *Processor) CreateOverlay(img image.Image, boxes []types.BoundingBox) *image.NRGBA {
	nrgba := imaging.Clone(img)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()

	gold := color.NRGBA{255, 204, 0, 255}
	red := color.NRGBA{255, 0, 0, 255}
	stroke := int(math.Max(2, 0.004*float64(min(w, h)))) // ~0.4% of min side
	cross := int(math.Max(4, 0.01*float64(min(w, h))))   // ~1% of min side

	for _, box := range boxes {
		if box.Empty() {
			continue
		}
		drawBox(nrgba, box, gold, stroke)

		px := box.X1 + box.Width()/2
		py := box.Y1 + box.Height()/2
		drawHLine(nrgba, py, px-cross, px+cross, red)
		drawVLine(nrgba, px, py-cross, py+cross, red)
	}

	return nrgba
}

func drawBox(img *image.NRGBA, box types.BoundingBox, c color.NRGBA, stroke int) {
	for s := 0; s < stroke; s++ {
		drawHLine(img, box.Y1+s, box.X1, box.X2, c)
		drawHLine(img, box.Y2-1-s, box.X1, box.X2, c)
		drawVLine(img, box.X1+s, box.Y1, box.Y2, c)
		drawVLine(img, box.X2-1-s, box.Y1, box.Y2, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x0 = max(x0, 0)
	x1 = min(x1, img.Bounds().Dx())
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	y0 = max(y0, 0)
	y1 = min(y1, img.Bounds().Dy())
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}
