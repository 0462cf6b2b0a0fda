// Package teamcrop cuts fixed square portraits out of a composite group photo.
//
// A run opens one source image, derives a bounding box for every configured
// crop from its center point and the shared box size, clamps the box to the
// image and writes the extracted region to the destination directory. The
// output format follows each file's extension.
//
// Basic usage:
//
//	cfg := config.Default()
//	report, err := teamcrop.New(cfg, logger).Run()
//	if err != nil {
//		var stageErr *teamcrop.StageError
//		if errors.As(err, &stageErr) {
//			log.Fatalf("%s failed: %v", stageErr.Stage, stageErr.Err)
//		}
//	}
//	fmt.Println(len(report.Results), "portraits written")
//
// The run is strictly sequential. The first failing entry stops it; files
// written for earlier entries stay on disk.
package teamcrop

import (
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/menta2k/team-cropper/internal/config"
	"github.com/menta2k/team-cropper/internal/utils"
	"github.com/menta2k/team-cropper/pkg/analyzer"
	"github.com/menta2k/team-cropper/pkg/cropper"
	"github.com/menta2k/team-cropper/pkg/processing"
	"github.com/menta2k/team-cropper/pkg/types"
)

// Stage names the step of a run that failed
type Stage string

const (
	StageConfig Stage = "config"
	StageOpen   Stage = "open"
	StageCrop   Stage = "crop"
	StageSave   Stage = "save"
)

// StageError wraps a failure with the stage and, when known, the crop entry
type StageError struct {
	Stage    Stage
	Filename string
	Err      error
}

func (e *StageError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Filename, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Cropper runs a crop configuration
type Cropper struct {
	cfg       *config.Config
	processor *processing.Processor
	logger    *zap.Logger
}

// New creates a Cropper for cfg. A nil logger discards progress output.
func New(cfg *config.Config, logger *zap.Logger) *Cropper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cropper{
		cfg:       cfg,
		processor: processing.NewProcessor(cfg.EncodeOptions()),
		logger:    logger,
	}
}

// Run opens the source image and writes one file per configured crop, in order.
// Nothing is read or written when the configuration is invalid.
func (c *Cropper) Run() (*types.Report, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, &StageError{Stage: StageConfig, Err: err}
	}

	img, err := c.processor.LoadImage(c.cfg.Source)
	if err != nil {
		return nil, &StageError{Stage: StageOpen, Err: err}
	}

	info := analyzer.Inspect(img)
	c.logger.Info("opened image",
		zap.String("source", c.cfg.Source),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.Float64("aspect_ratio", info.AspectRatio),
		zap.Int("area", info.Area),
	)
	for _, s := range analyzer.OutOfBounds(info, c.cfg.Crops) {
		c.logger.Warn("crop center outside image",
			zap.String("file", s.Filename),
			zap.Int("cx", s.Center.X),
			zap.Int("cy", s.Center.Y),
		)
	}

	if err := utils.EnsureDir(c.cfg.DestDir); err != nil {
		return nil, &StageError{Stage: StageSave, Err: fmt.Errorf("create destination: %w", err)}
	}

	report := &types.Report{Width: info.Width, Height: info.Height}
	for _, spec := range c.cfg.Crops {
		result, err := c.cropOne(img, spec)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, result)
	}

	if c.cfg.Overlay != "" {
		path := filepath.Join(c.cfg.DestDir, c.cfg.Overlay)
		boxes := make([]types.BoundingBox, 0, len(report.Results))
		for _, r := range report.Results {
			boxes = append(boxes, r.Box)
		}
		if err := c.processor.SaveImage(c.processor.CreateOverlay(img, boxes), path); err != nil {
			return report, &StageError{Stage: StageSave, Filename: c.cfg.Overlay, Err: err}
		}
		report.Overlay = path
		c.logger.Info("wrote overlay", zap.String("path", path))
	}

	c.logger.Info("success", zap.Int("crops", len(report.Results)))
	return report, nil
}

func (c *Cropper) cropOne(img image.Image, spec types.CropSpec) (types.CropResult, error) {
	box := cropper.BoxFor(spec, c.cfg.Box, img.Bounds())
	c.logger.Info("cropping",
		zap.String("file", spec.Filename),
		zap.Int("x1", box.X1),
		zap.Int("y1", box.Y1),
		zap.Int("x2", box.X2),
		zap.Int("y2", box.Y2),
	)

	cropped, err := cropper.Crop(img, box)
	if err != nil {
		return types.CropResult{}, &StageError{
			Stage:    StageCrop,
			Filename: spec.Filename,
			Err:      fmt.Errorf("box %s: %w", box, err),
		}
	}

	path := filepath.Join(c.cfg.DestDir, spec.Filename)
	if err := c.processor.SaveImage(cropped, path); err != nil {
		return types.CropResult{}, &StageError{Stage: StageSave, Filename: spec.Filename, Err: err}
	}

	return types.CropResult{Spec: spec, Box: box, Path: path}, nil
}
