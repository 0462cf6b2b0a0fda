package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/menta2k/team-cropper/internal/utils"
	"github.com/menta2k/team-cropper/pkg/cropper"
	"github.com/menta2k/team-cropper/pkg/processing"
	"github.com/menta2k/team-cropper/pkg/types"
)

// Config holds everything a crop run needs
type Config struct {
	Source  string           `json:"source"`
	DestDir string           `json:"dest_dir"`
	Box     cropper.BoxSize  `json:"box"`
	Crops   []types.CropSpec `json:"crops"`
	Output  OutputConfig     `json:"output"`
	Overlay string           `json:"overlay,omitempty"`
}

// OutputConfig holds encoder settings for the written crops
type OutputConfig struct {
	JPEGQuality int  `json:"jpeg_quality"`
	WebPQuality int  `json:"webp_quality"`
	Lossless    bool `json:"lossless"`
}

// Portrait grid of the team composite (939x867): one chairman on top,
// then two rows of three directors.
const (
	colLeft   = 195
	colMiddle = 470
	colRight  = 745

	rowTop    = 140
	rowMiddle = 480
	rowBottom = 800
)

// Default returns the reference team page configuration
func Default() *Config {
	return &Config{
		Source:  "uploaded_image.png",
		DestDir: filepath.Join("public", "team"),
		Box:     cropper.DefaultBoxSize,
		Crops: []types.CropSpec{
			{Filename: "chairman.png", Center: types.Point{X: colMiddle, Y: rowTop}},
			{Filename: "director_krishna.png", Center: types.Point{X: colLeft, Y: rowMiddle}},
			{Filename: "director_hari.png", Center: types.Point{X: colMiddle, Y: rowMiddle}},
			{Filename: "director_rama.png", Center: types.Point{X: colRight, Y: rowMiddle}},
			{Filename: "director_baburam.png", Center: types.Point{X: colLeft, Y: rowBottom}},
			{Filename: "director_madhav.png", Center: types.Point{X: colMiddle, Y: rowBottom}},
			{Filename: "director_tank.png", Center: types.Point{X: colRight, Y: rowBottom}},
		},
		Output: OutputConfig{
			JPEGQuality: 95,
			WebPQuality: 90,
		},
	}
}

// EncodeOptions converts the output settings for the processor
func (c *Config) EncodeOptions() processing.EncodeOptions {
	return processing.EncodeOptions{
		JPEGQuality: c.Output.JPEGQuality,
		WebPQuality: c.Output.WebPQuality,
		Lossless:    c.Output.Lossless,
	}
}

// LoadFromFile loads configuration from a JSON file.
// Fields missing from the file keep their Default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	config.Crops = nil
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Crops == nil {
		config.Crops = Default().Crops
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	if err := utils.EnsureDir(filepath.Dir(filename)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source cannot be empty")
	}

	if c.DestDir == "" {
		return fmt.Errorf("dest_dir cannot be empty")
	}

	if c.Box.Width <= 0 || c.Box.Height <= 0 {
		return fmt.Errorf("box size must be positive, got %dx%d", c.Box.Width, c.Box.Height)
	}

	if len(c.Crops) == 0 {
		return fmt.Errorf("crops cannot be empty")
	}

	seen := make(map[string]bool, len(c.Crops))
	for i, crop := range c.Crops {
		if !utils.IsBareFilename(crop.Filename) {
			return fmt.Errorf("crops[%d]: filename %q must be a plain file name", i, crop.Filename)
		}
		if !utils.IsImageFile(crop.Filename) {
			return fmt.Errorf("crops[%d]: filename %q has no supported image extension", i, crop.Filename)
		}
		if seen[crop.Filename] {
			return fmt.Errorf("crops[%d]: duplicate filename %q", i, crop.Filename)
		}
		seen[crop.Filename] = true
	}

	if c.Overlay != "" {
		if !utils.IsBareFilename(c.Overlay) || !utils.IsImageFile(c.Overlay) {
			return fmt.Errorf("overlay %q must be a plain image file name", c.Overlay)
		}
		if seen[c.Overlay] {
			return fmt.Errorf("overlay %q collides with a crop filename", c.Overlay)
		}
	}

	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("output.jpeg_quality must be between 1 and 100")
	}

	if c.Output.WebPQuality < 1 || c.Output.WebPQuality > 100 {
		return fmt.Errorf("output.webp_quality must be between 1 and 100")
	}

	return nil
}
