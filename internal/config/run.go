// Package config loads the optional JSON run configuration. Every field is a
// pointer so an omitted key falls back to the default returned by its Get*
// accessor; command-line flags override both.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/sprinkler-layout/internal/fsutil"
	"github.com/banshee-data/sprinkler-layout/internal/render"
	"github.com/banshee-data/sprinkler-layout/internal/scene"
)

// DefaultConfigPath is the checked-in defaults file, relative to the repo root.
const DefaultConfigPath = "config/run.defaults.json"

// DefaultOutputHTML is where the chart page is written unless overridden.
const DefaultOutputHTML = "sprinkler_layout.html"

// maxFileSize bounds the config file read.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// RunConfig holds the settings for one pipeline run.
type RunConfig struct {
	Source  *string  `json:"source,omitempty"`
	Palette []string `json:"palette,omitempty"`
	Title   *string  `json:"title,omitempty"`

	OutputHTML *string `json:"output_html,omitempty"`
	OutputPlan *string `json:"output_plan,omitempty"`
	OutputDXF  *string `json:"output_dxf,omitempty"`

	AssetsHost *string `json:"assets_host,omitempty"`
	Width      *string `json:"width,omitempty"`  // CSS size like "1200px"
	Height     *string `json:"height,omitempty"` // CSS size like "800px"
	AutoRotate *bool   `json:"auto_rotate,omitempty"`

	PositionToleranceMM *float64 `json:"position_tolerance_mm,omitempty"`
	PipeToleranceMM     *float64 `json:"pipe_tolerance_mm,omitempty"`
}

// EmptyRunConfig returns a RunConfig with all fields unset.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// LoadRunConfig loads a RunConfig from a JSON file on fsys.
// The file must have a .json extension and be under 1MB.
func LoadRunConfig(fsys fsutil.FileSystem, path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRunConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *RunConfig) Validate() error {
	if c.Palette != nil {
		if _, err := scene.ParsePalette(c.Palette); err != nil {
			return fmt.Errorf("palette: %w", err)
		}
	}
	if c.PositionToleranceMM != nil && *c.PositionToleranceMM <= 0 {
		return fmt.Errorf("position_tolerance_mm must be positive, got %f", *c.PositionToleranceMM)
	}
	if c.PipeToleranceMM != nil && *c.PipeToleranceMM <= 0 {
		return fmt.Errorf("pipe_tolerance_mm must be positive, got %f", *c.PipeToleranceMM)
	}
	if c.OutputPlan != nil && *c.OutputPlan != "" {
		if _, err := render.PlanFormat(*c.OutputPlan); err != nil {
			return fmt.Errorf("output_plan: %w", err)
		}
	}
	if c.OutputDXF != nil && *c.OutputDXF != "" && filepath.Ext(*c.OutputDXF) != ".dxf" {
		return fmt.Errorf("output_dxf must have .dxf extension, got %q", *c.OutputDXF)
	}
	return nil
}

// GetSource returns the geometry source name or the default built-in layout.
func (c *RunConfig) GetSource() string {
	if c.Source == nil || *c.Source == "" {
		return "layout-a"
	}
	return *c.Source
}

// GetPalette returns the parsed palette, or the default when none is set.
// An unset palette is nil; an explicitly empty one is an error.
func (c *RunConfig) GetPalette() ([]scene.Color, error) {
	if c.Palette == nil {
		return scene.DefaultPalette(), nil
	}
	return scene.ParsePalette(c.Palette)
}

// GetOutputHTML returns the chart page path or the default.
func (c *RunConfig) GetOutputHTML() string {
	if c.OutputHTML == nil || *c.OutputHTML == "" {
		return DefaultOutputHTML
	}
	return *c.OutputHTML
}

// GetOutputPlan returns the plan-view path; empty disables it.
func (c *RunConfig) GetOutputPlan() string {
	if c.OutputPlan == nil {
		return ""
	}
	return *c.OutputPlan
}

// GetOutputDXF returns the DXF path; empty disables it.
func (c *RunConfig) GetOutputDXF() string {
	if c.OutputDXF == nil {
		return ""
	}
	return *c.OutputDXF
}

// GetPositionTolerance returns the sprinkler matching tolerance in mm.
func (c *RunConfig) GetPositionTolerance() float64 {
	if c.PositionToleranceMM == nil {
		return scene.DefaultPositionTolerance
	}
	return *c.PositionToleranceMM
}

// GetPipeTolerance returns the connector-to-pipe tolerance in mm.
func (c *RunConfig) GetPipeTolerance() float64 {
	if c.PipeToleranceMM == nil {
		return scene.DefaultPipeTolerance
	}
	return *c.PipeToleranceMM
}

// SceneOptions returns the builder options.
func (c *RunConfig) SceneOptions() scene.Options {
	return scene.Options{
		PositionTolerance: c.GetPositionTolerance(),
		PipeTolerance:     c.GetPipeTolerance(),
	}
}

// ViewOptions returns the render options, starting from the render defaults.
func (c *RunConfig) ViewOptions() render.ViewOptions {
	v := render.DefaultViewOptions()
	if c.Title != nil && *c.Title != "" {
		v.Title = *c.Title
	}
	if c.AssetsHost != nil && *c.AssetsHost != "" {
		v.AssetsHost = *c.AssetsHost
	}
	if c.Width != nil && *c.Width != "" {
		v.Width = *c.Width
	}
	if c.Height != nil && *c.Height != "" {
		v.Height = *c.Height
	}
	if c.AutoRotate != nil {
		v.AutoRotate = *c.AutoRotate
	}
	return v
}
