package polysketch

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxPoints is the largest number of nodes a session can hold. Marker quads
// use uint16 indices, 4 vertices per node.
const MaxPoints = 65536 / 4

// Default configuration values.
const (
	DefaultMarkerSize = 0.01
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultTitle      = "polysketch"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("polysketch: invalid config")

// Config holds the user-tunable settings of a sketching session.
// Zero-valued fields in a config file keep their defaults.
type Config struct {
	// MarkerSize is the side length of each node marker in normalized device
	// coordinate units. It does not scale with the viewport, so markers look
	// larger on small windows.
	MarkerSize float32 `yaml:"marker_size"`

	// MarkerColor and EdgeColor are "#rrggbb" strings.
	MarkerColor string `yaml:"marker_color"`
	EdgeColor   string `yaml:"edge_color"`

	// TrackClearColor tints the background from the cursor position.
	TrackClearColor bool `yaml:"track_clear_color"`

	// ShaderSPIRV translates the WGSL shader to SPIR-V before module creation.
	ShaderSPIRV bool `yaml:"shader_spirv"`

	// MaxPoints caps the number of nodes; at most MaxPoints.
	MaxPoints int `yaml:"max_points"`

	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		MarkerSize:      DefaultMarkerSize,
		MarkerColor:     "#000000",
		EdgeColor:       "#000000",
		TrackClearColor: true,
		MaxPoints:       MaxPoints,
		Title:           DefaultTitle,
		Width:           DefaultWidth,
		Height:          DefaultHeight,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig and validates
// the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("polysketch: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("polysketch: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.MarkerSize <= 0 || c.MarkerSize > 2 {
		return fmt.Errorf("%w: marker_size %v not in (0, 2]", ErrInvalidConfig, c.MarkerSize)
	}
	if c.MaxPoints <= 0 || c.MaxPoints > MaxPoints {
		return fmt.Errorf("%w: max_points %d not in [1, %d]", ErrInvalidConfig, c.MaxPoints, MaxPoints)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if _, err := ParseColor(c.MarkerColor); err != nil {
		return fmt.Errorf("%w: marker_color: %w", ErrInvalidConfig, err)
	}
	if _, err := ParseColor(c.EdgeColor); err != nil {
		return fmt.Errorf("%w: edge_color: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Colors returns the parsed marker and edge colors. Unparseable values fall
// back to black; call Validate first to reject them instead.
func (c Config) Colors() (marker, edge Color) {
	marker, err := ParseColor(c.MarkerColor)
	if err != nil {
		marker = Black
	}
	edge, err = ParseColor(c.EdgeColor)
	if err != nil {
		edge = Black
	}
	return marker, edge
}
