package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/dopesheet/internal/curve"
)

// Config holds editor settings shared by the CLI and the editing session
type Config struct {
	FrameRate                  float64 `yaml:"frame_rate"`
	DefaultTangentMode         string  `yaml:"default_tangent_mode"`
	ValueScaleThreshold        float64 `yaml:"value_scale_threshold"`
	TimeScaleFallbackThreshold float64 `yaml:"time_scale_fallback_threshold"`
	SnapToFrame                bool    `yaml:"snap_to_frame"`
	ShowStats                  bool    `yaml:"show_stats"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		FrameRate:                  60,
		DefaultTangentMode:         curve.TangentClampedAuto.String(),
		ValueScaleThreshold:        0.001,
		TimeScaleFallbackThreshold: 0.001,
		SnapToFrame:                true,
	}
}

// LoadConfig reads settings from path on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes settings to path
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if !(c.FrameRate > 0) {
		return fmt.Errorf("frame_rate must be positive, got %g", c.FrameRate)
	}
	if _, ok := curve.ParseTangentMode(c.DefaultTangentMode); !ok {
		return fmt.Errorf("unknown default_tangent_mode %q", c.DefaultTangentMode)
	}
	if c.ValueScaleThreshold <= 0 {
		return fmt.Errorf("value_scale_threshold must be positive")
	}
	if c.TimeScaleFallbackThreshold <= 0 {
		return fmt.Errorf("time_scale_fallback_threshold must be positive")
	}
	return nil
}

// TangentMode resolves DefaultTangentMode, falling back to clamped auto
func (c *Config) TangentMode() curve.TangentMode {
	if mode, ok := curve.ParseTangentMode(c.DefaultTangentMode); ok && mode != curve.TangentUnset {
		return mode
	}
	return curve.TangentClampedAuto
}
