package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ytget/coverflow/internal/flow"
)

// ErrInvalidConfig is returned for config files that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// ConfigFileName is the name of the config file inside the config directory
const ConfigFileName = "coverflow.toml"

// FileConfig is the on-disk configuration. Unset fields keep the values
// stored in preferences.
type FileConfig struct {
	ImageDir     *string    `toml:"image_dir,omitempty"`
	MaxParallel  *int       `toml:"max_parallel,omitempty"`
	Language     *string    `toml:"language,omitempty"`
	DemoInterval *int       `toml:"demo_interval_ms,omitempty"`
	Flow         FlowConfig `toml:"flow"`
}

// FlowConfig holds the carousel geometry
type FlowConfig struct {
	Buffer       *int     `toml:"buffer,omitempty"`
	Spacing      *float64 `toml:"spacing,omitempty"`
	CenterOffset *float64 `toml:"center_offset,omitempty"`
	SideAngle    *float64 `toml:"side_angle,omitempty"`
	SideDepth    *float64 `toml:"side_depth,omitempty"`
	Reflection   *float64 `toml:"reflection,omitempty"`
	CacheSize    *int     `toml:"cache_size,omitempty"`
}

// DefaultConfigPath returns the config file location in the user config directory
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "coverflow", ConfigFileName)
}

// LoadFile reads a TOML config file. Unknown keys are rejected.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveFile writes cfg as TOML, creating the directory if needed
func SaveFile(cfg *FileConfig, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultFileConfig returns a config holding every default value. The
// image directory is left unset so the platform default applies.
func DefaultFileConfig() *FileConfig {
	parallel := DefaultMaxParallel
	lang := DefaultLanguage
	demo := DefaultDemoIntervalMS
	buffer := flow.DefaultBuffer
	spacing := float64(flow.DefaultSpacing)
	offset := float64(flow.DefaultCenterOffset)
	angle := float64(flow.DefaultSideAngle)
	depth := float64(flow.DefaultSideDepth)
	reflection := float64(flow.DefaultReflectionFraction)
	cache := DefaultMaxCached

	return &FileConfig{
		MaxParallel:  &parallel,
		Language:     &lang,
		DemoInterval: &demo,
		Flow: FlowConfig{
			Buffer:       &buffer,
			Spacing:      &spacing,
			CenterOffset: &offset,
			SideAngle:    &angle,
			SideDepth:    &depth,
			Reflection:   &reflection,
			CacheSize:    &cache,
		},
	}
}

// Params returns the default geometry overridden by the fields set in c.
// Values are taken as they are; Validate on the result reports bad ones.
func (c *FileConfig) Params() flow.Params {
	p := flow.DefaultParams()
	if c == nil {
		return p
	}
	f := c.Flow
	if f.Buffer != nil {
		p.Buffer = *f.Buffer
	}
	if f.Spacing != nil {
		p.Spacing = float32(*f.Spacing)
	}
	if f.CenterOffset != nil {
		p.CenterOffset = float32(*f.CenterOffset)
	}
	if f.SideAngle != nil {
		p.SideAngle = float32(*f.SideAngle)
	}
	if f.SideDepth != nil {
		p.SideDepth = float32(*f.SideDepth)
	}
	if f.Reflection != nil {
		p.ReflectionFraction = float32(*f.Reflection)
	}
	if f.CacheSize != nil && *f.CacheSize > 0 {
		p.MaxCachedImages = max(*f.CacheSize, p.WindowSize())
	}
	return p
}

// Validate rejects values no setter could clamp into something sensible
func (c *FileConfig) Validate() error {
	if c.MaxParallel != nil && *c.MaxParallel < 1 {
		return fmt.Errorf("%w: max_parallel must be at least 1, got %d", ErrInvalidConfig, *c.MaxParallel)
	}
	if c.Flow.Buffer != nil && *c.Flow.Buffer < 0 {
		return fmt.Errorf("%w: flow.buffer must not be negative, got %d", ErrInvalidConfig, *c.Flow.Buffer)
	}
	if c.Flow.Spacing != nil && *c.Flow.Spacing <= 0 {
		return fmt.Errorf("%w: flow.spacing must be positive, got %g", ErrInvalidConfig, *c.Flow.Spacing)
	}
	if c.Flow.Reflection != nil && (*c.Flow.Reflection < 0 || *c.Flow.Reflection > 1) {
		return fmt.Errorf("%w: flow.reflection must be within [0,1], got %g", ErrInvalidConfig, *c.Flow.Reflection)
	}
	if c.Flow.CacheSize != nil && *c.Flow.CacheSize < 0 {
		return fmt.Errorf("%w: flow.cache_size must not be negative, got %d", ErrInvalidConfig, *c.Flow.CacheSize)
	}
	return nil
}

// Apply stores every field set in cfg into the preferences
func (s *Settings) Apply(cfg *FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.ImageDir != nil {
		s.SetImageDirectory(*cfg.ImageDir)
	}
	if cfg.MaxParallel != nil {
		s.SetMaxParallelFetches(*cfg.MaxParallel)
	}
	if cfg.Language != nil {
		s.SetLanguage(*cfg.Language)
	}
	if cfg.DemoInterval != nil {
		s.SetDemoIntervalMS(*cfg.DemoInterval)
	}

	f := cfg.Flow
	if f.Buffer != nil {
		s.SetBuffer(*f.Buffer)
	}
	if f.Spacing != nil {
		s.SetSpacing(*f.Spacing)
	}
	if f.CenterOffset != nil {
		s.SetCenterOffset(*f.CenterOffset)
	}
	if f.SideAngle != nil {
		s.SetSideAngle(*f.SideAngle)
	}
	if f.SideDepth != nil {
		s.SetSideDepth(*f.SideDepth)
	}
	if f.Reflection != nil {
		s.SetReflection(*f.Reflection)
	}
	if f.CacheSize != nil {
		s.SetMaxCachedImages(*f.CacheSize)
	}
}

// Snapshot returns the current settings as a complete FileConfig
func (s *Settings) Snapshot() *FileConfig {
	dir := s.GetImageDirectory()
	parallel := s.GetMaxParallelFetches()
	lang := s.GetLanguage()
	demo := s.GetDemoIntervalMS()
	buffer := s.GetBuffer()
	spacing := s.GetSpacing()
	offset := s.GetCenterOffset()
	angle := s.GetSideAngle()
	depth := s.GetSideDepth()
	reflection := s.GetReflection()
	cache := s.GetMaxCachedImages()

	return &FileConfig{
		ImageDir:     &dir,
		MaxParallel:  &parallel,
		Language:     &lang,
		DemoInterval: &demo,
		Flow: FlowConfig{
			Buffer:       &buffer,
			Spacing:      &spacing,
			CenterOffset: &offset,
			SideAngle:    &angle,
			SideDepth:    &depth,
			Reflection:   &reflection,
			CacheSize:    &cache,
		},
	}
}
