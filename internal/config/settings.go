package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/coverflow/internal/flow"
	"github.com/ytget/coverflow/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyImageDir       = "image_directory"
	KeyMaxParallel    = "max_parallel_fetches"
	KeyBuffer         = "cover_buffer"
	KeySpacing        = "cover_spacing"
	KeyCenterOffset   = "center_offset"
	KeySideAngle      = "side_angle"
	KeySideDepth      = "side_depth"
	KeyReflection     = "reflection_fraction"
	KeyMaxCached      = "max_cached_images"
	KeyLastSelected   = "last_selected_index"
	KeyLastSource     = "last_source"
	KeyLanguage       = "app_language"
	KeyDemoIntervalMS = "demo_interval_ms"
)

// Default values
const (
	DefaultMaxParallel    = 4
	DefaultMaxCached      = 0
	DefaultLanguage       = "system"
	DefaultDemoIntervalMS = 2000
)

// Limits applied by the setters
const (
	MinBuffer       = 0
	MaxBuffer       = 20
	MinSpacing      = 10
	MaxSpacing      = 200
	MaxCenterOffset = 300
	MaxSideAngle    = 1.5
	MinSideDepth    = -400
	MaxParallel     = 10
	MaxCachedLimit  = 10000
	MinDemoInterval = 250
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetImageDirectory returns the configured image directory
func (s *Settings) GetImageDirectory() string {
	dir := s.app.Preferences().String(KeyImageDir)
	if dir == "" {
		// Use system default Pictures directory
		defaultDir, err := platform.GetHomePicturesDir()
		if err != nil {
			defaultDir = "."
		}
		s.SetImageDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetImageDirectory sets the image directory
func (s *Settings) SetImageDirectory(dir string) {
	s.app.Preferences().SetString(KeyImageDir, dir)
}

// GetMaxParallelFetches returns the maximum number of parallel fetches
func (s *Settings) GetMaxParallelFetches() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelFetches(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelFetches sets the maximum number of parallel fetches
func (s *Settings) SetMaxParallelFetches(count int) {
	s.app.Preferences().SetInt(KeyMaxParallel, clampInt(count, 1, MaxParallel))
}

// GetBuffer returns the number of panels kept on each side of the selection
func (s *Settings) GetBuffer() int {
	return s.app.Preferences().IntWithFallback(KeyBuffer, flow.DefaultBuffer)
}

// SetBuffer sets the buffer radius
func (s *Settings) SetBuffer(buffer int) {
	s.app.Preferences().SetInt(KeyBuffer, clampInt(buffer, MinBuffer, MaxBuffer))
}

// GetSpacing returns the distance between neighbouring covers
func (s *Settings) GetSpacing() float64 {
	return s.app.Preferences().FloatWithFallback(KeySpacing, float64(flow.DefaultSpacing))
}

// SetSpacing sets the distance between neighbouring covers
func (s *Settings) SetSpacing(spacing float64) {
	s.app.Preferences().SetFloat(KeySpacing, clampFloat(spacing, MinSpacing, MaxSpacing))
}

// GetCenterOffset returns how far side covers are pushed from the centre
func (s *Settings) GetCenterOffset() float64 {
	return s.app.Preferences().FloatWithFallback(KeyCenterOffset, float64(flow.DefaultCenterOffset))
}

// SetCenterOffset sets the centre offset
func (s *Settings) SetCenterOffset(offset float64) {
	s.app.Preferences().SetFloat(KeyCenterOffset, clampFloat(offset, 0, MaxCenterOffset))
}

// GetSideAngle returns the tilt of side covers in radians
func (s *Settings) GetSideAngle() float64 {
	return s.app.Preferences().FloatWithFallback(KeySideAngle, float64(flow.DefaultSideAngle))
}

// SetSideAngle sets the tilt of side covers
func (s *Settings) SetSideAngle(angle float64) {
	s.app.Preferences().SetFloat(KeySideAngle, clampFloat(angle, 0, MaxSideAngle))
}

// GetSideDepth returns the depth of side covers
func (s *Settings) GetSideDepth() float64 {
	return s.app.Preferences().FloatWithFallback(KeySideDepth, float64(flow.DefaultSideDepth))
}

// SetSideDepth sets the depth of side covers
func (s *Settings) SetSideDepth(depth float64) {
	s.app.Preferences().SetFloat(KeySideDepth, clampFloat(depth, MinSideDepth, 0))
}

// GetReflection returns the reflection height relative to the cover
func (s *Settings) GetReflection() float64 {
	return s.app.Preferences().FloatWithFallback(KeyReflection, float64(flow.DefaultReflectionFraction))
}

// SetReflection sets the reflection fraction
func (s *Settings) SetReflection(fraction float64) {
	s.app.Preferences().SetFloat(KeyReflection, clampFloat(fraction, 0, 1))
}

// GetMaxCachedImages returns the image cache bound, 0 for unbounded
func (s *Settings) GetMaxCachedImages() int {
	return s.app.Preferences().IntWithFallback(KeyMaxCached, DefaultMaxCached)
}

// SetMaxCachedImages sets the image cache bound
func (s *Settings) SetMaxCachedImages(n int) {
	s.app.Preferences().SetInt(KeyMaxCached, clampInt(n, 0, MaxCachedLimit))
}

// GetLastSelected returns the index selected when the app was last closed
func (s *Settings) GetLastSelected() int {
	return max(0, s.app.Preferences().Int(KeyLastSelected))
}

// SetLastSelected stores the selected index
func (s *Settings) SetLastSelected(index int) {
	s.app.Preferences().SetInt(KeyLastSelected, max(0, index))
}

// GetLastSource returns the collection source shown last
func (s *Settings) GetLastSource() string {
	return s.app.Preferences().String(KeyLastSource)
}

// SetLastSource stores the collection source. A new source resets the
// remembered selection.
func (s *Settings) SetLastSource(source string) {
	if source != s.GetLastSource() {
		s.SetLastSelected(0)
	}
	s.app.Preferences().SetString(KeyLastSource, source)
}

// GetDemoIntervalMS returns the step interval of demo mode
func (s *Settings) GetDemoIntervalMS() int {
	return s.app.Preferences().IntWithFallback(KeyDemoIntervalMS, DefaultDemoIntervalMS)
}

// SetDemoIntervalMS sets the step interval of demo mode
func (s *Settings) SetDemoIntervalMS(ms int) {
	s.app.Preferences().SetInt(KeyDemoIntervalMS, max(MinDemoInterval, ms))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// Params returns the carousel geometry described by the settings
func (s *Settings) Params() flow.Params {
	p := flow.DefaultParams()
	p.Buffer = s.GetBuffer()
	p.Spacing = float32(s.GetSpacing())
	p.CenterOffset = float32(s.GetCenterOffset())
	p.SideAngle = float32(s.GetSideAngle())
	p.SideDepth = float32(s.GetSideDepth())
	p.ReflectionFraction = float32(s.GetReflection())
	if n := s.GetMaxCachedImages(); n > 0 {
		p.MaxCachedImages = max(n, p.WindowSize())
	}
	return p
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampFloat(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
