package ui

import (
	"image/color"
	"time"
)

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconFolder   = "📁"
	IconPlaylist = "🎵"
	IconPrev     = "◀"
	IconNext     = "▶"
	IconError    = "❌"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	PositionFormat     = "%d / %d"
)

// Carousel sizing
const (
	CoverFlowMinWidth  float32 = 320
	CoverFlowMinHeight float32 = 240

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
)

// Carousel animation
const (
	PanelAnimationDuration  = 250 * time.Millisecond
	ScrollAnimationDuration = 300 * time.Millisecond
)

// Carousel background
var (
	CoverFlowBackground = color.RGBA{R: 8, G: 8, B: 8, A: 255}
)

// Toast notification behavior
const (
	ToastAutoHide = 5 * time.Second
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)

// Delays
const (
	AutoStartDelay = 500 * time.Millisecond
)
