package flow

import (
	"errors"
	"fmt"
	"time"
)

// Default geometry, matching the classic cover flow look.
const (
	DefaultBuffer                     = 6
	DefaultSpacing            float32 = 40
	DefaultCenterOffset       float32 = 70
	DefaultSideAngle          float32 = 0.79
	DefaultSideDepth          float32 = -80
	DefaultReflectionFraction float32 = 0.85
	DefaultPerspective        float32 = 100
	DefaultPointerDivisor     float32 = 1.5
	DefaultDoubleTapDelay             = 300 * time.Millisecond
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid flow params")

// Params holds the tunable geometry of the carousel.
type Params struct {
	// Buffer is the half-window radius: at most 2*Buffer+1 panels exist.
	Buffer int
	// Spacing is the horizontal distance between neighbouring indices.
	// The scroll offset of index i is i*Spacing.
	Spacing float32
	// CenterOffset pushes side panels away from the selected one.
	CenterOffset float32
	// SideAngle is the tilt of side panels in radians.
	SideAngle float32
	// SideDepth is the Z position of side panels (negative is further away).
	SideDepth float32
	// ReflectionFraction is the height of the reflection band relative to
	// the image height. Only the renderer and the projection use it.
	ReflectionFraction float32
	// Perspective is the eye distance used to scale panels by depth.
	// Zero disables depth scaling.
	Perspective float32
	// PointerDivisor damps pointer movement into scroll movement.
	PointerDivisor float32
	// DoubleTapDelay is the window in which a second tap is treated as a
	// double tap. Zero disables time based detection.
	DoubleTapDelay time.Duration
	// MaxCachedImages bounds the image cache. Zero keeps every image.
	MaxCachedImages int
}

// DefaultParams returns the default carousel geometry.
func DefaultParams() Params {
	return Params{
		Buffer:             DefaultBuffer,
		Spacing:            DefaultSpacing,
		CenterOffset:       DefaultCenterOffset,
		SideAngle:          DefaultSideAngle,
		SideDepth:          DefaultSideDepth,
		ReflectionFraction: DefaultReflectionFraction,
		Perspective:        DefaultPerspective,
		PointerDivisor:     DefaultPointerDivisor,
		DoubleTapDelay:     DefaultDoubleTapDelay,
	}
}

// WindowSize returns the maximum number of materialized panels.
func (p Params) WindowSize() int {
	return 2*p.Buffer + 1
}

// Validate checks that the params describe a usable carousel.
func (p Params) Validate() error {
	switch {
	case p.Buffer < 0:
		return fmt.Errorf("%w: buffer %d is negative", ErrInvalidParams, p.Buffer)
	case p.Spacing <= 0:
		return fmt.Errorf("%w: spacing %.2f must be positive", ErrInvalidParams, p.Spacing)
	case p.PointerDivisor <= 0:
		return fmt.Errorf("%w: pointer divisor %.2f must be positive", ErrInvalidParams, p.PointerDivisor)
	case p.ReflectionFraction < 0 || p.ReflectionFraction > 1:
		return fmt.Errorf("%w: reflection fraction %.2f outside [0,1]", ErrInvalidParams, p.ReflectionFraction)
	case p.Perspective < 0:
		return fmt.Errorf("%w: perspective %.2f is negative", ErrInvalidParams, p.Perspective)
	case p.Perspective > 0 && p.SideDepth >= p.Perspective:
		return fmt.Errorf("%w: side depth %.2f is behind the eye at %.2f", ErrInvalidParams, p.SideDepth, p.Perspective)
	case p.DoubleTapDelay < 0:
		return fmt.Errorf("%w: double tap delay %s is negative", ErrInvalidParams, p.DoubleTapDelay)
	case p.MaxCachedImages < 0:
		return fmt.Errorf("%w: cache capacity %d is negative", ErrInvalidParams, p.MaxCachedImages)
	case p.MaxCachedImages > 0 && p.MaxCachedImages < p.WindowSize():
		return fmt.Errorf("%w: cache capacity %d is smaller than the window (%d)", ErrInvalidParams, p.MaxCachedImages, p.WindowSize())
	}
	return nil
}
