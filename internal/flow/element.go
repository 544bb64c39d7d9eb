package flow

import "image"

// Unassigned is the index of a pooled element.
const Unassigned = -1

// ElementID identifies a recycled element for the lifetime of a Flow.
type ElementID int

// State is the visual state of a panel relative to the selection.
type State int

const (
	// StateSelected is the frontal, centered panel.
	StateSelected State = iota
	// StateLeft is a panel left of the selection, tilted towards the centre.
	StateLeft
	// StateRight mirrors StateLeft.
	StateRight
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case StateSelected:
		return "selected"
	case StateLeft:
		return "left"
	case StateRight:
		return "right"
	default:
		return "unknown"
	}
}

// IsSide reports whether the panel is tilted.
func (s State) IsSide() bool {
	return s == StateLeft || s == StateRight
}

// Content is the image shown by a panel and its natural size.
type Content struct {
	Image  image.Image
	Width  float32
	Height float32
}

// NewContent wraps img, taking its natural size from the bounds.
func NewContent(img image.Image) Content {
	if img == nil {
		return Content{}
	}
	b := img.Bounds()
	return Content{
		Image:  img,
		Width:  float32(b.Dx()),
		Height: float32(b.Dy()),
	}
}

// IsZero reports whether there is no image.
func (c Content) IsZero() bool {
	return c.Image == nil
}

// Pose is the placement of a panel in content coordinates.
// X and Y are the panel centre; the viewport sees X shifted by the scroll offset.
type Pose struct {
	X     float32
	Y     float32
	Z     float32
	Angle float32 // rotation around the vertical axis, radians
	State State
}

// Element is a reusable panel handle.
type Element struct {
	ID      ElementID
	Index   int
	Content Content
	Pose    Pose

	// placeholder is set while Content is the default image.
	placeholder bool
}

// Panel is the snapshot of an element handed to the renderer.
type Panel struct {
	ID      ElementID
	Index   int
	Pose    Pose
	Content Content
}

func (el *Element) panel() Panel {
	return Panel{
		ID:      el.ID,
		Index:   el.Index,
		Pose:    el.Pose,
		Content: el.Content,
	}
}
