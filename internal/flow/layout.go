package flow

import "math"

// Viewport is the size of the area the carousel is drawn into.
type Viewport struct {
	Width  float32
	Height float32
}

// Rect is an axis aligned rectangle, X and Y being the top-left corner.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Layout computes the pose of the panel at index for the given selection.
// The row reads left to right: every index is shifted by index*Spacing
// regardless of the selection, and side panels are pushed out by CenterOffset.
func Layout(index, selected int, content Content, p Params, v Viewport) Pose {
	pose := Pose{
		X: v.Width/2 + float32(index)*p.Spacing,
		Y: v.Height/2 + content.Height*p.ReflectionFraction/2,
		Z: p.SideDepth,
	}

	switch {
	case index < selected:
		pose.X -= p.CenterOffset
		pose.Angle = p.SideAngle
		pose.State = StateLeft
	case index > selected:
		pose.X += p.CenterOffset
		pose.Angle = -p.SideAngle
		pose.State = StateRight
	default:
		pose.Z = 0
		pose.State = StateSelected
	}
	return pose
}

// DepthScale returns the perspective scale factor for a panel at depth z.
func DepthScale(z float32, p Params) float32 {
	if p.Perspective <= 0 {
		return 1
	}
	return p.Perspective / (p.Perspective - z)
}

// Project returns the on-screen rectangle of a panel in content coordinates.
// The height includes the reflection band below the image.
func Project(pose Pose, content Content, p Params) Rect {
	scale := DepthScale(pose.Z, p)
	foreshorten := float32(math.Abs(math.Cos(float64(pose.Angle))))

	w := content.Width * scale * foreshorten
	h := content.Height * (1 + p.ReflectionFraction) * scale
	return Rect{
		X:      pose.X - w/2,
		Y:      pose.Y - h/2,
		Width:  w,
		Height: h,
	}
}

// stackRank orders panels back to front: side panels first, the ones
// furthest from the selection lowest, the selected panel on top.
func stackRank(index, selected int) int {
	d := index - selected
	if d < 0 {
		d = -d
	}
	return -d
}
