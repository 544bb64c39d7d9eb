package flow

import (
	"errors"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	p := DefaultParams()
	v := Viewport{Width: 320, Height: 240}
	content := NewContent(solidImage(100, 200, color.White))

	tests := []struct {
		name     string
		index    int
		selected int
		want     Pose
	}{
		{
			name:     "selected",
			index:    3,
			selected: 3,
			want:     Pose{X: 160 + 120, Y: 120 + 85, Z: 0, State: StateSelected},
		},
		{
			name:     "left",
			index:    1,
			selected: 3,
			want:     Pose{X: 160 + 40 - 70, Y: 120 + 85, Z: -80, Angle: 0.79, State: StateLeft},
		},
		{
			name:     "right",
			index:    5,
			selected: 3,
			want:     Pose{X: 160 + 200 + 70, Y: 120 + 85, Z: -80, Angle: -0.79, State: StateRight},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Layout(tt.index, tt.selected, content, p, v)
			assert.Equal(t, tt.want.State, got.State)
			assert.InDelta(t, tt.want.X, got.X, 1e-3)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-3)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-3)
			assert.InDelta(t, tt.want.Angle, got.Angle, 1e-3)
		})
	}
}

func TestLayout_SidesAreSymmetric(t *testing.T) {
	p := DefaultParams()
	v := Viewport{Width: 320, Height: 240}
	content := NewContent(solidImage(10, 10, color.White))

	left := Layout(4, 5, content, p, v)
	right := Layout(6, 5, content, p, v)
	center := Layout(5, 5, content, p, v)

	assert.InDelta(t, center.X-left.X, right.X-center.X, 1e-3)
	assert.Equal(t, left.Angle, -right.Angle)
	assert.Equal(t, left.Z, right.Z)
	assert.True(t, left.State.IsSide())
	assert.False(t, center.State.IsSide())
}

func TestDepthScale(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, float32(1), DepthScale(0, p))
	assert.InDelta(t, 100.0/180.0, DepthScale(-80, p), 1e-6)

	p.Perspective = 0
	assert.Equal(t, float32(1), DepthScale(-80, p))
}

func TestProject(t *testing.T) {
	p := DefaultParams()
	content := NewContent(solidImage(100, 100, color.White))

	r := Project(Pose{X: 50, Y: 100}, content, p)
	assert.InDelta(t, 0, r.X, 1e-3)
	assert.InDelta(t, 100, r.Width, 1e-3)
	assert.InDelta(t, 185, r.Height, 1e-3)
	assert.InDelta(t, 100-92.5, r.Y, 1e-3)

	side := Project(Pose{X: 50, Y: 100, Z: -80, Angle: 0.79}, content, p)
	wantW := 100 * (100.0 / 180.0) * math.Cos(0.79)
	assert.InDelta(t, wantW, side.Width, 1e-3)
	assert.Less(t, side.Height, r.Height)

	assert.True(t, r.Contains(50, 100))
	assert.False(t, r.Contains(101, 100))
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Params)
		wantErr bool
	}{
		{name: "defaults", mutate: func(p *Params) {}},
		{name: "zero buffer", mutate: func(p *Params) { p.Buffer = 0 }},
		{name: "negative buffer", mutate: func(p *Params) { p.Buffer = -1 }, wantErr: true},
		{name: "zero spacing", mutate: func(p *Params) { p.Spacing = 0 }, wantErr: true},
		{name: "zero divisor", mutate: func(p *Params) { p.PointerDivisor = 0 }, wantErr: true},
		{name: "reflection above one", mutate: func(p *Params) { p.ReflectionFraction = 1.5 }, wantErr: true},
		{name: "negative perspective", mutate: func(p *Params) { p.Perspective = -1 }, wantErr: true},
		{name: "depth behind eye", mutate: func(p *Params) { p.SideDepth = 200 }, wantErr: true},
		{name: "no perspective allows any depth", mutate: func(p *Params) { p.Perspective = 0; p.SideDepth = 200 }},
		{name: "negative tap delay", mutate: func(p *Params) { p.DoubleTapDelay = -time.Second }, wantErr: true},
		{name: "cache smaller than window", mutate: func(p *Params) { p.MaxCachedImages = 12 }, wantErr: true},
		{name: "cache equal to window", mutate: func(p *Params) { p.MaxCachedImages = 13 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidParams))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPanels_BackToFront(t *testing.T) {
	f, _, _ := newTestFlow(30)
	f.SetSelected(10)

	panels := f.Panels()
	require.Len(t, panels, 13)
	assert.Equal(t, 10, panels[len(panels)-1].Index, "the selection is drawn last")

	dist := func(i int) int {
		if i < 10 {
			return 10 - i
		}
		return i - 10
	}
	for i := 1; i < len(panels); i++ {
		assert.GreaterOrEqual(t, dist(panels[i-1].Index), dist(panels[i].Index),
			"panel %d drawn before %d", panels[i-1].Index, panels[i].Index)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "selected", StateSelected.String())
	assert.Equal(t, "left", StateLeft.String())
	assert.Equal(t, "right", StateRight.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestPool(t *testing.T) {
	var p pool
	a := p.acquire()
	b := p.acquire()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, p.allocated())

	p.release(a)
	p.release(b)
	assert.Equal(t, Unassigned, a.Index)
	assert.Equal(t, 2, p.available())

	assert.Same(t, b, p.acquire(), "the free-list is LIFO")
	p.reset()
	assert.Equal(t, 1, p.allocated())
	assert.Zero(t, p.available())
}

func TestNewContent(t *testing.T) {
	c := NewContent(solidImage(30, 20, color.White))
	assert.Equal(t, float32(30), c.Width)
	assert.Equal(t, float32(20), c.Height)
	assert.False(t, c.IsZero())
	assert.True(t, NewContent(nil).IsZero())
}
