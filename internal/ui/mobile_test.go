package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

type fakeDevice struct {
	fyne.Device
	mobile      bool
	orientation fyne.DeviceOrientation
}

func (d fakeDevice) IsMobile() bool                      { return d.mobile }
func (d fakeDevice) Orientation() fyne.DeviceOrientation { return d.orientation }

func mobileUIFor(d fakeDevice) *MobileUI {
	return &MobileUI{device: func() fyne.Device { return d }}
}

func TestMobileUI_ArrangeToolbar(t *testing.T) {
	tests := []struct {
		name       string
		device     fakeDevice
		expectRows int
	}{
		{"desktop", fakeDevice{}, 1},
		{"phone landscape", fakeDevice{mobile: true, orientation: fyne.OrientationHorizontalLeft}, 1},
		{"phone portrait", fakeDevice{mobile: true, orientation: fyne.OrientationVertical}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mobileUIFor(tt.device)
			obj := m.ArrangeToolbar(widget.NewLabel("l"), widget.NewLabel("r"), widget.NewEntry())

			c, ok := obj.(*fyne.Container)
			if !ok {
				t.Fatalf("Expected a container, got %T", obj)
			}
			// Border holds entry, leading and trailing; the stacked form
			// holds the entry and a button row.
			rows := 1
			if len(c.Objects) == 2 {
				rows = 2
			}
			if rows != tt.expectRows {
				t.Errorf("Expected %d rows, got %d", tt.expectRows, rows)
			}
		})
	}
}

func TestMobileUI_CreateTouchButton(t *testing.T) {
	btn := widget.NewButton("x", nil)

	if got := mobileUIFor(fakeDevice{}).CreateTouchButton(btn); got != btn {
		t.Errorf("Expected the button itself on desktop, got %T", got)
	}

	got := mobileUIFor(fakeDevice{mobile: true}).CreateTouchButton(btn)
	if _, ok := got.(*fyne.Container); !ok {
		t.Errorf("Expected a wrapping container on mobile, got %T", got)
	}
}
