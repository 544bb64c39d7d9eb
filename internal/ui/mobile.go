package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// MobileUI provides mobile-specific layout decisions
type MobileUI struct {
	device func() fyne.Device
}

// NewMobileUI creates a new mobile UI helper for the current device
func NewMobileUI() *MobileUI {
	return &MobileUI{device: fyne.CurrentDevice}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return m.device().IsMobile()
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	orientation := m.device().Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// ArrangeToolbar lays out the source row. Desktops and landscape phones
// get one line; portrait phones put the entry on its own line above the buttons.
func (m *MobileUI) ArrangeToolbar(leading, trailing, entry fyne.CanvasObject) fyne.CanvasObject {
	if !m.IsMobileDevice() || m.IsLandscape() {
		return container.NewBorder(nil, nil, leading, trailing, entry)
	}
	return container.NewVBox(entry, container.NewHBox(leading, layout.NewSpacer(), trailing))
}

// CreateTouchButton creates a button that is at least MinTouchTargetSize
// square on mobile devices
func (m *MobileUI) CreateTouchButton(btn *widget.Button) fyne.CanvasObject {
	if !m.IsMobileDevice() {
		return btn
	}
	return container.NewGridWrap(fyne.NewSize(MinTouchTargetSize, MinTouchTargetSize), btn)
}
