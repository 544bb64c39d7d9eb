package ui

// Package ui contains the Fyne-based user interface for the application.
// CoverFlow draws the carousel engine with canvas images and feeds it mouse,
// touch and keyboard input; RootUI wires it to the loader, the collection
// sources and the settings. All UI strings are localized via Localization.
