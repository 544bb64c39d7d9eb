package flow

import "image"

// Renderer draws panels. It is called on the presentation context only.
type Renderer interface {
	// RenderPanel shows the panel with the given pose and content,
	// optionally animating from its previous pose.
	RenderPanel(p Panel, animated bool)
	// DetachPanel hides a panel whose element went back to the pool.
	DetachPanel(id ElementID)
	// ScrollTo moves the viewport to the given content offset.
	ScrollTo(offset float32, animated bool)
}

// DataSource supplies images for logical indices.
type DataSource interface {
	// RequestImage starts fetching the image for index. The result is
	// delivered later through Flow.ProvideImage on the presentation context.
	RequestImage(index int)
	// DefaultImage is shown until an index has its own image.
	DefaultImage() image.Image
}
