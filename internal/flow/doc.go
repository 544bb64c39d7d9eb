package flow

// Package flow implements the cover flow engine: a bounded window of recycled
// panels kept in sync with a large logical index space. It owns selection,
// window reconciliation, panel layout, pointer gestures and the per-index image
// cache. Rendering and image fetching are delegated to a Renderer and a
// DataSource. Every method must be called from the same goroutine (the
// presentation context); the package does no locking of its own.
