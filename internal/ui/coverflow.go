package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ytget/coverflow/internal/flow"
)

// MinReflectionCache is the smallest number of reflected images kept around.
const MinReflectionCache = 64

// panelView is the canvas side of one flow element
type panelView struct {
	image  *canvas.Image
	source image.Image
	rect   flow.Rect // content coordinates, as currently drawn
	anim   *fyne.Animation
}

// CoverFlow is a widget drawing a flow.Flow with canvas images.
// Panels are placed at their projected rectangles; the tilt shows as
// horizontal foreshortening and depth as scale.
type CoverFlow struct {
	widget.BaseWidget

	engine      *flow.Flow
	panels      map[flow.ElementID]*panelView
	reflections *lru.Cache[image.Image, image.Image]
	reflection  float32
	background  *canvas.Rectangle
	gestures    *GestureHandler

	scroll     float32
	scrollAnim *fyne.Animation
	animate    bool

	// OnActivated is called when the selected panel is activated from the keyboard.
	OnActivated func(index int)
}

var (
	_ flow.Renderer       = (*CoverFlow)(nil)
	_ fyne.Focusable      = (*CoverFlow)(nil)
	_ fyne.Draggable      = (*CoverFlow)(nil)
	_ fyne.Scrollable     = (*CoverFlow)(nil)
	_ fyne.Tappable       = (*CoverFlow)(nil)
	_ desktop.Mouseable   = (*CoverFlow)(nil)
	_ mobile.Touchable    = (*CoverFlow)(nil)
	_ fyne.WidgetRenderer = (*coverFlowRenderer)(nil)
)

// NewCoverFlow creates a carousel fetching images through source.
// It panics on invalid params, like flow.New.
func NewCoverFlow(source flow.DataSource, params flow.Params) *CoverFlow {
	cf := &CoverFlow{
		panels:     make(map[flow.ElementID]*panelView),
		reflection: params.ReflectionFraction,
		background: canvas.NewRectangle(CoverFlowBackground),
		animate:    true,
	}
	cf.reflections, _ = lru.New[image.Image, image.Image](max(MinReflectionCache, 2*params.WindowSize()))
	cf.engine = flow.New(source, cf, params)
	cf.gestures = NewGestureHandler(cf.engine)
	cf.ExtendBaseWidget(cf)
	return cf
}

// Flow returns the engine behind the widget
func (cf *CoverFlow) Flow() *flow.Flow {
	return cf.engine
}

// SetAnimated turns panel and scroll animations on or off
func (cf *CoverFlow) SetAnimated(animated bool) {
	cf.animate = animated
}

// SetParams applies new geometry. Reflections are recomputed when their
// height changes.
func (cf *CoverFlow) SetParams(p flow.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ReflectionFraction != cf.reflection {
		cf.reflection = p.ReflectionFraction
		cf.reflections.Purge()
		for _, v := range cf.panels {
			v.source = nil
		}
	}
	return cf.engine.SetParams(p)
}

// ScrollOffset returns the offset currently drawn, which trails the
// engine's offset while a scroll animation runs.
func (cf *CoverFlow) ScrollOffset() float32 {
	return cf.scroll
}

// RenderPanel implements flow.Renderer
func (cf *CoverFlow) RenderPanel(p flow.Panel, animated bool) {
	target := flow.Project(p.Pose, p.Content, cf.engine.Params())

	v, ok := cf.panels[p.ID]
	if !ok {
		img := canvas.NewImageFromImage(nil)
		img.FillMode = canvas.ImageFillStretch
		img.ScaleMode = canvas.ImageScaleSmooth
		v = &panelView{image: img, rect: target}
		cf.panels[p.ID] = v
		animated = false
	}
	if !v.image.Visible() {
		animated = false
	}
	if v.source != p.Content.Image || v.image.Image == nil {
		v.source = p.Content.Image
		v.image.Image = cf.reflected(p.Content.Image)
		v.image.Refresh()
	}
	v.image.Show()

	cf.movePanel(v, target, animated)
	cf.Refresh()
}

// DetachPanel implements flow.Renderer
func (cf *CoverFlow) DetachPanel(id flow.ElementID) {
	v, ok := cf.panels[id]
	if !ok {
		return
	}
	if v.anim != nil {
		v.anim.Stop()
		v.anim = nil
	}
	v.image.Hide()
	cf.Refresh()
}

// ScrollTo implements flow.Renderer
func (cf *CoverFlow) ScrollTo(offset float32, animated bool) {
	if cf.scrollAnim != nil {
		cf.scrollAnim.Stop()
		cf.scrollAnim = nil
	}
	if !animated || !cf.animate || offset == cf.scroll {
		cf.scroll = offset
		cf.placeAll()
		return
	}

	from := cf.scroll
	cf.scrollAnim = fyne.NewAnimation(ScrollAnimationDuration, func(t float32) {
		cf.scroll = from + (offset-from)*t
		cf.placeAll()
	})
	cf.scrollAnim.Curve = fyne.AnimationEaseOut
	cf.scrollAnim.Start()
}

func (cf *CoverFlow) movePanel(v *panelView, target flow.Rect, animated bool) {
	if v.anim != nil {
		v.anim.Stop()
		v.anim = nil
	}
	if !animated || !cf.animate || v.rect == target {
		v.rect = target
		cf.place(v)
		return
	}

	from := v.rect
	v.anim = fyne.NewAnimation(PanelAnimationDuration, func(t float32) {
		v.rect = lerpRect(from, target, t)
		cf.place(v)
	})
	v.anim.Curve = fyne.AnimationEaseOut
	v.anim.Start()
}

func (cf *CoverFlow) place(v *panelView) {
	v.image.Move(fyne.NewPos(v.rect.X-cf.scroll, v.rect.Y))
	v.image.Resize(fyne.NewSize(v.rect.Width, v.rect.Height))
}

func (cf *CoverFlow) placeAll() {
	for _, v := range cf.panels {
		if v.image.Visible() {
			cf.place(v)
		}
	}
}

func (cf *CoverFlow) reflected(img image.Image) image.Image {
	if img == nil {
		return nil
	}
	if r, ok := cf.reflections.Get(img); ok {
		return r
	}
	r := WithReflection(img, cf.reflection)
	cf.reflections.Add(img, r)
	return r
}

// objects lists the background and the visible panels back to front
func (cf *CoverFlow) objects() []fyne.CanvasObject {
	panels := cf.engine.Panels()
	objects := make([]fyne.CanvasObject, 0, len(panels)+1)
	objects = append(objects, cf.background)
	for _, p := range panels {
		if v, ok := cf.panels[p.ID]; ok {
			objects = append(objects, v.image)
		}
	}
	return objects
}

// CreateRenderer implements fyne.Widget
func (cf *CoverFlow) CreateRenderer() fyne.WidgetRenderer {
	return &coverFlowRenderer{cf: cf, objects: cf.objects()}
}

// Tapped takes keyboard focus
func (cf *CoverFlow) Tapped(*fyne.PointEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(cf); c != nil {
		c.Focus(cf)
	}
}

// MouseDown implements desktop.Mouseable
func (cf *CoverFlow) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	cf.gestures.Down(ev.Position)
}

// MouseUp implements desktop.Mouseable
func (cf *CoverFlow) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	cf.gestures.Up(ev.Position)
}

// Dragged implements fyne.Draggable
func (cf *CoverFlow) Dragged(ev *fyne.DragEvent) {
	cf.gestures.Move(ev.Position)
}

// DragEnd implements fyne.Draggable
func (cf *CoverFlow) DragEnd() {
	cf.gestures.DragEnd()
}

// TouchDown implements mobile.Touchable
func (cf *CoverFlow) TouchDown(ev *mobile.TouchEvent) {
	cf.gestures.TouchDown(ev)
}

// TouchUp implements mobile.Touchable
func (cf *CoverFlow) TouchUp(ev *mobile.TouchEvent) {
	cf.gestures.TouchUp(ev)
}

// TouchCancel implements mobile.Touchable
func (cf *CoverFlow) TouchCancel(ev *mobile.TouchEvent) {
	cf.gestures.TouchCancel(ev)
}

// Scrolled steps the selection with the mouse wheel or trackpad
func (cf *CoverFlow) Scrolled(ev *fyne.ScrollEvent) {
	d := ev.Scrolled.DX
	if d == 0 {
		d = ev.Scrolled.DY
	}
	switch {
	case d < 0:
		cf.engine.Advance(1)
	case d > 0:
		cf.engine.Advance(-1)
	}
}

// FocusGained implements fyne.Focusable
func (cf *CoverFlow) FocusGained() {}

// FocusLost implements fyne.Focusable
func (cf *CoverFlow) FocusLost() {
	cf.gestures.Cancel()
}

// TypedRune implements fyne.Focusable
func (cf *CoverFlow) TypedRune(r rune) {
	switch r {
	case 'h', 'a':
		cf.engine.Advance(-1)
	case 'l', 'd':
		cf.engine.Advance(1)
	}
}

// TypedKey moves the selection with the arrow, page and home/end keys
func (cf *CoverFlow) TypedKey(ev *fyne.KeyEvent) {
	page := max(1, cf.engine.Params().Buffer)
	switch ev.Name {
	case fyne.KeyLeft, fyne.KeyUp:
		cf.engine.Advance(-1)
	case fyne.KeyRight, fyne.KeyDown:
		cf.engine.Advance(1)
	case fyne.KeyPageUp:
		cf.engine.Advance(-page)
	case fyne.KeyPageDown:
		cf.engine.Advance(page)
	case fyne.KeyHome:
		cf.engine.Select(0)
	case fyne.KeyEnd:
		cf.engine.Select(cf.engine.Count() - 1)
	case fyne.KeyReturn, fyne.KeyEnter, fyne.KeySpace:
		if sel := cf.engine.Selected(); sel >= 0 && cf.OnActivated != nil {
			cf.OnActivated(sel)
		}
	}
}

func lerpRect(a, b flow.Rect, t float32) flow.Rect {
	return flow.Rect{
		X:      a.X + (b.X-a.X)*t,
		Y:      a.Y + (b.Y-a.Y)*t,
		Width:  a.Width + (b.Width-a.Width)*t,
		Height: a.Height + (b.Height-a.Height)*t,
	}
}

type coverFlowRenderer struct {
	cf      *CoverFlow
	objects []fyne.CanvasObject
}

func (r *coverFlowRenderer) Layout(size fyne.Size) {
	r.cf.background.Resize(size)
	r.cf.engine.SetViewport(flow.Viewport{Width: size.Width, Height: size.Height})
	r.cf.placeAll()
}

func (r *coverFlowRenderer) MinSize() fyne.Size {
	return fyne.NewSize(CoverFlowMinWidth, CoverFlowMinHeight)
}

func (r *coverFlowRenderer) Refresh() {
	r.objects = r.cf.objects()
	r.cf.background.Refresh()
	canvas.Refresh(r.cf)
}

func (r *coverFlowRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *coverFlowRenderer) Destroy() {}
