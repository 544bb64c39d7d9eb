package flow

// pool is a LIFO free-list of elements.
type pool struct {
	free   []*Element
	nextID ElementID
	live   int
}

// acquire returns a free element or allocates a new one.
// A recycled element keeps its stale pose and content until overwritten.
func (p *pool) acquire() *Element {
	if n := len(p.free); n > 0 {
		el := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return el
	}
	el := &Element{ID: p.nextID, Index: Unassigned}
	p.nextID++
	p.live++
	return el
}

// release clears the assignment of el and puts it back on the free-list.
func (p *pool) release(el *Element) {
	el.Index = Unassigned
	p.free = append(p.free, el)
}

// allocated returns the number of live elements, attached or free.
func (p *pool) allocated() int {
	return p.live
}

// available returns the number of free elements.
func (p *pool) available() int {
	return len(p.free)
}

// reset drops every pooled element.
func (p *pool) reset() {
	p.live -= len(p.free)
	p.free = nil
}
