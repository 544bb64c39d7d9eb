package flow

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"
)

// entryStore keeps cached content by logical index.
type entryStore interface {
	get(index int) (Content, bool)
	add(index int, c Content)
	keys() []int
	len() int
}

// mapStore never evicts; it is bounded by the collection size.
type mapStore map[int]Content

func (m mapStore) get(index int) (Content, bool) {
	c, ok := m[index]
	return c, ok
}

func (m mapStore) add(index int, c Content) { m[index] = c }

func (m mapStore) keys() []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func (m mapStore) len() int { return len(m) }

// lruStore evicts the least recently shown images first.
type lruStore struct {
	c *lru.Cache[int, Content]
}

func newLRUStore(capacity int) *lruStore {
	c, err := lru.New[int, Content](capacity)
	if err != nil {
		// only fails for a non-positive size, which Params.Validate rejects
		panic(err)
	}
	return &lruStore{c: c}
}

func (s *lruStore) get(index int) (Content, bool) { return s.c.Get(index) }
func (s *lruStore) add(index int, c Content)      { s.c.Add(index, c) }
func (s *lruStore) keys() []int                   { return s.c.Keys() }
func (s *lruStore) len() int                      { return s.c.Len() }

func newEntryStore(capacity int) entryStore {
	if capacity > 0 {
		return newLRUStore(capacity)
	}
	return make(mapStore)
}

// imageCache maps logical indices to images and remembers which indices
// have an outstanding fetch.
type imageCache struct {
	entries  entryStore
	capacity int
	pending  map[int]struct{}
	fallback Content
	request  func(index int)
}

func newImageCache(capacity int, fallback image.Image, request func(int)) *imageCache {
	return &imageCache{
		entries:  newEntryStore(capacity),
		capacity: capacity,
		pending:  make(map[int]struct{}),
		fallback: NewContent(fallback),
		request:  request,
	}
}

// get returns the cached content for index.
func (c *imageCache) get(index int) (Content, bool) {
	return c.entries.get(index)
}

// set stores content for index and clears its pending fetch.
func (c *imageCache) set(index int, content Content) {
	delete(c.pending, index)
	c.entries.add(index, content)
}

// ensureRequested asks for index exactly once while it is missing.
// It reports whether a request was issued.
func (c *imageCache) ensureRequested(index int) bool {
	if _, ok := c.entries.get(index); ok {
		return false
	}
	if _, ok := c.pending[index]; ok {
		return false
	}
	c.pending[index] = struct{}{}
	c.request(index)
	return true
}

// contentFor returns what a panel for index should show right now.
// The second result is true when that is the placeholder.
func (c *imageCache) contentFor(index int) (Content, bool) {
	if content, ok := c.entries.get(index); ok {
		return content, false
	}
	c.ensureRequested(index)
	return c.fallback, true
}

// forget drops index from the pending set so a later materialization
// requests it again.
func (c *imageCache) forget(index int) {
	delete(c.pending, index)
}

func (c *imageCache) isPending(index int) bool {
	_, ok := c.pending[index]
	return ok
}

// clear drops every entry and pending request.
func (c *imageCache) clear() {
	c.entries = newEntryStore(c.capacity)
	c.pending = make(map[int]struct{})
}

// resize moves every entry into a store with the new capacity.
func (c *imageCache) resize(capacity int) {
	if capacity == c.capacity {
		return
	}
	next := newEntryStore(capacity)
	for _, k := range c.entries.keys() {
		if content, ok := c.entries.get(k); ok {
			next.add(k, content)
		}
	}
	c.entries = next
	c.capacity = capacity
}
