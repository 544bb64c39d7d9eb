package model

import (
	"path/filepath"
	"strings"
	"time"
)

// CollectionStatus represents the current status of a collection
type CollectionStatus string

const (
	CollectionStatusLoading CollectionStatus = "loading"
	CollectionStatusReady   CollectionStatus = "ready"
	CollectionStatusError   CollectionStatus = "error"
)

// ItemKind tells the loader how to read an item
type ItemKind string

const (
	ItemKindFile ItemKind = "file"
	ItemKindURL  ItemKind = "url"
)

// CoverItem is one entry of the carousel
type CoverItem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Location string   `json:"location"` // file path or URL of the cover image
	Kind     ItemKind `json:"kind"`
}

// DisplayTitle returns the title, or the file name when there is none
func (ci *CoverItem) DisplayTitle() string {
	if ci.Title != "" {
		return ci.Title
	}
	if ci.Kind == ItemKindFile && ci.Location != "" {
		name := filepath.Base(ci.Location)
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return ci.ID
}

// Collection is the ordered list of items shown by the carousel.
// Item i is shown at logical index i.
type Collection struct {
	Title     string           `json:"title"`
	Source    string           `json:"source"` // directory, playlist URL or "urls"
	Items     []*CoverItem     `json:"items"`
	Status    CollectionStatus `json:"status"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewCollection creates a new collection instance
func NewCollection(source string) *Collection {
	now := time.Now()
	return &Collection{
		Source:    source,
		Status:    CollectionStatusLoading,
		Items:     make([]*CoverItem, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem appends an item to the collection
func (c *Collection) AddItem(item *CoverItem) {
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
}

// Len returns the number of items
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Item returns the item at index, or nil when out of range
func (c *Collection) Item(index int) *CoverItem {
	if c == nil || index < 0 || index >= len(c.Items) {
		return nil
	}
	return c.Items[index]
}

// TitleAt returns the display title of the item at index
func (c *Collection) TitleAt(index int) string {
	item := c.Item(index)
	if item == nil {
		return ""
	}
	return item.DisplayTitle()
}

// UpdateStatus updates the collection status
func (c *Collection) UpdateStatus(status CollectionStatus) {
	c.Status = status
	c.UpdatedAt = time.Now()
}

// Fail marks the collection as failed with err
func (c *Collection) Fail(err error) {
	c.Status = CollectionStatusError
	if err != nil {
		c.Error = err.Error()
	}
	c.UpdatedAt = time.Now()
}

// IsReady checks if the collection can be shown
func (c *Collection) IsReady() bool {
	return c.Status == CollectionStatusReady && len(c.Items) > 0
}
