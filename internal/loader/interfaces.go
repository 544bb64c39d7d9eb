package loader

import (
	"context"
	"image"

	"github.com/ytget/coverflow/internal/model"
)

// Fetcher reads and decodes the cover image of one item.
type Fetcher interface {
	Fetch(ctx context.Context, item *model.CoverItem) (image.Image, error)
}

// Consumer receives fetched images. A nil image reports a failed fetch.
// It is only called from the Dispatcher.
type Consumer interface {
	ProvideImage(index int, img image.Image)
}

// Dispatcher runs fn on the consumer's goroutine. In the desktop app this
// is fyne.Do; headless callers use an Inbox.
type Dispatcher func(fn func())

// Loader defines the interface for the fetch service.
type Loader interface {
	SetUpdateCallback(func(*model.FetchJob))
	SetCollection(c *model.Collection)
	Enqueue(index int) (*model.FetchJob, error)
	GetJob(id string) (*model.FetchJob, bool)
	GetAllJobs() []*model.FetchJob
	Start(ctx context.Context) error
	Stop() error
}
