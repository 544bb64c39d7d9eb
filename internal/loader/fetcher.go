package loader

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/ytget/coverflow/internal/model"
)

// ErrUnsupportedItem is returned for items a fetcher cannot read.
var ErrUnsupportedItem = errors.New("unsupported item")

// MaxImageBytes caps how much of a remote image is read.
const MaxImageBytes = 32 << 20

// FileFetcher decodes images from the local file system.
type FileFetcher struct{}

// Fetch opens and decodes the file at item.Location.
func (FileFetcher) Fetch(ctx context.Context, item *model.CoverItem) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(item.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", item.Location, err)
	}
	return img, nil
}

// HTTPFetcher downloads and decodes images over HTTP.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPFetcher creates a new HTTPFetcher using client, or
// http.DefaultClient when client is nil
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{Client: client, UserAgent: "coverflow/1.0"}
}

// Fetch downloads item.Location and decodes the body.
func (h *HTTPFetcher) Fetch(ctx context.Context, item *model.CoverItem) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.Location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", item.Location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", item.Location, resp.Status)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, MaxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", item.Location, err)
	}
	return img, nil
}

// KindFetcher routes an item to the fetcher registered for its kind.
type KindFetcher map[model.ItemKind]Fetcher

// NewDefaultFetcher creates a fetcher for files and HTTP URLs
func NewDefaultFetcher() KindFetcher {
	return KindFetcher{
		model.ItemKindFile: FileFetcher{},
		model.ItemKindURL:  NewHTTPFetcher(nil),
	}
}

// Fetch delegates to the fetcher for item.Kind.
func (k KindFetcher) Fetch(ctx context.Context, item *model.CoverItem) (image.Image, error) {
	f, ok := k[item.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedItem, item.Kind)
	}
	return f.Fetch(ctx, item)
}
