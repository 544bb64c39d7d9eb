package loader

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ytget/coverflow/internal/model"
)

// fakeFetcher serves images by location and counts calls.
type fakeFetcher struct {
	mu       sync.Mutex
	images   map[string]image.Image
	failures map[string]error
	calls    map[string]int

	// hold, when set, blocks every fetch until it is closed or ctx ends
	hold  chan struct{}
	delay time.Duration

	running    atomic.Int32
	maxRunning atomic.Int32
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		images:   make(map[string]image.Image),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, item *model.CoverItem) (image.Image, error) {
	n := f.running.Add(1)
	defer f.running.Add(-1)
	for {
		m := f.maxRunning.Load()
		if n <= m || f.maxRunning.CompareAndSwap(m, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls[item.Location]++
	img, err := f.images[item.Location], f.failures[item.Location]
	hold, delay := f.hold, f.delay
	f.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, errors.New("not found")
	}
	return img, nil
}

func (f *fakeFetcher) callCount(location string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[location]
}

// recordingConsumer remembers every delivery in order.
type recordingConsumer struct {
	indices []int
	images  []image.Image
}

func (c *recordingConsumer) ProvideImage(index int, img image.Image) {
	c.indices = append(c.indices, index)
	c.images = append(c.images, img)
}

func (c *recordingConsumer) imageFor(index int) (image.Image, bool) {
	for i, idx := range c.indices {
		if idx == index {
			return c.images[i], true
		}
	}
	return nil, false
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	return img
}

func urlCollection(n int) *model.Collection {
	c := model.NewCollection("urls")
	for i := 0; i < n; i++ {
		c.AddItem(&model.CoverItem{
			ID:       string(rune('a' + i)),
			Location: "mem://" + string(rune('a'+i)),
			Kind:     model.ItemKindURL,
		})
	}
	c.UpdateStatus(model.CollectionStatusReady)
	return c
}

// newTestService wires a service to an inbox and a recording consumer.
func newTestService(t *testing.T, f Fetcher, items int) (*Service, *Inbox, *recordingConsumer) {
	t.Helper()
	s := NewService(f, 2)
	inbox := NewInbox(64)
	consumer := &recordingConsumer{}
	s.SetDispatcher(inbox.Dispatch)
	s.SetConsumer(consumer)
	s.SetRetryPolicy(0, 0)
	s.SetCollection(urlCollection(items))
	t.Cleanup(func() { _ = s.Stop() })
	return s, inbox, consumer
}

// drainUntil runs inbox callbacks on the test goroutine until n deliveries
// arrived or the deadline passes.
func drainUntil(t *testing.T, inbox *Inbox, c *recordingConsumer, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		inbox.Drain()
		if len(c.indices) >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d deliveries, got %d", n, len(c.indices))
}

// waitForStatus polls until the job reaches status.
func waitForStatus(t *testing.T, s *Service, id string, status model.FetchStatus) *model.FetchJob {
	t.Helper()
	var job *model.FetchJob
	require.Eventually(t, func() bool {
		var ok bool
		job, ok = s.GetJob(id)
		return ok && job.Status == status
	}, 2*time.Second, 5*time.Millisecond, "job %s never reached %s", id, status)
	return job
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}
