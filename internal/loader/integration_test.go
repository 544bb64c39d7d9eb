package loader

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/coverflow/internal/flow"
	"github.com/ytget/coverflow/internal/model"
)

type nopRenderer struct{ renders int }

func (r *nopRenderer) RenderPanel(flow.Panel, bool) { r.renders++ }
func (r *nopRenderer) DetachPanel(flow.ElementID)   {}
func (r *nopRenderer) ScrollTo(float32, bool)       {}

func TestService_FeedsFlow(t *testing.T) {
	dir := t.TempDir()
	c := model.NewCollection(dir)
	for i := 0; i < 20; i++ {
		path := writePNG(t, dir, fmt.Sprintf("%02d.png", i), solid(10+i, 10))
		c.AddItem(&model.CoverItem{ID: fmt.Sprint(i), Location: path, Kind: model.ItemKindFile})
	}

	s := NewService(NewDefaultFetcher(), 3)
	inbox := NewInbox(64)
	s.SetDispatcher(inbox.Dispatch)
	s.SetCollection(c)
	t.Cleanup(func() { _ = s.Stop() })

	f := flow.New(s, &nopRenderer{}, flow.DefaultParams())
	s.SetConsumer(f)
	require.NoError(t, s.Start(context.Background()))

	f.SetViewport(flow.Viewport{Width: 400, Height: 300})
	f.SetCount(c.Len())

	lower, upper := f.Bounds()
	require.Equal(t, 0, lower)
	require.Equal(t, 6, upper)

	waitForImages(t, inbox, f, 0, 6)
	for i := 0; i <= 6; i++ {
		img, ok := f.Image(i)
		require.True(t, ok, "index %d", i)
		assert.Equal(t, 10+i, img.Bounds().Dx())
		assert.False(t, f.Pending(i))
	}

	f.SetSelected(10)
	waitForImages(t, inbox, f, 4, 16)
	assert.Len(t, s.GetAllJobs(), 17, "each index is fetched once")
}

func waitForImages(t *testing.T, inbox *Inbox, f *flow.Flow, lower, upper int) {
	t.Helper()
	for tries := 0; tries < 400; tries++ {
		inbox.Drain()
		done := true
		for i := lower; i <= upper; i++ {
			if _, ok := f.Image(i); !ok {
				done = false
				break
			}
		}
		if done {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("images %d..%d never arrived", lower, upper)
}
