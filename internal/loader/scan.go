package loader

import (
	"context"
	"time"

	"github.com/ytget/coverflow/internal/flow"
	"github.com/ytget/coverflow/internal/model"
)

// ScanViewport is the viewport used when no screen is attached
var ScanViewport = flow.Viewport{Width: 1024, Height: 768}

// ScanReport summarises a headless pass over a collection
type ScanReport struct {
	Items     int
	Completed int
	Failed    []*model.FetchJob
	Elapsed   time.Duration
}

type discardRenderer struct{}

func (discardRenderer) RenderPanel(flow.Panel, bool) {}
func (discardRenderer) DetachPanel(flow.ElementID)   {}
func (discardRenderer) ScrollTo(float32, bool)       {}

// Scan pages a carousel window across the whole collection, loading every
// cover once, and reports what could not be fetched. svc must have been
// started; its deliveries are routed through inbox and run on the calling
// goroutine. progress, when set, is called after each page with the last
// materialized index.
func Scan(ctx context.Context, svc *Service, inbox *Inbox, c *model.Collection, params flow.Params, progress func(upper, total int)) (*ScanReport, error) {
	start := time.Now()

	f := flow.New(svc, discardRenderer{}, params)
	defer f.Close()
	svc.SetDispatcher(inbox.Dispatch)
	svc.SetConsumer(f)
	svc.SetCollection(c)

	f.SetViewport(ScanViewport)
	f.Reset(c.Len())

	step := params.WindowSize()
	for f.Count() > 0 {
		for windowPending(f) {
			if !inbox.RunOne(ctx) {
				return nil, ctx.Err()
			}
		}

		_, upper := f.Bounds()
		if progress != nil {
			progress(upper, f.Count())
		}
		if upper >= f.Count()-1 {
			break
		}
		f.Select(min(f.Selected()+step, f.Count()-1))
	}

	report := &ScanReport{Items: c.Len(), Elapsed: time.Since(start)}
	for _, job := range svc.GetAllJobs() {
		switch job.Status {
		case model.FetchStatusCompleted:
			report.Completed++
		case model.FetchStatusError:
			report.Failed = append(report.Failed, job)
		}
	}
	return report, nil
}

func windowPending(f *flow.Flow) bool {
	for _, i := range f.Materialized() {
		if f.Pending(i) {
			return true
		}
	}
	return false
}
