package loader

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/coverflow/internal/model"
)

// ErrStopped is returned once the service has been stopped.
var ErrStopped = errors.New("loader stopped")

const (
	DefaultMaxParallel    = 4
	DefaultMaxRetries     = 1
	DefaultRetryDelay     = 2 * time.Second
	DefaultAttemptTimeout = 15 * time.Second
	DefaultMaxSide        = 512
	DefaultPlaceholder    = 256
)

// request is a queued job together with the item it was created for.
type request struct {
	job        *model.FetchJob
	item       *model.CoverItem
	generation int
}

// Service fetches cover images for collection indices
type Service struct {
	jobs       map[string]*model.FetchJob
	queue      []request
	jobsMutex  sync.RWMutex
	wake       chan struct{}
	collection *model.Collection
	generation int

	fetcher      Fetcher
	consumer     Consumer
	dispatch     Dispatcher
	defaultImage image.Image

	maxParallel    int
	maxRetries     int
	retryDelay     time.Duration
	attemptTimeout time.Duration
	maxSide        int

	cancel  context.CancelFunc
	group   *errgroup.Group
	started bool
	stopped bool

	onUpdate func(*model.FetchJob) // callback for UI updates
	newID    func() string
}

// NewService creates a new fetch service running at most maxParallel
// fetches at a time
func NewService(fetcher Fetcher, maxParallel int) *Service {
	if maxParallel < 1 {
		maxParallel = DefaultMaxParallel
	}
	return &Service{
		jobs:           make(map[string]*model.FetchJob),
		wake:           make(chan struct{}, 1),
		fetcher:        fetcher,
		dispatch:       func(fn func()) { fn() },
		defaultImage:   Placeholder(DefaultPlaceholder, DefaultPlaceholder),
		maxParallel:    maxParallel,
		maxRetries:     DefaultMaxRetries,
		retryDelay:     DefaultRetryDelay,
		attemptTimeout: DefaultAttemptTimeout,
		maxSide:        DefaultMaxSide,
		newID:          generateJobID,
	}
}

// SetUpdateCallback sets the callback function for job updates.
// The callback receives a copy and runs on a worker goroutine.
func (s *Service) SetUpdateCallback(callback func(*model.FetchJob)) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	s.onUpdate = callback
}

// SetConsumer sets where fetched images are delivered
func (s *Service) SetConsumer(c Consumer) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	s.consumer = c
}

// SetDispatcher sets how deliveries reach the consumer's goroutine
func (s *Service) SetDispatcher(d Dispatcher) {
	if d == nil {
		return
	}
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	s.dispatch = d
}

// SetDefaultImage sets the placeholder returned by DefaultImage
func (s *Service) SetDefaultImage(img image.Image) {
	if img == nil {
		return
	}
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	s.defaultImage = img
}

// SetMaxParallel sets the number of workers. It takes effect on Start.
func (s *Service) SetMaxParallel(n int) {
	if n < 1 {
		return
	}
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	s.maxParallel = n
}

// SetRetryPolicy sets how many times a failed fetch is retried and the
// delay before each retry
func (s *Service) SetRetryPolicy(maxRetries int, delay time.Duration) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	s.maxRetries = max(0, maxRetries)
	s.retryDelay = max(0, delay)
}

// SetAttemptTimeout bounds a single fetch attempt. Zero disables the bound.
func (s *Service) SetAttemptTimeout(d time.Duration) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	s.attemptTimeout = max(0, d)
}

// SetMaxSide sets the size images are scaled down to before delivery.
// Zero keeps the decoded size.
func (s *Service) SetMaxSide(px int) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	s.maxSide = max(0, px)
}

// SetCollection replaces the items indices refer to. Queued jobs are
// cancelled and results of running ones are discarded.
func (s *Service) SetCollection(c *model.Collection) {
	s.jobsMutex.Lock()
	s.collection = c
	s.generation++
	dropped := s.cancelQueuedLocked()
	s.pruneFinishedLocked()
	s.jobsMutex.Unlock()

	for _, job := range dropped {
		s.notifyUpdate(job)
	}
}

// DefaultImage returns the placeholder shown until an image arrives
func (s *Service) DefaultImage() image.Image {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()
	return s.defaultImage
}

// RequestImage queues a fetch for index. Errors are logged; the carousel
// keeps its placeholder.
func (s *Service) RequestImage(index int) {
	if _, err := s.Enqueue(index); err != nil {
		log.Printf("Failed to queue fetch for index %d: %v", index, err)
	}
}

// Enqueue adds a fetch job for the item at index
func (s *Service) Enqueue(index int) (*model.FetchJob, error) {
	s.jobsMutex.Lock()
	if s.stopped {
		s.jobsMutex.Unlock()
		return nil, ErrStopped
	}
	item := s.collection.Item(index)
	if item == nil {
		s.jobsMutex.Unlock()
		return nil, fmt.Errorf("no item at index %d", index)
	}

	job := model.NewFetchJob(s.newID(), index, item.Location)
	s.jobs[job.ID] = job
	s.queue = append(s.queue, request{job: job, item: item, generation: s.generation})
	snapshot := *job
	s.jobsMutex.Unlock()

	s.signal()
	s.notifyUpdate(&snapshot)
	return &snapshot, nil
}

// GetJob returns a copy of a job by ID
func (s *Service) GetJob(id string) (*model.FetchJob, bool) {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()
	job, exists := s.jobs[id]
	if !exists {
		return nil, false
	}
	snapshot := *job
	return &snapshot, true
}

// GetAllJobs returns copies of all jobs ordered by index
func (s *Service) GetAllJobs() []*model.FetchJob {
	s.jobsMutex.RLock()
	jobs := make([]*model.FetchJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		snapshot := *job
		jobs = append(jobs, &snapshot)
	}
	s.jobsMutex.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].Index != jobs[j].Index {
			return jobs[i].Index < jobs[j].Index
		}
		return jobs[i].ID < jobs[j].ID
	})
	return jobs
}

// Stats counts jobs that are waiting, running, completed and failed
func (s *Service) Stats() (pending, active, completed, failed int) {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()
	for _, job := range s.jobs {
		switch {
		case job.Status == model.FetchStatusPending:
			pending++
		case job.Status.IsActive():
			active++
		case job.Status == model.FetchStatusCompleted:
			completed++
		case job.Status == model.FetchStatusError:
			failed++
		}
	}
	return pending, active, completed, failed
}

// PruneFinished forgets finished jobs and returns how many were removed
func (s *Service) PruneFinished() int {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	return s.pruneFinishedLocked()
}

// Start launches the workers. Jobs queued before Start are picked up.
func (s *Service) Start(ctx context.Context) error {
	s.jobsMutex.Lock()
	if s.stopped {
		s.jobsMutex.Unlock()
		return ErrStopped
	}
	if s.started {
		s.jobsMutex.Unlock()
		return errors.New("loader already started")
	}
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	s.cancel, s.group, s.started = cancel, g, true
	workers := s.maxParallel
	s.jobsMutex.Unlock()

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			s.worker(gctx)
			return nil
		})
	}
	log.Printf("Loader started with %d workers", workers)
	return nil
}

// Stop cancels running fetches, drops the queue and waits for the workers.
func (s *Service) Stop() error {
	s.jobsMutex.Lock()
	if s.stopped {
		s.jobsMutex.Unlock()
		return nil
	}
	s.stopped = true
	cancel, g := s.cancel, s.group
	dropped := s.cancelQueuedLocked()
	s.jobsMutex.Unlock()

	for _, job := range dropped {
		s.notifyUpdate(job)
	}
	if cancel == nil {
		return nil
	}
	cancel()
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to stop loader: %w", err)
	}
	return nil
}

func (s *Service) worker(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		req, ok := s.next()
		if !ok {
			select {
			case <-s.wake:
				continue
			case <-ctx.Done():
				return
			}
		}
		s.run(ctx, req)
	}
}

// next pops the oldest queued request
func (s *Service) next() (request, bool) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	if len(s.queue) == 0 {
		return request{}, false
	}
	req := s.queue[0]
	s.queue[0] = request{}
	s.queue = s.queue[1:]
	if len(s.queue) > 0 {
		s.signal()
	}
	return req, true
}

func (s *Service) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// run fetches one image and delivers the result
func (s *Service) run(ctx context.Context, req request) {
	job := req.job
	s.update(job, func(j *model.FetchJob) {
		j.Status = model.FetchStatusFetching
		j.StartedAt = time.Now()
	})

	img, err := s.fetchWithRetry(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			s.update(job, func(j *model.FetchJob) {
				j.Status = model.FetchStatusCancelled
				j.FinishedAt = time.Now()
			})
			return
		}
		log.Printf("Fetch job %s for index %d failed: %v", job.ID, job.Index, err)
		s.update(job, func(j *model.FetchJob) {
			j.Status = model.FetchStatusError
			j.LastError = err.Error()
			j.FinishedAt = time.Now()
		})
		s.deliver(req, nil)
		return
	}

	s.jobsMutex.RLock()
	maxSide := s.maxSide
	s.jobsMutex.RUnlock()
	img = Fit(img, maxSide)

	b := img.Bounds()
	s.update(job, func(j *model.FetchJob) {
		j.Status = model.FetchStatusCompleted
		j.Width, j.Height = b.Dx(), b.Dy()
		j.FinishedAt = time.Now()
	})
	s.deliver(req, img)
}

// fetchWithRetry attempts the fetch with retry logic
func (s *Service) fetchWithRetry(ctx context.Context, req request) (image.Image, error) {
	s.jobsMutex.RLock()
	maxRetries, delay, timeout := s.maxRetries, s.retryDelay, s.attemptTimeout
	s.jobsMutex.RUnlock()

	job := req.job
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			s.update(job, func(j *model.FetchJob) { j.Status = model.FetchStatusRetrying })

			// Backoff delay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			log.Printf("Retrying fetch job %s for index %d, attempt %d", job.ID, job.Index, attempt+1)
			s.update(job, func(j *model.FetchJob) { j.Status = model.FetchStatusFetching })
		}

		s.update(job, func(j *model.FetchJob) { j.Attempts = attempt + 1 })
		img, err := s.attempt(ctx, req.item, timeout)
		if err == nil {
			return img, nil
		}

		lastErr = err
		log.Printf("Fetch attempt %d failed for job %s: %v", attempt+1, job.ID, err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, ErrUnsupportedItem) {
			break
		}
	}

	return nil, lastErr
}

func (s *Service) attempt(ctx context.Context, item *model.CoverItem, timeout time.Duration) (image.Image, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	img, err := s.fetcher.Fetch(ctx, item)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("fetcher returned no image for %s", item.Location)
	}
	return img, nil
}

// deliver hands img to the consumer on its own goroutine. Results for a
// replaced collection are dropped there.
func (s *Service) deliver(req request, img image.Image) {
	s.jobsMutex.RLock()
	consumer, dispatch := s.consumer, s.dispatch
	s.jobsMutex.RUnlock()
	if consumer == nil {
		return
	}

	dispatch(func() {
		s.jobsMutex.RLock()
		current := req.generation == s.generation
		s.jobsMutex.RUnlock()
		if !current {
			return
		}
		consumer.ProvideImage(req.job.Index, img)
	})
}

// update applies fn to job under the lock and publishes a copy
func (s *Service) update(job *model.FetchJob, fn func(j *model.FetchJob)) {
	s.jobsMutex.Lock()
	fn(job)
	snapshot := *job
	s.jobsMutex.Unlock()
	s.notifyUpdate(&snapshot)
}

func (s *Service) cancelQueuedLocked() []*model.FetchJob {
	now := time.Now()
	dropped := make([]*model.FetchJob, 0, len(s.queue))
	for _, req := range s.queue {
		req.job.Status = model.FetchStatusCancelled
		req.job.FinishedAt = now
		snapshot := *req.job
		dropped = append(dropped, &snapshot)
	}
	s.queue = nil
	return dropped
}

func (s *Service) pruneFinishedLocked() int {
	removed := 0
	for id, job := range s.jobs {
		if job.Status.IsFinished() {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(job *model.FetchJob) {
	s.jobsMutex.RLock()
	callback := s.onUpdate
	s.jobsMutex.RUnlock()
	if callback != nil {
		callback(job)
	}
}

// generateJobID generates a unique job ID
func generateJobID() string {
	return "fetch-" + uuid.NewString()
}
