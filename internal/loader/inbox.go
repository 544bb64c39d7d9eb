package loader

import "context"

// Inbox is a mailbox of callbacks for programs without a UI event loop.
// Workers post into it and the owning goroutine drains it.
type Inbox struct {
	ch chan func()
}

// NewInbox creates a new Inbox buffering up to size callbacks
func NewInbox(size int) *Inbox {
	if size < 1 {
		size = 1
	}
	return &Inbox{ch: make(chan func(), size)}
}

// Dispatch queues fn. It blocks while the inbox is full.
func (in *Inbox) Dispatch(fn func()) {
	in.ch <- fn
}

// Drain runs every queued callback without waiting for more and returns
// how many ran.
func (in *Inbox) Drain() int {
	n := 0
	for {
		select {
		case fn := <-in.ch:
			fn()
			n++
		default:
			return n
		}
	}
}

// RunOne waits for a single callback and runs it. It returns false when
// ctx is done first.
func (in *Inbox) RunOne(ctx context.Context) bool {
	select {
	case fn := <-in.ch:
		fn()
		return true
	case <-ctx.Done():
		return false
	}
}

// Run executes callbacks as they arrive until ctx is done.
func (in *Inbox) Run(ctx context.Context) {
	for {
		select {
		case fn := <-in.ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}
