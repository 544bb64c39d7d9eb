package loader

// Package loader fetches cover images on a bounded pool of workers and hands
// the decoded results back to the carousel through a Dispatcher, so that the
// carousel is only ever touched from its own goroutine. Fetches are retried
// with a fixed backoff and every attempt has its own timeout.
