package model

import (
	"strings"
	"time"
)

// FetchJob represents a single image fetch for one collection index
type FetchJob struct {
	ID         string
	Index      int
	Location   string // file path or URL
	Status     FetchStatus
	Attempts   int
	LastError  string    // last error message if any
	Width      int       // decoded width, 0 until completed
	Height     int       // decoded height, 0 until completed
	StartedAt  time.Time // when the first attempt started
	FinishedAt time.Time // when the job reached a finished state
}

// NewFetchJob creates a new pending job for index
func NewFetchJob(id string, index int, location string) *FetchJob {
	return &FetchJob{
		ID:       id,
		Index:    index,
		Location: location,
		Status:   FetchStatusPending,
	}
}

// Elapsed returns how long the job took, or has been running so far
func (j *FetchJob) Elapsed(now time.Time) time.Duration {
	if j.StartedAt.IsZero() {
		return 0
	}
	if !j.FinishedAt.IsZero() {
		return j.FinishedAt.Sub(j.StartedAt)
	}
	return now.Sub(j.StartedAt)
}

// GetDisplayName returns the file name of the location without extension,
// or the location itself for URLs
func (j *FetchJob) GetDisplayName() string {
	if j.Location == "" {
		return ""
	}
	if strings.Contains(j.Location, "://") {
		return j.Location
	}

	// support both / and \ separators
	parts := strings.FieldsFunc(j.Location, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return j.Location
	}
	name := parts[len(parts)-1]
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}
