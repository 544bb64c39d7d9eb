package model

// FetchStatus represents the status of an image fetch job
type FetchStatus string

const (
	// FetchStatusPending means the job is queued but not started
	FetchStatusPending FetchStatus = "Pending"

	// FetchStatusFetching means the image is being read or downloaded
	FetchStatusFetching FetchStatus = "Fetching"

	// FetchStatusRetrying means the last attempt failed and another one is scheduled
	FetchStatusRetrying FetchStatus = "Retrying"

	// FetchStatusCompleted means the image was decoded and delivered
	FetchStatusCompleted FetchStatus = "Completed"

	// FetchStatusCancelled means the loader was stopped before the job finished
	FetchStatusCancelled FetchStatus = "Cancelled"

	// FetchStatusError means every attempt failed
	FetchStatusError FetchStatus = "Error"
)

// String returns the string representation of FetchStatus
func (fs FetchStatus) String() string {
	return string(fs)
}

// IsActive returns true if the job is being worked on
func (fs FetchStatus) IsActive() bool {
	return fs == FetchStatusFetching || fs == FetchStatusRetrying
}

// IsFinished returns true if the job is in a finished state (completed, cancelled, or error)
func (fs FetchStatus) IsFinished() bool {
	return fs == FetchStatusCompleted || fs == FetchStatusCancelled || fs == FetchStatusError
}
