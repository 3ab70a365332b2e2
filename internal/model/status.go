package model

// TaskStatus represents the lifecycle state of a download task
type TaskStatus string

const (
	// TaskStatusPending means the request was accepted but work has not begun
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusResolving means metadata and the output name are being fetched
	TaskStatusResolving TaskStatus = "Resolving"

	// TaskStatusDownloading means the engine is transferring or post-processing
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusStopped means the task context was cancelled
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means the file was written successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true while the task still owns the engine
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusPending || ts == TaskStatusResolving || ts == TaskStatusDownloading
}

// IsFinished returns true if the task is in a finished state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}
