package models

import "time"

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// IsValidStatus reports whether status is one of the
// three values the API accepts.
func IsValidStatus(status string) bool {
	return status == StatusPending ||
		status == StatusInProgress ||
		status == StatusCompleted
}

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description *string
	Status      string
	Tags        []Tag
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
