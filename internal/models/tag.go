package models

import "time"

// DefaultTagColor is assigned to tags created without
// an explicit color.
const DefaultTagColor = "#3b82f6"

// Tag is a global label shared across users. The name is
// unique; the row is created lazily by the first task that
// references it.
type Tag struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
}
