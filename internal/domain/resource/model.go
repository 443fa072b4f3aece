package resource

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyTitle        = errors.New("resource title cannot be empty")
	ErrEmptyType         = errors.New("resource type cannot be empty")
	ErrEmptyFileURL      = errors.New("resource file URL cannot be empty")
	ErrNegativeDownloads = errors.New("resource downloads cannot be negative")
)

// Resource represents one downloadable study resource (notes, worksheets,
// formula sheets). Downloads is a best-effort counter: it is incremented by
// a read-then-write and concurrent downloads can lose an update. That race
// is accepted for this low-contention counter; do not rely on it being exact.
type Resource struct {
	ID           string
	Title        string
	Description  string
	ResourceType string // e.g. "notes", "worksheet"
	Subject      string
	FileURL      string
	FileSize     string // display string, e.g. "1.2 MB"
	Downloads    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks if the Resource has valid data.
// PRE: Resource struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Resource) Validate() error {
	if r.Title == "" {
		return ErrEmptyTitle
	}
	if r.ResourceType == "" {
		return ErrEmptyType
	}
	if r.FileURL == "" {
		return ErrEmptyFileURL
	}
	if r.Downloads < 0 {
		return ErrNegativeDownloads
	}
	return nil
}
