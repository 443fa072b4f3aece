package video

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyTitle = errors.New("lesson title cannot be empty")
	ErrEmptyTopic = errors.New("lesson topic cannot be empty")
	ErrEmptyUnit  = errors.New("lesson unit cannot be empty")
	ErrEmptyURL   = errors.New("lesson video URL cannot be empty")
)

// Lesson represents one recorded video lesson. The video itself is hosted
// externally (YouTube); this record carries only metadata and links.
type Lesson struct {
	ID           string
	Title        string
	Topic        string
	Unit         string // syllabus unit used for exact-match filtering
	Description  string
	Duration     string // display string, e.g. "12:30"
	YoutubeURL   string
	NotesURL     string
	ThumbnailURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks if the Lesson has valid data.
// PRE: Lesson struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Lesson) Validate() error {
	if l.Title == "" {
		return ErrEmptyTitle
	}
	if l.Topic == "" {
		return ErrEmptyTopic
	}
	if l.Unit == "" {
		return ErrEmptyUnit
	}
	if l.YoutubeURL == "" {
		return ErrEmptyURL
	}
	return nil
}
