package testimonial

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyName  = errors.New("testimonial name cannot be empty")
	ErrEmptyQuote = errors.New("testimonial quote cannot be empty")
)

// Testimonial represents one student or parent testimonial. Only active
// testimonials are shown on the public site.
type Testimonial struct {
	ID        string
	Name      string
	Quote     string
	ImageURL  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the Testimonial has valid data.
// PRE: Testimonial struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Testimonial) Validate() error {
	if t.Name == "" {
		return ErrEmptyName
	}
	if t.Quote == "" {
		return ErrEmptyQuote
	}
	return nil
}
