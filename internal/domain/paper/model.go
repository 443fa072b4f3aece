package paper

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyTitle   = errors.New("paper title cannot be empty")
	ErrEmptySubject = errors.New("paper subject cannot be empty")
	ErrEmptySession = errors.New("paper session cannot be empty")
	ErrEmptyType    = errors.New("paper type cannot be empty")
	ErrInvalidYear  = errors.New("paper year must be a four-digit year")
)

// PastPaper represents one past exam paper, optionally with a mark scheme.
// QuestionPaperURL and MarkSchemeURL point at externally hosted PDFs and are
// not fetched or validated by this system.
type PastPaper struct {
	ID               string
	Title            string
	Subject          string
	Year             int
	Session          string // exam sitting, e.g. "May/June"
	PaperType        string // e.g. "Paper 1", "Specimen"
	QuestionPaperURL string
	MarkSchemeURL    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks if the PastPaper has valid data.
// PRE: PastPaper struct is populated
// POST: Returns nil if valid, error otherwise
func (p *PastPaper) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}
	if p.Subject == "" {
		return ErrEmptySubject
	}
	if p.Session == "" {
		return ErrEmptySession
	}
	if p.PaperType == "" {
		return ErrEmptyType
	}
	if p.Year < 1000 || p.Year > 9999 {
		return ErrInvalidYear
	}
	return nil
}
