package post

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyTitle   = errors.New("post title cannot be empty")
	ErrEmptyContent = errors.New("post content cannot be empty")
)

// Post represents one study-tips blog post. Content is Markdown.
type Post struct {
	ID          string
	Title       string
	Excerpt     string
	Content     string // Markdown content
	Category    string
	Tags        []string
	ReadTime    string // display string, e.g. "5 min read"
	Published   bool
	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks if the Post has valid data.
// PRE: Post struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Post) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}
	if p.Content == "" {
		return ErrEmptyContent
	}
	return nil
}

// SetPublished applies a publish toggle.
// Every false->true transition stamps PublishedAt with now, so re-publishing
// a previously published post updates the timestamp. Toggling to false keeps
// the existing stamp.
// PRE: now is the time of the transition
// POST: Published reflects the toggle; PublishedAt is stamped on true-transitions
func (p *Post) SetPublished(published bool, now time.Time) {
	if published && !p.Published {
		p.PublishedAt = now
	}
	p.Published = published
}

// ParseTags splits a free-text, comma-separated tag field into individual
// tags, trimming whitespace and dropping empty elements.
// PRE: none
// POST: Returns the tag list; nil for blank input
func ParseTags(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(text, ",") {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// TagsText joins the tag list back into the edit-form text representation.
// Round-trips ParseTags output losslessly modulo whitespace normalization.
func (p *Post) TagsText() string {
	return strings.Join(p.Tags, ", ")
}
