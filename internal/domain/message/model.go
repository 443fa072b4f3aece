package message

import (
	"errors"
	"net/url"
	"time"
)

// Domain errors
var (
	ErrEmptyName  = errors.New("message sender name is required")
	ErrEmptyEmail = errors.New("message sender email is required")
	ErrEmptyBody  = errors.New("message body cannot be empty")
)

// Message represents one contact-form submission from a visitor.
type Message struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Body      string
	Read      bool
	Replied   bool
	CreatedAt time.Time
}

// Validate checks if the Message has valid data.
// PRE: Message struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Message) Validate() error {
	if m.Name == "" {
		return ErrEmptyName
	}
	if m.Email == "" {
		return ErrEmptyEmail
	}
	if m.Body == "" {
		return ErrEmptyBody
	}
	return nil
}

// MarkRead flags the message as read.
// POST: Read is true
func (m *Message) MarkRead() {
	m.Read = true
}

// MarkReplied flags the message as replied.
// POST: Replied is true
func (m *Message) MarkReplied() {
	m.Replied = true
}

// ReplyMailto builds a mailto: URI addressed to the sender with an encoded
// "Re:" subject line. Opening it is a fire-and-forget side effect with no
// delivery confirmation.
// PRE: Email is non-empty
// POST: Returns a mailto URI; subject falls back to "Your inquiry"
func (m *Message) ReplyMailto() string {
	subject := m.Subject
	if subject == "" {
		subject = "Your inquiry"
	}
	q := url.Values{}
	q.Set("subject", "Re: "+subject)
	return "mailto:" + m.Email + "?" + q.Encode()
}
