package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"kweku/internal/adapters/email"
	domain "kweku/internal/domain/message"
)

// SubmitContactCommand holds the input from the public contact form.
// PRE: Name, Email and Body are non-empty.
type SubmitContactCommand struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// SubmitContactDeps are the external dependencies for this orchestrator.
type SubmitContactDeps struct {
	MessageStore contactMessageStore
	Sender       email.Sender
	NotifyTo     string // admin inbox address; empty disables notification
}

type contactMessageStore interface {
	Save(ctx context.Context, m domain.Message) error
}

// ExecuteSubmitContact validates and persists a contact-form submission, then
// notifies the admin inbox. The notification is fire-and-forget: a delivery
// failure is logged but never fails the submission, since the message is
// already safely stored and visible on the dashboard.
// POST: Message saved unread; notification attempted when NotifyTo is set
func ExecuteSubmitContact(ctx context.Context, cmd SubmitContactCommand, deps SubmitContactDeps) (string, error) {
	msg := domain.Message{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(cmd.Name),
		Email:     strings.TrimSpace(cmd.Email),
		Subject:   strings.TrimSpace(cmd.Subject),
		Body:      strings.TrimSpace(cmd.Body),
		CreatedAt: time.Now().UTC(),
	}

	if err := msg.Validate(); err != nil {
		return "", fmt.Errorf("validation: %w", err)
	}

	if err := deps.MessageStore.Save(ctx, msg); err != nil {
		slog.Error("contact_save_failed", "error", err.Error(), "message_id", msg.ID)
		return "", fmt.Errorf("failed to save message: %w", err)
	}
	slog.Info("contact_submitted", "message_id", msg.ID)

	if deps.Sender != nil && deps.NotifyTo != "" {
		go notifyContact(deps, msg)
	}

	return msg.ID, nil
}

// notifyContact sends the admin notification on its own context so it
// survives the request that triggered it.
func notifyContact(deps SubmitContactDeps, msg domain.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	subject := msg.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	req := email.SendRequest{
		To:      []string{deps.NotifyTo},
		Subject: fmt.Sprintf("New contact message: %s", subject),
		HTML:    buildContactNotification(msg),
		ReplyTo: msg.Email,
	}
	if _, err := deps.Sender.Send(ctx, req); err != nil {
		slog.Error("contact_notify_failed", "error", err.Error(), "message_id", msg.ID)
	}
}

func buildContactNotification(msg domain.Message) string {
	var sb strings.Builder
	sb.WriteString("<h2>New contact message</h2>")
	sb.WriteString(fmt.Sprintf("<p><strong>From:</strong> %s &lt;%s&gt;</p>", html.EscapeString(msg.Name), html.EscapeString(msg.Email)))
	if msg.Subject != "" {
		sb.WriteString(fmt.Sprintf("<p><strong>Subject:</strong> %s</p>", html.EscapeString(msg.Subject)))
	}
	sb.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(msg.Body)))
	sb.WriteString(fmt.Sprintf("<p><em>Received %s</em></p>", msg.CreatedAt.Format(time.RFC1123)))
	return sb.String()
}
