package message_test

import (
	"testing"
	"time"

	"kweku/internal/domain/message"
)

// TestMessage_Validate tests validation of Message.
func TestMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     message.Message
		wantErr bool
	}{
		{
			name:    "valid message",
			msg:     message.Message{ID: "1", Name: "Ama", Email: "ama@example.com", Body: "Hello!", CreatedAt: time.Now()},
			wantErr: false,
		},
		{
			name:    "empty name",
			msg:     message.Message{ID: "2", Email: "ama@example.com", Body: "Hello!"},
			wantErr: true,
		},
		{
			name:    "empty email",
			msg:     message.Message{ID: "3", Name: "Ama", Body: "Hello!"},
			wantErr: true,
		},
		{
			name:    "empty body",
			msg:     message.Message{ID: "4", Name: "Ama", Email: "ama@example.com"},
			wantErr: true,
		},
		{
			name:    "subject is optional",
			msg:     message.Message{ID: "5", Name: "Ama", Email: "ama@example.com", Body: "Hello!"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestMessage_Flags tests MarkRead and MarkReplied.
func TestMessage_Flags(t *testing.T) {
	m := message.Message{ID: "1", Name: "Ama", Email: "ama@example.com", Body: "Hi"}
	if m.Read || m.Replied {
		t.Error("new message should be unread and unreplied")
	}
	m.MarkRead()
	m.MarkReplied()
	if !m.Read {
		t.Error("message should be read after MarkRead")
	}
	if !m.Replied {
		t.Error("message should be replied after MarkReplied")
	}
}

// TestMessage_ReplyMailto tests mailto URI generation.
func TestMessage_ReplyMailto(t *testing.T) {
	t.Run("with subject", func(t *testing.T) {
		m := message.Message{Email: "ama@example.com", Subject: "Booking question"}
		got := m.ReplyMailto()
		want := "mailto:ama@example.com?subject=Re%3A+Booking+question"
		if got != want {
			t.Errorf("ReplyMailto() = %q, want %q", got, want)
		}
	})

	t.Run("subject fallback", func(t *testing.T) {
		m := message.Message{Email: "ama@example.com"}
		got := m.ReplyMailto()
		want := "mailto:ama@example.com?subject=Re%3A+Your+inquiry"
		if got != want {
			t.Errorf("ReplyMailto() = %q, want %q", got, want)
		}
	})
}
