package services

import (
	"strings"
	"testing"

	"github.com/ismaelfarah/studenttrack/internal/models"
)

func TestComposeMessageCreated(t *testing.T) {
	p := baseProject()
	p.Name = "Library System v1.0"

	msg := ComposeMessage(models.EventProjectCreated, p, nil)

	if !strings.HasPrefix(msg, "✅ *New Project Added*") {
		t.Errorf("unexpected header: %q", msg)
	}
	for _, want := range []string{
		"*Project:* Library System v1\\.0",
		"*Student:* Omar",
		"*Technology:* Java",
		"*Deadline:* 2025\\-07\\-01",
		"🚀 Let the journey begin\\!",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestComposeMessageStatusChanged(t *testing.T) {
	p := baseProject()
	p.Status = models.StatusDelivered

	msg := ComposeMessage(models.EventStatusChanged, p, &DispatchContext{
		OriginalStatus: models.StatusCompleted,
	})

	for _, want := range []string{
		"📊 *Project Status Updated: Library System*",
		"✅ _Completed_",
		"🎉 *Delivered*",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestComposeMessageStatusChangedWithoutContext(t *testing.T) {
	if msg := ComposeMessage(models.EventStatusChanged, baseProject(), nil); msg != "" {
		t.Errorf("expected empty message without context, got %q", msg)
	}
}

func TestComposeMessageDetailsUpdated(t *testing.T) {
	p := baseProject()
	changes := &ChangeSet{
		Details: []string{"*Deadline:* 2025\\-07\\-01 ➡️ 2025\\-08\\-01"},
		Tasks:   []string{"➕ *New task:* Write tests"},
	}

	msg := ComposeMessage(models.EventDetailsUpdated, p, &DispatchContext{Changes: changes})

	for _, want := range []string{
		"🔄 *Project Updated: Library System*",
		"*Details:*\n• *Deadline:*",
		"*Tasks:*\n• ➕ *New task:* Write tests",
		"✨ Keep up the great work\\!",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}

	// Sections with no changes stay out of the message entirely.
	for _, absent := range []string{"*Attachments:*", "*Progress Log:*"} {
		if strings.Contains(msg, absent) {
			t.Errorf("message must not contain empty section %q:\n%s", absent, msg)
		}
	}
}

func TestComposeMessageDetailsUpdatedEmptyChangeSet(t *testing.T) {
	tests := []struct {
		name string
		ctx  *DispatchContext
	}{
		{"nil context", nil},
		{"nil changes", &DispatchContext{}},
		{"empty changes", &DispatchContext{Changes: &ChangeSet{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if msg := ComposeMessage(models.EventDetailsUpdated, baseProject(), tt.ctx); msg != "" {
				t.Errorf("expected empty message, got %q", msg)
			}
		})
	}
}

func TestComposeMessageDeleted(t *testing.T) {
	msg := ComposeMessage(models.EventProjectDeleted, baseProject(), nil)

	for _, want := range []string{
		"🗑️ *Project Deleted*",
		"*Project:* Library System",
		"*Student:* Omar",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestComposeMessageUnknownEvent(t *testing.T) {
	if msg := ComposeMessage(models.NotificationEvent("onUnknown"), baseProject(), nil); msg != "" {
		t.Errorf("expected empty message for unknown event, got %q", msg)
	}
}

func TestComposeDeadlineReminder(t *testing.T) {
	tests := []struct {
		name     string
		daysLeft int
		want     string
	}{
		{"days remaining", 3, "Only 3 day\\(s\\) left\\."},
		{"today", 0, "The deadline is *today*\\!"},
		{"overdue", -2, "This project is 2 day\\(s\\) overdue\\!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ComposeDeadlineReminder(baseProject(), tt.daysLeft)
			if !strings.Contains(msg, tt.want) {
				t.Errorf("reminder missing %q:\n%s", tt.want, msg)
			}
			if !strings.Contains(msg, "⏰ *Deadline Reminder: Library System*") {
				t.Errorf("reminder missing header:\n%s", msg)
			}
		})
	}
}

func TestBuildKeyboard(t *testing.T) {
	tests := []struct {
		name     string
		github   string
		whatsapp string
		want     []InlineButton
	}{
		{
			name: "no links", want: nil,
		},
		{
			name:   "github only",
			github: "https://github.com/omar/library",
			want:   []InlineButton{{Text: "View on GitHub ↗️", URL: "https://github.com/omar/library"}},
		},
		{
			name:     "whatsapp digits stripped",
			whatsapp: "+20 100-555-1234",
			want:     []InlineButton{{Text: "Chat on WhatsApp 💬", URL: "https://wa.me/201005551234"}},
		},
		{
			name:     "both in one row",
			github:   "https://github.com/omar/library",
			whatsapp: "+201005551234",
			want: []InlineButton{
				{Text: "View on GitHub ↗️", URL: "https://github.com/omar/library"},
				{Text: "Chat on WhatsApp 💬", URL: "https://wa.me/201005551234"},
			},
		},
		{
			name:     "whatsapp with no digits ignored",
			whatsapp: "ask me",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProject()
			p.GithubLink = tt.github
			p.WhatsappNumber = tt.whatsapp

			rows := BuildKeyboard(p)

			if tt.want == nil {
				if rows != nil {
					t.Fatalf("expected no keyboard, got %v", rows)
				}
				return
			}
			if len(rows) != 1 {
				t.Fatalf("expected 1 row, got %d", len(rows))
			}
			if len(rows[0]) != len(tt.want) {
				t.Fatalf("expected %d buttons, got %v", len(tt.want), rows[0])
			}
			for i := range tt.want {
				if rows[0][i] != tt.want[i] {
					t.Errorf("button %d = %+v, want %+v", i, rows[0][i], tt.want[i])
				}
			}
		})
	}
}
