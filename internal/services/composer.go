package services

import (
	"fmt"
	"strings"

	"github.com/ismaelfarah/studenttrack/internal/models"
)

// DispatchContext carries the event-specific extras a message needs
// beyond the project snapshot itself.
type DispatchContext struct {
	// OriginalStatus is the status before the change, required for
	// status-change events.
	OriginalStatus models.Status

	// Changes is the rendered diff, required for detail-update events.
	Changes *ChangeSet
}

// InlineButton is a single URL button of a Telegram inline keyboard.
type InlineButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// ComposeMessage renders the MarkdownV2 notification text for a project
// lifecycle event. It returns an empty string when the event carries
// nothing to announce, which callers treat as "do not send".
func ComposeMessage(event models.NotificationEvent, p *models.Project, ctx *DispatchContext) string {
	switch event {
	case models.EventProjectCreated:
		return composeCreated(p)
	case models.EventStatusChanged:
		if ctx == nil {
			return ""
		}
		return composeStatusChanged(p, ctx.OriginalStatus)
	case models.EventDetailsUpdated:
		if ctx == nil || ctx.Changes == nil || ctx.Changes.Empty() {
			return ""
		}
		return composeDetailsUpdated(p, ctx.Changes)
	case models.EventProjectDeleted:
		return composeDeleted(p)
	default:
		return ""
	}
}

func composeCreated(p *models.Project) string {
	var b strings.Builder
	b.WriteString("✅ *New Project Added*\n\n")
	fmt.Fprintf(&b, "*Project:* %s\n", EscapeMarkdownV2(p.Name))
	fmt.Fprintf(&b, "*Student:* %s\n", EscapeMarkdownV2(p.StudentName))
	fmt.Fprintf(&b, "*Technology:* %s\n", EscapeMarkdownV2(string(p.Technology)))
	fmt.Fprintf(&b, "*Deadline:* %s\n", EscapeMarkdownV2(p.Deadline))
	b.WriteString("\n🚀 Let the journey begin\\!")
	return b.String()
}

func composeStatusChanged(p *models.Project, original models.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Project Status Updated: %s*\n\n", EscapeMarkdownV2(p.Name))
	fmt.Fprintf(&b, "Status changed from %s _%s_ to %s *%s*\\.",
		original.Meta().Emoji, EscapeMarkdownV2(original.Label()),
		p.Status.Meta().Emoji, EscapeMarkdownV2(p.Status.Label()))
	return b.String()
}

func composeDetailsUpdated(p *models.Project, changes *ChangeSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔄 *Project Updated: %s*\n", EscapeMarkdownV2(p.Name))

	writeSection := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n*%s*\n", title)
		for _, line := range lines {
			b.WriteString("• " + line + "\n")
		}
	}

	writeSection("Details:", changes.Details)
	writeSection("Tasks:", changes.Tasks)
	writeSection("Attachments:", changes.Attachments)
	writeSection("Progress Log:", changes.Logs)

	b.WriteString("\n✨ Keep up the great work\\!")
	return b.String()
}

func composeDeleted(p *models.Project) string {
	var b strings.Builder
	b.WriteString("🗑️ *Project Deleted*\n\n")
	b.WriteString("The following project has been removed:\n\n")
	fmt.Fprintf(&b, "*Project:* %s\n", EscapeMarkdownV2(p.Name))
	fmt.Fprintf(&b, "*Student:* %s", EscapeMarkdownV2(p.StudentName))
	return b.String()
}

// ComposeDeadlineReminder renders the scheduled deadline sweep message
// for a single project.
func ComposeDeadlineReminder(p *models.Project, daysLeft int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⏰ *Deadline Reminder: %s*\n\n", EscapeMarkdownV2(p.Name))
	fmt.Fprintf(&b, "*Student:* %s\n", EscapeMarkdownV2(p.StudentName))
	fmt.Fprintf(&b, "*Deadline:* %s\n", EscapeMarkdownV2(p.Deadline))
	fmt.Fprintf(&b, "*Status:* %s %s\n\n",
		p.Status.Meta().Emoji, EscapeMarkdownV2(p.Status.Label()))
	switch {
	case daysLeft < 0:
		fmt.Fprintf(&b, "This project is %d day\\(s\\) overdue\\!", -daysLeft)
	case daysLeft == 0:
		b.WriteString("The deadline is *today*\\!")
	default:
		fmt.Fprintf(&b, "Only %d day\\(s\\) left\\.", daysLeft)
	}
	return b.String()
}

// BuildKeyboard assembles the inline keyboard rows for a project.
// GitHub and WhatsApp buttons appear only when the corresponding field is
// set; the WhatsApp link keeps digits only so wa.me accepts it. Returns
// nil when the project has no linkable contact.
func BuildKeyboard(p *models.Project) [][]InlineButton {
	var row []InlineButton

	if p.GithubLink != "" {
		row = append(row, InlineButton{Text: "View on GitHub ↗️", URL: p.GithubLink})
	}
	if p.WhatsappNumber != "" {
		digits := keepDigits(p.WhatsappNumber)
		if digits != "" {
			row = append(row, InlineButton{Text: "Chat on WhatsApp 💬", URL: "https://wa.me/" + digits})
		}
	}

	if len(row) == 0 {
		return nil
	}
	return [][]InlineButton{row}
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
