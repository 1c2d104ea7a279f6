package services

import (
	"fmt"

	"github.com/ismaelfarah/studenttrack/internal/models"
)

// emptyValueMarker renders in place of a blank field so a change from or
// to nothing still reads as a transition.
const emptyValueMarker = "_none_"

// ChangeSet groups the human-readable change lines produced by Diff,
// one bucket per section of the update notification. Every line is
// already MarkdownV2-rendered and must not be escaped again.
type ChangeSet struct {
	Details     []string `json:"details"`
	Tasks       []string `json:"tasks"`
	Attachments []string `json:"attachments"`
	Logs        []string `json:"logs"`
}

// Empty reports whether the diff found no changes at all.
func (c *ChangeSet) Empty() bool {
	return len(c.Details) == 0 && len(c.Tasks) == 0 &&
		len(c.Attachments) == 0 && len(c.Logs) == 0
}

// Len returns the total number of change lines across all sections.
func (c *ChangeSet) Len() int {
	return len(c.Details) + len(c.Tasks) + len(c.Attachments) + len(c.Logs)
}

// Diff compares two project snapshots and describes every difference as
// notification-ready MarkdownV2 lines. Neither argument is mutated, and
// diffing a project against itself yields an empty ChangeSet.
func Diff(before, after *models.Project) *ChangeSet {
	cs := &ChangeSet{}
	cs.Details = diffDetails(before, after)
	cs.Tasks = diffTasks(before.Tasks, after.Tasks)
	cs.Attachments = diffAttachments(before.Attachments, after.Attachments)
	cs.Logs = diffLogs(before.UpdateLog, after.UpdateLog)
	return cs
}

func diffDetails(before, after *models.Project) []string {
	var lines []string

	scalar := func(label, oldVal, newVal string) {
		if oldVal != newVal {
			lines = append(lines, fmt.Sprintf("*%s:* %s ➡️ %s",
				label, renderValue(oldVal), renderValue(newVal)))
		}
	}

	scalar("Name", before.Name, after.Name)
	scalar("Student", before.StudentName, after.StudentName)
	scalar("Technology", string(before.Technology), string(after.Technology))
	scalar("Start Date", before.StartDate, after.StartDate)
	scalar("Deadline", before.Deadline, after.Deadline)
	scalar("GitHub Link", before.GithubLink, after.GithubLink)
	scalar("WhatsApp Number", before.WhatsappNumber, after.WhatsappNumber)
	scalar("Telegram Username", before.TelegramUsername, after.TelegramUsername)

	if before.Status != after.Status {
		lines = append(lines, fmt.Sprintf("*Status:* %s %s ➡️ %s %s",
			before.Status.Meta().Emoji, EscapeMarkdownV2(before.Status.Label()),
			after.Status.Meta().Emoji, EscapeMarkdownV2(after.Status.Label())))
	}

	// The description can run long, so it is reported as a fact rather
	// than an old/new pair.
	if before.Description != after.Description {
		lines = append(lines, "📝 The description has been updated\\.")
	}

	return lines
}

func diffTasks(before, after []models.Task) []string {
	var lines []string

	prev := make(map[string]models.Task, len(before))
	for _, t := range before {
		prev[t.ID] = t
	}

	for _, t := range after {
		old, ok := prev[t.ID]
		if !ok {
			lines = append(lines, "➕ *New task:* "+EscapeMarkdownV2(t.Text))
			continue
		}
		// A task edited and toggled in the same save reports both facts
		// as separate lines.
		if old.Text != t.Text {
			lines = append(lines, "✏️ *Task edited:* "+EscapeMarkdownV2(t.Text))
		}
		if old.IsCompleted != t.IsCompleted {
			if t.IsCompleted {
				lines = append(lines, "✅ *Task completed:* "+EscapeMarkdownV2(t.Text))
			} else {
				lines = append(lines, "🔄 *Task reopened:* "+EscapeMarkdownV2(t.Text))
			}
		}
	}

	next := make(map[string]struct{}, len(after))
	for _, t := range after {
		next[t.ID] = struct{}{}
	}
	for _, t := range before {
		if _, ok := next[t.ID]; !ok {
			lines = append(lines, "➖ *Task removed:* "+EscapeMarkdownV2(t.Text))
		}
	}

	return lines
}

func diffAttachments(before, after []models.Attachment) []string {
	var lines []string

	prev := make(map[string]struct{}, len(before))
	for _, a := range before {
		prev[a.ID] = struct{}{}
	}
	for _, a := range after {
		if _, ok := prev[a.ID]; !ok {
			lines = append(lines, "📎 *Attachment added:* "+EscapeMarkdownV2(a.Name))
		}
	}

	next := make(map[string]struct{}, len(after))
	for _, a := range after {
		next[a.ID] = struct{}{}
	}
	for _, a := range before {
		if _, ok := next[a.ID]; !ok {
			lines = append(lines, "🗑️ *Attachment removed:* "+EscapeMarkdownV2(a.Name))
		}
	}

	return lines
}

// diffLogs reports additions only. Log entries are append-only in the UI,
// so removals and edits are not surfaced.
func diffLogs(before, after []models.UpdateLogEntry) []string {
	prev := make(map[string]struct{}, len(before))
	for _, e := range before {
		prev[e.ID] = struct{}{}
	}

	var lines []string
	for _, e := range after {
		if _, ok := prev[e.ID]; !ok {
			lines = append(lines, "📌 *New update:* "+EscapeMarkdownV2(e.Text))
		}
	}
	return lines
}

func renderValue(v string) string {
	if v == "" {
		return emptyValueMarker
	}
	return EscapeMarkdownV2(v)
}
