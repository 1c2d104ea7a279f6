package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/ismaelfarah/studenttrack/internal/models"
)

// dateLayout is the calendar-date format used throughout the persisted data.
const dateLayout = "2006-01-02"

// Normalize upgrades a raw persisted project record of unknown vintage
// into the canonical shape. It never fails: every rule is applied
// defensively field by field, and normalizing an already-canonical record
// returns an equivalent value.
func Normalize(raw *models.RawProject, now time.Time) models.Project {
	p := models.Project{
		ID:               raw.ID,
		Name:             raw.Name,
		StudentName:      raw.StudentName,
		Technology:       raw.Technology,
		StartDate:        raw.StartDate,
		Deadline:         raw.Deadline,
		Status:           raw.Status,
		Description:      raw.Description,
		Tasks:            raw.Tasks,
		UpdateLog:        raw.UpdateLog,
		Attachments:      raw.Attachments,
		GithubLink:       raw.GithubLink,
		WhatsappNumber:   raw.WhatsappNumber,
		TelegramUsername: raw.TelegramUsername,
	}

	// One-shot migration: legacy records carried a free-text progressNotes
	// field instead of an update log. The note becomes the first log entry
	// and progressNotes is dropped from the canonical record for good.
	if raw.ProgressNotes != "" && len(raw.UpdateLog) == 0 {
		p.UpdateLog = []models.UpdateLogEntry{{
			ID:        "log-" + uuid.NewString(),
			Text:      raw.ProgressNotes,
			Timestamp: now.UTC().Format(time.RFC3339),
		}}
	}

	if p.Tasks == nil {
		p.Tasks = []models.Task{}
	}
	if p.UpdateLog == nil {
		p.UpdateLog = []models.UpdateLogEntry{}
	}
	if p.Attachments == nil {
		p.Attachments = []models.Attachment{}
	}

	if p.StartDate == "" {
		// Records predating the timeline view have no start date. Default
		// to one calendar month before the deadline; this is month
		// arithmetic, not a fixed 30-day offset, so the day may shift at
		// month boundaries.
		if deadline, err := time.Parse(dateLayout, p.Deadline); err == nil {
			p.StartDate = deadline.AddDate(0, -1, 0).Format(dateLayout)
		} else {
			p.StartDate = now.Format(dateLayout)
		}
	}

	return p
}

// NormalizeAll runs Normalize over a loaded batch, preserving order.
func NormalizeAll(raws []models.RawProject, now time.Time) []models.Project {
	projects := make([]models.Project, 0, len(raws))
	for i := range raws {
		projects = append(projects, Normalize(&raws[i], now))
	}
	return projects
}
