package models

// Technology is the closed set of technologies a student project can use.
type Technology string

const (
	TechC       Technology = "C"
	TechJava    Technology = "Java"
	TechJavaFX  Technology = "JavaFX"
	TechPython  Technology = "Python"
	TechAndroid Technology = "Android"
	TechWebApp  Technology = "Web App"
)

// Technologies lists every valid Technology value.
func Technologies() []Technology {
	return []Technology{TechC, TechJava, TechJavaFX, TechPython, TechAndroid, TechWebApp}
}

// Valid reports whether t is one of the known technologies.
func (t Technology) Valid() bool {
	for _, known := range Technologies() {
		if t == known {
			return true
		}
	}
	return false
}

// Status is a project's lifecycle stage. The stages are ordered
// (NotStarted -> InProgress -> Completed -> Delivered) but transitions
// are not restricted; any status may be set from any other.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusDelivered  Status = "delivered"
)

// StatusMeta holds display metadata for a status.
type StatusMeta struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// StatusDetails maps every Status to its display metadata. Adding a new
// status requires adding an entry here; Meta falls back to an empty
// record for unknown values.
var StatusDetails = map[Status]StatusMeta{
	StatusNotStarted: {Label: "Not Started", Emoji: "⏸️"},
	StatusInProgress: {Label: "In Progress", Emoji: "⏳"},
	StatusCompleted:  {Label: "Completed", Emoji: "✅"},
	StatusDelivered:  {Label: "Delivered", Emoji: "🎉"},
}

// Meta returns the display metadata for s.
func (s Status) Meta() StatusMeta {
	return StatusDetails[s]
}

// Label returns the human-readable label for s, falling back to the raw
// value for unknown statuses.
func (s Status) Label() string {
	if meta, ok := StatusDetails[s]; ok {
		return meta.Label
	}
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := StatusDetails[s]
	return ok
}

// Task is a single checklist item on a project. The id is stable across
// edits so before/after versions can be correlated.
type Task struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// UpdateLogEntry is one append-only progress note.
type UpdateLogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"` // ISO-8601 instant
}

// Attachment is a file stored inline as a data URL. Attachments are
// immutable once created; they can only be added or removed.
type Attachment struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	DataURL string `json:"dataUrl"`
}

// MaxAttachmentSize is the per-file ceiling enforced at import time.
const MaxAttachmentSize = 5 * 1024 * 1024

// Project is the aggregate root. Dates are YYYY-MM-DD strings, matching
// the persisted browser format this service inherited. After
// normalization Tasks, UpdateLog and Attachments are always non-nil.
type Project struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	StudentName      string           `json:"studentName"`
	Technology       Technology       `json:"technology"`
	StartDate        string           `json:"startDate"`
	Deadline         string           `json:"deadline"`
	Status           Status           `json:"status"`
	Description      string           `json:"description"`
	Tasks            []Task           `json:"tasks"`
	UpdateLog        []UpdateLogEntry `json:"updateLog"`
	Attachments      []Attachment     `json:"attachments"`
	GithubLink       string           `json:"githubLink,omitempty"`
	WhatsappNumber   string           `json:"whatsappNumber,omitempty"`
	TelegramUsername string           `json:"telegramUsername,omitempty"`
}

// Clone returns a deep copy of p, used to capture pre-mutation snapshots.
func (p *Project) Clone() *Project {
	cp := *p
	cp.Tasks = append([]Task(nil), p.Tasks...)
	cp.UpdateLog = append([]UpdateLogEntry(nil), p.UpdateLog...)
	cp.Attachments = append([]Attachment(nil), p.Attachments...)
	return &cp
}
