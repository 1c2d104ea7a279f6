package models

// RawProject is the loosely-typed shape of a persisted project record of
// unknown vintage. It is the only input the migration normalizer accepts;
// everything else in the codebase works on the canonical Project.
//
// Older records carry a free-text progressNotes field instead of an
// updateLog, and may lack startDate and the child collections entirely.
type RawProject struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	StudentName      string           `json:"studentName"`
	Technology       Technology       `json:"technology"`
	StartDate        string           `json:"startDate"`
	Deadline         string           `json:"deadline"`
	Status           Status           `json:"status"`
	Description      string           `json:"description"`
	ProgressNotes    string           `json:"progressNotes"`
	Tasks            []Task           `json:"tasks"`
	UpdateLog        []UpdateLogEntry `json:"updateLog"`
	Attachments      []Attachment     `json:"attachments"`
	GithubLink       string           `json:"githubLink"`
	WhatsappNumber   string           `json:"whatsappNumber"`
	TelegramUsername string           `json:"telegramUsername"`
}
