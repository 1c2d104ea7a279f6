package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ismaelfarah/studenttrack/internal/models"
	"github.com/ismaelfarah/studenttrack/internal/storage"
	"github.com/ismaelfarah/studenttrack/pkg/logger"
)

var (
	// ErrProjectNotFound is returned when an id does not match any project.
	ErrProjectNotFound = errors.New("project not found")

	// ErrPersist marks a persistence failure after a successful in-memory
	// mutation. The mutation stands; callers surface the error as a
	// warning rather than rolling back.
	ErrPersist = errors.New("failed to persist projects")

	// ErrInvalidBackup is returned when a restore payload fails validation.
	ErrInvalidBackup = errors.New("invalid backup file")

	// ErrNoProjects is returned when a backup is requested with nothing
	// to export.
	ErrNoProjects = errors.New("no projects to back up")
)

// ProjectInput is the payload accepted by Create and Update. Child
// collections may arrive without ids; the service assigns them.
type ProjectInput struct {
	Name             string                  `json:"name" binding:"required"`
	StudentName      string                  `json:"studentName" binding:"required"`
	Technology       models.Technology       `json:"technology" binding:"required"`
	StartDate        string                  `json:"startDate"`
	Deadline         string                  `json:"deadline" binding:"required"`
	Status           models.Status           `json:"status"`
	Description      string                  `json:"description"`
	Tasks            []models.Task           `json:"tasks"`
	UpdateLog        []models.UpdateLogEntry `json:"updateLog"`
	Attachments      []models.Attachment     `json:"attachments"`
	GithubLink       string                  `json:"githubLink"`
	WhatsappNumber   string                  `json:"whatsappNumber"`
	TelegramUsername string                  `json:"telegramUsername"`
}

// DashboardStats is the aggregate summary shown on the dashboard.
type DashboardStats struct {
	Total    int                  `json:"total"`
	ByStatus map[models.Status]int `json:"byStatus"`
	Students int                  `json:"students"`
	DueSoon  int                  `json:"dueSoon"`
}

// DeadlineAlert pairs a project with how many days remain before its
// deadline. Negative DaysLeft means overdue.
type DeadlineAlert struct {
	Project  models.Project
	DaysLeft int
}

// ProjectService owns the in-memory project list and writes it through
// to the store as a single JSON document. All reads and mutations go
// through the service; the in-memory list is the source of truth and a
// failed write never rolls a mutation back.
type ProjectService struct {
	mu       sync.Mutex
	store    storage.Store
	notifier Notifier
	projects []models.Project
	now      func() time.Time
}

// NewProjectService loads and normalizes the persisted projects. A
// corrupt document fails startup rather than silently starting empty.
func NewProjectService(store storage.Store, notifier Notifier) (*ProjectService, error) {
	s := &ProjectService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ProjectService) load() error {
	data, ok, err := s.store.Get(storage.KeyProjects)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	if !ok {
		s.projects = []models.Project{}
		return nil
	}

	var raws []models.RawProject
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("failed to parse stored projects: %w", err)
	}

	s.projects = NormalizeAll(raws, s.now())
	logger.Info().Int("count", len(s.projects)).Msg("projects loaded")
	return nil
}

// persist writes the full list through to the store. Errors are logged
// here and wrapped with ErrPersist for the caller to surface.
func (s *ProjectService) persist() error {
	data, err := json.Marshal(s.projects)
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode projects")
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := s.store.Set(storage.KeyProjects, data); err != nil {
		logger.Error().Err(err).Msg("failed to write projects")
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// List returns a snapshot copy of every project, newest first.
func (s *ProjectService) List() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Project, 0, len(s.projects))
	for i := range s.projects {
		out = append(out, *s.projects[i].Clone())
	}
	return out
}

// Get returns a copy of the project with the given id.
func (s *ProjectService) Get(id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}
	return s.projects[idx].Clone(), nil
}

// Create adds a new project and announces it. The returned error is
// ErrPersist-wrapped when the project was added but could not be written
// through.
func (s *ProjectService) Create(input *ProjectInput) (*models.Project, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	project := s.fromInput(input)
	project.ID = uuid.NewString()

	// Newest project first, matching the dashboard ordering.
	s.projects = append([]models.Project{project}, s.projects...)
	persistErr := s.persist()
	snapshot := project.Clone()
	s.mu.Unlock()

	s.notifier.Dispatch(models.EventProjectCreated, snapshot, nil)
	return snapshot, persistErr
}

// Update replaces a project wholesale, diffs it against the previous
// snapshot and announces the changes when there are any.
func (s *ProjectService) Update(id string, input *ProjectInput) (*models.Project, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrProjectNotFound
	}

	before := s.projects[idx].Clone()
	updated := s.fromInput(input)
	updated.ID = id

	s.projects[idx] = updated
	persistErr := s.persist()
	snapshot := updated.Clone()
	s.mu.Unlock()

	changes := Diff(before, snapshot)
	if !changes.Empty() {
		s.notifier.Dispatch(models.EventDetailsUpdated, snapshot, &DispatchContext{Changes: changes})
	}
	return snapshot, persistErr
}

// UpdateStatus moves a project to a new lifecycle stage. Setting the
// current status again is a no-op and sends nothing.
func (s *ProjectService) UpdateStatus(id string, status models.Status) (*models.Project, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrProjectNotFound
	}

	original := s.projects[idx].Status
	if original == status {
		snapshot := s.projects[idx].Clone()
		s.mu.Unlock()
		return snapshot, nil
	}

	s.projects[idx].Status = status
	persistErr := s.persist()
	snapshot := s.projects[idx].Clone()
	s.mu.Unlock()

	s.notifier.Dispatch(models.EventStatusChanged, snapshot, &DispatchContext{OriginalStatus: original})
	return snapshot, persistErr
}

// Delete removes a project and announces the removal using the final
// snapshot.
func (s *ProjectService) Delete(id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrProjectNotFound
	}

	snapshot := s.projects[idx].Clone()
	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)
	persistErr := s.persist()
	s.mu.Unlock()

	s.notifier.Dispatch(models.EventProjectDeleted, snapshot, nil)
	return persistErr
}

// Backup exports every project as an indented JSON document together
// with a dated download filename.
func (s *ProjectService) Backup() ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.projects) == 0 {
		return nil, "", ErrNoProjects
	}

	data, err := json.MarshalIndent(s.projects, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode backup: %w", err)
	}
	filename := fmt.Sprintf("projects-backup-%s.json", s.now().Format(dateLayout))
	return data, filename, nil
}

// Restore validates a backup payload and replaces the entire project
// list with its normalized contents. On any validation failure the
// current list is left untouched. Restores are silent; no notifications
// are sent for the imported projects.
func (s *ProjectService) Restore(data []byte) (int, error) {
	var probe []map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("%w: not a JSON array of projects", ErrInvalidBackup)
	}
	for i, elem := range probe {
		for _, field := range []string{"id", "name", "status"} {
			raw, ok := elem[field]
			if !ok {
				return 0, fmt.Errorf("%w: element %d is missing %q", ErrInvalidBackup, i, field)
			}
			var v string
			if err := json.Unmarshal(raw, &v); err != nil || v == "" {
				return 0, fmt.Errorf("%w: element %d has an empty %q", ErrInvalidBackup, i, field)
			}
		}
	}

	var raws []models.RawProject
	if err := json.Unmarshal(data, &raws); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	for i := range raws {
		for _, a := range raws[i].Attachments {
			if a.Size > models.MaxAttachmentSize {
				return 0, fmt.Errorf("%w: element %d attachment %q exceeds the 5 MB limit",
					ErrInvalidBackup, i, a.Name)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects = NormalizeAll(raws, s.now())
	if err := s.persist(); err != nil {
		return len(s.projects), err
	}
	logger.Info().Int("count", len(s.projects)).Msg("projects restored from backup")
	return len(s.projects), nil
}

// Stats summarizes the project list for the dashboard.
func (s *ProjectService) Stats() *DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &DashboardStats{
		Total:    len(s.projects),
		ByStatus: make(map[models.Status]int, 4),
	}
	students := make(map[string]struct{})
	today := truncateToDay(s.now())

	for i := range s.projects {
		p := &s.projects[i]
		stats.ByStatus[p.Status]++
		students[p.StudentName] = struct{}{}

		if p.Status == models.StatusCompleted || p.Status == models.StatusDelivered {
			continue
		}
		if deadline, err := time.Parse(dateLayout, p.Deadline); err == nil {
			days := int(deadline.Sub(today).Hours() / 24)
			if days >= 0 && days <= 7 {
				stats.DueSoon++
			}
		}
	}
	stats.Students = len(students)
	return stats
}

// DueWithin returns the open projects whose deadline falls within days
// from today, overdue ones included, ordered soonest first.
func (s *ProjectService) DueWithin(days int) []DeadlineAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := truncateToDay(s.now())
	var alerts []DeadlineAlert
	for i := range s.projects {
		p := &s.projects[i]
		if p.Status == models.StatusCompleted || p.Status == models.StatusDelivered {
			continue
		}
		deadline, err := time.Parse(dateLayout, p.Deadline)
		if err != nil {
			continue
		}
		left := int(deadline.Sub(today).Hours() / 24)
		if left <= days {
			alerts = append(alerts, DeadlineAlert{Project: *p.Clone(), DaysLeft: left})
		}
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].DaysLeft < alerts[j].DaysLeft
	})
	return alerts
}

func (s *ProjectService) indexOf(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// fromInput builds a normalized project from a request payload and
// assigns ids to any child items that arrived without one.
func (s *ProjectService) fromInput(input *ProjectInput) models.Project {
	raw := models.RawProject{
		Name:             input.Name,
		StudentName:      input.StudentName,
		Technology:       input.Technology,
		StartDate:        input.StartDate,
		Deadline:         input.Deadline,
		Status:           input.Status,
		Description:      input.Description,
		Tasks:            input.Tasks,
		UpdateLog:        input.UpdateLog,
		Attachments:      input.Attachments,
		GithubLink:       input.GithubLink,
		WhatsappNumber:   input.WhatsappNumber,
		TelegramUsername: input.TelegramUsername,
	}
	p := Normalize(&raw, s.now())
	if p.Status == "" {
		p.Status = models.StatusNotStarted
	}
	ensureIDs(&p)
	return p
}

func ensureIDs(p *models.Project) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == "" {
			p.Tasks[i].ID = "task-" + uuid.NewString()
		}
	}
	for i := range p.UpdateLog {
		if p.UpdateLog[i].ID == "" {
			p.UpdateLog[i].ID = "log-" + uuid.NewString()
		}
	}
	for i := range p.Attachments {
		if p.Attachments[i].ID == "" {
			p.Attachments[i].ID = "att-" + uuid.NewString()
		}
	}
}

func validateInput(input *ProjectInput) error {
	if input.Name == "" {
		return errors.New("project name is required")
	}
	if input.StudentName == "" {
		return errors.New("student name is required")
	}
	if input.Technology != "" && !input.Technology.Valid() {
		return fmt.Errorf("unknown technology %q", input.Technology)
	}
	if input.Status != "" && !input.Status.Valid() {
		return fmt.Errorf("unknown status %q", input.Status)
	}
	for i := range input.Attachments {
		if input.Attachments[i].Size > models.MaxAttachmentSize {
			return fmt.Errorf("attachment %q exceeds the 5 MB limit", input.Attachments[i].Name)
		}
	}
	return nil
}

// truncateToDay maps t to midnight UTC so day arithmetic against parsed
// calendar dates is exact.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
