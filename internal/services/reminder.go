package services

import (
	"github.com/robfig/cron/v3"

	"github.com/ismaelfarah/studenttrack/internal/config"
	"github.com/ismaelfarah/studenttrack/pkg/logger"
)

// ReminderService periodically sweeps the project list and sends a
// Telegram message for every open project whose deadline is near.
type ReminderService struct {
	projects *ProjectService
	telegram *TelegramService
	cfg      config.ReminderConfig
	cron     *cron.Cron
}

func NewReminderService(projects *ProjectService, telegram *TelegramService, cfg config.ReminderConfig) *ReminderService {
	return &ReminderService{
		projects: projects,
		telegram: telegram,
		cfg:      cfg,
	}
}

// StartScheduler registers the sweep on its cron schedule. Does nothing
// when reminders are disabled.
func (s *ReminderService) StartScheduler() error {
	if !s.cfg.Enabled {
		logger.Info().Msg("deadline reminders disabled")
		return nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.Run); err != nil {
		return err
	}
	s.cron.Start()
	logger.Info().
		Str("schedule", s.cfg.Schedule).
		Int("days_ahead", s.cfg.DaysAhead).
		Msg("deadline reminder scheduler started")
	return nil
}

// StopScheduler stops the cron loop. Safe to call when never started.
func (s *ReminderService) StopScheduler() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Run executes one sweep. Delivery failures are logged per project and
// do not stop the sweep.
func (s *ReminderService) Run() {
	cfg, err := s.telegram.Config()
	if err != nil {
		logger.Warn().Err(err).Msg("skipping reminder sweep")
		return
	}
	if !cfg.Configured() {
		logger.Debug().Msg("telegram not configured, skipping reminder sweep")
		return
	}

	alerts := s.projects.DueWithin(s.cfg.DaysAhead)
	for _, alert := range alerts {
		text := ComposeDeadlineReminder(&alert.Project, alert.DaysLeft)
		if err := s.telegram.Send(text, BuildKeyboard(&alert.Project)); err != nil {
			logger.Error().Err(err).
				Str("project_id", alert.Project.ID).
				Msg("failed to send deadline reminder")
		}
	}
	if len(alerts) > 0 {
		logger.Info().Int("count", len(alerts)).Msg("deadline reminder sweep finished")
	}
}
