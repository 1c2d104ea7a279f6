package main

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaelfarah/studenttrack/internal/config"
	"github.com/ismaelfarah/studenttrack/internal/services"
	"github.com/ismaelfarah/studenttrack/internal/storage"
	"github.com/ismaelfarah/studenttrack/internal/utils"
	"github.com/ismaelfarah/studenttrack/pkg/logger"
)

// app holds everything main needs to run and shut down the server.
type app struct {
	router   *gin.Engine
	reminder *services.ReminderService
}

// bootstrap wires storage, services and routes together.
func bootstrap(cfg *config.Config) (*app, error) {
	gin.SetMode(cfg.Server.Mode)
	utils.SetJWTSecret(cfg.JWT.Secret)

	store, err := storage.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database connected")

	telegram := services.NewTelegramService(store, cfg.Telegram.APIBase)
	projects, err := services.NewProjectService(store, services.NewAsyncNotifier(telegram))
	if err != nil {
		return nil, err
	}

	ai := services.NewAIService(&cfg.OpenAI)
	if ai == nil {
		logger.Info().Msg("AI task suggestions disabled, no API key configured")
	}

	reminder := services.NewReminderService(projects, telegram, cfg.Reminder)
	if err := reminder.StartScheduler(); err != nil {
		return nil, err
	}

	router := setupRouter(cfg, projects, telegram, ai)
	return &app{router: router, reminder: reminder}, nil
}

func (a *app) shutdown() {
	a.reminder.StopScheduler()
}
