package main

import (
	"github.com/gin-gonic/gin"

	"github.com/ismaelfarah/studenttrack/internal/config"
	"github.com/ismaelfarah/studenttrack/internal/handlers"
	"github.com/ismaelfarah/studenttrack/internal/middleware"
	"github.com/ismaelfarah/studenttrack/internal/services"
	"github.com/ismaelfarah/studenttrack/pkg/logger"
)

func setupRouter(cfg *config.Config, projects *services.ProjectService, telegram *services.TelegramService, ai *services.AIService) *gin.Engine {
	router := gin.New()
	router.Use(logger.GinLogger(), logger.GinRecovery(), middleware.CORS())

	router.GET("/health", handlers.Health)

	authHandler := handlers.NewAuthHandler(cfg)
	projectHandler := handlers.NewProjectHandler(projects)
	telegramHandler := handlers.NewTelegramHandler(telegram)
	dashboardHandler := handlers.NewDashboardHandler(projects)
	aiHandler := handlers.NewAIHandler(ai)

	api := router.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/projects", projectHandler.List)
		authed.POST("/projects", projectHandler.Create)
		authed.GET("/projects/:id", projectHandler.Get)
		authed.PUT("/projects/:id", projectHandler.Update)
		authed.PATCH("/projects/:id/status", projectHandler.UpdateStatus)
		authed.DELETE("/projects/:id", projectHandler.Delete)

		authed.GET("/projects/backup", projectHandler.Backup)
		authed.POST("/projects/restore", projectHandler.Restore)

		authed.GET("/settings/telegram", telegramHandler.GetConfig)
		authed.PUT("/settings/telegram", telegramHandler.SaveConfig)
		authed.POST("/settings/telegram/test", telegramHandler.TestConnection)

		authed.GET("/dashboard/stats", dashboardHandler.Stats)
		authed.POST("/ai/suggest-tasks", aiHandler.SuggestTasks)
	}

	return router
}
