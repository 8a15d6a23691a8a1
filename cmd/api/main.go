package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/justsurfingit/job-assistant/internal/agent"
	"github.com/justsurfingit/job-assistant/internal/boards"
	"github.com/justsurfingit/job-assistant/internal/config"
	"github.com/justsurfingit/job-assistant/internal/database"
	"github.com/justsurfingit/job-assistant/internal/handlers"
	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/services"
)

func main() {
	// 1. Environment: a missing .env just means real env vars are in use.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal("failed to build logger: ", err)
	}
	defer appLog.Sync()

	gin.SetMode(cfg.GinMode)

	// 2. Database connection + migrations.
	db, err := database.Connect(cfg)
	if err != nil {
		appLog.Fatal("failed to connect database", "error", err)
	}
	appLog.Info("database connected", "type", cfg.DBType)

	// 3. Core services.
	userService := services.NewUserService(db, appLog)
	jobService := services.NewJobService(db, appLog)
	applicationService := services.NewApplicationService(db, appLog)
	documentService := services.NewDocumentService(db, appLog)
	matchService := services.NewMatchService(db, appLog)
	resumeService := services.NewResumeService(db, appLog)
	preferenceService := services.NewPreferenceService(db, appLog)
	reminderService := services.NewReminderService(db, appLog)
	llmService := services.NewLLMService(context.Background(), cfg, appLog)
	boardClient := boards.NewClient(cfg)

	// 4. Bootstrap the default user once; everything downstream gets the
	// handle injected instead of re-querying it.
	user, err := userService.Bootstrap(context.Background())
	if err != nil {
		appLog.Fatal("failed to bootstrap user", "error", err)
	}
	appLog.Info("user ready", "user_id", user.ID)

	// 5. Agent workflow.
	orchestrator := agent.NewOrchestrator(
		jobService,
		applicationService,
		documentService,
		matchService,
		resumeService,
		llmService,
		boardClient,
		user,
		appLog,
	)

	// 6. Background reminder sweep.
	reminderService.StartWatcher(time.Duration(cfg.ReminderIntervalMinutes) * time.Minute)

	// 7. Router.
	router := handlers.NewRouter(handlers.Deps{
		Jobs:         handlers.NewJobHandler(jobService, boardClient),
		Applications: handlers.NewApplicationHandler(applicationService, documentService, resumeService, user),
		Resumes:      handlers.NewResumeHandler(resumeService, user),
		Preferences:  handlers.NewPreferenceHandler(preferenceService, user),
		Matches:      handlers.NewMatchHandler(matchService, user),
		Reminders:    handlers.NewReminderHandler(reminderService),
		Agent:        handlers.NewAgentHandler(orchestrator),
	})

	appLog.Info("server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		appLog.Fatal("server failed to start", "error", err)
	}
}
