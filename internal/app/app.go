package app

import (
	"grantes_backend/internal/config"
	"grantes_backend/internal/logger"
	"grantes_backend/internal/repositories"
	repoChat "grantes_backend/internal/repositories/chat"
	"grantes_backend/internal/services"
	svcChat "grantes_backend/internal/services/chat"
	"grantes_backend/internal/storage"
	"grantes_backend/internal/validator"
)

// App wires the backing store, repositories and services together.
// The views (dashboards, chat panels) are whatever consumes these
// services; this process just proves the wiring and seeds demo data.
type App struct {
	Backing storage.Backing

	Students      *services.StudentService
	Applications  *services.ApplicationService
	Notifications *services.NotificationService
	Announcements *services.AnnouncementService
	Chat          *svcChat.ChatService
}

// New builds the full service graph over one backing store.
func New(cfg *config.Config) (*App, error) {
	backing, err := storage.NewBacking(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
	})
	if err != nil {
		return nil, err
	}

	studentRepo := repositories.NewStudentRepository(backing)
	applicationRepo := repositories.NewApplicationRepository(backing)
	notificationRepo := repositories.NewNotificationRepository(backing)
	announcementRepo := repositories.NewAnnouncementRepository(backing)
	messageRepo := repoChat.NewMessageRepository(backing)

	uploads := services.NewUploadService(cfg.Upload.MaxSize, cfg.Upload.AllowedTypes)
	notifications := services.NewNotificationService(notificationRepo)
	attachments := svcChat.NewAttachmentService(uploads)
	chat := svcChat.NewChatService(messageRepo, attachments, notifications)

	students := services.NewStudentService(
		studentRepo, applicationRepo, messageRepo, notifications,
		validator.New(), backing,
		services.AdminCredentials{Emails: cfg.Admin.Emails, Password: cfg.Admin.Password},
	)
	applications := services.NewApplicationService(applicationRepo, studentRepo, notifications, uploads)
	announcements := services.NewAnnouncementService(announcementRepo, studentRepo, notifications)

	return &App{
		Backing:       backing,
		Students:      students,
		Applications:  applications,
		Notifications: notifications,
		Announcements: announcements,
		Chat:          chat,
	}, nil
}

// Run is the demo entrypoint: configure, wire, seed, report.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	application, err := New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize backing store", "error", err)
	}
	logger.Info("Backing store ready", "type", cfg.Storage.Type, "path", cfg.Storage.BasePath)

	if cfg.Seed {
		application.SeedDemoData()
	}

	stats := application.Applications.Stats()
	logger.Info("dashboard",
		"students", stats.TotalStudents,
		"approved", stats.Approved,
		"pending", stats.Pending,
		"archived", stats.Archived,
	)
}
