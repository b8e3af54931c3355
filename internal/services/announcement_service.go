package services

import (
	"strings"

	"grantes_backend/internal/logger"
	"grantes_backend/internal/models"
	"grantes_backend/internal/repositories"
	"grantes_backend/pkg/apperrors"
)

// AnnouncementService publishes broadcast entries and fans out a
// notification to every active student.
type AnnouncementService struct {
	announcements *repositories.AnnouncementRepository
	students      *repositories.StudentRepository
	notifications *NotificationService
}

func NewAnnouncementService(
	announcements *repositories.AnnouncementRepository,
	students *repositories.StudentRepository,
	notifications *NotificationService,
) *AnnouncementService {
	return &AnnouncementService{
		announcements: announcements,
		students:      students,
		notifications: notifications,
	}
}

// Publish appends an announcement and alerts every active student.
// Archived students keep the feed entry visible but get no alert.
func (s *AnnouncementService) Publish(title, body string) (*models.Announcement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.ErrInvalidOperation("announcements", "Announcement has no title")
	}

	announcement, err := s.announcements.Create(title, body)
	if err != nil {
		logger.WithError(err).Warn("announcement not persisted", "title", title)
	}

	students := s.students.All()
	for i := range students {
		if students[i].Status == models.StudentStatusActive {
			s.notifications.NotifyAnnouncement(students[i].ID, title)
		}
	}

	logger.Info("announcement published", "announcement_id", announcement.ID, "title", title)
	return announcement, nil
}

// Feed returns the announcement feed, oldest first.
func (s *AnnouncementService) Feed() []models.Announcement {
	return s.announcements.All()
}
