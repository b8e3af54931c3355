package services

import (
	"grantes_backend/internal/logger"
	"grantes_backend/internal/models"
	"grantes_backend/internal/repositories"
	"grantes_backend/pkg/apperrors"
)

// NotificationService wraps the notification repository and owns the
// fixed title/message pairs every event-driven alert uses.
type NotificationService struct {
	notifications *repositories.NotificationRepository
}

func NewNotificationService(notifications *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// Notify appends a notification. A failed persist is logged and
// swallowed: the notice still exists in memory and the triggering
// operation must not fail because of it.
func (s *NotificationService) Notify(studentID int, title, message string) *models.Notification {
	notification, err := s.notifications.Notify(studentID, title, message)
	if err != nil && apperrors.IsCode(err, apperrors.CodeStorageUnavailable) {
		logger.Warn("notification not persisted", "student_id", studentID, "title", title)
	}
	return notification
}

func (s *NotificationService) All(studentID int) []models.Notification {
	return s.notifications.All(studentID)
}

func (s *NotificationService) Unread(studentID int) []models.Notification {
	return s.notifications.Unread(studentID)
}

func (s *NotificationService) UnreadCount(studentID int) int {
	return s.notifications.UnreadCount(studentID)
}

func (s *NotificationService) MarkAllRead(studentID int) (int, error) {
	return s.notifications.MarkAllRead(studentID)
}

func (s *NotificationService) DeleteForStudent(studentID int) error {
	return s.notifications.DeleteForStudent(studentID)
}

// ---- Factory methods for the fixed notification types ----

// NotifyAdminMessage alerts a student about a new chat message from the
// admin. The chat panel pairs every admin send with this.
func (s *NotificationService) NotifyAdminMessage(studentID int, text string) {
	s.Notify(studentID, "New Message from Admin", text)
}

// NotifyDirectMessage is the quick "send message" action on the student
// list, which writes a notification without a chat entry.
func (s *NotificationService) NotifyDirectMessage(studentID int, text string) {
	s.Notify(studentID, "Message from Admin", text)
}

// NotifyApplicationSubmitted confirms a submission landed.
func (s *NotificationService) NotifyApplicationSubmitted(studentID int) {
	s.Notify(studentID, "Application Submitted",
		"Your documents have been submitted and are under review.")
}

// NotifyApplicationReviewed reports the review outcome.
func (s *NotificationService) NotifyApplicationReviewed(studentID int, status models.ApplicationStatus) {
	if status == models.ApplicationStatusApproved {
		s.Notify(studentID, "Application Approved",
			"Congratulations! Your subsidy application has been approved.")
		return
	}
	s.Notify(studentID, "Application Rejected",
		"Your subsidy application has been rejected. Please contact the office for more information.")
}

// NotifyAnnouncement alerts one student about a published announcement.
func (s *NotificationService) NotifyAnnouncement(studentID int, title string) {
	s.Notify(studentID, "New Announcement", title)
}
