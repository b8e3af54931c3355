package repositories

import (
	"sort"
	"time"

	"grantes_backend/internal/models"
	"grantes_backend/internal/persist"
	"grantes_backend/internal/storage"
)

// NotificationRepository owns the append-only notification log under
// the notifications key. Same read-before-anything discipline as the
// message repository.
type NotificationRepository struct {
	backing       storage.Backing
	notifications []models.Notification
	nextID        int
}

func NewNotificationRepository(backing storage.Backing) *NotificationRepository {
	return &NotificationRepository{backing: backing, nextID: 1}
}

func (r *NotificationRepository) reload() {
	r.notifications = persist.LoadLog(r.backing, persist.KeyNotifications, r.notifications)

	sort.SliceStable(r.notifications, func(i, j int) bool {
		a, b := &r.notifications[i], &r.notifications[j]
		if a.Date.Equal(b.Date) {
			return a.ID < b.ID
		}
		return a.Date.Before(b.Date)
	})

	for i := range r.notifications {
		if r.notifications[i].ID >= r.nextID {
			r.nextID = r.notifications[i].ID + 1
		}
	}
}

func (r *NotificationRepository) persist() error {
	return persist.SaveLog(r.backing, persist.KeyNotifications, r.notifications)
}

// Notify appends an unread notification with the next sequential id.
// A persist failure still returns the notification; it lives on in
// memory and the error is surfaced as a warning by the caller.
func (r *NotificationRepository) Notify(studentID int, title, message string) (*models.Notification, error) {
	r.reload()

	notification := models.Notification{
		ID:        r.nextID,
		StudentID: studentID,
		Title:     title,
		Message:   message,
		Date:      time.Now().UTC(),
		Read:      false,
	}
	r.nextID++

	r.notifications = append(r.notifications, notification)
	err := r.persist()

	stored := r.notifications[len(r.notifications)-1]
	return &stored, err
}

// All returns every notification for a student, date ascending.
func (r *NotificationRepository) All(studentID int) []models.Notification {
	r.reload()

	out := make([]models.Notification, 0)
	for i := range r.notifications {
		if r.notifications[i].StudentID == studentID {
			out = append(out, r.notifications[i])
		}
	}
	return out
}

// Unread returns the student's unread notifications, date ascending.
func (r *NotificationRepository) Unread(studentID int) []models.Notification {
	r.reload()

	out := make([]models.Notification, 0)
	for i := range r.notifications {
		n := &r.notifications[i]
		if n.StudentID == studentID && !n.Read {
			out = append(out, *n)
		}
	}
	return out
}

// UnreadCount reports how many unread notifications a student has.
func (r *NotificationRepository) UnreadCount(studentID int) int {
	return len(r.Unread(studentID))
}

// MarkAllRead flips every notification for the student to read and
// returns the number changed. Read never reverses.
func (r *NotificationRepository) MarkAllRead(studentID int) (int, error) {
	r.reload()

	changed := 0
	for i := range r.notifications {
		n := &r.notifications[i]
		if n.StudentID == studentID && !n.Read {
			n.Read = true
			changed++
		}
	}

	if changed == 0 {
		return 0, nil
	}
	return changed, r.persist()
}

// DeleteForStudent removes every notification addressed to the student.
// Cascade hook for student deletion; nothing else ever deletes records.
func (r *NotificationRepository) DeleteForStudent(studentID int) error {
	r.reload()

	kept := r.notifications[:0]
	for i := range r.notifications {
		if r.notifications[i].StudentID != studentID {
			kept = append(kept, r.notifications[i])
		}
	}
	r.notifications = kept
	return r.persist()
}
