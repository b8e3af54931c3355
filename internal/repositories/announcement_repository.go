package repositories

import (
	"sort"
	"time"

	"grantes_backend/internal/models"
	"grantes_backend/internal/persist"
	"grantes_backend/internal/storage"
)

// AnnouncementRepository owns the broadcast feed under the
// announcements key.
type AnnouncementRepository struct {
	backing       storage.Backing
	announcements []models.Announcement
	nextID        int
}

func NewAnnouncementRepository(backing storage.Backing) *AnnouncementRepository {
	return &AnnouncementRepository{backing: backing, nextID: 1}
}

func (r *AnnouncementRepository) reload() {
	r.announcements = persist.LoadLog(r.backing, persist.KeyAnnouncements, r.announcements)

	sort.SliceStable(r.announcements, func(i, j int) bool {
		a, b := &r.announcements[i], &r.announcements[j]
		if a.Date.Equal(b.Date) {
			return a.ID < b.ID
		}
		return a.Date.Before(b.Date)
	})

	for i := range r.announcements {
		if r.announcements[i].ID >= r.nextID {
			r.nextID = r.announcements[i].ID + 1
		}
	}
}

// All returns the feed, date ascending.
func (r *AnnouncementRepository) All() []models.Announcement {
	r.reload()
	out := make([]models.Announcement, len(r.announcements))
	copy(out, r.announcements)
	return out
}

// Create appends an announcement with the next id and current time.
func (r *AnnouncementRepository) Create(title, body string) (*models.Announcement, error) {
	r.reload()

	announcement := models.Announcement{
		ID:    r.nextID,
		Title: title,
		Body:  body,
		Date:  time.Now().UTC(),
	}
	r.nextID++

	r.announcements = append(r.announcements, announcement)
	err := persist.SaveLog(r.backing, persist.KeyAnnouncements, r.announcements)

	stored := r.announcements[len(r.announcements)-1]
	return &stored, err
}
