package repositories

import (
	"grantes_backend/internal/models"
	"grantes_backend/internal/persist"
	"grantes_backend/internal/storage"
	"grantes_backend/pkg/apperrors"
)

var ErrApplicationNotFound = apperrors.ErrNotFound("applications", "Application not found")

// ApplicationRepository owns the application log under the
// applications key.
type ApplicationRepository struct {
	backing      storage.Backing
	applications []models.Application
}

func NewApplicationRepository(backing storage.Backing) *ApplicationRepository {
	return &ApplicationRepository{backing: backing}
}

func (r *ApplicationRepository) reload() {
	r.applications = persist.LoadLog(r.backing, persist.KeyApplications, r.applications)
}

func (r *ApplicationRepository) persist() error {
	return persist.SaveLog(r.backing, persist.KeyApplications, r.applications)
}

// All returns every application in submission order.
func (r *ApplicationRepository) All() []models.Application {
	r.reload()
	out := make([]models.Application, len(r.applications))
	copy(out, r.applications)
	return out
}

// ForStudent returns the student's applications in submission order.
func (r *ApplicationRepository) ForStudent(studentID int) []models.Application {
	r.reload()

	out := make([]models.Application, 0)
	for i := range r.applications {
		if r.applications[i].StudentID == studentID {
			out = append(out, r.applications[i])
		}
	}
	return out
}

// FindByID looks an application up by id.
func (r *ApplicationRepository) FindByID(id int) (*models.Application, error) {
	r.reload()
	for i := range r.applications {
		if r.applications[i].ID == id {
			a := r.applications[i]
			return &a, nil
		}
	}
	return nil, ErrApplicationNotFound
}

// Create assigns the next id and appends the record.
func (r *ApplicationRepository) Create(application *models.Application) error {
	r.reload()

	max := 0
	for i := range r.applications {
		if r.applications[i].ID > max {
			max = r.applications[i].ID
		}
	}
	application.ID = max + 1

	r.applications = append(r.applications, *application)
	return r.persist()
}

// Update replaces the stored record with the same id.
func (r *ApplicationRepository) Update(application *models.Application) error {
	r.reload()

	for i := range r.applications {
		if r.applications[i].ID == application.ID {
			r.applications[i] = *application
			return r.persist()
		}
	}
	return ErrApplicationNotFound
}

// DeleteForStudent removes the student's applications.
// Cascade hook for student deletion.
func (r *ApplicationRepository) DeleteForStudent(studentID int) error {
	r.reload()

	kept := r.applications[:0]
	for i := range r.applications {
		if r.applications[i].StudentID != studentID {
			kept = append(kept, r.applications[i])
		}
	}
	r.applications = kept
	return r.persist()
}
