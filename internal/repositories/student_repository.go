package repositories

import (
	"strings"

	"grantes_backend/internal/models"
	"grantes_backend/internal/persist"
	"grantes_backend/internal/storage"
	"grantes_backend/pkg/apperrors"
)

var ErrStudentNotFound = apperrors.ErrNotFound("students", "Student not found")

// StudentRepository owns the student registry under the students key.
type StudentRepository struct {
	backing  storage.Backing
	students []models.Student
}

func NewStudentRepository(backing storage.Backing) *StudentRepository {
	return &StudentRepository{backing: backing}
}

func (r *StudentRepository) reload() {
	r.students = persist.LoadLog(r.backing, persist.KeyStudents, r.students)
}

func (r *StudentRepository) persist() error {
	return persist.SaveLog(r.backing, persist.KeyStudents, r.students)
}

func (r *StudentRepository) maxID() int {
	max := 0
	for i := range r.students {
		if r.students[i].ID > max {
			max = r.students[i].ID
		}
	}
	return max
}

// All returns the registry in stored order.
func (r *StudentRepository) All() []models.Student {
	r.reload()
	out := make([]models.Student, len(r.students))
	copy(out, r.students)
	return out
}

// FindByID looks a student up by numeric id.
func (r *StudentRepository) FindByID(id int) (*models.Student, error) {
	r.reload()
	for i := range r.students {
		if r.students[i].ID == id {
			s := r.students[i]
			return &s, nil
		}
	}
	return nil, ErrStudentNotFound
}

// FindByEmail matches case-insensitively on the trimmed address.
func (r *StudentRepository) FindByEmail(email string) (*models.Student, error) {
	r.reload()
	needle := normalized(email)
	for i := range r.students {
		if normalized(r.students[i].Email) == needle {
			s := r.students[i]
			return &s, nil
		}
	}
	return nil, ErrStudentNotFound
}

// FindByStudentID matches on the school-issued identifier string.
func (r *StudentRepository) FindByStudentID(studentID string) (*models.Student, error) {
	r.reload()
	needle := normalized(studentID)
	for i := range r.students {
		if normalized(r.students[i].StudentID) == needle {
			s := r.students[i]
			return &s, nil
		}
	}
	return nil, ErrStudentNotFound
}

// Create assigns the next id and appends the record.
func (r *StudentRepository) Create(student *models.Student) error {
	r.reload()

	student.ID = r.maxID() + 1
	r.students = append(r.students, *student)
	return r.persist()
}

// Update replaces the stored record with the same id.
func (r *StudentRepository) Update(student *models.Student) error {
	r.reload()

	for i := range r.students {
		if r.students[i].ID == student.ID {
			r.students[i] = *student
			return r.persist()
		}
	}
	return ErrStudentNotFound
}

// Delete removes the record. Callers own the cascade: the student's
// chat thread and notifications must be removed separately.
func (r *StudentRepository) Delete(id int) error {
	r.reload()

	kept := r.students[:0]
	found := false
	for i := range r.students {
		if r.students[i].ID == id {
			found = true
			continue
		}
		kept = append(kept, r.students[i])
	}
	r.students = kept

	if !found {
		return ErrStudentNotFound
	}
	return r.persist()
}

// EnsureID guarantees the record carries a stable numeric id. A record
// arriving without one (a login flow producing a session object with no
// id would otherwise orphan its messages) is matched against the
// registry by award number, email or student-id string; on a match the
// existing id is reused, otherwise max(existing)+1 is allocated and the
// record is appended. Idempotent once the first call has persisted.
func (r *StudentRepository) EnsureID(student *models.Student) (*models.Student, error) {
	r.reload()

	if student.ID > 0 {
		return student, nil
	}

	for i := range r.students {
		existing := &r.students[i]
		if matchesIdentity(student, existing) {
			student.ID = existing.ID
			return student, nil
		}
	}

	student.ID = r.maxID() + 1
	r.students = append(r.students, *student)
	return student, r.persist()
}

func matchesIdentity(candidate, existing *models.Student) bool {
	if candidate.AwardNumber != "" && normalized(candidate.AwardNumber) == normalized(existing.AwardNumber) {
		return true
	}
	if candidate.Email != "" && normalized(candidate.Email) == normalized(existing.Email) {
		return true
	}
	if candidate.StudentID != "" && normalized(candidate.StudentID) == normalized(existing.StudentID) {
		return true
	}
	return false
}

func normalized(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
