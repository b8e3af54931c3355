package services

import (
	"strings"
	"time"

	"grantes_backend/internal/dto"
	"grantes_backend/internal/logger"
	"grantes_backend/internal/models"
	"grantes_backend/internal/repositories"
	"grantes_backend/pkg/apperrors"
)

const (
	documentTypeIDPicture = "ID Picture"
	documentTypeCOR       = "COR"
)

// ApplicationService handles document submission and admin review.
type ApplicationService struct {
	applications  *repositories.ApplicationRepository
	students      *repositories.StudentRepository
	notifications *NotificationService
	uploads       *UploadService
}

func NewApplicationService(
	applications *repositories.ApplicationRepository,
	students *repositories.StudentRepository,
	notifications *NotificationService,
	uploads *UploadService,
) *ApplicationService {
	return &ApplicationService{
		applications:  applications,
		students:      students,
		notifications: notifications,
		uploads:       uploads,
	}
}

// Submit bundles the provided documents into one application, flips the
// student to pending and notifies them. Document bytes are resolved to
// data URLs after the record exists, mirroring the chat attachment
// two-phase commit; an ID picture also lands on the student record for
// the admin profile view.
func (s *ApplicationService) Submit(studentID int, input dto.SubmitApplicationInput) (*models.Application, error) {
	if input.IDPicture == nil && input.COR == nil {
		return nil, apperrors.ErrInvalidOperation("applications",
			"Please upload at least one document (ID Picture or COR)")
	}

	student, err := s.students.FindByID(studentID)
	if err != nil {
		return nil, err
	}

	var typeLabels []string
	var documents []models.ApplicationDocument
	representative := "Multiple files"

	if input.IDPicture != nil {
		typeLabels = append(typeLabels, documentTypeIDPicture)
		documents = append(documents, models.ApplicationDocument{
			Type:     documentTypeIDPicture,
			FileName: input.IDPicture.FileName,
		})
		representative = input.IDPicture.FileName
	}
	if input.COR != nil {
		typeLabels = append(typeLabels, documentTypeCOR)
		documents = append(documents, models.ApplicationDocument{
			Type:     documentTypeCOR,
			FileName: input.COR.FileName,
		})
		if input.IDPicture == nil {
			representative = input.COR.FileName
		} else {
			representative = "Multiple files"
		}
	}
	if strings.TrimSpace(input.IDNumber) != "" {
		typeLabels = append(typeLabels, "ID Number")
	}

	application := &models.Application{
		StudentID:     studentID,
		DocumentType:  strings.Join(typeLabels, " + "),
		FileName:      representative,
		Notes:         input.Notes,
		Status:        models.ApplicationStatusPending,
		SubmittedDate: today(),
		DocumentFiles: documents,
	}

	if err := s.applications.Create(application); err != nil {
		logger.WithError(err).Warn("application not persisted", "student_id", studentID)
	}

	// Second phase: resolve document bytes into previews.
	s.resolveDocuments(application, student, input)

	student.ApplicationStatus = models.ApplicationStatusPending
	if err := s.students.Update(student); err != nil {
		logger.WithError(err).Warn("student status not persisted", "student_id", studentID)
	}

	s.notifications.NotifyApplicationSubmitted(studentID)

	logger.Info("application submitted", "application_id", application.ID, "student_id", studentID)
	return application, nil
}

func (s *ApplicationService) resolveDocuments(application *models.Application, student *models.Student, input dto.SubmitApplicationInput) {
	resolve := func(doc *models.ApplicationDocument, upload *dto.DocumentUpload) {
		info, err := s.uploads.Inspect(upload.FileName, upload.Data)
		if err != nil {
			// Keep the document entry with its file name; the admin
			// review panel falls back to a no-preview card.
			logger.WithError(err).Warn("document preview rejected",
				"application_id", application.ID, "file", upload.FileName)
			return
		}
		url := info.DataURL
		doc.FileDataURL = &url

		if doc.Type == documentTypeIDPicture {
			student.IDPictureDataURL = url
		}
	}

	for i := range application.DocumentFiles {
		doc := &application.DocumentFiles[i]
		switch {
		case doc.Type == documentTypeIDPicture && input.IDPicture != nil:
			resolve(doc, input.IDPicture)
		case doc.Type == documentTypeCOR && input.COR != nil:
			resolve(doc, input.COR)
		}
	}

	if err := s.applications.Update(application); err != nil {
		logger.WithError(err).Warn("document previews not persisted", "application_id", application.ID)
	}
}

// Review settles a pending application and notifies the student.
func (s *ApplicationService) Review(applicationID int, status models.ApplicationStatus) (*models.Application, error) {
	if status != models.ApplicationStatusApproved && status != models.ApplicationStatusRejected {
		return nil, apperrors.ErrInvalidStatus("applications", "Review status must be approved or rejected")
	}

	application, err := s.applications.FindByID(applicationID)
	if err != nil {
		return nil, err
	}

	reviewed := today()
	notes := "Application rejected"
	if status == models.ApplicationStatusApproved {
		notes = "Application approved"
	}

	application.Status = status
	application.ReviewedDate = &reviewed
	application.ReviewerNotes = &notes

	if err := s.applications.Update(application); err != nil {
		logger.WithError(err).Warn("review not persisted", "application_id", applicationID)
	}

	if student, err := s.students.FindByID(application.StudentID); err == nil {
		student.ApplicationStatus = status
		if err := s.students.Update(student); err != nil {
			logger.WithError(err).Warn("student status not persisted", "student_id", student.ID)
		}
	}

	s.notifications.NotifyApplicationReviewed(application.StudentID, status)

	logger.Info("application reviewed", "application_id", applicationID, "status", status)
	return application, nil
}

// ForStudent returns a student's applications in submission order.
func (s *ApplicationService) ForStudent(studentID int) []models.Application {
	return s.applications.ForStudent(studentID)
}

// List filters applications by status and a case-insensitive search on
// the owning student's name or id string. Applications whose student
// record is missing pass the status filter but never match a search
// term; the admin list renders them best-effort.
func (s *ApplicationService) List(criteria dto.ApplicationCriteria) []models.Application {
	applications := s.applications.All()
	students := s.students.All()

	byID := make(map[int]*models.Student, len(students))
	for i := range students {
		byID[students[i].ID] = &students[i]
	}

	term := strings.ToLower(strings.TrimSpace(criteria.Search))
	out := make([]models.Application, 0, len(applications))
	for i := range applications {
		app := &applications[i]
		if criteria.Status != "" && string(app.Status) != criteria.Status {
			continue
		}
		if term != "" {
			student := byID[app.StudentID]
			if student == nil || !applicationStudentMatches(student, term) {
				continue
			}
		}
		out = append(out, *app)
	}
	return out
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func applicationStudentMatches(st *models.Student, term string) bool {
	return strings.Contains(strings.ToLower(st.FirstName), term) ||
		strings.Contains(strings.ToLower(st.LastName), term) ||
		strings.Contains(strings.ToLower(st.StudentID), term)
}

// Stats are the admin dashboard counters.
type ApplicationStats struct {
	TotalStudents int
	Approved      int
	Pending       int
	Archived      int
}

// Stats recomputes the dashboard counters from the registry.
func (s *ApplicationService) Stats() ApplicationStats {
	students := s.students.All()

	stats := ApplicationStats{TotalStudents: len(students)}
	for i := range students {
		st := &students[i]
		switch st.ApplicationStatus {
		case models.ApplicationStatusApproved:
			stats.Approved++
		case models.ApplicationStatusPending:
			stats.Pending++
		}
		if st.Status == models.StudentStatusArchived {
			stats.Archived++
		}
	}
	return stats
}
