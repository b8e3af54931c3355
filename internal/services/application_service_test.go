package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantes_backend/internal/dto"
	"grantes_backend/internal/models"
	"grantes_backend/internal/repositories"
	"grantes_backend/internal/storage"
	"grantes_backend/pkg/apperrors"
)

type applicationFixture struct {
	svc           *ApplicationService
	students      *repositories.StudentRepository
	notifications *NotificationService
	student       *models.Student
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()

	backing := storage.NewMemoryBacking()
	students := repositories.NewStudentRepository(backing)
	applications := repositories.NewApplicationRepository(backing)
	notifications := NewNotificationService(repositories.NewNotificationRepository(backing))
	uploads := NewUploadService(1<<20, []string{"image/png", "image/jpeg", "application/pdf"})

	student := &models.Student{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		StudentID: "2023-0001",
		Email:     "juan.delacruz@student.edu",
		Status:    models.StudentStatusActive,
	}
	require.NoError(t, students.Create(student))

	return &applicationFixture{
		svc:           NewApplicationService(applications, students, notifications, uploads),
		students:      students,
		notifications: notifications,
		student:       student,
	}
}

func TestSubmitRequiresADocument(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Submit(f.student.ID, dto.SubmitApplicationInput{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidOperation))
}

func TestSubmitBundlesDocuments(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Submit(f.student.ID, dto.SubmitApplicationInput{
		IDPicture: &dto.DocumentUpload{FileName: "id.png", Data: pngBytes},
		COR:       &dto.DocumentUpload{FileName: "cor.pdf", Data: pdfBytes},
		IDNumber:  "AW-100",
		Notes:     "First submission",
	})
	require.NoError(t, err)

	assert.Equal(t, "ID Picture + COR + ID Number", app.DocumentType)
	assert.Equal(t, "Multiple files", app.FileName)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.NotEmpty(t, app.SubmittedDate)
	require.Len(t, app.DocumentFiles, 2)

	for _, doc := range app.DocumentFiles {
		require.NotNil(t, doc.FileDataURL, "document %s resolved to a data URL", doc.Type)
	}

	// The ID picture lands on the student record too.
	student, err := f.students.FindByID(f.student.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, student.IDPictureDataURL)
	assert.Equal(t, models.ApplicationStatusPending, student.ApplicationStatus)

	unread := f.notifications.Unread(f.student.ID)
	require.Len(t, unread, 1)
	assert.Equal(t, "Application Submitted", unread[0].Title)
}

func TestSubmitSingleDocument(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Submit(f.student.ID, dto.SubmitApplicationInput{
		COR: &dto.DocumentUpload{FileName: "cor.pdf", Data: pdfBytes},
	})
	require.NoError(t, err)

	assert.Equal(t, "COR", app.DocumentType)
	assert.Equal(t, "cor.pdf", app.FileName, "a single document names the application")
	require.Len(t, app.DocumentFiles, 1)

	student, err := f.students.FindByID(f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, student.IDPictureDataURL, "no ID picture was uploaded")
}

func TestSubmitKeepsRecordOnRejectedPreview(t *testing.T) {
	f := newApplicationFixture(t)

	// Empty bytes fail inspection; the application survives without a
	// preview for that document.
	app, err := f.svc.Submit(f.student.ID, dto.SubmitApplicationInput{
		IDPicture: &dto.DocumentUpload{FileName: "broken.png", Data: nil},
	})
	require.NoError(t, err)
	require.Len(t, app.DocumentFiles, 1)
	assert.Nil(t, app.DocumentFiles[0].FileDataURL)
	assert.Equal(t, "broken.png", app.DocumentFiles[0].FileName)
}

func TestReviewApprove(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Submit(f.student.ID, dto.SubmitApplicationInput{
		COR: &dto.DocumentUpload{FileName: "cor.pdf", Data: pdfBytes},
	})
	require.NoError(t, err)

	reviewed, err := f.svc.Review(app.ID, models.ApplicationStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedDate)
	require.NotNil(t, reviewed.ReviewerNotes)
	assert.Equal(t, "Application approved", *reviewed.ReviewerNotes)

	student, err := f.students.FindByID(f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, student.ApplicationStatus)

	all := f.notifications.All(f.student.ID)
	require.Len(t, all, 2)
	assert.Equal(t, "Application Approved", all[1].Title)
}

func TestReviewReject(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Submit(f.student.ID, dto.SubmitApplicationInput{
		COR: &dto.DocumentUpload{FileName: "cor.pdf", Data: pdfBytes},
	})
	require.NoError(t, err)

	reviewed, err := f.svc.Review(app.ID, models.ApplicationStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, reviewed.Status)

	all := f.notifications.All(f.student.ID)
	require.Len(t, all, 2)
	assert.Equal(t, "Application Rejected", all[1].Title)
}

func TestReviewRejectsBadStatus(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Review(1, models.ApplicationStatusPending)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidStatus))

	_, err = f.svc.Review(999, models.ApplicationStatusApproved)
	assert.ErrorIs(t, err, repositories.ErrApplicationNotFound)
}

func TestApplicationList(t *testing.T) {
	f := newApplicationFixture(t)

	maria := &models.Student{
		FirstName: "Maria",
		LastName:  "Santos",
		StudentID: "2023-0002",
		Email:     "maria.santos@student.edu",
		Status:    models.StudentStatusActive,
	}
	require.NoError(t, f.students.Create(maria))

	first, err := f.svc.Submit(f.student.ID, dto.SubmitApplicationInput{
		COR: &dto.DocumentUpload{FileName: "cor.pdf", Data: pdfBytes},
	})
	require.NoError(t, err)
	_, err = f.svc.Submit(maria.ID, dto.SubmitApplicationInput{
		COR: &dto.DocumentUpload{FileName: "cor2.pdf", Data: pdfBytes},
	})
	require.NoError(t, err)

	_, err = f.svc.Review(first.ID, models.ApplicationStatusApproved)
	require.NoError(t, err)

	approved := f.svc.List(dto.ApplicationCriteria{Status: "approved"})
	require.Len(t, approved, 1)
	assert.Equal(t, first.ID, approved[0].ID)

	bySearch := f.svc.List(dto.ApplicationCriteria{Search: "santos"})
	require.Len(t, bySearch, 1)
	assert.Equal(t, maria.ID, bySearch[0].StudentID)

	assert.Len(t, f.svc.List(dto.ApplicationCriteria{}), 2)
	assert.Len(t, f.svc.ForStudent(maria.ID), 1)
}

func TestStats(t *testing.T) {
	f := newApplicationFixture(t)

	maria := &models.Student{
		FirstName:         "Maria",
		LastName:          "Santos",
		StudentID:         "2023-0002",
		Email:             "maria.santos@student.edu",
		Status:            models.StudentStatusArchived,
		ApplicationStatus: models.ApplicationStatusApproved,
	}
	require.NoError(t, f.students.Create(maria))

	_, err := f.svc.Submit(f.student.ID, dto.SubmitApplicationInput{
		COR: &dto.DocumentUpload{FileName: "cor.pdf", Data: pdfBytes},
	})
	require.NoError(t, err)

	stats := f.svc.Stats()
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 1, stats.Archived)
}
