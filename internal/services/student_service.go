package services

import (
	"strings"
	"time"

	"grantes_backend/internal/dto"
	"grantes_backend/internal/logger"
	"grantes_backend/internal/models"
	"grantes_backend/internal/persist"
	"grantes_backend/internal/repositories"
	repoChat "grantes_backend/internal/repositories/chat"
	"grantes_backend/internal/storage"
	"grantes_backend/internal/validator"
	"grantes_backend/pkg/apperrors"
)

// AdminCredentials is the hardcoded demo admin account. Plain text,
// like every password in this system.
type AdminCredentials struct {
	Emails   []string
	Password string
}

// StudentService covers registration, login, archival and the deletion
// cascade across the chat and notification logs.
type StudentService struct {
	students      *repositories.StudentRepository
	applications  *repositories.ApplicationRepository
	messages      *repoChat.MessageRepository
	notifications *NotificationService
	validate      *validator.Validator
	backing       storage.Backing
	admin         AdminCredentials
}

func NewStudentService(
	students *repositories.StudentRepository,
	applications *repositories.ApplicationRepository,
	messages *repoChat.MessageRepository,
	notifications *NotificationService,
	validate *validator.Validator,
	backing storage.Backing,
	admin AdminCredentials,
) *StudentService {
	return &StudentService{
		students:      students,
		applications:  applications,
		messages:      messages,
		notifications: notifications,
		validate:      validate,
		backing:       backing,
		admin:         admin,
	}
}

// Register creates a student record from the registration form.
func (s *StudentService) Register(input dto.RegisterInput) (*models.Student, error) {
	if err := s.validate.Validate(input); err != nil {
		if ve, ok := err.(*validator.ValidationError); ok {
			return nil, apperrors.ValidationError(ve.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.students.FindByEmail(input.Email); err == nil {
		return nil, apperrors.ErrAlreadyExists("students", "Email already registered")
	}
	if _, err := s.students.FindByStudentID(input.StudentID); err == nil {
		return nil, apperrors.ErrAlreadyExists("students", "Student ID already registered")
	}

	student := &models.Student{
		FirstName:         strings.TrimSpace(input.FirstName),
		LastName:          strings.TrimSpace(input.LastName),
		StudentID:         strings.TrimSpace(input.StudentID),
		AwardNumber:       strings.TrimSpace(input.AwardNumber),
		Email:             strings.TrimSpace(input.Email),
		Password:          input.Password,
		Course:            input.Course,
		Year:              input.Year,
		Status:            models.StudentStatusActive,
		RegistrationDate:  time.Now().UTC().Format("2006-01-02"),
		ApplicationStatus: models.ApplicationStatusNone,
	}

	if err := s.students.Create(student); err != nil {
		logger.WithError(err).Warn("student not persisted", "email", student.Email)
	}

	logger.Info("student registered", "student_id", student.ID, "email", student.Email)
	return student, nil
}

// Login checks credentials and persists the session under the
// currentUser key. Admin credentials are accepted regardless of the
// selected role; student credentials are a trimmed, case-insensitive
// email plus a plain-text password compare.
func (s *StudentService) Login(input dto.LoginInput) (*models.Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	password := strings.TrimSpace(input.Password)

	if s.isAdmin(email, password) {
		session := &models.Session{
			Name:  "Administrator",
			Email: email,
			Role:  models.RoleAdmin,
		}
		s.saveSession(session)
		return session, nil
	}

	if input.Role == string(models.RoleAdmin) {
		return nil, apperrors.ErrInvalidCredentials
	}

	student, err := s.students.FindByEmail(email)
	if err != nil || strings.TrimSpace(student.Password) != password {
		return nil, apperrors.ErrInvalidCredentials
	}

	// A stored record without an id would orphan this login's messages
	// under studentId 0; repair it before the session is created.
	if student.ID == 0 {
		if _, err := s.students.EnsureID(student); err != nil {
			logger.WithError(err).Warn("student id repair not persisted", "email", student.Email)
		}
	}

	session := &models.Session{
		StudentID: student.ID,
		Name:      student.FullName(),
		Email:     student.Email,
		Role:      models.RoleStudent,
	}
	s.saveSession(session)
	return session, nil
}

func (s *StudentService) isAdmin(email, password string) bool {
	if password != s.admin.Password {
		return false
	}
	for _, adminEmail := range s.admin.Emails {
		if email == adminEmail {
			return true
		}
	}
	return false
}

func (s *StudentService) saveSession(session *models.Session) {
	if err := persist.SaveOne(s.backing, persist.KeyCurrentUser, session); err != nil {
		logger.WithError(err).Warn("session not persisted")
	}
}

// CurrentSession returns the logged-in party, if any.
func (s *StudentService) CurrentSession() (*models.Session, bool) {
	return persist.LoadOne[models.Session](s.backing, persist.KeyCurrentUser)
}

// Logout discards the persisted session.
func (s *StudentService) Logout() {
	s.backing.Remove(persist.KeyCurrentUser)
}

// EnsureID delegates to the repository's idempotent id assignment.
func (s *StudentService) EnsureID(student *models.Student) (*models.Student, error) {
	return s.students.EnsureID(student)
}

// Get returns one student by id.
func (s *StudentService) Get(studentID int) (*models.Student, error) {
	return s.students.FindByID(studentID)
}

// List filters the registry by status and a free-text search over
// name, student-id string and email.
func (s *StudentService) List(criteria dto.StudentCriteria) []models.Student {
	students := s.students.All()

	out := make([]models.Student, 0, len(students))
	term := strings.ToLower(strings.TrimSpace(criteria.Search))
	for i := range students {
		st := &students[i]
		if criteria.Status != "" && string(st.Status) != criteria.Status {
			continue
		}
		if term != "" && !studentMatches(st, term) {
			continue
		}
		out = append(out, *st)
	}
	return out
}

func studentMatches(st *models.Student, term string) bool {
	return strings.Contains(strings.ToLower(st.FirstName), term) ||
		strings.Contains(strings.ToLower(st.LastName), term) ||
		strings.Contains(strings.ToLower(st.StudentID), term) ||
		strings.Contains(strings.ToLower(st.Email), term)
}

// Archive marks a student archived; the record and its logs stay.
func (s *StudentService) Archive(studentID int) error {
	return s.setStatus(studentID, models.StudentStatusArchived)
}

// Activate restores an archived student.
func (s *StudentService) Activate(studentID int) error {
	return s.setStatus(studentID, models.StudentStatusActive)
}

func (s *StudentService) setStatus(studentID int, status models.StudentStatus) error {
	student, err := s.students.FindByID(studentID)
	if err != nil {
		return err
	}
	student.Status = status
	return s.students.Update(student)
}

// Delete removes a student and cascades across the logs that join on
// the id: chat thread, notifications, applications. The cascade is the
// caller's responsibility by contract, and this service is that caller.
func (s *StudentService) Delete(studentID int) error {
	if err := s.students.Delete(studentID); err != nil {
		return err
	}

	if err := s.messages.DeleteThread(studentID); err != nil {
		logger.WithError(err).Warn("thread cascade not persisted", "student_id", studentID)
	}
	if err := s.notifications.DeleteForStudent(studentID); err != nil {
		logger.WithError(err).Warn("notification cascade not persisted", "student_id", studentID)
	}
	if err := s.applications.DeleteForStudent(studentID); err != nil {
		logger.WithError(err).Warn("application cascade not persisted", "student_id", studentID)
	}

	logger.Info("student deleted", "student_id", studentID)
	return nil
}
