package models

// Student is the registry record every other log joins against by ID.
// Once assigned, ID never changes; chat threads and notifications are
// keyed by it. Passwords are stored and compared in plain text, per
// the stored-record contract.
type Student struct {
	ID                int               `json:"id"`
	FirstName         string            `json:"firstName"`
	LastName          string            `json:"lastName"`
	StudentID         string            `json:"studentId"` // school-issued identifier string
	AwardNumber       string            `json:"awardNumber,omitempty"`
	Email             string            `json:"email"`
	Password          string            `json:"password"`
	Course            string            `json:"course"`
	Year              string            `json:"year"`
	Status            StudentStatus     `json:"status"`
	RegistrationDate  string            `json:"registrationDate"` // date-only, YYYY-MM-DD
	ApplicationStatus ApplicationStatus `json:"applicationStatus"`
	IDPictureDataURL  string            `json:"idPictureDataUrl,omitempty"`
}

// FullName joins first and last name for display.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Session is the logged-in party, persisted under the currentUser key.
type Session struct {
	StudentID int    `json:"studentId,omitempty"` // zero for admin sessions
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}
