package dto

// RegisterInput is the student registration form.
type RegisterInput struct {
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	StudentID       string `json:"studentId" validate:"required,max=50"`
	AwardNumber     string `json:"awardNumber" validate:"max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Course          string `json:"course" validate:"required"`
	Year            string `json:"year" validate:"required"`
}

// LoginInput is the login form. Role selects which account space the
// credentials are checked against.
type LoginInput struct {
	Role     string `json:"role" validate:"required,oneof=student admin"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
