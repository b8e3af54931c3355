package dto

// DocumentUpload carries one uploaded document's bytes.
type DocumentUpload struct {
	FileName string
	Data     []byte
}

// SubmitApplicationInput bundles everything the application form
// collects. At least one of IDPicture or COR must be present.
type SubmitApplicationInput struct {
	IDPicture *DocumentUpload
	COR       *DocumentUpload
	IDNumber  string
	Notes     string `validate:"max=2000"`
}

// ApplicationCriteria filters the admin application list.
type ApplicationCriteria struct {
	Status string // empty matches any status
	Search string // case-insensitive match on student name or id string
}

// StudentCriteria filters the admin student list.
type StudentCriteria struct {
	Status string
	Search string // matches name, student-id string or email
}
