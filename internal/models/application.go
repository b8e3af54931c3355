package models

// ApplicationDocument is one uploaded file bundled into an application.
// FileDataURL is nil until the document bytes have been resolved.
type ApplicationDocument struct {
	Type        string  `json:"type"` // "ID Picture" or "COR"
	FileName    string  `json:"fileName"`
	FileDataURL *string `json:"fileDataUrl"`
}

// Application is one subsidy application submitted by a student.
type Application struct {
	ID            int                   `json:"id"`
	StudentID     int                   `json:"studentId"`
	DocumentType  string                `json:"documentType"` // combined label, e.g. "ID Picture + COR"
	FileName      string                `json:"fileName"`     // representative name, "Multiple files" for bundles
	Notes         string                `json:"notes"`
	Status        ApplicationStatus     `json:"status"`
	SubmittedDate string                `json:"submittedDate"` // date-only, YYYY-MM-DD
	ReviewedDate  *string               `json:"reviewedDate"`
	ReviewerNotes *string               `json:"reviewerNotes"`
	DocumentFiles []ApplicationDocument `json:"documentFiles"`
}
