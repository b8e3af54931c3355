package models

import "time"

// Notification is a one-way notice to a student. Read only ever flips
// false to true, and records are removed only when the recipient's
// student record is deleted.
type Notification struct {
	ID        int       `json:"id"`
	StudentID int       `json:"studentId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
	Read      bool      `json:"read"`
}
