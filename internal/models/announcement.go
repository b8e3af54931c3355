package models

import "time"

// Announcement is a broadcast entry in the public feed.
// Publishing one fans out a notification to every active student.
type Announcement struct {
	ID    int       `json:"id"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Date  time.Time `json:"date"`
}
