package chat

import "time"

// Sender identifies which party of a conversation authored a message.
type Sender string

const (
	SenderStudent Sender = "student"
	SenderAdmin   Sender = "admin"

	// SenderLegacyUser is the historical value meaning "whoever was
	// logged in when the message was sent". Normalized to the thread
	// owner's role (student) on load.
	SenderLegacyUser Sender = "user"
)

// Attachment is the optional file payload of a message.
// PreviewDataURL stays nil for non-image files and for attachments
// whose bytes have not been resolved yet (Pending).
type Attachment struct {
	FileName       string  `json:"fileName"`
	MimeType       string  `json:"mimeType,omitempty"`
	PreviewDataURL *string `json:"previewDataUrl"`
	Pending        bool    `json:"pending,omitempty"`
	UploadID       string  `json:"uploadId,omitempty"` // correlates the staged upload until finalized
}

// Message is one entry in the admin-student conversation log.
// StudentID names the conversation; the admin is the implicit other
// party. Messages are immutable after creation except for the second
// phase of an attachment commit.
type Message struct {
	ID         int64       `json:"id"`
	StudentID  int         `json:"studentId"`
	Sender     Sender      `json:"sender"`
	Text       string      `json:"text,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Before reports whether m sorts ahead of other: ascending by
// timestamp, ties broken by id.
func (m *Message) Before(other *Message) bool {
	if m.Timestamp.Equal(other.Timestamp) {
		return m.ID < other.ID
	}
	return m.Timestamp.Before(other.Timestamp)
}
