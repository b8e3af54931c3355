package dto

// FileUpload carries the bytes of a chat attachment.
type FileUpload struct {
	FileName string
	Data     []byte
}

// RenderedAttachment is the view-facing attachment projection.
type RenderedAttachment struct {
	FileName   string
	IsImage    bool
	PreviewURL string // empty when no preview is available
}

// RenderedMessage is one chat entry as a viewer sees it: tagged sent or
// received relative to the viewing role, with a short local time label.
type RenderedMessage struct {
	ID         int64
	Sent       bool
	Avatar     string // "A" or "S"
	Text       string
	Attachment *RenderedAttachment
	Time       string // locale-style HH:MM label
}
