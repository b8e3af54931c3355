package chat

import (
	"github.com/google/uuid"

	"grantes_backend/internal/dto"
	modelChat "grantes_backend/internal/models/chat"
	"grantes_backend/internal/services"
)

// AttachmentService handles file-bearing messages as a two-phase
// commit: Stage produces a pending attachment the message is created
// with, Resolve inspects the bytes and yields the final attachment the
// repository swaps in. A reader that catches the message between the
// phases sees a pending attachment, never a half-written one.
type AttachmentService struct {
	uploads *services.UploadService
}

func NewAttachmentService(uploads *services.UploadService) *AttachmentService {
	return &AttachmentService{uploads: uploads}
}

// Stage builds the pending attachment for the first phase.
func (s *AttachmentService) Stage(upload dto.FileUpload) *modelChat.Attachment {
	return &modelChat.Attachment{
		FileName:       upload.FileName,
		PreviewDataURL: nil,
		Pending:        true,
		UploadID:       uuid.New().String(),
	}
}

// Resolve inspects the uploaded bytes and produces the finalized
// attachment. Only images get a preview data URL; other files keep a
// nil preview and render as a plain file name.
func (s *AttachmentService) Resolve(pending modelChat.Attachment, data []byte) (modelChat.Attachment, error) {
	info, err := s.uploads.Inspect(pending.FileName, data)
	if err != nil {
		return pending, err
	}

	resolved := modelChat.Attachment{
		FileName: pending.FileName,
		MimeType: info.MimeType,
	}
	if info.IsImage {
		url := info.DataURL
		resolved.PreviewDataURL = &url
	}
	return resolved, nil
}
