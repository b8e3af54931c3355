package chat

import (
	"grantes_backend/internal/dto"
	"grantes_backend/internal/models"
	modelChat "grantes_backend/internal/models/chat"
)

// ProjectThread tags each message as sent or received relative to the
// viewer and formats the timestamp as a short local time label. This is
// the one piece of rendering logic shared by the admin and student chat
// panels; everything else about the views lives outside this module.
//
// Senders are already normalized by load time, so the historical
// "user" tag has become the thread owner's role before projection.
func ProjectThread(messages []modelChat.Message, viewer models.Role) []dto.RenderedMessage {
	rendered := make([]dto.RenderedMessage, 0, len(messages))

	for i := range messages {
		m := &messages[i]

		rm := dto.RenderedMessage{
			ID:     m.ID,
			Sent:   string(m.Sender) == string(viewer),
			Avatar: avatarFor(m.Sender),
			Text:   m.Text,
			Time:   m.Timestamp.Local().Format("03:04 PM"),
		}

		if m.Attachment != nil {
			ra := &dto.RenderedAttachment{
				FileName: m.Attachment.FileName,
				IsImage:  m.Attachment.PreviewDataURL != nil,
			}
			if m.Attachment.PreviewDataURL != nil {
				ra.PreviewURL = *m.Attachment.PreviewDataURL
			}
			rm.Attachment = ra
		}

		rendered = append(rendered, rm)
	}

	return rendered
}

func avatarFor(sender modelChat.Sender) string {
	if sender == modelChat.SenderAdmin {
		return "A"
	}
	return "S"
}
