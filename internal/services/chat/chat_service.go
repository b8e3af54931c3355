package chat

import (
	"strings"

	"grantes_backend/internal/dto"
	"grantes_backend/internal/logger"
	modelChat "grantes_backend/internal/models/chat"
	repoChat "grantes_backend/internal/repositories/chat"
	"grantes_backend/pkg/apperrors"
)

// Notifier is the slice of the notification service the chat needs:
// admin sends alert the student, student sends alert nobody.
type Notifier interface {
	NotifyAdminMessage(studentID int, text string)
}

// ChatService is the write/read surface both chat panels call into.
type ChatService struct {
	messages    *repoChat.MessageRepository
	attachments *AttachmentService
	notifier    Notifier
}

func NewChatService(messages *repoChat.MessageRepository, attachments *AttachmentService, notifier Notifier) *ChatService {
	return &ChatService{
		messages:    messages,
		attachments: attachments,
		notifier:    notifier,
	}
}

// SendStudentMessage appends a student-authored text message.
func (s *ChatService) SendStudentMessage(studentID int, text string) (*modelChat.Message, error) {
	return s.send(studentID, modelChat.SenderStudent, text, nil)
}

// SendAdminMessage appends an admin-authored text message and pairs it
// with a "New Message from Admin" notification for the student.
func (s *ChatService) SendAdminMessage(studentID int, text string) (*modelChat.Message, error) {
	msg, err := s.send(studentID, modelChat.SenderAdmin, text, nil)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyAdminMessage(studentID, msg.Text)
	}
	return msg, nil
}

// SendFileMessage appends a file-bearing message. The message lands
// with a pending attachment first, then the resolved attachment is
// committed; a resolve failure leaves the message with its file name
// and no preview rather than dropping it.
func (s *ChatService) SendFileMessage(studentID int, sender modelChat.Sender, text string, upload dto.FileUpload) (*modelChat.Message, error) {
	if upload.FileName == "" {
		return nil, apperrors.ErrInvalidOperation("chat", "Attachment has no file name")
	}

	pending := s.attachments.Stage(upload)
	msg, err := s.send(studentID, sender, text, pending)
	if err != nil {
		return nil, err
	}

	resolved, err := s.attachments.Resolve(*pending, upload.Data)
	if err != nil {
		logger.WithError(err).Warn("attachment rejected, message kept without preview",
			"student_id", studentID, "file", upload.FileName)
		resolved = modelChat.Attachment{FileName: upload.FileName}
	}

	if err := s.messages.FinalizeAttachment(msg.ID, resolved); err != nil {
		logger.WithError(err).Warn("attachment not finalized", "message_id", msg.ID)
	}
	msg.Attachment = &resolved

	if sender == modelChat.SenderAdmin && s.notifier != nil {
		s.notifier.NotifyAdminMessage(studentID, msg.Text)
	}
	return msg, nil
}

func (s *ChatService) send(studentID int, sender modelChat.Sender, text string, attachment *modelChat.Attachment) (*modelChat.Message, error) {
	if studentID <= 0 {
		return nil, apperrors.ErrInvalidOperation("chat", "Message has no conversation")
	}

	text = strings.TrimSpace(text)
	if text == "" && attachment == nil {
		return nil, apperrors.ErrInvalidOperation("chat", "Message is empty")
	}

	msg, err := s.messages.Append(studentID, sender, text, attachment)
	if err != nil {
		// The message is applied in memory; a failed persist degrades
		// to a warning, it must not break the send.
		logger.WithError(err).Warn("message not persisted", "student_id", studentID)
	}
	return msg, nil
}

// Thread returns the ordered conversation for one student.
func (s *ChatService) Thread(studentID int) []modelChat.Message {
	return s.messages.Thread(studentID)
}

// DeleteThread removes a student's conversation. Called by the student
// lifecycle cascade only.
func (s *ChatService) DeleteThread(studentID int) error {
	return s.messages.DeleteThread(studentID)
}
