package chat

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	modelChat "grantes_backend/internal/models/chat"
	"grantes_backend/internal/persist"
	"grantes_backend/internal/storage"
	"grantes_backend/pkg/apperrors"
)

var ErrMessageNotFound = apperrors.ErrNotFound("chat", "Message not found")

// MessageRepository owns the canonical conversation log under the
// chatMessages key. Every public operation re-reads the backing store
// first so concurrent consumers (admin panel, student panel, profile
// modal) always observe each other's writes.
type MessageRepository struct {
	backing  storage.Backing
	messages []modelChat.Message
	nextID   int64
}

func NewMessageRepository(backing storage.Backing) *MessageRepository {
	return &MessageRepository{backing: backing, nextID: 1}
}

// storedMessage decodes both the canonical shape and every legacy shape
// the browser versions ever wrote: flat file fields instead of an
// attachment object, userId instead of studentId, sender "user".
type storedMessage struct {
	ID         int64                 `json:"id"`
	StudentID  *int                  `json:"studentId"`
	UserID     json.RawMessage       `json:"userId,omitempty"` // legacy; number for students, string for admin
	Sender     string                `json:"sender"`
	Text       string                `json:"text,omitempty"`
	Type       string                `json:"type,omitempty"` // legacy "file" marker
	FileName   string                `json:"fileName,omitempty"`
	FileType   string                `json:"fileType,omitempty"`
	PreviewURL *string               `json:"previewUrl,omitempty"`
	Attachment *modelChat.Attachment `json:"attachment,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// normalize coerces a stored record into the canonical shape.
// Returns false for records that cannot name a conversation at all.
func (s *storedMessage) normalize() (modelChat.Message, bool) {
	msg := modelChat.Message{
		ID:        s.ID,
		Sender:    modelChat.Sender(s.Sender),
		Text:      s.Text,
		Timestamp: s.Timestamp,
	}

	if s.StudentID != nil {
		msg.StudentID = *s.StudentID
	} else if id, ok := numericUserID(s.UserID); ok {
		msg.StudentID = id
	} else {
		return msg, false
	}

	// The legacy "user" tag meant "the logged-in party". Only students
	// wrote through that path against their own thread, so it resolves
	// to the thread owner's role.
	if msg.Sender == modelChat.SenderLegacyUser || msg.Sender == "" {
		msg.Sender = modelChat.SenderStudent
	}

	if s.Attachment != nil {
		att := *s.Attachment
		msg.Attachment = &att
	} else if s.Type == "file" && s.FileName != "" {
		msg.Attachment = &modelChat.Attachment{
			FileName:       s.FileName,
			MimeType:       s.FileType,
			PreviewDataURL: s.PreviewURL,
		}
	}

	return msg, true
}

func numericUserID(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(string(raw))
	if err != nil {
		// String ids ("admin", "anonymous") never name a student thread.
		return 0, false
	}
	return id, true
}

func toStored(messages []modelChat.Message) []storedMessage {
	stored := make([]storedMessage, 0, len(messages))
	for i := range messages {
		m := messages[i]
		sid := m.StudentID
		stored = append(stored, storedMessage{
			ID:         m.ID,
			StudentID:  &sid,
			Sender:     string(m.Sender),
			Text:       m.Text,
			Attachment: m.Attachment,
			Timestamp:  m.Timestamp,
		})
	}
	return stored
}

// dedupKey is the identity tuple used by the legacy migration.
func dedupKey(m *modelChat.Message) string {
	return strconv.Itoa(m.StudentID) + "|" +
		m.Timestamp.UTC().Format(time.RFC3339Nano) + "|" +
		string(m.Sender) + "|" +
		m.Text
}

// reload re-reads the canonical log, normalizes legacy-shaped records
// in place, merges anything still sitting under the legacy key and
// re-sorts. Corrupt payloads leave the previous in-memory log intact.
func (r *MessageRepository) reload() {
	raw := persist.LoadLog(r.backing, persist.KeyChatMessages, toStored(r.messages))

	messages := make([]modelChat.Message, 0, len(raw))
	for i := range raw {
		if msg, ok := raw[i].normalize(); ok {
			messages = append(messages, msg)
		}
	}

	r.messages = messages
	r.mergeLegacy(func(*modelChat.Message) bool { return true })

	sort.SliceStable(r.messages, func(i, j int) bool {
		return r.messages[i].Before(&r.messages[j])
	})

	for i := range r.messages {
		if r.messages[i].ID >= r.nextID {
			r.nextID = r.messages[i].ID + 1
		}
	}
}

// mergeLegacy copies records from the studentMessages key into the
// canonical log unless a record with the same (studentId, timestamp,
// sender, text) tuple already exists. Running it twice is a no-op.
// Once the merged log has persisted, the drained records are removed
// from the legacy key: a record that stayed behind would be re-copied
// on every reload and undo any later DeleteThread.
func (r *MessageRepository) mergeLegacy(match func(*modelChat.Message) bool) int {
	legacy := persist.LoadLog[storedMessage](r.backing, persist.KeyLegacyMessages, nil)
	if len(legacy) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(r.messages))
	for i := range r.messages {
		seen[dedupKey(&r.messages[i])] = true
	}

	migrated := 0
	remainder := make([]storedMessage, 0)
	for i := range legacy {
		msg, ok := legacy[i].normalize()
		if !ok {
			continue
		}
		if !match(&msg) {
			remainder = append(remainder, legacy[i])
			continue
		}
		if seen[dedupKey(&msg)] {
			continue
		}
		seen[dedupKey(&msg)] = true
		r.messages = append(r.messages, msg)
		migrated++
	}

	if migrated > 0 {
		if err := r.persistLocked(); err != nil {
			// The merged log lives on in memory; the legacy key stays
			// intact so the next reload repeats the merge.
			return migrated
		}
	}

	if len(remainder) == 0 {
		r.backing.Remove(persist.KeyLegacyMessages)
	} else {
		_ = persist.SaveLog(r.backing, persist.KeyLegacyMessages, remainder)
	}
	return migrated
}

// MigrateLegacy runs the legacy merge for records accepted by match and
// reports how many were copied. Exposed for operational use; the
// regular read path already migrates everything on every reload.
func (r *MessageRepository) MigrateLegacy(match func(*modelChat.Message) bool) int {
	raw := persist.LoadLog(r.backing, persist.KeyChatMessages, toStored(r.messages))
	messages := make([]modelChat.Message, 0, len(raw))
	for i := range raw {
		if msg, ok := raw[i].normalize(); ok {
			messages = append(messages, msg)
		}
	}
	r.messages = messages
	return r.mergeLegacy(match)
}

func (r *MessageRepository) persistLocked() error {
	return persist.SaveLog(r.backing, persist.KeyChatMessages, toStored(r.messages))
}

// Append creates a message with the next monotonic id and the current
// UTC timestamp, appends it to the log and persists. On a persist
// failure the message is still returned and kept in memory, alongside a
// STORAGE_UNAVAILABLE error the caller should surface as a warning.
func (r *MessageRepository) Append(studentID int, sender modelChat.Sender, text string, attachment *modelChat.Attachment) (*modelChat.Message, error) {
	r.reload()

	msg := modelChat.Message{
		ID:         r.nextID,
		StudentID:  studentID,
		Sender:     sender,
		Text:       text,
		Attachment: attachment,
		Timestamp:  time.Now().UTC(),
	}
	r.nextID++

	r.messages = append(r.messages, msg)
	err := r.persistLocked()

	stored := r.messages[len(r.messages)-1]
	return &stored, err
}

// Thread returns the conversation for one student, ascending by
// timestamp with ties broken by id. Corrupt storage degrades to an
// empty thread, never an error.
func (r *MessageRepository) Thread(studentID int) []modelChat.Message {
	r.reload()

	thread := make([]modelChat.Message, 0)
	for i := range r.messages {
		if r.messages[i].StudentID == studentID {
			thread = append(thread, r.messages[i])
		}
	}
	return thread
}

// All returns the full ordered log.
func (r *MessageRepository) All() []modelChat.Message {
	r.reload()
	out := make([]modelChat.Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// DeleteThread removes every message of one conversation. Used only
// when the owning student record is deleted.
func (r *MessageRepository) DeleteThread(studentID int) error {
	r.reload()

	kept := r.messages[:0]
	for i := range r.messages {
		if r.messages[i].StudentID != studentID {
			kept = append(kept, r.messages[i])
		}
	}
	r.messages = kept
	return r.persistLocked()
}

// FinalizeAttachment is the second phase of an attachment send: it
// replaces the pending attachment of an existing message with the
// resolved one and persists.
func (r *MessageRepository) FinalizeAttachment(messageID int64, attachment modelChat.Attachment) error {
	r.reload()

	for i := range r.messages {
		if r.messages[i].ID == messageID {
			attachment.Pending = false
			attachment.UploadID = ""
			r.messages[i].Attachment = &attachment
			return r.persistLocked()
		}
	}
	return ErrMessageNotFound
}
