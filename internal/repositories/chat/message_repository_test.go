package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	modelChat "grantes_backend/internal/models/chat"
	"grantes_backend/internal/persist"
	"grantes_backend/internal/storage"
)

func TestAppendAndThread(t *testing.T) {
	b := storage.NewMemoryBacking()
	repo := NewMessageRepository(b)

	msg, err := repo.Append(42, modelChat.SenderAdmin, "Please resubmit your COR", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.ID)
	assert.Equal(t, 42, msg.StudentID)
	assert.False(t, msg.Timestamp.IsZero())

	thread := repo.Thread(42)
	require.Len(t, thread, 1)
	assert.Equal(t, modelChat.SenderAdmin, thread[0].Sender)
	assert.Equal(t, "Please resubmit your COR", thread[0].Text)

	assert.Empty(t, repo.Thread(7), "other threads stay empty")
}

func TestThreadFiltersAndOrders(t *testing.T) {
	b := storage.NewMemoryBacking()
	repo := NewMessageRepository(b)

	_, err := repo.Append(7, modelChat.SenderStudent, "Hello", nil)
	require.NoError(t, err)
	_, err = repo.Append(42, modelChat.SenderStudent, "Unrelated", nil)
	require.NoError(t, err)
	_, err = repo.Append(7, modelChat.SenderAdmin, "Hi", nil)
	require.NoError(t, err)

	thread := repo.Thread(7)
	require.Len(t, thread, 2)
	assert.Equal(t, "Hello", thread[0].Text)
	assert.Equal(t, modelChat.SenderStudent, thread[0].Sender)
	assert.Equal(t, "Hi", thread[1].Text)
	assert.Equal(t, modelChat.SenderAdmin, thread[1].Sender)

	for i := range thread {
		assert.Equal(t, 7, thread[i].StudentID)
		if i > 0 {
			assert.False(t, thread[i].Timestamp.Before(thread[i-1].Timestamp))
		}
	}
}

func TestMonotonicIDsAcrossReload(t *testing.T) {
	b := storage.NewMemoryBacking()

	first := NewMessageRepository(b)
	m1, err := first.Append(7, modelChat.SenderStudent, "one", nil)
	require.NoError(t, err)
	m2, err := first.Append(7, modelChat.SenderStudent, "two", nil)
	require.NoError(t, err)
	assert.Equal(t, m1.ID+1, m2.ID)

	// A fresh repository over the same backing continues the sequence.
	second := NewMessageRepository(b)
	m3, err := second.Append(7, modelChat.SenderStudent, "three", nil)
	require.NoError(t, err)
	assert.Equal(t, m2.ID+1, m3.ID)
}

func TestReadBeforeRender(t *testing.T) {
	b := storage.NewMemoryBacking()
	studentView := NewMessageRepository(b)
	adminView := NewMessageRepository(b)

	_, err := studentView.Append(7, modelChat.SenderStudent, "Hello", nil)
	require.NoError(t, err)

	// The other consumer observes the write without being told.
	thread := adminView.Thread(7)
	require.Len(t, thread, 1)
	assert.Equal(t, "Hello", thread[0].Text)
}

func TestCorruptLogDegradesToEmptyThread(t *testing.T) {
	b := storage.NewMemoryBacking()
	require.NoError(t, b.Set(persist.KeyChatMessages, `"{not json`))

	repo := NewMessageRepository(b)
	assert.Empty(t, repo.Thread(42))
	assert.Empty(t, repo.All())
}

func TestCorruptLogKeepsInMemoryState(t *testing.T) {
	b := storage.NewMemoryBacking()
	repo := NewMessageRepository(b)

	_, err := repo.Append(7, modelChat.SenderStudent, "Hello", nil)
	require.NoError(t, err)

	// Another writer clobbers the key with garbage.
	require.NoError(t, b.Set(persist.KeyChatMessages, `{broken`))

	thread := repo.Thread(7)
	require.Len(t, thread, 1, "corrupt payload keeps the previous in-memory log")
	assert.Equal(t, "Hello", thread[0].Text)
}

func TestLegacyShapeNormalization(t *testing.T) {
	b := storage.NewMemoryBacking()
	require.NoError(t, b.Set(persist.KeyChatMessages, `[
		{"id":1,"userId":7,"sender":"user","text":"old hello","timestamp":"2024-03-01T10:00:00Z"},
		{"id":2,"studentId":7,"sender":"admin","text":"reply","timestamp":"2024-03-01T10:05:00Z"},
		{"id":3,"userId":"admin","sender":"admin","text":"broadcast","timestamp":"2024-03-01T10:06:00Z"},
		{"id":4,"studentId":7,"sender":"user","type":"file","fileName":"cor.pdf","fileType":"application/pdf","timestamp":"2024-03-01T10:10:00Z"}
	]`))

	repo := NewMessageRepository(b)
	thread := repo.Thread(7)
	require.Len(t, thread, 3, "records without a numeric student id are dropped")

	assert.Equal(t, modelChat.SenderStudent, thread[0].Sender, "legacy 'user' resolves to the thread owner")
	assert.Equal(t, "old hello", thread[0].Text)
	assert.Equal(t, 7, thread[0].StudentID, "legacy userId maps onto studentId")

	assert.Equal(t, modelChat.SenderAdmin, thread[1].Sender)

	require.NotNil(t, thread[2].Attachment, "legacy flat file fields become an attachment")
	assert.Equal(t, "cor.pdf", thread[2].Attachment.FileName)
	assert.Equal(t, "application/pdf", thread[2].Attachment.MimeType)
}

func TestLegacyMigrationIsIdempotent(t *testing.T) {
	b := storage.NewMemoryBacking()
	require.NoError(t, b.Set(persist.KeyLegacyMessages, `[
		{"id":1,"studentId":7,"sender":"user","text":"from the old key","timestamp":"2024-01-15T09:00:00Z"},
		{"id":2,"studentId":7,"sender":"admin","text":"noted","timestamp":"2024-01-15T09:01:00Z"}
	]`))

	repo := NewMessageRepository(b)

	migrated := repo.MigrateLegacy(func(*modelChat.Message) bool { return true })
	assert.Equal(t, 2, migrated)

	thread := repo.Thread(7)
	require.Len(t, thread, 2)
	assert.Equal(t, "from the old key", thread[0].Text)
	assert.Equal(t, modelChat.SenderStudent, thread[0].Sender)

	// Second run finds every tuple already present.
	migrated = repo.MigrateLegacy(func(*modelChat.Message) bool { return true })
	assert.Zero(t, migrated)
	assert.Len(t, repo.Thread(7), 2)

	// So does a fresh repository over the same backing.
	again := NewMessageRepository(b)
	assert.Len(t, again.Thread(7), 2)
}

func TestDeleteThreadAfterLegacyMigration(t *testing.T) {
	b := storage.NewMemoryBacking()
	require.NoError(t, b.Set(persist.KeyLegacyMessages, `[
		{"id":1,"studentId":7,"sender":"user","text":"old hello","timestamp":"2024-01-15T09:00:00Z"}
	]`))

	repo := NewMessageRepository(b)
	require.Len(t, repo.Thread(7), 1)

	// The merge drained the legacy key once the canonical log persisted.
	_, ok := b.Get(persist.KeyLegacyMessages)
	assert.False(t, ok)

	require.NoError(t, repo.DeleteThread(7))
	assert.Empty(t, repo.Thread(7), "deleted thread must stay deleted")
	assert.Empty(t, repo.Thread(7), "a later read must not resurrect the thread")

	fresh := NewMessageRepository(b)
	assert.Empty(t, fresh.Thread(7))
}

func TestPartialLegacyMigrationKeepsRemainder(t *testing.T) {
	b := storage.NewMemoryBacking()
	require.NoError(t, b.Set(persist.KeyLegacyMessages, `[
		{"id":1,"studentId":7,"sender":"user","text":"mine","timestamp":"2024-01-15T09:00:00Z"},
		{"id":2,"studentId":42,"sender":"user","text":"someone else's","timestamp":"2024-01-15T09:01:00Z"}
	]`))

	repo := NewMessageRepository(b)
	migrated := repo.MigrateLegacy(func(m *modelChat.Message) bool { return m.StudentID == 7 })
	assert.Equal(t, 1, migrated)

	// Only the unmatched record stays under the legacy key.
	remainder := persist.LoadLog[struct {
		StudentID int `json:"studentId"`
	}](b, persist.KeyLegacyMessages, nil)
	require.Len(t, remainder, 1)
	assert.Equal(t, 42, remainder[0].StudentID)
}

func TestLegacyMigrationMatchPredicate(t *testing.T) {
	b := storage.NewMemoryBacking()
	require.NoError(t, b.Set(persist.KeyLegacyMessages, `[
		{"id":1,"studentId":7,"sender":"user","text":"mine","timestamp":"2024-01-15T09:00:00Z"},
		{"id":2,"studentId":42,"sender":"user","text":"someone else's","timestamp":"2024-01-15T09:01:00Z"}
	]`))

	repo := NewMessageRepository(b)
	migrated := repo.MigrateLegacy(func(m *modelChat.Message) bool { return m.StudentID == 7 })
	assert.Equal(t, 1, migrated)
	assert.Len(t, repo.Thread(7), 1)
}

func TestDeleteThread(t *testing.T) {
	b := storage.NewMemoryBacking()
	repo := NewMessageRepository(b)

	_, err := repo.Append(7, modelChat.SenderStudent, "keep me out", nil)
	require.NoError(t, err)
	_, err = repo.Append(42, modelChat.SenderStudent, "survivor", nil)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteThread(7))

	assert.Empty(t, repo.Thread(7))
	require.Len(t, repo.All(), 1)
	assert.Equal(t, 42, repo.All()[0].StudentID)
}

func TestFinalizeAttachment(t *testing.T) {
	b := storage.NewMemoryBacking()
	repo := NewMessageRepository(b)

	pending := &modelChat.Attachment{
		FileName: "receipt.png",
		Pending:  true,
		UploadID: "upload-1",
	}
	msg, err := repo.Append(7, modelChat.SenderStudent, "", pending)
	require.NoError(t, err)

	preview := "data:image/png;base64,AAAA"
	resolved := modelChat.Attachment{
		FileName:       "receipt.png",
		MimeType:       "image/png",
		PreviewDataURL: &preview,
	}
	require.NoError(t, repo.FinalizeAttachment(msg.ID, resolved))

	thread := repo.Thread(7)
	require.Len(t, thread, 1)
	att := thread[0].Attachment
	require.NotNil(t, att)
	assert.False(t, att.Pending)
	assert.Empty(t, att.UploadID)
	assert.Equal(t, "image/png", att.MimeType)
	require.NotNil(t, att.PreviewDataURL)
	assert.Equal(t, preview, *att.PreviewDataURL)

	err = repo.FinalizeAttachment(9999, resolved)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
