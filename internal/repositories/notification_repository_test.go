package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantes_backend/internal/persist"
	"grantes_backend/internal/storage"
)

func TestNotifyAndUnread(t *testing.T) {
	b := storage.NewMemoryBacking()
	repo := NewNotificationRepository(b)

	n, err := repo.Notify(42, "New Message from Admin", "Please resubmit your COR")
	require.NoError(t, err)
	assert.Equal(t, 1, n.ID)
	assert.False(t, n.Read)

	unread := repo.Unread(42)
	require.Len(t, unread, 1)
	assert.Equal(t, "New Message from Admin", unread[0].Title)
	assert.Equal(t, "Please resubmit your COR", unread[0].Message)

	assert.Empty(t, repo.Unread(7), "other recipients see nothing")
	assert.Equal(t, 1, repo.UnreadCount(42))
}

func TestNotificationsOrderedByDate(t *testing.T) {
	b := storage.NewMemoryBacking()
	require.NoError(t, b.Set(persist.KeyNotifications, `[
		{"id":3,"studentId":7,"title":"third","message":"","date":"2024-03-03T08:00:00Z","read":false},
		{"id":1,"studentId":7,"title":"first","message":"","date":"2024-03-01T08:00:00Z","read":true},
		{"id":2,"studentId":7,"title":"second","message":"","date":"2024-03-02T08:00:00Z","read":false}
	]`))

	repo := NewNotificationRepository(b)
	all := repo.All(7)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Title)
	assert.Equal(t, "second", all[1].Title)
	assert.Equal(t, "third", all[2].Title)

	// Next id continues past the highest stored id.
	n, err := repo.Notify(7, "fourth", "")
	require.NoError(t, err)
	assert.Equal(t, 4, n.ID)
}

func TestMarkAllRead(t *testing.T) {
	b := storage.NewMemoryBacking()
	repo := NewNotificationRepository(b)

	_, err := repo.Notify(7, "one", "")
	require.NoError(t, err)
	_, err = repo.Notify(7, "two", "")
	require.NoError(t, err)
	_, err = repo.Notify(42, "other recipient", "")
	require.NoError(t, err)

	totalBefore := len(repo.All(7))

	changed, err := repo.MarkAllRead(7)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	assert.Empty(t, repo.Unread(7))
	assert.Len(t, repo.All(7), totalBefore, "read flips, nothing is deleted")
	assert.Len(t, repo.Unread(42), 1, "other recipients are untouched")

	// Second pass finds nothing left to flip.
	changed, err = repo.MarkAllRead(7)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestNotificationsCorruptStorageDegrades(t *testing.T) {
	b := storage.NewMemoryBacking()
	require.NoError(t, b.Set(persist.KeyNotifications, `"{not json`))

	repo := NewNotificationRepository(b)
	assert.Empty(t, repo.All(7))
	assert.Empty(t, repo.Unread(7))
	assert.Zero(t, repo.UnreadCount(7))
}

func TestDeleteNotificationsForStudent(t *testing.T) {
	b := storage.NewMemoryBacking()
	repo := NewNotificationRepository(b)

	_, err := repo.Notify(7, "mine", "")
	require.NoError(t, err)
	_, err = repo.Notify(42, "theirs", "")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteForStudent(7))

	assert.Empty(t, repo.All(7))
	assert.Len(t, repo.All(42), 1)
}
