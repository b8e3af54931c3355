// Package persist is the serialization layer between the repositories
// and the key-value backing store. Every log is stored as one JSON
// array under one key and rewritten whole on each mutation.
//
// Loading is deliberately forgiving: an absent key, malformed JSON or a
// non-array payload all degrade to the previously known in-memory state
// instead of failing, so bad prior state can never brick a consumer.
package persist

import (
	"encoding/json"
	"strings"

	"grantes_backend/internal/logger"
	"grantes_backend/internal/storage"
	"grantes_backend/pkg/apperrors"
)

// Backing-store keys shared with the original browser views.
const (
	KeyChatMessages   = "chatMessages"
	KeyLegacyMessages = "studentMessages"
	KeyNotifications  = "notifications"
	KeyStudents       = "students"
	KeyApplications   = "applications"
	KeyAnnouncements  = "announcements"
	KeyCurrentUser    = "currentUser"
)

// LoadLog reads the JSON array stored under key. On an absent key,
// a parse error or a payload that is not an array, it returns prev
// unchanged. It never returns an error.
func LoadLog[T any](b storage.Backing, key string, prev []T) []T {
	raw, ok := b.Get(key)
	if !ok {
		if prev == nil {
			return []T{}
		}
		return prev
	}

	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") {
		logger.StoreLog("load", key, len(prev), apperrors.New(apperrors.CodeCorruptPayload, "persist", "payload is not an array"))
		if prev == nil {
			return []T{}
		}
		return prev
	}

	var records []T
	if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
		logger.StoreLog("load", key, len(prev), apperrors.Wrap(err, apperrors.CodeCorruptPayload, "persist", "failed to parse stored log"))
		if prev == nil {
			return []T{}
		}
		return prev
	}

	return records
}

// SaveLog serializes records and rewrites the value under key.
// The in-memory mutation that triggered the save is already applied;
// on a write failure the caller keeps operating on memory and surfaces
// the returned STORAGE_UNAVAILABLE error as a warning.
func SaveLog[T any](b storage.Backing, key string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "persist", "failed to serialize log")
	}

	if err := b.Set(key, string(data)); err != nil {
		appErr := apperrors.StorageUnavailable(err, key)
		logger.StoreLog("save", key, len(records), appErr)
		return appErr
	}

	logger.StoreLog("save", key, len(records), nil)
	return nil
}

// LoadOne reads a single JSON object stored under key.
// Returns false when the key is absent or the payload does not parse.
func LoadOne[T any](b storage.Backing, key string) (*T, bool) {
	raw, ok := b.Get(key)
	if !ok {
		return nil, false
	}

	var record T
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		logger.StoreLog("load", key, 0, apperrors.Wrap(err, apperrors.CodeCorruptPayload, "persist", "failed to parse stored record"))
		return nil, false
	}
	return &record, true
}

// SaveOne serializes a single record under key.
func SaveOne[T any](b storage.Backing, key string, record *T) error {
	data, err := json.Marshal(record)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "persist", "failed to serialize record")
	}

	if err := b.Set(key, string(data)); err != nil {
		return apperrors.StorageUnavailable(err, key)
	}
	return nil
}
