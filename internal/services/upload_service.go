package services

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"grantes_backend/pkg/apperrors"
)

// UploadInfo is the result of inspecting an uploaded file's bytes.
type UploadInfo struct {
	FileName string
	MimeType string
	IsImage  bool
	DataURL  string
}

// UploadService validates uploaded bytes and converts them to data
// URLs, the storage format every preview surface renders from.
type UploadService struct {
	maxSize      int64
	allowedTypes map[string]bool
}

func NewUploadService(maxSize int64, allowedTypes []string) *UploadService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = true
	}
	return &UploadService{maxSize: maxSize, allowedTypes: allowed}
}

// Inspect sniffs the MIME type from the content (never trusting the
// file name), enforces size and type limits and encodes a data URL.
func (s *UploadService) Inspect(fileName string, data []byte) (*UploadInfo, error) {
	if len(data) == 0 {
		return nil, apperrors.ErrInvalidOperation("upload", "Empty file")
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, apperrors.ValidationError(map[string]string{
			"file": fmt.Sprintf("File exceeds the %d byte limit", s.maxSize),
		})
	}

	mime := mimetype.Detect(data).String()
	// Strip parameters like "; charset=utf-8" before the whitelist check.
	base := strings.ToLower(strings.TrimSpace(strings.SplitN(mime, ";", 2)[0]))

	if len(s.allowedTypes) > 0 && !s.allowedTypes[base] {
		return nil, apperrors.ValidationError(map[string]string{
			"file": fmt.Sprintf("File type %s is not allowed", base),
		})
	}

	return &UploadInfo{
		FileName: fileName,
		MimeType: base,
		IsImage:  strings.HasPrefix(base, "image/"),
		DataURL:  "data:" + base + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}
