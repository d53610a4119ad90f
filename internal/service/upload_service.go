package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/znapfile/edge-gateway/internal/config"
	"github.com/znapfile/edge-gateway/internal/domain"
	"github.com/znapfile/edge-gateway/internal/events"
)

// The descriptor is canned: no bytes are received or stored, only the
// identifier and timestamps vary per call.
const (
	mockFilename = "mock-file.bin"
	mockFileSize = int64(1 << 20)
)

// UploadService mints anonymous upload descriptors.
type UploadService struct {
	baseURL    string
	linkTTL    time.Duration
	dispatcher events.Dispatcher
}

// NewUploadService builds the service.
func NewUploadService(cfg config.UploadConfig, dispatcher events.Dispatcher) *UploadService {
	return &UploadService{
		baseURL:    strings.TrimRight(cfg.PublicBaseURL, "/"),
		linkTTL:    cfg.LinkTTL(),
		dispatcher: dispatcher,
	}
}

// MintAnonymous returns a fresh descriptor for an anonymous upload.
func (s *UploadService) MintAnonymous(ctx context.Context) *domain.UploadDescriptor {
	id := uuid.NewString()
	now := time.Now().UTC()

	descriptor := &domain.UploadDescriptor{
		ID:                id,
		DownloadPageURL:   fmt.Sprintf("%s/d/%s", s.baseURL, id),
		DirectDownloadURL: fmt.Sprintf("%s/api/v1/download/%s", s.baseURL, id),
		Filename:          mockFilename,
		Size:              mockFileSize,
		UploadDate:        now,
		ExpiryDate:        now.Add(s.linkTTL),
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUploadIssued,
			Timestamp: now,
			Payload:   events.UploadIssuedPayload{UploadID: id},
		})
	}
	return descriptor
}
