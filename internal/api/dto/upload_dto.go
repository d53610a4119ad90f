package dto

import (
	"time"

	"github.com/znapfile/edge-gateway/internal/domain"
)

// UploadResponse describes a minted anonymous upload.
type UploadResponse struct {
	ID                string    `json:"id"`
	DownloadPageURL   string    `json:"download_page_url"`
	DirectDownloadURL string    `json:"direct_download_url"`
	Filename          string    `json:"filename"`
	Size              int64     `json:"size"`
	UploadDate        time.Time `json:"upload_date"`
	ExpiryDate        time.Time `json:"expiry_date"`
}

// NewUploadResponse maps a descriptor to its wire shape.
func NewUploadResponse(d *domain.UploadDescriptor) UploadResponse {
	return UploadResponse{
		ID:                d.ID,
		DownloadPageURL:   d.DownloadPageURL,
		DirectDownloadURL: d.DirectDownloadURL,
		Filename:          d.Filename,
		Size:              d.Size,
		UploadDate:        d.UploadDate,
		ExpiryDate:        d.ExpiryDate,
	}
}
