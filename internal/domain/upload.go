package domain

import "time"

// UploadDescriptor describes a minted anonymous upload. The gateway stores
// nothing; the descriptor exists only for the lifetime of the response.
type UploadDescriptor struct {
	ID                string
	DownloadPageURL   string
	DirectDownloadURL string
	Filename          string
	Size              int64
	UploadDate        time.Time
	ExpiryDate        time.Time
}
