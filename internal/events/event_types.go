package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventUploadIssued   EventType = "upload_issued"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Email string `json:"email"`
}

// UploadIssuedPayload payload.
type UploadIssuedPayload struct {
	UploadID string `json:"upload_id"`
}
