package events

import (
	"time"
)

// EventType enumerates supported audit event identifiers.
type EventType string

const (
	EventLoginSucceeded  EventType = "login_succeeded"
	EventTokenRevoked    EventType = "token_revoked"
	EventEmployeeCreated EventType = "employee_created"
	EventEmployeeUpdated EventType = "employee_updated"
	EventEmployeeDeleted EventType = "employee_deleted"
)

// Event represents an audit event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenRevokedPayload payload.
type TokenRevokedPayload struct {
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// EmployeeMutationPayload payload for create/update/delete events.
type EmployeeMutationPayload struct {
	EmployeeID string `json:"employee_id"`
	Department string `json:"department,omitempty"`
}
