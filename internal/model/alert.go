package model

import (
	"time"

	"github.com/google/uuid"
)

// AlertRecord is one fired alert, as kept in the history store.
type AlertRecord struct {
	// ID is the unique identifier for this record.
	ID string `json:"id"`
	// SessionID is the session that produced the failure.
	SessionID string `json:"session_id"`
	// SessionName is the session's display name.
	SessionName string `json:"session_name,omitempty"`
	// Kind tells whether an exit code or output match fired.
	Kind AlertKind `json:"kind"`
	// Reason is a human-readable description.
	Reason string `json:"reason"`
	// Pattern is the matching pattern for output alerts.
	Pattern string `json:"pattern,omitempty"`
	// ExitCode is set for exit-code alerts.
	ExitCode *int `json:"exit_code,omitempty"`
	// Excerpt is the last line of output before the alert.
	Excerpt string `json:"excerpt,omitempty"`
	// FiredAt is the Unix timestamp of the alert.
	FiredAt int64 `json:"fired_at"`
}

// NewAlertRecord creates a record stamped with a fresh ID.
func NewAlertRecord(sessionID string, kind AlertKind, reason string, at time.Time) *AlertRecord {
	return &AlertRecord{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Kind:      kind,
		Reason:    reason,
		FiredAt:   at.Unix(),
	}
}

// Time returns FiredAt as a time.Time.
func (r *AlertRecord) Time() time.Time {
	return time.Unix(r.FiredAt, 0)
}
