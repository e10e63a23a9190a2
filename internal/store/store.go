// Package store persists the history of fired alerts.
package store

import (
	"context"

	"github.com/lazyvibe/failbell/internal/model"
)

// AlertStore defines the interface for alert history persistence.
type AlertStore interface {
	// Record appends an alert, dropping the oldest beyond the cap.
	Record(ctx context.Context, rec *model.AlertRecord) error
	// List returns up to limit alerts, newest first. A limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]model.AlertRecord, error)
	// Get retrieves an alert by its ID.
	Get(ctx context.Context, id string) (*model.AlertRecord, error)
	// Clear removes all alerts.
	Clear(ctx context.Context) error
	// Close releases any resources held by the store.
	Close() error
}
