// Package storage persists the tracker state as JSON values under a small
// set of well-known keys.
package storage

import (
	"context"
	"errors"
)

// Persisted keys.
const (
	KeyTimeline        = "timeline"
	KeyExpenses        = "expenses"
	KeyIncome          = "income"
	KeySettings        = "settings"
	KeyLastDailyUpdate = "lastDailyUpdateDate"
	KeyChecklist       = "checklist"
)

// ErrQuotaExceeded is returned when a write would exceed the store quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
