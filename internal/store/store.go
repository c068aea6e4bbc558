// internal/store/store.go
package store

import (
	"context"
	"errors"
)

// The five flat keys of the local store, plus the cached generated user id.
// Each key holds the full serialized collection or record; there are no
// migrations and no schema versioning.
const (
	KeyApplications = "tara_applications"
	KeyDocuments    = "tara_documents"
	KeyAppointments = "tara_appointments"
	KeyRoadmaps     = "tara_roadmaps"
	KeyProfile      = "tara_profile"
	KeyUserID       = "tara_user_id"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Store is the injected key-value persistence interface. Writes are
// write-through and last-write-wins; there are no transactions.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
