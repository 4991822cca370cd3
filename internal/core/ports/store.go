package ports

import "go.trai.ch/memo/internal/core/domain"

// RecordStore defines the interface for persisting cache records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Get retrieves the record for a call identity from the store rooted at
	// root. Returns nil, nil when no record exists; an unreadable or corrupt
	// record is treated the same as a missing one, never as a failure.
	Get(root string, id domain.CallIdentity) (*domain.CacheRecord, error)

	// Put persists the record, atomically replacing any prior record for the
	// same identity. A concurrent reader observes either the old or the new
	// record, never a torn one.
	Put(root string, id domain.CallIdentity, rec domain.CacheRecord) error
}
