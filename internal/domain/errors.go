package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProductNotFound — the catalog answered "no such product" for a
	// referenced id. The whole placement aborts; partial orders are never
	// persisted.
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrCatalogUnavailable — the catalog was unreachable or answered with
	// a non-404 failure.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// Machine-readable error codes surfaced to clients.
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInvalidItems  = "INVALID_ITEMS"
	CodeNotFound      = "NOT_FOUND"
	CodeUpstreamError = "UPSTREAM_DEPENDENCY_ERROR"
	CodeStoreError    = "STORE_ERROR"
)

// ValidationError rejects malformed input before any I/O happens.
type ValidationError struct {
	Code   string // CodeInvalidInput or CodeInvalidItems
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Code, e.Reason)
}

// CorruptStoreError — the persisted order collection exists but cannot be
// read. Deliberately distinct from "absent", which is an empty collection.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("order store %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }
