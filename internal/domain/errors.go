package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Validation errors (raised during project schema checks)
	ErrDuplicateRackID  = errors.New("rack ids must be unique")
	ErrUnknownRack      = errors.New("demand references an unknown rack")
	ErrSelfLoop         = errors.New("demand src and dst must differ")
	ErrNonPositiveCount = errors.New("demand count must be a positive integer")
	ErrUnknownEndpoint  = errors.New("unknown endpoint_type")

	// Persistence errors
	ErrRevisionNotFound = errors.New("revision not found")

	// Project loading errors
	ErrEmptyProject = errors.New("project has no racks")
)
