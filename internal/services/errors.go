package services

import "errors"

// Service-level sentinel errors mapped to API errors by the transport layer.
var (
	// ErrUnknownField is returned when a tally or distribution is requested
	// for a field name outside the canonical contract.
	ErrUnknownField = errors.New("unknown survey field")

	// ErrInvalidRate is returned when an automation rate falls outside 0-100.
	ErrInvalidRate = errors.New("automation rate must be between 0 and 100")
)
