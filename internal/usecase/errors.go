package usecase

import "errors"

// Client input and lookup errors: surfaced immediately, no retry, no state
// change.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrMissingDevice = errors.New("missing device identifier")
	ErrUnknownTeam   = errors.New("unknown team")
)

// Gameplay outcomes: expected, frequent, never logged as errors.
var (
	ErrTeamDisqualified      = errors.New("team is disqualified")
	ErrDeviceMismatch        = errors.New("scanning is locked to a different device")
	ErrAllCheckpointsVisited = errors.New("all checkpoints have already been visited")
)

// Provisioning failures.
var (
	ErrNoCheckpointsAvailable = errors.New("no checkpoints available")
)

// ErrInconsistentState reports a route existing without a matching progress
// record. Data corruption, never silently defaulted.
var ErrInconsistentState = errors.New("progress record missing for existing route")
