package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Rule errors
	ErrMsgInvalidRule = "invalid spawn rule"

	// Storage errors
	ErrMsgStorageUnavailable = "storage unavailable"

	// Catalog errors
	ErrMsgUnknownItem   = "unknown item"
	ErrMsgEmptyCatalog  = "item catalog is empty"
	ErrMsgInvalidItem   = "invalid item"
	ErrMsgChannelActive = "channel already has an active spawn"

	// Permission errors
	ErrMsgNotPermitted = "not permitted"
	ErrMsgInvalidRole  = "invalid role"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidRule        = errors.New(ErrMsgInvalidRule)
	ErrStorageUnavailable = errors.New(ErrMsgStorageUnavailable)

	ErrUnknownItem   = errors.New(ErrMsgUnknownItem)
	ErrEmptyCatalog  = errors.New(ErrMsgEmptyCatalog)
	ErrInvalidItem   = errors.New(ErrMsgInvalidItem)
	ErrChannelActive = errors.New(ErrMsgChannelActive)

	ErrNotPermitted = errors.New(ErrMsgNotPermitted)
	ErrInvalidRole  = errors.New(ErrMsgInvalidRole)

	ErrOnCooldown = errors.New(ErrMsgOnCooldown)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
