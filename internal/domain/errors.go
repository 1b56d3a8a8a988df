package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgCatalogLoadFailed = "catalog load failed"

	// Inventory errors
	ErrMsgNotPersisted   = "word is not persisted yet"
	ErrMsgWordNotOwned   = "word not in inventory"
	ErrMsgCheatsDisabled = "unlock all is disabled"

	// Pack errors
	ErrMsgNoPacks = "no packs left"

	// Remote collaborator errors
	ErrMsgRemoteCallFailed = "remote call failed"
	ErrMsgUnauthorized     = "unauthorized"
	ErrMsgRelayOffline     = "relay is offline"
	ErrMsgInvalidEvent     = "invalid relay event"

	// Session errors
	ErrMsgSessionNotFound = "session not found"
	ErrMsgTokenExpired    = "token expired"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrCatalogLoadFailed signals a degraded load; the seed catalog is in use
	ErrCatalogLoadFailed = errors.New(ErrMsgCatalogLoadFailed)

	// ErrNotPersisted is returned when favoriting a word that has no remote id
	ErrNotPersisted   = errors.New(ErrMsgNotPersisted)
	ErrWordNotOwned   = errors.New(ErrMsgWordNotOwned)
	ErrCheatsDisabled = errors.New(ErrMsgCheatsDisabled)

	ErrNoPacks = errors.New(ErrMsgNoPacks)

	// ErrRemoteCallFailed wraps every ledger or relay round-trip failure
	ErrRemoteCallFailed = errors.New(ErrMsgRemoteCallFailed)
	ErrUnauthorized     = errors.New(ErrMsgUnauthorized)
	ErrRelayOffline     = errors.New(ErrMsgRelayOffline)
	ErrInvalidEvent     = errors.New(ErrMsgInvalidEvent)

	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)
	ErrTokenExpired    = errors.New(ErrMsgTokenExpired)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
