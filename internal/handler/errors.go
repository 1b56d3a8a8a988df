package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidRarity         = "Invalid rarity parameter"
	ErrMsgInvalidFavorites      = "Invalid favorites parameter"
	ErrMsgMissingBearer         = "Missing bearer token"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
	ErrMsgUnauthorizedError  = "Authentication failed. Please log in again."
	ErrMsgTokenExpiredError  = "Your session has expired. Please log in again."
	ErrMsgSessionNotFoundErr = "Session not found. Please log in."
	ErrMsgNoPacksError       = "No packs left of that type"
	ErrMsgNotPersistedError  = "That word is still syncing and cannot be starred yet"
	ErrMsgWordNotOwnedError  = "You don't own that word"
	ErrMsgCheatsDisabledErr  = "Unlock all is disabled on this server"
	ErrMsgRelayOfflineError  = "Chat relay is offline"
	ErrMsgRemoteCallError    = "The word ledger is unavailable. Please try again."
)

// Success messages
const (
	MsgLoggedOut = "Logged out"
	MsgResynced  = "Resynced with the ledger"
	MsgRoseSent  = "Rose sent"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgServiceError    = "Request failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgAuthFailed      = "Session authentication failed"
)
