package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Reasons attached to inventory and pack change events
const (
	ReasonDraw      = "draw"
	ReasonClaim     = "claim"
	ReasonFavorite  = "favorite"
	ReasonUnlockAll = "unlock_all"
	ReasonReconcile = "reconcile"
	ReasonLogin     = "login"
)

// Reasons attached to session closed events
const (
	ReasonLogout   = "logout"
	ReasonEvicted  = "evicted"
	ReasonReplaced = "replaced"
	ReasonShutdown = "shutdown"
)

// Log message constants
const (
	// LogMsgHandlerErrorFormat formats handler failures returned by Publish
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)
